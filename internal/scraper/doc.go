// Package scraper provides HTTP fetching and HTML parsing for the campus
// events calendar.
//
// The calendar renders one listing page per date, reached through a date
// query parameter; each listed event links to a detail page through a
// JavaScript popup. The scraper walks a date range, parses the listing and
// detail pages, resolves each event's location to a campus building, and
// produces normalized event records. Fetch failures are isolated so one
// broken page never aborts the rest of a run.
package scraper
