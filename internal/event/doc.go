// Package event provides the normalized campus event record and time range
// parsing.
//
// Each event is assigned a deterministic SHA1-based key generated from its
// detail page URL and calendar date, enabling reliable upserts across scrape
// runs. Time ranges are parsed from the free-text "Time:" field of a detail
// page and fall back to an all-day default when the text is absent or
// unparsable.
package event
