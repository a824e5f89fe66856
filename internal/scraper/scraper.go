package scraper

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mthorsen/campus-events/internal/building"
	"github.com/mthorsen/campus-events/internal/event"
	"github.com/mthorsen/campus-events/internal/logger"
)

const (
	// DefaultCalendarURL is the campus calendar. Each day's listing is the
	// same URL with a date query parameter.
	DefaultCalendarURL = "https://apps.carleton.edu/calendar/"
	UserAgent          = "campus-events/1.0 (github.com/mthorsen/campus-events)"
	Timeout            = 30 * time.Second
)

// Scraper drives the scrape pipeline: listing pages to detail pages to
// normalized event records, one fetch at a time.
type Scraper struct {
	client   *http.Client
	baseURL  string
	resolver *building.Resolver
}

// New creates a Scraper for the default campus calendar.
func New(resolver *building.Resolver) *Scraper {
	return NewWithBaseURL(DefaultCalendarURL, resolver)
}

// NewWithBaseURL creates a Scraper against a specific calendar base URL.
func NewWithBaseURL(baseURL string, resolver *building.Resolver) *Scraper {
	return &Scraper{
		client:   &http.Client{Timeout: Timeout},
		baseURL:  baseURL,
		resolver: resolver,
	}
}

// Run scrapes every date in the inclusive range [from, to], ascending, and
// returns the normalized events.
//
// Failures are isolated per the calendar's granularity: a listing page that
// cannot be fetched or parsed skips that date; a detail page that cannot be
// fetched skips that event. Events whose detail page has no location are
// dropped and counted, not errored. There is no retry or backoff.
func (s *Scraper) Run(from, to time.Time) ([]*event.Event, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid date range: %s is after %s",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	events := make([]*event.Event, 0)

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		dayEvents, err := s.scrapeDay(date)
		if err != nil {
			logger.Warn("skipping date", logger.Fields{
				"date":  date.Format("2006-01-02"),
				"cause": err.Error(),
			})
			logger.IncrCounter("scrape.dates_skipped")
			continue
		}
		events = append(events, dayEvents...)
	}

	return events, nil
}

// scrapeDay fetches one day's listing page and every event it links to.
func (s *Scraper) scrapeDay(date time.Time) ([]*event.Event, error) {
	detailURLs, err := s.fetchListing(date)
	if err != nil {
		return nil, err
	}

	logger.Debug("listing parsed", logger.Fields{
		"date":   date.Format("2006-01-02"),
		"events": len(detailURLs),
	})

	events := make([]*event.Event, 0, len(detailURLs))
	for _, detailURL := range detailURLs {
		evt, err := s.scrapeEvent(detailURL, date)
		if err != nil {
			// A single broken detail page must not take down the rest of
			// the day.
			logger.Warn("skipping event", logger.Fields{
				"url":   detailURL,
				"cause": err.Error(),
			})
			logger.IncrCounter("scrape.events_failed")
			continue
		}
		if evt == nil {
			continue // dropped, already counted
		}
		events = append(events, evt)
	}

	return events, nil
}

// scrapeEvent fetches and parses one detail page. It returns (nil, nil) for
// events dropped because their page carries no location.
func (s *Scraper) scrapeEvent(detailURL string, date time.Time) (*event.Event, error) {
	started := time.Now()
	resp, err := s.get(detailURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	logger.RecordTiming("fetch.detail", time.Since(started))

	page, err := ParseDetailPage(resp.Body, s.baseURL)
	if err != nil {
		return nil, err
	}

	if !page.HasLocation || page.Location == "" {
		logger.Info("dropping event without location", logger.Fields{
			"url":   detailURL,
			"title": page.Title,
		})
		logger.IncrCounter("scrape.events_dropped")
		return nil, nil
	}

	match := s.resolver.Resolve(page.Location)
	start, end := event.ParseTimeRange(date, page.TimeText)

	logger.IncrCounter("scrape.events_scraped")

	return event.New(page.Title, page.Description, page.MoreInfoURL,
		match.Name, page.Location, detailURL, date, start, end), nil
}

// fetchListing fetches and parses the listing page for one date.
func (s *Scraper) fetchListing(date time.Time) ([]string, error) {
	listingURL, err := s.listingURL(date)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	resp, err := s.get(listingURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	logger.RecordTiming("fetch.listing", time.Since(started))

	return ParseListingPage(resp.Body, s.baseURL)
}

// listingURL builds the per-day listing URL with the date query parameter.
func (s *Scraper) listingURL(date time.Time) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing calendar URL: %w", err)
	}

	q := u.Query()
	q.Set("date", date.Format("2006-01-02"))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// get performs a single GET with the scraper's user agent. No retries.
func (s *Scraper) get(rawURL string) (*http.Response, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp, nil
}
