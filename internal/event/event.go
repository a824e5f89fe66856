package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Event represents a single normalized campus event.
//
// Building is a weak reference: it holds the canonical building name chosen
// by the resolver, not a pointer into the building set. FullLocation keeps
// the raw scraped text so a mismatch can be audited later.
type Event struct {
	Key          string    `json:"key"` // stable identity, see GenerateKey
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	MoreInfoURL  string    `json:"more_info_url,omitempty"`
	Start        time.Time `json:"start_datetime"`
	End          time.Time `json:"end_datetime"`
	Building     string    `json:"building"`
	FullLocation string    `json:"full_location"`
	SourceURL    string    `json:"source_url"`
	ScrapedAt    time.Time `json:"scraped_at"`
}

// GenerateKey creates a deterministic identity for an event from its detail
// page URL and calendar date. The same event re-scraped later (possibly with
// a corrected building after an alias fix) keeps the same key, so upserts
// update rather than duplicate.
func GenerateKey(sourceURL string, date time.Time) string {
	h := sha1.New()
	h.Write([]byte(strings.TrimSpace(sourceURL) + "|" + date.Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// New creates an Event with Key and ScrapedAt populated.
func New(title, description, moreInfoURL, building, fullLocation, sourceURL string, date, start, end time.Time) *Event {
	return &Event{
		Key:          GenerateKey(sourceURL, date),
		Title:        title,
		Description:  description,
		MoreInfoURL:  moreInfoURL,
		Start:        start,
		End:          end,
		Building:     building,
		FullLocation: fullLocation,
		SourceURL:    sourceURL,
		ScrapedAt:    time.Now().UTC(),
	}
}
