package scraper

import (
	"os"
	"strings"
	"testing"
)

const detailBaseURL = "https://apps.campus.edu/calendar/"

func TestParseDetailPage(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/event_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	page, err := ParseDetailPage(strings.NewReader(string(data)), detailBaseURL)
	if err != nil {
		t.Fatalf("ParseDetailPage failed: %v", err)
	}

	// Title is the first text node only; the nested subtitle span is not
	// part of it.
	if page.Title != "Comps Talk: Fuzzy String Matching" {
		t.Errorf("title = %q", page.Title)
	}

	// Description stops at the first line break.
	wantDesc := "Seniors present their comprehensive projects on approximate string matching."
	if page.Description != wantDesc {
		t.Errorf("description = %q, expected %q", page.Description, wantDesc)
	}

	// Relative more-info link resolved against the base URL.
	if page.MoreInfoURL != "https://apps.campus.edu/calendar/events/1001/details" {
		t.Errorf("more info URL = %q", page.MoreInfoURL)
	}

	if !page.HasTime || page.TimeText != "9:00 a.m.-11:00 a.m." {
		t.Errorf("time = %q (found=%v)", page.TimeText, page.HasTime)
	}
	if !page.HasLocation || page.Location != "math building, room 206" {
		t.Errorf("location = %q (found=%v)", page.Location, page.HasLocation)
	}
}

func TestParseDetailPageDegradesFieldByField(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		check  func(t *testing.T, page *DetailPage)
	}{
		{
			name:   "empty page yields empty fields, not an error",
			markup: "<html><body></body></html>",
			check: func(t *testing.T, page *DetailPage) {
				if page.Title != "" || page.Description != "" || page.MoreInfoURL != "" {
					t.Errorf("expected empty optional fields, got %+v", page)
				}
				if page.HasTime || page.HasLocation {
					t.Errorf("expected no time or location, got %+v", page)
				}
			},
		},
		{
			name: "boilerplate description is discarded",
			markup: `<html><body>
				<div class="description">More information about this event is available online.</div>
			</body></html>`,
			check: func(t *testing.T, page *DetailPage) {
				if page.Description != "" {
					t.Errorf("boilerplate should be discarded, got %q", page.Description)
				}
			},
		},
		{
			name: "absolute more-info URL passes through",
			markup: `<html><body>
				<blockquote>Talk <a href="https://other.example.edu/talk">info</a></blockquote>
			</body></html>`,
			check: func(t *testing.T, page *DetailPage) {
				if page.MoreInfoURL != "https://other.example.edu/talk" {
					t.Errorf("absolute URL should pass through, got %q", page.MoreInfoURL)
				}
			},
		},
		{
			name: "unknown row labels are ignored",
			markup: `<html><body><table>
				<tr><td>Price:</td><td>Free</td></tr>
				<tr><td>Location:</td><td>Skinner Memorial Chapel</td></tr>
			</table></body></html>`,
			check: func(t *testing.T, page *DetailPage) {
				if page.HasTime {
					t.Error("no time row present, HasTime should be false")
				}
				if !page.HasLocation || page.Location != "Skinner Memorial Chapel" {
					t.Errorf("location = %q (found=%v)", page.Location, page.HasLocation)
				}
			},
		},
		{
			name: "location row present but empty still counts as found",
			markup: `<html><body><table>
				<tr><td>Location:</td><td>   </td></tr>
			</table></body></html>`,
			check: func(t *testing.T, page *DetailPage) {
				if !page.HasLocation {
					t.Error("empty location cell should still mark the row as found")
				}
				if page.Location != "" {
					t.Errorf("location should trim to empty, got %q", page.Location)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ParseDetailPage(strings.NewReader(tt.markup), detailBaseURL)
			if err != nil {
				t.Fatalf("ParseDetailPage failed: %v", err)
			}
			tt.check(t, page)
		})
	}
}
