package scraper

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	detailTitleSelector       = ".info_title"
	detailDescriptionSelector = ".description"

	// A description that is really just the "More information" boilerplate
	// link caption, not prose about the event.
	descriptionBoilerplate = "More information"
)

// DetailPage holds the fields parsed from a single event detail page. Every
// field is independently optional; HasTime and HasLocation distinguish a
// missing table row from an empty value. The parser never rejects a page —
// deciding that a location-less event is unusable is the pipeline's call.
type DetailPage struct {
	Title       string
	Description string
	MoreInfoURL string
	TimeText    string
	HasTime     bool
	Location    string
	HasLocation bool
}

// ParseDetailPage extracts the optional event fields from detail page
// markup. Relative more-info links are resolved against baseURL.
func ParseDetailPage(r io.Reader, baseURL string) (*DetailPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing detail HTML: %w", err)
	}

	page := &DetailPage{
		Title:       parseTitle(doc),
		Description: parseDescription(doc),
		MoreInfoURL: parseMoreInfoURL(doc, baseURL),
	}

	// Field rows are two-cell table rows keyed by the first cell's text.
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != 2 {
			return
		}

		value := strings.TrimSpace(cells.Eq(1).Text())
		switch strings.TrimSpace(cells.Eq(0).Text()) {
		case "Time:":
			page.TimeText = value
			page.HasTime = true
		case "Location:":
			page.Location = value
			page.HasLocation = true
		}
	})

	return page, nil
}

// parseTitle returns the first text node of the first info-title element,
// skipping any nested markup that follows it.
func parseTitle(doc *goquery.Document) string {
	title := ""
	doc.Find(detailTitleSelector).First().Contents().EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if goquery.NodeName(sel) != "#text" {
			return true
		}
		title = strings.TrimSpace(sel.Text())
		return false
	})
	return title
}

// parseDescription returns the first description element's text up to the
// first line break. Boilerplate "More information" captions are discarded.
func parseDescription(doc *goquery.Document) string {
	text := doc.Find(detailDescriptionSelector).First().Text()
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, descriptionBoilerplate) {
		return ""
	}
	return text
}

// parseMoreInfoURL returns the href of the first anchor inside the first
// blockquote, resolved against baseURL when relative.
func parseMoreInfoURL(doc *goquery.Document, baseURL string) string {
	href, ok := doc.Find("blockquote").First().Find("a").First().Attr("href")
	if !ok {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	rel, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(rel).String()
}
