package scraper

import (
	"fmt"
	"io"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// Listing pages link each event through a JavaScript popup; the relative
// detail URL is embedded in the first argument of an openWindow call.
// Example href: javascript:openWindow('event.php?eventId=1001', 500, 400)
var eventLinkRE = regexp.MustCompile(`openWindow\('([A-Za-z0-9=?&_./-]*)'`)

// Timed and untimed listings use different title cell classes; both carry
// event links and both must be scanned.
const listingTitleSelector = "td.events_title, td.events_title_untimed"

// ParseListingPage extracts detail page URLs from one day's listing page.
//
// URLs come back in document order and are not deduplicated. Title cells
// whose first anchor does not match the openWindow pattern are skipped
// silently. Relative paths are resolved against baseURL.
func ParseListingPage(r io.Reader, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	urls := make([]string, 0)

	doc.Find(listingTitleSelector).Each(func(i int, sel *goquery.Selection) {
		href, ok := sel.Find("a").First().Attr("href")
		if !ok {
			return
		}

		matches := eventLinkRE.FindStringSubmatch(href)
		if matches == nil {
			return
		}

		rel, err := url.Parse(matches[1])
		if err != nil {
			return
		}
		urls = append(urls, base.ResolveReference(rel).String())
	})

	return urls, nil
}
