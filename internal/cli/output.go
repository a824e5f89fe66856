package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mthorsen/campus-events/internal/building"
	"github.com/mthorsen/campus-events/internal/event"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ScrapeResult is the output of one scrape run.
type ScrapeResult struct {
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	Stored  bool                   `json:"stored"`
	Events  []*event.Event         `json:"events"`
	Metrics map[string]interface{} `json:"metrics,omitempty"`
}

// WriteScrapeResult writes a scrape run summary in the given format.
func WriteScrapeResult(w io.Writer, result *ScrapeResult, format OutputFormat, verbose bool) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if len(result.Events) == 0 {
		fmt.Fprintf(w, "No events found between %s and %s.\n", result.From, result.To)
		return nil
	}

	fmt.Fprintln(w, eventsTable(result.Events))

	action := "Scraped"
	if result.Stored {
		action = "Scraped and stored"
	}
	fmt.Fprintf(w, "%s %d events between %s and %s.\n", action, len(result.Events), result.From, result.To)

	if verbose && result.Metrics != nil {
		data, err := json.MarshalIndent(result.Metrics, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Metrics: %s\n", data)
	}
	return nil
}

// WriteEvents writes stored events in the given format.
func WriteEvents(w io.Writer, events []*event.Event, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, events)
	}

	if len(events) == 0 {
		fmt.Fprintln(w, "No events stored.")
		return nil
	}
	fmt.Fprintln(w, eventsTable(events))
	fmt.Fprintf(w, "%d events.\n", len(events))
	return nil
}

// WriteBuildings writes the building list in the given format.
func WriteBuildings(w io.Writer, buildings []*building.Building, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, buildings)
	}

	if len(buildings) == 0 {
		fmt.Fprintln(w, "No buildings stored. Seed them with 'buildings seed'.")
		return nil
	}

	rows := make([][]string, 0, len(buildings))
	for _, b := range buildings {
		rows = append(rows, []string{b.Name, strings.Join(b.Aliases, ", ")})
	}
	fmt.Fprintln(w, renderTable([]string{"Building", "Aliases"}, rows))
	return nil
}

func eventsTable(events []*event.Event) string {
	rows := make([][]string, 0, len(events))
	for _, evt := range events {
		building := evt.Building
		if building == "" {
			building = "(unresolved)"
		}
		rows = append(rows, []string{
			evt.Start.Format("2006-01-02"),
			fmt.Sprintf("%s-%s", evt.Start.Format("15:04"), evt.End.Format("15:04")),
			evt.Title,
			building,
			evt.FullLocation,
		})
	}
	return renderTable([]string{"Date", "Time", "Title", "Building", "Location"}, rows)
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
