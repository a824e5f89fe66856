// Package calendar exports scraped events as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/mthorsen/campus-events/internal/event"
)

// GenerateICS generates an iCalendar (.ics) document containing one VEVENT
// per event, using the events' parsed start and end instants.
func GenerateICS(events []*event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Campus Events//campus-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	for _, evt := range events {
		writeEvent(&ics, evt, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, evt *event.Event, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@campus-events\r\n", evt.Key))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(evt.Start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(evt.End)))

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Title)))

	if evt.Description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(evt.Description)))
	}

	// Prefer the resolved building; keep the raw text alongside it so the
	// room information survives.
	location := evt.FullLocation
	if evt.Building != "" && evt.Building != evt.FullLocation {
		location = fmt.Sprintf("%s (%s)", evt.Building, evt.FullLocation)
	}
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))

	if evt.MoreInfoURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.MoreInfoURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
