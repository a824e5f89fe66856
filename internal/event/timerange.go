package event

import (
	"regexp"
	"strconv"
	"time"
)

// Default wall-clock bounds used when a time cannot be parsed. Events with
// no usable time text are treated as running all day.
const (
	DefaultStartHour = 8
	DefaultEndHour   = 22
)

// A time on the calendar looks like "5:00 a.m.-11:00 p.m.". The trailing
// marker letter distinguishes AM (a), PM (p), and noon (n); the match is on
// the single letter, so "a.m.", "am" and "a" all count.
var clockRE = regexp.MustCompile(`([0-9]{1,2}):([0-9]{2})\s*(a|p|n)`)

// ParseTimeRange parses free-text time range text into start and end
// instants anchored to the given calendar date.
//
// The text is scanned for H:MM occurrences followed by an a/p/n marker. Zero
// occurrences (including empty text) yields the all-day default. One
// occurrence sets the start and keeps the default end. Two or more set start
// and end from the first two; the rest are ignored.
//
// Hours under 12 with a "p" marker are shifted to the 24-hour clock. The
// "a" and "n" markers never adjust the hour: the calendar writes "12:00 n"
// for noon, and "12:00 a.m." passes through as hour 12. That matches what
// the source pages actually mean, so it is preserved rather than corrected.
func ParseTimeRange(date time.Time, timeText string) (time.Time, time.Time) {
	start := at(date, DefaultStartHour, 0)
	end := at(date, DefaultEndHour, 0)

	matches := clockRE.FindAllStringSubmatch(timeText, -1)
	if len(matches) == 0 {
		return start, end
	}

	hour, minute := clockFields(matches[0])
	start = at(date, hour, minute)

	if len(matches) > 1 {
		hour, minute = clockFields(matches[1])
		end = at(date, hour, minute)
	}

	return start, end
}

// clockFields converts one regexp match into a 24-hour clock pair.
func clockFields(match []string) (hour, minute int) {
	hour, _ = strconv.Atoi(match[1])
	minute, _ = strconv.Atoi(match[2])

	if match[3] == "p" && hour < 12 {
		hour += 12
	}

	return hour, minute
}

// at returns the given date at the given wall-clock time. Instants are
// naive local values in the date's location; the calendar has no timezone.
func at(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
