package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevelThreshold(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		err     error
		want    bool // should produce output
	}{
		{name: "info at threshold", level: LevelInfo, message: "scrape started", want: true},
		{name: "debug below threshold", level: LevelDebug, message: "noise", want: false},
		{name: "error with err", level: LevelError, message: "fetch failed", err: errors.New("boom"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(LevelInfo, &buf)

			l.log(tt.level, tt.message, Fields{"date": "2026-05-08"}, tt.err)

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Fatalf("logged = %v, expected %v", logged, tt.want)
			}
			if !logged {
				return
			}

			var entry Entry
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if entry.Message != tt.message {
				t.Errorf("message = %q, expected %q", entry.Message, tt.message)
			}
			if tt.err != nil && !strings.Contains(entry.Error, tt.err.Error()) {
				t.Errorf("error field = %q, expected to contain %q", entry.Error, tt.err)
			}
		})
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("events.scraped")
	m.IncrCounter("events.scraped")
	m.IncrCounter("events.dropped")
	m.RecordTiming("fetch.listing", 100*time.Millisecond)
	m.RecordTiming("fetch.listing", 300*time.Millisecond)

	snap := m.Snapshot()

	counters := snap["counters"].(map[string]int64)
	if counters["events.scraped"] != 2 || counters["events.dropped"] != 1 {
		t.Errorf("unexpected counters: %v", counters)
	}

	timings := snap["timings"].(map[string]map[string]interface{})
	listing := timings["fetch.listing"]
	if listing["count"] != 2 {
		t.Errorf("expected 2 fetch timings, got %v", listing["count"])
	}
	if listing["average"] != "200ms" {
		t.Errorf("expected 200ms average, got %v", listing["average"])
	}
}
