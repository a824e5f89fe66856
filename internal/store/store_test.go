package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mthorsen/campus-events/internal/event"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "campus.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestSeedBuildingsOnce(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	names := []string{"CMC", "Skinner Chapel", "Sayles-Hill"}
	if err := s.SeedBuildings(ctx, names); err != nil {
		t.Fatalf("SeedBuildings failed: %v", err)
	}

	// A second seed must refuse rather than overwrite.
	if err := s.SeedBuildings(ctx, []string{"Other"}); !errors.Is(err, ErrAlreadySeeded) {
		t.Fatalf("expected ErrAlreadySeeded, got %v", err)
	}

	buildings, err := s.ListBuildings(ctx)
	if err != nil {
		t.Fatalf("ListBuildings failed: %v", err)
	}
	if len(buildings) != 3 {
		t.Fatalf("expected 3 buildings, got %d", len(buildings))
	}
	for i, name := range names {
		if buildings[i].Name != name {
			t.Errorf("buildings[%d] = %q, expected %q (seed order must be preserved)", i, buildings[i].Name, name)
		}
		if len(buildings[i].Aliases) != 0 {
			t.Errorf("seeded building %q should have no aliases, got %v", name, buildings[i].Aliases)
		}
	}
}

func TestAppendAlias(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.SeedBuildings(ctx, []string{"CMC"}); err != nil {
		t.Fatal(err)
	}

	if err := s.AppendAlias(ctx, "CMC", "math building"); err != nil {
		t.Fatalf("AppendAlias failed: %v", err)
	}
	if err := s.AppendAlias(ctx, "CMC", "center for math"); err != nil {
		t.Fatalf("second AppendAlias failed: %v", err)
	}

	set, err := s.LoadBuildingSet(ctx)
	if err != nil {
		t.Fatalf("LoadBuildingSet failed: %v", err)
	}
	aliases := set.All()[0].Aliases
	if len(aliases) != 2 || aliases[0] != "math building" || aliases[1] != "center for math" {
		t.Errorf("aliases should accumulate in order, got %v", aliases)
	}

	if err := s.AppendAlias(ctx, "Nope Hall", "x"); err == nil {
		t.Error("expected error for unknown building")
	}
}

func TestUpsertEventByKey(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	date := time.Date(2026, time.May, 8, 0, 0, 0, 0, time.UTC)
	start, end := event.ParseTimeRange(date, "9:00 a.m.-11:00 a.m.")

	evt := event.New("Comps Talk", "", "", "", "math building, room 206",
		"https://apps.campus.edu/calendar/event.php?eventId=1001", date, start, end)
	if err := s.UpsertEvent(ctx, evt); err != nil {
		t.Fatalf("UpsertEvent failed: %v", err)
	}

	// Re-scrape with a corrected building: same key, so the row updates
	// instead of duplicating.
	corrected := event.New("Comps Talk", "", "", "CMC", "math building, room 206",
		"https://apps.campus.edu/calendar/event.php?eventId=1001", date, start, end)
	if corrected.Key != evt.Key {
		t.Fatal("re-scraped event should keep its stable key")
	}
	if err := s.UpsertEvent(ctx, corrected); err != nil {
		t.Fatalf("second UpsertEvent failed: %v", err)
	}

	events, err := s.ListEvents(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("upsert by key must not duplicate, got %d rows", len(events))
	}
	if events[0].Building != "CMC" {
		t.Errorf("building should be updated, got %q", events[0].Building)
	}
	if !events[0].Start.Equal(start) || !events[0].End.Equal(end) {
		t.Errorf("datetimes changed across storage: %v-%v", events[0].Start, events[0].End)
	}
}

func TestListEventsRange(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for day := 7; day <= 9; day++ {
		date := time.Date(2026, time.May, day, 0, 0, 0, 0, time.UTC)
		start, end := event.ParseTimeRange(date, "")
		evt := event.New("Daily", "", "", "", "somewhere",
			"https://apps.campus.edu/calendar/event.php?eventId=1", date, start, end)
		if err := s.UpsertEvent(ctx, evt); err != nil {
			t.Fatal(err)
		}
	}

	from := time.Date(2026, time.May, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.May, 8, 23, 59, 0, 0, time.UTC)
	events, err := s.ListEvents(ctx, from, to)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event in range, got %d", len(events))
	}
	if events[0].Start.Day() != 8 {
		t.Errorf("expected the May 8 event, got %v", events[0].Start)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if err := s1.SeedBuildings(context.Background(), []string{"CMC"}); err != nil {
		t.Fatal(err)
	}
	if err := s1.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	buildings, err := s2.ListBuildings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(buildings) != 1 || buildings[0].Name != "CMC" {
		t.Errorf("data should survive reopen, got %v", buildings)
	}
}
