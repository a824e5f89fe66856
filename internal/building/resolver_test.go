package building

import (
	"testing"
)

func mustSet(t *testing.T, buildings []*Building) *Set {
	t.Helper()
	s, err := NewSet(buildings)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	return s
}

func TestResolveAliasMatch(t *testing.T) {
	set := mustSet(t, []*Building{
		{Name: "CMC", Aliases: []string{"math building"}},
		{Name: "Skinner Chapel", Aliases: []string{"chapel"}},
	})

	var calls []Match
	r := NewResolver(set, ObserverFunc(func(m Match) {
		calls = append(calls, m)
	}))

	match := r.Resolve("math building, room 206")

	if match.Name != "CMC" {
		t.Errorf("expected CMC, got %q", match.Name)
	}
	if match.Score <= 0 {
		t.Errorf("expected positive score, got %d", match.Score)
	}
	if match.Alias != "math building" {
		t.Errorf("expected winning alias 'math building', got %q", match.Alias)
	}

	if len(calls) != 1 {
		t.Fatalf("observer should be called exactly once, got %d calls", len(calls))
	}
	if calls[0] != match {
		t.Errorf("observer received %+v, expected %+v", calls[0], match)
	}
}

func TestResolveTieBreakIsFirstWins(t *testing.T) {
	// Two buildings share an identical alias; scores tie exactly. The
	// first building in load order must win, deterministically.
	set := mustSet(t, []*Building{
		{Name: "Olin Hall", Aliases: []string{"science center"}},
		{Name: "Hulings Hall", Aliases: []string{"science center"}},
	})
	r := NewResolver(set, nil)

	for i := 0; i < 10; i++ {
		match := r.Resolve("science center")
		if match.Name != "Olin Hall" {
			t.Fatalf("tie should resolve to first building in order, got %q", match.Name)
		}
	}
}

func TestResolveEmptySet(t *testing.T) {
	set := mustSet(t, nil)

	observed := 0
	r := NewResolver(set, ObserverFunc(func(m Match) {
		observed++
		if m.Name != "" || m.Alias != "" || m.Score != 0 {
			t.Errorf("empty set should observe an empty match, got %+v", m)
		}
	}))

	match := r.Resolve("anywhere at all")

	if match.Name != "" || match.Score != 0 {
		t.Errorf("empty set should resolve to empty name and score 0, got %+v", match)
	}
	if observed != 1 {
		t.Errorf("observer should still be called once on no match, got %d", observed)
	}
}

// fixedScorer returns canned scores per candidate, for exercising the
// comparison logic without depending on fuzzy score values.
type fixedScorer struct {
	scores map[string]int
}

func (f fixedScorer) Score(_, candidate string) int {
	return f.scores[candidate]
}

func TestResolveScoresCanonicalNameAndAliasesIndependently(t *testing.T) {
	set := mustSet(t, []*Building{
		{Name: "Laird Hall", Aliases: []string{"laird", "english department"}},
	})

	r := NewResolverWithScorer(set, fixedScorer{scores: map[string]int{
		"Laird Hall":         40,
		"laird":              55,
		"english department": 90,
	}}, nil)

	match := r.Resolve("English Department office")

	if match.Name != "Laird Hall" {
		t.Errorf("expected Laird Hall, got %q", match.Name)
	}
	if match.Alias != "english department" || match.Score != 90 {
		t.Errorf("expected winning alias 'english department' at 90, got %q at %d", match.Alias, match.Score)
	}
}

func TestResolveLaterEqualScoreDoesNotOverwrite(t *testing.T) {
	set := mustSet(t, []*Building{
		{Name: "First"},
		{Name: "Second"},
	})

	r := NewResolverWithScorer(set, fixedScorer{scores: map[string]int{
		"First":  70,
		"Second": 70,
	}}, nil)

	if match := r.Resolve("whatever"); match.Name != "First" {
		t.Errorf("later equal score must not overwrite, got %q", match.Name)
	}
}
