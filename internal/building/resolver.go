package building

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Scorer computes a 0-100 string similarity score between scraped location
// text and a candidate building name or alias. Implementations must keep
// partial/substring semantics so that alias scores stay comparable across
// runs ("math building" inside "math building, room 206" scores high).
type Scorer interface {
	Score(text, candidate string) int
}

// PartialRatioScorer scores with the fuzzywuzzy partial ratio: the best
// substring alignment of the shorter string within the longer one.
type PartialRatioScorer struct{}

// Score implements Scorer.
func (PartialRatioScorer) Score(text, candidate string) int {
	return fuzzy.PartialRatio(text, candidate)
}

// Match describes one resolution attempt. Alias is the specific candidate
// string that produced the winning score; it is reported to observers but
// never returned as the match itself.
type Match struct {
	Input string // raw scraped location text
	Alias string // candidate string that won (may equal Name)
	Name  string // canonical name of the winning building
	Score int    // 0-100
}

// Observer is notified of every resolution attempt, exactly once per
// Resolve call, including zero-score attempts where nothing matched. The
// alias correction session hangs off this hook.
type Observer interface {
	ObserveMatch(m Match)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(m Match)

// ObserveMatch implements Observer.
func (f ObserverFunc) ObserveMatch(m Match) {
	f(m)
}

// Resolver fuzzy-matches scraped location text against a building set.
type Resolver struct {
	set      *Set
	scorer   Scorer
	observer Observer
}

// NewResolver creates a resolver over the given set using the partial-ratio
// scorer. The observer may be nil.
func NewResolver(set *Set, observer Observer) *Resolver {
	return &Resolver{
		set:      set,
		scorer:   PartialRatioScorer{},
		observer: observer,
	}
}

// NewResolverWithScorer creates a resolver with a custom scoring strategy.
func NewResolverWithScorer(set *Set, scorer Scorer, observer Observer) *Resolver {
	return &Resolver{
		set:      set,
		scorer:   scorer,
		observer: observer,
	}
}

// Resolve matches locationText against every building's canonical name and
// aliases, each scored independently, and returns the best match.
//
// The comparison is strictly greater-than: the first building in set order
// to reach the maximum score wins, and an equal score seen later never
// overwrites it. That keeps resolution deterministic even when two
// buildings share an alias. With an empty set the returned match has an
// empty Name and score 0.
//
// The observer, when present, is invoked exactly once per call with the
// final match, unconditionally.
func (r *Resolver) Resolve(locationText string) Match {
	best := Match{Input: locationText}

	for _, b := range r.set.All() {
		for _, candidate := range b.Candidates() {
			score := r.scorer.Score(locationText, candidate)
			if score > best.Score {
				best.Score = score
				best.Alias = candidate
				best.Name = b.Name
			}
		}
	}

	if r.observer != nil {
		r.observer.ObserveMatch(best)
	}

	return best
}
