package review

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mthorsen/campus-events/internal/building"
	"github.com/mthorsen/campus-events/internal/logger"
)

// AliasStore persists alias corrections. Satisfied by *store.Store.
type AliasStore interface {
	AppendAlias(ctx context.Context, name, alias string) error
}

// Session is the interactive alias correction workflow. Bound to the
// resolver as its observer, it shows the operator every match the resolver
// makes and lets them record a correction as a new alias.
//
// Corrections apply to future resolutions: the event whose match prompted
// the correction keeps the building it was resolved to, but the new alias
// is visible to every resolve call after it, and is persisted for later
// runs.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	set    *building.Set
	store  AliasStore
	scorer building.Scorer
}

// NewSession creates a session reading operator input from in and writing
// prompts to out.
func NewSession(in io.Reader, out io.Writer, set *building.Set, store AliasStore) *Session {
	return &Session{
		in:     bufio.NewScanner(in),
		out:    out,
		set:    set,
		store:  store,
		scorer: building.PartialRatioScorer{},
	}
}

// ObserveMatch implements building.Observer.
func (s *Session) ObserveMatch(m building.Match) {
	fmt.Fprintf(s.out, "Scraped location: %s\n", m.Input)
	fmt.Fprintf(s.out, "Matched to: %s (via %q, score %d)\n", m.Name, m.Alias, m.Score)

	answer, ok := s.prompt("Was this correct? If so, type 'y': ")
	if !ok {
		return // input exhausted, nothing more to review
	}
	if answer == "y" {
		fmt.Fprintln(s.out, strings.Repeat("-", 30))
		return
	}

	name, ok := s.promptBuilding()
	if !ok {
		return
	}

	alias, ok := s.prompt("New alias (or empty to add none): ")
	if !ok {
		return
	}
	if alias == "" {
		fmt.Fprintln(s.out, "No alias added.")
		fmt.Fprintln(s.out, strings.Repeat("-", 30))
		return
	}

	s.addAlias(name, alias, m.Input)
	fmt.Fprintln(s.out, strings.Repeat("-", 30))
}

// promptBuilding asks for a canonical building name and refuses anything
// else, re-prompting until the operator enters a known name. This is the
// one strictly validated input in the system: a typo here would poison the
// alias dictionary.
func (s *Session) promptBuilding() (string, bool) {
	for {
		name, ok := s.prompt("Correct building: ")
		if !ok {
			return "", false
		}
		if s.set.Contains(name) {
			return name, true
		}
		fmt.Fprintln(s.out, "Must be one of:")
		for _, known := range s.set.Names() {
			fmt.Fprintf(s.out, "  %s\n", known)
		}
	}
}

// addAlias records the alias in the store and the in-memory set, then
// reports how the new alias scores against the scraped location so the
// operator can judge whether it will actually catch future occurrences.
func (s *Session) addAlias(name, alias, locationText string) {
	if err := s.store.AppendAlias(context.Background(), name, alias); err != nil {
		logger.Error("persisting alias failed", logger.Fields{
			"building": name,
			"alias":    alias,
		}, err)
		fmt.Fprintf(s.out, "Could not save alias: %v\n", err)
		return
	}

	if err := s.set.AppendAlias(name, alias); err != nil {
		// The set was validated against the same names; this means the set
		// and store have diverged mid-session.
		logger.Error("alias not applied in-memory", logger.Fields{
			"building": name,
			"alias":    alias,
		}, err)
		return
	}

	score := s.scorer.Score(locationText, alias)
	fmt.Fprintf(s.out, "Added alias %q for %q (scores %d against the scraped text)\n", alias, name, score)
}

// prompt prints the prompt text and reads one trimmed line. ok is false
// once input is exhausted.
func (s *Session) prompt(text string) (string, bool) {
	fmt.Fprint(s.out, text)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
