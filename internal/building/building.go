package building

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Building is one campus building: a unique canonical name plus the aliases
// that scraped location text is known to use for it. Aliases are
// append-only; corrections never replace earlier ones.
type Building struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Candidates returns the match targets for this building: the canonical
// name followed by every alias, in order.
func (b *Building) Candidates() []string {
	out := make([]string, 0, len(b.Aliases)+1)
	out = append(out, b.Name)
	out = append(out, b.Aliases...)
	return out
}

// Set is an ordered collection of buildings. Order matters: resolution
// tie-breaks in favor of the earliest building, so the set must preserve
// the order buildings were loaded in.
type Set struct {
	buildings []*Building
	byName    map[string]*Building
}

// NewSet creates a set from buildings in the given order. Duplicate
// canonical names are rejected.
func NewSet(buildings []*Building) (*Set, error) {
	s := &Set{
		buildings: make([]*Building, 0, len(buildings)),
		byName:    make(map[string]*Building, len(buildings)),
	}
	for _, b := range buildings {
		if _, exists := s.byName[b.Name]; exists {
			return nil, fmt.Errorf("duplicate building name: %s", b.Name)
		}
		s.buildings = append(s.buildings, b)
		s.byName[b.Name] = b
	}
	return s, nil
}

// All returns the buildings in load order.
func (s *Set) All() []*Building {
	return s.buildings
}

// Len returns the number of buildings in the set.
func (s *Set) Len() int {
	return len(s.buildings)
}

// Names returns the canonical names in load order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.buildings))
	for _, b := range s.buildings {
		names = append(names, b.Name)
	}
	return names
}

// Contains reports whether name is a known canonical name.
func (s *Set) Contains(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// AppendAlias appends an alias to the named building. The name must be a
// known canonical name.
func (s *Set) AppendAlias(name, alias string) error {
	b, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("unknown building: %s", name)
	}
	b.Aliases = append(b.Aliases, alias)
	return nil
}

// ReadNames reads a flat seed file of building names, one per line. Blank
// lines are skipped. This is the format of the campus building list used to
// seed the store.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading building list: %w", err)
	}

	return names, nil
}
