// Package building resolves free-text event locations to canonical campus
// buildings.
//
// Each building carries a canonical name and a growing list of aliases
// collected through human review. Resolution scores the location text
// against every name and alias with a 0-100 partial-ratio similarity and
// picks the first building to reach the maximum score, so results are
// deterministic even when aliases overlap between buildings.
package building
