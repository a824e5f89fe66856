// Package review provides the interactive alias correction session.
//
// The session attaches to the location resolver as its observer: every
// match the resolver makes during a review run is presented to an operator,
// who confirms it or supplies the correct canonical building and,
// optionally, a new alias. New aliases are persisted immediately and take
// effect for the remaining resolutions of the run.
package review
