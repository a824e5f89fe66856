// Package cli implements the campus-events command tree.
package cli
