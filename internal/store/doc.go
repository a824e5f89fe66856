// Package store persists building and event documents in SQLite.
//
// The store keeps the document shape the pipeline works with: buildings as
// (canonical name, alias list) pairs in seed order, events keyed by their
// stable scrape identity. Buildings are seeded once from a flat file and
// mutated only by appending aliases; events are upserted per scrape run.
package store
