// Package id provides identifier generators for catalog records.
//
// Two strategies are available:
//
//   - Sequence: a monotonic decimal counter ("1", "2", "3", ...). This is the
//     default and matches the short numeric ids of the seed data.
//   - UUID: random RFC 4122 version 4 identifiers backed by github.com/google/uuid.
//
// Generators only promise that they never return the same value twice. Callers
// that hold pre-existing records (seed data, imported ids) must still check a
// generated id against the live collection; see store.Store.Insert.
//
// Wall-clock derived ids are deliberately absent: two inserts within the same
// clock tick would collide.
package id
