// Package store provides the generic in-memory entity store behind the catalog.
//
// A Store holds an ordered sequence of uniquely identified records of one
// entity kind. Insertion order is display order; there is no implicit sort.
// It supports:
//
//   - Insert with generated, collision-checked identifiers
//   - Whole-record Update in place (position preserved)
//   - Delete by id (absent ids are a no-op, not an error)
//   - List in insertion order
//   - Substring Search across selected string fields
//   - Where filtering with expr-lang boolean expressions
//   - Seed data and Reset back to it
//
// Core Types:
//
//   - Record: constraint implemented by stored types (GetID / WithID)
//   - Field: a named string accessor used by Search
//   - Store: the collection plus its operations
//   - Observer: receives an Event after every successful mutation
//
// Thread Safety:
//
// Every operation is atomic with respect to the others. A sync.RWMutex guards
// each Store, so reads proceed concurrently while writes are serialized.
// Observers are invoked while the write lock is held, in mutation order, and
// must not call back into the same Store.
//
// Usage:
//
//	books, err := store.New(store.Options[Book]{
//	    Name:   "books",
//	    Fields: bookFields,
//	    Seed:   seedBooks,
//	})
//
//	b := books.Insert(Book{Title: "Dune"})
//	_, err = books.Update(b)
//	removed := books.Delete(b.ID)
//	hits := books.Search("dune")
//	old, err := books.Where("publishedYear < 1950")
package store
