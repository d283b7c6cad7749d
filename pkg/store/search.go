package store

import (
	"strings"

	"golang.org/x/text/cases"
)

// Query combines a text search with an optional filter expression.
type Query struct {
	// Text is matched as a substring against Fields. Empty matches everything.
	Text string
	// Fields names the fields Text is matched against. Empty means the store defaults.
	Fields []string
	// Filter is an optional expr-lang boolean expression; see Where.
	Filter string
}

// Search returns, in collection order, every record where at least one of the
// given fields contains query. Matching is case-insensitive unless the field
// is marked CaseSensitive. With no fields the store defaults are used; an empty
// query returns the whole collection.
func (s *Store[T]) Search(query string, fields ...Field[T]) []T {
	if query == "" {
		return s.List()
	}
	if len(fields) == 0 {
		fields = s.defaults
	}

	match := newMatcher(query, fields)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0)
	for _, rec := range s.items {
		if match(rec) {
			result = append(result, rec)
		}
	}
	return result
}

// SearchFields is Search with fields selected by name.
func (s *Store[T]) SearchFields(query string, names ...string) ([]T, error) {
	fields, err := s.Fields(names...)
	if err != nil {
		return nil, err
	}
	return s.Search(query, fields...), nil
}

// Find applies q.Text over q.Fields, then q.Filter, preserving collection order.
func (s *Store[T]) Find(q Query) ([]T, error) {
	hits, err := s.SearchFields(q.Text, q.Fields...)
	if err != nil {
		return nil, err
	}
	if q.Filter == "" {
		return hits, nil
	}
	return s.filter(q.Filter, hits)
}

// newMatcher builds the search predicate for one query.
// A cases.Caser is stateful, so each predicate owns its own.
func newMatcher[T any](query string, fields []Field[T]) func(T) bool {
	fold := cases.Fold()
	folded := fold.String(query)

	return func(rec T) bool {
		for _, f := range fields {
			value := f.Value(rec)
			if f.CaseSensitive {
				if strings.Contains(value, query) {
					return true
				}
				continue
			}
			if strings.Contains(fold.String(value), folded) {
				return true
			}
		}
		return false
	}
}
