package library

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/text/cases"

	"github.com/codtech/libraryd/internal/id"
	"github.com/codtech/libraryd/pkg/logging"
	"github.com/codtech/libraryd/pkg/store"
)

// Options configures a Catalog.
type Options struct {
	// Seed is loaded at construction and restored by Reset.
	Seed Seed
	// IDStrategy selects how each store generates identifiers. Empty means sequence.
	IDStrategy id.Strategy
	// Observer receives the events of all three stores.
	Observer store.Observer
	Logger   *slog.Logger
}

// Catalog holds one store per kind.
type Catalog struct {
	Books      *store.Store[Book]
	Authors    *store.Store[Author]
	Categories *store.Store[Category]

	logger *slog.Logger
}

// Overview is a record count per kind.
type Overview struct {
	Books      int `json:"books"`
	Authors    int `json:"authors"`
	Categories int `json:"categories"`
}

// Total returns the number of records across kinds.
func (o Overview) Total() int {
	return o.Books + o.Authors + o.Categories
}

// New builds a Catalog and loads opts.Seed.
func New(opts Options) (*Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	books, err := newStore(opts, string(KindBooks), BookFields(), DefaultBookFields, opts.Seed.Books, logger)
	if err != nil {
		return nil, err
	}
	authors, err := newStore(opts, string(KindAuthors), AuthorFields(), DefaultAuthorFields, opts.Seed.Authors, logger)
	if err != nil {
		return nil, err
	}
	categories, err := newStore(opts, string(KindCategories), CategoryFields(), DefaultCategoryFields, opts.Seed.Categories, logger)
	if err != nil {
		return nil, err
	}

	c := &Catalog{Books: books, Authors: authors, Categories: categories, logger: logger}
	ov := c.Overview()
	logger.Info("catalog loaded", "books", ov.Books, "authors", ov.Authors, "categories", ov.Categories)
	return c, nil
}

func newStore[T store.Record[T]](opts Options, name string, fields []store.Field[T], defaults []string, seed []T, logger *slog.Logger) (*store.Store[T], error) {
	gen, err := id.New(opts.IDStrategy)
	if err != nil {
		return nil, err
	}
	return store.New(store.Options[T]{
		Name:          name,
		Fields:        fields,
		DefaultFields: defaults,
		Seed:          seed,
		IDs:           gen,
		Observer:      opts.Observer,
		Logger:        logger,
	})
}

// Overview reports the current record counts.
func (c *Catalog) Overview() Overview {
	return Overview{
		Books:      c.Books.Count(),
		Authors:    c.Authors.Count(),
		Categories: c.Categories.Count(),
	}
}

// Reset restores every store to its seed data.
func (c *Catalog) Reset() Overview {
	ov := Overview{
		Books:      c.Books.Reset(),
		Authors:    c.Authors.Reset(),
		Categories: c.Categories.Reset(),
	}
	c.logger.Info("catalog reset", "books", ov.Books, "authors", ov.Authors, "categories", ov.Categories)
	return ov
}

// MissingReference is a book field naming a record that does not exist.
type MissingReference struct {
	Field string `json:"field"`
	Name  string `json:"name"`
}

// ReferenceError lists the unresolved names of a book.
type ReferenceError struct {
	Missing []MissingReference
}

func (e *ReferenceError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = fmt.Sprintf("%s %q", m.Field, m.Name)
	}
	return "unknown " + strings.Join(parts, ", ")
}

// StatusCode returns the HTTP status code for this error.
func (e *ReferenceError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *ReferenceError) Hint() string {
	return "Create the author or category first, or use an existing name."
}

// CheckReferences reports, as a *ReferenceError, the author and category
// names of b that match no Author or Category record. Names compare
// case-insensitively. Returns nil when both resolve.
func (c *Catalog) CheckReferences(b Book) error {
	var missing []MissingReference
	if !containsName(c.Authors.List(), b.Author, func(a Author) string { return a.Name }) {
		missing = append(missing, MissingReference{Field: "author", Name: b.Author})
	}
	if !containsName(c.Categories.List(), b.Category, func(cat Category) string { return cat.Name }) {
		missing = append(missing, MissingReference{Field: "category", Name: b.Category})
	}
	if len(missing) == 0 {
		return nil
	}
	return &ReferenceError{Missing: missing}
}

func containsName[T any](records []T, name string, nameOf func(T) string) bool {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))
	for _, rec := range records {
		if fold.String(strings.TrimSpace(nameOf(rec))) == want {
			return true
		}
	}
	return false
}
