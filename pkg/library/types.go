package library

import "github.com/codtech/libraryd/pkg/store"

// Kind names one of the catalog's record collections.
type Kind string

const (
	KindBooks      Kind = "books"
	KindAuthors    Kind = "authors"
	KindCategories Kind = "categories"
)

// Kinds lists the catalog kinds in display order.
var Kinds = []Kind{KindBooks, KindAuthors, KindCategories}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Singular returns the display name of one record of the kind, e.g. "Book".
func (k Kind) Singular() string {
	switch k {
	case KindBooks:
		return "Book"
	case KindAuthors:
		return "Author"
	case KindCategories:
		return "Category"
	default:
		return string(k)
	}
}

// Book is a catalog entry. Author and Category hold names, not ids.
type Book struct {
	ID            string `json:"id" yaml:"id" expr:"id"`
	Title         string `json:"title" yaml:"title" expr:"title"`
	Author        string `json:"author" yaml:"author" expr:"author"`
	ISBN          string `json:"isbn" yaml:"isbn" expr:"isbn"`
	Category      string `json:"category" yaml:"category" expr:"category"`
	PublishedYear int    `json:"publishedYear" yaml:"publishedYear" expr:"publishedYear"`
	Available     bool   `json:"available" yaml:"available" expr:"available"`
}

func (b Book) GetID() string         { return b.ID }
func (b Book) WithID(id string) Book { b.ID = id; return b }

// Author is a person who writes books.
type Author struct {
	ID   string `json:"id" yaml:"id" expr:"id"`
	Name string `json:"name" yaml:"name" expr:"name"`
	Bio  string `json:"bio" yaml:"bio" expr:"bio"`
}

func (a Author) GetID() string           { return a.ID }
func (a Author) WithID(id string) Author { a.ID = id; return a }

// Category groups books by genre.
type Category struct {
	ID          string `json:"id" yaml:"id" expr:"id"`
	Name        string `json:"name" yaml:"name" expr:"name"`
	Description string `json:"description" yaml:"description" expr:"description"`
}

func (c Category) GetID() string             { return c.ID }
func (c Category) WithID(id string) Category { c.ID = id; return c }

// BookFields are the searchable book fields. ISBN matching is case-sensitive.
func BookFields() []store.Field[Book] {
	return []store.Field[Book]{
		store.Text("title", func(b Book) string { return b.Title }),
		store.Text("author", func(b Book) string { return b.Author }),
		store.Text("category", func(b Book) string { return b.Category }),
		store.Exact("isbn", func(b Book) string { return b.ISBN }),
	}
}

// AuthorFields are the searchable author fields.
func AuthorFields() []store.Field[Author] {
	return []store.Field[Author]{
		store.Text("name", func(a Author) string { return a.Name }),
		store.Text("bio", func(a Author) string { return a.Bio }),
	}
}

// CategoryFields are the searchable category fields.
func CategoryFields() []store.Field[Category] {
	return []store.Field[Category]{
		store.Text("name", func(c Category) string { return c.Name }),
		store.Text("description", func(c Category) string { return c.Description }),
	}
}

// Default search fields per kind.
var (
	DefaultBookFields     = []string{"title", "author", "category", "isbn"}
	DefaultAuthorFields   = []string{"name"}
	DefaultCategoryFields = []string{"name"}
)
