package library

// Seed is the initial content of a catalog.
type Seed struct {
	Books      []Book     `json:"books" yaml:"books"`
	Authors    []Author   `json:"authors" yaml:"authors"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// Merge appends other's records to s.
func (s *Seed) Merge(other Seed) {
	s.Books = append(s.Books, other.Books...)
	s.Authors = append(s.Authors, other.Authors...)
	s.Categories = append(s.Categories, other.Categories...)
}

// DefaultSeed returns the built-in catalog: three books with their authors
// and categories.
func DefaultSeed() Seed {
	return Seed{
		Books: []Book{
			{
				ID:            "1",
				Title:         "The Great Gatsby",
				Author:        "F. Scott Fitzgerald",
				ISBN:          "9780743273565",
				Category:      "Fiction",
				PublishedYear: 1925,
				Available:     true,
			},
			{
				ID:            "2",
				Title:         "To Kill a Mockingbird",
				Author:        "Harper Lee",
				ISBN:          "9780061120084",
				Category:      "Fiction",
				PublishedYear: 1960,
				Available:     true,
			},
			{
				ID:            "3",
				Title:         "The Hobbit",
				Author:        "J.R.R. Tolkien",
				ISBN:          "9780547928227",
				Category:      "Fantasy",
				PublishedYear: 1937,
				Available:     false,
			},
		},
		Authors: []Author{
			{ID: "1", Name: "F. Scott Fitzgerald", Bio: "American novelist and short story writer"},
			{ID: "2", Name: "Harper Lee", Bio: "American novelist widely known for To Kill a Mockingbird"},
			{ID: "3", Name: "J.R.R. Tolkien", Bio: "English writer, poet, philologist, and academic"},
		},
		Categories: []Category{
			{ID: "1", Name: "Fiction", Description: "Literary works based on imagination"},
			{ID: "2", Name: "Non-fiction", Description: "Content based on facts and real events"},
			{ID: "3", Name: "Fantasy", Description: "Fiction with fantastic themes, often involving magic or the supernatural"},
		},
	}
}
