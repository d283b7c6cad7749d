package store

// Record is the constraint satisfied by every stored type.
// WithID returns a copy of the record carrying the given identifier.
type Record[T any] interface {
	GetID() string
	WithID(id string) T
}

// Field is a named string accessor over a record, used by Search.
type Field[T any] struct {
	// Name is the selector used by callers (e.g. "title").
	Name string
	// Value extracts the field text from a record.
	Value func(T) string
	// CaseSensitive disables case folding when matching this field.
	CaseSensitive bool
}

// Text returns a case-insensitive search field.
func Text[T any](name string, value func(T) string) Field[T] {
	return Field[T]{Name: name, Value: value}
}

// Exact returns a case-sensitive search field, for codes such as ISBNs.
func Exact[T any](name string, value func(T) string) Field[T] {
	return Field[T]{Name: name, Value: value, CaseSensitive: true}
}
