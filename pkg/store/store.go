package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/expr-lang/expr/vm"

	"github.com/codtech/libraryd/internal/id"
	"github.com/codtech/libraryd/pkg/logging"
)

// Options configures a Store.
type Options[T any] struct {
	// Name is the resource name (e.g. "books"). Required.
	Name string
	// Fields are the searchable string fields of T, in display order.
	Fields []Field[T]
	// DefaultFields names the fields Search uses when none are given.
	// Empty means all Fields.
	DefaultFields []string
	// Seed is the initial content, restored by Reset. Records without an id get one generated.
	Seed []T
	// IDs generates identifiers. Defaults to a Sequence.
	IDs id.Generator
	// Observer receives an Event after every mutation. Defaults to NoopObserver.
	Observer Observer
	// Logger defaults to logging.Nop().
	Logger *slog.Logger
}

// Store is an ordered in-memory collection of uniquely identified records.
type Store[T Record[T]] struct {
	mu    sync.RWMutex
	items []T
	index map[string]int

	name     string
	fields   []Field[T]
	byName   map[string]Field[T]
	defaults []Field[T]
	seed     []T
	ids      id.Generator
	observer Observer
	logger   *slog.Logger

	programMu sync.RWMutex
	programs  map[string]*vm.Program
}

// New creates a Store and loads its seed data.
func New[T Record[T]](opts Options[T]) (*Store[T], error) {
	if opts.Name == "" {
		return nil, errors.New("store name cannot be empty")
	}

	s := &Store[T]{
		name:     opts.Name,
		fields:   opts.Fields,
		byName:   make(map[string]Field[T], len(opts.Fields)),
		seed:     slices.Clone(opts.Seed),
		ids:      opts.IDs,
		observer: opts.Observer,
		logger:   opts.Logger,
		programs: make(map[string]*vm.Program),
	}
	if s.ids == nil {
		s.ids = id.NewSequence(0)
	}
	if s.observer == nil {
		s.observer = NoopObserver{}
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}

	for _, f := range opts.Fields {
		if f.Name == "" || f.Value == nil {
			return nil, fmt.Errorf("%s: search fields need a name and an accessor", opts.Name)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate search field %q", opts.Name, f.Name)
		}
		s.byName[f.Name] = f
	}

	if len(opts.DefaultFields) == 0 {
		s.defaults = opts.Fields
	} else {
		defaults, err := s.Fields(opts.DefaultFields...)
		if err != nil {
			return nil, err
		}
		s.defaults = defaults
	}

	if err := s.loadSeed(); err != nil {
		return nil, fmt.Errorf("failed to load seed data for %q: %w", opts.Name, err)
	}
	return s, nil
}

// loadSeed replaces the collection with the seed data.
// Seed records without an id are assigned one; the assigned ids are kept in
// s.seed so repeated resets reproduce the same collection.
func (s *Store[T]) loadSeed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSeedLocked()
}

func (s *Store[T]) loadSeedLocked() error {
	s.items = make([]T, 0, len(s.seed))
	s.index = make(map[string]int, len(s.seed))

	if adv, ok := s.ids.(id.Advancer); ok {
		for _, rec := range s.seed {
			adv.Advance(rec.GetID())
		}
	}

	for i, rec := range s.seed {
		if rec.GetID() == "" {
			rec = rec.WithID(s.nextIDLocked())
			s.seed[i] = rec
		}
		if _, exists := s.index[rec.GetID()]; exists {
			return &ConflictError{Resource: s.name, ID: rec.GetID()}
		}
		s.index[rec.GetID()] = len(s.items)
		s.items = append(s.items, rec)
	}
	return nil
}

// nextIDLocked returns a generated id not held by any current record.
func (s *Store[T]) nextIDLocked() string {
	for {
		candidate := s.ids.Next()
		if candidate == "" {
			continue
		}
		if _, taken := s.index[candidate]; !taken {
			return candidate
		}
	}
}

func (s *Store[T]) emitLocked(op Op, recID string, rec any) {
	s.observer.Observe(Event{
		Resource: s.name,
		Op:       op,
		ID:       recID,
		Record:   rec,
		Count:    len(s.items),
		At:       time.Now(),
	})
}

// Insert appends a new record built from fields and returns it.
// Any id carried by fields is ignored; a fresh one is generated.
func (s *Store[T]) Insert(fields T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := fields.WithID(s.nextIDLocked())
	s.index[rec.GetID()] = len(s.items)
	s.items = append(s.items, rec)

	s.logger.Debug("record inserted", "resource", s.name, "id", rec.GetID())
	s.emitLocked(OpInsert, rec.GetID(), rec)
	return rec
}

// Update replaces the record with the same id, keeping its position.
// Returns a *NotFoundError, and leaves the collection untouched, when the id is absent.
func (s *Store[T]) Update(rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[rec.GetID()]
	if !ok {
		var zero T
		return zero, &NotFoundError{Resource: s.name, ID: rec.GetID()}
	}
	s.items[pos] = rec

	s.logger.Debug("record updated", "resource", s.name, "id", rec.GetID())
	s.emitLocked(OpUpdate, rec.GetID(), rec)
	return rec, nil
}

// Delete removes the record with the given id and reports whether one was removed.
func (s *Store[T]) Delete(recID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[recID]
	if !ok {
		return false
	}

	removed := s.items[pos]
	s.items = slices.Delete(s.items, pos, pos+1)
	delete(s.index, recID)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].GetID()] = i
	}

	s.logger.Debug("record deleted", "resource", s.name, "id", recID)
	s.emitLocked(OpDelete, recID, removed)
	return true
}

// Get returns the record with the given id.
func (s *Store[T]) Get(recID string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[recID]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[pos], true
}

// List returns a copy of the collection in insertion order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Count returns the number of records held.
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// SeedCount returns the number of seed records.
func (s *Store[T]) SeedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seed)
}

// Reset restores the seed data and returns the resulting record count.
// The id generator is not rewound, so ids handed out before the reset are not reissued
// unless they belong to a seed record.
func (s *Store[T]) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Seed ids were validated by New, so reloading cannot conflict.
	_ = s.loadSeedLocked()

	s.logger.Debug("store reset", "resource", s.name, "count", len(s.items))
	s.emitLocked(OpReset, "", nil)
	return len(s.items)
}

// Name returns the resource name.
func (s *Store[T]) Name() string {
	return s.name
}

// FieldNames returns the searchable field names in declaration order.
func (s *Store[T]) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// DefaultFieldNames returns the field names Search uses when none are given.
func (s *Store[T]) DefaultFieldNames() []string {
	names := make([]string, len(s.defaults))
	for i, f := range s.defaults {
		names[i] = f.Name
	}
	return names
}

// Fields resolves field names to selectors.
// Returns an *UnknownFieldError for the first name the store does not know.
func (s *Store[T]) Fields(names ...string) ([]Field[T], error) {
	fields := make([]Field[T], 0, len(names))
	for _, name := range names {
		f, ok := s.byName[name]
		if !ok {
			return nil, &UnknownFieldError{Resource: s.name, Field: name, Known: s.FieldNames()}
		}
		fields = append(fields, f)
	}
	return fields, nil
}
