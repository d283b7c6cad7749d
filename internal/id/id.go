package id

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Generator produces identifiers. Implementations must be safe for concurrent use.
type Generator interface {
	// Next returns an identifier never returned before by this generator.
	Next() string
}

// Strategy names an identifier generation strategy.
type Strategy string

// Supported strategies.
const (
	StrategySequence Strategy = "sequence"
	StrategyUUID     Strategy = "uuid"
)

// New returns a generator for the named strategy.
// An empty strategy selects StrategySequence.
func New(strategy Strategy) (Generator, error) {
	switch strategy {
	case StrategySequence, "":
		return NewSequence(0), nil
	case StrategyUUID:
		return UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q (want %q or %q)", strategy, StrategySequence, StrategyUUID)
	}
}

// Sequence is a monotonic counter generator.
type Sequence struct {
	mu   sync.Mutex
	last uint64
}

// NewSequence returns a Sequence whose first value is start+1.
func NewSequence(start uint64) *Sequence {
	return &Sequence{last: start}
}

// Next returns the next counter value in decimal.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return strconv.FormatUint(s.last, 10)
}

// Advance moves the counter past id when id is a decimal number larger than
// the current position. Non-numeric ids are ignored.
// Stores call this for seeded records so the sequence skips ids already taken.
func (s *Sequence) Advance(id string) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > s.last {
		s.last = n
	}
}

// UUIDGenerator returns random version 4 UUIDs.
type UUIDGenerator struct{}

// Next returns a new UUID string.
func (UUIDGenerator) Next() string {
	return uuid.NewString()
}

// Advancer is implemented by generators that can be told about ids assigned
// outside of the generator.
type Advancer interface {
	Advance(id string)
}
