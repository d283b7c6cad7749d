package id

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_Next(t *testing.T) {
	seq := NewSequence(0)
	assert.Equal(t, "1", seq.Next())
	assert.Equal(t, "2", seq.Next())
	assert.Equal(t, "3", seq.Next())
}

func TestSequence_StartOffset(t *testing.T) {
	seq := NewSequence(41)
	assert.Equal(t, "42", seq.Next())
}

func TestSequence_Advance(t *testing.T) {
	seq := NewSequence(0)

	seq.Advance("3")
	assert.Equal(t, "4", seq.Next())

	// Lower values never move the counter backwards.
	seq.Advance("2")
	assert.Equal(t, "5", seq.Next())

	seq.Advance("not-a-number")
	assert.Equal(t, "6", seq.Next())
}

func TestSequence_ConcurrentUniqueness(t *testing.T) {
	seq := NewSequence(0)

	const workers, perWorker = 8, 500
	results := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results <- seq.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, workers*perWorker)
	for v := range results {
		require.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestUUIDGenerator_Next(t *testing.T) {
	gen := UUIDGenerator{}
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		v := gen.Next()
		parsed, err := uuid.Parse(v)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
		require.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		wantErr  bool
	}{
		{name: "empty defaults to sequence", strategy: ""},
		{name: "sequence", strategy: StrategySequence},
		{name: "uuid", strategy: StrategyUUID},
		{name: "unknown", strategy: "snowflake", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := New(tt.strategy)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, gen.Next())
		})
	}
}

func TestNew_SequenceIsAdvancer(t *testing.T) {
	gen, err := New(StrategySequence)
	require.NoError(t, err)
	_, ok := gen.(Advancer)
	assert.True(t, ok)
}
