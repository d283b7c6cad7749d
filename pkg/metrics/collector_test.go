package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/store"
)

func TestCollector_StoreOperations(t *testing.T) {
	var catalog *library.Catalog
	c := NewCollector(Sources{Records: func() library.Overview { return catalog.Overview() }})

	catalog, err := library.New(library.Options{Seed: library.DefaultSeed(), Observer: c})
	require.NoError(t, err)

	book := catalog.Books.Insert(library.Book{Title: "Dune"})
	catalog.Books.Delete(book.ID)
	catalog.Books.Delete(book.ID)
	catalog.Authors.Insert(library.Author{Name: "Frank Herbert"})
	catalog.Reset()

	assert.Equal(t, 1.0, c.StoreOperations("books", store.OpInsert))
	assert.Equal(t, 1.0, c.StoreOperations("books", store.OpDelete))
	assert.Equal(t, 1.0, c.StoreOperations("authors", store.OpInsert))
	assert.Equal(t, 1.0, c.StoreOperations("categories", store.OpReset))

	var b strings.Builder
	_, err = c.Registry().WriteTo(&b)
	require.NoError(t, err)
	out := b.String()
	assert.Contains(t, out, `libraryd_store_operations_total{op="insert",resource="books"} 1`)
	assert.Contains(t, out, `libraryd_records{resource="books"} 3`)
	assert.Contains(t, out, `libraryd_records{resource="categories"} 3`)
	assert.Contains(t, out, "# TYPE libraryd_uptime_seconds gauge")
	assert.NotContains(t, out, "libraryd_event_subscribers", "no source, no samples")
}

func TestCollector_Requests(t *testing.T) {
	c := NewCollector(Sources{Subscribers: func() int { return 2 }})

	c.ObserveRequest("GET", "GET /api/books", 200, 3*time.Millisecond)
	c.ObserveRequest("GET", "GET /api/books", 200, 30*time.Millisecond)
	c.ObserveRequest("GET", "unmatched", 404, time.Millisecond)

	assert.Equal(t, 2.0, c.Requests("GET", "GET /api/books", 200))
	assert.Equal(t, 1.0, c.Requests("GET", "unmatched", 404))

	var b strings.Builder
	_, err := c.Registry().WriteTo(&b)
	require.NoError(t, err)
	out := b.String()
	assert.Contains(t, out, `libraryd_http_request_duration_seconds_count{method="GET",route="GET /api/books"} 2`)
	assert.Contains(t, out, `libraryd_http_request_duration_seconds_bucket{le="0.005",method="GET",route="GET /api/books"} 1`)
	assert.Contains(t, out, "libraryd_event_subscribers 2\n")
	assert.NotContains(t, out, "libraryd_records", "no source, no samples")
}
