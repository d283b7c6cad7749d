package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codtech/libraryd/pkg/api"
	"github.com/codtech/libraryd/pkg/api/types"
	"github.com/codtech/libraryd/pkg/client"
	"github.com/codtech/libraryd/pkg/config"
	"github.com/codtech/libraryd/pkg/events"
	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/store"
)

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

type testServer struct {
	url string
	hub *events.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hub := events.NewHub(16)
	catalog, err := library.New(library.Options{Seed: library.DefaultSeed(), Observer: hub})
	require.NoError(t, err)

	srv, err := api.New(catalog, api.WithHub(hub))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testServer{url: ts.URL, hub: hub}
}

// =============================================================================
// Local commands
// =============================================================================

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "libraryd "), out)
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, runtime.Version(), v.Go)
	assert.NotEmpty(t, v.Version)
}

func TestDisplayVersion(t *testing.T) {
	assert.Equal(t, "v1.2.0", displayVersion("1.2.0"))
	assert.Equal(t, "v1.2.0", displayVersion("v1.2.0"))
	assert.Equal(t, "dev", displayVersion("dev"))
}

func TestDocs(t *testing.T) {
	out, err := execute(t, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "Books API")
	assert.Contains(t, out, "GET    /api/books")

	out, err = execute(t, "docs", "--format", "json")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])

	out, err = execute(t, "docs", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "openapi:")

	_, err = execute(t, "docs", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "docs", "--remote")
	assert.ErrorContains(t, err, "--remote requires")
}

func TestDocs_Remote(t *testing.T) {
	env := newTestServer(t)
	out, err := execute(t, "docs", "--remote", "--format", "json", "--server", env.url)
	require.NoError(t, err)
	assert.Contains(t, out, `"openapi"`)
}

// =============================================================================
// Resource commands
// =============================================================================

func TestBooks_List(t *testing.T) {
	env := newTestServer(t)

	out, err := execute(t, "books", "list", "--server", env.url)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"), lines[0])
	assert.Contains(t, lines[1], "The Great Gatsby")
	assert.Contains(t, lines[3], "no")

	out, err = execute(t, "books", "list", "--json", "--query", "MOCKINGBIRD", "--server", env.url)
	require.NoError(t, err)
	var books []library.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "2", books[0].ID)

	out, err = execute(t, "books", "list", "--filter", "!available", "--select", "$[*].title", "--server", env.url)
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit\n", out)

	out, err = execute(t, "books", "list", "-q", "nothing-matches", "--server", env.url)
	require.NoError(t, err)
	assert.Equal(t, "No books found.\n", out)
}

func TestBooks_ListErrors(t *testing.T) {
	env := newTestServer(t)

	_, err := execute(t, "books", "list", "-q", "x", "--fields", "title, colour", "--server", env.url)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, formatError(err), "Hint: Searchable fields for books")

	_, err = execute(t, "books", "list", "--select", "$[", "--server", env.url)
	assert.ErrorContains(t, err, "invalid JSONPath")
}

func TestBooks_Lifecycle(t *testing.T) {
	env := newTestServer(t)

	out, err := execute(t, "books", "add", "--server", env.url,
		"--title", "Dune", "--author", "Frank Herbert", "--isbn", "9780441172719",
		"--category", "Science Fiction", "--year", "1965")
	require.NoError(t, err)
	assert.Equal(t, "Created book 4: Dune\n", out)

	out, err = execute(t, "books", "get", "4", "--json", "--server", env.url)
	require.NoError(t, err)
	var got library.Book
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, library.Book{
		ID: "4", Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719",
		Category: "Science Fiction", PublishedYear: 1965, Available: true,
	}, got)

	out, err = execute(t, "books", "update", "4", "--available=false", "--server", env.url)
	require.NoError(t, err)
	assert.Equal(t, "Updated book 4\n", out)

	out, err = execute(t, "books", "get", "4", "--select", "$.available", "--server", env.url)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = execute(t, "books", "get", "4", "--server", env.url)
	require.NoError(t, err)
	assert.Contains(t, out, "title:")
	assert.Contains(t, out, "Frank Herbert")

	_, err = execute(t, "books", "update", "4", "--server", env.url)
	assert.ErrorContains(t, err, "nothing to update")

	out, err = execute(t, "books", "delete", "4", "--server", env.url)
	require.NoError(t, err)
	assert.Equal(t, "Book deleted successfully\n", out)

	_, err = execute(t, "books", "get", "4", "--server", env.url)
	assert.ErrorContains(t, err, "book not found: 4")

	_, err = execute(t, "books", "delete", "4", "--server", env.url)
	assert.ErrorContains(t, err, "book not found: 4")
}

func TestBooks_AddValidation(t *testing.T) {
	env := newTestServer(t)
	_, err := execute(t, "books", "add", "--title", "Dune", "--server", env.url)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "validation_error", apiErr.ErrorCode)
}

func TestAuthorsAndCategories(t *testing.T) {
	env := newTestServer(t)

	out, err := execute(t, "authors", "add", "--name", "Frank Herbert", "--bio", "Wrote Dune", "--server", env.url)
	require.NoError(t, err)
	assert.Equal(t, "Created author 4: Frank Herbert\n", out)

	out, err = execute(t, "authors", "list", "--query", "herbert", "--json", "--server", env.url)
	require.NoError(t, err)
	var authors []library.Author
	require.NoError(t, json.Unmarshal([]byte(out), &authors))
	require.Len(t, authors, 1)
	assert.Equal(t, "Wrote Dune", authors[0].Bio)

	out, err = execute(t, "authors", "update", "4", "--bio", "American author", "--server", env.url)
	require.NoError(t, err)
	assert.Equal(t, "Updated author 4\n", out)

	out, err = execute(t, "categories", "list", "--server", env.url)
	require.NoError(t, err)
	assert.Contains(t, out, "Non-fiction")

	out, err = execute(t, "categories", "rm", "2", "--server", env.url)
	require.NoError(t, err)
	assert.Equal(t, "Category deleted successfully\n", out)

	_, err = execute(t, "categories", "get", "2", "--server", env.url)
	assert.ErrorContains(t, err, "libraryd categories list")
}

func TestResetAndStats(t *testing.T) {
	env := newTestServer(t)

	_, err := execute(t, "books", "delete", "1", "--server", env.url)
	require.NoError(t, err)

	out, err := execute(t, "stats", "--server", env.url)
	require.NoError(t, err)
	assert.Contains(t, out, "Books:")
	assert.Contains(t, out, "Deletes:")

	out, err = execute(t, "reset", "--json", "--server", env.url)
	require.NoError(t, err)
	var resp types.ResetResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Counts.Books)

	out, err = execute(t, "reset", "--server", env.url)
	require.NoError(t, err)
	assert.Contains(t, out, "books: 3, authors: 3, categories: 3")
}

func TestConnectionErrorMessage(t *testing.T) {
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	_, err := execute(t, "books", "list", "--server", url)
	require.Error(t, err)
	msg := formatError(err)
	assert.Contains(t, msg, "cannot connect")
	assert.Contains(t, msg, "libraryd serve")
}

func TestWatch(t *testing.T) {
	env := newTestServer(t)

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := execute(t, "watch", "--resource", "books", "--count", "1", "--server", env.url)
		done <- result{out, err}
	}()

	require.Eventually(t, func() bool { return env.hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	c := client.New(env.url)
	_, err := c.Authors().Create(ctx, library.Author{Name: "Frank Herbert"})
	require.NoError(t, err)
	_, err = c.Books().Delete(ctx, "2")
	require.NoError(t, err)

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Contains(t, r.out, "delete books/2")
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after one event")
	}
}

func TestWatch_UnknownResource(t *testing.T) {
	_, err := execute(t, "watch", "--resource", "dvds")
	assert.ErrorContains(t, err, "unknown resource")
}

func TestFormatEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local)
	assert.Equal(t, "12:30:00  insert books/4", formatEvent(store.Event{Resource: "books", Op: store.OpInsert, ID: "4", At: at}))
	assert.Equal(t, "12:30:00  reset  authors (3 records)", formatEvent(store.Event{Resource: "authors", Op: store.OpReset, Count: 3, At: at}))
}

// =============================================================================
// Serve wiring
// =============================================================================

func TestBuildServer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dune.yaml"), []byte(`
books:
  - title: Dune
    author: Frank Herbert
    isbn: "9780441172719"
    category: Science Fiction
    publishedYear: 1965
    available: true
`), 0o644))

	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.Dir = dir
	cfg.Catalog.SeedFiles = []string{"*.yaml"}
	cfg.Catalog.IDStrategy = "uuid"

	srv, err := buildServer(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	books, err := client.New(ts.URL).Books().List(context.Background(), client.ListOptions{})
	require.NoError(t, err)
	require.Len(t, books, 4)
	assert.Equal(t, "Dune", books[3].Title)
	assert.Len(t, books[3].ID, 36)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `libraryd_records{resource="books"} 4`)
	assert.Contains(t, string(body), `libraryd_http_requests_total{method="GET",route="GET /api/books",status="200"} 1`)
}

func TestServeConfig_FlagsOverrideFile(t *testing.T) {
	t.Setenv(config.EnvAddress, "")
	t.Setenv(config.EnvLogLevel, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "libraryd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":9000\"\nlog:\n  level: warn\n"), 0o644))

	resetFlags(rootCmd)
	require.NoError(t, rootCmd.PersistentFlags().Set("config", path))
	require.NoError(t, serveCmd.Flags().Set("log-level", "debug"))
	require.NoError(t, serveCmd.Flags().Set("strict", "true"))
	require.NoError(t, serveCmd.Flags().Set("no-default-seed", "true"))
	t.Cleanup(func() { resetFlags(rootCmd) })

	cfg, err := serveConfig(serveCmd)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Catalog.StrictReferences)
	assert.False(t, cfg.Catalog.SeedDefault)

	require.NoError(t, serveCmd.Flags().Set("id-strategy", "snowflake"))
	_, err = serveConfig(serveCmd)
	assert.ErrorContains(t, err, "catalog.idStrategy")
}

// =============================================================================
// Shell helpers
// =============================================================================

func TestBookEditor(t *testing.T) {
	ed := newBookEditor(library.Book{ID: "3", Title: "The Hobbit", PublishedYear: 1937})
	assert.Equal(t, "1937", ed.year)

	ed.author = "J.R.R. Tolkien"
	ed.year = "1938"
	ed.available = true
	book, err := ed.commit()
	require.NoError(t, err)
	assert.Equal(t, library.Book{ID: "3", Title: "The Hobbit", Author: "J.R.R. Tolkien", PublishedYear: 1938, Available: true}, book)

	empty := newBookEditor(library.Book{})
	assert.Empty(t, empty.year)
	_, err = empty.commit()
	assert.ErrorContains(t, err, "year is required")
}

func TestShellOptions(t *testing.T) {
	assert.Len(t, menuOptions(), 6)
	assert.Len(t, actionOptions(false), 2)
	assert.Len(t, actionOptions(true), 4)
	assert.Len(t, actionOptions(true, actionToggle), 5)

	opts := recordOptions([]library.Book{{Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965}}, bookLabel)
	require.Len(t, opts, 1)
	assert.Equal(t, "Dune by Frank Herbert (1965)", opts[0].Key)
	assert.Equal(t, 0, opts[0].Value)
}
