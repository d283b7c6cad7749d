package apidocs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/codtech/libraryd/pkg/api/types"
	"github.com/codtech/libraryd/pkg/library"
)

// Parameter is a path or query parameter of an endpoint.
type Parameter struct {
	Name        string
	In          string // "path" or "query"
	Description string
	Required    bool
}

// Endpoint documents one method and path.
type Endpoint struct {
	Method      string
	Path        string
	Summary     string
	Parameters  []Parameter
	Status      int
	RequestBody any
	// ResponseBody is an example response; nil for endpoints without one.
	ResponseBody any
	// OperationID is unique across the catalogue.
	OperationID string
	Kind        library.Kind
}

// Section groups the endpoints of one resource.
type Section struct {
	Name      string
	Endpoints []Endpoint
}

// Sections returns the full endpoint catalogue in display order.
func Sections() []Section {
	seed := library.DefaultSeed()

	return []Section{
		{
			Name: string(library.KindBooks),
			Endpoints: crud(library.KindBooks, seed.Books, seed.Books[0],
				library.Book{Title: "New Book Title", Author: "Author Name", ISBN: "1234567890123", Category: "Fiction", PublishedYear: 2023, Available: true},
				library.Book{Title: "Updated Book Title", Author: "Updated Author Name", ISBN: "1234567890123", Category: "Non-fiction", PublishedYear: 2022, Available: false},
			),
		},
		{
			Name: string(library.KindAuthors),
			Endpoints: crud(library.KindAuthors, seed.Authors, seed.Authors[0],
				library.Author{Name: "New Author Name", Bio: "Author biography"},
				library.Author{Name: "Updated Author Name", Bio: "Updated author biography"},
			),
		},
		{
			Name: string(library.KindCategories),
			Endpoints: crud(library.KindCategories, seed.Categories, seed.Categories[0],
				library.Category{Name: "New Category Name", Description: "Category description"},
				library.Category{Name: "Updated Category Name", Description: "Updated category description"},
			),
		},
		{
			Name:      "system",
			Endpoints: systemEndpoints(),
		},
	}
}

// Endpoints returns every endpoint of the catalogue.
func Endpoints() []Endpoint {
	var all []Endpoint
	for _, s := range Sections() {
		all = append(all, s.Endpoints...)
	}
	return all
}

func crud[T interface{ WithID(string) T }](kind library.Kind, list []T, one, create, update T) []Endpoint {
	singular := kind.Singular()
	lower := strings.ToLower(singular)
	base := "/api/" + string(kind)
	item := base + "/{id}"
	op := strings.ReplaceAll(singular, " ", "")

	idParam := func(desc string) []Parameter {
		return []Parameter{{Name: "id", In: "path", Description: desc, Required: true}}
	}

	return []Endpoint{
		{
			Method:  http.MethodGet,
			Path:    base,
			Summary: fmt.Sprintf("Retrieve all %s", kind),
			Parameters: []Parameter{
				{Name: "q", In: "query", Description: "Case-insensitive substring matched against the search fields"},
				{Name: "fields", In: "query", Description: "Comma-separated search fields; defaults to the kind's default fields"},
				{Name: "filter", In: "query", Description: "Boolean expression over record fields, e.g. available && publishedYear < 1950"},
			},
			Status:       http.StatusOK,
			ResponseBody: list,
			OperationID:  "list" + titleKind(kind),
			Kind:         kind,
		},
		{
			Method:       http.MethodGet,
			Path:         item,
			Summary:      fmt.Sprintf("Retrieve a specific %s by ID", lower),
			Parameters:   idParam(fmt.Sprintf("The ID of the %s", lower)),
			Status:       http.StatusOK,
			ResponseBody: one,
			OperationID:  "get" + op,
			Kind:         kind,
		},
		{
			Method:       http.MethodPost,
			Path:         base,
			Summary:      fmt.Sprintf("Add a new %s", lower),
			Status:       http.StatusCreated,
			RequestBody:  create,
			ResponseBody: create.WithID("123"),
			OperationID:  "create" + op,
			Kind:         kind,
		},
		{
			Method:       http.MethodPut,
			Path:         item,
			Summary:      fmt.Sprintf("Update %s", article(lower)),
			Parameters:   idParam(fmt.Sprintf("The ID of the %s to update", lower)),
			Status:       http.StatusOK,
			RequestBody:  update,
			ResponseBody: update.WithID("123"),
			OperationID:  "update" + op,
			Kind:         kind,
		},
		{
			Method:       http.MethodDelete,
			Path:         item,
			Summary:      fmt.Sprintf("Delete %s", article(lower)),
			Parameters:   idParam(fmt.Sprintf("The ID of the %s to delete", lower)),
			Status:       http.StatusOK,
			ResponseBody: types.DeleteResponse{Success: true, Message: DeletedMessage(kind)},
			OperationID:  "delete" + op,
			Kind:         kind,
		},
	}
}

func systemEndpoints() []Endpoint {
	return []Endpoint{
		{
			Method:       http.MethodPost,
			Path:         "/api/reset",
			Summary:      "Restore every collection to its seed data",
			Status:       http.StatusOK,
			ResponseBody: types.ResetResponse{Success: true, Message: ResetMessage, Counts: library.Overview{Books: 3, Authors: 3, Categories: 3}},
			OperationID:  "resetCatalog",
		},
		{
			Method:       http.MethodGet,
			Path:         "/api/stats",
			Summary:      "Record counts and mutation counters",
			Status:       http.StatusOK,
			ResponseBody: types.StatsResponse{Counts: library.Overview{Books: 3, Authors: 3, Categories: 3}},
			OperationID:  "getStats",
		},
		{
			Method:      http.MethodGet,
			Path:        "/api/events",
			Summary:     "WebSocket stream of change events, one JSON object per message",
			Parameters:  []Parameter{{Name: "resource", In: "query", Description: "Only stream events of this kind"}},
			Status:      http.StatusSwitchingProtocols,
			OperationID: "streamEvents",
		},
		{
			Method:      http.MethodGet,
			Path:        "/api/docs",
			Summary:     "This document as OpenAPI 3 JSON",
			Status:      http.StatusOK,
			OperationID: "getDocsJSON",
		},
		{
			Method:      http.MethodGet,
			Path:        "/api/docs.yaml",
			Summary:     "This document as OpenAPI 3 YAML",
			Status:      http.StatusOK,
			OperationID: "getDocsYAML",
		},
		{
			Method:       http.MethodGet,
			Path:         "/health",
			Summary:      "Liveness check",
			Status:       http.StatusOK,
			ResponseBody: types.HealthResponse{Status: "ok"},
			OperationID:  "getHealth",
		},
		{
			Method:      http.MethodGet,
			Path:        "/metrics",
			Summary:     "Prometheus metrics in the text exposition format",
			Status:      http.StatusOK,
			OperationID: "getMetrics",
		},
	}
}

// ResetMessage is the message of a successful reset.
const ResetMessage = "Catalog reset to seed data"

// DeletedMessage returns the message of a successful delete, e.g. "Book deleted successfully".
func DeletedMessage(kind library.Kind) string {
	return kind.Singular() + " deleted successfully"
}

// NotFoundMessage returns the message for an absent record, e.g. "Book not found".
func NotFoundMessage(kind library.Kind) string {
	return kind.Singular() + " not found"
}

// ExampleJSON renders an example body as indented JSON.
func ExampleJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func titleKind(kind library.Kind) string {
	s := string(kind)
	return strings.ToUpper(s[:1]) + s[1:]
}

func article(noun string) string {
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + noun
	}
	return "a " + noun
}
