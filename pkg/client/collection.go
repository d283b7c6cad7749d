package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/codtech/libraryd/pkg/api/types"
	"github.com/codtech/libraryd/pkg/library"
)

// ListOptions narrows a List call. The zero value lists everything.
type ListOptions struct {
	// Query is a case-insensitive substring to search for.
	Query string
	// Fields names the fields Query is matched against; empty uses the server defaults.
	Fields []string
	// Filter is a boolean expression over the record, e.g. "available && publishedYear < 1950".
	Filter string
}

func (o ListOptions) encode() string {
	v := url.Values{}
	if o.Query != "" {
		v.Set("q", o.Query)
	}
	if len(o.Fields) > 0 {
		v.Set("fields", strings.Join(o.Fields, ","))
	}
	if o.Filter != "" {
		v.Set("filter", o.Filter)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Collection is one kind of catalog record on the server.
type Collection[T any] struct {
	c    *Client
	kind library.Kind
}

// Kind returns the collection's kind.
func (r *Collection[T]) Kind() library.Kind {
	return r.kind
}

func (r *Collection[T]) path(id string) string {
	p := "/api/" + string(r.kind)
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	return p
}

// List returns the records matching opts in insertion order.
func (r *Collection[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.path("")+opts.encode(), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Get returns a record by id.
func (r *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.path(id), nil, http.StatusOK, &out)
	return out, err
}

// Create inserts rec and returns it with its server-assigned id.
func (r *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.path(""), rec, http.StatusCreated, &out)
	return out, err
}

// Update replaces the record with the given id.
func (r *Collection[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPut, r.path(id), rec, http.StatusOK, &out)
	return out, err
}

// Delete removes a record by id.
func (r *Collection[T]) Delete(ctx context.Context, id string) (*types.DeleteResponse, error) {
	var out types.DeleteResponse
	if err := r.c.do(ctx, http.MethodDelete, r.path(id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
