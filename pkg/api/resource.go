package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/codtech/libraryd/pkg/api/types"
	"github.com/codtech/libraryd/pkg/apidocs"
	"github.com/codtech/libraryd/pkg/httputil"
	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/store"
)

// maxBodySize caps request bodies.
const maxBodySize = 1 << 20

// resource serves the CRUD endpoints of one catalog kind.
type resource[T store.Record[T]] struct {
	srv   *Server
	kind  library.Kind
	store *store.Store[T]
	// check runs on decoded bodies before create and update; nil skips it.
	check func(T) error
}

func register[T store.Record[T]](s *Server, mux *http.ServeMux, kind library.Kind, st *store.Store[T], check func(T) error) {
	res := &resource[T]{srv: s, kind: kind, store: st, check: check}

	base := "/api/" + string(kind)
	mux.HandleFunc("GET "+base, res.handleList)
	mux.HandleFunc("POST "+base, res.handleCreate)
	mux.HandleFunc("GET "+base+"/{id}", res.handleGet)
	mux.HandleFunc("PUT "+base+"/{id}", res.handleUpdate)
	mux.HandleFunc("DELETE "+base+"/{id}", res.handleDelete)
}

// handleList returns the collection, narrowed by ?q=, ?fields= and ?filter=.
func (res *resource[T]) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := res.store.Find(store.Query{
		Text:   q.Get("q"),
		Fields: splitList(q.Get("fields")),
		Filter: q.Get("filter"),
	})
	if err != nil {
		httputil.WriteErrorFrom(w, err)
		return
	}
	httputil.WriteOK(w, records)
}

func (res *resource[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := res.store.Get(r.PathValue("id"))
	if !ok {
		httputil.WriteNotFound(w, "not_found", apidocs.NotFoundMessage(res.kind))
		return
	}
	httputil.WriteOK(w, rec)
}

func (res *resource[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	rec, ok := res.decode(w, r)
	if !ok {
		return
	}
	httputil.WriteCreated(w, res.store.Insert(rec))
}

// handleUpdate replaces the record named by the path; an id in the body is ignored.
func (res *resource[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	rec, ok := res.decode(w, r)
	if !ok {
		return
	}

	updated, err := res.store.Update(rec.WithID(r.PathValue("id")))
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFound(w, "not_found", apidocs.NotFoundMessage(res.kind))
		return
	}
	if err != nil {
		httputil.WriteErrorFrom(w, err)
		return
	}
	httputil.WriteOK(w, updated)
}

func (res *resource[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !res.store.Delete(r.PathValue("id")) {
		httputil.WriteNotFound(w, "not_found", apidocs.NotFoundMessage(res.kind))
		return
	}
	httputil.WriteOK(w, types.DeleteResponse{Success: true, Message: apidocs.DeletedMessage(res.kind)})
}

// decode reads, validates and decodes the request body.
// On failure it writes the error response and returns false.
func (res *resource[T]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var rec T

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body exceeds 1 MiB")
			return rec, false
		}
		httputil.WriteBadRequest(w, "invalid_body", "Failed to read request body")
		return rec, false
	}

	result := res.srv.validator.Validate(res.kind, body)
	if !result.Valid {
		httputil.WriteErrorWithDetails(w, http.StatusBadRequest, "validation_error", result.Summary(), result.Errors)
		return rec, false
	}

	if err := json.Unmarshal(body, &rec); err != nil {
		httputil.WriteBadRequest(w, "invalid_json", err.Error())
		return rec, false
	}

	if res.check != nil {
		if err := res.check(rec); err != nil {
			httputil.WriteErrorFrom(w, err)
			return rec, false
		}
	}
	return rec, true
}

// splitList parses a comma-separated query value, dropping empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
