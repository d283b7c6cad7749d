package apidocs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/codtech/libraryd/pkg/library"
	"github.com/codtech/libraryd/pkg/validation"
)

// Info is the document metadata.
type Info struct {
	Title   string
	Version string
	// ServerURL is listed under servers when set.
	ServerURL string
}

const schemaPrefix = "#/components/schemas/"

// OpenAPI builds and validates the OpenAPI 3 document of the API.
func OpenAPI(info Info) (*openapi3.T, error) {
	if info.Title == "" {
		info.Title = "Library API"
	}
	if info.Version == "" {
		info.Version = "dev"
	}

	schemas, err := componentSchemas()
	if err != nil {
		return nil, err
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Description: "In-memory catalog of books, authors and categories.",
			Version:     info.Version,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: schemas},
	}
	if info.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: info.ServerURL}}
	}

	for _, ep := range Endpoints() {
		doc.AddOperation(ep.Path, ep.Method, operation(ep, schemas))
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// JSON renders doc as indented JSON.
func JSON(doc *openapi3.T) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// YAML renders doc as YAML.
func YAML(doc *openapi3.T) ([]byte, error) {
	return yaml.Marshal(doc)
}

// componentSchemas loads the record schemas shared with request validation
// and adds the response envelopes.
func componentSchemas() (openapi3.Schemas, error) {
	schemas := openapi3.Schemas{}
	for _, kind := range library.Kinds {
		data, err := validation.SchemaJSON(kind)
		if err != nil {
			return nil, err
		}
		var s openapi3.Schema
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode %s schema: %w", kind, err)
		}
		schemas[kind.Singular()] = openapi3.NewSchemaRef("", &s)
	}

	schemas["Error"] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("hint", openapi3.NewStringSchema()).
		WithAnyAdditionalProperties())
	schemas["DeleteResponse"] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema()))

	counts := openapi3.NewObjectSchema()
	for _, kind := range library.Kinds {
		counts.WithProperty(string(kind), openapi3.NewIntegerSchema())
	}
	schemas["Counts"] = openapi3.NewSchemaRef("", counts)
	schemas["ResetResponse"] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithPropertyRef("counts", ref(schemas, "Counts")))
	schemas["StatsResponse"] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithPropertyRef("counts", ref(schemas, "Counts")).
		WithProperty("operations", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewIntegerSchema())).
		WithProperty("events", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewIntegerSchema())).
		WithProperty("uptime", openapi3.NewIntegerSchema()))
	schemas["HealthResponse"] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema()))

	return schemas, nil
}

func ref(schemas openapi3.Schemas, name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(schemaPrefix+name, schemas[name].Value)
}

func operation(ep Endpoint, schemas openapi3.Schemas) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = ep.OperationID
	op.Summary = ep.Summary
	tag := "system"
	if ep.Kind != "" {
		tag = string(ep.Kind)
	}
	op.Tags = []string{tag}

	for _, p := range ep.Parameters {
		var param *openapi3.Parameter
		if p.In == openapi3.ParameterInPath {
			param = openapi3.NewPathParameter(p.Name)
		} else {
			param = openapi3.NewQueryParameter(p.Name).WithRequired(p.Required)
		}
		param = param.WithDescription(p.Description).WithSchema(openapi3.NewStringSchema())
		op.AddParameter(param)
	}

	var record *openapi3.SchemaRef
	if ep.Kind != "" {
		record = ref(schemas, ep.Kind.Singular())
	}
	if ep.RequestBody != nil && record != nil {
		op.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(record)}
	}

	success := openapi3.NewResponse().WithDescription(http.StatusText(ep.Status))
	if body := responseSchema(ep, record, schemas); body != nil {
		success = success.WithJSONSchemaRef(body)
	}
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(ep.Status, &openapi3.ResponseRef{Value: success}))

	errRef := ref(schemas, "Error")
	for _, status := range errorStatuses(ep) {
		op.Responses.Set(strconv.Itoa(status), &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription(http.StatusText(status)).
			WithJSONSchemaRef(errRef)})
	}
	return op
}

func responseSchema(ep Endpoint, record *openapi3.SchemaRef, schemas openapi3.Schemas) *openapi3.SchemaRef {
	switch {
	case ep.Kind != "" && ep.Method == http.MethodDelete:
		return ref(schemas, "DeleteResponse")
	case ep.Kind != "" && ep.Method == http.MethodGet && ep.Parameters[0].In == openapi3.ParameterInQuery:
		list := openapi3.NewArraySchema()
		list.Items = record
		return openapi3.NewSchemaRef("", list)
	case ep.Kind != "":
		return record
	}
	switch ep.OperationID {
	case "resetCatalog":
		return ref(schemas, "ResetResponse")
	case "getStats":
		return ref(schemas, "StatsResponse")
	case "getHealth":
		return ref(schemas, "HealthResponse")
	}
	return nil
}

func errorStatuses(ep Endpoint) []int {
	if ep.Kind == "" {
		return nil
	}
	var statuses []int
	switch ep.Method {
	case http.MethodGet:
		if ep.Parameters[0].In == openapi3.ParameterInQuery {
			statuses = []int{http.StatusBadRequest}
		} else {
			statuses = []int{http.StatusNotFound}
		}
	case http.MethodPost:
		statuses = []int{http.StatusBadRequest}
	case http.MethodPut:
		statuses = []int{http.StatusBadRequest, http.StatusNotFound}
	case http.MethodDelete:
		statuses = []int{http.StatusNotFound}
	}
	if ep.Kind == library.KindBooks && (ep.Method == http.MethodPost || ep.Method == http.MethodPut) {
		statuses = append(statuses, http.StatusUnprocessableEntity)
	}
	return statuses
}
