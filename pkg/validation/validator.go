package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/codtech/libraryd/pkg/library"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[library.Kind]string{
	library.KindBooks:      "schemas/book.json",
	library.KindAuthors:    "schemas/author.json",
	library.KindCategories: "schemas/category.json",
}

// SchemaJSON returns the raw JSON Schema document for kind.
func SchemaJSON(kind library.Kind) ([]byte, error) {
	file, ok := schemaFiles[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for kind %q", kind)
	}
	return schemaFS.ReadFile(file)
}

// Validator validates record bodies for every catalog kind.
type Validator struct {
	schemas map[library.Kind]*jsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	v := &Validator{schemas: make(map[library.Kind]*jsonschema.Schema, len(schemaFiles))}
	for _, kind := range library.Kinds {
		data, err := SchemaJSON(kind)
		if err != nil {
			return nil, err
		}
		url := path.Base(schemaFiles[kind])
		if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to add schema resource %s: %w", url, err)
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", url, err)
		}
		v.schemas[kind] = schema
	}
	return v, nil
}

// Validate checks body, a JSON document, against the schema of kind.
func (v *Validator) Validate(kind library.Kind, body []byte) *Result {
	result := &Result{Valid: true}

	schema, ok := v.schemas[kind]
	if !ok {
		result.AddError(&FieldError{Code: ErrCodeSchema, Message: fmt.Sprintf("unknown kind %q", kind)})
		return result
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		result.AddError(NewInvalidJSONError(err.Error()))
		return result
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			parseSchemaErrors(verr, result)
		} else {
			result.AddError(&FieldError{Code: ErrCodeSchema, Message: err.Error()})
		}
	}
	return result
}

var quotedName = regexp.MustCompile(`'([^']+)'`)

// parseSchemaErrors flattens a validation error tree into field errors.
func parseSchemaErrors(err *jsonschema.ValidationError, result *Result) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			parseSchemaErrors(cause, result)
		}
		return
	}

	keyword := path.Base(err.KeywordLocation)
	if keyword == "required" {
		// The message names the missing properties: missing properties: 'title', 'isbn'
		for _, m := range quotedName.FindAllStringSubmatch(err.Message, -1) {
			result.AddError(NewRequiredError(m[1]))
		}
		return
	}

	field := extractFieldFromPath(err.InstanceLocation)
	result.AddError(&FieldError{
		Field:   field,
		Code:    codeForKeyword(keyword),
		Message: err.Message,
		Hint:    hintForKeyword(keyword, field),
	})
}

func codeForKeyword(keyword string) string {
	switch keyword {
	case "type":
		return ErrCodeType
	case "minLength":
		return ErrCodeMinLength
	case "pattern":
		return ErrCodePattern
	case "minimum":
		return ErrCodeMin
	default:
		return ErrCodeSchema
	}
}

func hintForKeyword(keyword, field string) string {
	switch keyword {
	case "minLength", "pattern":
		return fmt.Sprintf("'%s' cannot be empty", field)
	case "minimum":
		return fmt.Sprintf("'%s' must be a four-digit year", field)
	case "type":
		return fmt.Sprintf("Check the type of '%s'", field)
	default:
		return "Check your request against the JSON Schema"
	}
}

// extractFieldFromPath converts a JSON Pointer to dot notation.
func extractFieldFromPath(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	p = strings.TrimPrefix(p, "/")
	return strings.ReplaceAll(p, "/", ".")
}
