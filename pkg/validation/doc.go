// Package validation checks request bodies for catalog records against
// JSON Schema (draft 2020-12) documents embedded in the binary.
//
// The same schema documents back the record components of the OpenAPI
// description served by the API.
//
// # Basic Usage
//
//	v, err := validation.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := v.Validate(library.KindBooks, body)
//	if !result.Valid {
//	    // result.Errors holds one FieldError per failed rule
//	}
package validation
