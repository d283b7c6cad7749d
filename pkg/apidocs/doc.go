// Package apidocs describes the library REST API.
//
// The endpoint catalogue returned by Sections is the single source for both
// the plain-text reference printed by `libraryd docs` and the OpenAPI 3
// document served at /api/docs:
//
//	doc, err := apidocs.OpenAPI(apidocs.Info{Version: "1.0.0"})
//	data, err := apidocs.YAML(doc)
package apidocs
