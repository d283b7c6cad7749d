// Package api serves the library catalog over HTTP.
//
// Endpoints ({kind} is books, authors or categories):
//
//	GET    /api/{kind}        - List records; ?q=, ?fields=, ?filter=
//	POST   /api/{kind}        - Create a record
//	GET    /api/{kind}/{id}   - Get a record
//	PUT    /api/{kind}/{id}   - Replace a record
//	DELETE /api/{kind}/{id}   - Delete a record
//	POST   /api/reset         - Restore the seed data
//	GET    /api/stats         - Record counts and mutation counters
//	GET    /api/docs          - OpenAPI document (JSON)
//	GET    /api/docs.yaml     - OpenAPI document (YAML)
//	GET    /api/events        - WebSocket stream of change events
//	GET    /health            - Health check
//
// Usage:
//
//	hub := events.NewHub(0)
//	catalog, _ := library.New(library.Options{Seed: library.DefaultSeed(), Observer: hub})
//	srv, _ := api.New(catalog, api.WithHub(hub))
//	err := srv.ListenAndServe(ctx)
//
// Example curl commands:
//
//	# Create a book
//	curl -X POST http://localhost:4280/api/books \
//	  -H "Content-Type: application/json" \
//	  -d '{"title":"Dune","author":"Frank Herbert","isbn":"9780441172719","category":"Science Fiction","publishedYear":1965,"available":true}'
//
//	# Search books by category
//	curl 'http://localhost:4280/api/books?q=fiction&fields=category'
//
//	# Delete a book
//	curl -X DELETE http://localhost:4280/api/books/2
package api
