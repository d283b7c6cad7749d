// Package cli provides the command-line interface for libraryd.
//
// Commands:
//   - serve: run the library API in the foreground
//   - docs: print the API documentation as text, JSON or YAML
//   - books, authors, categories: list, get, add, update and delete records
//   - reset: restore every collection to its seed data
//   - stats: show record counts and mutation counters
//   - watch: stream change events from a running server
//   - shell: interactive forms for browsing and editing the catalog
//   - version: show libraryd version
//
// Client commands talk to a running server selected with --server
// (default http://localhost:4280, or LIBRARYD_SERVER).
//
// Usage:
//
//	libraryd serve --config libraryd.yaml
//	libraryd books list --query gatsby
//	libraryd books list --filter 'available && publishedYear < 1950' --select '$[*].title'
//	libraryd books add --title Dune --author "Frank Herbert" --isbn 9780441172719 \
//	    --category "Science Fiction" --year 1965 --available
//	libraryd authors delete 3
//	libraryd watch --resource books
package cli
