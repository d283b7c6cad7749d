// Package client is a typed Go client for the libraryd REST API.
//
//	c := client.New("http://localhost:4280")
//	books, err := c.Books().List(ctx, client.ListOptions{Query: "gatsby"})
//
// Every collection exposes the same operations through Collection; Watch
// streams store change events from GET /api/events.
package client
