// Package library defines the catalog records (books, authors and
// categories) and the Catalog that holds one store per kind.
//
// Books reference their author and category by name. The names are plain
// strings copied into the book; deleting an author or a category never
// touches the books that mention it. CheckReferences reports names that no
// longer resolve, for callers that want to enforce them.
package library
