// Package config loads the libraryd service configuration.
//
// Configuration is read from an optional YAML file, then environment
// overrides are applied, then the result is validated:
//
//	server:
//	  address: ":4280"
//	  readTimeout: 10s
//	  writeTimeout: 10s
//	  shutdownTimeout: 5s
//	  maxConnections: 0
//	  corsOrigins: []
//	log:
//	  level: info
//	  format: text
//	catalog:
//	  idStrategy: sequence
//	  strictReferences: false
//	  seedDefault: true
//	  seedFiles:
//	    - seeds/**/*.yaml
//
// Environment overrides:
//   - LIBRARYD_ADDRESS: server.address
//   - LIBRARYD_LOG_LEVEL: log.level
//
// Seed files hold books, authors and categories in the same shape as the
// API bodies; relative patterns resolve against the config file's directory:
//
//	books:
//	  - title: Dune
//	    author: Frank Herbert
//	    isbn: "9780441172719"
//	    category: Science Fiction
//	    publishedYear: 1965
//	    available: true
package config
