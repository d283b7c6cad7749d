// libraryd - in-memory library catalog service and its command-line client
package main

import "github.com/codtech/libraryd/pkg/cli"

// Build metadata is injected into the cli package, e.g.
//
//	go build -ldflags "-X github.com/codtech/libraryd/pkg/cli.Version=v1.0.0" ./cmd/libraryd
func main() {
	cli.Execute()
}
