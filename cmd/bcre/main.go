// Command bcre reports whether a pattern matches a string.
//
// Usage:
//
//	bcre [flags] PATTERN STRING
package main

import (
	"os"

	"github.com/coregx/bcre/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
