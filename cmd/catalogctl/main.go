// Command catalogctl is an operator tool for inspecting catalog identifiers
// without going through the HTTP API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
