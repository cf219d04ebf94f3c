// Command classhir drives the semantic-analysis front-end over a serialized
// AST and a bundled standard-library descriptor (see internal/ingest and
// internal/stdlib), outside the core's own scope per spec.md §1 — it exists
// to give the front-end a runnable entry point and exercise its stack.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/classhir/cmd/classhir/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
