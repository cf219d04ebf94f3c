package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/cwbudde/classhir/cmd/classhir/cmd"
)

// TestMain re-execs this test binary as the classhir CLI whenever a script
// runs `exec classhir`, the standard way testscript drives a cobra command
// tree end-to-end without a separate `go build` step.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"classhir": classhirMain,
	}))
}

func classhirMain() int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
