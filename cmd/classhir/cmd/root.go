package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "classhir",
	Short: "Semantic-analysis front-end for a class-based OOP language",
	Long: `classhir indexes a class dictionary, runs the HIR maker and its
type-check primitives over a parsed program, and reports the result.

It consumes a serialized AST plus a bundled standard-library descriptor;
lexing, parsing and code generation are out of scope and live elsewhere in
the toolchain.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("stdlib", "", "path to the standard-library descriptor YAML (required)")
	rootCmd.PersistentFlags().String("ast", "", "path to the serialized program AST JSON (required)")
}
