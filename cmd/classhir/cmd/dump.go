package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/classhir/internal/classdict"
	"github.com/cwbudde/classhir/internal/ingest"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/stdlib"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the indexed class dictionary",
	Long: `dump indexes the standard-library descriptor and the program AST
and prints every class's fullname, superclass and ivars, in natural sort
order, without running the HIR maker.`,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	astPath, err := cmd.Flags().GetString("ast")
	if err != nil || astPath == "" {
		return fmt.Errorf("--ast is required")
	}
	stdlibPath, err := cmd.Flags().GetString("stdlib")
	if err != nil || stdlibPath == "" {
		return fmt.Errorf("--stdlib is required")
	}

	desc, err := stdlib.Load(stdlibPath)
	if err != nil {
		return err
	}
	astData, err := os.ReadFile(astPath)
	if err != nil {
		return fmt.Errorf("reading AST: %w", err)
	}
	prog, err := ingest.DecodeProgram(astData)
	if err != nil {
		return fmt.Errorf("decoding AST: %w", err)
	}

	dict := classdict.New()
	if _, _, err := stdlib.Seed(dict, desc); err != nil {
		return err
	}
	if err := dict.IndexProgram(prog); err != nil {
		return err
	}

	fmt.Print(formatDump(dict))
	return nil
}

// formatDump renders every class's fullname, superclass and ivars in
// ClassNames' natural sort order. Split out from runDump so it can be
// snapshot-tested without capturing stdout.
func formatDump(dict *classdict.ClassDict) string {
	var b strings.Builder
	for _, name := range dict.ClassNames() {
		c, _ := dict.FindClass(names.NewClassFullname(name))
		fmt.Fprintf(&b, "%s", name)
		if c.HasSuper {
			fmt.Fprintf(&b, " : %s", c.Superclass.Fullname())
		}
		b.WriteByte('\n')
		for _, iv := range c.SortedIvars() {
			ro := ""
			if iv.ReadOnly {
				ro = " (readonly)"
			}
			fmt.Fprintf(&b, "  @%s: %s%s\n", iv.Name, iv.Ty, ro)
		}
	}
	return b.String()
}
