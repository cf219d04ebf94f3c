package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/classhir/internal/classdict"
	cherrors "github.com/cwbudde/classhir/internal/errors"
	"github.com/cwbudde/classhir/internal/hir"
	"github.com/cwbudde/classhir/internal/ingest"
	"github.com/cwbudde/classhir/internal/stdlib"
)

var checkReportPath string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the full front-end pipeline and report pass/fail",
	Long: `check indexes the standard-library descriptor and the program AST
into a single class dictionary, then runs the HIR maker over every method
body, reporting the first diagnostic encountered (spec.md §7: compilation
aborts at the first error).`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkReportPath, "report", "", "write a JSON diagnostic report to this path")
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	imported, _, err := stdlib.Seed(dict, desc)
	if err != nil {
		return writeReport(checkReportPath, false, 0, 0, err)
	}

	if err := dict.IndexProgram(prog); err != nil {
		return writeReport(checkReportPath, false, dict.Count(), 0, err)
	}
	if err := dict.Validate(); err != nil {
		return writeReport(checkReportPath, false, dict.Count(), 0, err)
	}

	maker := hir.NewMaker(dict, imported)
	hirProg, err := maker.ConvertProgram(prog)
	if err != nil {
		return writeReport(checkReportPath, false, dict.Count(), 0, err)
	}

	fmt.Printf("OK: %d classes indexed, %d methods lowered\n", dict.Count(), len(hirProg.Methods))
	return writeReport(checkReportPath, true, dict.Count(), len(hirProg.Methods), nil)
}

// writeReport builds a fresh JSON diagnostic report with sjson and
// overwrites any file at path with it, stamping a fresh run ID each
// invocation so repeated `check` runs stay distinguishable.
func writeReport(path string, ok bool, classCount, methodCount int, runErr error) error {
	if path == "" {
		return runErr
	}
	report := "{}"
	var setErr error
	report, setErr = sjson.Set(report, "run_id", uuid.NewString())
	if setErr != nil {
		return setErr
	}
	report, setErr = sjson.Set(report, "ok", ok)
	if setErr != nil {
		return setErr
	}
	report, setErr = sjson.Set(report, "classes_indexed", classCount)
	if setErr != nil {
		return setErr
	}
	report, setErr = sjson.Set(report, "methods_lowered", methodCount)
	if setErr != nil {
		return setErr
	}
	if runErr != nil {
		message := runErr.Error()
		kind := "error"
		if ce, isCE := runErr.(*cherrors.Error); isCE {
			kind = ce.Kind.String()
		}
		report, setErr = sjson.Set(report, "error", message)
		if setErr != nil {
			return setErr
		}
		report, setErr = sjson.Set(report, "error_kind", kind)
		if setErr != nil {
			return setErr
		}
	}
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return runErr
}
