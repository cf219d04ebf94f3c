package cmd

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/classhir/internal/classdict"
	"github.com/cwbudde/classhir/internal/ingest"
	"github.com/cwbudde/classhir/internal/stdlib"
)

// TestFormatDumpSnapshot pins the exact textual layout dump prints for a
// small program against a generic stdlib class, the way the teacher pins
// interpreter output against a golden fixture.
func TestFormatDumpSnapshot(t *testing.T) {
	desc, err := stdlib.Parse([]byte(`
classes:
  - fullname: Object
  - fullname: Array
    superclass: Object
    typarams: [T]
    ivars:
      - {name: length, ty: Int, readonly: true}
`))
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}

	dict := classdict.New()
	if _, _, err := stdlib.Seed(dict, desc); err != nil {
		t.Fatalf("Seed() = %v, want nil", err)
	}
	prog, err := ingest.DecodeProgram([]byte(`{
		"toplevel_defs": [
			{"kind": "ClassDefinition", "name": "Point", "superclass": {"names": ["Object"]}, "defs": []}
		]
	}`))
	if err != nil {
		t.Fatalf("DecodeProgram() = %v, want nil", err)
	}
	if err := dict.IndexProgram(prog); err != nil {
		t.Fatalf("IndexProgram() = %v, want nil", err)
	}

	snaps.MatchSnapshot(t, formatDump(dict))
}
