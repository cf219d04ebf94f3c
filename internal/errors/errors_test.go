package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/classhir/internal/ast"
)

func TestErrorFormatIncludesCaret(t *testing.T) {
	err := NameErrorf(ast.Position{Line: 2, Column: 5}, "unknown class %q", "Foo")
	err.Source = "class A\n  Foo x\n"
	out := err.Format(false)
	if !strings.Contains(out, "NameError at 2:5") {
		t.Errorf("Format() = %q, want it to mention NameError at 2:5", out)
	}
	if !strings.Contains(out, "Foo x") {
		t.Errorf("Format() = %q, want the offending source line", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("Format() = %q, want a caret", out)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{NameError, "NameError"},
		{TypeError, "TypeError"},
		{ProgramError, "ProgramError"},
		{SyntaxError, "SyntaxError"},
		{Bug, "Bug"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestBugfPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Bugf() did not panic")
		}
		e, ok := r.(*Error)
		if !ok || e.Kind != Bug {
			t.Errorf("recovered %#v, want a *Error with Kind Bug", r)
		}
	}()
	Bugf("unreachable: %d", 42)
}

func TestFormatAllJoinsWithBlankLine(t *testing.T) {
	errs := []*Error{
		NameErrorf(ast.Position{}, "a"),
		TypeErrorf(ast.Position{}, "b"),
	}
	out := FormatAll(errs, false)
	if !strings.Contains(out, "\n\n") {
		t.Errorf("FormatAll() = %q, want a blank line between diagnostics", out)
	}
}

func TestErrorFormatWithoutSourceHasNoCaret(t *testing.T) {
	err := ProgramErrorf(ast.Position{Line: 1, Column: 1}, "oops")
	out := err.Format(false)
	if strings.Contains(out, "^") {
		t.Errorf("Format() = %q, want no caret when Source is empty", out)
	}
}
