// Package errors implements the five diagnostic kinds of spec.md §6.4/§7
// (NameError, TypeError, ProgramError, SyntaxError, Bug) and formats them
// with source context and a caret pointing at the offending column, in the
// style of the teacher compiler's own internal/errors package.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/classhir/internal/ast"
)

// Kind discriminates the category of a diagnostic.
type Kind int

const (
	NameError Kind = iota
	TypeError
	ProgramError
	SyntaxError
	Bug
)

func (k Kind) String() string {
	switch k {
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case ProgramError:
		return "ProgramError"
	case SyntaxError:
		return "SyntaxError"
	case Bug:
		return "Bug"
	default:
		return "UnknownError"
	}
}

// Error is the single diagnostic type produced anywhere in the front-end.
// The first Error raised aborts compilation (spec.md §7): callers propagate
// it as a normal Go error rather than collecting and continuing.
type Error struct {
	Kind    Kind
	Message string
	Pos     ast.Position
	Source  string // full source text, for caret rendering; may be empty
}

func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic with a source line and caret, the way the
// teacher's CompilerError.Format does, optionally with ANSI color.
func (e *Error) Format(color bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %s: ", e.Kind, e.Pos)

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	if line := e.sourceLine(); line != "" {
		sb.WriteString("\n")
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max0(e.Pos.Column-1)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}
	return sb.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (e *Error) sourceLine() string {
	if e.Source == "" || e.Pos.Line < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > len(lines) {
		return ""
	}
	return lines[e.Pos.Line-1]
}

func newf(kind Kind, pos ast.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// NameErrorf builds a NameError: unknown class, superclass, type parameter,
// constant or ivar.
func NameErrorf(pos ast.Position, format string, args ...any) *Error {
	return newf(NameError, pos, format, args...)
}

// TypeErrorf builds a TypeError: argument/receiver/return/ivar type
// mismatch, or ivar mutability mismatch.
func TypeErrorf(pos ast.Position, format string, args ...any) *Error {
	return newf(TypeError, pos, format, args...)
}

// ProgramErrorf builds a ProgramError: illegal break/return placement,
// reassigning readonly, var redeclaration, unresolved bare name, writing to
// an argument, and similar control/structure violations.
func ProgramErrorf(pos ast.Position, format string, args ...any) *Error {
	return newf(ProgramError, pos, format, args...)
}

// SyntaxErrorf builds a SyntaxError: an AST shape that is structurally
// impossible at the level this front-end sees (e.g. a method definition at
// toplevel).
func SyntaxErrorf(pos ast.Position, format string, args ...any) *Error {
	return newf(SyntaxError, pos, format, args...)
}

// Bugf raises an internal-consistency assertion failure. Per spec.md §7,
// a Bug is raised, not caught: it panics rather than returning an error
// value a caller might plausibly recover from.
func Bugf(format string, args ...any) {
	panic(&Error{Kind: Bug, Message: fmt.Sprintf(format, args...)})
}

// FormatAll renders a slice of errors one per line, with a blank line
// between, the way a CLI driver would present a batch of diagnostics.
func FormatAll(errs []*Error, color bool) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Format(color)
	}
	return strings.Join(parts, "\n\n")
}
