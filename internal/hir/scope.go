package hir

import (
	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/errors"
	"github.com/cwbudde/classhir/internal/types"
)

// LVarInfoKind discriminates the three ways a name resolved by the scope
// walk can be read back (spec.md §4.3 "Scope walk").
type LVarInfoKind int

const (
	VarCurrentScope LVarInfoKind = iota
	VarArgument
	VarOuterScope
)

// LVarInfo is the scope walk's result for one resolved bare name.
type LVarInfo struct {
	Kind     LVarInfoKind
	Ty       types.TermTy
	Name     string // set for CurrentScope and OuterScope-over-lvar
	ArgIdx   int     // set for Argument
	Cidx     int     // set for OuterScope: index into the current lambda's Captures
	Readonly bool    // OuterScope over an argument is always readonly
}

// findVar implements the scope walk of spec.md §4.3: scan scopes from
// innermost (the current lambda, if any) to outermost (the method),
// returning the first match. `updating` additionally rejects reassigning
// a readonly lvar or any argument.
func (c *Ctx) findVar(name string, updating bool, pos ast.Position) (LVarInfo, bool, error) {
	first := true
	for i := len(c.lambdas) - 1; i >= -1; i-- {
		var lvars []lvarEntry
		var params []types.MethodParam
		depth := i
		if i >= 0 {
			lvars = c.lambdas[i].lvars
			params = c.lambdas[i].params
		} else {
			if c.method == nil {
				break
			}
			lvars = c.method.lvars
			params = paramsOf(c.method.sig)
		}

		if idx := findLvar(lvars, name); idx >= 0 {
			lv := lvars[idx]
			if updating && lv.readonly {
				return LVarInfo{}, false, errors.ProgramErrorf(pos, "cannot reassign %q: declare it with `var`", name)
			}
			if first {
				return LVarInfo{Kind: VarCurrentScope, Ty: lv.ty, Name: name}, true, nil
			}
			cidx := c.recordCapture(lambdaCapture{ctxDepth: depth, ty: lv.ty, isLVar: true, name: name})
			return LVarInfo{Kind: VarOuterScope, Ty: lv.ty, Name: name, Cidx: cidx}, true, nil
		}
		if idx := findParam(params, name); idx >= 0 {
			p := params[idx]
			if updating {
				return LVarInfo{}, false, errors.ProgramErrorf(pos, "you cannot reassign to argument %q", name)
			}
			if first {
				return LVarInfo{Kind: VarArgument, Ty: p.Ty, ArgIdx: idx}, true, nil
			}
			cidx := c.recordCapture(lambdaCapture{ctxDepth: depth, ty: p.Ty, isLVar: false, argIdx: idx})
			return LVarInfo{Kind: VarOuterScope, Ty: p.Ty, Cidx: cidx, Readonly: true}, true, nil
		}
		first = false
	}
	return LVarInfo{}, false, nil
}

func paramsOf(sig types.MethodSignature) []types.MethodParam { return sig.Params }

func findLvar(lvars []lvarEntry, name string) int {
	for i := len(lvars) - 1; i >= 0; i-- {
		if lvars[i].name == name {
			return i
		}
	}
	return -1
}

func findParam(params []types.MethodParam, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// recordCapture appends cap to the current (innermost) lambda's pending
// capture list and returns the index it will occupy in that lambda's
// final resolved Captures slice.
func (c *Ctx) recordCapture(cap lambdaCapture) int {
	lc := c.lambdas[len(c.lambdas)-1]
	idx := len(lc.captures)
	lc.captures = append(lc.captures, cap)
	return idx
}

// resolveCaptures classifies lc's recorded captures once its body has
// finished lowering and lc has already been popped off c.lambdas
// (spec.md §4.3 "Capture lowering"). Captures referring to the scope
// directly enclosing lc are materialized; everything else is forwarded
// to the (now innermost) enclosing lambda for it to resolve in turn.
func (c *Ctx) resolveCaptures(lc *lambdaCtx) []Capture {
	immediateDepth := -1
	if len(c.lambdas) > 0 {
		immediateDepth = len(c.lambdas) - 1
	}
	out := make([]Capture, 0, len(lc.captures))
	for _, cap := range lc.captures {
		if cap.ctxDepth == immediateDepth {
			if cap.isLVar {
				out = append(out, Capture{Kind: CaptureKindLVar, Name: cap.name, Ty: cap.ty})
			} else {
				out = append(out, Capture{Kind: CaptureKindArg, Idx: cap.argIdx, Ty: cap.ty})
			}
			continue
		}
		c.pushLambdaCapture(cap)
		out = append(out, Capture{Kind: CaptureKindFwd, Ty: cap.ty})
	}
	return out
}
