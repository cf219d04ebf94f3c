package hir

import (
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/types"
)

// CtxKind is the kind of context the lowering cursor is currently inside,
// used to decide whether break/return are legal (spec.md §4.3 rules 4-5).
type CtxKind int

const (
	CtxToplevel CtxKind = iota
	CtxMethod
	CtxWhile
	CtxLambda
)

// lvarEntry is one local variable declared in a scope.
type lvarEntry struct {
	name     string
	ty       types.TermTy
	readonly bool
}

// methodCtx is the current method's lowering context (spec.md §4.3).
type methodCtx struct {
	sig        types.MethodSignature
	superIvars map[string]types.SkIVar // inherited from the class's ancestor chain
	iivars     map[string]types.SkIVar // newly declared in this initialize
	isInit     bool
	lvars      []lvarEntry
}

// lambdaCapture is a single pending capture recorded by the scope walk,
// not yet classified as materialized-here or forwarded (spec.md §4.3
// "Scope walk"/"Capture lowering").
type lambdaCapture struct {
	ctxDepth int // depth of the scope the captured var/arg lives in
	ty       types.TermTy
	isLVar   bool
	name     string // set if isLVar
	argIdx   int    // set if !isLVar
}

// lambdaCtx is one entry of the HIR Maker's lambda stack.
type lambdaCtx struct {
	isFn     bool
	params   []types.MethodParam
	lvars    []lvarEntry
	captures []lambdaCapture
	hasBreak bool
}

// Ctx is the HIR Maker's full lowering context stack (spec.md §4.3).
type Ctx struct {
	method      *methodCtx
	lambdas     []*lambdaCtx
	current     CtxKind
	constScopes []names.Namespace // innermost first
}

func newCtx() *Ctx {
	return &Ctx{current: CtxToplevel}
}

// pushLambda enters a new lambda body.
func (c *Ctx) pushLambda(isFn bool, params []types.MethodParam) *lambdaCtx {
	lc := &lambdaCtx{isFn: isFn, params: params}
	c.lambdas = append(c.lambdas, lc)
	c.current = CtxLambda
	return lc
}

// popLambda leaves the innermost lambda body and sets the current-context
// kind to Lambda if another lambda is still open, else to Method or
// Toplevel. It does not know whether the lambda sat inside a While;
// convertLambdaExpr restores the exact kind it saved before the push.
func (c *Ctx) popLambda() *lambdaCtx {
	lc := c.lambdas[len(c.lambdas)-1]
	c.lambdas = c.lambdas[:len(c.lambdas)-1]
	if len(c.lambdas) > 0 {
		c.current = CtxLambda
	} else if c.method != nil {
		c.current = CtxMethod
	} else {
		c.current = CtxToplevel
	}
	return lc
}

// pushLambdaCapture records a pending capture on the innermost lambda.
func (c *Ctx) pushLambdaCapture(cap lambdaCapture) {
	lc := c.lambdas[len(c.lambdas)-1]
	lc.captures = append(lc.captures, cap)
}

// currentLvarsPtr returns a pointer to the lvar slice of whichever scope is
// innermost right now (a lambda's, or the method's).
func (c *Ctx) currentLvarsPtr() *[]lvarEntry {
	if len(c.lambdas) > 0 {
		return &c.lambdas[len(c.lambdas)-1].lvars
	}
	return &c.method.lvars
}

// declareLvar adds name to the innermost scope.
func (c *Ctx) declareLvar(name string, ty types.TermTy, readonly bool) {
	p := c.currentLvarsPtr()
	*p = append(*p, lvarEntry{name: name, ty: ty, readonly: readonly})
}

// inWhile reports whether `current` is directly a While (break targets
// only the nearest While or non-fn Lambda, per spec.md rule 4).
func (c *Ctx) inWhile() bool { return c.current == CtxWhile }

// inNonFnLambda reports whether the innermost lambda (if any) is a block
// (non-`fn`) lambda.
func (c *Ctx) inNonFnLambda() bool {
	if len(c.lambdas) == 0 {
		return false
	}
	return !c.lambdas[len(c.lambdas)-1].isFn
}

// inFnLambda reports whether the innermost lambda (if any) is a `fn`
// lambda, where `return` is legal.
func (c *Ctx) inFnLambda() bool {
	if len(c.lambdas) == 0 {
		return false
	}
	return c.lambdas[len(c.lambdas)-1].isFn
}
