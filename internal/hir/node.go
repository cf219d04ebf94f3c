// Package hir implements the HIR node types and the HIR Maker — the
// lowering and type-checking engine of spec.md §3.6/§4.3. It consumes a
// parsed ast.Program plus a populated classdict.ClassDict and produces a
// typed, name-resolved Program ready for a downstream backend.
package hir

import "github.com/cwbudde/classhir/internal/types"

// Node is one typed HIR expression: a TermTy paired with a variant body
// (spec.md §3.6). Every lowering rule (expr.go, methodcall.go, const.go,
// lambda.go) produces one of these.
type Node struct {
	Ty   types.TermTy
	Body NodeBody
}

// NodeBody is the tagged-variant payload of a Node. Each concrete type
// below implements it with a no-op marker method, mirroring the AST
// package's Expression variants one level down the pipeline.
type NodeBody interface {
	nodeBody()
}

// Exprs is a typed sequence of Nodes sharing the block's overall type
// (the type of its last expression, or Void if empty) — spec.md's
// HirExpressions.
type Exprs struct {
	Ty    types.TermTy
	Nodes []Node
}

func exprsTy(nodes []Node) types.TermTy {
	if len(nodes) == 0 {
		return types.Void()
	}
	return nodes[len(nodes)-1].Ty
}

// NewExprs builds an Exprs block, computing its type from the last node.
func NewExprs(nodes []Node) Exprs {
	return Exprs{Ty: exprsTy(nodes), Nodes: nodes}
}

// --- literal & self -------------------------------------------------------

type IntLiteral struct{ Value int64 }
type FloatLiteral struct{ Value float64 }
type StringLiteral struct {
	Value string
	Idx   int // per-Maker sequence number, 0, 1, 2, ... in lowering order; no table of the values is kept
}
type BoolLiteral struct{ Value bool }
type SelfExpr struct{}

func (IntLiteral) nodeBody()    {}
func (FloatLiteral) nodeBody()  {}
func (StringLiteral) nodeBody() {}
func (BoolLiteral) nodeBody()   {}
func (SelfExpr) nodeBody()      {}

// --- variables -------------------------------------------------------------

// LVarRef/LVarAssign address a local declared in the current scope.
type LVarRef struct{ Name string }
type LVarAssign struct {
	Name string
	Rhs  Node
}

// ArgRef addresses a method or lambda parameter directly (no capture
// needed: it is visible in the innermost scope).
type ArgRef struct{ Idx int }

// IVarRef/IVarAssign address an instance variable of self.
type IVarRef struct{ Name string }
type IVarAssign struct {
	Name string
	Rhs  Node
	Idx  int // assigned idx, possibly newly declared (see convertIVarAssign in expr.go)
}

// ConstRef/ConstAssign address a toplevel constant by its fully resolved
// path.
type ConstRef struct{ Fullname string }
type ConstAssign struct {
	Fullname string
	Rhs      Node
}

func (LVarRef) nodeBody()     {}
func (LVarAssign) nodeBody()  {}
func (ArgRef) nodeBody()      {}
func (IVarRef) nodeBody()     {}
func (IVarAssign) nodeBody()  {}
func (ConstRef) nodeBody()    {}
func (ConstAssign) nodeBody() {}

// --- captures (inside a lambda body) ---------------------------------------

// CaptureLVarRef/CaptureArgRef read a captured outer local/argument that
// was materialized in *this* lambda (spec.md's capture-lowering rule).
type CaptureLVarRef struct {
	Cidx int
	Name string
}
type CaptureArgRef struct {
	Cidx int
	Idx  int
}

// CaptureFwdRef reads a capture that this lambda itself does not own: it
// was forwarded from (and will be materialized in) an enclosing lambda.
type CaptureFwdRef struct{ Cidx int }

// CaptureWrite writes back to a captured outer local (only lvars are ever
// writable through a capture; arguments are not).
type CaptureWrite struct {
	Cidx int
	Rhs  Node
}

func (CaptureLVarRef) nodeBody() {}
func (CaptureArgRef) nodeBody()  {}
func (CaptureFwdRef) nodeBody()  {}
func (CaptureWrite) nodeBody()   {}

// --- control flow ------------------------------------------------------------

type IfExpr struct {
	Cond Node
	Then Exprs
	Else Exprs
}

type WhileExpr struct {
	Cond Node
	Body Exprs
}

type LogicalNot struct{ Expr Node }
type LogicalAnd struct{ Left, Right Node }
type LogicalOr struct{ Left, Right Node }

// BreakExpr exits the nearest enclosing While or non-fn Lambda.
type BreakExpr struct{}

// ReturnExpr returns Arg (or Void, if Arg is nil) from the
// enclosing method or fn-lambda.
type ReturnExpr struct{ Arg *Node }

func (IfExpr) nodeBody()     {}
func (WhileExpr) nodeBody()  {}
func (LogicalNot) nodeBody() {}
func (LogicalAnd) nodeBody() {}
func (LogicalOr) nodeBody()  {}
func (BreakExpr) nodeBody()  {}
func (ReturnExpr) nodeBody() {}

// --- calls & lambdas ---------------------------------------------------------

// MethodCall is a fully resolved, type-checked call: Receiver's ancestor
// chain was walked to find Sig on DefiningClass.
type MethodCall struct {
	Receiver      Node
	MethodName    string
	DefiningClass string
	Args          []Node
	Block         *LambdaExpr
	Erased        bool // receiver type was Specialized: args/result pass through Object
}

// LambdaInvocation calls a local variable of function type directly
// (spec.md §4.3 rule 9's first branch).
type LambdaInvocation struct {
	Lambda Node
	Args   []Node
}

// LambdaExpr is a lowered lambda body, fully captures-resolved.
type LambdaExpr struct {
	Name     string
	IsFn     bool
	Params   []types.MethodParam
	Body     Exprs
	Captures []Capture
	HasBreak bool
}

// Capture is one entry of a LambdaExpr's resolved capture list, in
// the same order referenced by CaptureLVarRef/CaptureArgRef/CaptureFwdRef.
type Capture struct {
	Kind CaptureKind
	Name string // set when Kind == CaptureKindLVar
	Idx  int    // set when Kind == CaptureKindArg
	Ty   types.TermTy
}

type CaptureKind int

const (
	CaptureKindLVar CaptureKind = iota
	CaptureKindArg
	// CaptureKindFwd marks a slot whose value this lambda never reads
	// directly: its creator (the enclosing lambda) supplies it, itself
	// having captured it from further out.
	CaptureKindFwd
)

func (MethodCall) nodeBody()       {}
func (LambdaInvocation) nodeBody() {}
func (LambdaExpr) nodeBody()       {}

// --- misc --------------------------------------------------------------------

type ArrayLiteral struct{ Elems []Node }
type ClassLiteral struct{ Fullname string }

// BitCast re-labels Expr's static type to Ty without a runtime
// conversion — used for upcasts to a defining class and for erasure at
// specialized call sites (spec.md §4.3 rule 9).
type BitCast struct{ Expr Node }

// Nop is a typed no-op, used where a branch must be present but
// contributes no value (e.g. voidifying the non-Void arm of an if).
type Nop struct{}

func (ArrayLiteral) nodeBody() {}
func (ClassLiteral) nodeBody() {}
func (BitCast) nodeBody()      {}
func (Nop) nodeBody()          {}
