package hir

import (
	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/errors"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/typecheck"
	"github.com/cwbudde/classhir/internal/types"
)

func (m *Maker) convertExprs(exprs []ast.Expression) ([]Node, error) {
	out := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		n, err := m.convertExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// convertExpr is the lowering dispatch of spec.md §4.3: one case per AST
// expression kind, each producing a typed HIR Node.
func (m *Maker) convertExpr(e ast.Expression) (Node, error) {
	switch e := e.(type) {
	case *ast.IntLiteral:
		return Node{Ty: types.RawS("Int"), Body: IntLiteral{Value: e.Value}}, nil
	case *ast.FloatLiteral:
		return Node{Ty: types.RawS("Float"), Body: FloatLiteral{Value: e.Value}}, nil
	case *ast.StringLiteral:
		idx := m.nextStrLit(e.Value)
		return Node{Ty: types.RawS("String"), Body: StringLiteral{Value: e.Value, Idx: idx}}, nil
	case *ast.BoolLiteral:
		return Node{Ty: types.Bool(), Body: BoolLiteral{Value: e.Value}}, nil
	case *ast.SelfExpr:
		return m.convertSelfExpr(e)

	case *ast.LogicalNot:
		inner, err := m.convertExpr(e.Expr)
		if err != nil {
			return Node{}, err
		}
		if err := typecheck.CheckLogicalOperatorTy(inner.Ty, e.Pos()); err != nil {
			return Node{}, err
		}
		return Node{Ty: types.Bool(), Body: LogicalNot{Expr: inner}}, nil

	case *ast.LogicalAnd:
		return m.convertLogicalBinop(e.Left, e.Right, e.Pos(), false)
	case *ast.LogicalOr:
		return m.convertLogicalBinop(e.Left, e.Right, e.Pos(), true)

	case *ast.IfExpr:
		return m.convertIfExpr(e)
	case *ast.WhileExpr:
		return m.convertWhileExpr(e)
	case *ast.BreakExpr:
		return m.convertBreakExpr(e)
	case *ast.ReturnExpr:
		return m.convertReturnExpr(e)

	case *ast.LVarAssign:
		return m.convertLVarAssign(e)
	case *ast.IVarAssign:
		return m.convertIVarAssign(e)
	case *ast.ConstAssign:
		return m.convertConstAssign(e)

	case *ast.IVarRef:
		return m.convertIVarRef(e)
	case *ast.ConstRef:
		return m.convertConstRef(e)
	case *ast.BareName:
		return m.convertBareName(e)

	case *ast.MethodCall:
		return m.convertMethodCall(e)
	case *ast.LambdaExpr:
		return m.convertLambdaExpr(e, "")
	case *ast.ArrayLiteral:
		return m.convertArrayLiteral(e)
	}
	return Node{}, errors.SyntaxErrorf(e.Pos(), "unsupported expression: %T", e)
}

func (m *Maker) convertSelfExpr(e *ast.SelfExpr) (Node, error) {
	if m.ctx.method == nil {
		return Node{}, errors.ProgramErrorf(e.Pos(), "self is not valid at toplevel")
	}
	return Node{Ty: m.selfTy(), Body: SelfExpr{}}, nil
}

func (m *Maker) selfTy() types.TermTy {
	return types.Raw(m.ctx.method.sig.Fullname.ClassName.InstanceName())
}

// convertLogicalBinop lowers `&&`/`||`: both operands must be Bool; the
// operators do not short-circuit type-wise (spec.md rule 1).
func (m *Maker) convertLogicalBinop(leftE, rightE ast.Expression, pos ast.Position, isOr bool) (Node, error) {
	left, err := m.convertExpr(leftE)
	if err != nil {
		return Node{}, err
	}
	if err := typecheck.CheckLogicalOperatorTy(left.Ty, pos); err != nil {
		return Node{}, err
	}
	right, err := m.convertExpr(rightE)
	if err != nil {
		return Node{}, err
	}
	if err := typecheck.CheckLogicalOperatorTy(right.Ty, pos); err != nil {
		return Node{}, err
	}
	if isOr {
		return Node{Ty: types.Bool(), Body: LogicalOr{Left: left, Right: right}}, nil
	}
	return Node{Ty: types.Bool(), Body: LogicalAnd{Left: left, Right: right}}, nil
}

// convertIfExpr implements spec.md rule 2, including the Never/Void/NCA
// priority and bit-cast insertion.
func (m *Maker) convertIfExpr(e *ast.IfExpr) (Node, error) {
	cond, err := m.convertExpr(e.CondExpr)
	if err != nil {
		return Node{}, err
	}
	if err := typecheck.CheckConditionTy(cond.Ty, e.Pos()); err != nil {
		return Node{}, err
	}
	thenNodes, err := m.convertExprs(e.ThenExprs)
	if err != nil {
		return Node{}, err
	}
	elseNodes, err := m.convertExprs(e.ElseExprs)
	if err != nil {
		return Node{}, err
	}
	thenTy, elseTy := exprsTy(thenNodes), exprsTy(elseNodes)

	var resultTy types.TermTy
	switch {
	case thenTy.IsNeverType():
		resultTy = elseTy
	case elseTy.IsNeverType():
		resultTy = thenTy
	case thenTy.IsVoidType() || elseTy.IsVoidType():
		resultTy = types.Void()
		thenNodes = voidify(thenNodes, thenTy)
		elseNodes = voidify(elseNodes, elseTy)
	default:
		resultTy = typecheck.NearestCommonAncestor(m.dict, thenTy, elseTy)
		thenNodes = bitCastTail(thenNodes, thenTy, resultTy)
		elseNodes = bitCastTail(elseNodes, elseTy, resultTy)
	}
	return Node{Ty: resultTy, Body: IfExpr{Cond: cond, Then: NewExprs(thenNodes), Else: NewExprs(elseNodes)}}, nil
}

// voidify wraps a branch so its value is discarded, yielding Void.
func voidify(nodes []Node, ty types.TermTy) []Node {
	if ty.IsVoidType() {
		return nodes
	}
	return append(nodes, Node{Ty: types.Void(), Body: Nop{}})
}

// bitCastTail re-labels a branch's tail expression type to target when it
// differs, so both arms agree on the if-expression's overall type.
func bitCastTail(nodes []Node, from, target types.TermTy) []Node {
	if len(nodes) == 0 || from.EqualsTo(target) {
		return nodes
	}
	last := nodes[len(nodes)-1]
	nodes[len(nodes)-1] = Node{Ty: target, Body: BitCast{Expr: last}}
	return nodes
}

func (m *Maker) convertWhileExpr(e *ast.WhileExpr) (Node, error) {
	cond, err := m.convertExpr(e.CondExpr)
	if err != nil {
		return Node{}, err
	}
	if err := typecheck.CheckConditionTy(cond.Ty, e.Pos()); err != nil {
		return Node{}, err
	}
	prevCurrent := m.ctx.current
	m.ctx.current = CtxWhile
	body, err := m.convertExprs(e.BodyExprs)
	m.ctx.current = prevCurrent
	if err != nil {
		return Node{}, err
	}
	return Node{Ty: types.Void(), Body: WhileExpr{Cond: cond, Body: NewExprs(body)}}, nil
}

func (m *Maker) convertBreakExpr(e *ast.BreakExpr) (Node, error) {
	if m.ctx.inWhile() {
		return Node{Ty: types.Void(), Body: BreakExpr{}}, nil
	}
	if m.ctx.inNonFnLambda() {
		m.ctx.lambdas[len(m.ctx.lambdas)-1].hasBreak = true
		return Node{Ty: types.Never(), Body: BreakExpr{}}, nil
	}
	return Node{}, errors.ProgramErrorf(e.Pos(), "break is only valid in a while loop or a block")
}

func (m *Maker) convertReturnExpr(e *ast.ReturnExpr) (Node, error) {
	if m.ctx.method == nil {
		return Node{}, errors.ProgramErrorf(e.Pos(), "return outside a method")
	}
	if len(m.ctx.lambdas) > 0 && !m.ctx.inFnLambda() {
		return Node{}, errors.ProgramErrorf(e.Pos(), "return is not valid inside a non-fn lambda")
	}
	if e.Arg == nil {
		return Node{Ty: types.Never(), Body: ReturnExpr{Arg: nil}}, nil
	}
	arg, err := m.convertExpr(e.Arg)
	if err != nil {
		return Node{}, err
	}
	if err := typecheck.CheckReturnArgType(m.dict, arg.Ty, m.ctx.method.sig, e.Pos()); err != nil {
		return Node{}, err
	}
	return Node{Ty: types.Never(), Body: ReturnExpr{Arg: &arg}}, nil
}

func (m *Maker) convertLVarAssign(e *ast.LVarAssign) (Node, error) {
	rhs, err := m.convertExpr(e.Rhs)
	if err != nil {
		return Node{}, err
	}
	if e.IsVar {
		if _, exists, _ := m.ctx.findVar(e.Name, false, e.Pos()); exists {
			return Node{}, errors.ProgramErrorf(e.Pos(), "variable %q already exists", e.Name)
		}
	}
	info, found, err := m.ctx.findVar(e.Name, true, e.Pos())
	if err != nil {
		return Node{}, err
	}
	if found {
		switch info.Kind {
		case VarCurrentScope:
			if err := typecheck.CheckReassignVar(info.Ty, rhs.Ty, e.Name, e.Pos()); err != nil {
				return Node{}, err
			}
			return Node{Ty: rhs.Ty, Body: LVarAssign{Name: e.Name, Rhs: rhs}}, nil
		case VarOuterScope:
			if err := typecheck.CheckReassignVar(info.Ty, rhs.Ty, e.Name, e.Pos()); err != nil {
				return Node{}, err
			}
			return Node{Ty: rhs.Ty, Body: CaptureWrite{Cidx: info.Cidx, Rhs: rhs}}, nil
		}
	}
	m.ctx.declareLvar(e.Name, rhs.Ty, !e.IsVar)
	return Node{Ty: rhs.Ty, Body: LVarAssign{Name: e.Name, Rhs: rhs}}, nil
}

// convertIVarAssign implements spec.md rule 7.
func (m *Maker) convertIVarAssign(e *ast.IVarAssign) (Node, error) {
	if m.ctx.method == nil {
		return Node{}, errors.ProgramErrorf(e.Pos(), "ivar assignment outside a method")
	}
	rhs, err := m.convertExpr(e.Rhs)
	if err != nil {
		return Node{}, err
	}
	mc := m.ctx.method

	if existing, ok := mc.superIvars[e.Name]; ok {
		// Override: types/readonly must match exactly; idx is reused.
		// Outside initialize a readonly ivar cannot be written at all.
		if !mc.isInit && existing.ReadOnly {
			return Node{}, errors.ProgramErrorf(e.Pos(), "cannot reassign readonly ivar %q outside initialize", e.Name)
		}
		if !existing.Ty.EqualsTo(rhs.Ty) {
			return Node{}, errors.TypeErrorf(e.Pos(), "ivar %q override type mismatch: declared %s, got %s", e.Name, existing.Ty, rhs.Ty)
		}
		if mc.isInit && existing.ReadOnly != !e.IsVar {
			return Node{}, errors.TypeErrorf(e.Pos(), "ivar %q override readonly mismatch: declared readonly=%v", e.Name, existing.ReadOnly)
		}
		return Node{Ty: rhs.Ty, Body: IVarAssign{Name: e.Name, Rhs: rhs, Idx: existing.Idx}}, nil
	}
	if mc.isInit {
		if existing, ok := mc.iivars[e.Name]; ok {
			if !existing.Ty.EqualsTo(rhs.Ty) {
				return Node{}, errors.TypeErrorf(e.Pos(), "ivar %q type mismatch: declared %s, got %s", e.Name, existing.Ty, rhs.Ty)
			}
			return Node{Ty: rhs.Ty, Body: IVarAssign{Name: e.Name, Rhs: rhs, Idx: existing.Idx}}, nil
		}
		idx := len(mc.superIvars) + len(mc.iivars)
		iv := types.SkIVar{Idx: idx, Name: e.Name, Ty: rhs.Ty, ReadOnly: !e.IsVar}
		mc.iivars[e.Name] = iv
		return Node{Ty: rhs.Ty, Body: IVarAssign{Name: e.Name, Rhs: rhs, Idx: idx}}, nil
	}
	return Node{}, errors.NameErrorf(e.Pos(), "ivar %q is not declared on this class (declare it in initialize)", e.Name)
}

func (m *Maker) convertConstAssign(e *ast.ConstAssign) (Node, error) {
	rhs, err := m.convertExpr(e.Rhs)
	if err != nil {
		return Node{}, err
	}
	fullname := joinPath(e.Names)
	m.constants[fullname] = rhs.Ty
	return Node{Ty: rhs.Ty, Body: ConstAssign{Fullname: fullname, Rhs: rhs}}, nil
}

func (m *Maker) convertIVarRef(e *ast.IVarRef) (Node, error) {
	if m.ctx.method == nil {
		return Node{}, errors.ProgramErrorf(e.Pos(), "ivar reference outside a method")
	}
	mc := m.ctx.method
	if iv, ok := mc.superIvars[e.Name]; ok {
		return Node{Ty: iv.Ty, Body: IVarRef{Name: e.Name}}, nil
	}
	if iv, ok := mc.iivars[e.Name]; ok {
		return Node{Ty: iv.Ty, Body: IVarRef{Name: e.Name}}, nil
	}
	return Node{}, errors.NameErrorf(e.Pos(), "ivar %q not found", e.Name)
}

func (m *Maker) convertBareName(e *ast.BareName) (Node, error) {
	if info, found, err := m.ctx.findVar(e.Name, false, e.Pos()); err != nil {
		return Node{}, err
	} else if found {
		return nodeFromLVarInfo(e.Name, info), nil
	}
	// Not a local: try an implicit-self method call (rule 11).
	return m.convertMethodCallLike(nil, e.Name, nil, nil, nil, e.Pos())
}

func nodeFromLVarInfo(name string, info LVarInfo) Node {
	switch info.Kind {
	case VarCurrentScope:
		return Node{Ty: info.Ty, Body: LVarRef{Name: name}}
	case VarArgument:
		return Node{Ty: info.Ty, Body: ArgRef{Idx: info.ArgIdx}}
	default: // VarOuterScope
		if info.Name != "" {
			return Node{Ty: info.Ty, Body: CaptureLVarRef{Cidx: info.Cidx, Name: info.Name}}
		}
		return Node{Ty: info.Ty, Body: CaptureArgRef{Cidx: info.Cidx}}
	}
}

func joinPath(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += "::"
		}
		out += n
	}
	return out
}

func (m *Maker) convertArrayLiteral(e *ast.ArrayLiteral) (Node, error) {
	elems, err := m.convertExprs(e.Exprs)
	if err != nil {
		return Node{}, err
	}
	elemTy := types.Object()
	if len(elems) > 0 {
		elemTy = elems[0].Ty
		for _, el := range elems[1:] {
			elemTy = typecheck.NearestCommonAncestor(m.dict, elemTy, el.Ty)
		}
	}
	arrTy := types.Specialized(names.NewClassFullname("Array"), []types.TermTy{elemTy})
	return Node{Ty: arrTy, Body: ArrayLiteral{Elems: elems}}, nil
}
