package hir

import (
	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/types"
)

// convertLambdaExpr implements spec.md §4.3 rule 10: allocate a name,
// push a fresh LambdaCtx, lower the body, pop, then resolve the
// captures recorded during lowering.
func (m *Maker) convertLambdaExpr(e *ast.LambdaExpr, place string) (Node, error) {
	if place == "" {
		place = "expr"
	}
	name := m.nextLambdaName(place)

	params := make([]types.MethodParam, len(e.Params))
	for i, p := range e.Params {
		params[i] = types.MethodParam{Name: p.Name, Ty: m.resolveTypArg(p.Typ)}
	}

	prevCurrent := m.ctx.current
	lc := m.ctx.pushLambda(e.IsFn, params)
	body, err := m.convertExprs(e.Exprs)
	m.ctx.popLambda()
	m.ctx.current = prevCurrent
	if err != nil {
		return Node{}, err
	}
	captures := m.ctx.resolveCaptures(lc)

	bodyExprs := NewExprs(body)
	retTy := bodyExprs.Ty
	paramTys := make([]types.TermTy, len(params))
	for i, p := range params {
		paramTys[i] = p.Ty
	}
	fnTy := types.FnType(paramTys, retTy)

	lambda := LambdaExpr{
		Name:     name,
		IsFn:     e.IsFn,
		Params:   params,
		Body:     bodyExprs,
		Captures: captures,
		HasBreak: lc.hasBreak,
	}
	return Node{Ty: fnTy, Body: lambda}, nil
}
