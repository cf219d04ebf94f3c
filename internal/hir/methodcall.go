package hir

import (
	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/errors"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/typecheck"
	"github.com/cwbudde/classhir/internal/types"
)

// convertMethodCall implements spec.md §4.3 rule 9. A bare call whose
// name resolves to a local of function type is a lambda invocation
// rather than a method dispatch.
func (m *Maker) convertMethodCall(e *ast.MethodCall) (Node, error) {
	if e.Receiver == nil {
		if info, found, err := m.ctx.findVar(e.MethodName, false, e.Pos()); err != nil {
			return Node{}, err
		} else if found {
			if _, ok := info.Ty.FnXInfo(); ok {
				return m.convertLambdaInvocation(e, info)
			}
		}
	}
	return m.convertMethodCallLike(e.Receiver, e.MethodName, e.Args, e.TypeArgs, e.Block, e.Pos())
}

func (m *Maker) convertLambdaInvocation(e *ast.MethodCall, info LVarInfo) (Node, error) {
	lambdaNode := nodeFromLVarInfo(e.MethodName, info)
	args, err := m.convertExprs(e.Args)
	if err != nil {
		return Node{}, err
	}
	retTy, _ := info.Ty.FnXInfo()
	paramTys := info.Ty.ParamTys()
	if len(args) != len(paramTys) {
		return Node{}, errors.ProgramErrorf(e.Pos(), "%s: wrong number of arguments (%d for %d)", e.MethodName, len(args), len(paramTys))
	}
	for i, pty := range paramTys {
		if !typecheck.IsSubtypeOf(m.dict, args[i].Ty, pty) {
			return Node{}, errors.TypeErrorf(e.Pos(), "argument %d to %s expects %s, found %s", i+1, e.MethodName, pty, args[i].Ty)
		}
	}
	return Node{Ty: retTy, Body: LambdaInvocation{Lambda: lambdaNode, Args: args}}, nil
}

// convertMethodCallLike resolves and type-checks an explicit- or
// implicit-self method call, inserting bit-casts for defining-class
// upcasts and for generic erasure at specialized receivers.
func (m *Maker) convertMethodCallLike(receiverExpr ast.Expression, methodName string, argExprs []ast.Expression, typeArgExprs []ast.Typ, block *ast.LambdaExpr, pos ast.Position) (Node, error) {
	receiver, err := m.resolveReceiver(receiverExpr, methodName, pos)
	if err != nil {
		return Node{}, err
	}

	sig, definingClass, ok := m.dict.FindMethod(receiver.Ty.BaseFullname(), methodName)
	if !ok {
		return Node{}, errors.NameErrorf(pos, "variable or method %q was not found", methodName)
	}

	methodTyArgs, err := m.resolveMethodTypeArgs(typeArgExprs, pos)
	if err != nil {
		return Node{}, err
	}
	sig = sig.Substitute(receiver.Ty.TyArgs(), methodTyArgs)

	args, err := m.convertExprs(argExprs)
	if err != nil {
		return Node{}, err
	}

	var blockLambda *LambdaExpr
	if block != nil {
		blockNode, err := m.convertLambdaExpr(block, methodName)
		if err != nil {
			return Node{}, err
		}
		lam := blockNode.Body.(LambdaExpr)
		blockLambda = &lam
		args = append(args, blockNode)
	}

	argTys := make([]types.TermTy, len(args))
	for i, a := range args {
		argTys[i] = a.Ty
	}
	if err := typecheck.CheckMethodArgs(m.dict, sig, argTys, pos); err != nil {
		return Node{}, err
	}

	if blockLambda != nil && blockLambda.HasBreak && !sig.RetTy.IsVoidType() {
		return Node{}, errors.ProgramErrorf(pos, "break is not valid in a value-returning block")
	}

	// Snapshot specialization from the pre-upcast receiver (original
	// Rust `_make_method_call` captures `receiver_hir.ty.is_specialized()`
	// before rebinding receiver to the upcast node, whose Ty is always Raw).
	specialized := receiver.Ty.IsSpecialized()

	if definingClass.String() != receiver.Ty.BaseFullname().String() {
		receiver = Node{Ty: types.Raw(definingClass), Body: BitCast{Expr: receiver}}
	}

	call := MethodCall{Receiver: receiver, MethodName: methodName, DefiningClass: definingClass.String(), Args: args, Block: blockLambda}

	if !specialized {
		return Node{Ty: sig.RetTy, Body: call}, nil
	}

	// Generic erasure: arguments pass through Object, result is cast back.
	erasedArgs := make([]Node, len(args))
	for i, a := range args {
		erasedArgs[i] = Node{Ty: types.Object(), Body: BitCast{Expr: a}}
	}
	call.Args = erasedArgs
	call.Erased = true
	inner := Node{Ty: types.Object(), Body: call}
	return Node{Ty: sig.RetTy, Body: BitCast{Expr: inner}}, nil
}

func (m *Maker) resolveReceiver(receiverExpr ast.Expression, methodName string, pos ast.Position) (Node, error) {
	if receiverExpr != nil {
		return m.convertExpr(receiverExpr)
	}
	if m.ctx.method == nil {
		return Node{}, errors.NameErrorf(pos, "variable or method %q was not found", methodName)
	}
	return Node{Ty: m.selfTy(), Body: SelfExpr{}}, nil
}

// resolveMethodTypeArgs converts the explicit `<T1, ..., Tn>` supplied at
// a call site. Each must denote a class (spec.md rule 9), never a value.
func (m *Maker) resolveMethodTypeArgs(typeArgExprs []ast.Typ, pos ast.Position) ([]types.TermTy, error) {
	out := make([]types.TermTy, len(typeArgExprs))
	for i, t := range typeArgExprs {
		ty := m.resolveTypArg(t)
		if _, ok := m.dict.FindClass(ty.BaseFullname()); !ok {
			return nil, errors.NameErrorf(pos, "type argument %q does not denote a class", t.Name)
		}
		out[i] = ty
	}
	return out, nil
}

func (m *Maker) resolveTypArg(t ast.Typ) types.TermTy {
	if len(t.TypeArgs) == 0 {
		return types.RawS(t.Name)
	}
	args := make([]types.TermTy, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = m.resolveTypArg(a)
	}
	return types.Specialized(names.NewClassFullname(t.Name), args)
}
