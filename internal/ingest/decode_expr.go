package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/classhir/internal/ast"
)

func decodeExpression(raw json.RawMessage) (ast.Expression, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	kind := kindOf(raw)
	switch kind {
	case "IntLiteral":
		var w struct {
			Value int64        `json:"value"`
			Pos   ast.Position `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.IntLiteral{Value: w.Value, Pos_: w.Pos}, nil

	case "FloatLiteral":
		var w struct {
			Value float64      `json:"value"`
			Pos   ast.Position `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.FloatLiteral{Value: w.Value, Pos_: w.Pos}, nil

	case "StringLiteral":
		var w struct {
			Value string       `json:"value"`
			Pos   ast.Position `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Value: w.Value, Pos_: w.Pos}, nil

	case "BoolLiteral":
		var w struct {
			Value bool         `json:"value"`
			Pos   ast.Position `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: w.Value, Pos_: w.Pos}, nil

	case "SelfExpr":
		var w struct {
			Pos ast.Position `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.SelfExpr{Pos_: w.Pos}, nil

	case "BareName":
		var w struct {
			Name string       `json:"name"`
			Pos  ast.Position `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.BareName{Name: w.Name, Pos_: w.Pos}, nil

	case "IVarRef":
		var w struct {
			Name string       `json:"name"`
			Pos  ast.Position `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.IVarRef{Name: w.Name, Pos_: w.Pos}, nil

	case "ConstRef":
		var w struct {
			Name ast.ConstName `json:"name"`
			Pos  ast.Position  `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.ConstRef{Name: w.Name, Pos_: w.Pos}, nil

	case "LVarAssign":
		var w struct {
			Name  string          `json:"name"`
			Rhs   json.RawMessage `json:"rhs"`
			IsVar bool            `json:"is_var"`
			Pos   ast.Position    `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		rhs, err := decodeExpression(w.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.LVarAssign{Name: w.Name, Rhs: rhs, IsVar: w.IsVar, Pos_: w.Pos}, nil

	case "IVarAssign":
		var w struct {
			Name  string          `json:"name"`
			Rhs   json.RawMessage `json:"rhs"`
			IsVar bool            `json:"is_var"`
			Pos   ast.Position    `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		rhs, err := decodeExpression(w.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.IVarAssign{Name: w.Name, Rhs: rhs, IsVar: w.IsVar, Pos_: w.Pos}, nil

	case "ConstAssign":
		var w struct {
			Names []string        `json:"names"`
			Rhs   json.RawMessage `json:"rhs"`
			Pos   ast.Position    `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		rhs, err := decodeExpression(w.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.ConstAssign{Names: w.Names, Rhs: rhs, Pos_: w.Pos}, nil

	case "IfExpr":
		var w struct {
			CondExpr  json.RawMessage   `json:"cond_expr"`
			ThenExprs []json.RawMessage `json:"then_exprs"`
			ElseExprs []json.RawMessage `json:"else_exprs"`
			Pos       ast.Position      `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		cond, err := decodeExpression(w.CondExpr)
		if err != nil {
			return nil, err
		}
		thenExprs, err := decodeExpressions(w.ThenExprs)
		if err != nil {
			return nil, err
		}
		elseExprs, err := decodeExpressions(w.ElseExprs)
		if err != nil {
			return nil, err
		}
		return &ast.IfExpr{CondExpr: cond, ThenExprs: thenExprs, ElseExprs: elseExprs, Pos_: w.Pos}, nil

	case "WhileExpr":
		var w struct {
			CondExpr  json.RawMessage   `json:"cond_expr"`
			BodyExprs []json.RawMessage `json:"body_exprs"`
			Pos       ast.Position      `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		cond, err := decodeExpression(w.CondExpr)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpressions(w.BodyExprs)
		if err != nil {
			return nil, err
		}
		return &ast.WhileExpr{CondExpr: cond, BodyExprs: body, Pos_: w.Pos}, nil

	case "BreakExpr":
		var w struct {
			Pos ast.Position `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return &ast.BreakExpr{Pos_: w.Pos}, nil

	case "ReturnExpr":
		var w struct {
			Arg json.RawMessage `json:"arg"`
			Pos ast.Position    `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		arg, err := decodeExpression(w.Arg)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnExpr{Arg: arg, Pos_: w.Pos}, nil

	case "LogicalNot":
		var w struct {
			Expr json.RawMessage `json:"expr"`
			Pos  ast.Position    `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		inner, err := decodeExpression(w.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.LogicalNot{Expr: inner, Pos_: w.Pos}, nil

	case "LogicalAnd", "LogicalOr":
		var w struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
			Pos   ast.Position    `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		left, err := decodeExpression(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(w.Right)
		if err != nil {
			return nil, err
		}
		if kind == "LogicalAnd" {
			return &ast.LogicalAnd{Left: left, Right: right, Pos_: w.Pos}, nil
		}
		return &ast.LogicalOr{Left: left, Right: right, Pos_: w.Pos}, nil

	case "MethodCall":
		var w struct {
			Receiver                json.RawMessage   `json:"receiver"`
			MethodName              string            `json:"method_name"`
			Args                    []json.RawMessage `json:"args"`
			TypeArgs                []ast.Typ         `json:"type_args"`
			Block                   json.RawMessage   `json:"block"`
			Primary                 bool              `json:"primary"`
			MayHaveParenWoArgs      bool              `json:"may_have_paren_wo_args"`
			Pos                     ast.Position      `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		recv, err := decodeExpression(w.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(w.Args)
		if err != nil {
			return nil, err
		}
		var block *ast.LambdaExpr
		if len(w.Block) > 0 && string(w.Block) != "null" {
			b, err := decodeExpression(w.Block)
			if err != nil {
				return nil, err
			}
			lb, ok := b.(*ast.LambdaExpr)
			if !ok {
				return nil, fmt.Errorf("ingest: MethodCall.block is not a lambda")
			}
			block = lb
		}
		return &ast.MethodCall{
			Receiver: recv, MethodName: w.MethodName, Args: args, TypeArgs: w.TypeArgs,
			Block: block, Primary: w.Primary, MayHaveParenWithoutArgs: w.MayHaveParenWoArgs,
			Pos_: w.Pos,
		}, nil

	case "LambdaExpr":
		var w struct {
			Params []ast.Param       `json:"params"`
			Exprs  []json.RawMessage `json:"exprs"`
			IsFn   bool              `json:"is_fn"`
			Pos    ast.Position      `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		exprs, err := decodeExpressions(w.Exprs)
		if err != nil {
			return nil, err
		}
		return &ast.LambdaExpr{Params: w.Params, Exprs: exprs, IsFn: w.IsFn, Pos_: w.Pos}, nil

	case "ArrayLiteral":
		var w struct {
			Exprs []json.RawMessage `json:"exprs"`
			Pos   ast.Position      `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		exprs, err := decodeExpressions(w.Exprs)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{Exprs: exprs, Pos_: w.Pos}, nil
	}
	return nil, fmt.Errorf("ingest: unknown expression kind %q", kind)
}
