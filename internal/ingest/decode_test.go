package ingest

import (
	"testing"

	"github.com/cwbudde/classhir/internal/ast"
)

func TestDecodeProgramClassDefinition(t *testing.T) {
	data := []byte(`{
		"toplevel_defs": [
			{
				"kind": "ClassDefinition",
				"name": "Point",
				"typarams": [],
				"superclass": null,
				"defs": [
					{
						"kind": "InstanceMethodDefinition",
						"sig": {"name": "getX", "params": [], "ret_typ": {"name": "Int"}, "typarams": []},
						"body_exprs": [
							{"kind": "IVarRef", "name": "x", "pos": {"line": 2, "column": 3}}
						],
						"pos": {"line": 1, "column": 1}
					}
				],
				"pos": {"line": 1, "column": 1}
			}
		]
	}`)

	prog, err := DecodeProgram(data)
	if err != nil {
		t.Fatalf("DecodeProgram() = %v, want nil", err)
	}
	if len(prog.ToplevelDefs) != 1 {
		t.Fatalf("len(ToplevelDefs) = %d, want 1", len(prog.ToplevelDefs))
	}
	cls, ok := prog.ToplevelDefs[0].(*ast.ClassDefinition)
	if !ok {
		t.Fatalf("ToplevelDefs[0] = %T, want *ast.ClassDefinition", prog.ToplevelDefs[0])
	}
	if cls.Name != "Point" {
		t.Errorf("Name = %q, want Point", cls.Name)
	}
	if len(cls.Defs) != 1 {
		t.Fatalf("len(Defs) = %d, want 1", len(cls.Defs))
	}
	method, ok := cls.Defs[0].(*ast.InstanceMethodDefinition)
	if !ok {
		t.Fatalf("Defs[0] = %T, want *ast.InstanceMethodDefinition", cls.Defs[0])
	}
	if len(method.BodyExprs) != 1 {
		t.Fatalf("len(BodyExprs) = %d, want 1", len(method.BodyExprs))
	}
	ivarRef, ok := method.BodyExprs[0].(*ast.IVarRef)
	if !ok {
		t.Fatalf("BodyExprs[0] = %T, want *ast.IVarRef", method.BodyExprs[0])
	}
	if ivarRef.Name != "x" {
		t.Errorf("IVarRef.Name = %q, want x", ivarRef.Name)
	}
}

func TestDecodeExpressionKinds(t *testing.T) {
	tests := []struct {
		name string
		json string
		want func(ast.Expression) bool
	}{
		{"IntLiteral", `{"kind":"IntLiteral","value":42}`, func(e ast.Expression) bool {
			lit, ok := e.(*ast.IntLiteral)
			return ok && lit.Value == 42
		}},
		{"BoolLiteral", `{"kind":"BoolLiteral","value":true}`, func(e ast.Expression) bool {
			lit, ok := e.(*ast.BoolLiteral)
			return ok && lit.Value
		}},
		{"SelfExpr", `{"kind":"SelfExpr"}`, func(e ast.Expression) bool {
			_, ok := e.(*ast.SelfExpr)
			return ok
		}},
		{"LogicalAnd", `{"kind":"LogicalAnd","left":{"kind":"BoolLiteral","value":true},"right":{"kind":"BoolLiteral","value":false}}`, func(e ast.Expression) bool {
			_, ok := e.(*ast.LogicalAnd)
			return ok
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := decodeExpression([]byte(tt.json))
			if err != nil {
				t.Fatalf("decodeExpression() = %v, want nil", err)
			}
			if !tt.want(e) {
				t.Errorf("decodeExpression() = %#v, did not match predicate", e)
			}
		})
	}
}

func TestDecodeExpressionUnknownKind(t *testing.T) {
	_, err := decodeExpression([]byte(`{"kind":"Bogus"}`))
	if err == nil {
		t.Error("decodeExpression() = nil, want an error for an unknown kind")
	}
}

func TestDecodeExpressionNull(t *testing.T) {
	e, err := decodeExpression([]byte(`null`))
	if err != nil {
		t.Fatalf("decodeExpression(null) = %v, want nil", err)
	}
	if e != nil {
		t.Errorf("decodeExpression(null) = %#v, want nil", e)
	}
}

func TestDecodeMethodCallWithBlock(t *testing.T) {
	data := []byte(`{
		"kind": "MethodCall",
		"method_name": "each",
		"args": [],
		"block": {
			"kind": "LambdaExpr",
			"params": [{"name": "it", "typ": {"name": "Int"}}],
			"exprs": [],
			"is_fn": false
		}
	}`)
	e, err := decodeExpression(data)
	if err != nil {
		t.Fatalf("decodeExpression() = %v, want nil", err)
	}
	call, ok := e.(*ast.MethodCall)
	if !ok {
		t.Fatalf("e = %T, want *ast.MethodCall", e)
	}
	if call.Block == nil {
		t.Fatal("Block = nil, want a decoded lambda")
	}
	if len(call.Block.Params) != 1 || call.Block.Params[0].Name != "it" {
		t.Errorf("Block.Params = %v, want [it]", call.Block.Params)
	}
}
