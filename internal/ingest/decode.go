// Package ingest decodes the serialized AST artifact (spec.md §6.1) that the
// upstream parser collaborator produces, into internal/ast's typed tree.
//
// The wire format is JSON; each polymorphic node (ast.Definition,
// ast.Expression) carries a "kind" discriminator field alongside its
// concrete payload. gjson sniffs that single field cheaply before the
// concrete shape is committed to a typed encoding/json.Unmarshal, which
// keeps the hot path (reading thousands of expression nodes) from paying
// for a full decode-then-inspect round trip.
package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/cwbudde/classhir/internal/ast"
)

// DecodeProgram parses a serialized AST into a *ast.Program.
func DecodeProgram(data []byte) (*ast.Program, error) {
	var raw struct {
		ToplevelDefs []json.RawMessage `json:"toplevel_defs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ingest: decode program: %w", err)
	}
	defs := make([]ast.Definition, 0, len(raw.ToplevelDefs))
	for _, d := range raw.ToplevelDefs {
		def, err := decodeDefinition(d)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return &ast.Program{ToplevelDefs: defs}, nil
}

func kindOf(raw []byte) string {
	return gjson.GetBytes(raw, "kind").String()
}

func decodeDefinition(raw json.RawMessage) (ast.Definition, error) {
	switch kindOf(raw) {
	case "ClassDefinition":
		var w struct {
			Name       string            `json:"name"`
			Typarams   []string          `json:"typarams"`
			Superclass *ast.ConstName     `json:"superclass"`
			Defs       []json.RawMessage `json:"defs"`
			Pos        ast.Position      `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("ingest: ClassDefinition: %w", err)
		}
		defs, err := decodeDefinitions(w.Defs)
		if err != nil {
			return nil, err
		}
		return &ast.ClassDefinition{
			Name: w.Name, Typarams: w.Typarams, Superclass: w.Superclass,
			Defs: defs, Pos_: w.Pos,
		}, nil

	case "EnumDefinition":
		var w struct {
			Name     string   `json:"name"`
			Typarams []string `json:"typarams"`
			Cases    []struct {
				Name   string       `json:"name"`
				Params []ast.Param  `json:"params"`
				Pos    ast.Position `json:"pos"`
			} `json:"cases"`
			Pos ast.Position `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("ingest: EnumDefinition: %w", err)
		}
		cases := make([]ast.EnumCase, 0, len(w.Cases))
		for _, c := range w.Cases {
			cases = append(cases, ast.EnumCase{Name: c.Name, Params: c.Params, Pos_: c.Pos})
		}
		return &ast.EnumDefinition{Name: w.Name, Typarams: w.Typarams, Cases: cases, Pos_: w.Pos}, nil

	case "InstanceMethodDefinition", "ClassMethodDefinition":
		var w struct {
			Sig       ast.AstMethodSignature `json:"sig"`
			BodyExprs []json.RawMessage      `json:"body_exprs"`
			Pos       ast.Position           `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("ingest: method definition: %w", err)
		}
		body, err := decodeExpressions(w.BodyExprs)
		if err != nil {
			return nil, err
		}
		if kindOf(raw) == "InstanceMethodDefinition" {
			return &ast.InstanceMethodDefinition{Sig: w.Sig, BodyExprs: body, Pos_: w.Pos}, nil
		}
		return &ast.ClassMethodDefinition{Sig: w.Sig, BodyExprs: body, Pos_: w.Pos}, nil

	case "ConstDefinition":
		var w struct {
			Name string          `json:"name"`
			Expr json.RawMessage `json:"expr"`
			Pos  ast.Position    `json:"pos"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("ingest: ConstDefinition: %w", err)
		}
		expr, err := decodeExpression(w.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ConstDefinition{Name: w.Name, Expr: expr, Pos_: w.Pos}, nil
	}
	return nil, fmt.Errorf("ingest: unknown definition kind %q", kindOf(raw))
}

func decodeDefinitions(raws []json.RawMessage) ([]ast.Definition, error) {
	out := make([]ast.Definition, 0, len(raws))
	for _, r := range raws {
		d, err := decodeDefinition(r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeExpressions(raws []json.RawMessage) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(raws))
	for _, r := range raws {
		e, err := decodeExpression(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
