package hir

import (
	"fmt"

	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/classdict"
	"github.com/cwbudde/classhir/internal/errors"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/typecheck"
	"github.com/cwbudde/classhir/internal/types"
)

// Program is the fully lowered, type-checked output of a HIR Maker run:
// every class's methods converted to Exprs, plus the toplevel expressions
// and the resolved constant table (spec.md §3.7).
type Program struct {
	Methods   map[string]Exprs // keyed by MethodFullname.String()
	Constants map[string]types.TermTy
	Toplevel  Exprs
}

// Maker is the HIR Maker (spec.md §4.3): it borrows a ClassDict (mutably
// only when registering specialized metaclasses for const lazy
// specialization) and lowers a parsed ast.Program into a Program.
type Maker struct {
	dict      *classdict.ClassDict
	ctx       *Ctx
	constants map[string]types.TermTy
	imported  map[string]types.TermTy

	strLitCount int
	lambdaCount int

	methods map[string]Exprs
}

// NewMaker builds a Maker over an already-indexed ClassDict. imported
// carries the stdlib's own pre-resolved constants (spec.md §4.3).
func NewMaker(dict *classdict.ClassDict, imported map[string]types.TermTy) *Maker {
	if imported == nil {
		imported = map[string]types.TermTy{}
	}
	return &Maker{
		dict:      dict,
		ctx:       newCtx(),
		constants: map[string]types.TermTy{},
		imported:  imported,
		methods:   map[string]Exprs{},
	}
}

// ConvertProgram lowers every class's methods and the toplevel
// expressions, returning the finished Program.
func (m *Maker) ConvertProgram(prog *ast.Program) (*Program, error) {
	ns := names.Root()
	var toplevelNodes []Node
	for _, def := range prog.ToplevelDefs {
		switch def := def.(type) {
		case *ast.ClassDefinition:
			if err := m.convertClassBody(ns, names.NewClassFirstname(def.Name), def.Defs); err != nil {
				return nil, err
			}
		case *ast.EnumDefinition:
			if err := m.convertEnumBody(ns, names.NewClassFirstname(def.Name), def.Cases); err != nil {
				return nil, err
			}
		case *ast.ConstDefinition:
			node, err := m.convertConstDefinition(ns, def)
			if err != nil {
				return nil, err
			}
			toplevelNodes = append(toplevelNodes, node)
		default:
			return nil, errors.SyntaxErrorf(def.Pos(), "must not be toplevel: %T", def)
		}
	}
	return &Program{Methods: m.methods, Constants: m.constants, Toplevel: NewExprs(toplevelNodes)}, nil
}

func (m *Maker) convertClassBody(ns names.Namespace, firstname names.ClassFirstname, defs []ast.Definition) error {
	fullname := ns.ClassFullname(firstname)
	innerNS := ns.Add(firstname)
	class, ok := m.dict.FindClass(fullname)
	if !ok {
		errors.Bugf("hir: class %s was not indexed", fullname)
	}
	for _, def := range defs {
		switch def := def.(type) {
		case *ast.InstanceMethodDefinition:
			if err := m.convertMethod(class, fullname, def.Sig.Name, def.BodyExprs); err != nil {
				return err
			}
		case *ast.ClassMethodDefinition:
			meta, ok := m.dict.FindClass(class.MetaFullname())
			if !ok {
				errors.Bugf("hir: metaclass %s was not indexed", class.MetaFullname())
			}
			if err := m.convertMethod(meta, class.MetaFullname(), def.Sig.Name, def.BodyExprs); err != nil {
				return err
			}
		case *ast.ClassDefinition:
			if err := m.convertClassBody(innerNS, names.NewClassFirstname(def.Name), def.Defs); err != nil {
				return err
			}
		case *ast.EnumDefinition:
			if err := m.convertEnumBody(innerNS, names.NewClassFirstname(def.Name), def.Cases); err != nil {
				return err
			}
		case *ast.ConstDefinition:
			if _, err := m.convertConstDefinition(innerNS, def); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Maker) convertEnumBody(ns names.Namespace, firstname names.ClassFirstname, cases []ast.EnumCase) error {
	// Enum case bodies (initialize/getters) are synthesized wholesale by
	// the indexer (internal/classdict); there are no AST method bodies to
	// lower here, only the signatures already registered.
	return nil
}

// convertMethod lowers one method's body inside its own fresh method
// context, then checks the body's resulting type against the signature's
// declared return type (spec.md §4.3 rule 5).
func (m *Maker) convertMethod(owner types.SkClass, ownerFullname names.ClassFullname, methodName string, bodyExprs []ast.Expression) error {
	sig, ok := owner.Method(methodName)
	if !ok {
		errors.Bugf("hir: method %s#%s was not indexed", ownerFullname, methodName)
	}

	// superIvars holds every ivar visible by name inside this method: the
	// owner's own already-registered ivars (set by an earlier `initialize`
	// conversion, refetched fresh from the dict) plus its ancestors'.
	// `initialize` itself sees none of its own class's ivars here yet (the
	// dict entry is still empty); it grows mc.iivars as it assigns them.
	superIvars := m.ancestorIvars(ownerFullname)
	isInitialize := methodName == "initialize"

	m.ctx.method = &methodCtx{sig: sig, superIvars: superIvars, iivars: map[string]types.SkIVar{}, isInit: isInitialize}
	m.ctx.current = CtxMethod

	nodes, err := m.convertExprs(bodyExprs)
	if err != nil {
		m.ctx.method = nil
		return err
	}
	bodyTy := exprsTy(nodes)
	if !bodyTy.IsNeverType() {
		if err := requireReturnCompatible(m.dict, bodyTy, sig.RetTy, posOf(bodyExprs)); err != nil {
			m.ctx.method = nil
			return err
		}
	}

	if isInitialize {
		// Newly declared ivars become part of the owning class's table.
		all := map[string]types.SkIVar{}
		for k, v := range superIvars {
			all[k] = v
		}
		for k, v := range m.ctx.method.iivars {
			all[k] = v
		}
		owner.Ivars = all
		m.dict.AddClass(owner)
	}

	m.methods[sig.Fullname.String()] = NewExprs(nodes)
	m.ctx.method = nil
	m.ctx.current = CtxToplevel
	return nil
}

func (m *Maker) ancestorIvars(fullname names.ClassFullname) map[string]types.SkIVar {
	c, ok := m.dict.FindClass(fullname)
	if !ok {
		return nil
	}
	out := map[string]types.SkIVar{}
	if c.HasSuper {
		for k, v := range m.ancestorIvars(c.Superclass.Fullname()) {
			out[k] = v
		}
	}
	for k, v := range c.Ivars {
		out[k] = v
	}
	return out
}

func requireReturnCompatible(dict *classdict.ClassDict, bodyTy, retTy types.TermTy, pos ast.Position) error {
	if retTy.IsVoidType() {
		return nil // any body may be discarded at method end
	}
	if !typecheck.IsSubtypeOf(dict, bodyTy, retTy) {
		return errors.TypeErrorf(pos, "method body has type %s, expected %s", bodyTy, retTy)
	}
	return nil
}

func posOf(exprs []ast.Expression) ast.Position {
	if len(exprs) == 0 {
		return ast.Position{}
	}
	return exprs[len(exprs)-1].Pos()
}

func (m *Maker) nextStrLit(value string) int {
	idx := m.strLitCount
	m.strLitCount++
	return idx
}

func (m *Maker) nextLambdaName(place string) string {
	n := m.lambdaCount
	m.lambdaCount++
	return fmt.Sprintf("lambda_%d_in_%s", n, place)
}
