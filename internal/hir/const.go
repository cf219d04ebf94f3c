package hir

import (
	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/errors"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/types"
)

// convertConstDefinition lowers a toplevel or nested `CONST = expr`
// definition (spec.md rule 8): its RHS is lowered and the constant's
// type is registered under the joined namespace path.
func (m *Maker) convertConstDefinition(ns names.Namespace, def *ast.ConstDefinition) (Node, error) {
	node, err := m.convertExpr(def.Expr)
	if err != nil {
		return Node{}, err
	}
	fullname := constPathFor(ns, def.Name)
	m.constants[fullname] = node.Ty
	return Node{Ty: node.Ty, Body: ConstAssign{Fullname: fullname, Rhs: node}}, nil
}

func constPathFor(ns names.Namespace, name string) string {
	segs := ns.Segments()
	out := ""
	for _, s := range segs {
		out += s.String() + "::"
	}
	return out + name
}

// convertConstRef implements spec.md rule 12: resolve the path through
// const_scopes (approximated here by trying the literal path directly —
// namespace-relative shorthand resolution is performed by the indexer's
// namespace-qualified registration), with lazy generic specialization.
func (m *Maker) convertConstRef(e *ast.ConstRef) (Node, error) {
	base := joinPath(e.Name.Names)
	if len(e.Name.TypeArgs) == 0 {
		ty, ok := m.lookupConstant(base)
		if !ok {
			return Node{}, errors.NameErrorf(e.Pos(), "uninitialized constant %s", base)
		}
		return Node{Ty: ty, Body: ConstRef{Fullname: base}}, nil
	}

	tyargs := make([]types.TermTy, len(e.Name.TypeArgs))
	tyargNames := make([]string, len(e.Name.TypeArgs))
	for i, t := range e.Name.TypeArgs {
		tyargs[i] = m.resolveTypArg(t)
		tyargNames[i] = tyargs[i].Fullname().String()
	}
	resolved := names.ResolvedConstName{Path: e.Name.Names, TypeArgs: tyargNames}
	fullname := resolved.String()

	if ty, ok := m.lookupConstant(fullname); ok {
		return Node{Ty: ty, Body: ConstRef{Fullname: fullname}}, nil
	}
	ty, err := m.specializeConst(base, tyargs, e.Pos())
	if err != nil {
		return Node{}, err
	}
	m.constants[fullname] = ty
	return Node{Ty: ty, Body: ConstRef{Fullname: fullname}}, nil
}

// lookupConstant checks user-defined constants, the stdlib's imported
// constants, and finally whether name is simply a class's own name (a
// bare class reference evaluates to its class object).
func (m *Maker) lookupConstant(name string) (types.TermTy, bool) {
	if ty, ok := m.constants[name]; ok {
		return ty, true
	}
	if ty, ok := m.imported[name]; ok {
		return ty, true
	}
	if c, ok := m.dict.FindClass(names.NewClassFullname(name)); ok {
		return types.MetaClass(c.Fullname), true
	}
	return types.TermTy{}, false
}

// specializeConst synthesizes a specialized metaclass `Meta:Base<Args>`
// by cloning the generic metaclass's ivars and signatures and
// substituting type-parameter references with tyargs (spec.md §4.3
// "Const lazy specialization"). Idempotent: a pre-existing specialized
// metaclass is reused rather than rebuilt.
func (m *Maker) specializeConst(base string, tyargs []types.TermTy, pos ast.Position) (types.TermTy, error) {
	baseFullname := names.NewClassFullname(base)
	generic, ok := m.dict.FindClass(baseFullname)
	if !ok {
		return types.TermTy{}, errors.NameErrorf(pos, "uninitialized constant %s", base)
	}
	genericMeta, ok := m.dict.FindClass(generic.MetaFullname())
	if !ok {
		errors.Bugf("hir: class %s has no companion metaclass", baseFullname)
	}

	specializedInstTy := types.Specialized(baseFullname, tyargs)
	specializedMetaFullname := specializedInstTy.Fullname().MetaName()
	if _, exists := m.dict.FindClass(specializedMetaFullname); exists {
		return specializedInstTy, nil
	}

	ivars := make(map[string]types.SkIVar, len(genericMeta.Ivars))
	for k, iv := range genericMeta.Ivars {
		ivars[k] = types.SkIVar{Idx: iv.Idx, Name: iv.Name, ReadOnly: iv.ReadOnly, Ty: iv.Ty.Substitute(tyargs, nil)}
	}
	sigs := make(map[string]types.MethodSignature, len(genericMeta.MethodSigs))
	for k, sig := range genericMeta.MethodSigs {
		sigs[k] = sig.Substitute(tyargs, nil)
	}

	m.dict.AddClass(types.SkClass{
		Fullname:   specializedMetaFullname,
		Superclass: genericMeta.Superclass,
		HasSuper:   genericMeta.HasSuper,
		InstanceTy: types.MetaClass(specializedInstTy.Fullname()),
		Ivars:      ivars,
		MethodSigs: sigs,
		ConstIsObj: genericMeta.ConstIsObj,
		Foreign:    genericMeta.Foreign,
	})
	return specializedInstTy, nil
}
