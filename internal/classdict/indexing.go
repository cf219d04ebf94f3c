package classdict

import (
	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/errors"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/types"
)

type methodSigs map[string]types.MethodSignature

// IndexProgram runs the second pass (spec.md §4.1 step 2): it walks the
// program's toplevel definitions, registering every ClassDefinition and
// EnumDefinition. The dictionary must already be seeded with stdlib
// classes (step 1) before this is called.
func (d *ClassDict) IndexProgram(prog *ast.Program) error {
	ns := names.Root()
	for _, def := range prog.ToplevelDefs {
		if err := d.indexToplevelDef(ns, def); err != nil {
			return err
		}
	}
	return nil
}

func (d *ClassDict) indexToplevelDef(ns names.Namespace, def ast.Definition) error {
	switch def := def.(type) {
	case *ast.ClassDefinition:
		return d.indexClass(ns, names.NewClassFirstname(def.Name), def.Typarams, def.Superclass, def.Defs)
	case *ast.EnumDefinition:
		return d.indexEnum(ns, names.NewClassFirstname(def.Name), def.Typarams, def.Cases)
	case *ast.ConstDefinition:
		return nil // constants are handled by the HIR Maker, not the indexer
	default:
		return errors.SyntaxErrorf(def.Pos(), "must not be toplevel: %T", def)
	}
}

func (d *ClassDict) indexClass(ns names.Namespace, firstname names.ClassFirstname, typarams []string, astSuper *ast.ConstName, defs []ast.Definition) error {
	fullname := ns.ClassFullname(firstname)
	metaFullname := fullname.MetaName()

	superclass, hasSuper := d.resolveSuperclass(astSuper, typarams)

	newSig := signatureOfNew(metaFullname, d.initializerParams(typarams, defs), returnTypeOfNew(fullname, typarams))

	innerNS := ns.Add(firstname)
	instanceMethods, classMethods, err := d.indexDefsInClass(innerNS, fullname, typarams, defs)
	if err != nil {
		return err
	}

	if existing, ok := d.FindClass(fullname); ok {
		// Reopening a class: needed when the same class is declared both
		// in source and in a bundled descriptor (spec.md §4.1 step 2).
		for k, v := range instanceMethods {
			existing.MethodSigs[k] = v
		}
		d.setClass(existing)

		meta := d.mustGetClass(metaFullname)
		for k, v := range classMethods {
			meta.MethodSigs[k] = v
		}
		if _, ok := meta.MethodSigs["new"]; !ok {
			meta.MethodSigs[newSig.Fullname.FirstName.String()] = newSig
		}
		d.setClass(meta)
		return nil
	}

	return d.addNewClass(fullname, typarams, superclass, hasSuper, &newSig, instanceMethods, classMethods, false)
}

func (d *ClassDict) indexEnum(ns names.Namespace, firstname names.ClassFirstname, typarams []string, cases []ast.EnumCase) error {
	fullname := ns.ClassFullname(firstname)
	if err := d.addNewClass(fullname, typarams, types.SimpleSuperclass("Object"), true, nil, methodSigs{}, methodSigs{}, false); err != nil {
		return err
	}
	for _, c := range cases {
		if err := d.indexEnumCase(ns, fullname, typarams, c); err != nil {
			return err
		}
	}
	return nil
}

func (d *ClassDict) indexEnumCase(ns names.Namespace, enumFullname names.ClassFullname, typarams []string, kase ast.EnumCase) error {
	ivarList := enumCaseIvars(typarams, kase)
	fullname := enumFullname.String() + "::" + kase.Name
	caseFullname := names.NewClassFullname(fullname)
	superclass := enumCaseSuperclass(enumFullname, typarams, kase)
	newSig, initSig := enumCaseNewSig(typarams, caseFullname, kase)

	instanceMethods := enumCaseGetters(caseFullname, ivarList)
	instanceMethods["initialize"] = initSig

	constIsObj := len(kase.Params) == 0
	if err := d.addNewClass(caseFullname, typarams, superclass, true, &newSig, instanceMethods, methodSigs{}, constIsObj); err != nil {
		return err
	}

	ivars := map[string]types.SkIVar{}
	for _, iv := range ivarList {
		ivars[iv.Name] = iv
	}
	d.defineIvars(caseFullname, ivars)
	return nil
}

// indexDefsInClass is the per-member pass inside a class body: it builds
// the instance- and class-method signature tables and recurses into any
// nested class/enum definitions under their own (deeper) namespace.
func (d *ClassDict) indexDefsInClass(ns names.Namespace, fullname names.ClassFullname, typarams []string, defs []ast.Definition) (methodSigs, methodSigs, error) {
	instanceMethods := methodSigs{}
	classMethods := methodSigs{}
	for _, def := range defs {
		switch def := def.(type) {
		case *ast.InstanceMethodDefinition:
			sig := createSignature(fullname, def.Sig, typarams)
			instanceMethods[def.Sig.Name] = sig
		case *ast.ClassMethodDefinition:
			sig := createSignature(fullname.MetaName(), def.Sig, nil)
			classMethods[def.Sig.Name] = sig
		case *ast.ConstDefinition:
			// handled by the HIR Maker
		case *ast.ClassDefinition:
			if err := d.indexClass(ns, names.NewClassFirstname(def.Name), def.Typarams, def.Superclass, def.Defs); err != nil {
				return nil, nil, err
			}
		case *ast.EnumDefinition:
			if err := d.indexEnum(ns, names.NewClassFirstname(def.Name), def.Typarams, def.Cases); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, errors.SyntaxErrorf(def.Pos(), "unexpected member definition: %T", def)
		}
	}
	return instanceMethods, classMethods, nil
}

// addNewClass registers a freshly discovered class and its companion
// metaclass (spec.md §3.3 invariant 1): the metaclass is a subclass of
// `Class` and its ivars are copied from the builtin `Class`.
func (d *ClassDict) addNewClass(fullname names.ClassFullname, typaramNames []string, superclass types.Superclass, hasSuper bool, newSig *types.MethodSignature, instanceMethods, classMethods methodSigs, constIsObj bool) error {
	typarams := make([]types.TyParam, len(typaramNames))
	for i, n := range typaramNames {
		typarams[i] = types.TyParam{Name: n}
	}

	if classMethods == nil {
		classMethods = methodSigs{}
	}
	if newSig != nil {
		classMethods[newSig.Fullname.FirstName.String()] = *newSig
	}

	if !d.isValidSuperclass(superclass.Ty(), typaramNames) {
		return errors.NameErrorf(ast.Position{}, "superclass %s of %s does not exist", superclass.Fullname(), fullname)
	}

	instTy := types.Raw(fullname)
	if len(typarams) > 0 {
		args := make([]types.TermTy, len(typarams))
		for i, tp := range typarams {
			args[i] = types.TyParamRef(tp.Name, types.ClassTyParam, i)
		}
		instTy = types.Specialized(fullname, args)
	}
	if instanceMethods == nil {
		instanceMethods = methodSigs{}
	}
	d.AddClass(types.SkClass{
		Fullname:   fullname,
		TyParams:   typarams,
		Superclass: superclass,
		HasSuper:   hasSuper,
		InstanceTy: instTy,
		Ivars:      map[string]types.SkIVar{}, // set later when processing `initialize`
		MethodSigs: instanceMethods,
		ConstIsObj: constIsObj,
	})

	metaIvars := map[string]types.SkIVar{}
	if theClass, ok := d.FindClass(names.NewClassFullname("Class")); ok {
		for k, v := range theClass.Ivars {
			metaIvars[k] = v
		}
	}
	d.AddClass(types.SkClass{
		Fullname:   fullname.MetaName(),
		TyParams:   typarams,
		Superclass: types.SimpleSuperclass("Class"),
		HasSuper:   true,
		InstanceTy: types.MetaClass(fullname),
		Ivars:      metaIvars,
		MethodSigs: classMethods,
	})
	return nil
}

// defineIvars sets the ivar table of an already-registered class — the
// step that, for an ordinary class, happens while converting `initialize`
// (internal/hir), and for an enum case happens immediately at index time
// since its ivars are fully determined by its declared parameters.
func (d *ClassDict) defineIvars(fullname names.ClassFullname, ivars map[string]types.SkIVar) {
	c := d.mustGetClass(fullname)
	c.Ivars = ivars
	d.setClass(c)
}

// isValidSuperclass reports whether a superclass reference names either a
// type parameter of the class being defined or an already-registered
// class.
func (d *ClassDict) isValidSuperclass(t types.TermTy, typaramNames []string) bool {
	name := t.BaseFullname().String()
	for _, n := range typaramNames {
		if n == name {
			return true
		}
	}
	if name == "Object" {
		return true
	}
	_, ok := d.FindClass(t.BaseFullname())
	return ok
}

func (d *ClassDict) resolveSuperclass(astSuper *ast.ConstName, typarams []string) (types.Superclass, bool) {
	if astSuper == nil {
		return types.DefaultSuperclass(), true
	}
	base := names.NewClassFullname(joinConstName(astSuper))
	tyargs := make([]types.TermTy, len(astSuper.TypeArgs))
	for i, a := range astSuper.TypeArgs {
		tyargs[i] = convertTyp(a, typarams, nil)
	}
	return types.NewSuperclass(base, tyargs), true
}

func joinConstName(n *ast.ConstName) string {
	s := ""
	for i, p := range n.Names {
		if i > 0 {
			s += "::"
		}
		s += p
	}
	return s
}

// initializerParams extracts the formal parameter list that `.new` and
// `#initialize` must share (spec.md §3.3 invariant 2): the parameters
// declared on this class's own `initialize` method, or none if it
// declares no initializer of its own (it then inherits one).
func (d *ClassDict) initializerParams(typarams []string, defs []ast.Definition) []types.MethodParam {
	for _, def := range defs {
		if m, ok := def.(*ast.InstanceMethodDefinition); ok && m.Sig.Name == "initialize" {
			return convertParams(m.Sig.Params, typarams, m.Sig.Typarams)
		}
	}
	return nil
}

func convertTyp(t ast.Typ, classTyparams, methodTyparams []string) types.TermTy {
	if idx := indexOf(methodTyparams, t.Name); idx >= 0 {
		return types.TyParamRef(t.Name, types.MethodTyParam, idx)
	}
	if idx := indexOf(classTyparams, t.Name); idx >= 0 {
		return types.TyParamRef(t.Name, types.ClassTyParam, idx)
	}
	if len(t.TypeArgs) == 0 {
		return types.RawS(t.Name)
	}
	args := make([]types.TermTy, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = convertTyp(a, classTyparams, methodTyparams)
	}
	return types.Specialized(names.NewClassFullname(t.Name), args)
}

func convertParams(params []ast.Param, classTyparams, methodTyparams []string) []types.MethodParam {
	out := make([]types.MethodParam, len(params))
	for i, p := range params {
		out[i] = types.MethodParam{Name: p.Name, Ty: convertTyp(p.Typ, classTyparams, methodTyparams)}
	}
	return out
}

func indexOf(ss []string, s string) int {
	for i, x := range ss {
		if x == s {
			return i
		}
	}
	return -1
}

// createSignature converts an AST method signature into a resolved
// MethodSignature, owned by owner (the class for instance methods, its
// metaclass for class methods).
func createSignature(owner names.ClassFullname, sig ast.AstMethodSignature, classTyparams []string) types.MethodSignature {
	return types.MethodSignature{
		Fullname: names.NewMethodFullname(owner, names.NewMethodFirstname(sig.Name)),
		RetTy:    convertTyp(sig.RetTyp, classTyparams, sig.Typarams),
		Params:   convertParams(sig.Params, classTyparams, sig.Typarams),
		Typarams: toTyParams(sig.Typarams),
	}
}

func toTyParams(names []string) []types.TyParam {
	out := make([]types.TyParam, len(names))
	for i, n := range names {
		out[i] = types.TyParam{Name: n}
	}
	return out
}

func signatureOfNew(metaFullname names.ClassFullname, params []types.MethodParam, retTy types.TermTy) types.MethodSignature {
	return types.MethodSignature{
		Fullname: names.NewMethodFullname(metaFullname, names.NewMethodFirstname("new")),
		RetTy:    retTy,
		Params:   params,
	}
}

func signatureOfInitialize(fullname names.ClassFullname, params []types.MethodParam) types.MethodSignature {
	return types.MethodSignature{
		Fullname: names.NewMethodFullname(fullname, names.NewMethodFirstname("initialize")),
		RetTy:    types.Void(),
		Params:   params,
	}
}

func returnTypeOfNew(fullname names.ClassFullname, typarams []string) types.TermTy {
	if len(typarams) == 0 {
		return types.Raw(fullname)
	}
	args := make([]types.TermTy, len(typarams))
	for i, n := range typarams {
		args[i] = types.TyParamRef(n, types.ClassTyParam, i)
	}
	return types.Specialized(fullname, args)
}

// enumCaseIvars lists the ivars an enum case's declared parameters
// introduce, in declaration order, all read-only.
func enumCaseIvars(typarams []string, kase ast.EnumCase) []types.SkIVar {
	out := make([]types.SkIVar, len(kase.Params))
	for i, p := range kase.Params {
		out[i] = types.SkIVar{Idx: i, Name: p.Name, Ty: convertTyp(p.Typ, typarams, nil), ReadOnly: true}
	}
	return out
}

// enumCaseSuperclass: a parameterless case is Enum<Never, ...> (it can
// never need its type parameters at a value site); a case with parameters
// is Enum<T1, ..., Tn> so its parameters can mention the enum's own
// type parameters.
func enumCaseSuperclass(enumFullname names.ClassFullname, typarams []string, kase ast.EnumCase) types.Superclass {
	tyargs := make([]types.TermTy, len(typarams))
	if len(kase.Params) == 0 {
		for i := range typarams {
			tyargs[i] = types.Never()
		}
	} else {
		for i, n := range typarams {
			tyargs[i] = types.TyParamRef(n, types.ClassTyParam, i)
		}
	}
	return types.NewSuperclass(enumFullname, tyargs)
}

func enumCaseNewSig(typarams []string, fullname names.ClassFullname, kase ast.EnumCase) (types.MethodSignature, types.MethodSignature) {
	params := convertParams(kase.Params, typarams, nil)
	retTy := types.Raw(fullname)
	if len(kase.Params) > 0 {
		args := make([]types.TermTy, len(typarams))
		for i, n := range typarams {
			args[i] = types.TyParamRef(n, types.ClassTyParam, i)
		}
		retTy = types.Specialized(fullname, args)
	}
	return signatureOfNew(fullname.MetaName(), params, retTy), signatureOfInitialize(fullname, params)
}

// enumCaseGetters auto-generates one no-arg accessor per ivar, named
// after the ivar itself.
func enumCaseGetters(caseFullname names.ClassFullname, ivars []types.SkIVar) methodSigs {
	out := methodSigs{}
	for _, iv := range ivars {
		out[iv.Name] = types.MethodSignature{
			Fullname: names.NewMethodFullname(caseFullname, names.NewMethodFirstname(iv.Name)),
			RetTy:    iv.Ty,
		}
	}
	return out
}
