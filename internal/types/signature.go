package types

import "github.com/cwbudde/classhir/internal/names"

// MethodParam is one formal parameter of a MethodSignature.
type MethodParam struct {
	Name string
	Ty   TermTy
}

// MethodSignature is a method's fully resolved shape (spec.md §3.5). For
// `new`, Params mirrors the class's `initialize` and RetTy is the instance
// type, specialized by the class's own type parameters where generic.
type MethodSignature struct {
	Fullname names.MethodFullname
	RetTy    TermTy
	Params   []MethodParam
	Typarams []TyParam
}

// Arity is the number of formal parameters.
func (s MethodSignature) Arity() int { return len(s.Params) }

// Substitute specializes a signature's return type and parameter types
// against a receiver's class type arguments and (if this call itself
// supplies explicit generic arguments) method type arguments.
func (s MethodSignature) Substitute(classTyArgs, methodTyArgs []TermTy) MethodSignature {
	out := MethodSignature{Fullname: s.Fullname, RetTy: s.RetTy.Substitute(classTyArgs, methodTyArgs), Typarams: s.Typarams}
	out.Params = make([]MethodParam, len(s.Params))
	for i, p := range s.Params {
		out.Params[i] = MethodParam{Name: p.Name, Ty: p.Ty.Substitute(classTyArgs, methodTyArgs)}
	}
	return out
}

// ParamTypesEqual reports whether two signatures declare the same
// parameter list (names ignored, types compared structurally) — the
// comparison behind the `new`/`initialize` parity invariant (spec.md §3.3
// invariant 2). ClassDict.Validate does not call it.
func ParamTypesEqual(a, b []MethodParam) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Ty.EqualsTo(b[i].Ty) {
			return false
		}
	}
	return true
}
