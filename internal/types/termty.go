// Package types implements the Type Model (spec.md §3.2–3.5): TermTy,
// type parameters, superclass carriers and method signatures.
package types

import (
	"fmt"
	"strings"

	"github.com/cwbudde/classhir/internal/names"
)

// TyParamKind distinguishes a type parameter introduced by a class from
// one introduced by a method.
type TyParamKind int

const (
	ClassTyParam TyParamKind = iota
	MethodTyParam
)

func (k TyParamKind) String() string {
	if k == MethodTyParam {
		return "method"
	}
	return "class"
}

// TyParam is a formal type-parameter placeholder declared by a class or
// method (spec.md GLOSSARY).
type TyParam struct {
	Name string
}

// kind discriminates which TermTy variant is populated.
type kind int

const (
	kindRaw kind = iota
	kindSpecialized
	kindTyParamRef
	kindMetaClass
)

// TermTy is a tagged variant over the four type forms of spec.md §3.2:
// Raw, Specialized, TyParamRef and MetaClass. Pattern-match via the Is*
// predicates and the accessors below rather than inspecting kind directly.
type TermTy struct {
	kind kind

	// Raw / Specialized / MetaClass: the named class (for MetaClass, the
	// *instance*'s class fullname — Fullname() adds the Meta: prefix).
	name names.ClassFullname

	// Specialized only.
	tyArgs []TermTy

	// TyParamRef only.
	tyParamName string
	tyParamKind TyParamKind
	tyParamIdx  int
}

// Raw builds a non-generic nominal type.
func Raw(name names.ClassFullname) TermTy {
	return TermTy{kind: kindRaw, name: name}
}

// RawS is a convenience constructor from a plain string class name.
func RawS(name string) TermTy {
	return Raw(names.NewClassFullname(name))
}

// Specialized builds a generic instantiation, e.g. Array<Int>.
func Specialized(name names.ClassFullname, tyArgs []TermTy) TermTy {
	if len(tyArgs) == 0 {
		return Raw(name)
	}
	return TermTy{kind: kindSpecialized, name: name, tyArgs: append([]TermTy{}, tyArgs...)}
}

// TyParamRef builds a reference to a class or method type parameter.
func TyParamRef(name string, k TyParamKind, idx int) TermTy {
	return TermTy{kind: kindTyParamRef, tyParamName: name, tyParamKind: k, tyParamIdx: idx}
}

// MetaClass builds the type of a class object (the "type of C" where C is
// an instance type's fullname).
func MetaClass(instanceName names.ClassFullname) TermTy {
	return TermTy{kind: kindMetaClass, name: instanceName}
}

// Void and Never are the two builtin sentinel types spec.md names
// throughout the control-flow rules.
func Void() TermTy  { return RawS("Void") }
func Never() TermTy { return RawS("Never") }
func Bool() TermTy  { return RawS("Bool") }
func Object() TermTy { return RawS("Object") }

// Fullname returns the type's nominal name: for Raw/Specialized, the class
// name (with bracketed type args for Specialized); for MetaClass, the
// Meta:-prefixed name; for TyParamRef, a synthetic display name.
func (t TermTy) Fullname() names.ClassFullname {
	switch t.kind {
	case kindRaw:
		return t.name
	case kindSpecialized:
		parts := make([]string, len(t.tyArgs))
		for i, a := range t.tyArgs {
			parts[i] = a.Fullname().String()
		}
		return names.NewClassFullname(fmt.Sprintf("%s<%s>", t.name.String(), strings.Join(parts, ", ")))
	case kindMetaClass:
		return t.name.MetaName()
	case kindTyParamRef:
		return names.NewClassFullname(fmt.Sprintf("%%typaram(%s:%s:%d)", t.tyParamKind, t.tyParamName, t.tyParamIdx))
	}
	return names.ClassFullname{}
}

func (t TermTy) String() string { return t.Fullname().String() }

// BaseFullname returns the class-dictionary lookup key for this type: the
// bare, unbracketed class name a Raw or Specialized type was built from
// (e.g. "Array" for both Array and Array<Int>), or the Meta:-prefixed
// instance name for a MetaClass. Unlike Fullname, which brackets a
// Specialized type's type arguments for display (e.g. "Array<Int>"),
// BaseFullname is what classdict.ClassDict registers and looks classes up
// by — every site that calls d.FindClass/d.FindMethod on a TermTy must use
// this accessor, not Fullname.
func (t TermTy) BaseFullname() names.ClassFullname {
	switch t.kind {
	case kindRaw, kindSpecialized:
		return t.name
	case kindMetaClass:
		return t.name.MetaName()
	}
	return names.ClassFullname{}
}

// IsSpecialized reports whether t is a generic instantiation.
func (t TermTy) IsSpecialized() bool { return t.kind == kindSpecialized }

// IsMetaclass reports whether t is the type of a class object.
func (t TermTy) IsMetaclass() bool { return t.kind == kindMetaClass }

// IsTyParamRef reports whether t refers to a type parameter.
func (t TermTy) IsTyParamRef() bool { return t.kind == kindTyParamRef }

// IsVoidType reports whether t is exactly Void.
func (t TermTy) IsVoidType() bool {
	return t.kind == kindRaw && t.name.String() == "Void"
}

// IsNeverType reports whether t is exactly Never, the bottom type
// inhabited by no values (spec.md GLOSSARY).
func (t TermTy) IsNeverType() bool {
	return t.kind == kindRaw && t.name.String() == "Never"
}

// TyArgs returns the type arguments of a Specialized type (nil otherwise).
func (t TermTy) TyArgs() []TermTy {
	if t.kind != kindSpecialized {
		return nil
	}
	out := make([]TermTy, len(t.tyArgs))
	copy(out, t.tyArgs)
	return out
}

// TyParamName, TyParamKindOf and TyParamIndex are only meaningful when
// IsTyParamRef is true.
func (t TermTy) TyParamName() string       { return t.tyParamName }
func (t TermTy) TyParamKindOf() TyParamKind { return t.tyParamKind }
func (t TermTy) TyParamIndex() int         { return t.tyParamIdx }

// InstanceTy strips a "Meta:" prefix, returning the instance type this
// metaclass is the class-of. A no-op on a non-metaclass type.
func (t TermTy) InstanceTy() TermTy {
	if t.kind != kindMetaClass {
		return t
	}
	return Raw(t.name)
}

// MetaTy returns the type of the class object for this instance type.
func (t TermTy) MetaTy() TermTy {
	if t.kind == kindMetaClass {
		return t
	}
	return MetaClass(t.name)
}

// FnXInfo returns the return-type component of a `FnN<...>` type, i.e. the
// last type argument, plus ok=true if t is such a function type.
func (t TermTy) FnXInfo() (ret TermTy, ok bool) {
	if t.kind != kindSpecialized && t.kind != kindRaw {
		return TermTy{}, false
	}
	if !strings.HasPrefix(t.name.String(), "Fn") {
		return TermTy{}, false
	}
	if t.kind == kindRaw {
		// Fn0<Void> with no params still carries at least the return type
		// as a type argument in practice; a bare Raw "Fn0" has none.
		return TermTy{}, false
	}
	if len(t.tyArgs) == 0 {
		return TermTy{}, false
	}
	return t.tyArgs[len(t.tyArgs)-1], true
}

// ParamTys returns the parameter-type components of a `FnN<...>` type (all
// type arguments but the last, which is the return type).
func (t TermTy) ParamTys() []TermTy {
	if t.kind != kindSpecialized || len(t.tyArgs) == 0 {
		return nil
	}
	return append([]TermTy{}, t.tyArgs[:len(t.tyArgs)-1]...)
}

// FnType builds a `FnN<param1, ..., paramN, ret>` type.
func FnType(params []TermTy, ret TermTy) TermTy {
	args := append(append([]TermTy{}, params...), ret)
	return Specialized(names.NewClassFullname(fmt.Sprintf("Fn%d", len(params))), args)
}

// EqualsTo reports structural equality between two TermTys.
func (t TermTy) EqualsTo(other TermTy) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case kindRaw:
		return t.name == other.name
	case kindMetaClass:
		return t.name == other.name
	case kindTyParamRef:
		return t.tyParamName == other.tyParamName && t.tyParamKind == other.tyParamKind && t.tyParamIdx == other.tyParamIdx
	case kindSpecialized:
		if t.name != other.name || len(t.tyArgs) != len(other.tyArgs) {
			return false
		}
		for i := range t.tyArgs {
			if !t.tyArgs[i].EqualsTo(other.tyArgs[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Substitute replaces TyParamRef occurrences with concrete types: class
// type parameters are replaced from classTyArgs (indexed by TyParamIndex),
// method type parameters from methodTyArgs.
func (t TermTy) Substitute(classTyArgs, methodTyArgs []TermTy) TermTy {
	switch t.kind {
	case kindTyParamRef:
		var src []TermTy
		if t.tyParamKind == MethodTyParam {
			src = methodTyArgs
		} else {
			src = classTyArgs
		}
		if t.tyParamIdx >= 0 && t.tyParamIdx < len(src) {
			return src[t.tyParamIdx]
		}
		return t
	case kindSpecialized:
		args := make([]TermTy, len(t.tyArgs))
		for i, a := range t.tyArgs {
			args[i] = a.Substitute(classTyArgs, methodTyArgs)
		}
		return Specialized(t.name, args)
	default:
		return t
	}
}
