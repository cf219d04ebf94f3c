package types

import "github.com/cwbudde/classhir/internal/names"

// Superclass wraps the (possibly generic) TermTy naming a class's parent,
// e.g. the `Pair<S, Array<T>>` in `class Foo<S, T> : Pair<S, Array<T>>`.
// Only Raw and Specialized TermTys are valid superclass carriers.
type Superclass struct {
	ty TermTy
}

// NewSuperclass builds a (possibly generic) Superclass from a base class
// name and type arguments; tyargs may be empty for a non-generic parent.
func NewSuperclass(base names.ClassFullname, tyargs []TermTy) Superclass {
	if len(tyargs) == 0 {
		return Superclass{ty: Raw(base)}
	}
	return Superclass{ty: Specialized(base, tyargs)}
}

// SimpleSuperclass is a shortcut from a plain class name.
func SimpleSuperclass(name string) Superclass {
	return Superclass{ty: RawS(name)}
}

// DefaultSuperclass is the implicit parent of a class with no `: Parent`
// clause: Object.
func DefaultSuperclass() Superclass {
	return SimpleSuperclass("Object")
}

// SuperclassFromResolved builds a Superclass from an already resolved
// ClassFullname plus its type-argument TermTys (which may be TyParamRefs,
// so a reference like `Pair<S, T>` binds S/T). Resolving a parsed
// ConstName into these parts is left to the class/method-dict layer.
func SuperclassFromResolved(fullname names.ClassFullname, tyargs []TermTy) Superclass {
	return NewSuperclass(fullname, tyargs)
}

// Ty returns the superclass's underlying type.
func (s Superclass) Ty() TermTy { return s.ty }

// Fullname returns the superclass's class name (without type arguments).
func (s Superclass) Fullname() names.ClassFullname { return s.ty.name }

// IsZero reports whether this Superclass carrier was never assigned (the
// root Object class has no superclass at all, as distinct from one whose
// superclass is explicitly Object).
func (s Superclass) IsZero() bool { return s.ty.name.IsZero() && !s.ty.IsSpecialized() }

// Substitute produces the concrete superclass of a generic class once its
// own type parameters are bound to tyargs, e.g. instantiating
// `Foo<Int, String>` resolves `Pair<S, Array<T>>` to `Pair<Int, Array<String>>`.
func (s Superclass) Substitute(tyargs []TermTy) Superclass {
	return Superclass{ty: s.ty.Substitute(tyargs, nil)}
}
