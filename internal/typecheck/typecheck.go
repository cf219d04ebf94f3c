// Package typecheck implements the Type-Check Primitives of spec.md §4.4:
// the small set of subtyping and compatibility checks every HIR-lowering
// rule in internal/hir calls into. None of these hold state of their own;
// they are pure functions over a ClassDict and the types at hand.
package typecheck

import (
	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/classdict"
	"github.com/cwbudde/classhir/internal/errors"
	"github.com/cwbudde/classhir/internal/types"
)

// IsSubtypeOf reports whether sub is sub (or equal to) super, accounting
// for generic type arguments: a Specialized type is a subtype of another
// Specialized type of the same base only if every type argument matches
// exactly (this front-end does not support variance).
func IsSubtypeOf(dict *classdict.ClassDict, sub, super types.TermTy) bool {
	if sub.EqualsTo(super) {
		return true
	}
	if super.IsNeverType() {
		return false
	}
	if sub.IsNeverType() {
		return true // Never is a subtype of everything
	}
	cur := sub
	for {
		if cur.BaseFullname().String() == super.BaseFullname().String() {
			return sameTyArgsOrUnparameterized(cur, super)
		}
		c, ok := dict.FindClass(cur.BaseFullname())
		if !ok || !c.HasSuper {
			return false
		}
		cur = substituteSuperclass(c, cur)
	}
}

func sameTyArgsOrUnparameterized(a, b types.TermTy) bool {
	aArgs, bArgs := a.TyArgs(), b.TyArgs()
	if len(aArgs) != len(bArgs) {
		return len(aArgs) == 0 || len(bArgs) == 0
	}
	for i := range aArgs {
		if !aArgs[i].EqualsTo(bArgs[i]) {
			return false
		}
	}
	return true
}

// substituteSuperclass resolves class c's declared superclass, binding
// its own type parameters to the type arguments instantiated at cur.
func substituteSuperclass(c types.SkClass, cur types.TermTy) types.TermTy {
	return c.Superclass.Substitute(cur.TyArgs()).Ty()
}

// NearestCommonAncestor walks both types' ancestor chains and returns the
// first common ancestor type (spec.md §4.4), preserving generic
// arguments by unification where both sides agree, otherwise falling back
// to Object-typed positions. NCA(a, a) = a; NCA(a, b) = NCA(b, a).
func NearestCommonAncestor(dict *classdict.ClassDict, a, b types.TermTy) types.TermTy {
	if a.EqualsTo(b) {
		return a
	}
	if a.IsNeverType() {
		return b
	}
	if b.IsNeverType() {
		return a
	}
	aChain := ancestorChain(dict, a)
	bSet := make(map[string]types.TermTy, len(aChain))
	for _, t := range ancestorChain(dict, b) {
		bSet[t.Fullname().String()] = t
	}
	for _, t := range aChain {
		if other, ok := bSet[t.Fullname().String()]; ok {
			return unify(t, other)
		}
	}
	return types.Object()
}

// unify merges two occurrences of the same base class found on both
// ancestor chains: where their type arguments agree the argument is kept,
// where they disagree the position widens to Object.
func unify(a, b types.TermTy) types.TermTy {
	aArgs, bArgs := a.TyArgs(), b.TyArgs()
	if len(aArgs) == 0 || len(bArgs) == 0 || len(aArgs) != len(bArgs) {
		return a
	}
	args := make([]types.TermTy, len(aArgs))
	for i := range aArgs {
		if aArgs[i].EqualsTo(bArgs[i]) {
			args[i] = aArgs[i]
		} else {
			args[i] = types.Object()
		}
	}
	return types.Specialized(a.BaseFullname(), args)
}

// ancestorChain lists t, its superclass, its superclass's superclass, ...
// up to (and including) Object. Terminates because the chain is finite
// (spec.md §4.4).
func ancestorChain(dict *classdict.ClassDict, t types.TermTy) []types.TermTy {
	chain := []types.TermTy{t}
	cur := t
	for {
		c, ok := dict.FindClass(cur.BaseFullname())
		if !ok || !c.HasSuper {
			return chain
		}
		cur = substituteSuperclass(c, cur)
		chain = append(chain, cur)
	}
}

// IsValidSuperclass reports whether ty names either a declared class or
// one of the current class's own type parameters.
func IsValidSuperclass(dict *classdict.ClassDict, ty types.TermTy, typaramNames []string) bool {
	name := ty.BaseFullname().String()
	if ty.IsTyParamRef() {
		name = ty.TyParamName()
	}
	for _, n := range typaramNames {
		if n == name {
			return true
		}
	}
	_, ok := dict.FindClass(ty.BaseFullname())
	return ok
}

// CheckConditionTy requires t to be exactly Bool — the condition of an
// `if` or `while`.
func CheckConditionTy(t types.TermTy, pos ast.Position) error {
	return requireBool(t, pos, "condition")
}

// CheckLogicalOperatorTy requires t to be exactly Bool — an operand of
// `&&`, `||` or `!`.
func CheckLogicalOperatorTy(t types.TermTy, pos ast.Position) error {
	return requireBool(t, pos, "logical operator operand")
}

func requireBool(t types.TermTy, pos ast.Position, what string) error {
	if t.Fullname().String() != "Bool" {
		return errors.TypeErrorf(pos, "%s must be Bool, found %s", what, t)
	}
	return nil
}

// CheckReassignVar requires exact type equality between a local/ivar's
// declared type and the type of a new assignment: no subtyping is
// permitted on reassignment (spec.md §4.4).
func CheckReassignVar(declared, newTy types.TermTy, name string, pos ast.Position) error {
	if !declared.EqualsTo(newTy) {
		return errors.TypeErrorf(pos, "cannot reassign %s: declared as %s, got %s", name, declared, newTy)
	}
	return nil
}

// CheckReturnArgType requires argTy to be a subtype of sig's declared
// return type.
func CheckReturnArgType(dict *classdict.ClassDict, argTy types.TermTy, sig types.MethodSignature, pos ast.Position) error {
	if !IsSubtypeOf(dict, argTy, sig.RetTy) {
		return errors.TypeErrorf(pos, "method %s must return %s, found %s", sig.Fullname, sig.RetTy, argTy)
	}
	return nil
}

// CheckMethodArgs validates a call's argument list against sig: arity,
// per-position subtyping, and (when sig's last parameter is a function
// type) structural matching of a trailing block argument against it.
func CheckMethodArgs(dict *classdict.ClassDict, sig types.MethodSignature, argTys []types.TermTy, pos ast.Position) error {
	if len(argTys) != len(sig.Params) {
		return errors.ProgramErrorf(pos, "%s: wrong number of arguments (%d for %d)", sig.Fullname, len(argTys), len(sig.Params))
	}
	for i, p := range sig.Params {
		if !IsSubtypeOf(dict, argTys[i], p.Ty) {
			return errors.TypeErrorf(pos, "%s: argument %d (%s) expects %s, found %s", sig.Fullname, i+1, p.Name, p.Ty, argTys[i])
		}
	}
	return nil
}
