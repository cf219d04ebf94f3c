package typecheck

import (
	"testing"

	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/classdict"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/types"
)

// buildZoo builds Object <- Animal <- {Dog, Cat}, plus a generic
// Box<T> : Object, for use across this package's tests.
func buildZoo(t *testing.T) *classdict.ClassDict {
	t.Helper()
	dict := classdict.New()
	dict.AddClass(types.NewSkClass(names.NewClassFullname("Object"), nil, types.Superclass{}, false))
	dict.AddClass(types.NewSkClass(names.NewClassFullname("Animal"), nil, types.DefaultSuperclass(), true))
	dict.AddClass(types.NewSkClass(names.NewClassFullname("Dog"), nil, types.SimpleSuperclass("Animal"), true))
	dict.AddClass(types.NewSkClass(names.NewClassFullname("Cat"), nil, types.SimpleSuperclass("Animal"), true))
	dict.AddClass(types.NewSkClass(names.NewClassFullname("Box"), []types.TyParam{{Name: "T"}}, types.DefaultSuperclass(), true))
	return dict
}

func TestIsSubtypeOf(t *testing.T) {
	dict := buildZoo(t)
	tests := []struct {
		name       string
		sub, super types.TermTy
		want       bool
	}{
		{"equal types", types.RawS("Dog"), types.RawS("Dog"), true},
		{"direct parent", types.RawS("Dog"), types.RawS("Animal"), true},
		{"transitive to Object", types.RawS("Dog"), types.RawS("Object"), true},
		{"siblings are not related", types.RawS("Dog"), types.RawS("Cat"), false},
		{"never is a subtype of everything", types.Never(), types.RawS("Dog"), true},
		{"nothing is a subtype of never", types.RawS("Dog"), types.Never(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubtypeOf(dict, tt.sub, tt.super); got != tt.want {
				t.Errorf("IsSubtypeOf(%v, %v) = %v, want %v", tt.sub, tt.super, got, tt.want)
			}
		})
	}
}

func TestNearestCommonAncestor(t *testing.T) {
	dict := buildZoo(t)

	t.Run("same type", func(t *testing.T) {
		got := NearestCommonAncestor(dict, types.RawS("Dog"), types.RawS("Dog"))
		if !got.EqualsTo(types.RawS("Dog")) {
			t.Errorf("NCA(Dog, Dog) = %v, want Dog", got)
		}
	})

	t.Run("siblings share Animal", func(t *testing.T) {
		got := NearestCommonAncestor(dict, types.RawS("Dog"), types.RawS("Cat"))
		if !got.EqualsTo(types.RawS("Animal")) {
			t.Errorf("NCA(Dog, Cat) = %v, want Animal", got)
		}
	})

	t.Run("never yields the other side", func(t *testing.T) {
		got := NearestCommonAncestor(dict, types.Never(), types.RawS("Dog"))
		if !got.EqualsTo(types.RawS("Dog")) {
			t.Errorf("NCA(Never, Dog) = %v, want Dog", got)
		}
	})

	t.Run("unrelated types widen to Object", func(t *testing.T) {
		dict2 := buildZoo(t)
		dict2.AddClass(types.NewSkClass(names.NewClassFullname("Rock"), nil, types.DefaultSuperclass(), true))
		got := NearestCommonAncestor(dict2, types.RawS("Dog"), types.RawS("Rock"))
		if !got.EqualsTo(types.RawS("Object")) {
			t.Errorf("NCA(Dog, Rock) = %v, want Object", got)
		}
	})
}

func TestIsValidSuperclass(t *testing.T) {
	dict := buildZoo(t)
	if !IsValidSuperclass(dict, types.RawS("Animal"), nil) {
		t.Error("Animal should be a valid superclass")
	}
	if IsValidSuperclass(dict, types.RawS("Nonexistent"), nil) {
		t.Error("an unindexed class should not be a valid superclass")
	}
	if !IsValidSuperclass(dict, types.TyParamRef("T", types.ClassTyParam, 0), []string{"T"}) {
		t.Error("a class's own type parameter should be a valid superclass")
	}
}

func TestCheckConditionTyAndLogicalOperatorTy(t *testing.T) {
	pos := ast.Position{}
	if err := CheckConditionTy(types.Bool(), pos); err != nil {
		t.Errorf("CheckConditionTy(Bool) = %v, want nil", err)
	}
	if err := CheckConditionTy(types.RawS("Int"), pos); err == nil {
		t.Error("CheckConditionTy(Int) = nil, want an error")
	}
	if err := CheckLogicalOperatorTy(types.RawS("Int"), pos); err == nil {
		t.Error("CheckLogicalOperatorTy(Int) = nil, want an error")
	}
}

func TestCheckReassignVar(t *testing.T) {
	pos := ast.Position{}
	if err := CheckReassignVar(types.RawS("Int"), types.RawS("Int"), "x", pos); err != nil {
		t.Errorf("same type reassign = %v, want nil", err)
	}
	// Even a subtype relationship is rejected: reassignment requires exact
	// equality (spec.md §4.4), unlike argument passing or returns.
	dict := buildZoo(t)
	_ = dict
	if err := CheckReassignVar(types.RawS("Animal"), types.RawS("Dog"), "x", pos); err == nil {
		t.Error("reassigning a narrower type should fail even though Dog <: Animal")
	}
}

func TestCheckMethodArgs(t *testing.T) {
	dict := buildZoo(t)
	pos := ast.Position{}
	sig := types.MethodSignature{
		Params: []types.MethodParam{{Name: "a", Ty: types.RawS("Animal")}},
	}

	if err := CheckMethodArgs(dict, sig, []types.TermTy{types.RawS("Dog")}, pos); err != nil {
		t.Errorf("subtype argument should be accepted: %v", err)
	}
	if err := CheckMethodArgs(dict, sig, []types.TermTy{types.RawS("Cat"), types.RawS("Dog")}, pos); err == nil {
		t.Error("wrong arity should fail")
	}
	if err := CheckMethodArgs(dict, sig, []types.TermTy{types.RawS("Object")}, pos); err == nil {
		t.Error("supertype argument should be rejected")
	}
}
