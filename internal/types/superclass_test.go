package types

import (
	"testing"

	"github.com/cwbudde/classhir/internal/names"
)

func TestDefaultSuperclassIsObject(t *testing.T) {
	s := DefaultSuperclass()
	if got, want := s.Fullname().String(), "Object"; got != want {
		t.Errorf("Fullname() = %v, want %v", got, want)
	}
	if s.IsZero() {
		t.Error("DefaultSuperclass() should not be IsZero (it is explicitly Object)")
	}
}

func TestSuperclassSubstitute(t *testing.T) {
	// class Foo<S, T> : Pair<S, Array<T>>
	s := NewSuperclass(names.NewClassFullname("Pair"), []TermTy{
		TyParamRef("S", ClassTyParam, 0),
		Specialized(names.NewClassFullname("Array"), []TermTy{TyParamRef("T", ClassTyParam, 1)}),
	})

	concrete := s.Substitute([]TermTy{RawS("Int"), RawS("String")})
	want := Specialized(names.NewClassFullname("Pair"), []TermTy{
		RawS("Int"),
		Specialized(names.NewClassFullname("Array"), []TermTy{RawS("String")}),
	})
	if !concrete.Ty().EqualsTo(want) {
		t.Errorf("Substitute() = %v, want %v", concrete.Ty(), want)
	}
}

func TestZeroSuperclassIsZero(t *testing.T) {
	var s Superclass
	if !s.IsZero() {
		t.Error("zero-value Superclass should report IsZero, as Object's absent parent")
	}
}
