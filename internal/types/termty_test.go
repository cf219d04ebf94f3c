package types

import (
	"testing"

	"github.com/cwbudde/classhir/internal/names"
)

func TestRawAndSpecialized(t *testing.T) {
	t.Run("Raw fullname", func(t *testing.T) {
		ty := RawS("Int")
		if ty.String() != "Int" {
			t.Errorf("String() = %v, want Int", ty.String())
		}
		if ty.IsSpecialized() {
			t.Error("Raw should not be specialized")
		}
	})

	t.Run("Specialized with no tyargs degrades to Raw", func(t *testing.T) {
		ty := Specialized(names.NewClassFullname("Array"), nil)
		if ty.IsSpecialized() {
			t.Error("Specialized with no tyargs should degrade to Raw")
		}
	})

	t.Run("Specialized fullname renders brackets", func(t *testing.T) {
		ty := Specialized(names.NewClassFullname("Array"), []TermTy{RawS("Int")})
		if got, want := ty.String(), "Array<Int>"; got != want {
			t.Errorf("String() = %v, want %v", got, want)
		}
		if !ty.IsSpecialized() {
			t.Error("should be specialized")
		}
	})
}

func TestMetaClass(t *testing.T) {
	instTy := RawS("Foo")
	meta := instTy.MetaTy()
	if !meta.IsMetaclass() {
		t.Error("MetaTy() should be a metaclass")
	}
	if got, want := meta.String(), "Meta:Foo"; got != want {
		t.Errorf("String() = %v, want %v", got, want)
	}
	if got := meta.InstanceTy(); !got.EqualsTo(instTy) {
		t.Errorf("InstanceTy() = %v, want %v", got, instTy)
	}
}

func TestVoidAndNever(t *testing.T) {
	if !Void().IsVoidType() {
		t.Error("Void() should be void")
	}
	if !Never().IsNeverType() {
		t.Error("Never() should be never")
	}
	if Void().IsNeverType() || Never().IsVoidType() {
		t.Error("Void and Never must not overlap")
	}
}

func TestFnType(t *testing.T) {
	fn := FnType([]TermTy{RawS("Int"), RawS("String")}, RawS("Bool"))
	ret, ok := fn.FnXInfo()
	if !ok {
		t.Fatal("FnXInfo() ok = false, want true")
	}
	if !ret.EqualsTo(RawS("Bool")) {
		t.Errorf("FnXInfo() ret = %v, want Bool", ret)
	}
	params := fn.ParamTys()
	if len(params) != 2 || !params[0].EqualsTo(RawS("Int")) || !params[1].EqualsTo(RawS("String")) {
		t.Errorf("ParamTys() = %v, want [Int String]", params)
	}
}

func TestTyParamRefSubstitute(t *testing.T) {
	tp := TyParamRef("T", ClassTyParam, 0)
	if !tp.IsTyParamRef() {
		t.Fatal("should be a TyParamRef")
	}
	arrOfT := Specialized(names.NewClassFullname("Array"), []TermTy{tp})

	got := arrOfT.Substitute([]TermTy{RawS("Int")}, nil)
	want := Specialized(names.NewClassFullname("Array"), []TermTy{RawS("Int")})
	if !got.EqualsTo(want) {
		t.Errorf("Substitute() = %v, want %v", got, want)
	}
}

func TestSubstituteUsesSeparateClassAndMethodTyArgs(t *testing.T) {
	classTp := TyParamRef("T", ClassTyParam, 0)
	methodTp := TyParamRef("U", MethodTyParam, 0)

	got := classTp.Substitute([]TermTy{RawS("Int")}, nil)
	if !got.EqualsTo(RawS("Int")) {
		t.Errorf("class typaram substitute = %v, want Int", got)
	}

	got2 := methodTp.Substitute([]TermTy{RawS("Int")}, []TermTy{RawS("String")})
	if !got2.EqualsTo(RawS("String")) {
		t.Errorf("method typaram substitute = %v, want String", got2)
	}
}

func TestEqualsTo(t *testing.T) {
	tests := []struct {
		name string
		a, b TermTy
		want bool
	}{
		{"equal raws", RawS("Int"), RawS("Int"), true},
		{"different raws", RawS("Int"), RawS("String"), false},
		{"equal specialized", Specialized(names.NewClassFullname("Array"), []TermTy{RawS("Int")}), Specialized(names.NewClassFullname("Array"), []TermTy{RawS("Int")}), true},
		{"different tyargs", Specialized(names.NewClassFullname("Array"), []TermTy{RawS("Int")}), Specialized(names.NewClassFullname("Array"), []TermTy{RawS("String")}), false},
		{"raw vs metaclass", RawS("Int"), MetaClass(names.NewClassFullname("Int")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.EqualsTo(tt.b); got != tt.want {
				t.Errorf("EqualsTo() = %v, want %v", got, tt.want)
			}
		})
	}
}
