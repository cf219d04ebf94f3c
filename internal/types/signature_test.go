package types

import (
	"testing"

	"github.com/cwbudde/classhir/internal/names"
)

func TestSignatureSubstitute(t *testing.T) {
	owner := names.NewClassFullname("Box")
	sig := MethodSignature{
		Fullname: names.NewMethodFullname(owner, names.NewMethodFirstname("get")),
		RetTy:    TyParamRef("T", ClassTyParam, 0),
		Params:   []MethodParam{{Name: "x", Ty: TyParamRef("T", ClassTyParam, 0)}},
	}

	got := sig.Substitute([]TermTy{RawS("Int")}, nil)
	if !got.RetTy.EqualsTo(RawS("Int")) {
		t.Errorf("RetTy = %v, want Int", got.RetTy)
	}
	if !got.Params[0].Ty.EqualsTo(RawS("Int")) {
		t.Errorf("Params[0].Ty = %v, want Int", got.Params[0].Ty)
	}
	if got.Fullname != sig.Fullname {
		t.Errorf("Fullname changed by Substitute: got %v, want %v", got.Fullname, sig.Fullname)
	}
}

func TestArity(t *testing.T) {
	sig := MethodSignature{Params: []MethodParam{{Name: "a"}, {Name: "b"}}}
	if got, want := sig.Arity(), 2; got != want {
		t.Errorf("Arity() = %d, want %d", got, want)
	}
}

func TestParamTypesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []MethodParam
		want bool
	}{
		{"equal types, different names", []MethodParam{{Name: "a", Ty: RawS("Int")}}, []MethodParam{{Name: "b", Ty: RawS("Int")}}, true},
		{"different types", []MethodParam{{Name: "a", Ty: RawS("Int")}}, []MethodParam{{Name: "a", Ty: RawS("String")}}, false},
		{"different lengths", []MethodParam{{Name: "a", Ty: RawS("Int")}}, nil, false},
		{"both empty", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParamTypesEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("ParamTypesEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}
