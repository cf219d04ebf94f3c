package stdlib

import (
	"testing"

	"github.com/cwbudde/classhir/internal/classdict"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/types"
)

func TestParseDescriptorYAML(t *testing.T) {
	data := []byte(`
classes:
  - fullname: Array
    typarams: [T]
    ivars:
      - {name: length, ty: Int, readonly: true}
    methods:
      - {name: at, params: ["idx:Int"], ret_ty: T}
      - {name: new, params: [], ret_ty: "Array<T>", is_class_method: true, body: "opaque"}
imported_constants:
  - {name: "Array::EMPTY", ty: "Array<Object>"}
`)
	d, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() = %v, want nil", err)
	}
	if len(d.Classes) != 1 {
		t.Fatalf("len(Classes) = %d, want 1", len(d.Classes))
	}
	cr := d.Classes[0]
	if cr.Fullname != "Array" || len(cr.Typarams) != 1 || cr.Typarams[0] != "T" {
		t.Errorf("ClassRecord = %+v, unexpected", cr)
	}
	if len(cr.Methods) != 2 {
		t.Fatalf("len(Methods) = %d, want 2", len(cr.Methods))
	}
	if len(d.ImportedConstants) != 1 || d.ImportedConstants[0].Name != "Array::EMPTY" {
		t.Errorf("ImportedConstants = %+v, unexpected", d.ImportedConstants)
	}
}

func TestSeedRegistersClassesAndMethods(t *testing.T) {
	d := &Descriptor{
		Classes: []ClassRecord{
			{
				Fullname: "Array",
				Typarams: []string{"T"},
				Ivars: []IvarRecord{
					{Name: "length", Ty: "Int", ReadOnly: true},
				},
				Methods: []MethodRecord{
					{Name: "at", Params: []string{"idx:Int"}, RetTy: "T"},
					{Name: "new", RetTy: "Array<T>", IsClass: true, Body: "opaque"},
				},
			},
			{
				Fullname:   "String",
				Superclass: "Object",
				Methods: []MethodRecord{
					{Name: "length", RetTy: "Int"},
				},
			},
		},
		ImportedConstants: []ImportedConstantRecord{
			{Name: "PI", Ty: "Float"},
		},
	}

	dict := classdict.New()
	imported, bodies, err := Seed(dict, d)
	if err != nil {
		t.Fatalf("Seed() = %v, want nil", err)
	}

	arrClass, ok := dict.FindClass(names.NewClassFullname("Array"))
	if !ok {
		t.Fatal("Array was not registered")
	}
	lengthIvar, ok := arrClass.Ivars["length"]
	if !ok || !lengthIvar.Ty.EqualsTo(types.RawS("Int")) {
		t.Errorf("Array.length ivar = %+v, want Int", lengthIvar)
	}
	atSig, ok := arrClass.Method("at")
	if !ok {
		t.Fatal("Array#at was not registered")
	}
	if !atSig.RetTy.EqualsTo(types.TyParamRef("T", types.ClassTyParam, 0)) {
		t.Errorf("Array#at RetTy = %v, want T (class typaram ref)", atSig.RetTy)
	}

	arrMeta, ok := dict.FindClass(names.NewClassFullname("Array").MetaName())
	if !ok {
		t.Fatal("Meta:Array was not registered")
	}
	newSig, ok := arrMeta.Method("new")
	if !ok {
		t.Fatal("Meta:Array#new was not registered")
	}
	if !newSig.RetTy.IsSpecialized() {
		t.Errorf("Meta:Array#new RetTy = %v, want Specialized Array<T>", newSig.RetTy)
	}

	strClass, ok := dict.FindClass(names.NewClassFullname("String"))
	if !ok {
		t.Fatal("String was not registered")
	}
	if got, want := strClass.Superclass.Fullname().String(), "Object"; got != want {
		t.Errorf("String superclass = %v, want %v", got, want)
	}

	if ty, ok := imported["PI"]; !ok || !ty.EqualsTo(types.RawS("Float")) {
		t.Errorf("imported[PI] = %v, %v, want Float, true", ty, ok)
	}

	if bodies["Array"]["at"] != "" {
		t.Errorf(`bodies["Array"]["at"] = %q, want "" (no body supplied)`, bodies["Array"]["at"])
	}
	if got, want := bodies["Meta:Array"]["new"], "opaque"; got != want {
		t.Errorf(`bodies["Meta:Array"]["new"] = %q, want %q`, got, want)
	}
}

func TestSeedDefaultsToObjectSuperclassUnlessForeign(t *testing.T) {
	d := &Descriptor{
		Classes: []ClassRecord{
			{Fullname: "Widget"},
			{Fullname: "RawPointer", Foreign: true},
		},
	}
	dict := classdict.New()
	if _, _, err := Seed(dict, d); err != nil {
		t.Fatalf("Seed() = %v, want nil", err)
	}
	widget, _ := dict.FindClass(names.NewClassFullname("Widget"))
	if got, want := widget.Superclass.Fullname().String(), "Object"; got != want {
		t.Errorf("Widget superclass = %v, want %v (defaulted)", got, want)
	}
	raw, _ := dict.FindClass(names.NewClassFullname("RawPointer"))
	if raw.HasSuper {
		t.Error("a Foreign class with no explicit superclass should have HasSuper = false")
	}
}

func TestSeedMalformedParamFails(t *testing.T) {
	d := &Descriptor{
		Classes: []ClassRecord{
			{
				Fullname: "Broken",
				Methods:  []MethodRecord{{Name: "oops", Params: []string{"no-colon-here"}}},
			},
		},
	}
	dict := classdict.New()
	if _, _, err := Seed(dict, d); err == nil {
		t.Error("Seed() = nil, want an error for a malformed param string")
	}
}

func TestParseTyNestedGeneric(t *testing.T) {
	ty := parseTy("Pair<Int, Array<String>>", nil)
	if !ty.IsSpecialized() {
		t.Fatalf("ty = %v, want Specialized", ty)
	}
	args := ty.TyArgs()
	if len(args) != 2 {
		t.Fatalf("len(TyArgs) = %d, want 2", len(args))
	}
	if !args[0].EqualsTo(types.RawS("Int")) {
		t.Errorf("TyArgs[0] = %v, want Int", args[0])
	}
	if !args[1].IsSpecialized() || args[1].Fullname().String() != "Array<String>" {
		t.Errorf("TyArgs[1] = %v, want Array<String>", args[1])
	}
}

func TestParseTyVoidOnEmpty(t *testing.T) {
	if ty := parseTy("", nil); !ty.IsVoidType() {
		t.Errorf("parseTy(\"\") = %v, want Void", ty)
	}
}

func TestSplitParam(t *testing.T) {
	name, ty, ok := splitParam("x:Int")
	if !ok || name != "x" || ty != "Int" {
		t.Errorf("splitParam(x:Int) = %q, %q, %v", name, ty, ok)
	}
	if _, _, ok := splitParam("noColon"); ok {
		t.Error("splitParam(noColon) = ok, want !ok")
	}
}
