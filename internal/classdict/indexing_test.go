package classdict

import (
	"testing"

	"github.com/cwbudde/classhir/internal/ast"
	"github.com/cwbudde/classhir/internal/names"
)

func typ(name string) ast.Typ { return ast.Typ{Name: name} }

func param(name, ty string) ast.Param { return ast.Param{Name: name, Typ: typ(ty)} }

// pointProgram builds a minimal `class Point { initialize(x: Int, y: Int) {}
// def getX: Int { ... } }` AST fixture.
func pointProgram() *ast.Program {
	return &ast.Program{
		ToplevelDefs: []ast.Definition{
			&ast.ClassDefinition{
				Name: "Point",
				Defs: []ast.Definition{
					&ast.InstanceMethodDefinition{
						Sig: ast.AstMethodSignature{
							Name:   "initialize",
							Params: []ast.Param{param("x", "Int"), param("y", "Int")},
							RetTyp: typ("Void"),
						},
					},
					&ast.InstanceMethodDefinition{
						Sig: ast.AstMethodSignature{
							Name:   "getX",
							RetTyp: typ("Int"),
						},
					},
				},
			},
		},
	}
}

func TestIndexProgramBasicClass(t *testing.T) {
	d := New()
	if err := d.IndexProgram(pointProgram()); err != nil {
		t.Fatalf("IndexProgram() = %v, want nil", err)
	}

	c, ok := d.FindClass(names.NewClassFullname("Point"))
	if !ok {
		t.Fatal("Point was not indexed")
	}
	if got, want := c.Superclass.Fullname().String(), "Object"; got != want {
		t.Errorf("Point superclass = %v, want %v", got, want)
	}

	meta, ok := d.FindClass(names.NewClassFullname("Meta:Point"))
	if !ok {
		t.Fatal("Meta:Point was not indexed")
	}
	newSig, ok := meta.Method("new")
	if !ok {
		t.Fatal("Meta:Point has no `new`")
	}
	if got, want := newSig.Arity(), 2; got != want {
		t.Errorf("new arity = %d, want %d (mirroring initialize)", got, want)
	}

	if _, ok := c.Method("getX"); !ok {
		t.Error("Point#getX was not indexed")
	}
}

func TestIndexProgramNestedClass(t *testing.T) {
	prog := &ast.Program{
		ToplevelDefs: []ast.Definition{
			&ast.ClassDefinition{
				Name: "Outer",
				Defs: []ast.Definition{
					&ast.ClassDefinition{Name: "Inner"},
				},
			},
		},
	}
	d := New()
	if err := d.IndexProgram(prog); err != nil {
		t.Fatalf("IndexProgram() = %v, want nil", err)
	}
	if _, ok := d.FindClass(names.NewClassFullname("Outer::Inner")); !ok {
		t.Error("Outer::Inner was not indexed under the joined namespace")
	}
}

func TestIndexProgramUnknownSuperclassFails(t *testing.T) {
	prog := &ast.Program{
		ToplevelDefs: []ast.Definition{
			&ast.ClassDefinition{
				Name:       "Oops",
				Superclass: &ast.ConstName{Names: []string{"Nonexistent"}},
			},
		},
	}
	d := New()
	if err := d.IndexProgram(prog); err == nil {
		t.Error("IndexProgram() = nil, want an error for an unresolvable superclass")
	}
}

func TestIndexEnumCases(t *testing.T) {
	prog := &ast.Program{
		ToplevelDefs: []ast.Definition{
			&ast.EnumDefinition{
				Name: "Opt",
				Typarams: []string{"T"},
				Cases: []ast.EnumCase{
					{Name: "None"},
					{Name: "Some", Params: []ast.Param{param("value", "T")}},
				},
			},
		},
	}
	d := New()
	if err := d.IndexProgram(prog); err != nil {
		t.Fatalf("IndexProgram() = %v, want nil", err)
	}

	none, ok := d.FindClass(names.NewClassFullname("Opt::None"))
	if !ok {
		t.Fatal("Opt::None was not indexed")
	}
	if !none.Superclass.Ty().IsSpecialized() {
		t.Fatal("Opt::None's superclass should be Specialized (Enum<Never>)")
	}
	if got := none.Superclass.Ty().TyArgs()[0]; !got.IsNeverType() {
		t.Errorf("Opt::None's Enum tyarg = %v, want Never", got)
	}

	some, ok := d.FindClass(names.NewClassFullname("Opt::Some"))
	if !ok {
		t.Fatal("Opt::Some was not indexed")
	}
	if _, ok := some.Ivars["value"]; !ok {
		t.Error("Opt::Some should have a `value` ivar from its case parameter")
	}
	if _, ok := some.Method("value"); !ok {
		t.Error("Opt::Some should have an auto-generated `value` getter")
	}
}

func TestValidate(t *testing.T) {
	d := New()
	if err := d.IndexProgram(pointProgram()); err != nil {
		t.Fatalf("IndexProgram() = %v, want nil", err)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestFindMethodWalksAncestorChain(t *testing.T) {
	prog := &ast.Program{
		ToplevelDefs: []ast.Definition{
			&ast.ClassDefinition{
				Name: "Base",
				Defs: []ast.Definition{
					&ast.InstanceMethodDefinition{Sig: ast.AstMethodSignature{Name: "greet", RetTyp: typ("Void")}},
				},
			},
			&ast.ClassDefinition{
				Name:       "Derived",
				Superclass: &ast.ConstName{Names: []string{"Base"}},
			},
		},
	}
	d := New()
	if err := d.IndexProgram(prog); err != nil {
		t.Fatalf("IndexProgram() = %v, want nil", err)
	}
	sig, definingClass, ok := d.FindMethod(names.NewClassFullname("Derived"), "greet")
	if !ok {
		t.Fatal("FindMethod() did not find an inherited method")
	}
	if got, want := definingClass.String(), "Base"; got != want {
		t.Errorf("definingClass = %v, want %v", got, want)
	}
	_ = sig
}
