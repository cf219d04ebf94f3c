// Package stdlib loads the bundled standard-library descriptor (spec.md
// §6.2 / SPEC_FULL.md §6): the fixed set of classes, method signatures and
// imported constants a program is indexed against before its own source is
// read. The descriptor is authored as YAML and parsed with
// github.com/goccy/go-yaml, the same library already reachable in the
// teacher's dependency graph.
package stdlib

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/classhir/internal/classdict"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/types"
)

// Descriptor is the parsed shape of the bundled stdlib YAML file.
type Descriptor struct {
	Classes           []ClassRecord            `yaml:"classes"`
	ImportedConstants []ImportedConstantRecord `yaml:"imported_constants"`
}

// ClassRecord is one `classes:` entry.
type ClassRecord struct {
	Fullname    string            `yaml:"fullname"`
	Superclass  string            `yaml:"superclass"`
	Typarams    []string          `yaml:"typarams"`
	Ivars       []IvarRecord      `yaml:"ivars"`
	Methods     []MethodRecord    `yaml:"methods"`
	ConstIsObj  bool              `yaml:"const_is_obj"`
	Foreign     bool              `yaml:"foreign"`
}

// IvarRecord is one `ivars:` entry of a ClassRecord.
type IvarRecord struct {
	Name     string `yaml:"name"`
	Ty       string `yaml:"ty"`
	ReadOnly bool   `yaml:"readonly"`
}

// MethodRecord is one `methods:` entry of a ClassRecord: a signature plus
// an opaque body string, carried unexamined since stdlib method bodies
// belong to the backend; Seed returns the bodies in its SkMethods table.
type MethodRecord struct {
	Name    string   `yaml:"name"`
	Params  []string `yaml:"params"` // "name:Ty" pairs
	RetTy   string   `yaml:"ret_ty"`
	IsClass bool     `yaml:"is_class_method"`
	Body    string   `yaml:"body"`
}

// ImportedConstantRecord is one `imported_constants:` entry.
type ImportedConstantRecord struct {
	Name string `yaml:"name"`
	Ty   string `yaml:"ty"`
}

// Load reads and parses a descriptor file from disk.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stdlib: reading descriptor: %w", err)
	}
	return Parse(data)
}

// Parse decodes raw YAML bytes into a Descriptor.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("stdlib: parsing descriptor: %w", err)
	}
	return &d, nil
}

// SkMethods is the opaque, per-class method-body table carried alongside a
// dictionary built from a Descriptor — the front-end only ever indexes
// signatures (§4.7), bodies are handed to a later backend untouched.
type SkMethods map[string]map[string]string // class fullname -> method name -> body

// Seed registers every class, its ivars and method signatures into dict,
// and returns the resolved imported-constants table plus the opaque method
// body table. No HIR type in this module merges that table; the check
// command discards it. Class records are
// expected to list superclasses before subclasses (no forward references),
// matching how a hand-maintained descriptor would normally be authored.
func Seed(dict *classdict.ClassDict, d *Descriptor) (map[string]types.TermTy, SkMethods, error) {
	bodies := SkMethods{}
	for _, cr := range d.Classes {
		fullname := names.NewClassFullname(cr.Fullname)

		typarams := make([]types.TyParam, len(cr.Typarams))
		for i, t := range cr.Typarams {
			typarams[i] = types.TyParam{Name: t}
		}

		var super types.Superclass
		hasSuper := cr.Superclass != ""
		if hasSuper {
			super = types.SimpleSuperclass(cr.Superclass)
		} else if !cr.Foreign && cr.Fullname != "Object" {
			super = types.DefaultSuperclass()
			hasSuper = true
		}

		class := types.NewSkClass(fullname, typarams, super, hasSuper)
		class.ConstIsObj = cr.ConstIsObj
		class.Foreign = cr.Foreign

		ivars := map[string]types.SkIVar{}
		for i, iv := range cr.Ivars {
			ivars[iv.Name] = types.SkIVar{
				Idx:      i,
				Name:     iv.Name,
				Ty:       parseTy(iv.Ty, typarams),
				ReadOnly: iv.ReadOnly,
			}
		}
		class.Ivars = ivars

		classBodies := map[string]string{}
		for _, mr := range cr.Methods {
			sig, err := methodSignature(fullname, mr, typarams)
			if err != nil {
				return nil, nil, err
			}
			if mr.IsClass {
				continue // attached to the metaclass below
			}
			class.MethodSigs[mr.Name] = sig
			classBodies[mr.Name] = mr.Body
		}
		dict.AddClass(class)
		if len(classBodies) > 0 {
			bodies[fullname.String()] = classBodies
		}

		metaSigs := map[string]types.MethodSignature{}
		metaBodies := map[string]string{}
		for _, mr := range cr.Methods {
			if !mr.IsClass {
				continue
			}
			sig, err := methodSignature(class.MetaFullname(), mr, typarams)
			if err != nil {
				return nil, nil, err
			}
			metaSigs[mr.Name] = sig
			metaBodies[mr.Name] = mr.Body
		}
		meta := types.NewSkClass(class.MetaFullname(), nil, types.SimpleSuperclass("Class"), true)
		meta.MethodSigs = metaSigs
		meta.ConstIsObj = true
		dict.AddClass(meta)
		if len(metaBodies) > 0 {
			bodies[class.MetaFullname().String()] = metaBodies
		}
	}

	imported := map[string]types.TermTy{}
	for _, ic := range d.ImportedConstants {
		imported[ic.Name] = parseTy(ic.Ty, nil)
	}
	return imported, bodies, nil
}

func methodSignature(owner names.ClassFullname, mr MethodRecord, classTyparams []types.TyParam) (types.MethodSignature, error) {
	params := make([]types.MethodParam, 0, len(mr.Params))
	for _, p := range mr.Params {
		name, tyStr, ok := splitParam(p)
		if !ok {
			return types.MethodSignature{}, fmt.Errorf("stdlib: malformed param %q on %s#%s", p, owner, mr.Name)
		}
		params = append(params, types.MethodParam{Name: name, Ty: parseTy(tyStr, classTyparams)})
	}
	return types.MethodSignature{
		Fullname: names.NewMethodFullname(owner, names.NewMethodFirstname(mr.Name)),
		RetTy:    parseTy(mr.RetTy, classTyparams),
		Params:   params,
	}, nil
}

func splitParam(p string) (name, ty string, ok bool) {
	for i := 0; i < len(p); i++ {
		if p[i] == ':' {
			return p[:i], p[i+1:], true
		}
	}
	return "", "", false
}

// parseTy resolves a descriptor's textual type reference ("Array<Int>",
// "T") against the class's own type parameters, falling back to a plain
// nominal class reference.
func parseTy(s string, classTyparams []types.TyParam) types.TermTy {
	if s == "" {
		return types.Void()
	}
	name, args, ok := splitGeneric(s)
	if !ok {
		for i, tp := range classTyparams {
			if tp.Name == s {
				return types.TyParamRef(s, types.ClassTyParam, i)
			}
		}
		return types.RawS(s)
	}
	tyArgs := make([]types.TermTy, len(args))
	for i, a := range args {
		tyArgs[i] = parseTy(a, classTyparams)
	}
	return types.Specialized(names.NewClassFullname(name), tyArgs)
}

// splitGeneric parses "Name<Arg1, Arg2>" into ("Name", ["Arg1", "Arg2"], true).
func splitGeneric(s string) (name string, args []string, ok bool) {
	open := -1
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			if depth == 0 {
				open = i
			}
			depth++
		case '>':
			depth--
		}
	}
	if open < 0 || s[len(s)-1] != '>' {
		return s, nil, false
	}
	name = s[:open]
	inner := s[open+1 : len(s)-1]
	args = splitTopLevel(inner)
	return name, args, true
}

func splitTopLevel(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, trimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, trimSpace(s[start:]))
	return out
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && s[i] == ' ' {
		i++
	}
	for j > i && s[j-1] == ' ' {
		j--
	}
	return s[i:j]
}
