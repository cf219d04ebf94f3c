package types

import (
	"fmt"
	"sort"

	"github.com/cwbudde/classhir/internal/names"
)

// SkIVar is one instance-variable descriptor: its declaration order
// (Idx), name, declared type, and whether it rejects reassignment outside
// `initialize`.
type SkIVar struct {
	Idx      int
	Name     string
	Ty       TermTy
	ReadOnly bool
}

// SkClass is an indexed class or metaclass (spec.md §3.3). Instances are
// owned by the ClassDictionary for the duration of compilation. After
// indexing, the HIR maker still re-registers a class with the ivars its
// `initialize` declared and adds specialized classes for constants.
type SkClass struct {
	Fullname    names.ClassFullname
	TyParams    []TyParam
	Superclass  Superclass // zero value: this is Object, which has none
	HasSuper    bool
	InstanceTy  TermTy
	Ivars       map[string]SkIVar
	MethodSigs  map[string]MethodSignature // keyed by MethodFirstname.String()
	ConstIsObj  bool
	Foreign     bool
}

// NewSkClass builds an empty SkClass shell for fullname; callers populate
// Ivars/MethodSigs as indexing proceeds.
func NewSkClass(fullname names.ClassFullname, tyParams []TyParam, super Superclass, hasSuper bool) SkClass {
	instTy := Raw(fullname)
	if len(tyParams) > 0 {
		args := make([]TermTy, len(tyParams))
		for i, tp := range tyParams {
			args[i] = TyParamRef(tp.Name, ClassTyParam, i)
		}
		instTy = Specialized(fullname, args)
	}
	return SkClass{
		Fullname:   fullname,
		TyParams:   tyParams,
		Superclass: super,
		HasSuper:   hasSuper,
		InstanceTy: instTy,
		Ivars:      map[string]SkIVar{},
		MethodSigs: map[string]MethodSignature{},
	}
}

// IsMeta reports whether this SkClass is a companion metaclass.
func (c SkClass) IsMeta() bool { return c.Fullname.IsMeta() }

// MetaFullname is the fullname of this class's companion metaclass.
func (c SkClass) MetaFullname() names.ClassFullname { return c.Fullname.MetaName() }

// Method looks up a method signature by its unqualified (firstname) name.
func (c SkClass) Method(firstname string) (MethodSignature, bool) {
	sig, ok := c.MethodSigs[firstname]
	return sig, ok
}

// SortedIvars returns the ivar descriptors in declaration (Idx) order.
func (c SkClass) SortedIvars() []SkIVar {
	out := make([]SkIVar, 0, len(c.Ivars))
	for _, iv := range c.Ivars {
		out = append(out, iv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Idx < out[j].Idx })
	return out
}

// CheckIvarContiguity verifies spec.md §3.3 invariant 3: ivars[i].idx
// values form a contiguous prefix [0..n).
func (c SkClass) CheckIvarContiguity() error {
	sorted := c.SortedIvars()
	for i, iv := range sorted {
		if iv.Idx != i {
			return fmt.Errorf("class %s: ivar %q has idx %d, expected %d (ivars must form a contiguous [0..n) prefix)",
				c.Fullname, iv.Name, iv.Idx, i)
		}
	}
	return nil
}
