// Package classdict implements the Class Dictionary / Indexer (spec.md
// §4.1): the two-pass algorithm that turns a parsed program into a table
// of SkClasses, ready for the HIR Maker to resolve names and types
// against. The algorithm is grounded directly on the real compiler this
// front-end's vocabulary was distilled from; see DESIGN.md.
package classdict

import (
	"fmt"

	"github.com/maruel/natural"

	"github.com/cwbudde/classhir/internal/errors"
	"github.com/cwbudde/classhir/internal/names"
	"github.com/cwbudde/classhir/internal/types"
)

// ClassDict owns every indexed SkClass for the duration of compilation
// (spec.md §3.7). It is not safe for concurrent use.
type ClassDict struct {
	classes map[string]types.SkClass
}

// New builds an empty ClassDict. Callers typically seed it with the
// standard library's classes (internal/stdlib) before indexing a program.
func New() *ClassDict {
	return &ClassDict{classes: map[string]types.SkClass{}}
}

// AddClass registers (or overwrites) a class by its own fullname.
func (d *ClassDict) AddClass(c types.SkClass) {
	d.classes[c.Fullname.String()] = c
}

// AddMethod inserts sig into clsname's method_sigs, keyed by the method's
// own firstname. Used for auto-defined accessors and specialized-metaclass
// registration. Panics (a Bug) if clsname was never indexed.
func (d *ClassDict) AddMethod(clsname names.ClassFullname, sig types.MethodSignature) {
	c, ok := d.classes[clsname.String()]
	if !ok {
		errors.Bugf("classdict: AddMethod: class %s not indexed", clsname)
	}
	c.MethodSigs[sig.Fullname.FirstName.String()] = sig
	d.classes[clsname.String()] = c
}

// FindClass looks up a class by its fullname.
func (d *ClassDict) FindClass(fullname names.ClassFullname) (types.SkClass, bool) {
	c, ok := d.classes[fullname.String()]
	return c, ok
}

// mustGetClass looks up a class that indexing itself just registered;
// absence is an internal-consistency failure, not a user-facing error.
func (d *ClassDict) mustGetClass(fullname names.ClassFullname) types.SkClass {
	c, ok := d.classes[fullname.String()]
	if !ok {
		errors.Bugf("classdict: class %s not indexed", fullname)
	}
	return c
}

func (d *ClassDict) setClass(c types.SkClass) { d.classes[c.Fullname.String()] = c }

// FindMethod resolves a method by walking the class's ancestor chain
// (self, then superclass, then its superclass, ...), stopping at the
// first class that defines firstname.
func (d *ClassDict) FindMethod(fullname names.ClassFullname, firstname string) (types.MethodSignature, names.ClassFullname, bool) {
	cur := fullname
	for {
		c, ok := d.classes[cur.String()]
		if !ok {
			return types.MethodSignature{}, names.ClassFullname{}, false
		}
		if sig, ok := c.Method(firstname); ok {
			return sig, cur, true
		}
		if !c.HasSuper {
			return types.MethodSignature{}, names.ClassFullname{}, false
		}
		cur = c.Superclass.Fullname()
	}
}

// IsDescendantOf reports whether fullname is sub (or equal to) ancestor,
// walking the superclass chain — the same shape as the teacher's
// ClassRegistry.IsDescendantOf.
func (d *ClassDict) IsDescendantOf(fullname, ancestor names.ClassFullname) bool {
	cur := fullname
	for {
		if cur.String() == ancestor.String() {
			return true
		}
		c, ok := d.classes[cur.String()]
		if !ok || !c.HasSuper {
			return false
		}
		cur = c.Superclass.Fullname()
	}
}

// ClassNames returns every registered class's fullname, in natural
// ("human") sort order, for deterministic reporting (e.g. `classhir dump`)
// — so Array2 sorts before Array10.
func (d *ClassDict) ClassNames() []string {
	out := make([]string, 0, len(d.classes))
	for k := range d.classes {
		out = append(out, k)
	}
	natural.Sort(out)
	return out
}

// Count is the number of registered classes (instance classes and their
// metaclasses both count).
func (d *ClassDict) Count() int { return len(d.classes) }

// Validate checks every registered non-meta class for a companion
// metaclass, a `new` on that metaclass (own or inherited), and contiguous
// ivar indices, and returns the first violation found as a plain error.
func (d *ClassDict) Validate() error {
	for _, name := range d.ClassNames() {
		c := d.classes[name]
		if c.IsMeta() {
			continue
		}
		meta, ok := d.FindClass(c.MetaFullname())
		if !ok {
			return fmt.Errorf("class %s has no companion metaclass %s", c.Fullname, c.MetaFullname())
		}
		if _, hasNew := meta.Method("new"); !hasNew {
			if _, _, ok := d.FindMethod(meta.Fullname, "new"); !ok {
				return fmt.Errorf("metaclass %s has neither its own `new` nor an inherited one", meta.Fullname)
			}
		}
		if err := c.CheckIvarContiguity(); err != nil {
			return err
		}
	}
	return nil
}
