// Package names implements the Name & Type Vocabulary (spec.md §3.1,
// component A): first-names, full-names, namespaces and resolved constant
// names. Each kind is a distinct wrapper type over string, not an alias, so
// the compiler rejects passing (say) a MethodFirstname where a
// ClassFullname is expected.
package names

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// metaPrefix names the companion metaclass of a class, per spec.md §3.1.
const metaPrefix = "Meta:"

// normalize brings an identifier to NFC so that two upstream parsers
// emitting the same name in different Unicode normalization forms compare
// equal once wrapped as a name.
func normalize(s string) string {
	return norm.NFC.String(s)
}

// ClassFirstname is an unqualified class name, e.g. "List".
type ClassFirstname struct{ s string }

func NewClassFirstname(s string) ClassFirstname { return ClassFirstname{normalize(s)} }
func (n ClassFirstname) String() string         { return n.s }
func (n ClassFirstname) IsZero() bool            { return n.s == "" }

// ToClassFullname treats the firstname as already fully qualified (root
// namespace).
func (n ClassFirstname) ToClassFullname() ClassFullname {
	return ClassFullname{n.s}
}

// ClassFullname is a dotted/colon-joined qualified class name, e.g.
// "Foo::Bar". Its "Meta:"-prefixed form names the companion metaclass.
type ClassFullname struct{ s string }

func NewClassFullname(s string) ClassFullname { return ClassFullname{normalize(s)} }
func (n ClassFullname) String() string        { return n.s }
func (n ClassFullname) IsZero() bool           { return n.s == "" }

// MetaName returns the fullname of this class's companion metaclass.
func (n ClassFullname) MetaName() ClassFullname {
	if n.IsMeta() {
		return n
	}
	return ClassFullname{metaPrefix + n.s}
}

// IsMeta reports whether this fullname already names a metaclass.
func (n ClassFullname) IsMeta() bool {
	return strings.HasPrefix(n.s, metaPrefix)
}

// InstanceName strips the "Meta:" prefix, returning the fullname of the
// class this metaclass is the class-of. A no-op on non-metaclass names.
func (n ClassFullname) InstanceName() ClassFullname {
	if !n.IsMeta() {
		return n
	}
	return ClassFullname{strings.TrimPrefix(n.s, metaPrefix)}
}

// MethodFirstname is an unqualified method name, e.g. "map".
type MethodFirstname struct{ s string }

func NewMethodFirstname(s string) MethodFirstname { return MethodFirstname{normalize(s)} }
func (n MethodFirstname) String() string          { return n.s }
func (n MethodFirstname) IsZero() bool             { return n.s == "" }

// MethodFullname is `Class#method` or `Meta:Class#method`.
type MethodFullname struct {
	s         string
	ClassName ClassFullname
	FirstName MethodFirstname
}

// NewMethodFullname builds a MethodFullname from its owning class and the
// method's own firstname.
func NewMethodFullname(class ClassFullname, first MethodFirstname) MethodFullname {
	return MethodFullname{
		s:         class.String() + "#" + first.String(),
		ClassName: class,
		FirstName: first,
	}
}

func (n MethodFullname) String() string { return n.s }
func (n MethodFullname) IsZero() bool    { return n.s == "" }

// ConstFullname is a toplevel constant path, e.g. "Foo::Bar" or, for a
// generic instantiation, "Array<Int>".
type ConstFullname struct{ s string }

func NewConstFullname(s string) ConstFullname { return ConstFullname{normalize(s)} }
func (n ConstFullname) String() string        { return n.s }
func (n ConstFullname) IsZero() bool           { return n.s == "" }

// Namespace is an ordered, immutable list of ClassFirstnames forming the
// lexical nesting a definition was found under.
type Namespace struct {
	segments []ClassFirstname
}

// Root is the empty (toplevel) namespace.
func Root() Namespace { return Namespace{} }

// Add returns a new namespace extended by name; the receiver is unchanged.
func (ns Namespace) Add(name ClassFirstname) Namespace {
	segs := make([]ClassFirstname, len(ns.segments)+1)
	copy(segs, ns.segments)
	segs[len(ns.segments)] = name
	return Namespace{segments: segs}
}

// IsRoot reports whether this is the toplevel namespace.
func (ns Namespace) IsRoot() bool { return len(ns.segments) == 0 }

// Segments returns the namespace's path components, innermost last.
func (ns Namespace) Segments() []ClassFirstname {
	out := make([]ClassFirstname, len(ns.segments))
	copy(out, ns.segments)
	return out
}

// ClassFullname joins the namespace with firstname to form a fully
// qualified class name.
func (ns Namespace) ClassFullname(firstname ClassFirstname) ClassFullname {
	if ns.IsRoot() {
		return firstname.ToClassFullname()
	}
	parts := make([]string, 0, len(ns.segments)+1)
	for _, s := range ns.segments {
		parts = append(parts, s.String())
	}
	parts = append(parts, firstname.String())
	return ClassFullname{strings.Join(parts, "::")}
}

// ResolvedConstName is a constant reference resolved to a namespace, its
// dotted path segments, and an optional list of type arguments supplied at
// the reference site (e.g. the `<Int>` in `Array<Int>`).
type ResolvedConstName struct {
	Namespace Namespace
	Path      []string
	TypeArgs  []string // rendered type-argument names, for display/lookup
}

// String renders the resolved name the way it would appear in source,
// including any type arguments.
func (r ResolvedConstName) String() string {
	base := strings.Join(r.Path, "::")
	if len(r.TypeArgs) == 0 {
		return base
	}
	return base + "<" + strings.Join(r.TypeArgs, ", ") + ">"
}

// ConstFullname renders this resolved name as a ConstFullname.
func (r ResolvedConstName) ConstFullname() ConstFullname {
	return NewConstFullname(r.String())
}
