package datatype

import (
	"fmt"
	"strings"
)

// WrapperType returns the nullable counterpart of a primitive datatype.
func WrapperType(d Datatype) (Datatype, bool) {
	b, ok := d.(Basic)
	if !ok || !b.primitive {
		return nil, false
	}
	return Basic{kind: b.kind}, true
}

// PrimitiveType returns the primitive counterpart of a wrapper datatype.
func PrimitiveType(d Datatype) (Datatype, bool) {
	b, ok := d.(Basic)
	if !ok || !b.IsWrapper() {
		return nil, false
	}
	return Basic{kind: b.kind, primitive: true}, true
}

// Equal reports whether a and b denote the same datatype.
func Equal(a, b Datatype) bool {
	return a == b
}

// Compatible reports whether a value of type actual can be passed where
// declared is expected without changing its meaning: the types are equal or
// one is the wrapper of the other primitive.
func Compatible(declared, actual Datatype) bool {
	if declared == actual {
		return true
	}
	if w, ok := WrapperType(declared); ok && w == actual {
		return true
	}
	if w, ok := WrapperType(actual); ok && w == declared {
		return true
	}
	return false
}

// ElemType returns the element datatype of lists and arrays.
func ElemType(d Datatype) (Datatype, bool) {
	switch t := d.(type) {
	case List:
		return t.Elem, true
	case Array:
		return t.Elem, true
	default:
		return nil, false
	}
}

// IsList reports whether d is a list datatype.
func IsList(d Datatype) bool {
	_, ok := d.(List)
	return ok
}

// Names returns the names of the given datatypes, e.g. for messages.
func Names(types []Datatype) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		if t == nil {
			names = append(names, "<nil>")
			continue
		}
		names = append(names, t.Name())
	}
	return names
}

// Parse resolves a datatype by name.
//
// Supported are the names of the basic catalog (e.g. "int", "Integer",
// "Decimal"), lists "List<T>", arrays "T[]" or "Array<T>" and qualified
// named types like "example.com/model.Policy".
func Parse(name string) (Datatype, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty datatype name")
	}

	// the array suffix binds weakest: "List<int>[]" is an array of lists
	if inner, ok := strings.CutSuffix(name, "[]"); ok {
		elem, err := Parse(inner)
		if err != nil {
			return nil, fmt.Errorf("array element of %q: %w", name, err)
		}
		return ArrayOf(elem), nil
	}
	if elem, ok, err := parseGeneric(name, "List"); ok {
		if err != nil {
			return nil, err
		}
		return ListOf(elem), nil
	}
	if elem, ok, err := parseGeneric(name, "Array"); ok {
		if err != nil {
			return nil, err
		}
		return ArrayOf(elem), nil
	}

	for _, b := range Catalog {
		if b.Name() == name {
			return b, nil
		}
	}

	if i := strings.LastIndex(name, "."); i > 0 && i < len(name)-1 {
		return NamedType(name[:i], name[i+1:]), nil
	}

	return nil, fmt.Errorf("unknown datatype %q", name)
}

// parseGeneric parses "<kind><T>" and reports whether name has that form.
func parseGeneric(name, kind string) (Datatype, bool, error) {
	inner, ok := strings.CutPrefix(name, kind+"<")
	if !ok {
		return nil, false, nil
	}
	inner, ok = strings.CutSuffix(inner, ">")
	if !ok {
		return nil, true, fmt.Errorf("unterminated %s datatype %q", strings.ToLower(kind), name)
	}
	elem, err := Parse(inner)
	if err != nil {
		return nil, true, fmt.Errorf("%s element of %q: %w", strings.ToLower(kind), name, err)
	}
	return elem, true, nil
}

// MustParse is like Parse but panics if the name can not be resolved.
func MustParse(name string) Datatype {
	d, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return d
}
