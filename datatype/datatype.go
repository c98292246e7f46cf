// Package datatype describes the semantic types of formula values and how they
// are represented in generated Go code.
//
// Datatypes are comparable values: two datatypes are equal (==) iff they
// denote the same semantic type. The catalog of basic types is fixed,
// parametrized types like lists are derived with ListOf and ArrayOf.
package datatype

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

const (
	valuesModuleName = "github.com/damedic/formula-toolbox-go/values"
)

// Datatype is the semantic type of a formula value.
type Datatype interface {
	// Name returns the name the datatype is referred to in formulas and messages.
	Name() string
	// IsPrimitive reports whether values of this type can not be null.
	IsPrimitive() bool
	// GoType returns the Go type expression used in generated code.
	GoType() *jen.Statement
	String() string
}

// Kind identifies the value kind of a Basic datatype.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindVoid
	KindBoolean
	KindInt
	KindLong
	KindDouble
	KindString
	KindDecimal
	KindMoney
)

// Basic is a datatype from the fixed catalog.
type Basic struct {
	kind      Kind
	primitive bool
}

var (
	// Any matches every datatype in function signatures.
	Any = Basic{kind: KindAny}
	// Void is the type of expressions without value.
	Void = Basic{kind: KindVoid}

	PrimitiveBoolean = Basic{kind: KindBoolean, primitive: true}
	Boolean          = Basic{kind: KindBoolean}
	PrimitiveInt     = Basic{kind: KindInt, primitive: true}
	Integer          = Basic{kind: KindInt}
	PrimitiveLong    = Basic{kind: KindLong, primitive: true}
	Long             = Basic{kind: KindLong}
	PrimitiveDouble  = Basic{kind: KindDouble, primitive: true}
	Double           = Basic{kind: KindDouble}

	String  = Basic{kind: KindString}
	Decimal = Basic{kind: KindDecimal}
	Money   = Basic{kind: KindMoney}
)

// Catalog lists all basic datatypes.
var Catalog = []Basic{
	Any, Void,
	PrimitiveBoolean, Boolean,
	PrimitiveInt, Integer,
	PrimitiveLong, Long,
	PrimitiveDouble, Double,
	String, Decimal, Money,
}

func (b Basic) Kind() Kind {
	return b.kind
}

func (b Basic) Name() string {
	switch b.kind {
	case KindAny:
		return "any"
	case KindVoid:
		return "void"
	case KindBoolean:
		if b.primitive {
			return "boolean"
		}
		return "Boolean"
	case KindInt:
		if b.primitive {
			return "int"
		}
		return "Integer"
	case KindLong:
		if b.primitive {
			return "long"
		}
		return "Long"
	case KindDouble:
		if b.primitive {
			return "double"
		}
		return "Double"
	case KindString:
		return "String"
	case KindDecimal:
		return "Decimal"
	case KindMoney:
		return "Money"
	default:
		return "invalid"
	}
}

func (b Basic) IsPrimitive() bool {
	return b.primitive
}

// IsWrapper reports whether b is the nullable counterpart of a primitive type.
func (b Basic) IsWrapper() bool {
	if b.primitive {
		return false
	}
	switch b.kind {
	case KindBoolean, KindInt, KindLong, KindDouble:
		return true
	}
	return false
}

// IsNumeric reports whether b holds numbers.
func (b Basic) IsNumeric() bool {
	switch b.kind {
	case KindInt, KindLong, KindDouble, KindDecimal, KindMoney:
		return true
	}
	return false
}

func (b Basic) GoType() *jen.Statement {
	var t *jen.Statement
	switch b.kind {
	case KindAny:
		return jen.Id("any")
	case KindVoid:
		return jen.Struct()
	case KindBoolean:
		t = jen.Bool()
	case KindInt:
		t = jen.Int32()
	case KindLong:
		t = jen.Int64()
	case KindDouble:
		t = jen.Float64()
	case KindString:
		return jen.String()
	case KindDecimal:
		return jen.Qual(valuesModuleName, "Decimal")
	case KindMoney:
		return jen.Qual(valuesModuleName, "Money")
	default:
		panic(fmt.Sprintf("no Go type for datatype kind %d", b.kind))
	}
	if b.primitive {
		return t
	}
	return jen.Op("*").Add(t)
}

func (b Basic) String() string {
	return b.Name()
}

// List is the datatype of lists holding elements of one datatype.
type List struct {
	Elem Datatype
}

// ListOf returns the list datatype with the given element type.
func ListOf(elem Datatype) List {
	return List{Elem: elem}
}

func (l List) Name() string {
	return fmt.Sprintf("List<%s>", l.Elem.Name())
}

func (l List) IsPrimitive() bool {
	return false
}

func (l List) GoType() *jen.Statement {
	return jen.Index().Add(l.Elem.GoType())
}

func (l List) String() string {
	return l.Name()
}

// Array is the datatype of multi-valued properties of generated models.
type Array struct {
	Elem Datatype
}

// ArrayOf returns the array datatype with the given element type.
func ArrayOf(elem Datatype) Array {
	return Array{Elem: elem}
}

func (a Array) Name() string {
	return fmt.Sprintf("%s[]", a.Elem.Name())
}

func (a Array) IsPrimitive() bool {
	return false
}

func (a Array) GoType() *jen.Statement {
	return jen.Index().Add(a.Elem.GoType())
}

func (a Array) String() string {
	return a.Name()
}

// Named is a value or bean type declared in a Go package, e.g. a generated
// enumeration or a policy component. Values are passed by pointer.
type Named struct {
	Pkg      string
	TypeName string
}

// NamedType returns the datatype of the Go type name declared in package pkg.
func NamedType(pkg, name string) Named {
	return Named{Pkg: pkg, TypeName: name}
}

func (n Named) Name() string {
	if n.Pkg == "" {
		return n.TypeName
	}
	return n.Pkg + "." + n.TypeName
}

func (n Named) IsPrimitive() bool {
	return false
}

func (n Named) GoType() *jen.Statement {
	if n.Pkg == "" {
		return jen.Op("*").Id(n.TypeName)
	}
	return jen.Op("*").Qual(n.Pkg, n.TypeName)
}

func (n Named) String() string {
	return n.Name()
}
