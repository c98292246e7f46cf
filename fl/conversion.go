package fl

import (
	"fmt"

	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/dave/jennifer/jen"
)

const (
	valuesModuleName = "github.com/damedic/formula-toolbox-go/values"
	ptrModuleName    = "github.com/damedic/formula-toolbox-go/utils/ptr"
)

// ConversionCodeGenerator decides whether values of one datatype can be
// converted into another and generates the conversion code.
type ConversionCodeGenerator interface {
	CanConvert(from, to datatype.Datatype) bool
	// ConversionCode wraps code of type from into code of type to.
	// It must only be called if CanConvert(from, to) holds.
	ConversionCode(from, to datatype.Datatype, code jen.Code) *jen.Statement
}

// ConvertFunc generates the code converting the value of code.
type ConvertFunc func(code jen.Code) *jen.Statement

type conversionKey struct {
	from, to datatype.Datatype
}

// Conversions is a closed table of directed conversions. Conversions are not
// transitive: int -> long and long -> Decimal do not imply int -> Decimal.
//
// Conversions must be registered before the table is used for compilation,
// afterward it is safe for concurrent use.
type Conversions struct {
	table map[conversionKey]ConvertFunc
}

func NewConversions() *Conversions {
	return &Conversions{table: map[conversionKey]ConvertFunc{}}
}

// Register adds the conversion from -> to, replacing an existing one.
func (c *Conversions) Register(from, to datatype.Datatype, convert ConvertFunc) *Conversions {
	c.table[conversionKey{from, to}] = convert
	return c
}

func (c *Conversions) CanConvert(from, to datatype.Datatype) bool {
	if from == to {
		return true
	}
	_, ok := c.table[conversionKey{from, to}]
	return ok
}

func (c *Conversions) ConversionCode(from, to datatype.Datatype, code jen.Code) *jen.Statement {
	if from == to {
		return jen.Add(code)
	}
	convert, ok := c.table[conversionKey{from, to}]
	if !ok {
		panic(fmt.Sprintf("no conversion from %s to %s registered", from, to))
	}
	return convert(code)
}

// Len returns the number of registered conversions.
func (c *Conversions) Len() int {
	return len(c.table)
}

func box(t datatype.Datatype) ConvertFunc {
	return func(code jen.Code) *jen.Statement {
		return jen.Qual(ptrModuleName, "To").Types(t.GoType()).Call(code)
	}
}

func unbox(code jen.Code) *jen.Statement {
	return jen.Qual(ptrModuleName, "Deref").Call(code)
}

func goConversion(t datatype.Datatype) ConvertFunc {
	return func(code jen.Code) *jen.Statement {
		return t.GoType().Call(code)
	}
}

func valuesCall(name string) ConvertFunc {
	return func(code jen.Code) *jen.Statement {
		return jen.Qual(valuesModuleName, name).Call(code)
	}
}

func method(name string) ConvertFunc {
	return func(code jen.Code) *jen.Statement {
		return jen.Add(code).Dot(name).Call()
	}
}

// DefaultConversions returns the conversions between the basic datatypes:
// boxing and unboxing of primitives, widening of primitive numbers and
// conversions of numbers into decimals. Decimal and double convert in both
// directions, keeping every value a float64 can represent.
func DefaultConversions() *Conversions {
	c := NewConversions()

	for _, p := range []datatype.Datatype{
		datatype.PrimitiveBoolean,
		datatype.PrimitiveInt,
		datatype.PrimitiveLong,
		datatype.PrimitiveDouble,
	} {
		w, _ := datatype.WrapperType(p)
		c.Register(p, w, box(p))
		c.Register(w, p, unbox)
	}

	c.Register(datatype.PrimitiveInt, datatype.PrimitiveLong, goConversion(datatype.PrimitiveLong))
	c.Register(datatype.PrimitiveInt, datatype.PrimitiveDouble, goConversion(datatype.PrimitiveDouble))
	c.Register(datatype.PrimitiveLong, datatype.PrimitiveDouble, goConversion(datatype.PrimitiveDouble))

	c.Register(datatype.PrimitiveInt, datatype.Decimal, func(code jen.Code) *jen.Statement {
		return jen.Qual(valuesModuleName, "DecimalFromInt").Call(jen.Int64().Call(code))
	})
	c.Register(datatype.PrimitiveLong, datatype.Decimal, valuesCall("DecimalFromInt"))
	c.Register(datatype.Integer, datatype.Decimal, valuesCall("NullableDecimalFromInt"))
	c.Register(datatype.Long, datatype.Decimal, valuesCall("NullableDecimalFromInt"))

	c.Register(datatype.PrimitiveDouble, datatype.Decimal, valuesCall("DecimalFromFloat"))
	c.Register(datatype.Decimal, datatype.PrimitiveDouble, method("Float64"))
	c.Register(datatype.Double, datatype.Decimal, valuesCall("NullableDecimalFromFloat"))
	c.Register(datatype.Decimal, datatype.Double, method("NullableFloat64"))

	return c
}
