package fl

import (
	"fmt"

	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/damedic/formula-toolbox-go/values"
	"github.com/dave/jennifer/jen"
)

// DefaultFunctions returns the functions available in formulas by default.
func DefaultFunctions() []Function {
	fns := []Function{
		newFunction("IF", "Returns the second argument if the condition is true, otherwise the third.",
			FixedSignature(datatype.PrimitiveBoolean, datatype.Any, datatype.Any), nil,
			ifFunction{fixedArity{code: Prefix + "IF.Condition"}}),
		newFunction("NOT", "Negates a boolean.",
			FixedSignature(datatype.PrimitiveBoolean), datatype.PrimitiveBoolean, notFunction{}),
		newFunction("NOT", "Negates an optional boolean, null stays null.",
			FixedSignature(datatype.Boolean), datatype.Boolean, notFunction{}),
		newFunction("AND", "True if all arguments are true.",
			VariadicSignature(datatype.PrimitiveBoolean, 1), datatype.PrimitiveBoolean,
			logicalFunction{variadicArity{expected: declaredElemType}, "&&"}),
		newFunction("OR", "True if any argument is true.",
			VariadicSignature(datatype.PrimitiveBoolean, 1), datatype.PrimitiveBoolean,
			logicalFunction{variadicArity{expected: declaredElemType}, "||"}),
		newFunction("CONCAT", "Concatenates texts.",
			VariadicSignature(datatype.String, 1), datatype.String,
			concatFunction{variadicArity{expected: declaredElemType}}),
		newFunction("LIST", "Creates a list of the arguments, all converted to the type of the first one.",
			VariadicSignature(datatype.Any, 1), nil,
			listFunction{variadicArity{expected: firstArgumentType}}),
		newFunction("COUNT", "Number of elements in a list.",
			FixedSignature(datatype.Any), datatype.PrimitiveInt, countFunction{}),
		newFunction("SUM", "Sum of the elements of a list or array.",
			FixedSignature(datatype.Any), nil, sumFunction{}),
		newFunction("ISEMPTY", "True if the argument is null or empty.",
			FixedSignature(datatype.Any), datatype.PrimitiveBoolean, emptinessFunction{}),
		newFunction("EXISTS", "True if the argument is neither null nor empty.",
			FixedSignature(datatype.Any), datatype.PrimitiveBoolean, emptinessFunction{exists: true}),
		methodFunc("ABS", "Absolute value.", "Abs", datatype.Decimal, datatype.Decimal),
		methodFunc("WHOLENUMBER", "Integral part, digits after the decimal point are discarded.", "WholeNumber",
			datatype.PrimitiveInt, datatype.Decimal),
		methodFunc("POWER", "Raises the first argument to the power of the second.", "Power",
			datatype.Decimal, datatype.Decimal, datatype.PrimitiveInt),
	}

	for _, dt := range []datatype.Datatype{
		datatype.PrimitiveInt,
		datatype.PrimitiveLong,
		datatype.PrimitiveDouble,
		datatype.Decimal,
		datatype.Money,
	} {
		fns = append(fns, MinMaxFunction(dt, false), MinMaxFunction(dt, true))
	}

	for _, dt := range []datatype.Datatype{datatype.Decimal, datatype.Money} {
		fns = append(fns,
			RoundFunction("ROUND", dt, values.RoundHalfUp),
			RoundFunction("ROUNDUP", dt, values.RoundUp),
			RoundFunction("ROUNDDOWN", dt, values.RoundDown),
		)
	}

	return fns
}

// MinMaxFunction returns MIN (or MAX) over two values of type dt.
func MinMaxFunction(dt datatype.Datatype, isMax bool) Function {
	name, desc := "MIN", "The smaller of two values."
	if isMax {
		name, desc = "MAX", "The larger of two values."
	}
	return newFunction(name, desc, FixedSignature(dt, dt), dt, minMaxFunction{isMax: isMax})
}

// RoundFunction returns a function rounding values of type dt to the scale
// given as second argument, using the rounding mode fixed here.
func RoundFunction(name string, dt datatype.Datatype, mode values.RoundingMode) Function {
	return newFunction(name, fmt.Sprintf("Rounds to the given scale (%s).", mode),
		FixedSignature(dt, datatype.PrimitiveInt), dt, roundFunction{mode: mode})
}

func methodFunc(name, description, method string, result datatype.Datatype, params ...datatype.Datatype) Function {
	return newFunction(name, description, FixedSignature(params...), result, methodFunction{method: method})
}

type ifFunction struct {
	fixedArity
}

// compile converts the branches to a common type, never the condition.
// The second branch is converted to the type of the first if possible,
// otherwise the first to the type of the second.
func (f ifFunction) compile(conv ConversionCodeGenerator, fn Function, args []*Result) *Result {
	codes, types, fail := f.coerce(conv, fn, args)
	if fail != nil {
		return fail
	}
	cond, then, els := codes[0], codes[1], codes[2]

	dt := types[1]
	if types[1] != types[2] {
		switch {
		case conv.CanConvert(types[2], types[1]):
			els = conv.ConversionCode(types[2], types[1], els)
		case conv.CanConvert(types[1], types[2]):
			then = conv.ConversionCode(types[1], types[2], then)
			dt = types[2]
		default:
			return NewFailedResult(NewError(fn.ErrorCode(), types[1].Name(), types[2].Name()))
		}
	}

	code := jen.Func().Params().Add(dt.GoType()).Block(
		jen.If(cond).Block(jen.Return(then)),
		jen.Return(els),
	).Call()
	return NewResult(code, dt)
}

type notFunction struct {
	fixedArity
}

func (f notFunction) compile(conv ConversionCodeGenerator, fn Function, args []*Result) *Result {
	codes, _, fail := f.coerce(conv, fn, args)
	if fail != nil {
		return fail
	}
	if fn.result == datatype.Boolean {
		return NewResult(jen.Qual(valuesModuleName, "NotNullable").Call(codes[0]), fn.result)
	}
	return NewResult(jen.Op("!").Add(codes[0]), fn.result)
}

type logicalFunction struct {
	variadicArity
	op string
}

func (f logicalFunction) compile(conv ConversionCodeGenerator, fn Function, args []*Result) *Result {
	codes, dt, fail := f.convertAll(conv, fn, args)
	if fail != nil {
		return fail
	}
	return NewResult(join(f.op, codes), dt)
}

type concatFunction struct {
	variadicArity
}

func (f concatFunction) compile(conv ConversionCodeGenerator, fn Function, args []*Result) *Result {
	codes, dt, fail := f.convertAll(conv, fn, args)
	if fail != nil {
		return fail
	}
	return NewResult(join("+", codes), dt)
}

type listFunction struct {
	variadicArity
}

func (f listFunction) compile(conv ConversionCodeGenerator, fn Function, args []*Result) *Result {
	codes, elem, fail := f.convertAll(conv, fn, args)
	if fail != nil {
		return fail
	}
	list := datatype.ListOf(elem)
	return NewResult(list.GoType().Values(toCode(codes)...), list)
}

type minMaxFunction struct {
	fixedArity
	isMax bool
}

func (f minMaxFunction) compile(conv ConversionCodeGenerator, fn Function, args []*Result) *Result {
	codes, _, fail := f.coerce(conv, fn, args)
	if fail != nil {
		return fail
	}

	switch fn.result {
	case datatype.Decimal, datatype.Money:
		m := "Min"
		if f.isMax {
			m = "Max"
		}
		return NewResult(codes[0].Dot(m).Call(codes[1]), fn.result)
	default:
		builtin := "min"
		if f.isMax {
			builtin = "max"
		}
		return NewResult(jen.Id(builtin).Call(codes[0], codes[1]), fn.result)
	}
}

var roundingModeNames = map[values.RoundingMode]string{
	values.RoundHalfUp:   "RoundHalfUp",
	values.RoundHalfEven: "RoundHalfEven",
	values.RoundHalfDown: "RoundHalfDown",
	values.RoundUp:       "RoundUp",
	values.RoundDown:     "RoundDown",
	values.RoundCeiling:  "RoundCeiling",
	values.RoundFloor:    "RoundFloor",
}

type roundFunction struct {
	fixedArity
	mode values.RoundingMode
}

func (f roundFunction) compile(conv ConversionCodeGenerator, fn Function, args []*Result) *Result {
	codes, _, fail := f.coerce(conv, fn, args)
	if fail != nil {
		return fail
	}
	name, ok := roundingModeNames[f.mode]
	if !ok {
		panic(fmt.Sprintf("%s: unknown rounding mode %q", fn, f.mode))
	}
	return NewResult(codes[0].Dot("Round").Call(codes[1], jen.Qual(valuesModuleName, name)), fn.result)
}

// methodFunction calls a method on the first argument, passing the others.
type methodFunction struct {
	fixedArity
	method string
}

func (f methodFunction) compile(conv ConversionCodeGenerator, fn Function, args []*Result) *Result {
	codes, _, fail := f.coerce(conv, fn, args)
	if fail != nil {
		return fail
	}
	return NewResult(codes[0].Dot(f.method).Call(toCode(codes[1:])...), fn.result)
}

type countFunction struct {
	fixedArity
}

func (f countFunction) compile(_ ConversionCodeGenerator, fn Function, args []*Result) *Result {
	dt := args[0].Datatype()
	if !datatype.IsList(dt) {
		return NewFailedResult(NewError(fn.ErrorCode(), dt.Name()))
	}
	return NewResult(jen.Int32().Call(jen.Len(args[0].Code())), fn.result)
}

// sumElemTypes are the element types SUM accepts, with their additive identity.
var sumElemTypes = map[datatype.Datatype]func() *jen.Statement{
	datatype.PrimitiveInt:    func() *jen.Statement { return jen.Int32().Call(jen.Lit(0)) },
	datatype.PrimitiveLong:   func() *jen.Statement { return jen.Int64().Call(jen.Lit(0)) },
	datatype.PrimitiveDouble: func() *jen.Statement { return jen.Float64().Call(jen.Lit(0)) },
	datatype.Decimal:         func() *jen.Statement { return jen.Qual(valuesModuleName, "DecimalZero").Call() },
	datatype.Money:           func() *jen.Statement { return jen.Qual(valuesModuleName, "MoneyZero").Call() },
}

type sumFunction struct {
	fixedArity
}

// compile generates a func literal accumulating the elements, starting with
// the additive identity so that an empty list sums up to it.
func (f sumFunction) compile(_ ConversionCodeGenerator, fn Function, args []*Result) *Result {
	dt := args[0].Datatype()
	elem, ok := datatype.ElemType(dt)
	if !ok {
		return NewFailedResult(NewError(fn.ErrorCode(), dt.Name()))
	}
	identity, ok := sumElemTypes[elem]
	if !ok {
		return NewFailedResult(NewError(fn.ErrorCode(), dt.Name()))
	}

	var accumulate *jen.Statement
	switch elem {
	case datatype.Decimal, datatype.Money:
		accumulate = jen.Id("sum").Op("=").Id("sum").Dot("Add").Call(jen.Id("v"))
	default:
		accumulate = jen.Id("sum").Op("+=").Id("v")
	}

	code := jen.Func().Params(jen.Id("list").Add(dt.GoType())).Add(elem.GoType()).Block(
		jen.Id("sum").Op(":=").Add(identity()),
		jen.For(jen.List(jen.Id("_"), jen.Id("v")).Op(":=").Range().Id("list")).Block(accumulate),
		jen.Return(jen.Id("sum")),
	).Call(args[0].Code())
	return NewResult(code, elem)
}

// emptinessFunction checks whether a value is null or empty (ISEMPTY), or
// the opposite (EXISTS). Primitive values are never empty.
type emptinessFunction struct {
	fixedArity
	exists bool
}

func (f emptinessFunction) compile(_ ConversionCodeGenerator, fn Function, args []*Result) *Result {
	code := args[0].Code()
	cmp := "=="
	if f.exists {
		cmp = "!="
	}

	var check *jen.Statement
	switch dt := args[0].Datatype(); dt {
	case datatype.Decimal, datatype.Money:
		check = code.Dot("IsNull").Call()
		if f.exists {
			check = jen.Op("!").Add(check)
		}
	case datatype.String:
		check = jen.Parens(code.Op(cmp).Lit(""))
	default:
		switch {
		case dt.IsPrimitive():
			check = jen.Lit(f.exists)
		case isCollection(dt):
			check = jen.Parens(jen.Len(code).Op(cmp).Lit(0))
		default:
			check = jen.Parens(code.Op(cmp).Nil())
		}
	}
	return NewResult(check, fn.result)
}

func isCollection(dt datatype.Datatype) bool {
	_, ok := datatype.ElemType(dt)
	return ok
}
