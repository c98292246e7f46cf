package fl

import (
	"fmt"
	"strconv"

	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/dave/jennifer/jen"
)

// Function is one overload of a named formula function.
//
// The set of function kinds is closed: every kind implements the unexported
// body interface in this package. Functions are stateless, the conversion
// service is passed into every compilation.
type Function struct {
	name        string
	description string
	signature   Signature
	// result is the declared result type, nil if it depends on the arguments.
	result datatype.Datatype
	body   body
}

type body interface {
	compile(conv ConversionCodeGenerator, fn Function, args []*Result) *Result
}

func newFunction(name, description string, sig Signature, result datatype.Datatype, b body) Function {
	return Function{
		name:        name,
		description: description,
		signature:   sig,
		result:      result,
		body:        b,
	}
}

func (f Function) Name() string {
	return f.name
}

func (f Function) Description() string {
	return f.description
}

func (f Function) Signature() Signature {
	return f.signature
}

// ResultType returns the declared result datatype, nil if it is derived
// from the arguments at compile time.
func (f Function) ResultType() datatype.Datatype {
	return f.result
}

// ErrorCode returns the code of messages reported by this function.
func (f Function) ErrorCode() string {
	return Prefix + f.name
}

func (f Function) String() string {
	return fmt.Sprintf("%s(%s)", f.name, f.signature)
}

// Compile compiles a call of f with the already compiled arguments.
//
// The arguments must satisfy the signature of f, a wrong number of arguments
// is a defect of the caller and panics. Messages of all arguments are merged
// into the returned result before the messages of f itself. If an argument
// has failed, the result fails without generating code.
func (f Function) Compile(conv ConversionCodeGenerator, args []*Result) *Result {
	if !f.signature.AcceptsArity(len(args)) {
		panic(fmt.Sprintf("%s called with %d arguments", f, len(args)))
	}

	out := &Result{}
	failed := false
	for _, a := range args {
		out.Merge(a)
		failed = failed || a.Failed()
	}
	if failed {
		return out
	}

	r := f.body.compile(conv, f, args)
	out.Merge(r)
	if !r.Failed() {
		out.code = r.code
	}
	out.datatype = r.datatype
	return out
}

func argumentError(code string, expected datatype.Datatype, pos int, actual datatype.Datatype) *Result {
	return NewFailedResult(NewError(code, expected.Name(), strconv.Itoa(pos+1), actual.Name()))
}

// fixedArity compiles the arguments of functions with a fixed parameter list.
type fixedArity struct {
	// code overrides the function's error code for argument errors.
	code string
}

// coerce converts every argument to its declared parameter type. Parameters
// declared as datatype.Any are passed through unchanged, as are arguments
// whose type already equals the declared one.
func (s fixedArity) coerce(
	conv ConversionCodeGenerator,
	fn Function,
	args []*Result,
) (codes []*jen.Statement, types []datatype.Datatype, fail *Result) {
	code := s.code
	if code == "" {
		code = fn.ErrorCode()
	}

	codes = make([]*jen.Statement, len(args))
	types = make([]datatype.Datatype, len(args))
	for i, a := range args {
		declared := fn.signature.ParamType(i)
		actual := a.Datatype()
		if declared == datatype.Any || declared == actual {
			codes[i], types[i] = a.Code(), actual
			continue
		}
		if !conv.CanConvert(actual, declared) {
			return nil, nil, argumentError(code, declared, i, actual)
		}
		codes[i], types[i] = conv.ConversionCode(actual, declared, a.Code()), declared
	}
	return codes, types, nil
}

// expectedTypePolicy determines the datatype all arguments of a variadic
// function are converted to.
type expectedTypePolicy func(fn Function, args []*Result) datatype.Datatype

// declaredElemType expects the declared element type of the signature.
func declaredElemType(fn Function, _ []*Result) datatype.Datatype {
	return fn.signature.VarArgsType()
}

// firstArgumentType expects the type of the first argument.
func firstArgumentType(_ Function, args []*Result) datatype.Datatype {
	return args[0].Datatype()
}

// variadicArity compiles the arguments of functions taking a variable number
// of arguments of one element type.
type variadicArity struct {
	expected expectedTypePolicy
}

// convertAll converts every argument to the expected type. The first argument
// that can not be converted fails the call.
func (s variadicArity) convertAll(
	conv ConversionCodeGenerator,
	fn Function,
	args []*Result,
) (codes []*jen.Statement, expected datatype.Datatype, fail *Result) {
	expected = s.expected(fn, args)

	codes = make([]*jen.Statement, len(args))
	for i, a := range args {
		actual := a.Datatype()
		if actual == expected {
			codes[i] = a.Code()
			continue
		}
		if !conv.CanConvert(actual, expected) {
			return nil, expected, argumentError(fn.ErrorCode(), expected, i, actual)
		}
		codes[i] = conv.ConversionCode(actual, expected, a.Code())
	}
	return codes, expected, nil
}

// join combines codes with a binary operator and wraps them in parentheses.
func join(op string, codes []*jen.Statement) *jen.Statement {
	expr := jen.Add(codes[0])
	for _, c := range codes[1:] {
		expr.Op(op).Add(c)
	}
	return jen.Parens(expr)
}

func toCode(stmts []*jen.Statement) []jen.Code {
	codes := make([]jen.Code, 0, len(stmts))
	for _, s := range stmts {
		codes = append(codes, s)
	}
	return codes
}
