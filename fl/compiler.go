// Package fl compiles formulas into Go code.
//
// A formula is a call tree of named functions over literals and identifiers
// (see Node). The compiler resolves the function overload matching each call,
// converts arguments where needed and generates a Go expression together with
// its datatype. Problems are reported as messages on the Result, never as Go
// errors:
//
//	c := fl.NewCompiler()
//	r := c.Compile(fl.Call{Name: "AND", Args: []fl.Node{
//	    fl.Literal{Datatype: datatype.PrimitiveBoolean, Value: "true"},
//	    fl.Identifier{Name: "active", Datatype: datatype.Boolean},
//	}})
//	if r.Failed() {
//	    // report r.Messages()
//	}
//	fmt.Printf("%#v", r.Code())
package fl

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/damedic/formula-toolbox-go/values"
	"github.com/dave/jennifer/jen"
)

// IdentifierResolver provides code and datatype of identifiers that are not
// typed in the call tree.
type IdentifierResolver interface {
	ResolveIdentifier(name string) (code jen.Code, dt datatype.Datatype, ok bool)
}

// IdentifierResolverFunc adapts a function to IdentifierResolver.
type IdentifierResolverFunc func(name string) (jen.Code, datatype.Datatype, bool)

func (f IdentifierResolverFunc) ResolveIdentifier(name string) (jen.Code, datatype.Datatype, bool) {
	return f(name)
}

// Compiler compiles call trees. It holds no state besides its configuration
// and may be used by concurrent compilations.
type Compiler struct {
	registry    *Registry
	conversions ConversionCodeGenerator
	identifiers IdentifierResolver
	logger      *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRegistry sets the functions available to formulas.
// By default DefaultRegistry is used. The registry is not modified, so it may
// be shared by several compilers.
func WithRegistry(r *Registry) Option {
	return func(c *Compiler) {
		c.registry = r
	}
}

// WithConversions sets the implicit conversions.
// By default DefaultConversions is used.
func WithConversions(conv ConversionCodeGenerator) Option {
	return func(c *Compiler) {
		c.conversions = conv
	}
}

// WithIdentifierResolver sets the resolver for untyped identifiers.
func WithIdentifierResolver(r IdentifierResolver) Option {
	return func(c *Compiler) {
		c.identifiers = r
	}
}

// WithLogger sets the logger for debug output, slog.Default() otherwise. It
// receives the compilation records, including overload resolution, whichever
// registry is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.registry == nil {
		c.registry = defaultRegistry(c.logger)
	}
	if c.conversions == nil {
		c.conversions = DefaultConversions()
	}
	return c
}

// Registry returns the functions known to c.
func (c *Compiler) Registry() *Registry {
	return c.registry
}

// Compile compiles the call tree rooted at node.
func (c *Compiler) Compile(node Node) *Result {
	var r *Result
	switch n := node.(type) {
	case Call:
		args := make([]*Result, 0, len(n.Args))
		for i, a := range n.Args {
			if a == nil {
				panic(fmt.Sprintf("argument %d of %s is nil", i+1, n.Name))
			}
			args = append(args, c.Compile(a))
		}
		r = c.CompileCall(n.Name, args)
	case Literal:
		r = c.compileLiteral(n)
	case Identifier:
		r = c.compileIdentifier(n)
	default:
		panic(fmt.Sprintf("unexpected node type %T", node))
	}

	if r.Failed() {
		c.logger.Debug("compilation failed", "node", node.String(), "messages", r.Messages().Codes())
	}
	return r
}

// CompileCall compiles a call of the function name with already compiled
// arguments. The messages of all arguments are part of the result. If any
// argument has failed, no function is resolved and the result fails.
func (c *Compiler) CompileCall(name string, args []*Result) *Result {
	out := &Result{}
	argTypes := make([]datatype.Datatype, 0, len(args))
	for _, a := range args {
		out.Merge(a)
		argTypes = append(argTypes, a.Datatype())
	}
	if out.Failed() {
		return out
	}

	fn, err := c.registry.Resolve(name, argTypes)
	if err != nil {
		var resErr ResolutionError
		if !errors.As(err, &resErr) {
			panic(err)
		}
		out.Add(resErr.Message)
		return out
	}
	c.logger.Debug("resolved function", "name", name, "args", datatype.Names(argTypes), "function", fn.String())

	return fn.Compile(c.conversions, args)
}

func (c *Compiler) compileIdentifier(i Identifier) *Result {
	if i.Datatype != nil {
		return NewResult(jen.Id(i.Name), i.Datatype)
	}
	if c.identifiers != nil {
		if code, dt, ok := c.identifiers.ResolveIdentifier(i.Name); ok {
			return NewResult(code, dt)
		}
	}
	return NewFailedResult(NewError(UndefinedIdentifier, i.Name))
}

func (c *Compiler) compileLiteral(l Literal) *Result {
	code, ok := literalCode(l.Datatype, l.Value)
	if !ok {
		name := "<nil>"
		if l.Datatype != nil {
			name = l.Datatype.Name()
		}
		r := NewFailedResult(NewError(InvalidLiteral, l.Value, name))
		r.SetDatatype(l.Datatype)
		return r
	}
	return NewResult(code, l.Datatype)
}

func literalCode(dt datatype.Datatype, v string) (jen.Code, bool) {
	if w, ok := dt.(datatype.Basic); ok && w.IsWrapper() {
		if v == "null" {
			return jen.Parens(dt.GoType()).Call(jen.Nil()), true
		}
		p, _ := datatype.PrimitiveType(dt)
		code, ok := literalCode(p, v)
		if !ok {
			return nil, false
		}
		return box(p)(code), true
	}

	switch dt {
	case datatype.PrimitiveBoolean:
		b, err := strconv.ParseBool(v)
		return jen.Lit(b), err == nil
	case datatype.PrimitiveInt:
		i, err := strconv.ParseInt(v, 10, 32)
		return jen.Lit(int32(i)), err == nil
	case datatype.PrimitiveLong:
		i, err := strconv.ParseInt(v, 10, 64)
		return jen.Lit(i), err == nil
	case datatype.PrimitiveDouble:
		f, err := strconv.ParseFloat(v, 64)
		return jen.Lit(f), err == nil
	case datatype.String:
		return jen.Lit(v), true
	case datatype.Decimal:
		if v == "null" {
			return jen.Qual(valuesModuleName, "DecimalNull").Call(), true
		}
		if _, err := values.ParseDecimal(v); err != nil {
			return nil, false
		}
		return jen.Qual(valuesModuleName, "MustParseDecimal").Call(jen.Lit(v)), true
	case datatype.Money:
		if v == "null" {
			return jen.Qual(valuesModuleName, "Money").Values(), true
		}
		if _, err := values.ParseMoney(v); err != nil {
			return nil, false
		}
		return jen.Qual(valuesModuleName, "MustParseMoney").Call(jen.Lit(v)), true
	default:
		return nil, false
	}
}
