package generate

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/damedic/formula-toolbox-go/fl"
	"github.com/damedic/formula-toolbox-go/internal/generate/ir"
	"github.com/dave/jennifer/jen"
)

// Formula is a formula compiled to a Go expression over its parameters.
type Formula struct {
	ir.Formula
	Code     *jen.Statement
	Result   datatype.Datatype
	Messages fl.Messages
}

// CompileError reports the messages of a formula that failed to compile.
type CompileError struct {
	Formula  string
	Messages fl.Messages
}

func (e CompileError) Error() string {
	texts := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		texts = append(texts, fmt.Sprintf("%s: %s", m.Code, m.Text(nil)))
	}
	return fmt.Sprintf("formula %q: %s", e.Formula, strings.Join(texts, "; "))
}

// Compile compiles all formulas. Identifiers in expressions refer to the
// formula's parameters. Options configure the compiler, the identifier
// resolver is always set per formula.
func Compile(formulas []ir.Formula, opts ...fl.Option) ([]Formula, error) {
	registry := fl.NewCompiler(opts...).Registry()

	var (
		compiled []Formula
		errs     []error
	)
	for _, f := range formulas {
		expr, err := bindParameters(f, f.Expression)
		if err != nil {
			errs = append(errs, fmt.Errorf("formula %q: %w", f.Name, err))
			continue
		}

		c := fl.NewCompiler(append(slices.Clone(opts),
			fl.WithRegistry(registry),
			fl.WithIdentifierResolver(parameterResolver(f)),
		)...)
		r := c.Compile(expr)
		if r.Failed() {
			errs = append(errs, CompileError{Formula: f.Name, Messages: r.Messages()})
			continue
		}
		compiled = append(compiled, Formula{
			Formula:  f,
			Code:     r.Code(),
			Result:   r.Datatype(),
			Messages: r.Messages(),
		})
	}
	return compiled, errors.Join(errs...)
}

// bindParameters drops inline datatypes of identifiers so that they are
// resolved as parameters. An inline datatype must match the declared one.
func bindParameters(f ir.Formula, n fl.Node) (fl.Node, error) {
	switch n := n.(type) {
	case fl.Call:
		args := make([]fl.Node, 0, len(n.Args))
		var errs []error
		for _, a := range n.Args {
			b, err := bindParameters(f, a)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			args = append(args, b)
		}
		return fl.Call{Name: n.Name, Args: args}, errors.Join(errs...)
	case fl.Identifier:
		if p, ok := f.Parameter(n.Name); ok && n.Datatype != nil && n.Datatype != p.Datatype {
			return nil, fmt.Errorf("identifier %s used as %s, but declared as %s", n.Name, n.Datatype, p.Datatype)
		}
		return fl.Identifier{Name: n.Name}, nil
	default:
		return n, nil
	}
}

func parameterResolver(f ir.Formula) fl.IdentifierResolver {
	return fl.IdentifierResolverFunc(func(name string) (jen.Code, datatype.Datatype, bool) {
		p, ok := f.Parameter(name)
		if !ok {
			return nil, nil, false
		}
		return jen.Id(p.GoName), p.Datatype, true
	})
}
