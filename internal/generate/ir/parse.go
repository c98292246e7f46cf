package ir

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"slices"
	"strings"

	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/damedic/formula-toolbox-go/fl"
	"github.com/damedic/formula-toolbox-go/internal/generate/model"
	"github.com/iancoleman/strcase"
)

// Parse parses formula definitions into the intermediate representation.
// All invalid definitions are reported, not only the first one.
func Parse(bundles ...model.Bundle) ([]Formula, error) {
	var (
		formulas []Formula
		errs     []error
		seen     = map[string]string{}
	)

	for _, b := range bundles {
		for _, d := range b.Formulas {
			f, err := parseFormula(d)
			if err != nil {
				errs = append(errs, fmt.Errorf("formula %q: %w", d.Name, err))
				continue
			}
			if other, ok := seen[f.GoName]; ok {
				errs = append(errs, fmt.Errorf("formula %q: Go name %s already used by %q", d.Name, f.GoName, other))
				continue
			}
			seen[f.GoName] = d.Name
			formulas = append(formulas, f)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slices.SortFunc(formulas, func(a, b Formula) int {
		return strings.Compare(a.GoName, b.GoName)
	})
	return formulas, nil
}

func parseFormula(d model.FormulaDefinition) (Formula, error) {
	if d.Name == "" {
		return Formula{}, fmt.Errorf("missing name")
	}
	if len(d.Expression) == 0 {
		return Formula{}, fmt.Errorf("missing expression")
	}

	f := Formula{
		Name:        d.Name,
		GoName:      strcase.ToCamel(d.Name),
		FileName:    toGoFileCasing(d.Name),
		Description: d.Description,
	}
	if !token.IsIdentifier(f.GoName) {
		return Formula{}, fmt.Errorf("%q is no valid Go identifier", f.GoName)
	}

	var errs []error
	for _, p := range d.Parameters {
		param, err := parseParameter(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("parameter %q: %w", p.Name, err))
			continue
		}
		if i := slices.IndexFunc(f.Parameters, func(o Parameter) bool {
			return o.GoName == param.GoName || o.FieldName == param.FieldName
		}); i >= 0 {
			if other := f.Parameters[i].Name; other == param.Name {
				errs = append(errs, fmt.Errorf("parameter %q declared twice", p.Name))
			} else {
				errs = append(errs, fmt.Errorf("parameter %q: Go name %s already used by %q", p.Name, param.GoName, other))
			}
			continue
		}
		f.Parameters = append(f.Parameters, param)
	}

	expr, err := fl.ParseNode(d.Expression)
	if err != nil {
		errs = append(errs, fmt.Errorf("expression: %w", err))
	}
	f.Expression = expr

	return f, errors.Join(errs...)
}

func parseParameter(p model.ParameterDefinition) (Parameter, error) {
	if p.Name == "" {
		return Parameter{}, fmt.Errorf("missing name")
	}
	dt, err := datatype.Parse(p.Type)
	if err != nil {
		return Parameter{}, err
	}
	goName := toGoIdentifier(p.Name)
	if !token.IsIdentifier(goName) {
		return Parameter{}, fmt.Errorf("%q is no valid Go identifier", goName)
	}
	return Parameter{
		Name:        p.Name,
		GoName:      goName,
		FieldName:   toFieldName(p.Name),
		Datatype:    dt,
		Description: p.Description,
	}, nil
}

// referencedPackages are the package names generated formula code refers to.
var referencedPackages = []string{"values", "ptr", "json"}

// toGoIdentifier derives a parameter identifier. Keywords, predeclared
// identifiers and referenced package names get a "_" suffix so that they
// neither break nor shadow anything the generated code uses.
func toGoIdentifier(name string) string {
	id := strcase.ToLowerCamel(name)
	if token.IsKeyword(id) || types.Universe.Lookup(id) != nil || slices.Contains(referencedPackages, id) {
		return id + "_"
	}
	return id
}

// inputMethods are the methods generated on input types.
var inputMethods = []string{"Compute", "String"}

func toFieldName(name string) string {
	id := strcase.ToCamel(name)
	if slices.Contains(inputMethods, id) {
		return id + "_"
	}
	return id
}

func toGoFileCasing(name string) string {
	return strcase.ToSnake(name)
}
