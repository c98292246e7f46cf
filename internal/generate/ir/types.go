// Package ir is the intermediate representation of formula definitions
// the generators work on.
package ir

import (
	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/damedic/formula-toolbox-go/fl"
)

type Formula struct {
	// Name as declared in the definition file.
	Name string
	// GoName is the exported Go identifier of the generated function.
	GoName      string
	FileName    string
	Description string
	Parameters  []Parameter
	Expression  fl.Node
}

// Parameter returns the parameter named name.
func (f Formula) Parameter(name string) (Parameter, bool) {
	for _, p := range f.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

type Parameter struct {
	Name string
	// GoName is the unexported identifier used as function parameter.
	GoName string
	// FieldName is the exported identifier used as input struct field.
	FieldName   string
	Datatype    datatype.Datatype
	Description string
}
