package generate

import (
	"fmt"
	"strings"

	. "github.com/dave/jennifer/jen"
)

// FunctionGenerator generates a function per formula taking the parameters
// in declaration order.
type FunctionGenerator struct {
	NoOpGenerator
}

func (g FunctionGenerator) GenerateFormula(f *File, fm Formula) bool {
	f.Comment(fmt.Sprintf("%s computes the formula %q.", fm.GoName, fm.Name))
	if fm.Description != "" {
		f.Comment("")
		for _, line := range strings.Split(fm.Description, "\n") {
			f.Comment(line)
		}
	}

	f.Func().Id(fm.GoName).ParamsFunc(func(g *Group) {
		for _, p := range fm.Parameters {
			g.Id(p.GoName).Add(p.Datatype.GoType())
		}
	}).Add(fm.Result.GoType()).Block(
		Return(fm.Code.Clone()),
	)
	return true
}
