package generate

import (
	. "github.com/dave/jennifer/jen"
)

// InputTypeGenerator generates a struct holding the parameters of a formula
// and a Compute method calling the formula function.
type InputTypeGenerator struct {
	NoOpGenerator
}

func (g InputTypeGenerator) GenerateFormula(f *File, fm Formula) bool {
	if len(fm.Parameters) == 0 {
		return false
	}
	name := inputTypeName(fm)

	f.Comment(name + " holds the parameters of " + fm.GoName + ".")
	f.Type().Id(name).StructFunc(func(g *Group) {
		for _, p := range fm.Parameters {
			if p.Description != "" {
				g.Comment(p.Description)
			}
			g.Id(p.FieldName).Add(p.Datatype.GoType()).Tag(map[string]string{"json": p.Name})
		}
	})

	f.Func().Params(Id("in").Id(name)).Id("Compute").Params().Add(fm.Result.GoType()).Block(
		Return(Id(fm.GoName).CallFunc(func(g *Group) {
			for _, p := range fm.Parameters {
				g.Id("in").Dot(p.FieldName)
			}
		})),
	)
	return true
}

func inputTypeName(fm Formula) string {
	return fm.GoName + "Input"
}
