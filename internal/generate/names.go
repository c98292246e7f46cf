package generate

import (
	. "github.com/dave/jennifer/jen"
)

// NamesGenerator generates a constant per formula holding its declared name
// and the list of all names.
type NamesGenerator struct {
	NoOpGenerator
}

func (g NamesGenerator) GenerateAdditional(f func(fileName string) *File, _ string, fms []Formula) {
	if len(fms) == 0 {
		return
	}

	file := f("names")
	file.Comment("Names of the formulas as declared in the definition files.")
	file.Const().DefsFunc(func(g *Group) {
		for _, fm := range fms {
			g.Id(nameConstant(fm)).Op("=").Lit(fm.Name)
		}
	})

	file.Comment("Names lists all formulas.")
	file.Var().Id("Names").Op("=").Index().String().ValuesFunc(func(g *Group) {
		for _, fm := range fms {
			g.Id(nameConstant(fm))
		}
	})
}

func nameConstant(fm Formula) string {
	return "Name" + fm.GoName
}
