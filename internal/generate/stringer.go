package generate

import (
	. "github.com/dave/jennifer/jen"
)

// StringerGenerator implements fmt.Stringer for the input types as indented
// JSON.
type StringerGenerator struct {
	NoOpGenerator
}

func (g StringerGenerator) GenerateFormula(f *File, fm Formula) bool {
	if len(fm.Parameters) == 0 {
		return false
	}
	f.Func().Params(Id("in").Id(inputTypeName(fm))).Id("String").Params().String().Block(
		List(Id("buf"), Id("err")).Op(":=").Qual("encoding/json", "MarshalIndent").Params(Id("in"), Lit(""), Lit("  ")),
		If(Id("err").Op("!=").Nil()).Block(
			Return(Lit("null")),
		),
		Return(Id("string").Params(Id("buf"))),
	)
	return true
}
