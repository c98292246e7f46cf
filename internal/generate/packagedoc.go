package generate

import (
	"fmt"
	"strings"

	. "github.com/dave/jennifer/jen"
)

type PkgDocGenerator struct {
	NoOpGenerator
}

func (g PkgDocGenerator) GenerateAdditional(f func(fileName string) *File, pkg string, fms []Formula) {
	names := make([]string, 0, len(fms))
	for _, fm := range fms {
		names = append(names, fm.GoName)
	}

	file := f("doc")
	file.PackageComment(fmt.Sprintf("Package %s provides generated formulas.", pkg))
	if len(names) > 0 {
		file.PackageComment("")
		file.PackageComment("Formulas: " + strings.Join(names, ", "))
	}
}
