// Package generate generates Go source files from compiled formulas.
package generate

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	. "github.com/dave/jennifer/jen"
)

// Generator contributes code to the generated files.
type Generator interface {
	// GenerateFormula adds code for a single formula to its own file and
	// reports whether anything was added.
	GenerateFormula(f *File, fm Formula) bool
	// GenerateAdditional adds code not belonging to a single formula.
	GenerateAdditional(f func(fileName string) *File, pkg string, fms []Formula)
}

type NoOpGenerator struct{}

func (NoOpGenerator) GenerateFormula(*File, Formula) bool {
	return false
}

func (NoOpGenerator) GenerateAdditional(func(string) *File, string, []Formula) {}

// DefaultGenerators returns the generators run by the flc command.
func DefaultGenerators() []Generator {
	return []Generator{
		PkgDocGenerator{},
		NamesGenerator{},
		FunctionGenerator{},
		InputTypeGenerator{},
		StringerGenerator{},
	}
}

// Generate runs the generators and returns the generated files of package
// pkg keyed by file name without extension.
func Generate(pkg string, fms []Formula, generators ...Generator) map[string]*File {
	files := map[string]*File{}
	file := func(fileName string) *File {
		if f, ok := files[fileName]; ok {
			return f
		}
		f := NewFile(pkg)
		f.HeaderComment("Code generated by flc. DO NOT EDIT.")
		files[fileName] = f
		return f
	}

	for _, fm := range fms {
		f := NewFile(pkg)
		f.HeaderComment("Code generated by flc. DO NOT EDIT.")
		generated := false
		for _, g := range generators {
			if g.GenerateFormula(f, fm) {
				generated = true
			}
		}
		if generated {
			files[fm.FileName] = f
		}
	}

	for _, g := range generators {
		g.GenerateAdditional(file, pkg, fms)
	}

	return files
}

// Write saves the files into dir, which is created if missing.
func Write(dir string, files map[string]*File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(files)) {
		path := filepath.Join(dir, name+".go")
		if err := files[name].Save(path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
