package testdata

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/damedic/formula-toolbox-go/internal/generate/model"
)

//go:embed formulas/*.json
var formulas embed.FS

// GetFormulaFiles returns the raw formula definition files keyed by name
// without extension.
func GetFormulaFiles() map[string][]byte {
	files := map[string][]byte{}
	err := fs.WalkDir(formulas, "formulas", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := formulas.ReadFile(p)
		if err != nil {
			return err
		}
		files[strings.TrimSuffix(path.Base(p), ".json")] = data
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	return files
}

// GetFormulaBundle decodes the definition file name.
func GetFormulaBundle(name string) model.Bundle {
	data, ok := GetFormulaFiles()[name]
	if !ok {
		log.Fatalf("no formula file %s", name)
	}
	var b model.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		log.Fatal(err)
	}
	return b
}
