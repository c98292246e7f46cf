// Command flc compiles formula definition files into a Go package.
//
//	flc -in formulas.json -out ./tariff -pkg tariff
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/damedic/formula-toolbox-go/fl"
	"github.com/damedic/formula-toolbox-go/internal/generate"
	"github.com/damedic/formula-toolbox-go/internal/generate/ir"
	"github.com/damedic/formula-toolbox-go/internal/generate/model"
)

func main() {
	var (
		in      = flag.String("in", "", "definition file, directory or ZIP archive")
		out     = flag.String("out", ".", "output directory")
		pkg     = flag.String("pkg", "", "package name, defaults to the package of the definitions")
		check   = flag.Bool("check", false, "only compile, do not write files")
		verbose = flag.Bool("v", false, "log compiler debug output")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	bundles, err := readBundles(*in)
	if err != nil {
		log.Fatal(err)
	}

	packageName := *pkg
	if packageName == "" {
		packageName = packageOf(bundles)
	}
	if packageName == "" {
		log.Fatal("no package name given and none declared in the definitions")
	}

	log.Println("parsing definitions...")
	formulas, err := ir.Parse(bundles...)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("compiling %d formulas...", len(formulas))
	compiled, err := generate.Compile(formulas, fl.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	for _, fm := range compiled {
		for _, m := range fm.Messages {
			log.Printf("%s: %s %s", fm.Name, m.Code, m.Text(nil))
		}
	}

	if *check {
		return
	}

	log.Println("generating code...")
	files := generate.Generate(packageName, compiled, generate.DefaultGenerators()...)
	if err := generate.Write(*out, files); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d files to %s", len(files), *out)
}

// packageOf returns the package declared by the bundles, empty if none or
// several differing ones are declared.
func packageOf(bundles []model.Bundle) string {
	pkg := ""
	for _, b := range bundles {
		if b.Package == "" {
			continue
		}
		if pkg != "" && pkg != b.Package {
			return ""
		}
		pkg = b.Package
	}
	return pkg
}
