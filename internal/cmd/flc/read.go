package main

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/damedic/formula-toolbox-go/internal/generate/model"
)

// readBundles reads definition files from a JSON file, a directory of JSON
// files or a ZIP archive of JSON files.
func readBundles(path string) ([]model.Bundle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	switch {
	case info.IsDir():
		return readBundlesFromFS(os.DirFS(path))
	case strings.EqualFold(filepath.Ext(path), ".zip"):
		return readBundlesFromZIP(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		b, err := readBundle(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []model.Bundle{b}, nil
	}
}

func readBundlesFromZIP(path string) ([]model.Bundle, error) {
	log.Println("opening zip archive...")
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	return readBundlesFromFS(archive)
}

func readBundlesFromFS(fsys fs.FS) ([]model.Bundle, error) {
	var bundles []model.Bundle
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "__MACOSX/") {
			return nil
		}

		f, err := fsys.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()

		log.Printf("reading %s...", name)
		b, err := readBundle(f)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		bundles = append(bundles, b)
		return nil
	})
	return bundles, err
}

func readBundle(r io.Reader) (model.Bundle, error) {
	var b model.Bundle
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return model.Bundle{}, err
	}
	return b, nil
}
