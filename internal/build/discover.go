package build

import (
	"io/fs"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mdpages/internal/config"
	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
)

// discover walks root and returns every Markdown document in lexical order.
// The output root, if nested inside root, and the skipped document are left out.
func discover(root, outputRoot, skip string) ([]string, error) {
	outputRoot = filepath.Clean(outputRoot)
	skip = filepath.Clean(skip)

	var docs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && filepath.Clean(path) == outputRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.EqualFold(filepath.Ext(path), config.MarkupExtension) {
			return nil
		}
		if filepath.Clean(path) == skip {
			return nil
		}
		docs = append(docs, path)
		return nil
	})
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "discover documents").
			WithContext("path", root).
			Build()
	}
	return docs, nil
}
