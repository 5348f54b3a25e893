package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var documentExts = []string{".json", ".yaml", ".yml"}

// IsDocument reports whether path has a JSON or YAML extension.
func IsDocument(path string) bool {
	return slices.Contains(documentExts, strings.ToLower(filepath.Ext(path)))
}

// DocumentFiles expands paths into a list of files. Files are kept as given,
// whatever their extension. Directories are walked recursively for JSON and
// YAML files, skipping hidden directories, and contribute their files in
// lexical order. Duplicates are dropped.
func DocumentFiles(paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(p))
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsDocument(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		slices.Sort(found)
		for _, f := range found {
			add(f)
		}
	}
	return out, nil
}
