// Package workspace locates a makefile to run when the caller did not
// name one explicitly, by walking parent directories for a recognized
// makefile name.
package workspace

import (
	"os"
	"path/filepath"
	"strings"
)

// FindMakefilesInParents searches upward from startDir, returning every
// makefile found in each directory visited, closest first. cmd/ymake uses
// this to locate a makefile when none is given on the command line.
func FindMakefilesInParents(startDir string, maxLevels int) ([]string, error) {
	var results []string
	currentDir := startDir

	for level := 0; level < maxLevels; level++ {
		for _, name := range []string{"Makefile", "makefile"} {
			candidate := filepath.Join(currentDir, name)
			if _, err := os.Stat(candidate); err == nil {
				abs, err := filepath.Abs(candidate)
				if err != nil {
					abs = candidate
				}
				results = append(results, abs)
			}
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	return results, nil
}

// IsMakefile reports whether path names a file nmake would treat as a
// makefile: the conventional names, any name starting with "Makefile" or
// "makefile", or a ".mk"/".mak" extension.
func IsMakefile(path string) bool {
	name := filepath.Base(path)

	if name == "Makefile" || name == "makefile" || name == "GNUmakefile" {
		return true
	}
	if strings.HasPrefix(name, "Makefile") || strings.HasPrefix(name, "makefile") {
		return true
	}

	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".mk" || ext == ".mak"
}
