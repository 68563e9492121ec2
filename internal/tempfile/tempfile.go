// Package tempfile implements the temp-file contract (spec §6, §4.11):
// inline-file bodies are written to a uniquely named file under a
// directory, then referenced by name from the recipe, then deleted at
// shutdown.
package tempfile

import (
	"fmt"
	"os"

	"github.com/ymake-go/ymake/internal/contracts"
)

// Creator is the default contracts.TempFileCreator.
type Creator struct{}

// NewCreator returns a Creator.
func NewCreator() Creator { return Creator{} }

// CreateTempFile implements contracts.TempFileCreator.
func (Creator) CreateTempFile(dir, prefix string) (contracts.TempFile, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	f, err := os.CreateTemp(dir, prefix+"*.tmp")
	if err != nil {
		return nil, fmt.Errorf("tempfile: create under %s: %w", dir, err)
	}
	return &file{f: f}, nil
}

type file struct {
	f *os.File
}

func (t *file) Name() string { return t.f.Name() }

// WriteLine writes line followed by \r\n in multibyte (UTF-8) encoding, as
// spec §4.11 requires regardless of host line-ending conventions.
func (t *file) WriteLine(line string) error {
	_, err := t.f.WriteString(line + "\r\n")
	return err
}

func (t *file) Close() error { return t.f.Close() }

// Remove deletes the temp file at path, ignoring a not-exist error so
// shutdown cleanup (spec §4.11) is idempotent.
func Remove(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// EnsureDir creates dir (and parents) if it does not already exist, used
// by callers that want a dedicated scratch directory instead of the OS
// default returned by os.TempDir.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
