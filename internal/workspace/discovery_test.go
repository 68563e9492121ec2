package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindMakefilesInParents(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "Makefile"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a", "makefile"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindMakefilesInParents(sub, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 makefiles, got %d: %v", len(found), found)
	}
}

func TestIsMakefile(t *testing.T) {
	cases := map[string]bool{
		"Makefile":     true,
		"makefile":     true,
		"GNUmakefile":  true,
		"common.mk":    true,
		"rules.mak":    true,
		"Makefile.inc": true,
		"README.md":    false,
		"main.go":      false,
	}
	for name, want := range cases {
		if got := IsMakefile(name); got != want {
			t.Errorf("IsMakefile(%q) = %v, want %v", name, got, want)
		}
	}
}
