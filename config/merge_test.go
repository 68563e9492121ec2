package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeYAML is a test helper that writes content to a YAML file.
func writeYAML(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestMergeStringSliceUnion(t *testing.T) {
	tests := []struct {
		name     string
		a        []string
		b        []string
		expected []string
	}{
		{
			name:     "both non-empty, no overlap",
			a:        []string{"rm-rf-root", "git-force-push"},
			b:        []string{"disk-wipe", "chmod-777"},
			expected: []string{"rm-rf-root", "git-force-push", "disk-wipe", "chmod-777"},
		},
		{
			name:     "overlapping entries deduplicated",
			a:        []string{"rm-rf-root", "git-force-push"},
			b:        []string{"git-force-push", "disk-wipe"},
			expected: []string{"rm-rf-root", "git-force-push", "disk-wipe"},
		},
		{
			name:     "first slice empty",
			a:        []string{},
			b:        []string{"disk-wipe"},
			expected: []string{"disk-wipe"},
		},
		{
			name:     "both nil",
			a:        nil,
			b:        nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeStringSliceUnion(tt.a, tt.b)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("mergeStringSliceUnion(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestReadConfigNilViperReturnsDefaults(t *testing.T) {
	cfg, set := readConfig(nil)
	if cfg.MakefilePath != "" {
		t.Errorf("expected empty makefile path, got %q", cfg.MakefilePath)
	}
	if set != nil {
		t.Errorf("expected nil fieldSet for a missing file, got %v", set)
	}
}

func TestMergeConfigsProjectOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "global.yaml", `
makefile: GlobalMakefile
warn_on_undefined_variable: true
lint:
  enabled_rules: ["rm-rf-root"]
`)
	writeYAML(t, dir, "project.yaml", `
makefile: ProjectMakefile
lint:
  enabled_rules: ["chmod-777"]
`)

	global, globalSet := readConfig(loadViperFromFile(filepath.Join(dir, "global.yaml")))
	project, projectSet := readConfig(loadViperFromFile(filepath.Join(dir, "project.yaml")))
	result := mergeConfigs(global, project, globalSet, projectSet)

	if result.MakefilePath != "ProjectMakefile" {
		t.Errorf("expected project makefile to win, got %q", result.MakefilePath)
	}
	if !result.WarnOnUndefinedVariable {
		t.Errorf("expected global-only scalar to carry through, got false")
	}
	want := []string{"rm-rf-root", "chmod-777"}
	if !reflect.DeepEqual(result.Lint.EnabledRules, want) {
		t.Errorf("expected lint.enabled_rules union %v, got %v", want, result.Lint.EnabledRules)
	}
}

func TestLoadMergedWithNoFilesReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	prev, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })

	cfg := LoadMerged()
	if cfg.MakefilePath != "" {
		t.Errorf("expected no makefile override without a config file, got %q", cfg.MakefilePath)
	}
}
