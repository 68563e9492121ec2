package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ymake-go/ymake/internal/lint"
)

// fieldSet tracks which config keys were explicitly set in a file.
type fieldSet map[string]bool

// loadViperFromFile creates a fresh Viper instance and reads the given
// YAML file. Returns nil if the file does not exist or cannot be read.
func loadViperFromFile(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil
	}

	return v
}

// globalConfigPath returns the path to the global config file (~/.ymake.yaml).
func globalConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homeDir, ".ymake.yaml")
}

// projectConfigPath returns the path to the project config file (./.ymake.yaml).
func projectConfigPath() string {
	return ".ymake.yaml"
}

// mergeStringSliceUnion returns a deduplicated union of two string slices.
func mergeStringSliceUnion(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	return result
}

// readConfig reads the top-level scalar settings from a Viper instance.
// Returns the config and a fieldSet of explicitly set keys.
func readConfig(v *viper.Viper) (*Config, fieldSet) {
	if v == nil {
		return &Config{Lint: lint.DefaultConfig()}, nil
	}

	cfg := &Config{Lint: lint.DefaultConfig()}
	set := make(fieldSet)

	if v.IsSet("makefile") {
		cfg.MakefilePath = v.GetString("makefile")
		set["makefile"] = true
	}
	if v.IsSet("warn_on_undefined_variable") {
		cfg.WarnOnUndefinedVariable = v.GetBool("warn_on_undefined_variable")
		set["warn_on_undefined_variable"] = true
	}
	if v.IsSet("cache_dir") {
		cfg.CacheDir = v.GetString("cache_dir")
		set["cache_dir"] = true
	}
	if v.IsSet("temp_dir") {
		cfg.TempDir = v.GetString("temp_dir")
		set["temp_dir"] = true
	}
	if v.IsSet("cache_prune_max_files") {
		cfg.CachePruneMaxFiles = v.GetInt("cache_prune_max_files")
		set["cache_prune_max_files"] = true
	}
	if v.IsSet("cache_prune_keep_days") {
		cfg.CachePruneKeepDays = v.GetInt("cache_prune_keep_days")
		set["cache_prune_keep_days"] = true
	}

	lintCfg, lintSet := readLintSection(v)
	cfg.Lint = lintCfg
	for k, ok := range lintSet {
		set["lint."+k] = ok
	}

	return cfg, set
}

func readLintSection(v *viper.Viper) (lint.Config, fieldSet) {
	cfg := lint.DefaultConfig()
	set := make(fieldSet)

	if v.IsSet("lint.enabled") {
		cfg.Enabled = v.GetBool("lint.enabled")
		set["enabled"] = true
	}
	if v.IsSet("lint.enabled_rules") {
		cfg.EnabledRules = v.GetStringSlice("lint.enabled_rules")
		set["enabled_rules"] = true
	}
	if v.IsSet("lint.exclude_targets") {
		cfg.ExcludeTargets = v.GetStringSlice("lint.exclude_targets")
		set["exclude_targets"] = true
	}
	if v.IsSet("lint.severity_floor") {
		cfg.SeverityFloor = parseSeverity(v.GetString("lint.severity_floor"))
		set["severity_floor"] = true
	}

	return cfg, set
}

// mergeConfigs merges a global and a project Config. Scalars: project
// overrides global. Slices on the lint section: union, deduplicated.
// Environment variables and flags are not consulted; a field set in
// neither file keeps its built-in default.
func mergeConfigs(global, project *Config, globalSet, projectSet fieldSet) *Config {
	result := &Config{Lint: lint.DefaultConfig()}

	applyString := func(field *string, key string, gVal, pVal string) {
		if projectSet[key] {
			*field = pVal
		} else if globalSet[key] {
			*field = gVal
		}
	}
	applyBool := func(field *bool, key string, gVal, pVal bool) {
		if projectSet[key] {
			*field = pVal
		} else if globalSet[key] {
			*field = gVal
		}
	}
	applyInt := func(field *int, key string, gVal, pVal int) {
		if projectSet[key] {
			*field = pVal
		} else if globalSet[key] {
			*field = gVal
		}
	}

	applyString(&result.MakefilePath, "makefile", global.MakefilePath, project.MakefilePath)
	applyBool(&result.WarnOnUndefinedVariable, "warn_on_undefined_variable", global.WarnOnUndefinedVariable, project.WarnOnUndefinedVariable)
	applyString(&result.CacheDir, "cache_dir", global.CacheDir, project.CacheDir)
	applyString(&result.TempDir, "temp_dir", global.TempDir, project.TempDir)
	applyInt(&result.CachePruneMaxFiles, "cache_prune_max_files", global.CachePruneMaxFiles, project.CachePruneMaxFiles)
	applyInt(&result.CachePruneKeepDays, "cache_prune_keep_days", global.CachePruneKeepDays, project.CachePruneKeepDays)

	applyBool(&result.Lint.Enabled, "lint.enabled", global.Lint.Enabled, project.Lint.Enabled)
	if projectSet["lint.severity_floor"] {
		result.Lint.SeverityFloor = project.Lint.SeverityFloor
	} else if globalSet["lint.severity_floor"] {
		result.Lint.SeverityFloor = global.Lint.SeverityFloor
	}
	result.Lint.EnabledRules = mergeStringSliceUnion(global.Lint.EnabledRules, project.Lint.EnabledRules)
	result.Lint.ExcludeTargets = mergeStringSliceUnion(global.Lint.ExcludeTargets, project.Lint.ExcludeTargets)

	return result
}

// LoadMerged reads the global (~/.ymake.yaml) and project (./.ymake.yaml)
// config files independently and merges them with project taking
// precedence.
func LoadMerged() *Config {
	global, globalSet := readConfig(loadViperFromFile(globalConfigPath()))
	project, projectSet := readConfig(loadViperFromFile(projectConfigPath()))
	return mergeConfigs(global, project, globalSet, projectSet)
}
