// Package config loads ymake's app-level settings: Viper reads one
// config file (the project file, or else the global file) and
// environment variables, while cobra
// flags are bound on top so a single merged Config is available to
// every cmd/ymake subcommand.
package config

import (
	"github.com/spf13/viper"

	"github.com/ymake-go/ymake/internal/lint"
)

// Config is the fully merged app configuration (SPEC_FULL §6).
type Config struct {
	MakefilePath            string
	WarnOnUndefinedVariable bool
	CacheDir                string
	TempDir                 string
	CachePruneMaxFiles      int
	CachePruneKeepDays      int
	Lint                    lint.Config
}

// Load reads defaults, one config file (./.ymake.yaml if present,
// otherwise ~/.ymake.yaml; the two are never both read), YMAKE_-prefixed
// environment variables, and any bound cobra flags, in that increasing
// precedence order, and returns the merged result.
func Load() (*Config, error) {
	viper.SetDefault("makefile", "Makefile")
	viper.SetDefault("warn_on_undefined_variable", false)
	viper.SetDefault("cache_dir", "")
	viper.SetDefault("temp_dir", "")
	viper.SetDefault("cache_prune_max_files", 0)
	viper.SetDefault("cache_prune_keep_days", 0)
	viper.SetDefault("lint.enabled", true)
	viper.SetDefault("lint.severity_floor", "info")
	viper.SetDefault("lint.enabled_rules", []string{})
	viper.SetDefault("lint.exclude_targets", []string{})

	viper.SetConfigName(".ymake")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	viper.SetEnvPrefix("YMAKE")
	viper.AutomaticEnv()

	// Ignored: it is normal for no config file to exist.
	_ = viper.ReadInConfig()

	return &Config{
		MakefilePath:            viper.GetString("makefile"),
		WarnOnUndefinedVariable: viper.GetBool("warn_on_undefined_variable"),
		CacheDir:                viper.GetString("cache_dir"),
		TempDir:                 viper.GetString("temp_dir"),
		CachePruneMaxFiles:      viper.GetInt("cache_prune_max_files"),
		CachePruneKeepDays:      viper.GetInt("cache_prune_keep_days"),
		Lint:                    readLintConfig(viper.GetViper()),
	}, nil
}

func readLintConfig(v *viper.Viper) lint.Config {
	cfg := lint.DefaultConfig()
	cfg.Enabled = v.GetBool("lint.enabled")
	cfg.EnabledRules = v.GetStringSlice("lint.enabled_rules")
	cfg.ExcludeTargets = v.GetStringSlice("lint.exclude_targets")
	cfg.SeverityFloor = parseSeverity(v.GetString("lint.severity_floor"))
	return cfg
}

func parseSeverity(s string) lint.Severity {
	switch s {
	case "warning":
		return lint.SeverityWarning
	case "critical":
		return lint.SeverityCritical
	default:
		return lint.SeverityInfo
	}
}
