package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ymake-go/ymake/version"
)

var rootCmd = &cobra.Command{
	Use:     "ymake",
	Short:   "NMAKE-dialect makefile preprocessor and graph builder",
	Long:    `ymake parses an NMAKE-compatible makefile, evaluates its preprocessor directives, and builds the target/inference-rule graph, without executing any recipe.`,
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "path to the makefile (default: discovered Makefile)")
	rootCmd.PersistentFlags().Bool("warn-undefined", false, "warn when an undefined variable is referenced")
	rootCmd.PersistentFlags().String("cache-dir", "", "directory for the sub-command result cache sidecar")
	rootCmd.PersistentFlags().String("temp-dir", "", "directory for inline-file temp files")
	rootCmd.PersistentFlags().Int("cache-prune-max-files", 0, "keep only the N most recently used .pru cache sidecars (0 disables)")
	rootCmd.PersistentFlags().Int("cache-prune-keep-days", 0, "delete .pru cache sidecars older than N days (0 disables)")

	bind := func(key, flag string) {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "ymake: bind flag %s: %v\n", flag, err)
			os.Exit(1)
		}
	}
	bind("makefile", "file")
	bind("warn_on_undefined_variable", "warn-undefined")
	bind("cache_dir", "cache-dir")
	bind("temp_dir", "temp-dir")
	bind("cache_prune_max_files", "cache-prune-max-files")
	bind("cache_prune_keep_days", "cache-prune-keep-days")

	rootCmd.AddCommand(parseCmd, graphCmd, browseCmd, watchCmd)
}
