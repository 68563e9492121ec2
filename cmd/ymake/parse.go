package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ymake-go/ymake/config"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse the makefile and report the targets, rules and diagnostics found",
	RunE:  runParseCmd,
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}

	if err := s.run(); err != nil {
		return err
	}
	s.printDiagnostics()

	targets := s.graph.Targets()
	rules := s.graph.InferenceRules()
	fmt.Fprintf(os.Stdout, "%s: %d target(s), %d inference rule(s), %d diagnostic(s)\n",
		s.makefile, len(targets), len(rules), len(s.proc.Diagnostics))

	if s.mc.ErrorTermination {
		os.Exit(1)
	}
	return nil
}
