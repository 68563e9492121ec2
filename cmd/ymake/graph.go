package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ymake-go/ymake/config"
	"github.com/ymake-go/ymake/internal/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Parse the makefile and render the target/inference-rule graph as an ASCII tree",
	RunE:  runGraphCmd,
}

func runGraphCmd(cmd *cobra.Command, args []string) error {
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

	fmt.Fprint(os.Stdout, graph.Render(s.graph))

	if s.mc.ErrorTermination {
		os.Exit(1)
	}
	return nil
}
