package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ymake-go/ymake/config"
	"github.com/ymake-go/ymake/internal/tui"
	"github.com/ymake-go/ymake/internal/vars"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Parse the makefile and browse the result in a read-only TUI",
	RunE:  runBrowseCmd,
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	runErr := s.run()

	snap := buildSnapshot(s)
	p := tea.NewProgram(tui.NewModel(snap), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return runErr
}

// buildSnapshot flattens one completed session's graph, variables and
// diagnostics into the plain rows internal/tui renders, so the browser
// package never imports graphbuild/vars/stream itself.
func buildSnapshot(s *session) tui.Snapshot {
	var snap tui.Snapshot

	for _, t := range s.graph.Targets() {
		deps := make([]string, 0, len(t.ParentDependencies))
		for dep := range t.ParentDependencies {
			deps = append(deps, dep.Name)
		}
		snap.Targets = append(snap.Targets, tui.TargetRow{
			Name:            t.Name,
			Scope:           t.ScopeKey,
			Recipe:          t.Recipe.String(),
			Dependencies:    deps,
			InferencePseudo: t.InferenceRulePseudoTarget,
		})
	}

	for _, r := range s.graph.InferenceRules() {
		snap.Rules = append(snap.Rules, tui.RuleRow{
			FromDir: r.FromDir, FromExt: r.FromExt,
			ToDir: r.ToDir, ToExt: r.ToExt,
		})
	}

	if engine, ok := s.proc.Vars.(*vars.Engine); ok {
		seen := make(map[string]bool)
		for _, t := range s.graph.Targets() {
			if seen[t.ScopeKey] {
				continue
			}
			seen[t.ScopeKey] = true
			for name, value := range engine.Snapshot(t.ScopeKey) {
				snap.Variables = append(snap.Variables, tui.VariableRow{Scope: t.ScopeKey, Name: name, Value: value})
			}
		}
	}

	for _, d := range s.proc.Diagnostics {
		snap.Diagnostics = append(snap.Diagnostics, tui.DiagnosticRow{
			Severity: strings.ToUpper(d.Severity.String()),
			Target:   d.Target,
			File:     d.File,
			Line:     d.Line,
			Message:  d.Message,
		})
	}

	return snap
}
