// Package graph renders the target/inference-rule graph built by
// internal/graphbuild as an indented ASCII tree (SPEC_FULL §4.14).
// This is only ever a snapshot of preprocessing output: topological
// order, critical path and parallel-opportunity analysis belong to the
// out-of-scope dependency walker (SPEC_FULL §1).
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ymake-go/ymake/internal/graphbuild"
)

// Render walks every target with no dependents in g and prints an
// indented ASCII tree of its prerequisites. A target reachable from more
// than one root is rendered in full once and referenced as "(see above)"
// afterward; a prerequisite already on the current path is reported as
// "(cycle)" instead of recursing forever (spec §9: the builder detects
// self-cycles but does not reject them).
func Render(g *graphbuild.Graph) string {
	targets := g.Targets()
	if len(targets) == 0 {
		return "No targets found.\n"
	}

	hasDependent := make(map[*graphbuild.Target]bool, len(targets))
	for _, t := range targets {
		for dep := range t.ParentDependencies {
			hasDependent[dep] = true
		}
	}

	roots := make([]*graphbuild.Target, 0, len(targets))
	for _, t := range targets {
		if !hasDependent[t] {
			roots = append(roots, t)
		}
	}
	if len(roots) == 0 {
		// Every target has a dependent: a pure cycle with no external
		// entry point. Render from all of them rather than printing
		// nothing.
		roots = targets
	}

	var b strings.Builder
	visited := make(map[*graphbuild.Target]bool)
	for i, root := range roots {
		if i > 0 {
			b.WriteByte('\n')
		}
		renderNode(&b, root, "", true, visited, make(map[*graphbuild.Target]bool))
	}
	return b.String()
}

func renderNode(b *strings.Builder, t *graphbuild.Target, prefix string, isLast bool, visited, onPath map[*graphbuild.Target]bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	label := nodeLabel(t)

	switch {
	case onPath[t]:
		fmt.Fprintf(b, "%s%s%s (cycle)\n", prefix, connector, label)
		return
	case visited[t]:
		fmt.Fprintf(b, "%s%s%s (see above)\n", prefix, connector, label)
		return
	}

	visited[t] = true
	onPath[t] = true
	defer delete(onPath, t)

	fmt.Fprintf(b, "%s%s%s\n", prefix, connector, label)

	extension := "│   "
	if isLast {
		extension = "    "
	}

	deps := sortedDependencies(t)
	for i, dep := range deps {
		renderNode(b, dep, prefix+extension, i == len(deps)-1, visited, onPath)
	}
}

func nodeLabel(t *graphbuild.Target) string {
	name := t.Name
	if t.InferenceRulePseudoTarget {
		name += " (inference rule)"
	}
	if t.ScopeKey == "" {
		return name
	}
	return t.ScopeKey + ": " + name
}

func sortedDependencies(t *graphbuild.Target) []*graphbuild.Target {
	deps := make([]*graphbuild.Target, 0, len(t.ParentDependencies))
	for dep := range t.ParentDependencies {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool {
		if deps[i].ScopeKey != deps[j].ScopeKey {
			return deps[i].ScopeKey < deps[j].ScopeKey
		}
		return deps[i].Name < deps[j].Name
	})
	return deps
}
