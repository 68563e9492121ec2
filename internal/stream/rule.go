package stream

import (
	"fmt"
	"strings"

	"github.com/ymake-go/ymake/internal/classify"
	"github.com/ymake-go/ymake/internal/graphbuild"
)

// handleRule implements the rule-line handler of spec §4.9.
func (p *Processor) handleRule(expandedLine string) error {
	active := p.MC.Active.Value()
	scopeKey := active.Key

	left, right, ok := graphbuild.SplitRuleLine(expandedLine)
	if !ok {
		p.errorf("%s(%d) Parse error: %s", p.fileName, p.lineNumber, expandedLine)
		return nil
	}

	name, opts, err := graphbuild.ParseRuleName(left)
	if err != nil {
		p.errorf("%s(%d) %v", p.fileName, p.lineNumber, err)
		return nil
	}

	if name == ".SUFFIXES" {
		// Discarded: no target is created, and any recipe lines that
		// follow have no owning rule.
		active.ParserState = classify.RecipeActive
		p.openTarget = nil
		return nil
	}

	var target *graphbuild.Target
	isInference := false
	if rule, detected := graphbuild.DetectInferenceRule(name); detected {
		isInference = true
		target = p.Graph.LookupOrCreateTarget(scopeKey, name)
		target.InferenceRulePseudoTarget = true
		target.Recipe.Reset()
		rule.PseudoTarget = target
		p.Graph.AddInferenceRule(rule)
	} else {
		target = p.Graph.LookupOrCreateTarget(scopeKey, name)
	}

	target.ExplicitRecipeFound = true
	p.retainTargetScope(target)

	if !isInference {
		p.dispatchDependencies(target, right, opts)
	}

	active.ParserState = classify.RecipeActive
	p.openTarget = target
	return nil
}

// retainTargetScope implements spec §3's "a target's recipe belongs to
// exactly one scope": it retains the active scope's handle for target,
// releasing whatever scope previously owned it.
func (p *Processor) retainTargetScope(target *graphbuild.Target) {
	if prior, ok := p.targetScopes[target]; ok {
		p.MC.Scopes.Release(prior)
	}
	p.targetScopes[target] = p.MC.Active.Retain()
}

func (p *Processor) dispatchDependencies(target *graphbuild.Target, rhs string, opts graphbuild.Options) {
	tokens := graphbuild.SplitDependencyTokens(rhs)
	scopeKey := p.MC.Active.Value().Key

	for _, tok := range tokens {
		switch {
		case opts.Dirs:
			p.createSubdirectoryDependency(target, tok, opts.TargetName)
		case strings.HasPrefix(tok, "@"):
			p.addFileListDependencies(target, scopeKey, tok[1:])
		default:
			prereq := p.Graph.LookupOrCreateTarget(scopeKey, tok)
			target.AddDependency(prereq)
		}
	}
}

// createSubdirectoryDependency implements spec §4.9's "dirs" token
// handling: activate the subdirectory's scope, parse its makefile if not
// already parsed, then add the named child target as a prerequisite.
func (p *Processor) createSubdirectoryDependency(target *graphbuild.Target, subdirName, childTargetName string) {
	if childTargetName == "" {
		childTargetName = "all"
	}

	subdir := joinScopeDir(p.MC.Active.Value().Key, subdirName)
	previous := p.MC.EnterScope(subdir)

	if !p.parsedMakefiles[subdir] {
		p.parsedMakefiles[subdir] = true
		makefilePath := joinScopeDir(subdir, "Makefile")
		if err := p.ProcessFile(makefilePath); err != nil {
			fmt.Fprintf(p.Stderr, "stream: subdirectory %s: %v\n", subdir, err)
		}
	}

	child := p.Graph.LookupOrCreateTarget(subdir, childTargetName)
	target.AddDependency(child)

	p.MC.RestoreScope(previous)
}

// addFileListDependencies implements spec §4.9's "@file" token handling:
// read the list file line by line, each line (up to an optional '|')
// naming one prerequisite.
func (p *Processor) addFileListDependencies(target *graphbuild.Target, scopeKey, listPath string) {
	lines, err := p.Lists(listPath)
	if err != nil {
		p.errorf("%s(%d) reading file list %q: %v", p.fileName, p.lineNumber, listPath, err)
		return
	}
	for _, name := range graphbuild.FileListPrerequisites(lines) {
		prereq := p.Graph.LookupOrCreateTarget(scopeKey, name)
		target.AddDependency(prereq)
	}
}

func joinScopeDir(base, rel string) string {
	base = strings.TrimRight(base, "/")
	rel = strings.TrimLeft(rel, "/")
	if base == "" {
		return rel
	}
	return base + "/" + rel
}
