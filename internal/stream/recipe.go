package stream

import (
	"strings"

	"github.com/ymake-go/ymake/internal/classify"
	"github.com/ymake-go/ymake/internal/graphbuild"
	"github.com/ymake-go/ymake/internal/inlinefile"
	"github.com/ymake-go/ymake/internal/lint"
)

// handleRecipe implements spec §4.10: for a non-inference target,
// expandedLine has already been variable-expanded by the caller; for an
// inference-rule pseudo-target it is the raw, un-expanded text. Either
// way, this appends it to the open target's recipe and watches for an
// inline-file marker.
func (p *Processor) handleRecipe(expandedLine string) error {
	target := p.openTarget
	if target == nil {
		// A recipe line with no owning rule (one following a discarded
		// .SUFFIXES line) is silently dropped. Lines after a rule line
		// discarded by conditional gating never get here: that skip path
		// resets ParserState to Default, so they classify as parse errors
		// (spec §4.5 "Rule-discard interaction").
		return nil
	}

	recipeLine, opened, err := p.Inline.DetectAndOpen(expandedLine)
	if err != nil {
		p.errorf("%s(%d) %v", p.fileName, p.lineNumber, err)
		return nil
	}

	target.AppendRecipe(recipeLine)

	if opened {
		p.MC.Active.Value().ParserState = classify.InlineFileActive
	}

	p.lintRecipeSoFar(target)

	return nil
}

// lintRecipeSoFar implements spec (ADDED) §4.13: after a recipe line is
// committed, the accumulated recipe is checked against the lint rule set
// and surfaced as advisory diagnostics. It never sets ErrorTermination.
func (p *Processor) lintRecipeSoFar(target *graphbuild.Target) {
	if p.Linter == nil {
		return
	}
	lines := strings.Split(strings.TrimRight(target.Recipe.String(), "\n"), "\n")
	seen, ok := p.reportedLint[target]
	if !ok {
		seen = make(map[string]bool)
		p.reportedLint[target] = seen
	}
	for _, m := range p.Linter.Check(target.Name, lines) {
		if seen[m.RuleID] {
			continue
		}
		seen[m.RuleID] = true
		p.AddDiagnostic(m.Severity, target.Name, lint.FormatMatch(m))
	}
}

// handleInlineFileLine implements spec §4.11.
func (p *Processor) handleInlineFileLine(trimmed, raw string) error {
	if inlinefile.IsCloseLine(trimmed) {
		if err := p.Inline.Close(); err != nil {
			p.errorf("%s(%d) %v", p.fileName, p.lineNumber, err)
			return nil
		}
		p.MC.Active.Value().ParserState = classify.RecipeActive
		return nil
	}
	if err := p.Inline.WriteLine(strings.TrimRight(raw, "\r\n")); err != nil {
		p.errorf("%s(%d) %v", p.fileName, p.lineNumber, err)
	}
	return nil
}
