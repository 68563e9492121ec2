package stream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ymake-go/ymake/internal/classify"
	"github.com/ymake-go/ymake/internal/contracts"
	"github.com/ymake-go/ymake/internal/directive"
	"github.com/ymake-go/ymake/internal/expr"
	"github.com/ymake-go/ymake/internal/graphbuild"
	"github.com/ymake-go/ymake/internal/lint"
)

// processLogicalLine implements spec §4.12 steps 5-12 for one already
// joined, comment-truncated logical line.
func (p *Processor) processLogicalLine(rawLine string) error {
	active := p.MC.Active.Value()
	lineType := classify.Classify(rawLine, active.ParserState)

	var kind directive.Kind
	if lineType == classify.Preprocessor {
		kind, _ = directive.Recognize(rawLine)
	}

	if !active.Conditional.ShouldExecute(lineType, kind) {
		if lineType == classify.Preprocessor {
			if !active.Conditional.MinimalTrack(kind) {
				p.errorf("%s(%d) unmatched !ENDIF", p.fileName, p.lineNumber)
			}
		}
		if lineType == classify.Rule {
			active.Conditional.MarkRuleExcluded()
			active.ParserState = classify.Default
			p.openTarget = nil
		}
		return nil
	}

	if lineType == classify.Error {
		p.errorf("%s(%d) Parse error: %s", p.fileName, p.lineNumber, strings.TrimSpace(rawLine))
		return nil
	}

	// Step 9: state transitions driven by the line itself.
	switch {
	case lineType == classify.Empty && active.ParserState == classify.InlineFileActive:
		lineType = classify.InlineFile
	case lineType == classify.Empty && active.ParserState == classify.RecipeActive:
		active.ParserState = classify.Default
		return nil
	}

	trimmed := classify.TrimForDispatch(rawLine)

	var expanded string
	skipExpansion := lineType == classify.Recipe && p.currentInferencePseudoTarget() != nil
	if !skipExpansion && lineType != classify.Empty {
		expandedLine, undefined, err := p.Vars.ExpandVariables(active.Key, payloadFor(lineType, rawLine, trimmed))
		if err != nil {
			p.errorf("%s(%d) expansion error: %v", p.fileName, p.lineNumber, err)
			return nil
		}
		if undefined != "" && p.MC.WarnOnUndefinedVariable {
			fmt.Fprintf(p.Stderr, "%s(%d) warning: undefined variable %q\n", p.fileName, p.lineNumber, undefined)
			p.AddDiagnostic(lint.SeverityWarning, "", fmt.Sprintf("undefined variable %q", undefined))
		}
		expanded = expandedLine
	} else {
		expanded = payloadFor(lineType, rawLine, trimmed)
	}

	switch lineType {
	case classify.Empty:
		return nil
	case classify.SetVariable:
		if err := p.Vars.SetVariable(active.Key, expanded, contracts.PrecedenceMakefile); err != nil {
			p.errorf("%s(%d) %v", p.fileName, p.lineNumber, err)
		}
		return nil
	case classify.Preprocessor:
		_, expandedOffset := directive.Recognize(expanded)
		return p.handleDirective(kind, directive.Argument(expanded, expandedOffset))
	case classify.Rule:
		return p.handleRule(expanded)
	case classify.Recipe:
		return p.handleRecipe(expanded)
	case classify.InlineFile:
		return p.handleInlineFileLine(trimmed, rawLine)
	case classify.DebugBreak:
		return nil
	}
	return nil
}

// payloadFor picks which text form (untrimmed vs trimmed) a line type's
// expansion should run over: recipe lines keep their leading indentation,
// everything else is expanded on the trimmed text.
func payloadFor(t classify.LineType, raw, trimmed string) string {
	if t == classify.Recipe {
		return raw
	}
	return trimmed
}

// subCommandRunner adapts the sub-command cache + process runner into the
// expr.SubCommandRunner signature the expression evaluator needs (spec
// §4.4, §4.6, §4.7).
func (p *Processor) subCommandRunner(scopeKey string) expr.SubCommandRunner {
	return func(cmdText string) (int, error) {
		code := p.MC.Cache.RunCached(p.Vars, scopeKey, cmdText, func() int {
			start := time.Now()
			result := p.Runner.RunAndGetExitCode(context.Background(), cmdText, nil)
			p.MC.RecordSubCommandElapsed(time.Since(start))
			return result
		})
		return code, nil
	}
}

func (p *Processor) handleDirective(kind directive.Kind, arg string) error {
	active := p.MC.Active.Value()
	scopeKey := active.Key

	switch kind {
	case directive.If:
		ok, err := expr.Evaluate(arg, p.subCommandRunner(scopeKey))
		if err != nil {
			p.errorf("%s(%d) %v", p.fileName, p.lineNumber, err)
			return nil
		}
		if ok {
			active.Conditional.BeginNestedTrue()
		} else {
			active.Conditional.BeginNestedFalse()
		}
	case directive.IfDef:
		if p.Vars.IsVariableDefined(scopeKey, arg) {
			active.Conditional.BeginNestedTrue()
		} else {
			active.Conditional.BeginNestedFalse()
		}
	case directive.IfNDef:
		if !p.Vars.IsVariableDefined(scopeKey, arg) {
			active.Conditional.BeginNestedTrue()
		} else {
			active.Conditional.BeginNestedFalse()
		}
	case directive.Else:
		active.Conditional.EnableElseBranch()
	case directive.ElseIf:
		if !active.Conditional.ExecutionOccurred() {
			ok, err := expr.Evaluate(arg, p.subCommandRunner(scopeKey))
			if err != nil {
				p.errorf("%s(%d) %v", p.fileName, p.lineNumber, err)
				return nil
			}
			if ok {
				active.Conditional.EnableElseBranch()
			}
		}
	case directive.ElseIfDef:
		if !active.Conditional.ExecutionOccurred() && p.Vars.IsVariableDefined(scopeKey, arg) {
			active.Conditional.EnableElseBranch()
		}
	case directive.ElseIfNDef:
		if !active.Conditional.ExecutionOccurred() && !p.Vars.IsVariableDefined(scopeKey, arg) {
			active.Conditional.EnableElseBranch()
		}
	case directive.EndIf:
		// handled exclusively by MinimalTrack; unreachable here since
		// cond.ShouldExecute(EndIf) is always false.
	case directive.Include:
		return p.handleInclude(arg)
	case directive.Message:
		fmt.Fprintln(p.Stdout, arg)
		p.AddDiagnostic(lint.SeverityInfo, "", arg)
	case directive.ErrorDirective:
		fmt.Fprintln(p.Stderr, arg)
		p.MC.ErrorTermination = true
	case directive.Undef:
		p.Vars.Undef(scopeKey, arg)
	}
	return nil
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// currentInferencePseudoTarget reports the pseudo-target currently
// accumulating a recipe, if the most recently declared rule on the
// active scope was an inference rule (spec §4.10: their recipe text is
// kept un-expanded).
func (p *Processor) currentInferencePseudoTarget() *graphbuild.Target {
	if p.openTarget != nil && p.openTarget.InferenceRulePseudoTarget {
		return p.openTarget
	}
	return nil
}
