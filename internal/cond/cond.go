// Package cond implements the conditional-scope state machine (spec §4.5):
// the 4-tuple (currentNestingLevel, activeNestingLevel, executionOccurred,
// executionEnabled) that decides whether a line is live or is being
// minimally tracked inside a skipped !IF/!ELSE/!ENDIF branch.
package cond

import (
	"github.com/ymake-go/ymake/internal/classify"
	"github.com/ymake-go/ymake/internal/directive"
)

// State is one scope's conditional nesting state. The zero State is not
// ready to use; call New.
type State struct {
	currentNestingLevel int
	activeNestingLevel  int
	executionOccurred   bool
	executionEnabled    bool

	// ruleExcludedNestingLevel, when >= 0, records that a rule line (and
	// any recipe it would have owned) was discarded because its
	// introducing rule line was itself in a skipped branch (spec §4.5
	// "Rule-discard interaction").
	ruleExcludedNestingLevel int
}

// New returns a State ready to process the top of a file: execution
// enabled, nothing nested yet.
func New() *State {
	return &State{executionEnabled: true, ruleExcludedNestingLevel: -1}
}

// CurrentNestingLevel and ActiveNestingLevel expose the invariant spec §8
// property 2 requires: current >= active >= 0 at all times.
func (s *State) CurrentNestingLevel() int { return s.currentNestingLevel }
func (s *State) ActiveNestingLevel() int  { return s.activeNestingLevel }

// ExecutionEnabled reports whether lines should currently execute.
func (s *State) ExecutionEnabled() bool { return s.executionEnabled }

// ExecutionOccurred reports whether some branch at the active level has
// already run, so a directive handler can skip evaluating a further
// !ELSEIF's condition (and its possible [cmd] side effects) once a prior
// branch has already matched.
func (s *State) ExecutionOccurred() bool { return s.executionOccurred }

// RuleExcluded reports whether a rule was discarded at a nesting level
// that no !ENDIF has closed yet (spec §4.5).
func (s *State) RuleExcluded() bool { return s.ruleExcludedNestingLevel >= 0 }

// MarkRuleExcluded records that a rule line, and any recipe it would have
// started, was abandoned because it was seen in a skipped branch.
func (s *State) MarkRuleExcluded() {
	s.ruleExcludedNestingLevel = s.currentNestingLevel
}

func (s *State) clearRuleExcludedAtOrBelow(level int) {
	if s.ruleExcludedNestingLevel >= level {
		s.ruleExcludedNestingLevel = -1
	}
}

func isElseFamily(k directive.Kind) bool {
	switch k {
	case directive.Else, directive.ElseIf, directive.ElseIfDef, directive.ElseIfNDef:
		return true
	default:
		return false
	}
}

// ShouldExecute implements spec §4.5's shouldExecute(line, type). kind is
// meaningless (and ignored) when lineType != classify.Preprocessor.
func (s *State) ShouldExecute(lineType classify.LineType, kind directive.Kind) bool {
	if s.currentNestingLevel > s.activeNestingLevel {
		return false
	}
	if s.executionOccurred && !s.executionEnabled && !isElseFamily(kind) {
		return false
	}
	if lineType != classify.Preprocessor {
		return s.executionEnabled
	}
	switch kind {
	case directive.EndIf:
		return false
	case directive.Else, directive.ElseIf, directive.ElseIfDef, directive.ElseIfNDef:
		return !s.executionEnabled
	default:
		return s.executionEnabled
	}
}

// MinimalTrack implements spec §4.5's minimalTrack(line), used when
// ShouldExecute returned false: only !IF*, !ENDIF, and !ELSE* affect
// state. It reports false when an !ENDIF has no matching !IF* (spec §8
// property 3: unbalanced constructs must set errorTermination).
func (s *State) MinimalTrack(kind directive.Kind) bool {
	switch kind {
	case directive.If, directive.IfDef, directive.IfNDef:
		s.currentNestingLevel++
	case directive.EndIf:
		if s.currentNestingLevel == 0 {
			return false
		}
		s.currentNestingLevel--
		if s.activeNestingLevel > s.currentNestingLevel {
			s.activeNestingLevel = s.currentNestingLevel
			s.executionEnabled = true
		}
		s.clearRuleExcludedAtOrBelow(s.currentNestingLevel + 1)
	case directive.Else, directive.ElseIf, directive.ElseIfDef, directive.ElseIfNDef:
		if s.currentNestingLevel == s.activeNestingLevel && s.executionEnabled {
			s.executionEnabled = false
		}
	}
	return true
}

// BeginNestedTrue implements spec §4.5's beginNestedTrue(): both levels
// advance, execution becomes enabled, and the branch is recorded as having
// run.
func (s *State) BeginNestedTrue() {
	s.currentNestingLevel++
	s.activeNestingLevel++
	s.executionEnabled = true
	s.executionOccurred = true
}

// BeginNestedFalse implements spec §4.5's beginNestedFalse(): both levels
// advance, but execution and occurred are cleared so a later !ELSE[IF] at
// this level can still run.
func (s *State) BeginNestedFalse() {
	s.currentNestingLevel++
	s.activeNestingLevel++
	s.executionEnabled = false
	s.executionOccurred = false
}

// EnableElseBranch implements the table in spec §4.8 for !ELSE / !ELSEIF /
// !ELSEIFDEF / !ELSEIFNDEF: it enables execution at the active level only
// if no earlier branch at this level has already matched.
func (s *State) EnableElseBranch() {
	if !s.executionOccurred {
		s.executionEnabled = true
		s.executionOccurred = true
	} else {
		s.executionEnabled = false
	}
}

// Balanced reports whether every opening !IF* has a matching !ENDIF (spec
// §8 property 3); called once at end of file.
func (s *State) Balanced() bool {
	return s.currentNestingLevel == 0
}
