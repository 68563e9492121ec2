// Package classify maps a single logical line to a LineType, sensitive
// to the NMAKE dialect's parser-state rules (spec §4.1): recipe
// continuation and inline-file bodies both depend on the scope's
// current ParserState, not just the line's own text.
package classify

import (
	"strings"

	"github.com/ymake-go/ymake/internal/lex"
)

// ParserState is the subset of ScopeContext that affects classification.
type ParserState int

const (
	Default ParserState = iota
	RecipeActive
	InlineFileActive
)

// LineType is the classifier's verdict for one logical line.
type LineType int

const (
	Empty LineType = iota
	Preprocessor
	SetVariable
	Rule
	Recipe
	InlineFile
	DebugBreak
	Error
)

func (t LineType) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Preprocessor:
		return "Preprocessor"
	case SetVariable:
		return "SetVariable"
	case Rule:
		return "Rule"
	case Recipe:
		return "Recipe"
	case InlineFile:
		return "InlineFile"
	case DebugBreak:
		return "DebugBreak"
	default:
		return "Error"
	}
}

// debugBreakLiteral is the literal line classify recognizes as DebugBreak
// before falling through to Error.
const debugBreakLiteral = "DebugBreak"

// Classify implements spec §4.1. line is the un-trimmed logical line (after
// joining and comment truncation) so that leading-whitespace recipe
// detection still sees the original indentation.
func Classify(line string, state ParserState) LineType {
	trimmed := lex.TrimSeparators(line)
	if trimmed == "" {
		return Empty
	}

	if trimmed[0] == '!' {
		return Preprocessor
	}

	if state == RecipeActive && len(line) > 0 && isLeadingWhitespace(line[0]) {
		return Recipe
	}

	if state == InlineFileActive {
		return InlineFile
	}

	if eq, colon := topLevelEqAndColon(line); eq >= 0 || colon >= 0 {
		switch {
		case eq >= 0 && (colon < 0 || eq < colon):
			return SetVariable
		case colon >= 0:
			return Rule
		}
	}

	if trimmed == debugBreakLiteral {
		return DebugBreak
	}

	return Error
}

func isLeadingWhitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

// topLevelEqAndColon returns the index of the leftmost top-level '=' and
// ':' in line, tracking '[' ']' bracket depth as spec §4.1 rule 5
// requires. A character that doesn't occur returns -1 for that slot.
func topLevelEqAndColon(line string) (eqIdx, colonIdx int) {
	eqIdx, colonIdx = -1, -1
	depth := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth == 0 && eqIdx < 0 {
				eqIdx = i
			}
		case ':':
			if depth == 0 && colonIdx < 0 {
				colonIdx = i
			}
		}
	}
	return eqIdx, colonIdx
}

// IsRecipeTerminator reports whether an Empty line, seen while parserState
// is RecipeActive, reverts the state to Default (spec §4.12 step 9).
func IsRecipeTerminator(t LineType, state ParserState) bool {
	return t == Empty && state == RecipeActive
}

// TrimForDispatch mirrors the outer loop's step 6: trim outer whitespace
// once classification (which needed the untrimmed text) is done.
func TrimForDispatch(line string) string {
	return strings.TrimSpace(line)
}
