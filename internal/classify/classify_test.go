package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		state ParserState
		want  LineType
	}{
		{"empty", "   ", Default, Empty},
		{"preprocessor", "!IF 1 == 1", Default, Preprocessor},
		{"recipe continues on tab", "\tcc -c a.c", RecipeActive, Recipe},
		{"recipe terminates on non-whitespace start", "A: a.c", RecipeActive, Rule},
		{"inline file body", "foo.o", InlineFileActive, InlineFile},
		{"set variable", "X=1", Default, SetVariable},
		{"rule", "A: a.c", Default, Rule},
		{"bracket colon does not end rule early", "A[dirs]: a.c", Default, Rule},
		{"equals before colon wins", "A = B: C", Default, SetVariable},
		{"debug break", "DebugBreak", Default, DebugBreak},
		{"unclassifiable", "this is nonsense", Default, Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line, tt.state); got != tt.want {
				t.Errorf("Classify(%q, %v) = %v, want %v", tt.line, tt.state, got, tt.want)
			}
		})
	}
}

func TestClassifyPure(t *testing.T) {
	// Invariant 1 from spec §8: classify is pure given (line, parserState).
	for i := 0; i < 3; i++ {
		if got := Classify("A: a.c", Default); got != Rule {
			t.Fatalf("iteration %d: Classify returned %v, want Rule", i, got)
		}
	}
}

func TestIsRecipeTerminator(t *testing.T) {
	if !IsRecipeTerminator(Empty, RecipeActive) {
		t.Error("expected empty line during RecipeActive to terminate the recipe")
	}
	if IsRecipeTerminator(Empty, Default) {
		t.Error("empty line outside RecipeActive should not report termination")
	}
}
