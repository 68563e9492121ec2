package expr

import "testing"

func TestSimpleNumericComparison(t *testing.T) {
	ok, err := Evaluate("1 == 1", nil)
	if err != nil || !ok {
		t.Fatalf("got %v, %v, want true, nil", ok, err)
	}

	ok, err = Evaluate("1 == 2", nil)
	if err != nil || ok {
		t.Fatalf("got %v, %v, want false, nil", ok, err)
	}
}

func TestStringComparison(t *testing.T) {
	ok, err := Evaluate(`"debug" == "debug"`, nil)
	if err != nil || !ok {
		t.Fatalf("got %v, %v, want true, nil", ok, err)
	}

	ok, err = Evaluate(`"debug" != "release"`, nil)
	if err != nil || !ok {
		t.Fatalf("got %v, %v, want true, nil", ok, err)
	}
}

func TestStringComparisonRejectsOrdering(t *testing.T) {
	if _, err := Evaluate(`"a" < "b"`, nil); err == nil {
		t.Fatal("expected ordering comparison on strings to be a syntax error")
	}
}

func TestMixedStringNumericIsSyntaxError(t *testing.T) {
	if _, err := Evaluate(`"1" == 1`, nil); err == nil {
		t.Fatal("expected mixed string/numeric comparison to be a syntax error")
	}
}

// TestLeftToRightNoPrecedence asserts that && and || are evaluated
// strictly left to right with no precedence between them, unlike most
// C-family languages.
func TestLeftToRightNoPrecedence(t *testing.T) {
	// (0 || 1) && 0 = 0, left to right, vs C precedence 0 || (1 && 0) = 0.
	// Pick an expression where the two groupings diverge instead:
	// 1 || 0 && 0 -> left-to-right: (1 || 0) && 0 = false
	// standard precedence: 1 || (0 && 0) = true
	ok, err := Evaluate("1 == 1 || 0 == 1 && 0 == 1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected left-to-right evaluation (1||0)&&0 = false, not standard-precedence true")
	}
}

func TestAndShortPath(t *testing.T) {
	ok, err := Evaluate("1 == 1 && 2 == 2", nil)
	if err != nil || !ok {
		t.Fatalf("got %v, %v, want true, nil", ok, err)
	}
}

func TestSubCommandOperand(t *testing.T) {
	run := func(cmdText string) (int, error) {
		if cmdText == "exit 0" {
			return 0, nil
		}
		return 1, nil
	}
	ok, err := Evaluate("[exit 0] == 0", run)
	if err != nil || !ok {
		t.Fatalf("got %v, %v, want true, nil", ok, err)
	}
}

func TestEmptySideIsZero(t *testing.T) {
	// By the time expr sees a line, variable expansion has already run
	// (spec §4.12), so an undefined variable shows up here as an empty
	// operand rather than literal $(...) text.
	ok, err := Evaluate(" == 0", nil)
	if err != nil || !ok {
		t.Fatalf("got %v, %v, want true, nil", ok, err)
	}
}

func TestNoOperatorIsSyntaxError(t *testing.T) {
	if _, err := EvaluateSingle("1", nil); err == nil {
		t.Fatal("expected missing comparison operator to be a syntax error")
	}
}

func TestBracketsSkippedWhenSplittingBoolOps(t *testing.T) {
	run := func(cmdText string) (int, error) { return 0, nil }
	// The sub-command text itself must not be mistaken for && or ||
	// splitting, even if it superficially resembles logical operators.
	ok, err := Evaluate(`[echo "a && b"] == 0`, run)
	if err != nil || !ok {
		t.Fatalf("got %v, %v, want true, nil", ok, err)
	}
}
