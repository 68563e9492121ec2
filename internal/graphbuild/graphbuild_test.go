package graphbuild

import (
	"reflect"
	"testing"
)

func TestSplitRuleLine(t *testing.T) {
	left, right, ok := SplitRuleLine("A: a.c b.c")
	if !ok || left != "A" || right != " a.c b.c" {
		t.Fatalf("got %q, %q, %v", left, right, ok)
	}
}

func TestSplitRuleLineNoColonIsNotARule(t *testing.T) {
	if _, _, ok := SplitRuleLine("not a rule line"); ok {
		t.Fatal("expected no top-level colon to report ok=false")
	}
}

func TestParseRuleNamePlain(t *testing.T) {
	name, opts, err := ParseRuleName("A")
	if err != nil || name != "A" || opts.Dirs || opts.TargetName != "" {
		t.Fatalf("got %q, %+v, %v", name, opts, err)
	}
}

func TestParseRuleNameDirsOption(t *testing.T) {
	name, opts, err := ParseRuleName("sub[dirs]")
	if err != nil || name != "sub" || !opts.Dirs {
		t.Fatalf("got %q, %+v, %v", name, opts, err)
	}
}

func TestParseRuleNameTargetOption(t *testing.T) {
	name, opts, err := ParseRuleName("sub[dirs,target=all]")
	if err != nil || name != "sub" || !opts.Dirs || opts.TargetName != "all" {
		t.Fatalf("got %q, %+v, %v", name, opts, err)
	}
}

func TestParseRuleNameSuffixesIsIgnored(t *testing.T) {
	name, opts, err := ParseRuleName(".SUFFIXES")
	if err != nil || name != ".SUFFIXES" || opts.Dirs || opts.TargetName != "" {
		t.Fatalf("got %q, %+v, %v", name, opts, err)
	}
}

func TestParseRuleNameUnknownOptionIsError(t *testing.T) {
	if _, _, err := ParseRuleName("A[bogus]"); err == nil {
		t.Fatal("expected unrecognised option to be an error")
	}
}

func TestSplitDependencyTokens(t *testing.T) {
	got := SplitDependencyTokens(` a.c "b c.c" d.c`)
	want := []string{"a.c", "b c.c", "d.c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFileListPrerequisitesTruncatesAtPipe(t *testing.T) {
	got := FileListPrerequisites([]string{"a.c|comment", "b.c", "", "  c.c  "})
	want := []string{"a.c", "b.c", "c.c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLookupOrCreateTargetIsIdempotentPerScope(t *testing.T) {
	g := NewGraph()
	t1 := g.LookupOrCreateTarget("/proj", "A")
	t2 := g.LookupOrCreateTarget("/proj", "A")
	if t1 != t2 {
		t.Fatal("expected repeated lookup of the same scope/name to return the same target")
	}

	t3 := g.LookupOrCreateTarget("/proj/sub", "A")
	if t1 == t3 {
		t.Fatal("expected the same name in a different scope to be a distinct target")
	}
}

func TestRecipeConcatenationVsInferenceReset(t *testing.T) {
	tgt := newTarget("/proj", "A")
	tgt.AppendRecipe("cc -c a.c")
	tgt.AppendRecipe("cc -c b.c")
	if tgt.Recipe.String() != "cc -c a.c\ncc -c b.c\n" {
		t.Fatalf("got %q", tgt.Recipe.String())
	}

	tgt.ReplaceRecipe("cc -c $<")
	if tgt.Recipe.String() != "cc -c $<\n" {
		t.Fatalf("got %q, want reset recipe", tgt.Recipe.String())
	}
}

func TestAddDependencyIsASet(t *testing.T) {
	a := newTarget("/proj", "A")
	b := newTarget("/proj", "B")
	a.AddDependency(b)
	a.AddDependency(b)
	if len(a.ParentDependencies) != 1 {
		t.Fatalf("got %d dependencies, want 1 (set semantics)", len(a.ParentDependencies))
	}
}
