package graphbuild

import "testing"

func TestDetectInferenceRuleNoDirs(t *testing.T) {
	r, ok := DetectInferenceRule(".c.o")
	if !ok {
		t.Fatal("expected .c.o to be detected as an inference rule")
	}
	if r.FromExt != ".c" || r.ToExt != ".o" || r.FromDir != "" || r.ToDir != "" {
		t.Fatalf("got %+v", r)
	}
}

func TestDetectInferenceRuleWithDirs(t *testing.T) {
	r, ok := DetectInferenceRule("{src}.c{obj}.o")
	if !ok {
		t.Fatal("expected {src}.c{obj}.o to be detected as an inference rule")
	}
	if r.FromDir != "src" || r.FromExt != ".c" || r.ToDir != "obj" || r.ToExt != ".o" {
		t.Fatalf("got %+v", r)
	}
}

func TestDetectInferenceRuleRejectsPlainTarget(t *testing.T) {
	if _, ok := DetectInferenceRule("A"); ok {
		t.Fatal("expected a plain target name not to be an inference rule")
	}
	if _, ok := DetectInferenceRule("main.o"); ok {
		t.Fatal("expected a single extension not to be an inference rule")
	}
}

func TestDetectInferenceRuleRejectsPathInExtension(t *testing.T) {
	if _, ok := DetectInferenceRule(".a/b.o"); ok {
		t.Fatal("expected a path separator inside an extension to be rejected")
	}
}

func TestMatchSourceNoDirs(t *testing.T) {
	r, _ := DetectInferenceRule(".c.o")
	src, ok := r.MatchSource("main.o")
	if !ok || src != "main.c" {
		t.Fatalf("got %q, %v, want main.c, true", src, ok)
	}
}

func TestMatchSourceWithDirs(t *testing.T) {
	r, _ := DetectInferenceRule("{src}.c{obj}.o")
	src, ok := r.MatchSource("obj/main.o")
	if !ok || src != "src/main.c" {
		t.Fatalf("got %q, %v, want src/main.c, true", src, ok)
	}
}

func TestMatchSourceWrongDirDoesNotMatch(t *testing.T) {
	r, _ := DetectInferenceRule("{src}.c{obj}.o")
	if _, ok := r.MatchSource("other/main.o"); ok {
		t.Fatal("expected a target outside toDir not to match")
	}
}

func TestMatchSourceWrongExtDoesNotMatch(t *testing.T) {
	r, _ := DetectInferenceRule(".c.o")
	if _, ok := r.MatchSource("main.cpp"); ok {
		t.Fatal("expected a mismatched extension not to match")
	}
}
