package lint

import "testing"

func TestCheckerFlagsBuiltinRuleMatch(t *testing.T) {
	c := NewChecker(DefaultConfig())
	matches := c.Check("clean", []string{"rm -rf /var/lib/data"})
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d: %+v", len(matches), matches)
	}
	if matches[0].RuleID != "rm-rf-root" {
		t.Fatalf("got rule %q, want rm-rf-root", matches[0].RuleID)
	}
	if matches[0].Severity != SeverityCritical {
		t.Fatalf("got severity %v, want Critical", matches[0].Severity)
	}
}

func TestCheckerIgnoresCleanRecipe(t *testing.T) {
	c := NewChecker(DefaultConfig())
	matches := c.Check("build", []string{"cc -c a.c -o a.o"})
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}

func TestCheckerExcludeTargetsSuppressesMatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExcludeTargets = []string{"clean"}
	c := NewChecker(cfg)
	matches := c.Check("clean", []string{"rm -rf /var/lib/data"})
	if len(matches) != 0 {
		t.Fatalf("expected excluded target to suppress matches, got %+v", matches)
	}
}

func TestCheckerSeverityFloorFiltersWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeverityFloor = SeverityCritical
	c := NewChecker(cfg)
	matches := c.Check("release", []string{"chmod -R 777 ."})
	if len(matches) != 0 {
		t.Fatalf("expected warning-level match filtered below the critical floor, got %+v", matches)
	}
}

func TestCheckerEnabledRulesRestrictsToSubset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnabledRules = []string{"git-force-push"}
	c := NewChecker(cfg)
	matches := c.Check("deploy", []string{"rm -rf /var/lib/data", "git push origin main --force"})
	if len(matches) != 1 {
		t.Fatalf("expected only the enabled rule to match, got %+v", matches)
	}
	if matches[0].RuleID != "git-force-push" {
		t.Fatalf("got rule %q, want git-force-push", matches[0].RuleID)
	}
}

func TestCheckerDisabledReturnsNoMatches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	c := NewChecker(cfg)
	matches := c.Check("clean", []string{"rm -rf /var/lib/data"})
	if matches != nil {
		t.Fatalf("expected nil matches when disabled, got %+v", matches)
	}
}

func TestNilCheckerIsSafeToCall(t *testing.T) {
	var c *Checker
	if matches := c.Check("clean", []string{"rm -rf /var/lib/data"}); matches != nil {
		t.Fatalf("expected nil matches from a nil checker, got %+v", matches)
	}
}

func TestFormatMatch(t *testing.T) {
	m := Match{RuleID: "rm-rf-root", Severity: SeverityCritical, MatchedLine: "rm -rf /var/lib/data", Description: "removes files with root privileges or system-wide paths"}
	got := FormatMatch(m)
	want := `[CRITICAL] rm-rf-root: removes files with root privileges or system-wide paths ("rm -rf /var/lib/data")`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
