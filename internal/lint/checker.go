package lint

import (
	"fmt"
	"log"
	"strings"
)

// Config is a master switch, a subset of built-in rule IDs to enable,
// and targets to exclude.
type Config struct {
	Enabled        bool
	EnabledRules   []string
	ExcludeTargets []string
	SeverityFloor  Severity
}

// DefaultConfig enables every built-in rule at every severity.
func DefaultConfig() Config {
	return Config{Enabled: true}
}

// Match is one rule hit against one target's recipe.
type Match struct {
	RuleID      string
	Severity    Severity
	MatchedLine string
	Description string
}

// Checker runs the configured rule set against target recipes as they
// are built, rather than waiting for a fully parsed target before
// execution.
type Checker struct {
	rules  []Rule
	config Config
}

// NewChecker compiles cfg's enabled rules. A rule whose pattern fails to
// compile is skipped with a warning rather than aborting the whole run.
func NewChecker(cfg Config) *Checker {
	c := &Checker{config: cfg}
	if !cfg.Enabled {
		return c
	}
	for i := range BuiltinRules {
		rule := BuiltinRules[i]
		if len(cfg.EnabledRules) > 0 && !contains(cfg.EnabledRules, rule.ID) {
			continue
		}
		if err := rule.compile(); err != nil {
			log.Printf("lint: skipping invalid rule %s: %v", rule.ID, err)
			continue
		}
		c.rules = append(c.rules, rule)
	}
	return c
}

// Check matches recipeLines against every enabled rule for targetName,
// returning every match at or above the configured severity floor.
func (c *Checker) Check(targetName string, recipeLines []string) []Match {
	if c == nil || !c.config.Enabled || contains(c.config.ExcludeTargets, targetName) {
		return nil
	}
	var matches []Match
	for _, rule := range c.rules {
		if rule.Severity < c.config.SeverityFloor {
			continue
		}
		if ok, line := rule.matches(recipeLines); ok {
			matches = append(matches, Match{
				RuleID:      rule.ID,
				Severity:    rule.Severity,
				MatchedLine: strings.TrimSpace(line),
				Description: rule.Description,
			})
		}
	}
	return matches
}

// FormatMatch renders a Match the way a !MESSAGE diagnostic line reads.
func FormatMatch(m Match) string {
	return fmt.Sprintf("[%s] %s: %s (%q)", m.Severity, m.RuleID, m.Description, m.MatchedLine)
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
