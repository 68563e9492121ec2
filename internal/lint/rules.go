// Package lint implements the (ADDED) recipe lint of SPEC_FULL §4.13:
// once a recipe line is committed to a Target, its accumulated text is
// checked against a small set of dangerous-command patterns and surfaced
// as advisory diagnostics, never as a parse error. The check runs at
// parse time against the in-progress recipe text, and a match is
// reported the way !MESSAGE output is rather than gating execution.
package lint

import (
	"fmt"
	"regexp"
)

// Severity is the danger level of a matched rule.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "INFO"
	}
}

// Rule is one dangerous-command pattern.
type Rule struct {
	ID          string
	Severity    Severity
	Patterns    []string
	Description string

	compiled []*regexp.Regexp
}

func (r *Rule) compile() error {
	r.compiled = make([]*regexp.Regexp, len(r.Patterns))
	for i, pattern := range r.Patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("lint: rule %s: invalid pattern %q: %w", r.ID, pattern, err)
		}
		r.compiled[i] = re
	}
	return nil
}

func (r *Rule) matches(recipeLines []string) (bool, string) {
	for _, line := range recipeLines {
		for _, re := range r.compiled {
			if re.MatchString(line) {
				return true, line
			}
		}
	}
	return false, ""
}

// BuiltinRules is the default dangerous-command pattern set: the
// patterns most likely to appear in a makefile recipe rather than an
// interactive shell session.
var BuiltinRules = []Rule{
	{
		ID:       "rm-rf-root",
		Severity: SeverityCritical,
		Patterns: []string{
			`rm\s+(-\w*f\w*\s+){1,2}/([^/\s]|\s|$)`,
			`rm\s+(-\w*f\w*\s+){1,2}\$HOME`,
			`rm\s+(-\w*f\w*\s+){1,2}~`,
			`sudo\s+rm\s+-\w*rf`,
		},
		Description: "removes files with root privileges or system-wide paths",
	},
	{
		ID:       "disk-wipe",
		Severity: SeverityCritical,
		Patterns: []string{
			`dd\s+.*of=/dev/(sd|hd|nvme)`,
			`mkfs\.\w+\s+/dev/`,
		},
		Description: "formats or writes directly to a block device",
	},
	{
		ID:       "database-drop",
		Severity: SeverityCritical,
		Patterns: []string{
			`(?i)drop\s+database`,
			`(?i)truncate\s+table`,
		},
		Description: "drops a database or truncates a table",
	},
	{
		ID:       "git-force-push",
		Severity: SeverityWarning,
		Patterns: []string{
			`git\s+push.*\s+-f(\s|$)`,
			`git\s+push.*\s+--force(\s|$)`,
		},
		Description: "force-pushes, potentially overwriting others' work",
	},
	{
		ID:       "git-reset-hard",
		Severity: SeverityWarning,
		Patterns: []string{
			`git\s+reset\s+--hard`,
			`git\s+clean\s+-\w*fd`,
		},
		Description: "discards uncommitted changes permanently",
	},
	{
		ID:       "terraform-destroy",
		Severity: SeverityCritical,
		Patterns: []string{
			`terraform\s+destroy`,
			`tofu\s+destroy`,
		},
		Description: "tears down Terraform-managed infrastructure",
	},
	{
		ID:       "kubectl-delete",
		Severity: SeverityCritical,
		Patterns: []string{
			`kubectl\s+delete\s+(namespace|ns)`,
			`kubectl\s+delete.*--all`,
		},
		Description: "deletes Kubernetes namespaces or all resources of a kind",
	},
	{
		ID:       "docker-system-prune",
		Severity: SeverityWarning,
		Patterns: []string{
			`docker\s+system\s+prune`,
			`docker\s+volume\s+(prune|rm).*-f`,
		},
		Description: "removes Docker volumes, images, or containers",
	},
	{
		ID:       "chmod-777",
		Severity: SeverityWarning,
		Patterns: []string{
			`chmod\s+(-R\s+)?777`,
		},
		Description: "sets world-writable file permissions",
	},
	{
		ID:       "package-remove",
		Severity: SeverityWarning,
		Patterns: []string{
			`apt(-get)?\s+remove`,
			`yum\s+remove`,
			`brew\s+uninstall`,
		},
		Description: "removes system packages",
	},
	{
		ID:       "cloud-destructive",
		Severity: SeverityCritical,
		Patterns: []string{
			`aws\s+s3\s+rm\s+.*--recursive`,
			`aws\s+ec2\s+terminate-instances`,
			`gcloud\s+compute\s+instances\s+delete`,
			`az\s+group\s+delete`,
		},
		Description: "deletes cloud infrastructure or storage",
	},
}
