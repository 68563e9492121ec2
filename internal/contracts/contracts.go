// Package contracts defines the external collaborator interfaces spec.md
// §6 calls out as out of core scope: variable substitution, sub-command
// execution, temp-file creation, and line reading. The core packages
// (expr, cond, graphbuild, stream, scope) depend only on these interfaces;
// internal/vars, internal/subprocess, internal/tempfile and
// internal/linereader each provide one concrete, runnable implementation.
package contracts

import "context"

// Precedence orders variable definitions; higher values are not
// overridden by lower ones (spec §3, ScopeContext.variables).
type Precedence int

const (
	PrecedenceMakefile Precedence = iota
	PrecedenceEnvironment
	PrecedenceCommandLine
)

// VariableEngine is the variable substitution contract (spec §6).
type VariableEngine interface {
	// ExpandVariables expands $(VAR)-style references in template.
	// undefinedName is the first referenced name with no definition, or ""
	// if every reference resolved.
	ExpandVariables(scopeKey string, template string) (expanded string, undefinedName string, err error)

	// SetVariable parses and stores a "NAME=value"-shaped line at the
	// given precedence; a lower precedence than an existing definition is
	// silently ignored.
	SetVariable(scopeKey string, line string, precedence Precedence) error

	// IsVariableDefined reports whether name has any definition in scope.
	IsVariableDefined(scopeKey string, name string) bool

	// Undef removes name at PrecedenceMakefile (spec §4.8 !UNDEF).
	Undef(scopeKey string, name string)

	// HashAllVariables returns a hash over the canonical serialization of
	// every in-scope variable, deterministic across runs for identical
	// state (used as the sub-command cache's variable-hash component).
	HashAllVariables(scopeKey string) uint32
}

// SubCommandRunner is the sub-command execution contract (spec §4.7, §6).
type SubCommandRunner interface {
	// RunAndGetExitCode runs cmdText under the shell and returns its exit
	// code. Failure to launch yields 255, never an error.
	RunAndGetExitCode(ctx context.Context, cmdText string, env []string) int
}

// TempFileCreator is the temp-file contract (spec §6).
type TempFileCreator interface {
	CreateTempFile(dir, prefix string) (TempFile, error)
}

// TempFile is a writable, uniquely named temp file handle.
type TempFile interface {
	Name() string
	WriteLine(line string) error
	Close() error
}

// LineReader is the line reading contract (spec §6). Accumulator is
// opaque to the stream processor; EOF is signaled by ok == false with a
// nil error.
type LineReader interface {
	ReadLine() (line string, ok bool, err error)
	Close() error
}
