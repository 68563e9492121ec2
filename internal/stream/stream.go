// Package stream implements the Stream Processor (spec §4.12): the outer
// loop that reads physical lines from a makefile, joins backslash
// continuations, classifies each logical line, gates it through the
// conditional state machine, expands variables, and dispatches to the
// preprocessor, variable, rule, recipe, or inline-file handler. It is the
// one package that ties every other core package (classify, directive,
// expr, cond, graphbuild, inlinefile, scope, subcache) together in a
// single line-by-line scan.
package stream

import (
	"fmt"
	"io"

	"github.com/ymake-go/ymake/internal/cond"
	"github.com/ymake-go/ymake/internal/contracts"
	"github.com/ymake-go/ymake/internal/graphbuild"
	"github.com/ymake-go/ymake/internal/inlinefile"
	"github.com/ymake-go/ymake/internal/lex"
	"github.com/ymake-go/ymake/internal/lint"
	"github.com/ymake-go/ymake/internal/scope"
	"github.com/ymake-go/ymake/internal/slab"
)

// LineReaderOpener opens path for line-by-line reading (spec §6's line
// reader contract, realized as internal/linereader.Open in production).
type LineReaderOpener func(path string) (contracts.LineReader, error)

// FileLister reads an @filelist file's lines (spec §4.9).
type FileLister func(path string) ([]string, error)

// Diagnostic is an advisory message collected during a run, independent
// of ErrorTermination: !MESSAGE output, undefined-variable warnings, and
// recipe lint findings all surface the same way.
type Diagnostic struct {
	Severity lint.Severity
	Target   string
	File     string
	Line     int
	Message  string
}

// Processor owns everything one preprocessing run needs beyond the
// MakeContext itself: the variable/sub-command/temp-file collaborators,
// the graph under construction, and the collected diagnostics.
type Processor struct {
	MC     *scope.MakeContext
	Graph  *graphbuild.Graph
	Vars   contracts.VariableEngine
	Runner contracts.SubCommandRunner
	Files  LineReaderOpener
	Lists  FileLister

	Inline *inlinefile.Manager
	Linter *lint.Checker

	Stdout io.Writer
	Stderr io.Writer

	Diagnostics []Diagnostic

	// targetScopes retains the scope handle that owns each target's
	// recipe (spec §3: "a target's recipe belongs to exactly one scope"),
	// so the owning ScopeContext outlives the parser's active scope
	// pointer even after the directory is left.
	targetScopes map[*graphbuild.Target]slab.Handle[scope.Context]

	// parsedMakefiles avoids re-parsing a subdirectory makefile already
	// visited via a "dirs" dependency (spec §4.9).
	parsedMakefiles map[string]bool

	// reportedLint dedupes lint diagnostics across successive recipe
	// lines on the same target, since the accumulated recipe is
	// rechecked after every append.
	reportedLint map[*graphbuild.Target]map[string]bool

	fileName   string
	lineNumber int

	// openTarget is the target whose recipe is currently being
	// accumulated (ParserState == RecipeActive). Set by every rule line;
	// when it is an inference-rule pseudo-target, its recipe lines skip
	// variable expansion (spec §4.10).
	openTarget *graphbuild.Target
}

// New returns a Processor ready to process makefiles into graph.
func New(mc *scope.MakeContext, graph *graphbuild.Graph, vars contracts.VariableEngine, run contracts.SubCommandRunner, files LineReaderOpener, lists FileLister, inline *inlinefile.Manager, linter *lint.Checker, stdout, stderr io.Writer) *Processor {
	return &Processor{
		MC:              mc,
		Graph:           graph,
		Vars:            vars,
		Runner:          run,
		Files:           files,
		Lists:           lists,
		Inline:          inline,
		Linter:          linter,
		Stdout:          stdout,
		Stderr:          stderr,
		targetScopes:    make(map[*graphbuild.Target]slab.Handle[scope.Context]),
		parsedMakefiles: make(map[string]bool),
		reportedLint:    make(map[*graphbuild.Target]map[string]bool),
	}
}

// AddDiagnostic records an advisory diagnostic.
func (p *Processor) AddDiagnostic(severity lint.Severity, target, message string) {
	p.Diagnostics = append(p.Diagnostics, Diagnostic{
		Severity: severity,
		Target:   target,
		File:     p.fileName,
		Line:     p.lineNumber,
		Message:  message,
	})
}

// ProcessFile implements the top-level loop of spec §4.12 for one source
// file (the top-level makefile or a nested !INCLUDE target). It works in
// whichever scope is active when it is called; activating and releasing
// scopes is left to its callers (Run and "dirs" dependency handling).
func (p *Processor) ProcessFile(path string) error {
	reader, err := p.Files(path)
	if err != nil {
		return fmt.Errorf("stream: open %s: %w", path, err)
	}
	defer reader.Close()

	previousFile, previousLine := p.fileName, p.lineNumber
	p.fileName = path
	p.lineNumber = 0
	defer func() { p.fileName, p.lineNumber = previousFile, previousLine }()

	var acc string
	physicalLine := 0

	for {
		raw, ok, err := reader.ReadLine()
		if err != nil {
			return fmt.Errorf("stream: read %s: %w", path, err)
		}
		if !ok {
			break
		}
		physicalLine++
		p.lineNumber = physicalLine

		truncated := lex.TruncateComment(raw)

		if lex.EndsWithContinuation(truncated) {
			acc = lex.JoinLines(acc, truncated)
			continue
		}

		var logical string
		if acc != "" {
			logical = lex.JoinLines(acc, truncated)
			acc = ""
		} else {
			logical = truncated
		}

		if err := p.processLogicalLine(logical); err != nil {
			return err
		}
		if p.MC.ErrorTermination {
			break
		}
	}

	if !p.MC.ErrorTermination && !p.activeConditional().Balanced() {
		p.errorf("unbalanced !IF/!ENDIF in %s", path)
	}

	return nil
}

// Run activates the scope for the directory containing makefilePath,
// processes it, and releases the scope on return. This is the entry
// point a CLI command calls once per invocation. Nested !INCLUDE files
// are processed recursively in the same scope; "dirs" dependencies are
// processed recursively in their own scope via EnterScope/RestoreScope.
func (p *Processor) Run(makefilePath string) error {
	dir := dirOf(makefilePath)
	previous := p.MC.EnterScope(dir)
	defer p.MC.RestoreScope(previous)

	p.MC.Active.Value().CurrentIncludeDir = dir
	return p.ProcessFile(makefilePath)
}

func dirOf(path string) string {
	idx := -1
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

func (p *Processor) activeConditional() *cond.State {
	return p.MC.Active.Value().Conditional
}

func (p *Processor) errorf(format string, args ...any) {
	fmt.Fprintf(p.Stderr, format+"\n", args...)
	p.MC.ErrorTermination = true
}
