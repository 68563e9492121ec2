package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ymake-go/ymake/config"
	"github.com/ymake-go/ymake/internal/contracts"
	"github.com/ymake-go/ymake/internal/graphbuild"
	"github.com/ymake-go/ymake/internal/inlinefile"
	"github.com/ymake-go/ymake/internal/lint"
	"github.com/ymake-go/ymake/internal/linereader"
	"github.com/ymake-go/ymake/internal/scope"
	"github.com/ymake-go/ymake/internal/stream"
	"github.com/ymake-go/ymake/internal/subcache"
	"github.com/ymake-go/ymake/internal/subprocess"
	"github.com/ymake-go/ymake/internal/tempfile"
	"github.com/ymake-go/ymake/internal/vars"
	"github.com/ymake-go/ymake/internal/workspace"
)

// session bundles the collaborators one preprocessing run needs, so
// parse/graph/watch/browse can all build one the same way and differ
// only in what they do with the result.
type session struct {
	cfg       *config.Config
	mc        *scope.MakeContext
	graph     *graphbuild.Graph
	proc      *stream.Processor
	cache     *subcache.Cache
	cachePath string
	inlineMgr *inlinefile.Manager
	makefile  string
}

// resolveMakefile honors an explicit path, falling back to upward-search
// discovery (internal/workspace) when none was given.
func resolveMakefile(cfg *config.Config) (string, error) {
	if cfg.MakefilePath != "" && cfg.MakefilePath != "Makefile" {
		return cfg.MakefilePath, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	candidates, err := workspace.FindMakefilesInParents(cwd, 16)
	if err != nil {
		return "", err
	}
	if len(candidates) > 0 {
		return candidates[0], nil
	}
	return "Makefile", nil
}

// newSession wires every core package behind a stream.Processor: the
// variable engine, sub-command runner, sub-command cache (loaded from its
// ".pru" sidecar), inline-file manager, and recipe linter.
func newSession(cfg *config.Config) (*session, error) {
	makefilePath, err := resolveMakefile(cfg)
	if err != nil {
		return nil, err
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Dir(makefilePath)
	}
	cachePath := subcache.PruPath(filepath.Join(cacheDir, filepath.Base(makefilePath)))

	if err := subcache.Prune(cacheDir, subcache.HousekeepingConfig{
		MaxFiles: cfg.CachePruneMaxFiles,
		KeepDays: cfg.CachePruneKeepDays,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "ymake: prune cache:", err)
	}

	cache, err := subcache.Load(cachePath, os.Environ())
	if err != nil {
		return nil, fmt.Errorf("ymake: load cache %s: %w", cachePath, err)
	}

	tempDir := cfg.TempDir
	mc := scope.NewMakeContext(cache, tempDir)
	mc.WarnOnUndefinedVariable = cfg.WarnOnUndefinedVariable

	graph := graphbuild.NewGraph()
	varEngine := vars.New()
	runner := subprocess.NewRunner()
	inlineMgr := inlinefile.NewManager(tempfile.NewCreator(), tempDir)
	linter := lint.NewChecker(cfg.Lint)

	openLineReader := func(path string) (contracts.LineReader, error) { return linereader.Open(path) }
	proc := stream.New(mc, graph, varEngine, runner, openLineReader, readFileList, inlineMgr, linter, os.Stdout, os.Stderr)

	return &session{
		cfg:       cfg,
		mc:        mc,
		graph:     graph,
		proc:      proc,
		cache:     cache,
		cachePath: cachePath,
		inlineMgr: inlineMgr,
		makefile:  makefilePath,
	}, nil
}

// readFileList implements stream.FileLister by splitting an @filelist
// file's contents on newlines (spec §4.9).
func readFileList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines, nil
}

// run parses s.makefile and tears down the inline-file manager and cache
// sidecar exactly once, regardless of success, mirroring spec §5's
// "delete all inline files" / "rewritten on process exit" shutdown.
func (s *session) run() error {
	err := s.proc.Run(s.makefile)

	s.inlineMgr.Shutdown(func(path string) { _ = tempfile.Remove(path) })
	if saveErr := s.cache.Save(s.cachePath); saveErr != nil && err == nil {
		err = fmt.Errorf("ymake: save cache %s: %w", s.cachePath, saveErr)
	}
	return err
}

// printDiagnostics writes every collected diagnostic to stderr, then a
// single line if the parse ended with errors. !MESSAGE/!ERROR output and
// parse errors already stream as they are produced; this is the final
// summary.
func (s *session) printDiagnostics() {
	for _, d := range s.proc.Diagnostics {
		loc := d.File
		if d.Line > 0 {
			loc = fmt.Sprintf("%s(%d)", d.File, d.Line)
		}
		fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", loc, d.Severity, d.Target, d.Message)
	}
	if s.mc.ErrorTermination {
		fmt.Fprintln(os.Stderr, "ymake: parse terminated with errors")
	}
}
