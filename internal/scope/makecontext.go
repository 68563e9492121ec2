package scope

import (
	"time"

	"github.com/ymake-go/ymake/internal/slab"
	"github.com/ymake-go/ymake/internal/subcache"
)

// MakeContext is the process-wide state of spec §3: the active scope, the
// scope manager, the preprocessor sub-command cache, temp-directory path,
// the inline-file list, error/warning flags, and timing counters.
type MakeContext struct {
	Scopes *Manager
	Active slab.Handle[Context]
	Cache  *subcache.Cache

	TempDir     string
	InlineFiles []string

	ErrorTermination        bool
	WarnOnUndefinedVariable bool

	SubCommandElapsed time.Duration
}

// NewMakeContext returns a MakeContext with no active scope; call
// EnterScope to activate the top-level makefile's directory.
func NewMakeContext(cache *subcache.Cache, tempDir string) *MakeContext {
	return &MakeContext{
		Scopes:  NewManager(),
		Cache:   cache,
		TempDir: tempDir,
	}
}

// EnterScope activates key's scope and makes it the active scope,
// returning the previously active handle so the caller can restore it
// later (spec §4.8: "!INCLUDE must save and restore the scope's
// currentIncludeDir... even on failure").
func (mc *MakeContext) EnterScope(key string) slab.Handle[Context] {
	previous := mc.Active
	mc.Active = mc.Scopes.Activate(key)
	return previous
}

// RestoreScope releases the current active scope and restores previous as
// the active one.
func (mc *MakeContext) RestoreScope(previous slab.Handle[Context]) {
	mc.Scopes.Release(mc.Active)
	mc.Active = previous
}

// RecordSubCommandElapsed accumulates sub-command execution time (spec
// §4.7's "timing counter in MakeContext").
func (mc *MakeContext) RecordSubCommandElapsed(d time.Duration) {
	mc.SubCommandElapsed += d
}

// AddInlineFile records a created inline temp file for shutdown cleanup
// (spec §4.11).
func (mc *MakeContext) AddInlineFile(path string) {
	mc.InlineFiles = append(mc.InlineFiles, path)
}
