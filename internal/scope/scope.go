// Package scope implements the ScopeContext/MakeContext data model and
// the directory-keyed scope manager of spec §3: a per-directory variable
// environment plus include-directory stack, reference-counted (via
// internal/slab) so a Target can keep its defining scope alive after the
// parser has moved on.
package scope

import (
	"github.com/ymake-go/ymake/internal/classify"
	"github.com/ymake-go/ymake/internal/cond"
	"github.com/ymake-go/ymake/internal/slab"
)

// Context is one directory's ScopeContext (spec §3).
type Context struct {
	Key               string
	CurrentIncludeDir string
	ParserState       classify.ParserState
	Conditional       *cond.State
}

func newContext(key string) Context {
	return Context{Key: key, ParserState: classify.Default, Conditional: cond.New()}
}

// Manager activates and releases directory-keyed scopes. A scope is
// created on first activation and reused (with its reference count
// bumped) on every later activation of the same directory, until all
// holders have released it, at which point a later activation allocates
// fresh state.
type Manager struct {
	pool   *slab.Pool[Context]
	active map[string]slab.Handle[Context]
}

// NewManager returns an empty scope manager.
func NewManager() *Manager {
	return &Manager{
		pool:   slab.NewPool[Context](64),
		active: make(map[string]slab.Handle[Context]),
	}
}

// Activate implements ActivateScope(key) from spec §3: returns the live
// handle for key, retaining it if one already exists, or allocating a
// fresh ScopeContext otherwise.
func (m *Manager) Activate(key string) slab.Handle[Context] {
	if h, ok := m.active[key]; ok && h.Valid() {
		return h.Retain()
	}
	h := m.pool.Alloc()
	*h.Value() = newContext(key)
	m.active[key] = h
	return h
}

// Release drops one reference to h. When the last holder releases a
// scope, the directory's entry in the manager's live table is forgotten,
// so a later Activate for the same key starts fresh.
func (m *Manager) Release(h slab.Handle[Context]) {
	key := ""
	if h.Valid() {
		key = h.Value().Key
	}
	m.pool.Release(h)
	if key != "" && !h.Valid() {
		if cur, ok := m.active[key]; ok && cur.Value() == h.Value() {
			delete(m.active, key)
		}
	}
}

// IncludeStack is the scope/include stack spec §2 calls out: the chain of
// scopes entered via !INCLUDE or subdirectory dependencies, most recent
// on top.
type IncludeStack struct {
	frames []slab.Handle[Context]
}

// Push enters a new scope frame.
func (s *IncludeStack) Push(h slab.Handle[Context]) {
	s.frames = append(s.frames, h)
}

// Pop leaves the current scope frame, returning it so the caller can
// Release it once finished.
func (s *IncludeStack) Pop() (slab.Handle[Context], bool) {
	if len(s.frames) == 0 {
		return slab.Handle[Context]{}, false
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top, true
}

// Top returns the current scope frame without removing it.
func (s *IncludeStack) Top() (slab.Handle[Context], bool) {
	if len(s.frames) == 0 {
		return slab.Handle[Context]{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Depth reports how many frames are currently pushed.
func (s *IncludeStack) Depth() int {
	return len(s.frames)
}
