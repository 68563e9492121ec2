// Package vars implements the default VariableEngine (spec §6): a
// per-scope map of variable name to value with precedence, and a textual
// $(NAME)/$NAME expander. NMAKE macros are expanded by the core itself,
// so the expansion logic is self-contained rather than parsing another
// process's output.
package vars

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/ymake-go/ymake/internal/contracts"
)

type entry struct {
	value      string
	precedence contracts.Precedence
}

// Engine is the concrete VariableEngine. It is not safe for concurrent
// use, matching the single-threaded parser discipline of spec §5.
type Engine struct {
	scopes map[string]map[string]*entry
}

// New returns an empty Engine.
func New() *Engine {
	return &Engine{scopes: make(map[string]map[string]*entry)}
}

func (e *Engine) table(scopeKey string) map[string]*entry {
	t, ok := e.scopes[scopeKey]
	if !ok {
		t = make(map[string]*entry)
		e.scopes[scopeKey] = t
	}
	return t
}

// SetVariable implements contracts.VariableEngine.
func (e *Engine) SetVariable(scopeKey, line string, precedence contracts.Precedence) error {
	name, value, ok := splitAssignment(line)
	if !ok {
		return fmt.Errorf("vars: not an assignment: %q", line)
	}
	t := e.table(scopeKey)
	if existing, ok := t[name]; ok && existing.precedence > precedence {
		return nil
	}
	t[name] = &entry{value: value, precedence: precedence}
	return nil
}

// splitAssignment splits "NAME=value" (NMAKE uses a bare '=' only) at the
// first top-level '=' and trims both sides.
func splitAssignment(line string) (name, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if name == "" {
		return "", "", false
	}
	return name, value, true
}

// IsVariableDefined implements contracts.VariableEngine.
func (e *Engine) IsVariableDefined(scopeKey, name string) bool {
	_, ok := e.table(scopeKey)[name]
	return ok
}

// Undef implements contracts.VariableEngine: a makefile-level !UNDEF only
// removes a variable defined at PrecedenceMakefile, matching spec §3's
// precedence invariant ("higher precedences are not overridden by
// lower"). A command-line- or environment-precedence variable survives.
func (e *Engine) Undef(scopeKey, name string) {
	t := e.table(scopeKey)
	if existing, ok := t[name]; ok && existing.precedence <= contracts.PrecedenceMakefile {
		delete(t, name)
	}
}

// ExpandVariables implements contracts.VariableEngine, substituting
// $(NAME) and $NAME references. The first reference with no definition is
// reported via undefinedName but still expands to the empty string, per
// spec §7 ("Undefined variable during expansion").
func (e *Engine) ExpandVariables(scopeKey, template string) (string, string, error) {
	t := e.table(scopeKey)
	var out strings.Builder
	var undefined string
	i := 0
	for i < len(template) {
		c := template[i]
		if c != '$' || i+1 >= len(template) {
			out.WriteByte(c)
			i++
			continue
		}
		next := template[i+1]
		switch {
		case next == '(':
			end := strings.IndexByte(template[i+2:], ')')
			if end < 0 {
				out.WriteString(template[i:])
				i = len(template)
				continue
			}
			name := template[i+2 : i+2+end]
			out.WriteString(lookup(t, name, &undefined))
			i = i + 2 + end + 1
		case next == '$':
			out.WriteByte('$')
			i += 2
		default:
			name := string(next)
			out.WriteString(lookup(t, name, &undefined))
			i += 2
		}
	}
	return out.String(), undefined, nil
}

func lookup(t map[string]*entry, name string, firstUndefined *string) string {
	if e, ok := t[name]; ok {
		return e.value
	}
	if *firstUndefined == "" {
		*firstUndefined = name
	}
	return ""
}

// Snapshot returns every variable currently defined in scopeKey, name to
// value. It exists for callers that need to display variables (the
// inspect TUI) rather than expand them; it is not part of
// contracts.VariableEngine since the stream processor never needs to
// enumerate a scope's variables.
func (e *Engine) Snapshot(scopeKey string) map[string]string {
	t := e.table(scopeKey)
	out := make(map[string]string, len(t))
	for name, ent := range t {
		out[name] = ent.value
	}
	return out
}

// HashAllVariables implements contracts.VariableEngine, deterministically
// hashing the canonical (sorted-by-name) serialization of every variable
// currently in scope.
func (e *Engine) HashAllVariables(scopeKey string) uint32 {
	t := e.table(scopeKey)
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	h := fnv.New32a()
	for _, name := range names {
		fmt.Fprintf(h, "%s=%s;", name, t[name].value)
	}
	return h.Sum32()
}
