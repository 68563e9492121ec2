// Package subcache implements the sub-command result cache (spec §4.6):
// a key built from a memoised environment hash, the in-scope variable
// hash, and the literal command text, persisted alongside the makefile in
// a ".pru" sidecar so repeated preprocessor runs skip re-executing
// side-effect-free [cmd] probes.
package subcache

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"

	"github.com/ymake-go/ymake/internal/contracts"
)

// Cache holds sub-command results for one makefile's preprocessing run.
// Entries preserve insertion order so Save reproduces a stable file
// across runs with identical content.
type Cache struct {
	entries map[string]int
	order   []string

	envHash      uint32
	envHashKnown bool
	environ      []string
}

// New returns an empty Cache. environ is the process environment used to
// compute the lazily memoised environment hash component of the key.
func New(environ []string) *Cache {
	return &Cache{entries: make(map[string]int), environ: environ}
}

// EnvHash returns hash32(joinedEnvStrings), computed once and memoised.
func (c *Cache) EnvHash() uint32 {
	if !c.envHashKnown {
		h := fnv.New32a()
		_, _ = h.Write([]byte(strings.Join(c.environ, "\x00")))
		c.envHash = h.Sum32()
		c.envHashKnown = true
	}
	return c.envHash
}

// Key builds the on-wire key form: uppercase-hex(envHash) ||
// uppercase-hex(varHash) || cmdText, with no separator (spec §4.6).
func (c *Cache) Key(vars contracts.VariableEngine, scopeKey, cmdText string) string {
	varHash := vars.HashAllVariables(scopeKey)
	return fmt.Sprintf("%08X%08X%s", c.EnvHash(), varHash, cmdText)
}

// Lookup reports a previously cached exit code for key, if any.
func (c *Cache) Lookup(key string) (int, bool) {
	code, ok := c.entries[key]
	return code, ok
}

// Insert records exitCode for key, but only if key is not already
// present (spec §4.6: "Insert: only if not already present").
func (c *Cache) Insert(key string, exitCode int) {
	if _, exists := c.entries[key]; exists {
		return
	}
	c.entries[key] = exitCode
	c.order = append(c.order, key)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int { return len(c.order) }

// PruPath returns the persistence file name for a makefile path: the
// makefile name with ".pru" appended.
func PruPath(makefilePath string) string {
	return makefilePath + ".pru"
}

// Load reads a ".pru" sidecar at preprocess start. Each line must be
// "<decimal-exit-code>:<key>\n"; the first malformed line terminates
// loading but the entries read so far are kept (spec §4.6).
func Load(path string, environ []string) (*Cache, error) {
	c := New(environ)

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		code, key, ok := parseEntry(line)
		if !ok {
			break
		}
		c.Insert(key, code)
	}
	return c, nil
}

func parseEntry(line string) (code int, key string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return 0, "", false
	}
	n, err := strconv.Atoi(line[:idx])
	if err != nil {
		return 0, "", false
	}
	return n, line[idx+1:], true
}

// Save rewrites the ".pru" sidecar at path in insertion order, on process
// exit (spec §4.6).
func (c *Cache) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, key := range c.order {
		if _, err := fmt.Fprintf(w, "%d:%s\n", c.entries[key], key); err != nil {
			return err
		}
	}
	return w.Flush()
}

// RunCached resolves cmdText's exit code through the cache, falling back
// to run on a miss and inserting the fresh result (spec §4.6, §4.7).
func (c *Cache) RunCached(vars contracts.VariableEngine, scopeKey, cmdText string, run func() int) int {
	key := c.Key(vars, scopeKey, cmdText)
	if code, ok := c.Lookup(key); ok {
		return code
	}
	code := run()
	c.Insert(key, code)
	return code
}
