package subcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ymake-go/ymake/internal/contracts"
)

type fakeVars struct {
	hash uint32
}

func (f fakeVars) ExpandVariables(scopeKey, template string) (string, string, error) {
	return template, "", nil
}
func (f fakeVars) SetVariable(scopeKey, line string, precedence contracts.Precedence) error {
	return nil
}
func (f fakeVars) IsVariableDefined(scopeKey, name string) bool { return false }
func (f fakeVars) Undef(scopeKey, name string)                 {}
func (f fakeVars) HashAllVariables(scopeKey string) uint32      { return f.hash }

var _ contracts.VariableEngine = fakeVars{}

func TestKeyFormatIsUppercaseHexConcatenation(t *testing.T) {
	c := New([]string{"PATH=/usr/bin"})
	key := c.Key(fakeVars{hash: 0xABCD1234}, "scope", "echo hi")
	if len(key) < 16+len("echo hi") {
		t.Fatalf("key %q too short", key)
	}
	if key[16:] != "echo hi" {
		t.Fatalf("key suffix = %q, want cmdText", key[16:])
	}
	for _, c := range key[:16] {
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'F') {
			t.Fatalf("key prefix %q is not uppercase hex", key[:16])
		}
	}
}

func TestInsertOnlyIfAbsent(t *testing.T) {
	c := New(nil)
	c.Insert("k", 3)
	c.Insert("k", 9)
	code, ok := c.Lookup("k")
	if !ok || code != 3 {
		t.Fatalf("got %v, %v, want 3, true (first insert wins)", code, ok)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Makefile.pru")

	c := New(nil)
	c.Insert("AAAA1111cmd1", 0)
	c.Insert("BBBB2222cmd2", 7)
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d entries, want 2", loaded.Len())
	}
	if code, ok := loaded.Lookup("AAAA1111cmd1"); !ok || code != 0 {
		t.Fatalf("got %v, %v, want 0, true", code, ok)
	}
	if code, ok := loaded.Lookup("BBBB2222cmd2"); !ok || code != 7 {
		t.Fatalf("got %v, %v, want 7, true", code, ok)
	}
}

func TestLoadMissingFileIsEmptyNotError(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nonexistent.pru"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Fatalf("got %d entries, want 0", c.Len())
	}
}

func TestMalformedLineStopsLoadingButKeepsPartialCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Makefile.pru")
	content := "0:goodkey1\n7:goodkey2\nnotadecimal:badkey\n3:neverloaded\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("got %d entries, want 2 (partial cache kept)", c.Len())
	}
	if _, ok := c.Lookup("neverloaded"); ok {
		t.Fatal("expected entry after the malformed line not to be loaded")
	}
}

func TestRunCachedMemoizesAcrossCalls(t *testing.T) {
	c := New(nil)
	calls := 0
	run := func() int {
		calls++
		return 42
	}
	code1 := c.RunCached(fakeVars{hash: 1}, "scope", "echo once", run)
	code2 := c.RunCached(fakeVars{hash: 1}, "scope", "echo once", run)
	if code1 != 42 || code2 != 42 {
		t.Fatalf("got %d, %d, want 42, 42", code1, code2)
	}
	if calls != 1 {
		t.Fatalf("run invoked %d times, want 1 (second call should hit cache)", calls)
	}
}

func TestPruneRemovesFilesBeyondMaxFiles(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"a.pru", "b.pru", "c.pru"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			t.Fatal(err)
		}
	}

	if err := Prune(dir, HousekeepingConfig{MaxFiles: 2}); err != nil {
		t.Fatal(err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.pru"))
	if len(matches) != 2 {
		t.Fatalf("got %d files remaining, want 2", len(matches))
	}
	if _, err := os.Stat(filepath.Join(dir, "a.pru")); !os.IsNotExist(err) {
		t.Fatal("expected oldest file a.pru to be pruned")
	}
}
