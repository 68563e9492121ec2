// Package inlinefile implements the inline-file manager (spec §3,
// §4.10, §4.11): recipe lines containing "<<" open a temp file whose
// name is substituted into the recipe text; subsequent lines up to the
// matching "<<" are written into it with CRLF line endings; every
// created file is deleted at shutdown. Built on the
// internal/tempfile/internal/contracts TempFileCreator contract so the
// manager has no direct os dependency.
package inlinefile

import (
	"fmt"
	"strings"

	"github.com/ymake-go/ymake/internal/contracts"
)

// inlineMarker is the token that opens and closes an inline file body.
const inlineMarker = "<<"

// File tracks one open inline file: its temp handle and the name
// substituted into the owning recipe line.
type File struct {
	handle contracts.TempFile
}

// Manager creates, writes, and cleans up inline files for one
// preprocessing run.
type Manager struct {
	creator contracts.TempFileCreator
	tempDir string

	open []*File // stack; spec §4.11 closes "the most-recently-opened inline file"
	all  []*File // every file ever opened, for shutdown cleanup
}

// NewManager returns a Manager that creates temp files under tempDir.
func NewManager(creator contracts.TempFileCreator, tempDir string) *Manager {
	return &Manager{creator: creator, tempDir: tempDir}
}

// DetectAndOpen implements spec §4.10's inline-file detection: if line
// (an already variable-expanded recipe line) contains "<<", a temp file
// is allocated with prefix "YMK", and the returned recipeLine has the
// "<<..." suffix replaced by the temp file's name. opened reports whether
// a file was opened (and parserState should become InlineFileActive).
func (m *Manager) DetectAndOpen(line string) (recipeLine string, opened bool, err error) {
	idx := strings.Index(line, inlineMarker)
	if idx < 0 {
		return line, false, nil
	}

	tf, err := m.creator.CreateTempFile(m.tempDir, "YMK")
	if err != nil {
		return "", false, fmt.Errorf("inlinefile: create temp file: %w", err)
	}

	f := &File{handle: tf}
	m.open = append(m.open, f)
	m.all = append(m.all, f)

	return line[:idx] + tf.Name(), true, nil
}

// IsCloseLine reports whether line closes the currently open inline file
// (spec §4.11): "<<" optionally followed by KEEP/NOKEEP, whose
// keep-semantics are not distinguished here.
func IsCloseLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, inlineMarker) {
		return false
	}
	suffix := strings.TrimSpace(strings.TrimPrefix(trimmed, inlineMarker))
	return suffix == "" || suffix == "KEEP" || suffix == "NOKEEP"
}

// WriteLine writes raw to the most-recently-opened inline file with a
// CRLF line ending (spec §4.11).
func (m *Manager) WriteLine(raw string) error {
	if len(m.open) == 0 {
		return fmt.Errorf("inlinefile: write with no inline file open")
	}
	top := m.open[len(m.open)-1]
	return top.handle.WriteLine(raw)
}

// Close closes the most-recently-opened inline file, matching a
// close-line (spec §4.11).
func (m *Manager) Close() error {
	if len(m.open) == 0 {
		return fmt.Errorf("inlinefile: close with no inline file open")
	}
	top := m.open[len(m.open)-1]
	m.open = m.open[:len(m.open)-1]
	return top.handle.Close()
}

// Depth reports how many inline files are currently open (nested <<
// blocks within one recipe).
func (m *Manager) Depth() int {
	return len(m.open)
}

// Shutdown deletes every inline file ever created in this run (spec
// §4.11: "At shutdown, delete all inline files"). remove is the
// filesystem removal function, typically tempfile.Remove.
func (m *Manager) Shutdown(remove func(path string)) {
	for _, f := range m.all {
		remove(f.handle.Name())
	}
}
