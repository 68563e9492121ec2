// Package linereader implements the line reading contract (spec §6): a
// bufio.Scanner over an *os.File wrapped behind the contracts.LineReader
// interface so the stream processor never imports bufio or os directly.
package linereader

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ymake-go/ymake/internal/contracts"
)

// FileReader is the default contracts.LineReader, reading physical lines
// from an *os.File.
type FileReader struct {
	f       *os.File
	scanner *bufio.Scanner
}

// Open opens path for line-by-line reading.
func Open(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linereader: open %s: %w", path, err)
	}
	return &FileReader{f: f, scanner: bufio.NewScanner(f)}, nil
}

// ReadLine implements contracts.LineReader.
func (r *FileReader) ReadLine() (string, bool, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), true, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", false, err
	}
	return "", false, nil
}

// Close implements contracts.LineReader.
func (r *FileReader) Close() error {
	return r.f.Close()
}

var _ contracts.LineReader = (*FileReader)(nil)
