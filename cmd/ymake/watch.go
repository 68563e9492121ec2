package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ymake-go/ymake/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-parse the makefile whenever a file in its directory changes",
	RunE:  runWatchCmd,
}

// debounce collapses a burst of filesystem events (an editor's
// write-then-rename save, for instance) into a single re-parse.
const debounce = 200 * time.Millisecond

func runWatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ymake watch: %w", err)
	}
	defer watcher.Close()

	// mu serializes re-parses: each debounce timer fires on its own
	// goroutine, so a new run waits for the previous one to return.
	var mu sync.Mutex
	reparse := func() {
		mu.Lock()
		defer mu.Unlock()
		s, err := newSession(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ymake watch:", err)
			return
		}
		if err := watcher.Add(filepath.Dir(s.makefile)); err != nil {
			fmt.Fprintln(os.Stderr, "ymake watch: add watch:", err)
		}
		runErr := s.run()
		s.printDiagnostics()
		targets := s.graph.Targets()
		fmt.Fprintf(os.Stdout, "%s: %d target(s), %d diagnostic(s)\n", s.makefile, len(targets), len(s.proc.Diagnostics))
		if runErr != nil {
			fmt.Fprintln(os.Stderr, "ymake watch:", runErr)
		}
	}

	reparse()

	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, reparse)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "ymake watch:", err)
		}
	}
}
