// Command ymake drives the preprocessor/graph-builder core end to end:
// parsing a makefile, printing diagnostics, dumping the built graph,
// watching for changes, and browsing the result in a read-only TUI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
