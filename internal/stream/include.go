package stream

import (
	"path/filepath"
)

// handleInclude implements spec §4.8's !INCLUDE and spec §8 property 5:
// currentIncludeDir is saved and restored across the nested invocation
// regardless of success or failure.
func (p *Processor) handleInclude(arg string) error {
	name := stripQuotes(arg)
	active := p.MC.Active.Value()

	resolved := name
	if !filepath.IsAbs(resolved) && active.CurrentIncludeDir != "" {
		resolved = filepath.Join(active.CurrentIncludeDir, name)
	}

	savedIncludeDir := active.CurrentIncludeDir
	defer func() { p.MC.Active.Value().CurrentIncludeDir = savedIncludeDir }()

	active.CurrentIncludeDir = filepath.Dir(resolved)

	if err := p.ProcessFile(resolved); err != nil {
		p.errorf("%s(%d) !INCLUDE %q: %v", p.fileName, p.lineNumber, name, err)
		return nil
	}
	return nil
}
