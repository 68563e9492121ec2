package graphbuild

import "strings"

// InferenceRule is spec §3's (fromDir, fromExt, toDir, toExt,
// pseudoTarget) tuple: a rule matches a target whose filename has toExt
// and, if toDir is non-empty, resides under toDir, producing a source
// candidate with toDir→fromDir and toExt→fromExt substituted.
type InferenceRule struct {
	FromDir, FromExt string
	ToDir, ToExt     string
	PseudoTarget     *Target
}

// DetectInferenceRule implements spec §4.9's inference-rule detection: a
// target name of the form "{dir}.ext{dir}.ext" (both {dir} components
// optional, balanced braces, extensions containing no path separator) is
// an inference rule.
func DetectInferenceRule(name string) (InferenceRule, bool) {
	rest := name
	fromDir, rest, ok := takeOptionalBraced(rest)
	if !ok {
		return InferenceRule{}, false
	}
	fromExt, rest, ok := takeExt(rest)
	if !ok {
		return InferenceRule{}, false
	}
	toDir, rest, ok := takeOptionalBraced(rest)
	if !ok {
		return InferenceRule{}, false
	}
	toExt, rest, ok := takeExt(rest)
	if !ok || rest != "" {
		return InferenceRule{}, false
	}
	if fromExt == "" || toExt == "" {
		return InferenceRule{}, false
	}
	return InferenceRule{FromDir: fromDir, FromExt: fromExt, ToDir: toDir, ToExt: toExt}, true
}

// takeOptionalBraced consumes a leading "{...}" if present, returning its
// contents (or "" if absent) and the remainder.
func takeOptionalBraced(s string) (dir, rest string, ok bool) {
	if !strings.HasPrefix(s, "{") {
		return "", s, true
	}
	close := strings.IndexByte(s, '}')
	if close < 0 {
		return "", "", false
	}
	return s[1:close], s[close+1:], true
}

// takeExt consumes a leading ".ext" component: a dot followed by
// characters containing no path separator, stopping before the next '.',
// '{', or end of string (an extension has no interior dots).
func takeExt(s string) (ext, rest string, ok bool) {
	if !strings.HasPrefix(s, ".") {
		return "", s, false
	}
	i := 1
	for i < len(s) && s[i] != '{' && s[i] != '.' {
		if s[i] == '/' || s[i] == '\\' {
			return "", "", false
		}
		i++
	}
	return s[:i], s[i:], true
}

// MatchSource implements InferenceRule's source-candidate production: if
// filename has r.ToExt and (r.ToDir == "" or filename is under ToDir),
// returns the candidate source path with ToDir→FromDir and ToExt→FromExt
// substituted.
func (r InferenceRule) MatchSource(filename string) (candidate string, ok bool) {
	if !strings.HasSuffix(filename, r.ToExt) {
		return "", false
	}
	base := strings.TrimSuffix(filename, r.ToExt)

	dir := ""
	name := base
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		dir = base[:idx]
		name = base[idx+1:]
	}

	if r.ToDir != "" && dir != r.ToDir {
		return "", false
	}

	newDir := r.FromDir
	if r.ToDir == "" {
		newDir = dir
		if r.FromDir != "" {
			newDir = r.FromDir
		}
	}

	if newDir == "" {
		return name + r.FromExt, true
	}
	return newDir + "/" + name + r.FromExt, true
}
