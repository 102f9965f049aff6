package shell

import "path/filepath"

// globMeta are the characters whose presence in an unquoted word triggers
// glob expansion, per spec §4.4.
const globMeta = "*?[]"

func hasGlobMeta(s string) bool {
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(globMeta); j++ {
			if s[i] == globMeta[j] {
				return true
			}
		}
	}
	return false
}

// expandGlobs expands each unquoted word containing glob metacharacters
// against the filesystem, substituting matches in place and preserving
// argv order. A word with no matches keeps its original literal value,
// shell-style. Quoted words are passed through untouched.
func expandGlobs(words []Token) ([]string, error) {
	var out []string
	for _, w := range words {
		if w.WasQuoted || !hasGlobMeta(w.Value) {
			out = append(out, w.Value)
			continue
		}
		matches, err := filepath.Glob(w.Value)
		if err != nil || len(matches) == 0 {
			out = append(out, w.Value)
			continue
		}
		out = append(out, matches...)
	}
	return out, nil
}
