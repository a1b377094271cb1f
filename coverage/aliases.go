package coverage

import (
	"path"
	"path/filepath"
	"strings"
)

// PathAliases rewrites file paths recorded under one filesystem view into
// another, so that the same source tree mounted or checked out at different
// locations merges into a single entry.
//
// Rules are checked in the order they were added; the first matching rule
// wins. A rule matches a path that equals the pattern or lies underneath it,
// and rewrites the matched prefix to the rule's result.
type PathAliases struct {
	rules []aliasRule
}

type aliasRule struct {
	pattern string
	result  string
}

// Add registers a rewrite rule mapping paths under pattern to result.
func (a *PathAliases) Add(pattern, result string) {
	a.rules = append(a.rules, aliasRule{
		pattern: cleanSlash(pattern),
		result:  cleanSlash(result),
	})
}

// Map rewrites p through the first matching rule, or returns it unchanged.
// A nil PathAliases maps every path to itself.
func (a *PathAliases) Map(p string) string {
	if a == nil {
		return p
	}

	cp := cleanSlash(p)
	for _, r := range a.rules {
		if cp == r.pattern {
			return r.result
		}
		if rest, ok := strings.CutPrefix(cp, r.pattern+"/"); ok {
			return path.Join(r.result, rest)
		}
	}
	return p
}

func cleanSlash(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
