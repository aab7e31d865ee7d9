// Package ignore loads .leakscoutignore files: one pattern per line,
// gitignore-flavored (directory prefixes ending in '/', globs, exact
// names), with '#' comments and blank lines skipped.
package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Matcher reports whether a repo-relative path is ignored.
type Matcher struct {
	dirs  []string // directory prefixes, no trailing slash
	globs []string
}

// Load parses the ignore file at path. A missing file yields an empty
// matcher and the read error, so callers can treat it as optional.
func Load(file string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(file)
	if err != nil {
		return m, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, "/") {
			m.dirs = append(m.dirs, strings.TrimSuffix(line, "/"))
			continue
		}
		m.globs = append(m.globs, line)
	}
	return m, sc.Err()
}

// Match reports whether p is excluded. Matching uses forward-slash
// semantics; globs are tried against the full path and the base name.
func (m Matcher) Match(p string) bool {
	p = strings.ReplaceAll(p, "\\", "/")
	for _, d := range m.dirs {
		if p == d || strings.HasPrefix(p, d+"/") {
			return true
		}
	}
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, p); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, path.Base(p)); ok {
			return true
		}
	}
	return false
}
