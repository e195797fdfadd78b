// Package ignore reads .esglensignore files: one pattern per line, '#'
// comments, a trailing '/' for directories, doublestar globs otherwise.
package ignore

import (
	"bufio"
	"io"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up at a scan root.
const FileName = ".esglensignore"

type Matcher struct {
	patterns []pattern
}

type pattern struct {
	glob string
	dir  bool
	// anchored patterns contain a '/' and match from the root only
	anchored bool
}

// Load parses the ignore file at p.
func Load(p string) (Matcher, error) {
	f, err := os.Open(p)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (Matcher, error) {
	var m Matcher
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var p pattern
		if strings.HasSuffix(line, "/") {
			p.dir = true
			line = strings.TrimSuffix(line, "/")
		}
		line = strings.TrimPrefix(line, "./")
		if strings.HasPrefix(line, "/") {
			p.anchored = true
			line = strings.TrimPrefix(line, "/")
		}
		if strings.Contains(line, "/") {
			p.anchored = true
		}
		if line == "" || !doublestar.ValidatePattern(line) {
			continue
		}
		p.glob = line
		m.patterns = append(m.patterns, p)
	}
	return m, sc.Err()
}

// Empty reports whether the matcher has no patterns.
func (m Matcher) Empty() bool { return len(m.patterns) == 0 }

// Match reports whether the file rel, a slash-separated path relative to
// the root, is ignored by itself or through one of its parent directories.
func (m Matcher) Match(rel string) bool { return m.match(rel, false) }

// MatchDir reports whether the directory rel is ignored.
func (m Matcher) MatchDir(rel string) bool { return m.match(rel, true) }

func (m Matcher) match(rel string, isDir bool) bool {
	rel = strings.TrimPrefix(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "./")
	if rel == "." || rel == "" {
		return false
	}
	parts := strings.Split(rel, "/")
	for _, p := range m.patterns {
		for i := range parts {
			// directory patterns only match a file through its parents
			if p.dir && i == len(parts)-1 && !isDir {
				break
			}
			if p.matches(strings.Join(parts[:i+1], "/"), parts[i]) {
				return true
			}
		}
	}
	return false
}

func (p pattern) matches(prefix, base string) bool {
	if p.anchored {
		ok, _ := doublestar.Match(p.glob, prefix)
		return ok
	}
	ok, _ := doublestar.Match(p.glob, base)
	return ok
}
