package engine

import (
	"context"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/esglens/esglens/internal/ignore"
)

// Walk traverses cfg.Root and invokes handle for each eligible document with
// its path relative to the root. A Root naming a single file yields that file
// under its base name. Paths matched by a .esglensignore at the root are
// skipped, as are unreadable entries; cancellation of ctx stops the walk.
func Walk(ctx context.Context, cfg Config, handle func(rel string, data []byte)) error {
	st, err := os.Stat(cfg.Root)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		if b, ok := readDocument(cfg.Root, filepath.Base(cfg.Root), st.Size(), cfg); ok {
			handle(filepath.Base(cfg.Root), b)
		}
		return nil
	}
	ig := loadIgnore(cfg.Root)
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if skipDir(p, rel, d.Name(), cfg, ig) {
				return filepath.SkipDir
			}
			return nil
		}
		if !eligible(rel, cfg, ig) {
			return nil
		}
		var size int64
		if info, _ := d.Info(); info != nil {
			size = info.Size()
		}
		if b, ok := readDocument(p, rel, size, cfg); ok {
			handle(rel, b)
		}
		return nil
	})
}

func loadIgnore(root string) ignore.Matcher {
	m, err := ignore.Load(filepath.Join(root, ignore.FileName))
	if err != nil {
		return ignore.Matcher{}
	}
	return m
}

func skipDir(p, rel, name string, cfg Config, ig ignore.Matcher) bool {
	if p == cfg.Root {
		return false
	}
	if cfg.DefaultExcludes && isDefaultDirExcluded(name) {
		return true
	}
	return ig.MatchDir(rel)
}

func eligible(rel string, cfg Config, ig ignore.Matcher) bool {
	if !allowedByGlobs(rel, cfg) {
		return false
	}
	if isInternalFile(rel) || ig.Match(rel) {
		return false
	}
	return !cfg.DefaultExcludes || !isDefaultFileExcluded(strings.ToLower(rel))
}

func readDocument(p, rel string, size int64, cfg Config) ([]byte, bool) {
	if cfg.MaxBytes > 0 && size > cfg.MaxBytes {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	// Inline opt-out directive
	if strings.Contains(string(b), "esglens:ignore-file") {
		return nil, false
	}
	if looksBinary(b) || looksNonTextMIME(rel, b) {
		return nil, false
	}
	return b, true
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// looksNonTextMIME uses the file extension and a tiny content sniff to skip
// clearly non-text content (e.g., images) in addition to NUL-byte detection.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") || ct == "application/pdf" {
			return true
		}
	}
	if len(b) >= 4 {
		if len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n" {
			return true
		}
		// ZIP (PK) header, also covers docx/xlsx containers
		if b[0] == 'P' && b[1] == 'K' {
			return true
		}
		if string(b[:4]) == "%PDF" {
			return true
		}
	}
	return false
}

// CountTargets estimates the number of documents Scan would process without
// reading file contents.
func CountTargets(cfg Config) (int, error) {
	st, err := os.Stat(cfg.Root)
	if err != nil {
		return 0, err
	}
	if !st.IsDir() {
		return 1, nil
	}
	count := 0
	ig := loadIgnore(cfg.Root)
	err = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if skipDir(p, rel, d.Name(), cfg, ig) {
				return filepath.SkipDir
			}
			return nil
		}
		if !eligible(rel, cfg, ig) {
			return nil
		}
		if info, _ := d.Info(); info != nil && cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes {
			return nil
		}
		count++
		return nil
	})
	return count, err
}
