package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/esglens/esglens/internal/cache"
	"github.com/esglens/esglens/internal/rules"
	"github.com/esglens/esglens/internal/scanner"
	"github.com/esglens/esglens/internal/types"
	"golang.org/x/sync/errgroup"
)

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root              string
	IncludeGlobs      string
	ExcludeGlobs      string
	MaxBytes          int64
	Threads           int
	EnableCategories  string
	DisableCategories string
	Company           string
	DefaultExcludes   bool
	NoCache           bool
	DryRun            bool
	Progress          func()

	// Table overrides the built-in rule table (e.g. a loaded rule pack).
	Table *rules.Table
}

// Result contains per-document hits and basic scan statistics.
type Result struct {
	Documents    []types.DocumentResult
	FilesScanned int
	CacheHits    int
	Duration     time.Duration
}

// Hits returns the total number of hits across all documents.
func (r Result) Hits() int {
	n := 0
	for _, d := range r.Documents {
		n += len(d.Hits)
	}
	return n
}

// Scan walks cfg.Root (a file or a directory) and scans every eligible
// document. Documents are returned sorted by path.
func Scan(ctx context.Context, cfg Config) (Result, error) {
	var result Result
	filter, err := newCategoryFilter(cfg.EnableCategories, cfg.DisableCategories)
	if err != nil {
		return result, err
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	scnr := scanner.New(cfg.Table)
	fingerprint := scnr.Table().Fingerprint()
	root := cacheRoot(cfg.Root)

	var db cache.DB
	if !cfg.NoCache {
		db, _ = cache.Load(root)
	} else {
		db.Entries = map[string]cache.Entry{}
	}
	updated := map[string]cache.Entry{}

	var mu sync.Mutex
	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	walkErr := Walk(gctx, cfg, func(rel string, data []byte) {
		if cfg.DryRun {
			mu.Lock()
			result.FilesScanned++
			mu.Unlock()
			if cfg.Progress != nil {
				cfg.Progress()
			}
			return
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			h := fastHash(fingerprint, data)
			doc, cached := db.Lookup(rel, h)
			if !cached {
				doc = scnr.ScanDocument(rel, string(data), cfg.Company)
			}
			mu.Lock()
			defer mu.Unlock()
			result.FilesScanned++
			if cached {
				result.CacheHits++
			}
			updated[rel] = cache.Entry{Hash: h, Result: doc}
			result.Documents = append(result.Documents, filter.apply(doc))
			if cfg.Progress != nil {
				cfg.Progress()
			}
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return result, err
	}
	if walkErr != nil {
		return result, walkErr
	}

	sort.Slice(result.Documents, func(i, j int) bool {
		return result.Documents[i].Path < result.Documents[j].Path
	})
	result.Duration = time.Since(started)
	if !cfg.NoCache && !cfg.DryRun && len(updated) > 0 {
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(root, db)
	}
	return result, nil
}

// ScanReader scans a single document read from r, typically stdin. Caching
// and file selection do not apply.
func ScanReader(r io.Reader, name string, cfg Config) (Result, error) {
	var result Result
	filter, err := newCategoryFilter(cfg.EnableCategories, cfg.DisableCategories)
	if err != nil {
		return result, err
	}
	started := time.Now()
	b, err := io.ReadAll(r)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", name, err)
	}
	if cfg.MaxBytes > 0 && int64(len(b)) > cfg.MaxBytes {
		return result, fmt.Errorf("%s: %d bytes exceeds max-bytes %d", name, len(b), cfg.MaxBytes)
	}
	doc := scanner.New(cfg.Table).ScanDocument(name, string(b), cfg.Company)
	result.Documents = []types.DocumentResult{filter.apply(doc)}
	result.FilesScanned = 1
	result.Duration = time.Since(started)
	return result, nil
}

// cacheRoot is the directory the cache lives in: root itself, or the parent
// directory when root names a single file.
func cacheRoot(root string) string {
	if st, err := os.Stat(root); err == nil && !st.IsDir() {
		return filepath.Dir(root)
	}
	return root
}

func fastHash(fingerprint string, b []byte) string {
	d := xxhash.New()
	_, _ = d.WriteString(fingerprint)
	_, _ = d.Write(b)
	sum := d.Sum64()
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

type categoryFilter struct {
	allowed map[types.Category]bool
	blocked map[types.Category]bool
}

func newCategoryFilter(enable, disable string) (categoryFilter, error) {
	var f categoryFilter
	var err error
	if f.allowed, err = parseCategories(enable); err != nil {
		return f, err
	}
	if f.blocked, err = parseCategories(disable); err != nil {
		return f, err
	}
	return f, nil
}

func parseCategories(list string) (map[types.Category]bool, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	out := map[types.Category]bool{}
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		c, err := types.ParseCategory(s)
		if err != nil {
			return nil, err
		}
		out[c] = true
	}
	return out, nil
}

// apply drops hits outside the enabled set; the notes are rebuilt so the
// reported hit count matches what is returned.
func (f categoryFilter) apply(doc types.DocumentResult) types.DocumentResult {
	if f.allowed == nil && f.blocked == nil {
		return doc
	}
	kept := []types.RuleHit{}
	for _, h := range doc.Hits {
		if f.allowed != nil && !f.allowed[h.Category] {
			continue
		}
		if f.blocked[h.Category] {
			continue
		}
		kept = append(kept, h)
	}
	doc.Hits = kept
	doc.Notes = scanner.Notes(doc.Sentences, len(kept))
	return doc
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
