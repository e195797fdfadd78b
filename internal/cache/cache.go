package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/esglens/esglens/internal/types"
)

// Entry is a cached scan result for one document.
type Entry struct {
	// Hash of the rule table fingerprint and the document content.
	Hash   string               `json:"hash"`
	Result types.DocumentResult `json:"result"`
}

type DB struct {
	// Path relative to scan root -> cached entry
	Entries map[string]Entry `json:"entries"`
}

// Lookup returns the cached result for path when its hash still matches.
func (db DB) Lookup(path, hash string) (types.DocumentResult, bool) {
	e, ok := db.Entries[path]
	if !ok || e.Hash != hash {
		return types.DocumentResult{}, false
	}
	return e.Result, true
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	// Fall back to root if .git does not exist
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "esglenscache.json")
	}
	return filepath.Join(root, ".esglenscache.json")
}

func Load(root string) (DB, error) {
	var db DB
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0644)
}
