package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/esglens/esglens/internal/types"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	// initial load should return empty DB and error
	db, _ := Load(dir)
	if db.Entries == nil {
		t.Fatalf("expected entries map initialized")
	}
	doc := types.DocumentResult{Path: "a.txt", Hits: []types.RuleHit{{Category: types.CatVague, RuleID: 901, Text: "We aim."}}}
	db.Entries["a.txt"] = Entry{Hash: "deadbeef", Result: doc}
	if err := Save(dir, db); err != nil {
		t.Fatalf("save: %v", err)
	}
	// file should exist
	if _, err := os.Stat(filepath.Join(dir, ".esglenscache.json")); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	db2, err := Load(dir)
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	got, ok := db2.Lookup("a.txt", "deadbeef")
	if !ok || len(got.Hits) != 1 || got.Hits[0].RuleID != 901 {
		t.Fatalf("unexpected entry: %#v", got)
	}
	if _, ok := db2.Lookup("a.txt", "cafebabe"); ok {
		t.Fatal("stale hash must miss")
	}
}

func TestSave_PrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Save(dir, DB{Entries: map[string]Entry{}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git", "esglenscache.json")); err != nil {
		t.Fatalf("expected cache under .git: %v", err)
	}
}

func TestSave_NilEntries(t *testing.T) {
	if err := Save(t.TempDir(), DB{}); err == nil {
		t.Fatal("expected error for nil entries")
	}
}

func TestResults_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	docs := []types.DocumentResult{{Path: "r.md", Hits: []types.RuleHit{{RuleID: 102}, {RuleID: 402}}}}
	if err := SaveResults(dir, docs); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}
	res, err := LoadResults(dir)
	if err != nil {
		t.Fatalf("LoadResults: %v", err)
	}
	if res.Hits != 2 || len(res.Documents) != 1 || res.Root != dir {
		t.Fatalf("unexpected results: %#v", res)
	}
}
