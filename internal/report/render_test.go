package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/esglens/esglens/internal/types"
)

func sampleDocs() []types.DocumentResult {
	return []types.DocumentResult{
		{Path: "b.txt", Hits: []types.RuleHit{
			{Category: types.CatMisleading, RuleID: 402, Text: "We use renewable electricity.", SentenceIndex: 1},
		}},
		{Path: "a.txt", Hits: []types.RuleHit{
			{Category: types.CatVague, RuleID: 901, Text: "We aim to reduce emissions.", SentenceIndex: 0},
			{Category: types.CatLackMetrics, RuleID: 102, Text: "Our target is net zero.", SentenceIndex: 1},
		}},
		{Path: "c.txt", Hits: nil},
	}
}

func TestPrintText_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No findings") {
		t.Fatalf("expected no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Documents scanned: 10") {
		t.Fatalf("expected footer with documents scanned; got: %q", out)
	}
	if !strings.Contains(out, "Scan duration: 1.20s") {
		t.Fatalf("expected duration in footer; got: %q", out)
	}
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleDocs(), PrintOptions{NoColor: true, FilesScanned: 3})
	out := buf.String()
	if n := strings.Count(out, "Hits: 3"); n != 1 {
		t.Fatalf("expected the hit total once, got %d; output: %q", n, out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes with NoColor; got: %q", out)
	}
	// sorted by path, then sentence
	if strings.Index(out, "a.txt#0") > strings.Index(out, "b.txt#1") {
		t.Fatalf("expected a.txt before b.txt; got: %q", out)
	}
	if !strings.Contains(out, "Hits: 3 (vague: 1, lack_metrics: 1, misleading: 1, cherry: 0, no_3rd: 0)") {
		t.Fatalf("expected per-category footer; got: %q", out)
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTable(&buf, sampleDocs(), PrintOptions{NoColor: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "CATEGORY") {
		t.Fatalf("expected table header with CATEGORY; got: %q", out)
	}
	if !strings.Contains(out, "lack_metrics") || !strings.Contains(out, "402") {
		t.Fatalf("expected hits in table; got: %q", out)
	}
	if !strings.Contains(out, "│") {
		t.Fatalf("expected table borders; got: %q", out)
	}
}

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTable(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "No findings") {
		t.Fatalf("expected no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Documents scanned: 10") {
		t.Fatalf("expected footer with documents scanned; got: %q", out)
	}
}

func TestEllipsize(t *testing.T) {
	if got := ellipsize("abcdef", 10); got != "abcdef" {
		t.Fatalf("short strings unchanged; got %q", got)
	}
	if got := ellipsize("abcdef", 4); got != "abc…" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteJSON_EmptyHitsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleDocs(), PrintOptions{FilesScanned: 3}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"hits": []`) {
		t.Fatalf("expected empty hits array; got: %s", buf.String())
	}
	var doc struct {
		Documents []types.DocumentResult `json:"documents"`
		Hits      int                    `json:"hits"`
		Files     int                    `json:"files_scanned"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Hits != 3 || doc.Files != 3 || len(doc.Documents) != 3 {
		t.Fatalf("unexpected summary: %+v", doc)
	}
	if doc.Documents[1].Hits[1].SentenceIndex != 1 {
		t.Fatalf("expected sentence_index round trip; got %+v", doc.Documents[1].Hits)
	}
}

func TestHasHits(t *testing.T) {
	if HasHits(nil) {
		t.Fatal("nil docs have no hits")
	}
	if HasHits([]types.DocumentResult{{Path: "x", Hits: []types.RuleHit{}}}) {
		t.Fatal("empty hit list has no hits")
	}
	if !HasHits(sampleDocs()) {
		t.Fatal("expected hits")
	}
}

func TestBaseline_FilterNew(t *testing.T) {
	p := filepath.Join(t.TempDir(), "esglens.baseline.json")
	docs := sampleDocs()
	if err := SaveBaseline(p, docs[:1]); err != nil {
		t.Fatal(err)
	}
	base, err := LoadBaseline(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(base.Items) != 1 {
		t.Fatalf("expected 1 baseline item, got %d", len(base.Items))
	}
	out := FilterNew(docs, base)
	if len(out) != 3 {
		t.Fatalf("documents must be preserved; got %d", len(out))
	}
	if len(out[0].Hits) != 0 {
		t.Fatalf("baselined hit should be dropped; got %+v", out[0].Hits)
	}
	if len(out[1].Hits) != 2 {
		t.Fatalf("new hits should be kept; got %+v", out[1].Hits)
	}
	// same text under a different rule id is new
	moved := []types.DocumentResult{{Path: "b.txt", Hits: []types.RuleHit{
		{Category: types.CatVague, RuleID: 901, Text: "We use renewable electricity.", SentenceIndex: 1},
	}}}
	if !HasHits(FilterNew(moved, base)) {
		t.Fatal("expected hit keyed on a different rule to be new")
	}
}

func TestLoadBaseline_Missing(t *testing.T) {
	b, err := LoadBaseline(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing baseline")
	}
	if b.Items == nil {
		t.Fatal("expected usable empty baseline")
	}
}
