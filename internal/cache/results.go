package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/esglens/esglens/internal/types"
)

// ScanResults stores the documents and metadata from the last scan
type ScanResults struct {
	Documents []types.DocumentResult `json:"documents"`
	Timestamp time.Time              `json:"timestamp"`
	Root      string                 `json:"root"`
	Hits      int                    `json:"hits"`
}

func resultsPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "esglens_last_scan.json")
	}
	return filepath.Join(root, ".esglens_last_scan.json")
}

// SaveResults saves scan results so they can be re-rendered without rescanning
func SaveResults(root string, docs []types.DocumentResult) error {
	p := resultsPath(root)
	n := 0
	for _, d := range docs {
		n += len(d.Hits)
	}
	results := ScanResults{
		Documents: docs,
		Timestamp: time.Now(),
		Root:      root,
		Hits:      n,
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0644)
}

// LoadResults loads the last scan results
func LoadResults(root string) (ScanResults, error) {
	var results ScanResults
	p := resultsPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(f, &results); err != nil {
		return results, err
	}
	return results, nil
}
