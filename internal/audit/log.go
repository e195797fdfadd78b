package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/esglens/esglens/internal/types"
	"github.com/google/uuid"
)

type ScanRecord struct {
	Timestamp      time.Time         `json:"timestamp"`
	ScanID         string            `json:"scan_id"`
	Root           string            `json:"root"`
	RuleTable      string            `json:"rule_table"`
	TotalHits      int               `json:"total_hits"`
	NewHits        int               `json:"new_hits"`
	BaselinedCount int               `json:"baselined_count"`
	CategoryCounts map[string]int    `json:"category_counts"`
	FilesScanned   int               `json:"files_scanned"`
	Duration       string            `json:"duration"`
	BaselineFile   string            `json:"baseline_file,omitempty"`
	Documents      []DocumentSummary `json:"documents,omitempty"`
	TopHits        []HitSummary      `json:"top_hits,omitempty"`
}

// DocumentSummary records per-document counts without the evidence text.
type DocumentSummary struct {
	Path      string `json:"path"`
	Sentences int    `json:"sentences"`
	Hits      int    `json:"hits"`
}

type HitSummary struct {
	Path          string `json:"path"`
	RuleID        int    `json:"rule_id"`
	Category      string `json:"category"`
	SentenceIndex int    `json:"sentence_index"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".esglens_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "esglens_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

// Path returns the file the log appends to.
func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns the recorded scans, newest first. Reading stops at the
// first malformed record.
func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record ScanRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogScan appends record, assigning a scan id when it has none.
func (a *AuditLog) LogScan(record ScanRecord) (string, error) {
	if record.ScanID == "" {
		record.ScanID = uuid.NewString()
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return "", fmt.Errorf("failed to write audit record: %w", err)
	}
	return record.ScanID, nil
}

func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}

	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}

	records = append(records[:index], records[index+1:]...)

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	f, err := os.Create(a.logPath)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}

// CreateScanRecord summarizes a scan. allDocs are the documents before
// baseline filtering and newDocs after it.
func CreateScanRecord(
	root string,
	ruleTable string,
	allDocs []types.DocumentResult,
	newDocs []types.DocumentResult,
	filesScanned int,
	duration time.Duration,
	baselineFile string,
) ScanRecord {
	categoryCounts := make(map[string]int)
	for _, c := range types.Categories() {
		categoryCounts[string(c)] = 0
	}
	total := 0
	documents := make([]DocumentSummary, 0, len(allDocs))
	for _, d := range allDocs {
		for _, h := range d.Hits {
			categoryCounts[string(h.Category)]++
		}
		total += len(d.Hits)
		documents = append(documents, DocumentSummary{Path: d.Path, Sentences: d.Sentences, Hits: len(d.Hits)})
	}

	newCount := 0
	topHits := make([]HitSummary, 0, 10)
	for _, d := range newDocs {
		for _, h := range d.Hits {
			newCount++
			if len(topHits) < 10 {
				topHits = append(topHits, HitSummary{
					Path:          d.Path,
					RuleID:        h.RuleID,
					Category:      string(h.Category),
					SentenceIndex: h.SentenceIndex,
				})
			}
		}
	}

	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           root,
		RuleTable:      ruleTable,
		TotalHits:      total,
		NewHits:        newCount,
		BaselinedCount: total - newCount,
		CategoryCounts: categoryCounts,
		FilesScanned:   filesScanned,
		Duration:       duration.String(),
		BaselineFile:   baselineFile,
		Documents:      documents,
		TopHits:        topHits,
	}
}
