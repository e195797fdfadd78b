package types

import "fmt"

// Category is one of the fixed evidence dimensions a rule reports on.
type Category string

const (
	CatVague       Category = "vague"
	CatLackMetrics Category = "lack_metrics"
	CatMisleading  Category = "misleading"
	CatCherry      Category = "cherry"
	CatNoThirdPty  Category = "no_3rd"
)

// Categories returns the closed category set in canonical order.
func Categories() []Category {
	return []Category{CatVague, CatLackMetrics, CatMisleading, CatCherry, CatNoThirdPty}
}

// ParseCategory validates s against the closed category set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// MaxHitText is the number of characters of a sentence kept as evidence.
const MaxHitText = 400

// RuleHit is a single rule match against one sentence of a document.
type RuleHit struct {
	Category      Category `json:"category"`
	RuleID        int      `json:"rule_id"`
	Text          string   `json:"text"`
	SentenceIndex int      `json:"sentence_index"`
}

// RuleScanResult is the envelope returned by a scan: hits in discovery order
// (sentence order, then rule-table order) plus a diagnostic summary.
type RuleScanResult struct {
	Hits  []RuleHit `json:"hits"`
	Notes string    `json:"notes"`
}

// DocumentResult binds a scan result to the document it came from.
type DocumentResult struct {
	Path      string    `json:"path"`
	Hits      []RuleHit `json:"hits"`
	Notes     string    `json:"notes"`
	Sentences int       `json:"sentences"`
}

// LegacyBreakdownItem is one row of the legacy zero-score breakdown.
type LegacyBreakdownItem struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// LegacyOverall mirrors the nested overall score object old callers read.
type LegacyOverall struct {
	Score float64 `json:"score"`
}

// LegacyScoreResult is the shape expected by callers of the retired scoring
// interface. Every value is zero.
type LegacyScoreResult struct {
	Radar                    map[Category]int      `json:"radar"`
	Overall                  float64               `json:"overall"`
	OverallGreenwashingScore LegacyOverall         `json:"overall_greenwashing_score"`
	Breakdown                []LegacyBreakdownItem `json:"breakdown"`
	Engine                   string                `json:"engine"`
}
