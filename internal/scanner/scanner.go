package scanner

import (
	"fmt"

	"github.com/esglens/esglens/internal/rules"
	"github.com/esglens/esglens/internal/sentences"
	"github.com/esglens/esglens/internal/types"
)

// Scanner applies a rule table to the sentences of a disclosure. It holds no
// mutable state and may be shared between goroutines.
type Scanner struct {
	table *rules.Table
}

// New returns a Scanner over table. A nil table selects the built-in rules.
func New(table *rules.Table) *Scanner {
	if table == nil {
		table = rules.Default()
	}
	return &Scanner{table: table}
}

var defaultScanner = New(nil)

// Default returns the Scanner over the built-in rule table.
func Default() *Scanner { return defaultScanner }

// Table returns the rule table the scanner evaluates.
func (s *Scanner) Table() *rules.Table { return s.table }

// Scan annotates text with rule hits. company is accepted for callers that
// already pass it and does not influence matching.
func (s *Scanner) Scan(text, company string) types.RuleScanResult {
	res, _ := s.scan(text, company)
	return res
}

// ScanDocument is Scan bound to a document path.
func (s *Scanner) ScanDocument(path, text, company string) types.DocumentResult {
	res, n := s.scan(text, company)
	return types.DocumentResult{Path: path, Hits: res.Hits, Notes: res.Notes, Sentences: n}
}

func (s *Scanner) scan(text, _ string) (types.RuleScanResult, int) {
	sents := sentences.Split(text)
	hits := []types.RuleHit{}
	for i, sent := range sents {
		// Sentences naming a verification standard are whitelisted for no_3rd.
		thirdParty := s.table.HasThirdParty(sent)
		for j := 0; j < s.table.Len(); j++ {
			r := s.table.At(j)
			if r.Category == types.CatNoThirdPty && thirdParty {
				continue
			}
			if r.Match(sent) {
				hits = append(hits, types.RuleHit{
					Category:      r.Category,
					RuleID:        r.ID,
					Text:          truncate(sent, types.MaxHitText),
					SentenceIndex: i,
				})
			}
		}
	}
	return types.RuleScanResult{Hits: hits, Notes: Notes(len(sents), len(hits))}, len(sents)
}

// Notes formats the diagnostic summary attached to every result.
func Notes(sentenceCount, hitCount int) string {
	return fmt.Sprintf("sentences=%d; hits=%d; whitelist_in_sent=third_party", sentenceCount, hitCount)
}

// truncate keeps the first n characters (runes) of s.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
