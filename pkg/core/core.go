package core

import (
	"github.com/esglens/esglens/internal/legacy"
	"github.com/esglens/esglens/internal/rules"
	"github.com/esglens/esglens/internal/scanner"
	"github.com/esglens/esglens/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Category          = types.Category
	RuleHit           = types.RuleHit
	RuleScanResult    = types.RuleScanResult
	LegacyScoreResult = types.LegacyScoreResult
)

// Scan annotates text with evidence hits using the built-in rule table.
// company is accepted for forward compatibility and has no effect.
func Scan(text, company string) RuleScanResult {
	return scanner.Default().Scan(text, company)
}

// Score is the deprecated scoring entrypoint. It always returns zeros.
//
// Deprecated: use Scan; no score is computed.
func Score(text string) LegacyScoreResult {
	return legacy.Score(text)
}

// RuleIDs returns the built-in rule ids in table order.
func RuleIDs() []int { return rules.IDs() }
