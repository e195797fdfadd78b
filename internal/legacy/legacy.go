// Package legacy keeps the retired scoring entry point alive for callers that
// have not moved to annotation-only scans. It never scores anything.
package legacy

import "github.com/esglens/esglens/internal/types"

// Engine is the marker old callers use to recognize the stub.
const Engine = "legacy-stub"

var breakdownLabels = []string{
	"Vague or unsubstantiated claims",
	"Lack of specific metrics or targets",
	"Misleading terminology",
	"Cherry-picked data",
	"Absence of third-party verification",
}

// Score returns an all-zero breakdown regardless of text.
func Score(_ string) types.LegacyScoreResult {
	radar := make(map[types.Category]int, len(types.Categories()))
	for _, c := range types.Categories() {
		radar[c] = 0
	}
	breakdown := make([]types.LegacyBreakdownItem, len(breakdownLabels))
	for i, l := range breakdownLabels {
		breakdown[i] = types.LegacyBreakdownItem{Type: l, Value: 0}
	}
	return types.LegacyScoreResult{
		Radar:     radar,
		Breakdown: breakdown,
		Engine:    Engine,
	}
}
