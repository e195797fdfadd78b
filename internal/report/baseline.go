package report

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/esglens/esglens/internal/types"
)

type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	_ = json.Unmarshal(f, &b)
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, docs []types.DocumentResult) error {
	b := Baseline{Items: map[string]bool{}}
	for _, d := range docs {
		for _, h := range d.Hits {
			b.Items[key(d.Path, h)] = true
		}
	}
	buf, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, buf, 0644)
}

// FilterNew drops every hit already recorded in base. Documents keep their
// place even when all of their hits are filtered.
func FilterNew(docs []types.DocumentResult, base Baseline) []types.DocumentResult {
	out := make([]types.DocumentResult, 0, len(docs))
	for _, d := range docs {
		kept := []types.RuleHit{}
		for _, h := range d.Hits {
			if !base.Items[key(d.Path, h)] {
				kept = append(kept, h)
			}
		}
		d.Hits = kept
		out = append(out, d)
	}
	return out
}

func key(path string, h types.RuleHit) string {
	return path + "|" + strconv.Itoa(h.RuleID) + "|" + h.Text
}
