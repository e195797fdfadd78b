package report

import (
	"encoding/json"
	"io"

	"github.com/esglens/esglens/internal/types"
)

type jsonReport struct {
	Documents    []types.DocumentResult `json:"documents"`
	Hits         int                    `json:"hits"`
	FilesScanned int                    `json:"files_scanned"`
	DurationMS   int64                  `json:"duration_ms"`
}

// WriteJSON writes the documents as a single indented JSON object. Empty hit
// lists are written as [] rather than null.
func WriteJSON(w io.Writer, docs []types.DocumentResult, opts PrintOptions) error {
	out := jsonReport{
		Documents:    make([]types.DocumentResult, 0, len(docs)),
		FilesScanned: opts.FilesScanned,
		DurationMS:   opts.Duration.Milliseconds(),
	}
	for _, d := range docs {
		if d.Hits == nil {
			d.Hits = []types.RuleHit{}
		}
		out.Hits += len(d.Hits)
		out.Documents = append(out.Documents, d)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
