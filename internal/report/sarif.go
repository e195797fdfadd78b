package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/esglens/esglens/internal/rules"
	"github.com/esglens/esglens/internal/types"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	ShortDescription sarifMessage   `json:"shortDescription"`
	Properties       map[string]any `json:"properties,omitempty"`
}

type sarifResult struct {
	RuleID     string         `json:"ruleId"`
	RuleIndex  int            `json:"ruleIndex"`
	Level      string         `json:"level"`
	Message    sarifMessage   `json:"message"`
	Locations  []sarifLoc     `json:"locations"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	Snippet sarifMessage `json:"snippet"`
}

// SARIFOptions carries the tool metadata written into the run.
type SARIFOptions struct {
	Table        *rules.Table
	ToolVersion  string
	FilesScanned int
}

// WriteSARIF writes hits as SARIF 2.1.0. Every rule in the table is listed
// under tool.driver.rules and results link to it by ruleIndex. Hits are
// annotations, not verdicts, so every result has level "note".
func WriteSARIF(w io.Writer, docs []types.DocumentResult, opts SARIFOptions) error {
	table := opts.Table
	if table == nil {
		table = rules.Default()
	}
	driver := sarifDriver{
		Name:    "esglens",
		Version: opts.ToolVersion,
		Rules:   make([]sarifRule, 0, table.Len()),
	}
	index := map[int]int{}
	for i, r := range table.Rules() {
		index[r.ID] = i
		driver.Rules = append(driver.Rules, sarifRule{
			ID:               strconv.Itoa(r.ID),
			Name:             string(r.Category),
			ShortDescription: sarifMessage{Text: fmt.Sprintf("%s: %s", r.Category, r.Trigger)},
			Properties:       map[string]any{"category": string(r.Category)},
		})
	}
	run := sarifRun{
		Tool:    sarifTool{Driver: driver},
		Results: []sarifResult{},
	}
	for _, rw := range flatten(docs) {
		idx, ok := index[rw.hit.RuleID]
		if !ok {
			idx = -1
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:    strconv.Itoa(rw.hit.RuleID),
			RuleIndex: idx,
			Level:     "note",
			Message:   sarifMessage{Text: fmt.Sprintf("%s (rule %d)", rw.hit.Category, rw.hit.RuleID)},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: rw.path},
					Region:           sarifRegion{Snippet: sarifMessage{Text: rw.hit.Text}},
				},
			}},
			Properties: map[string]any{
				"category":      string(rw.hit.Category),
				"sentenceIndex": rw.hit.SentenceIndex,
			},
		})
	}
	if opts.FilesScanned > 0 {
		run.Properties = map[string]any{"filesScanned": opts.FilesScanned}
	}
	doc := sarif{Schema: sarifSchema, Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
