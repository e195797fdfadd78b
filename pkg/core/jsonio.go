package core

import (
	"encoding/json"
	"io"
)

// MarshalResult pretty-prints a scan result as JSON for humans or pipelines.
func MarshalResult(w io.Writer, res RuleScanResult) error {
	if res.Hits == nil {
		res.Hits = []RuleHit{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// UnmarshalResult decodes a scan result, useful for ingestion tests.
func UnmarshalResult(r io.Reader) (RuleScanResult, error) {
	var res RuleScanResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return RuleScanResult{}, err
	}
	return res, nil
}
