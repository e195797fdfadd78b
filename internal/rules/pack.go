package rules

import (
	"fmt"
	"io"
	"os"

	semver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// PackVersion is the rule pack schema version written by WritePack.
const PackVersion = "1.0.0"

var supportedPacks = semver.MustParseRange(">=1.0.0 <2.0.0")

// Pack is the on-disk YAML shape of a rule pack.
type Pack struct {
	Version    string     `yaml:"version"`
	ThirdParty string     `yaml:"third_party,omitempty"`
	Rules      []RuleSpec `yaml:"rules"`
}

// LoadPack reads a YAML rule pack from path and compiles it into a table.
func LoadPack(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule pack: %w", err)
	}
	t, err := ParsePack(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParsePack decodes and compiles a YAML rule pack.
func ParsePack(b []byte) (*Table, error) {
	var p Pack
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	v, err := semver.ParseTolerant(p.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, p.Version)
	}
	if !supportedPacks(v) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}
	return NewTable(p.Rules, p.ThirdParty)
}

// WritePack encodes t as a YAML rule pack.
func WritePack(w io.Writer, t *Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Pack{Version: PackVersion, ThirdParty: t.ThirdPartySource(), Rules: t.Specs()}); err != nil {
		return err
	}
	return enc.Close()
}
