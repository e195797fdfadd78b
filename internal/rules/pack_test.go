package rules

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePack(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadPack(t *testing.T) {
	p := writePack(t, `version: 1.2.0
rules:
  - id: 11
    category: vague
    trigger: 'hope'
  - id: 12
    category: lack_metrics
    trigger: 'target'
    unless: '20\d{2}'
`)
	tbl, err := LoadPack(p)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12}, tbl.IDs())
	assert.Equal(t, ThirdPartyStandards, tbl.ThirdPartySource())

	r, ok := tbl.ByID(12)
	require.True(t, ok)
	assert.True(t, r.Match("A target."))
	assert.False(t, r.Match("A target for 2040."))
}

func TestLoadPack_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"major version", "version: 2.0.0\nrules:\n  - {id: 1, category: vague, trigger: aim}\n", ErrUnsupportedVersion},
		{"missing version", "rules:\n  - {id: 1, category: vague, trigger: aim}\n", ErrUnsupportedVersion},
		{"no rules", "version: 1.0.0\nrules: []\n", ErrEmptyPack},
		{"bad category", "version: 1.0.0\nrules:\n  - {id: 1, category: fluffy, trigger: aim}\n", ErrUnknownCategory},
		{"duplicate", "version: 1.0.0\nrules:\n  - {id: 1, category: vague, trigger: aim}\n  - {id: 1, category: vague, trigger: hope}\n", ErrDuplicateRuleID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPack(writePack(t, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadPack_MissingFile(t *testing.T) {
	_, err := LoadPack(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestWritePack_LoadsBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePack(&buf, Default()))
	tbl, err := ParsePack(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Default().Fingerprint(), tbl.Fingerprint())
}
