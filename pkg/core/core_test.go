package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_Smoke(t *testing.T) {
	res := Scan("We aim to reduce emissions.", "")
	require.Len(t, res.Hits, 1)
	assert.Equal(t, Category("vague"), res.Hits[0].Category)
	assert.Equal(t, 901, res.Hits[0].RuleID)
	assert.Equal(t, 0, res.Hits[0].SentenceIndex)
	assert.Equal(t, []int{901, 102, 402, 303, 202, 302}, RuleIDs())
}

func TestScan_RuleIDsStable(t *testing.T) {
	text := "We pledge renewable electricity. Our goal: only scope 1/2."
	ids := func() []int {
		var out []int
		for _, h := range Scan(text, "").Hits {
			out = append(out, h.RuleID)
		}
		return out
	}
	first := ids()
	require.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ids())
	}
}

func TestScore_Legacy(t *testing.T) {
	assert.Equal(t, "legacy-stub", Score("x").Engine)
}

func TestResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarshalResult(&buf, RuleScanResult{Notes: "n"}))
	assert.Contains(t, buf.String(), `"hits": []`)

	res := Scan("Our target is net zero.", "")
	buf.Reset()
	require.NoError(t, MarshalResult(&buf, res))
	assert.Contains(t, buf.String(), `"sentence_index": 0`)
	got, err := UnmarshalResult(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, res, got)

	_, err = UnmarshalResult(strings.NewReader("{"))
	assert.Error(t, err)
}
