package legacy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_AlwaysZero(t *testing.T) {
	for _, in := range []string{"", "We aim to be carbon neutral through offsets."} {
		res := Score(in)
		assert.Equal(t, Engine, res.Engine)
		assert.Zero(t, res.Overall)
		assert.Zero(t, res.OverallGreenwashingScore.Score)
		assert.Len(t, res.Radar, 5)
		for _, v := range res.Radar {
			assert.Zero(t, v)
		}
		require.Len(t, res.Breakdown, 5)
		for _, b := range res.Breakdown {
			assert.Zero(t, b.Value)
		}
	}
}

func TestScore_IgnoresInput(t *testing.T) {
	assert.Equal(t, Score(""), Score("Our 100% renewable, net-zero, eco-friendly products."))
}

func TestScore_JSONShape(t *testing.T) {
	b, err := json.Marshal(Score("anything"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "legacy-stub", doc["engine"])
	assert.Equal(t, map[string]any{"score": 0.0}, doc["overall_greenwashing_score"])
	radar := doc["radar"].(map[string]any)
	for _, k := range []string{"vague", "lack_metrics", "misleading", "cherry", "no_3rd"} {
		assert.Contains(t, radar, k)
	}
	breakdown := doc["breakdown"].([]any)
	assert.Equal(t, "Vague or unsubstantiated claims", breakdown[0].(map[string]any)["type"])
}
