package rules

import (
	"strings"
	"testing"

	"github.com/esglens/esglens/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Order(t *testing.T) {
	assert.Equal(t, []int{901, 102, 402, 303, 202, 302}, IDs())
	tbl := Default()
	require.Equal(t, 6, tbl.Len())
	cats := make([]types.Category, 0, tbl.Len())
	for _, r := range tbl.Rules() {
		cats = append(cats, r.Category)
	}
	assert.Equal(t, []types.Category{
		types.CatVague, types.CatLackMetrics, types.CatMisleading,
		types.CatMisleading, types.CatCherry, types.CatNoThirdPty,
	}, cats)
}

func TestDefault_RulesReturnsCopy(t *testing.T) {
	rs := Default().Rules()
	rs[0] = Rule{}
	assert.Equal(t, IDVague, Default().At(0).ID)
}

func TestRuleMatch(t *testing.T) {
	tests := []struct {
		name     string
		id       int
		sentence string
		want     bool
	}{
		{"vague aim", IDVague, "We aim to reduce emissions.", true},
		{"vague case-insensitive", IDVague, "WE PLEDGE TO ACT.", true},
		{"vague none", IDVague, "Emissions fell 12%.", false},

		{"target without year", IDLackMetrics, "Our target is net zero.", true},
		{"target with year", IDLackMetrics, "Our target is net zero by 2030.", false},
		{"goal with baseline", IDLackMetrics, "Our goal is a 40% cut against the baseline.", false},
		{"goal with base year", IDLackMetrics, "Our goal uses base year 2019.", false},
		{"year before trigger only", IDLackMetrics, "In 2021 we set a target.", true},
		{"later trigger without year", IDLackMetrics, "Our 2030 target sits beside a wider goal.", true},
		{"year after last trigger", IDLackMetrics, "Our target and goal date from 2019.", false},

		{"renewable unqualified", IDScope2Ambiguous, "We use renewable electricity.", true},
		{"renewable market-based", IDScope2Ambiguous, "We use renewable electricity (market-based).", false},
		{"green with certificates", IDScope2Ambiguous, "Green electricity backed by a guarantee of origin.", false},
		{"qualifier before trigger", IDScope2Ambiguous, "On a market-based view we use green electricity.", true},

		{"avoided emissions undisclosed", IDAvoidedEmissions, "Our products enabled emissions savings of 2 Mt.", true},
		{"avoided emissions separate", IDAvoidedEmissions, "Avoided emissions are reported separately.", false},
		{"avoided outside inventory", IDAvoidedEmissions, "Avoided emissions sit outside  inventory.", false},

		{"only scope 1/2", IDCherryScope, "We report only scope 1/2; scope 3 excluded.", true},
		{"scope 3 deferred", IDCherryScope, "Scope 3 deferred to next year.", true},
		{"full scopes", IDCherryScope, "We report scope 1, 2 and 3.", false},

		{"neutral via offsets", IDNeutralOffsets, "We are carbon neutral through offsets.", true},
		{"neutral using credits", IDNeutralOffsets, "Climate neutral using carbon credits.", true},
		{"neutral verified", IDNeutralOffsets, "We are carbon neutral through offsets verified under PAS 2060.", false},
		{"neutral without link word", IDNeutralOffsets, "We are carbon neutral and buy offsets.", false},
		{"standard before trigger", IDNeutralOffsets, "Under Verra we are carbon neutral via offsets.", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Default().ByID(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, r.Match(tt.sentence))
		})
	}
}

func TestRuleMatch_ZeroValue(t *testing.T) {
	assert.False(t, Rule{}.Match("We aim high."))
}

func TestHasThirdParty(t *testing.T) {
	tbl := Default()
	assert.True(t, tbl.HasThirdParty("Certified to the gold standard."))
	assert.True(t, tbl.HasThirdParty("Assured under ISAE3000."))
	assert.True(t, tbl.HasThirdParty("AA1000 assurance"))
	assert.False(t, tbl.HasThirdParty("Verified by our own team."))
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(RuleSpec{ID: 1, Category: "bogus", Trigger: "x"})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = Compile(RuleSpec{ID: 0, Category: "vague", Trigger: "x"})
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = Compile(RuleSpec{ID: 1, Category: "vague", Trigger: "  "})
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = Compile(RuleSpec{ID: 1, Category: "vague", Trigger: "(unclosed"})
	assert.Error(t, err)

	_, err = Compile(RuleSpec{ID: 1, Category: "vague", Trigger: "x", Unless: "[bad"})
	assert.Error(t, err)
}

func TestNewTable_Errors(t *testing.T) {
	_, err := NewTable(nil, "")
	assert.ErrorIs(t, err, ErrEmptyPack)

	_, err = NewTable([]RuleSpec{
		{ID: 7, Category: "vague", Trigger: "aim"},
		{ID: 7, Category: "cherry", Trigger: "only"},
	}, "")
	assert.ErrorIs(t, err, ErrDuplicateRuleID)

	_, err = NewTable([]RuleSpec{{ID: 7, Category: "vague", Trigger: "aim"}}, "(")
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a, err := NewTable(BuiltinSpecs(), ThirdPartyStandards)
	require.NoError(t, err)
	assert.Equal(t, Default().Fingerprint(), a.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)

	specs := BuiltinSpecs()
	specs[0].Trigger = "hope"
	b, err := NewTable(specs, ThirdPartyStandards)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestRuleMatch_PathologicalInput(t *testing.T) {
	long := "carbon neutral " + strings.Repeat("via through using ", 5000) + "offsets"
	r, _ := Default().ByID(IDNeutralOffsets)
	assert.True(t, r.Match(long))
	assert.False(t, r.Match(long+" Gold Standard"))
}
