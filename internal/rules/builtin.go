package rules

import "github.com/esglens/esglens/internal/types"

// Stable ids of the built-in rules. Never reassign these.
const (
	IDVague            = 901
	IDLackMetrics      = 102
	IDScope2Ambiguous  = 402
	IDAvoidedEmissions = 303
	IDCherryScope      = 202
	IDNeutralOffsets   = 302
)

const (
	vagueVerbs     = `(aim|seek|strive|endeavor|commit|pledge|work towards|aspire|intend|plan to)`
	targetWords    = `(target|goal|objective|commitment)`
	yearOrBaseline = `(20\d{2}|baseline|base\s*year|reference\s*year|from\s*20\d{2})`

	scope2Ambiguous   = `(renewable electricity|green electricity)`
	scope2Qualifier   = `(market[- ]based|location[- ]based|dual reporting|residual mix|REC|GO|guarantee of origin|retire|cancel)`
	avoidedEmissions  = `(avoided emissions|enabled emissions)`
	avoidedDisclosure = `(separate|disclose|outside\s+inventory)`

	scopeOnly = `(only\s+scope\s*1\s*/\s*2|scope\s*3\s*(excluded|later|deferred))`

	neutralOffset = `(carbon neutral|climate neutral).*?(via|through|using).*?(offset|credit)s?`

	// ThirdPartyStandards matches recognized third-party verification
	// standards. Sentences mentioning one never produce no_3rd hits.
	ThirdPartyStandards = `(PAS\s*2060|Verra|Gold\s*Standard|ICROA|ISAE\s*3000|AA1000)`
)

// BuiltinSpecs returns the built-in rules in table order.
func BuiltinSpecs() []RuleSpec {
	return []RuleSpec{
		{ID: IDVague, Category: string(types.CatVague), Trigger: vagueVerbs},
		{ID: IDLackMetrics, Category: string(types.CatLackMetrics), Trigger: targetWords, Unless: yearOrBaseline},
		{ID: IDScope2Ambiguous, Category: string(types.CatMisleading), Trigger: scope2Ambiguous, Unless: scope2Qualifier},
		{ID: IDAvoidedEmissions, Category: string(types.CatMisleading), Trigger: avoidedEmissions, Unless: avoidedDisclosure},
		{ID: IDCherryScope, Category: string(types.CatCherry), Trigger: scopeOnly},
		{ID: IDNeutralOffsets, Category: string(types.CatNoThirdPty), Trigger: neutralOffset, Unless: ThirdPartyStandards},
	}
}

var defaultTable = mustTable(BuiltinSpecs(), ThirdPartyStandards)

func mustTable(specs []RuleSpec, thirdParty string) *Table {
	t, err := NewTable(specs, thirdParty)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the built-in rule table. It is shared and read-only.
func Default() *Table { return defaultTable }

// IDs returns the built-in rule ids in table order.
func IDs() []int { return defaultTable.IDs() }
