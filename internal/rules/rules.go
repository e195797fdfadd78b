package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/esglens/esglens/internal/types"
)

var (
	ErrEmptyPack          = errors.New("rule pack has no rules")
	ErrDuplicateRuleID    = errors.New("duplicate rule id")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrInvalidRule        = errors.New("invalid rule")
	ErrUnsupportedVersion = errors.New("unsupported rule pack version")
)

// RuleSpec is the uncompiled form of a rule, as written in a rule pack.
type RuleSpec struct {
	ID       int    `yaml:"id" json:"id"`
	Category string `yaml:"category" json:"category"`
	Trigger  string `yaml:"trigger" json:"trigger"`
	Unless   string `yaml:"unless,omitempty" json:"unless,omitempty"`
}

// Rule is a compiled rule. Obtain one through Compile; the zero value does
// not match anything.
type Rule struct {
	ID       int
	Category types.Category
	Trigger  string
	Unless   string

	trigger *regexp.Regexp
	unless  *regexp.Regexp
}

// Compile validates spec and compiles its patterns case-insensitively.
func Compile(spec RuleSpec) (Rule, error) {
	cat, err := types.ParseCategory(strings.TrimSpace(spec.Category))
	if err != nil {
		return Rule{}, fmt.Errorf("rule %d: %w: %q", spec.ID, ErrUnknownCategory, spec.Category)
	}
	if spec.ID <= 0 {
		return Rule{}, fmt.Errorf("rule %d: %w: id must be positive", spec.ID, ErrInvalidRule)
	}
	if strings.TrimSpace(spec.Trigger) == "" {
		return Rule{}, fmt.Errorf("rule %d: %w: empty trigger", spec.ID, ErrInvalidRule)
	}
	// Anchored at the start with a greedy prefix and leftmost-longest
	// semantics, the match end is the furthest end of any trigger occurrence.
	trig, err := regexp.Compile(`(?i)^(?s:.*)(?:` + spec.Trigger + `)`)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %d: compile trigger: %w", spec.ID, err)
	}
	trig.Longest()
	r := Rule{ID: spec.ID, Category: cat, Trigger: spec.Trigger, Unless: spec.Unless, trigger: trig}
	if spec.Unless != "" {
		if r.unless, err = regexp.Compile(`(?i)(?:` + spec.Unless + `)`); err != nil {
			return Rule{}, fmt.Errorf("rule %d: compile unless: %w", spec.ID, err)
		}
	}
	return r, nil
}

// Match reports whether the rule fires on sentence.
func (r Rule) Match(sentence string) bool {
	if r.trigger == nil {
		return false
	}
	loc := r.trigger.FindStringIndex(sentence)
	if loc == nil {
		return false
	}
	if r.unless == nil {
		return true
	}
	return !r.unless.MatchString(sentence[loc[1]:])
}

// Spec returns the uncompiled form of r.
func (r Rule) Spec() RuleSpec {
	return RuleSpec{ID: r.ID, Category: string(r.Category), Trigger: r.Trigger, Unless: r.Unless}
}

// Table is an ordered, read-only set of rules plus the third-party
// verification marker used to whitelist no_3rd hits per sentence.
type Table struct {
	rules       []Rule
	thirdParty  *regexp.Regexp
	thirdSrc    string
	fingerprint string
}

// NewTable compiles specs in order. An empty thirdParty falls back to the
// built-in list of verification standards.
func NewTable(specs []RuleSpec, thirdParty string) (*Table, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyPack
	}
	if strings.TrimSpace(thirdParty) == "" {
		thirdParty = ThirdPartyStandards
	}
	marker, err := regexp.Compile(`(?i)(?:` + thirdParty + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile third-party marker: %w", err)
	}
	t := &Table{thirdParty: marker, thirdSrc: thirdParty}
	seen := make(map[int]bool, len(specs))
	h := xxhash.New()
	for _, s := range specs {
		if seen[s.ID] {
			return nil, fmt.Errorf("rule %d: %w", s.ID, ErrDuplicateRuleID)
		}
		seen[s.ID] = true
		r, err := Compile(s)
		if err != nil {
			return nil, err
		}
		t.rules = append(t.rules, r)
		_, _ = fmt.Fprintf(h, "%d|%s|%s|%s\n", r.ID, r.Category, r.Trigger, r.Unless)
	}
	_, _ = h.WriteString(thirdParty)
	t.fingerprint = fmt.Sprintf("%016x", h.Sum64())
	return t, nil
}

// Rules returns a copy of the rules in table order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// At returns the rule at table position i.
func (t *Table) At(i int) Rule { return t.rules[i] }

// ByID looks up a rule by its id.
func (t *Table) ByID(id int) (Rule, bool) {
	for _, r := range t.rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// IDs returns the rule ids in table order.
func (t *Table) IDs() []int {
	out := make([]int, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.ID
	}
	return out
}

// HasThirdParty reports whether sentence names a recognized third-party
// verification standard.
func (t *Table) HasThirdParty(sentence string) bool {
	return t.thirdParty.MatchString(sentence)
}

// ThirdPartySource returns the pattern source of the third-party marker.
func (t *Table) ThirdPartySource() string { return t.thirdSrc }

// Fingerprint identifies the table contents; it changes whenever any rule
// or the third-party marker changes.
func (t *Table) Fingerprint() string { return t.fingerprint }

// Specs returns the uncompiled rules in table order.
func (t *Table) Specs() []RuleSpec {
	out := make([]RuleSpec, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Spec()
	}
	return out
}
