// Package rules holds the ordered rule table evaluated against each sentence
// of a disclosure.
//
// A rule pairs a trigger pattern with an optional "unless" pattern. The rule
// fires when the trigger occurs and the unless pattern does not occur anywhere
// from the end of the furthest-reaching trigger occurrence to the end of the
// sentence. Patterns are RE2, so evaluation is linear in sentence length.
//
// The built-in table is constructed once at package init and never mutated.
// Rule packs loaded from YAML produce new, equally immutable tables.
package rules
