// Package sentences normalizes raw disclosure text and breaks it into the
// ordered sentence sequence that rules are evaluated against.
package sentences
