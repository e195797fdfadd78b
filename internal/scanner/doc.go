// Package scanner runs the rule table over every sentence of a disclosure and
// collects hits in discovery order: sentences first, then rule-table order.
package scanner
