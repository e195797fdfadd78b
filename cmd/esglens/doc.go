// Package esglens provides the command-line interface for esglens. It wires
// the scan, rules, baseline, history and serve subcommands to the engine and
// report packages.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/esglens/esglens/cmd/esglens"
//	func main() { esglens.Execute() }
package esglens
