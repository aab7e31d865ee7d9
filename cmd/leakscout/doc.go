// Package leakscout provides the command-line interface for the leakscout
// tool. It configures subcommands (scan, ci, ignore, update), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/leakscout/leakscout/cmd/leakscout"
//	func main() { leakscout.Execute() }
package leakscout
