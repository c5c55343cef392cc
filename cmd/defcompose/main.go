// Package main provides the defcompose command.
//
// defcompose composes three-tier definitions stored as YAML files:
//   - merge: local + shared groups + system into one composed definition
//   - demerge: a composed definition back into its local part
//   - check: validate the tiers and report composition diagnostics
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
