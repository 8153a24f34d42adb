// Package main provides the entry point for VRC Visits.
package main

import (
	"os"
)

func main() {
	if err := newCLI(os.Stdout, os.Stderr).rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
