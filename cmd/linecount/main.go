// Package main provides the entry point for the linecount CLI tool.
//
// The linecount command counts the lines of a file, or of every file with a
// recognized text extension in a directory, and prints the total along with
// the time taken.
//
// Usage:
//
//	linecount <path> [--buffer-size=<KB>] [--skip-empty] [--recursive]
//
// Examples:
//
//	linecount main.go
//	linecount --recursive --skip-empty ./src
//	linecount ./docs --buffer-size=64 --per-file
package main

import (
	"log"

	"github.com/otuschhoff/linecount/cmd/linecount/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
