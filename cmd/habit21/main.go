// Package main is the single-binary entrypoint for habit21.
// habit21 tracks a 21-day habit challenge with streaks and achievements.
package main

import "github.com/habit21/habit21/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
