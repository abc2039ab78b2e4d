// Command alsim simulates active learning for document screening.
//
// Usage:
//
//	alsim                   Show help
//	alsim run               Run a simulation over one or more datasets
//	alsim synth             Generate a synthetic vectorized dataset
//	alsim results           List stored run results
//	alsim init              Write a default config file
package main

import (
	"fmt"
	"os"
)

const usage = `alsim — active learning screening simulator

Usage:
  alsim <command> [flags]

Commands:
  run         Run a simulation over one or more CSV datasets
  synth       Generate a synthetic vectorized dataset
  results     List stored run results
  init        Write a default config file

Run 'alsim <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "run":
		runRun()
	case "synth":
		runSynth()
	case "results":
		runResults()
	case "init":
		runInit()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "alsim: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
