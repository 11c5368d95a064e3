package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/carlaops/carpark/pkg/core"
)

type runMode int

const (
	modeGenerate runMode = iota
	modeReplay
)

// parseArgs resolves the run mode from command-line arguments.
// No arguments means generate; "replay <ref>" replays a stored batch.
func parseArgs(args []string) (runMode, string) {
	if len(args) == 0 {
		return modeGenerate, ""
	}

	switch strings.ToLower(args[0]) {
	case "generate":
		return modeGenerate, ""
	case "replay":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "replay requires a batch reference (file path or batch ID)")
			os.Exit(2)
		}
		return modeReplay, args[1]
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	return modeGenerate, ""
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: carpark [generate]          generate and spawn a new batch")
	fmt.Fprintln(os.Stderr, "       carpark replay <batch-ref>  re-spawn a stored batch exactly")
}

// printReports writes the per-line summary table to stdout.
func printReports(reports []core.LineReport) {
	fmt.Println()
	fmt.Println("line  requested  effective  produced  skipped  exclude")
	for _, r := range reports {
		exclude := "-"
		if len(r.Exclude) > 0 {
			exclude = strings.Join(r.Exclude, ",")
		}
		fmt.Printf("%4d  %9d  %9d  %8d  %7v  %s\n",
			r.LineIndex, r.Requested, r.Effective, r.Produced, r.Skipped, exclude)
	}
	fmt.Println()
}
