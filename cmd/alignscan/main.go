package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "serve":
		runServe(ctx, os.Args[2:])
	case "scan":
		runScan(ctx, os.Args[2:])
	case "parse":
		runParse(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`alignscan - 16KB page-alignment scanner for Android packages

Usage:
  alignscan <command> [options]

Commands:
  serve    Run the HTTP scan API
  scan     Scan a local APK or ZIP file
  parse    Parse saved analyzer output into a compliance report
  verify   Check that the configured analyzer is present and trusted

Use "alignscan <command> --help" for more information about a command.`)
}
