package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	orchestrators "github.com/ochairo/alignscan/internal/domain-orchestrators"
	"github.com/ochairo/alignscan/internal/domain/services"
)

func runParse(_ context.Context, args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	var (
		input  = fs.String("input", "", "File with saved analyzer output (default stdin)")
		asJSON = fs.Bool("json", false, "Print the compliance report as JSON")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: alignscan parse [options]

Parse analyzer output without running the analyzer.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  ./check_elf_alignment.sh app.apk | alignscan parse
  alignscan parse --input scan.log --json
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if err := executeParse(*input, *asJSON, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeParse(input string, asJSON bool, stdin io.Reader, stdout io.Writer) error {
	src := stdin
	if input != "" {
		//nolint:gosec // G304: input is supplied by the operator
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", input, err)
		}
		defer func() { _ = f.Close() }()
		src = f
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read analyzer output: %w", err)
	}

	report := services.ParseReport(string(data), "")

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	_, err = fmt.Fprintln(stdout, orchestrators.SummaryLine(report))
	return err
}
