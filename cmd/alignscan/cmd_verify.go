package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/alignscan/internal/domain-adapters/gateways"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	common := registerCommonFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: alignscan verify [options]

Check the configured analyzer the same way every scan does:
  - present, a regular file and executable
  - SHA256 digest (analyzer.sha256)
  - detached OpenPGP signature (analyzer.signature + analyzer.keyring)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  alignscan verify --analyzer ./scripts/check_elf_alignment.sh
  ALIGNSCAN_ANALYZER_SHA256=9f86d0... alignscan verify --config alignscan.yml
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if err := executeVerify(ctx, common); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeVerify(ctx context.Context, common commonFlags) error {
	cfg, err := common.load()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("🔐 Analyzer: %s\n", p.analyzer.Executable())

	if err := p.analyzer.Ready(ctx); err != nil {
		fmt.Printf("   ❌ %v\n", err)
		return fmt.Errorf("analyzer verification failed")
	}

	sum, err := gateways.NewChecksumVerifier().CalculateChecksum(cfg.Analyzer.Path)
	if err != nil {
		return err
	}
	fmt.Printf("   SHA256: %s\n", sum)

	fmt.Printf("   Executable: ✅\n")
	if cfg.Analyzer.SHA256 != "" {
		fmt.Printf("   Checksum: ✅\n")
	} else {
		fmt.Printf("   Checksum: not pinned\n")
	}
	if cfg.Analyzer.SignaturePath != "" {
		fmt.Printf("   Signature: ✅ (%s)\n", cfg.Analyzer.SignaturePath)
	} else {
		fmt.Printf("   Signature: not configured\n")
	}

	return nil
}
