package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ochairo/alignscan/internal/domain/entities"
	"github.com/ochairo/alignscan/internal/external-adapters/httpapi"
)

func runScan(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	common := registerCommonFlags(fs)
	var (
		filePath = fs.String("file", "", "APK or ZIP file to scan")
		asJSON   = fs.Bool("json", false, "Print the API response body instead of text")
		verbose  = fs.Bool("verbose", false, "Print the raw analyzer output")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: alignscan scan --file <path> [options]

Run the full scan pipeline on a local file. Exits 1 when the package
fails 16KB alignment compliance.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  alignscan scan --file app-release.apk
  alignscan scan --file bundle.zip --json --analyzer ./scripts/check_elf_alignment.sh
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *filePath == "" {
		fmt.Fprintf(os.Stderr, "Error: --file is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	if err := executeScan(ctx, common, *filePath, *asJSON, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeScan(ctx context.Context, common commonFlags, filePath string, asJSON, verbose bool) error {
	cfg, err := common.load()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	//nolint:gosec // G304: filePath is supplied by the operator
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	pkg := &entities.UploadedPackage{
		Filename:  filepath.Base(filePath),
		MediaType: mediaTypeFor(filePath),
		Data:      data,
	}

	result, err := p.orchestrator.PerformScan(ctx, pkg)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(httpapi.NewScanResponse(result)); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		fmt.Printf("🔍 Alignment Scan: %s\n\n", pkg.Filename)
		displayReport(result.Report)
		fmt.Printf("\n%s\n", p.orchestrator.GetScanSummary(result))
		if verbose {
			fmt.Printf("\n── analyzer output (exit %d, %s) ──\n%s", result.ExitCode, result.ScanDuration.Round(time.Millisecond), result.RawOutput)
			if result.Errors != "" {
				fmt.Printf("── analyzer stderr ──\n%s", result.Errors)
			}
		}
	}

	if result.Report.ComplianceStatus == entities.ComplianceFailed {
		return fmt.Errorf("compliance check failed: %d of %d libraries unaligned",
			result.Report.UnalignedLibraries, result.Report.TotalLibraries)
	}

	return nil
}

// mediaTypeFor guesses the declared type a browser would send for path
func mediaTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".apk":
		return "application/vnd.android.package-archive"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
