package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestCommonFlags_OverrideConfig(t *testing.T) {
	t.Setenv("ALIGNSCAN_ANALYZER_PATH", "/from/env.sh")
	t.Setenv("ALIGNSCAN_CONFIG", "")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	common := registerCommonFlags(fs)
	scratch := t.TempDir()
	if err := fs.Parse([]string{"--analyzer", "/from/flag.sh", "--scratch", scratch, "--log-level", "debug"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := common.load()
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.Analyzer.Path != "/from/flag.sh" {
		t.Errorf("Analyzer.Path = %q, want flag value", cfg.Analyzer.Path)
	}
	if cfg.ScratchRoot != scratch {
		t.Errorf("ScratchRoot = %q, want %q", cfg.ScratchRoot, scratch)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestNewPipeline_RejectsBadLogFormat(t *testing.T) {
	t.Setenv("ALIGNSCAN_CONFIG", "")
	t.Setenv("ALIGNSCAN_LOG_FORMAT", "xml")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	common := registerCommonFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := common.load()
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if _, err := newPipeline(cfg); err == nil {
		t.Error("newPipeline() expected error for unknown log format")
	}
}

func TestNewPipeline_ScanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	analyzer := filepath.Join(dir, "check_elf_alignment.sh")
	script := "#!/bin/sh\necho 'NO NATIVE LIBRARIES found'\n"
	if err := os.WriteFile(analyzer, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write analyzer: %v", err)
	}
	t.Setenv("ALIGNSCAN_CONFIG", "")
	t.Setenv("ALIGNSCAN_ANALYZER_PATH", analyzer)
	t.Setenv("ALIGNSCAN_SCRATCH_ROOT", filepath.Join(dir, "scratch"))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	common := registerCommonFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cfg, err := common.load()
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	p, err := newPipeline(cfg)
	if err != nil {
		t.Fatalf("newPipeline() error = %v", err)
	}

	if err := p.analyzer.Ready(t.Context()); err != nil {
		t.Fatalf("Ready() error = %v", err)
	}

	target := filepath.Join(dir, "app.apk")
	if err := os.WriteFile(target, []byte("PK\x03\x04"), 0o600); err != nil {
		t.Fatalf("Failed to write target: %v", err)
	}
	if err := executeScan(t.Context(), common, target, true, false); err != nil {
		t.Fatalf("executeScan() error = %v", err)
	}
}
