package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ochairo/alignscan/internal/domain/interfaces"
	"github.com/ochairo/alignscan/internal/external-adapters/httpapi"
)

const shutdownGrace = 30 * time.Second

func runServe(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	common := registerCommonFlags(fs)
	listen := fs.String("listen", "", "Listen address (default :8080, or $PORT)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: alignscan serve [options]

Run the scan API.

Endpoints:
  POST /api/scan   multipart upload, field "file"
  GET  /healthz    analyzer readiness

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  alignscan serve --analyzer ./scripts/check_elf_alignment.sh
  PORT=3000 alignscan serve --config alignscan.yml
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if err := executeServe(ctx, common, *listen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeServe(ctx context.Context, common commonFlags, listen string) error {
	cfg, err := common.load()
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	if err := p.analyzer.Ready(ctx); err != nil {
		// Keep serving so /healthz can report the problem
		p.logger.Warn("analyzer not ready", interfaces.F("error", err))
	}

	handler := httpapi.NewHandler(httpapi.HandlerConfig{
		Scanner:        p.orchestrator,
		Readiness:      p.analyzer,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Logger:         p.logger,
	})
	server := httpapi.NewServer(cfg.Listen, handler, p.logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	p.logger.Info("shutting down", interfaces.F("grace", shutdownGrace))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}
