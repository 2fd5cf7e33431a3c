package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/alignscan/internal/config"
	"github.com/ochairo/alignscan/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/alignscan/internal/domain-orchestrators"
	"github.com/ochairo/alignscan/internal/domain/services"
	"github.com/ochairo/alignscan/internal/external-adapters/logging"
)

// commonFlags are accepted by every command that runs the pipeline
type commonFlags struct {
	configPath *string
	analyzer   *string
	scratch    *string
	logLevel   *string
}

func registerCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: fs.String("config", "", "Path to YAML config file (default $ALIGNSCAN_CONFIG)"),
		analyzer:   fs.String("analyzer", "", "Path to the alignment analyzer executable"),
		scratch:    fs.String("scratch", "", "Directory for per-request workspaces"),
		logLevel:   fs.String("log-level", "", "Log level: debug, info, warn, error"),
	}
}

// load resolves configuration with flags taking precedence over everything else
func (f commonFlags) load() (*config.Config, error) {
	cfg, err := config.Load(*f.configPath)
	if err != nil {
		return nil, err
	}
	if *f.analyzer != "" {
		cfg.Analyzer.Path = *f.analyzer
	}
	if *f.scratch != "" {
		cfg.ScratchRoot = *f.scratch
	}
	if *f.logLevel != "" {
		cfg.Log.Level = *f.logLevel
	}
	return cfg, cfg.Validate()
}

// pipeline holds the wired scan components
type pipeline struct {
	logger       *logging.Logger
	analyzer     *gateways.AnalyzerExecutor
	orchestrator *orchestrators.ScanOrchestrator
}

func newPipeline(cfg *config.Config) (*pipeline, error) {
	// Layer 1: Infrastructure
	logger, err := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	verifier, err := gateways.NewToolVerifier(gateways.ToolVerifierConfig{
		SHA256:        cfg.Analyzer.SHA256,
		SignaturePath: cfg.Analyzer.SignaturePath,
		KeyringPath:   cfg.Analyzer.KeyringPath,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer verifier: %w", err)
	}

	analyzer := gateways.NewAnalyzerExecutor(gateways.AnalyzerExecutorConfig{
		Executable: cfg.Analyzer.Path,
		Verifier:   verifier,
		Timeout:    cfg.Analyzer.Timeout,
		Logger:     logger,
	})
	workspaces := gateways.NewWorkspaceManager(cfg.ScratchRoot, gateways.DefaultIDSource, logger)

	// Layer 2: Business logic
	compliance := services.NewComplianceService(
		services.NewUploadValidator(cfg.Upload.AllowedMediaTypes, cfg.Upload.AllowedExtensions),
	)

	// Layer 3: Use case
	orchestrator := orchestrators.NewScanOrchestrator(compliance, workspaces, analyzer, logger)

	return &pipeline{
		logger:       logger,
		analyzer:     analyzer,
		orchestrator: orchestrator,
	}, nil
}
