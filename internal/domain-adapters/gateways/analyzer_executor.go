package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ochairo/alignscan/internal/domain/entities"
	"github.com/ochairo/alignscan/internal/domain/interfaces"
	"github.com/ochairo/alignscan/internal/domain/interfaces/gateways"
)

const waitDelay = 5 * time.Second

// AnalyzerExecutorConfig configures the subprocess analyzer
type AnalyzerExecutorConfig struct {
	Executable string
	Verifier   gateways.ToolVerifier
	// Timeout bounds a single run; zero leaves the analyzer unbounded
	Timeout time.Duration
	Logger  interfaces.Logger
}

// AnalyzerExecutor runs the alignment analyzer as a subprocess
type AnalyzerExecutor struct {
	executable string
	verifier   gateways.ToolVerifier
	timeout    time.Duration
	logger     interfaces.Logger
}

// NewAnalyzerExecutor creates a new analyzer executor
func NewAnalyzerExecutor(config AnalyzerExecutorConfig) *AnalyzerExecutor {
	logger := interfaces.OrNoOp(config.Logger)
	verifier := config.Verifier
	if verifier == nil {
		verifier = NewPresenceVerifier()
	}
	return &AnalyzerExecutor{
		executable: config.Executable,
		verifier:   verifier,
		timeout:    config.Timeout,
		logger:     logger,
	}
}

// Executable returns the configured analyzer path
func (e *AnalyzerExecutor) Executable() string {
	return e.executable
}

// Ready verifies the analyzer without running it
func (e *AnalyzerExecutor) Ready(ctx context.Context) error {
	return e.verify(ctx)
}

// Invoke runs the analyzer with targetPath as its only argument and waits for it.
// Exit status 1 with a report on stdout is a completed analysis that found
// alignment problems; any other non-zero status is a tool failure.
func (e *AnalyzerExecutor) Invoke(ctx context.Context, targetPath string) (*entities.AnalyzerOutcome, error) {
	if err := e.verify(ctx); err != nil {
		return nil, err
	}

	absTarget, err := filepath.Abs(targetPath)
	if err != nil {
		return nil, entities.NewScanError(entities.KindWorkspace, "failed to resolve staged file", err)
	}

	// Caller cancellation does not stop a running analysis
	execCtx := context.WithoutCancel(ctx)
	if e.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(execCtx, e.timeout)
		defer cancel()
	}

	//nolint:gosec // G204: executable comes from operator configuration and is verified above
	cmd := exec.CommandContext(execCtx, e.executable, absTarget)
	cmd.Dir = filepath.Dir(absTarget)
	// Stop waiting on output pipes held open by orphaned grandchildren
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Info("running analyzer",
		interfaces.F("analyzer", e.executable),
		interfaces.F("target", absTarget))

	startTime := time.Now()
	runErr := cmd.Run()

	outcome := &entities.AnalyzerOutcome{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(startTime),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if execCtx.Err() == context.DeadlineExceeded {
			outcome.ExitCode = entities.AnalyzerExitNotAvailable
			return nil, toolExecutionError(fmt.Sprintf("analyzer timed out after %v", e.timeout), runErr, outcome)
		} else if errors.As(runErr, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
		} else {
			outcome.ExitCode = entities.AnalyzerExitNotAvailable
			return nil, toolExecutionError("failed to start analyzer", runErr, outcome)
		}
	}

	e.logger.Info("analyzer finished",
		interfaces.F("exit_code", outcome.ExitCode),
		interfaces.F("duration", outcome.Duration),
		interfaces.F("stdout_bytes", len(outcome.Stdout)),
		interfaces.F("stderr_bytes", len(outcome.Stderr)))

	if !outcome.Completed() {
		msg := fmt.Sprintf("analyzer exited with status %d", outcome.ExitCode)
		if !outcome.HasOutput() || outcome.ExitCode == entities.AnalyzerExitIssuesFound {
			msg += " without producing a report"
		}
		return nil, toolExecutionError(msg, nil, outcome)
	}

	return outcome, nil
}

func (e *AnalyzerExecutor) verify(ctx context.Context) error {
	if e.executable == "" {
		return entities.NewScanError(entities.KindToolMissing, "no analyzer configured", nil)
	}
	if err := e.verifier.VerifyTool(ctx, e.executable); err != nil {
		var se *entities.ScanError
		if errors.As(err, &se) {
			return err
		}
		return entities.NewScanError(entities.KindToolMissing, "analyzer unavailable", err)
	}
	return nil
}

// toolExecutionError attaches the partial outcome; without an explicit cause
// the first stderr line becomes the cause for diagnostics
func toolExecutionError(msg string, cause error, outcome *entities.AnalyzerOutcome) error {
	if cause == nil {
		if line := firstLine(outcome.Stderr); line != "" {
			cause = errors.New(line)
		}
	}
	se := entities.NewScanError(entities.KindToolExecution, msg, cause)
	se.Outcome = outcome
	return se
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
