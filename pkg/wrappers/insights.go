package wrappers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/user/getinsights/pkg/config"
	"github.com/user/getinsights/pkg/plugin"
)

// InsightsWrapper drives insights-client: preflight checks, check-in and result download.
type InsightsWrapper struct {
	Runner   Runner
	Packages PackageChecker
	Client   config.ClientConfig
	Paths    config.PathsConfig
	Log      *zap.SugaredLogger
}

// NewInsightsWrapperWithRunner wires the wrapper and its rpm check to runner.
func NewInsightsWrapperWithRunner(cfg *config.Config, runner Runner, log *zap.SugaredLogger) *InsightsWrapper {
	return &InsightsWrapper{
		Runner:   runner,
		Packages: &RPMChecker{Runner: runner},
		Client:   cfg.Client,
		Paths:    cfg.Paths,
		Log:      log,
	}
}

// Execute runs the whole invocation sequence and returns the path of the fresh result file.
func (w *InsightsWrapper) Execute(ctx context.Context) (string, error) {
	if err := w.Preflight(ctx); err != nil {
		return "", err
	}
	if err := w.Upload(ctx); err != nil {
		return "", err
	}
	if err := w.FetchResult(ctx); err != nil {
		return "", err
	}
	return w.Paths.Result, nil
}

// Preflight verifies the client package is installed and the host is registered.
func (w *InsightsWrapper) Preflight(ctx context.Context) error {
	ok, err := w.Packages.Installed(ctx, w.Client.Package)
	if !ok {
		w.Log.Debugw("package check failed", "package", w.Client.Package, "error", err)
		return plugin.Unknownf(err, "Package %s not installed (or too old). Install using: dnf install %s", w.Client.Package, w.Client.Package)
	}

	if !fileExists(w.Paths.Registered) {
		w.Log.Debugw("registration marker missing", "path", w.Paths.Registered)
		return plugin.Unknownf(nil, "You need to register to Red Hat Insights by running: %s register", w.Client.Binary)
	}
	return nil
}

// Upload removes the last upload marker, then runs the check-in and the result check.
func (w *InsightsWrapper) Upload(ctx context.Context) error {
	if err := removeStale(w.Paths.LastUpload); err != nil {
		return plugin.Unknownf(err, "cannot remove stale upload marker %s: %v", w.Paths.LastUpload, err)
	}

	w.Log.Infow("[insights-client] uploading system report")
	if err := w.run(ctx, nil); err != nil {
		return plugin.Unknownf(err, "%s failed to send report. Run: %s for more information.", w.Client.Binary, w.Client.Binary)
	}

	w.Log.Infow("[insights-client] checking result")
	if err := w.run(ctx, nil, "--check-result"); err != nil {
		return plugin.Unknownf(err, "%s failed to check result. Run: %s --check-result for more information.", w.Client.Binary, w.Client.Binary)
	}
	return nil
}

// FetchResult writes `--show-result` output to the result file and confirms the upload went through.
func (w *InsightsWrapper) FetchResult(ctx context.Context) error {
	if err := removeStale(w.Paths.Result); err != nil {
		return plugin.Unknownf(err, "cannot remove stale result file %s: %v", w.Paths.Result, err)
	}

	w.Log.Infow("[insights-client] fetching result", "path", w.Paths.Result)
	if err := w.showResult(ctx); err != nil {
		return plugin.Unknownf(err, "%s failed to get results. Run: %s --show-results for more information.", w.Client.Binary, w.Client.Binary)
	}

	// The client can succeed locally without ever reaching the backend.
	if !fileExists(w.Paths.LastUpload) {
		w.Log.Debugw("upload marker missing after invocation", "path", w.Paths.LastUpload)
		return plugin.Unknownf(nil, "%s failed to get result from cloud.redhat.com. Run: %s --show-results for more information.", w.Client.Binary, w.Client.Binary)
	}
	return nil
}

// showResult creates the result file afresh; anything found at the path by then was planted.
func (w *InsightsWrapper) showResult(ctx context.Context) error {
	f, err := os.OpenFile(w.Paths.Result, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	runErr := w.run(ctx, f, "--show-result")
	if err := f.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func (w *InsightsWrapper) run(ctx context.Context, stdout io.Writer, args ...string) error {
	if w.Client.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Client.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := w.Runner.Run(ctx, stdout, w.Client.Binary, args...)
	w.Log.Debugw("client invocation finished", "args", args, "elapsed", time.Since(start), "error", err)
	if err != nil {
		return fmt.Errorf("run %s: %w", commandLine(w.Client.Binary, args), err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func removeStale(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
