// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/specgen/internal/errors"
	"github.com/kraklabs/specgen/internal/output"
	"github.com/kraklabs/specgen/internal/ui"
	"github.com/kraklabs/specgen/pkg/artifact"
	"github.com/kraklabs/specgen/pkg/extract"
	"github.com/kraklabs/specgen/pkg/intent"
	"github.com/kraklabs/specgen/pkg/pipeline"
	"github.com/kraklabs/specgen/pkg/render"
)

// generateFlags holds parsed flags for the generate command.
type generateFlags struct {
	description     string
	descriptionFile string
	readme          string
	out             string
	docs            string
	authMode        string
	authWindow      int
	debug           bool
	jsonOutput      bool
	quiet           bool
	metricsAddr     string
	dryRun          bool
}

// generateSummary is the machine-readable result of a generate run.
type generateSummary struct {
	Project    string   `json:"project"`
	RunID      string   `json:"run_id,omitempty"`
	Endpoints  int      `json:"endpoints"`
	Models     int      `json:"models"`
	Views      int      `json:"views"`
	Services   int      `json:"services"`
	Units      int      `json:"units"`
	Skipped    int      `json:"skipped"`
	DryRun     bool     `json:"dry_run"`
	Written    []string `json:"written,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

// runGenerate executes the 'generate' CLI command: the full pipeline plus
// document rendering and the atomic write of the output directory.
//
// Flags:
//   - --description: Project description (highest precedence)
//   - --description-file: Read the description from a file
//   - --readme: README path for intent mining (default: discovered)
//   - --out: Output directory (default: from config)
//   - --docs: Comma list of documents (spec,data-model,openapi,plan,all)
//   - --auth-mode: Auth detector (auto|window|treesitter)
//   - --auth-window: Backward lines for the window detector
//   - --dry-run: Run extraction and classification, write nothing
//   - --debug: Enable debug logging
//   - --json: Machine-readable summary on stdout
//   - --metrics-addr: HTTP listen address for Prometheus metrics
//
// Examples:
//
//	specgen generate --description "track orders and invoices"
//	specgen generate --docs spec,openapi --out docs/generated
//	specgen generate --dry-run
func runGenerate(args []string, configPath string, globals GlobalFlags) {
	f := parseGenerateFlags(args)
	globals.JSON = globals.JSON || f.jsonOutput
	globals.Quiet = globals.Quiet || f.quiet || f.jsonOutput

	logLevel := slog.LevelInfo
	if f.debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg := loadConfigOrDefault(configPath, logger)

	description := resolveDescription(f, cfg)
	if strings.TrimSpace(description) == "" {
		errors.FatalError(errors.NewInputError(
			"No project description provided",
			"Classification needs a free-text description of what the project does",
			"Pass --description, --description-file, set SPECGEN_DESCRIPTION, or add 'description' to .specgen/project.yaml",
		), globals.JSON)
	}

	docsValue := f.docs
	if docsValue == "" && len(cfg.Output.Docs) > 0 {
		docsValue = strings.Join(cfg.Output.Docs, ",")
	}
	docs, err := render.ParseDocList(docsValue)
	if err != nil {
		errors.FatalError(errors.NewInputError(
			"Invalid --docs value",
			err.Error(),
			"Valid documents: spec, data-model, openapi, plan, all",
		), globals.JSON)
	}

	authMode, authWindow := resolveAuth(f, cfg)
	outDir := f.out
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	readmePath := f.readme
	if readmePath == "" {
		readmePath = cfg.Readme
	}

	if f.metricsAddr != "" {
		startMetricsServer(f.metricsAddr, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutdown.signal", "signal", sig.String())
		cancel()
	}()

	progressCfg := NewProgressConfig(globals)
	var bar *progressbar.ProgressBar
	opts := pipeline.Options{
		Root:        cfg.SourceRoot,
		ExtraRoots:  cfg.Scan.ExtraRoots,
		Description: description,
		ReadmePath:  readmePath,
		Classify:    true,
		AuthMode:    extract.AuthMode(authMode),
		AuthWindow:  authWindow,
		OnFile: func(done, total int) {
			if bar == nil {
				bar = NewProgressBar(progressCfg, int64(total), phaseDescription("extracting"))
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		},
	}

	if !globals.Quiet {
		ui.Header(fmt.Sprintf("Generating documents for %s", cfg.Name))
	}

	result, err := pipeline.New(opts, logger).Run(ctx)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		errors.FatalError(wrapPipelineError(err), globals.JSON)
	}

	summary := generateSummary{
		Project:    cfg.Name,
		Endpoints:  len(result.Endpoints),
		Models:     len(result.Models),
		Views:      len(result.Views),
		Services:   len(result.Services),
		Units:      len(result.Units),
		Skipped:    result.SkippedFiles(),
		DryRun:     f.dryRun,
		DurationMS: result.TotalDuration.Milliseconds(),
	}

	if f.dryRun {
		finishGenerate(summary, result, nil, globals)
		return
	}

	renderer := render.NewRenderer(cfg.Name, version, logger)
	documents, err := renderer.RenderAll(result, docs)
	if err != nil {
		errors.FatalError(errors.NewInternalError(
			"Document rendering failed",
			err.Error(),
			"This is a bug in specgen; please report it",
			err,
		), globals.JSON)
	}

	manifest := render.NewManifest(version, result, documents)
	store := artifact.NewFSStore(outDir, logger)
	written, err := store.Write(documents, manifest)
	if err != nil {
		errors.FatalError(errors.NewOutputError(
			"Cannot write generated documents",
			err.Error(),
			fmt.Sprintf("Check permissions on %s", outDir),
			err,
		), globals.JSON)
	}

	summary.RunID = manifest.RunID
	summary.Written = written
	finishGenerate(summary, result, written, globals)
}

func parseGenerateFlags(args []string) generateFlags {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var f generateFlags
	fs.StringVar(&f.description, "description", "", "Project description (highest precedence)")
	fs.StringVar(&f.descriptionFile, "description-file", "", "Read the project description from a file")
	fs.StringVar(&f.readme, "readme", "", "README path for intent mining (default: discovered in the source root)")
	fs.StringVar(&f.out, "out", "", "Output directory (default: from config)")
	fs.StringVar(&f.docs, "docs", "", "Comma list of documents: spec,data-model,openapi,plan,all")
	fs.StringVar(&f.authMode, "auth-mode", "", "Endpoint auth detector: auto, window, or treesitter")
	fs.IntVar(&f.authWindow, "auth-window", 0, "Backward lines searched by the window auth detector")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Run extraction and classification, write nothing")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.jsonOutput, "json", false, "Machine-readable summary on stdout")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Suppress progress output")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: specgen generate [options]

Runs the full pipeline: scans the source tree, extracts endpoints,
models, views, and services, mines the project description for intent,
classifies each endpoint-owning unit, and writes the generated
documents plus a manifest. Nothing is written unless the whole run
succeeds.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  specgen generate --description "track orders and invoices"
  specgen generate --docs spec,openapi
  specgen generate --dry-run
`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	return f
}

// loadConfigOrDefault loads the project config, falling back to defaults
// rooted at the current directory so generate works in a tree that was
// never initialized.
func loadConfigOrDefault(configPath string, logger *slog.Logger) *Config {
	cfg, err := LoadConfig(configPath)
	if err == nil {
		return cfg
	}

	logger.Debug("config.fallback", "err", err)
	cwd, wdErr := os.Getwd()
	if wdErr != nil {
		cwd = "."
	}
	cfg = DefaultConfig(filepath.Base(cwd))
	if envErr := applyEnvOverrides(cfg); envErr != nil {
		logger.Warn("config.env.error", "err", envErr)
	}
	return cfg
}

// resolveDescription applies the precedence: flag > file > config (the
// SPECGEN_DESCRIPTION env override is already folded into the config).
func resolveDescription(f generateFlags, cfg *Config) string {
	if f.description != "" {
		return f.description
	}
	if f.descriptionFile != "" {
		data, err := os.ReadFile(f.descriptionFile) //nolint:gosec // G304: user-supplied flag
		if err != nil {
			errors.FatalError(errors.NewInputError(
				"Cannot read description file",
				err.Error(),
				fmt.Sprintf("Check that %s exists and is readable", f.descriptionFile),
			), f.jsonOutput)
		}
		return string(data)
	}
	return cfg.Description
}

func resolveAuth(f generateFlags, cfg *Config) (string, int) {
	mode := f.authMode
	if mode == "" {
		mode = cfg.Scan.Auth.Mode
	}
	if mode == "" {
		mode = string(extract.DefaultAuthMode)
	}
	window := f.authWindow
	if window == 0 {
		window = cfg.Scan.Auth.Window
	}
	return mode, window
}

// wrapPipelineError maps pipeline failures onto user errors with fixes.
func wrapPipelineError(err error) error {
	switch {
	case stderrors.Is(err, intent.ErrEmptyDescription):
		return errors.NewInputError(
			"No project description provided",
			"Classification needs a free-text description of what the project does",
			"Pass --description or add 'description' to .specgen/project.yaml",
		)
	case stderrors.Is(err, intent.ErrNoActionVerbs):
		return errors.NewInputError(
			"Description contains no recognized action verbs",
			"Intent mining found nothing like 'manage', 'track', or 'create' in the description",
			"Describe what users do with the system, e.g. \"track orders and manage inventory\"",
		)
	default:
		return errors.NewScanError(
			"Generation failed",
			err.Error(),
			"Check that the source root exists and is readable",
			err,
		)
	}
}

func startMetricsServer(addr string, logger *slog.Logger) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: addr, Handler: mux}
		logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()
}

// finishGenerate prints the run summary in the requested mode.
func finishGenerate(summary generateSummary, result *pipeline.Result, written []string, globals GlobalFlags) {
	if globals.JSON {
		if err := output.JSON(summary); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	fmt.Println()
	ui.SubHeader("Extraction")
	fmt.Printf("  Endpoints: %s\n", ui.CountText(summary.Endpoints))
	fmt.Printf("  Models:    %s\n", ui.CountText(summary.Models))
	fmt.Printf("  Views:     %s\n", ui.CountText(summary.Views))
	fmt.Printf("  Services:  %s\n", ui.CountText(summary.Services))
	fmt.Printf("  Units:     %s\n", ui.CountText(summary.Units))
	if summary.Skipped > 0 {
		ui.Warningf("%d files skipped", summary.Skipped)
		for reason, count := range result.SkipReasons {
			fmt.Printf("    %s: %d\n", reason, count)
		}
	}

	if summary.DryRun {
		fmt.Println()
		ui.Info("Dry run: nothing written")
		return
	}

	fmt.Println()
	ui.SubHeader("Documents")
	for _, path := range written {
		fmt.Printf("  %s\n", path)
	}
	fmt.Println()
	ui.Successf("Generation complete in %dms", summary.DurationMS)
}
