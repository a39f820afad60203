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
	"fmt"
	"os"
	"strings"

	"log/slog"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/specgen/internal/errors"
	"github.com/kraklabs/specgen/internal/output"
	"github.com/kraklabs/specgen/internal/ui"
	"github.com/kraklabs/specgen/pkg/extract"
	"github.com/kraklabs/specgen/pkg/pipeline"
)

// scanSummary is the machine-readable extraction summary.
type scanSummary struct {
	Root      string             `json:"root"`
	Endpoints []extract.Endpoint `json:"endpoints"`
	Models    int                `json:"models"`
	Views     int                `json:"views"`
	Services  int                `json:"services"`
	Units     []string           `json:"units"`
	Skipped   int                `json:"skipped"`
}

// runScan executes the 'scan' CLI command: extraction without
// classification, so no description is needed.
//
// Flags:
//   - --root: Directory to scan (default: from config, else cwd)
//   - --json: Output results as JSON
//   - --debug: Enable debug logging
//
// Examples:
//
//	specgen scan             Formatted extraction summary
//	specgen scan --json      Output as JSON for programmatic use
func runScan(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	root := fs.String("root", "", "Directory to scan (default: from config, else current directory)")
	jsonOutput := fs.Bool("json", false, "Output as JSON")
	debug := fs.Bool("debug", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: specgen scan [options]

Scans the source tree and prints what would be extracted: endpoints per
owning unit, plus model, view, and service counts. Classification is
skipped, so no project description is needed and nothing is written.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	globals.JSON = globals.JSON || *jsonOutput

	logLevel := slog.LevelWarn
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	scanRoot := *root
	var extraRoots []string
	if scanRoot == "" {
		if cfg, err := LoadConfig(configPath); err == nil {
			scanRoot = cfg.SourceRoot
			extraRoots = cfg.Scan.ExtraRoots
		} else {
			scanRoot = "."
		}
	}

	spinner := NewSpinner(NewProgressConfig(globals), phaseDescription("scanning"))
	p := pipeline.New(pipeline.Options{
		Root:       scanRoot,
		ExtraRoots: extraRoots,
		Classify:   false,
		OnFile: func(done, total int) {
			if spinner != nil {
				_ = spinner.Add(1)
			}
		},
	}, logger)

	result, err := p.Run(context.Background())
	if spinner != nil {
		_ = spinner.Finish()
	}
	if err != nil {
		errors.FatalError(errors.NewScanError(
			"Scan failed",
			err.Error(),
			fmt.Sprintf("Check that %s exists and is readable", scanRoot),
			err,
		), globals.JSON)
	}

	if globals.JSON {
		summary := scanSummary{
			Root:      result.RootPath,
			Endpoints: result.Endpoints,
			Models:    len(result.Models),
			Views:     len(result.Views),
			Services:  len(result.Services),
			Skipped:   result.SkippedFiles(),
		}
		for _, unit := range result.Units {
			summary.Units = append(summary.Units, unit.Name)
		}
		if err := output.JSON(summary); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	printScanResult(result)
}

// printScanResult prints the extraction summary as formatted text.
func printScanResult(result *pipeline.Result) {
	ui.Header("Scan Results")
	fmt.Printf("Root: %s\n\n", result.RootPath)

	fmt.Printf("Endpoints: %s  Models: %s  Views: %s  Services: %s\n\n",
		ui.CountText(len(result.Endpoints)),
		ui.CountText(len(result.Models)),
		ui.CountText(len(result.Views)),
		ui.CountText(len(result.Services)),
	)

	for _, unit := range result.Units {
		ui.SubHeader(fmt.Sprintf("%s (%d endpoints, %s)",
			unit.Name, unit.EndpointCount, strings.Join(unit.Methods, " ")))
		for _, ep := range result.Endpoints {
			if ep.OwningUnitName != unit.Name {
				continue
			}
			marker := " "
			if ep.RequiresAuth {
				marker = "*"
			}
			fmt.Printf("  %-6s %s %s\n", ep.HTTPMethod, ep.Path, marker)
		}
		fmt.Println()
	}
	if len(result.Units) > 0 {
		fmt.Println(ui.DimText("  * = auth required"))
	}

	if skipped := result.SkippedFiles(); skipped > 0 {
		fmt.Println()
		ui.Warningf("%d files skipped", skipped)
		for reason, count := range result.SkipReasons {
			fmt.Printf("  %s: %d\n", reason, count)
		}
	}
}
