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
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kraklabs/specgen/internal/output"
	"github.com/kraklabs/specgen/pkg/render"
)

// statusResult represents the last-generation status for JSON output.
type statusResult struct {
	ProjectID string           `json:"project_id"`
	OutputDir string           `json:"output_dir"`
	Generated bool             `json:"generated"`
	Manifest  *render.Manifest `json:"manifest,omitempty"`
	Error     string           `json:"error,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// runStatus executes the 'status' CLI command, reading the manifest of the
// last generation from the output directory.
//
// Flags:
//   - --json: Output results as JSON (default: false)
//
// Examples:
//
//	specgen status           Display formatted status
//	specgen status --json    Output as JSON for programmatic use
func runStatus(args []string, configPath string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: specgen status [options]

Shows the status of the last generation run.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		if *jsonOutput {
			outputStatus(&statusResult{Error: err.Error(), Timestamp: time.Now()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	result := &statusResult{
		ProjectID: cfg.ProjectID,
		OutputDir: cfg.Output.Dir,
		Timestamp: time.Now(),
	}

	manifestPath := filepath.Join(cfg.Output.Dir, render.ManifestFileName)
	manifest, err := render.LoadManifest(manifestPath)
	if err != nil {
		result.Generated = false
		if os.IsNotExist(err) {
			result.Error = "No generation found. Run 'specgen generate' first."
		} else {
			result.Error = err.Error()
		}
		if *jsonOutput {
			outputStatus(result)
		} else {
			fmt.Printf("Project '%s' has no generated documents yet.\n", cfg.ProjectID)
			fmt.Println("Run 'specgen generate' to create them.")
		}
		os.Exit(0)
	}

	result.Generated = true
	result.Manifest = manifest

	if *jsonOutput {
		outputStatus(result)
	} else {
		printStatus(result)
	}
}

func outputStatus(result *statusResult) {
	_ = output.JSON(result)
}

// printStatus prints the status result as formatted text to stdout.
func printStatus(result *statusResult) {
	m := result.Manifest

	fmt.Println("specgen Project Status")
	fmt.Println("======================")
	fmt.Printf("Project ID:    %s\n", result.ProjectID)
	fmt.Printf("Output Dir:    %s\n", result.OutputDir)
	fmt.Printf("Last Run:      %s\n", m.GeneratedAt.Format(time.RFC3339))
	fmt.Printf("Run ID:        %s\n", m.RunID)
	fmt.Printf("Tool Version:  %s\n", m.Version)
	fmt.Println()

	fmt.Println("Extracted:")
	for _, key := range []string{"endpoints", "models", "views", "services", "units", "skipped"} {
		fmt.Printf("  %-12s %d\n", key+":", m.Counts[key])
	}
	fmt.Println()

	fmt.Println("Documents:")
	for _, doc := range m.Documents {
		fmt.Printf("  %-24s %d bytes\n", doc.FileName, doc.Bytes)
	}
}
