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

// Package main implements the specgen CLI for generating specification
// documents from an existing codebase.
//
// Usage:
//
//	specgen init                  Create .specgen/project.yaml configuration
//	specgen generate              Run the full pipeline and write documents
//	specgen scan [--json]         Extraction-only summary
//	specgen status [--json]       Show last generation status
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kraklabs/specgen/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// GlobalFlags carries the output-mode switches shared by every command.
type GlobalFlags struct {
	JSON    bool
	Quiet   bool
	NoColor bool
	Verbose int
}

// main parses global flags and dispatches to command handlers.
//
// Global flags:
//   - --version: Display version information and exit
//   - --config: Path to .specgen/project.yaml configuration file
//
// Commands:
//   - init: Create .specgen/project.yaml configuration
//   - generate: Run the full pipeline and write documents
//   - scan: Extraction-only summary, no description needed
//   - status: Show the last generation's manifest
//   - reset: Delete the generated output directory (destructive!)
//   - install-hook: Install git post-commit hook for auto-regeneration
//   - completion: Generate shell completion script
func main() {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	var (
		showVersion = flag.Bool("version", false, "Show version and exit")
		configPath  = flag.String("config", "", "Path to .specgen/project.yaml (default: ./.specgen/project.yaml)")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `specgen - specification generator

specgen reverse-engineers specification documents from an existing
codebase: it scans for controllers, models, views, and services, mines
the project description for intent, and renders a Markdown spec, a
data-model doc, an OpenAPI contract, and an implementation plan.

Usage:
  specgen <command> [options]

Commands:
  init          Create .specgen/project.yaml configuration
  generate      Run the full pipeline and write documents
  scan          Extraction-only summary (no description needed)
  status        Show last generation status
  reset         Delete the generated output directory (destructive!)
  install-hook  Install git post-commit hook for auto-regeneration
  completion    Generate shell completion script (bash|zsh|fish)

Global Options:
  --config      Path to .specgen/project.yaml
  --no-color    Disable colored output
  --version     Show version and exit

Examples:
  specgen init                                Create configuration interactively
  specgen generate --description "track orders and invoices"
  specgen generate --docs spec,openapi        Render a subset of documents
  specgen scan --json                         Machine-readable extraction summary
  specgen status                              Show last run

Getting Started:
  1. Initialize configuration:  specgen init
  2. Generate the documents:    specgen generate
  3. Check the output:          specgen status

Environment Variables:
  SPECGEN_DESCRIPTION   Project description (overridden by --description)
  SPECGEN_SOURCE_ROOT   Source root to scan
  SPECGEN_OUTPUT_DIR    Output directory for generated documents

For detailed command help: specgen <command> --help

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("specgen version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	ui.InitColors(*noColor)
	globals := GlobalFlags{NoColor: *noColor}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "init":
		runInit(cmdArgs)
	case "generate":
		runGenerate(cmdArgs, *configPath, globals)
	case "scan":
		runScan(cmdArgs, *configPath, globals)
	case "status":
		runStatus(cmdArgs, *configPath)
	case "reset":
		runReset(cmdArgs, *configPath)
	case "install-hook":
		runInstallHook(cmdArgs)
	case "completion":
		runCompletion(cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
