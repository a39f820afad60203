// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
)

func runReset(args []string, configPath string) {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	confirm := fs.Bool("yes", false, "Confirm the reset (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: specgen reset [options]

Deletes the generated output directory, including all documents and the
manifest. The configuration file is kept.

WARNING: This operation is destructive and cannot be undone!

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if !*confirm {
		fmt.Fprintf(os.Stderr, "Error: you must pass --yes to confirm the reset\n")
		fmt.Fprintf(os.Stderr, "This will delete all generated documents for the project.\n")
		os.Exit(1)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outDir := cfg.Output.Dir
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "No generated output found for project %s\n", cfg.ProjectID)
		os.Exit(0)
	}

	fmt.Printf("Resetting project %s (deleting %s)...\n", cfg.ProjectID, outDir)

	if err := os.RemoveAll(outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Reset complete. All generated documents have been deleted.")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  specgen generate    Regenerate the documents")
}
