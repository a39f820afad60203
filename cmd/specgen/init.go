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
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// initFlags holds parsed flags for the init command.
type initFlags struct {
	force, nonInteractive, noHook, withHook bool
	projectID, description, sourceRoot      string
}

// runInit executes the 'init' CLI command, creating a .specgen/project.yaml
// configuration file.
//
// Flags:
//   - --force: Overwrite existing configuration (default: false)
//   - -y: Non-interactive mode, use all defaults (default: false)
//   - --project-id: Project identifier (default: directory name)
//   - --description: Project description used for classification
//   - --source-root: Source root to scan (default: .)
//   - --no-hook: Skip git hook installation
//   - --hook: Install git hook without prompting
//
// Examples:
//
//	specgen init                           Interactive setup
//	specgen init -y                        Use all defaults
//	specgen init --description "track orders and invoices"
func runInit(args []string) {
	flags := parseInitFlags(args)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot get current directory: %v\n", err)
		os.Exit(1)
	}

	configPath := ConfigPath(cwd)
	if _, err := os.Stat(configPath); err == nil && !flags.force {
		fmt.Fprintf(os.Stderr, "Error: %s already exists. Use --force to overwrite.\n", configPath)
		os.Exit(1)
	}

	cfg := createInitConfig(cwd, flags)
	reader := bufio.NewReader(os.Stdin)

	if !flags.nonInteractive {
		runInteractiveConfig(reader, cfg)
	}

	saveInitConfig(cwd, configPath, cfg)
	handleHookInstallation(reader, flags)
	printNextSteps(flags.noHook)
}

func parseInitFlags(args []string) initFlags {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var f initFlags
	fs.BoolVar(&f.force, "force", false, "Overwrite existing configuration")
	fs.BoolVar(&f.nonInteractive, "y", false, "Non-interactive mode (use defaults)")
	fs.StringVar(&f.projectID, "project-id", "", "Project identifier")
	fs.StringVar(&f.description, "description", "", "Project description used for classification")
	fs.StringVar(&f.sourceRoot, "source-root", "", "Source root to scan (default: .)")
	fs.BoolVar(&f.noHook, "no-hook", false, "Skip git hook installation")
	fs.BoolVar(&f.withHook, "hook", false, "Install git hook without prompting (for scripts)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: specgen init [options]

Creates .specgen/project.yaml configuration file.

Examples:
  specgen init                          # Interactive setup
  specgen init -y                       # Non-interactive with defaults
  specgen init --description "track orders and invoices"
  specgen init --hook                   # Also install git hook

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	return f
}

func createInitConfig(cwd string, f initFlags) *Config {
	pid := f.projectID
	if pid == "" {
		pid = filepath.Base(cwd)
	}
	cfg := DefaultConfig(pid)
	if f.description != "" {
		cfg.Description = f.description
	}
	if f.sourceRoot != "" {
		cfg.SourceRoot = f.sourceRoot
	}
	return cfg
}

func runInteractiveConfig(reader *bufio.Reader, cfg *Config) {
	fmt.Println("specgen Project Configuration")
	fmt.Println("=============================")
	fmt.Println()

	cfg.ProjectID = prompt(reader, "Project ID", cfg.ProjectID)
	cfg.Name = prompt(reader, "Project name", cfg.Name)

	fmt.Println()
	fmt.Println("The description drives actor classification. Describe what users")
	fmt.Println("do with the system, e.g. \"track orders and manage inventory\".")
	cfg.Description = prompt(reader, "Description", cfg.Description)

	fmt.Println()
	cfg.SourceRoot = prompt(reader, "Source root", cfg.SourceRoot)
	cfg.Output.Dir = prompt(reader, "Output directory", cfg.Output.Dir)
	fmt.Println()
}

func saveInitConfig(cwd, configPath string, cfg *Config) {
	dir := ConfigDir(cwd)
	if err := os.MkdirAll(dir, 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create %s directory: %v\n", configDirName, err)
		os.Exit(1)
	}
	if err := SaveConfig(cfg, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot save configuration: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s\n", configPath)
	addToGitignore(cwd, cfg.Output.Dir)
}

func handleHookInstallation(reader *bufio.Reader, f initFlags) {
	if f.noHook {
		return
	}
	shouldInstall := f.withHook
	if !f.withHook && !f.nonInteractive {
		fmt.Println()
		answer := prompt(reader, "Install git hook to regenerate docs on commit? (y/N)", "n")
		answer = strings.ToLower(strings.TrimSpace(answer))
		shouldInstall = answer == "y" || answer == "yes"
	}

	if !shouldInstall {
		return
	}
	gitDir, err := findGitDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot find .git directory: %v\n", err)
		return
	}
	hookPath := filepath.Join(gitDir, "hooks", "post-commit")
	if err := installHook(hookPath, false); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot install git hook: %v\n", err)
	} else {
		fmt.Printf("Git hook installed: %s\n", hookPath)
	}
}

func printNextSteps(noHook bool) {
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Review and edit .specgen/project.yaml if needed")
	fmt.Println("  2. Run 'specgen generate' to create the documents")
	fmt.Println("  3. Run 'specgen status' to verify the output")
	if noHook {
		fmt.Println()
		fmt.Println("Tip: Run 'specgen install-hook' to regenerate docs on each commit")
	}
}

// prompt displays an interactive prompt and reads user input from stdin.
// An empty answer returns the default value.
func prompt(reader *bufio.Reader, label, defaultValue string) string {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", label, defaultValue)
	} else {
		fmt.Printf("%s: ", label)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultValue
	}
	return input
}

// addToGitignore adds the generated output dir to .gitignore if a
// .gitignore exists and the entry is not already present.
func addToGitignore(dir, outputDir string) {
	gitignorePath := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignorePath) //nolint:gosec // G304: gitignorePath built from repo dir
	if err != nil {
		return
	}

	entry := filepath.ToSlash(outputDir) + "/"
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == entry || line == strings.TrimSuffix(entry, "/") {
			return
		}
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // G304: gitignorePath built from repo dir
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	if len(content) > 0 && content[len(content)-1] != '\n' {
		_, _ = f.WriteString("\n")
	}

	_, _ = f.WriteString("\n# specgen output\n" + entry + "\n")
	fmt.Printf("Added %s to .gitignore\n", entry)
}
