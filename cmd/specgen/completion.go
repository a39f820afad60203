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

	"github.com/kraklabs/specgen/internal/errors"
)

// bashCompletionTemplate is the bash completion script for specgen.
const bashCompletionTemplate = `#!/bin/bash

# Bash completion script for specgen
# Installation:
#   source <(specgen completion bash)
#   Or add to ~/.bashrc:
#   echo 'source <(specgen completion bash)' >> ~/.bashrc

_specgen_completion() {
    local cur prev commands
    commands="init generate scan status reset install-hook completion"

    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Global flags
    if [[ ${cur} == -* ]] ; then
        COMPREPLY=( $(compgen -W "--version --config --no-color" -- ${cur}) )
        return 0
    fi

    # First argument: complete commands
    if [ $COMP_CWORD -eq 1 ]; then
        COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        return 0
    fi

    # Command-specific flag completion
    local cmd="${COMP_WORDS[1]}"
    case "${cmd}" in
        generate)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--description --description-file --readme --out --docs --auth-mode --auth-window --dry-run --debug --json --quiet --metrics-addr" -- ${cur}) )
            fi
            ;;
        scan)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--root --json --debug" -- ${cur}) )
            fi
            ;;
        status)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--json" -- ${cur}) )
            fi
            ;;
        reset)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--yes" -- ${cur}) )
            fi
            ;;
        install-hook)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--force --remove" -- ${cur}) )
            fi
            ;;
        completion)
            if [ $COMP_CWORD -eq 2 ]; then
                COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            fi
            ;;
    esac
}

complete -F _specgen_completion specgen
`

// zshCompletionTemplate is the zsh completion script for specgen.
const zshCompletionTemplate = `#compdef specgen

# Zsh completion script for specgen
# Installation:
#   1. Ensure compinit is loaded (add to ~/.zshrc if not present):
#      autoload -U compinit; compinit
#   2. Save this script to a directory in your fpath:
#      specgen completion zsh > "${fpath[1]}/_specgen"
#   3. Reload completions:
#      rm -f ~/.zcompdump; compinit

_specgen() {
    local -a commands
    commands=(
        'init:Create .specgen/project.yaml configuration'
        'generate:Run the full pipeline and write documents'
        'scan:Extraction-only summary'
        'status:Show last generation status'
        'reset:Delete the generated output directory'
        'install-hook:Install git post-commit hook'
        'completion:Generate shell completion script'
    )

    _arguments -C \
        '(- *)--version[Show version and exit]' \
        '--config[Path to .specgen/project.yaml]:config file:_files -g "*.yaml"' \
        '--no-color[Disable colored output]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                generate)
                    _arguments \
                        '--description[Project description]:description:' \
                        '--description-file[Read the description from a file]:file:_files' \
                        '--readme[README path for intent mining]:file:_files' \
                        '--out[Output directory]:dir:_files -/' \
                        '--docs[Comma list of documents]:docs:' \
                        '--auth-mode[Endpoint auth detector]:mode:(auto window treesitter)' \
                        '--auth-window[Backward lines for the window detector]:lines:' \
                        '--dry-run[Run without writing]' \
                        '--debug[Enable debug logging]' \
                        '--json[Machine-readable summary]' \
                        '--quiet[Suppress progress output]' \
                        '--metrics-addr[Prometheus metrics address]:address:'
                    ;;
                scan)
                    _arguments \
                        '--root[Directory to scan]:dir:_files -/' \
                        '--json[Output as JSON]' \
                        '--debug[Enable debug logging]'
                    ;;
                status)
                    _arguments \
                        '--json[Output as JSON]'
                    ;;
                reset)
                    _arguments \
                        '--yes[Skip confirmation prompt]'
                    ;;
                install-hook)
                    _arguments \
                        '--force[Overwrite existing hook]' \
                        '--remove[Remove the hook]'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_specgen
`

// fishCompletionTemplate is the fish completion script for specgen.
const fishCompletionTemplate = `# Fish completion script for specgen
# Installation:
#   1. Load completions for current session:
#      specgen completion fish | source
#   2. Install permanently:
#      specgen completion fish > ~/.config/fish/completions/specgen.fish

# Commands
complete -c specgen -f -n "__fish_use_subcommand" -a "init" -d "Create .specgen/project.yaml configuration"
complete -c specgen -f -n "__fish_use_subcommand" -a "generate" -d "Run the full pipeline and write documents"
complete -c specgen -f -n "__fish_use_subcommand" -a "scan" -d "Extraction-only summary"
complete -c specgen -f -n "__fish_use_subcommand" -a "status" -d "Show last generation status"
complete -c specgen -f -n "__fish_use_subcommand" -a "reset" -d "Delete the generated output directory (destructive!)"
complete -c specgen -f -n "__fish_use_subcommand" -a "install-hook" -d "Install git post-commit hook"
complete -c specgen -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# Global flags
complete -c specgen -l version -d "Show version and exit"
complete -c specgen -l config -d "Path to .specgen/project.yaml" -r
complete -c specgen -l no-color -d "Disable colored output"

# generate command flags
complete -c specgen -n "__fish_seen_subcommand_from generate" -l description -d "Project description" -r
complete -c specgen -n "__fish_seen_subcommand_from generate" -l description-file -d "Read the description from a file" -r
complete -c specgen -n "__fish_seen_subcommand_from generate" -l readme -d "README path for intent mining" -r
complete -c specgen -n "__fish_seen_subcommand_from generate" -l out -d "Output directory" -r
complete -c specgen -n "__fish_seen_subcommand_from generate" -l docs -d "Comma list of documents" -r
complete -c specgen -n "__fish_seen_subcommand_from generate" -l auth-mode -d "Endpoint auth detector" -r -f -a "auto window treesitter"
complete -c specgen -n "__fish_seen_subcommand_from generate" -l auth-window -d "Backward lines for the window detector" -r
complete -c specgen -n "__fish_seen_subcommand_from generate" -l dry-run -d "Run without writing"
complete -c specgen -n "__fish_seen_subcommand_from generate" -l debug -d "Enable debug logging"
complete -c specgen -n "__fish_seen_subcommand_from generate" -l json -d "Machine-readable summary"
complete -c specgen -n "__fish_seen_subcommand_from generate" -l quiet -d "Suppress progress output"
complete -c specgen -n "__fish_seen_subcommand_from generate" -l metrics-addr -d "Prometheus metrics address" -r

# scan command flags
complete -c specgen -n "__fish_seen_subcommand_from scan" -l root -d "Directory to scan" -r
complete -c specgen -n "__fish_seen_subcommand_from scan" -l json -d "Output as JSON"
complete -c specgen -n "__fish_seen_subcommand_from scan" -l debug -d "Enable debug logging"

# status command flags
complete -c specgen -n "__fish_seen_subcommand_from status" -l json -d "Output as JSON"

# reset command flags
complete -c specgen -n "__fish_seen_subcommand_from reset" -l yes -d "Skip confirmation prompt"

# install-hook command flags
complete -c specgen -n "__fish_seen_subcommand_from install-hook" -l force -d "Overwrite existing hook"
complete -c specgen -n "__fish_seen_subcommand_from install-hook" -l remove -d "Remove the hook"

# completion command arguments
complete -c specgen -n "__fish_seen_subcommand_from completion" -f -a "bash" -d "Generate bash completion script"
complete -c specgen -n "__fish_seen_subcommand_from completion" -f -a "zsh" -d "Generate zsh completion script"
complete -c specgen -n "__fish_seen_subcommand_from completion" -f -a "fish" -d "Generate fish completion script"
`

// runCompletion executes the 'completion' CLI command, generating
// shell-specific completion scripts for bash, zsh, or fish.
//
// Usage:
//
//	specgen completion [bash|zsh|fish]
//
// Examples:
//
//	specgen completion bash                         Output bash completion script
//	source <(specgen completion bash)               Load bash completions in current shell
//	specgen completion zsh > "${fpath[1]}/_specgen" Install zsh completions permanently
//	specgen completion fish | source                Load fish completions in current shell
func runCompletion(args []string) {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: specgen completion <shell>

Description:
  Generate shell completion scripts for bash, zsh, or fish.

Arguments:
  shell    Shell type: bash, zsh, or fish (required)

Examples:
  # Load bash completions in current shell
  source <(specgen completion bash)

  # Install bash completions permanently (Linux)
  specgen completion bash > /etc/bash_completion.d/specgen

  # Install zsh completions
  specgen completion zsh > "${fpath[1]}/_specgen"

  # Install fish completions
  specgen completion fish > ~/.config/fish/completions/specgen.fish

Notes:
  After installing completions, restart your shell or source your rc file.

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		errors.FatalError(errors.NewInputError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'specgen completion bash', 'specgen completion zsh', or 'specgen completion fish'",
		), false)
	}

	shell := fs.Arg(0)

	switch shell {
	case "bash":
		fmt.Print(bashCompletionTemplate)
	case "zsh":
		fmt.Print(zshCompletionTemplate)
	case "fish":
		fmt.Print(fishCompletionTemplate)
	default:
		errors.FatalError(errors.NewInputError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", shell),
			"Run 'specgen completion bash', 'specgen completion zsh', or 'specgen completion fish'",
		), false)
	}
}
