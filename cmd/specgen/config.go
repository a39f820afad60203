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
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// configDirName is the per-project configuration directory.
const configDirName = ".specgen"

// Config is the project configuration stored in .specgen/project.yaml.
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	SourceRoot  string `yaml:"source_root"`
	Readme      string `yaml:"readme,omitempty"`

	Output OutputConfig `yaml:"output"`
	Scan   ScanConfig   `yaml:"scan"`
}

// OutputConfig controls where and what specgen writes.
type OutputConfig struct {
	Dir  string   `yaml:"dir"`
	Docs []string `yaml:"docs,omitempty"`
}

// ScanConfig controls the source scan.
type ScanConfig struct {
	ExtraRoots []string   `yaml:"extra_roots,omitempty"`
	Auth       AuthConfig `yaml:"auth"`
}

// AuthConfig selects the endpoint auth detector.
type AuthConfig struct {
	Mode   string `yaml:"mode"`   // auto, window, treesitter
	Window int    `yaml:"window"` // backward lines for the window detector; 0 = default
}

// envOverrides are the SPECGEN_-prefixed environment overrides applied on
// top of the YAML file.
type envOverrides struct {
	Description string `envconfig:"DESCRIPTION"`
	SourceRoot  string `envconfig:"SOURCE_ROOT"`
	OutputDir   string `envconfig:"OUTPUT_DIR"`
	AuthMode    string `envconfig:"AUTH_MODE"`
	AuthWindow  int    `envconfig:"AUTH_WINDOW"`
}

// DefaultConfig returns the configuration written by `specgen init` before
// interactive customization.
func DefaultConfig(projectID string) *Config {
	return &Config{
		ProjectID:  projectID,
		Name:       projectID,
		SourceRoot: ".",
		Output: OutputConfig{
			Dir:  filepath.Join(configDirName, "generated"),
			Docs: []string{"all"},
		},
		Scan: ScanConfig{
			Auth: AuthConfig{Mode: "auto"},
		},
	}
}

// ConfigDir returns the configuration directory under root.
func ConfigDir(root string) string {
	return filepath.Join(root, configDirName)
}

// ConfigPath returns the configuration file path under root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), "project.yaml")
}

// FindProjectRoot walks up from the current directory looking for a
// .specgen directory, the same way git finds its repository root.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, configDirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s directory found (run 'specgen init' first)", configDirName)
}

// LoadConfig reads the configuration file and applies SPECGEN_ environment
// overrides. An empty path resolves via FindProjectRoot.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		root, err := FindProjectRoot()
		if err != nil {
			return nil, err
		}
		path = ConfigPath(root)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the project root
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("config %s has no project_id", path)
	}
	if cfg.SourceRoot == "" {
		cfg.SourceRoot = "."
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = filepath.Join(configDirName, "generated")
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides layers SPECGEN_-prefixed environment variables over the
// file values. Unset variables leave the file values untouched.
func applyEnvOverrides(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("SPECGEN", &env); err != nil {
		return fmt.Errorf("read environment overrides: %w", err)
	}

	if env.Description != "" {
		cfg.Description = env.Description
	}
	if env.SourceRoot != "" {
		cfg.SourceRoot = env.SourceRoot
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.AuthMode != "" {
		cfg.Scan.Auth.Mode = env.AuthMode
	}
	if env.AuthWindow > 0 {
		cfg.Scan.Auth.Window = env.AuthWindow
	}
	return nil
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
