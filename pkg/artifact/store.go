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

// Package artifact persists rendered documents. The Store boundary keeps
// rendering decoupled from disk layout; documents arrive fully rendered
// and are written in one pass, manifest last.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"log/slog"

	"github.com/kraklabs/specgen/pkg/render"
)

// Store writes a completed generation run.
type Store interface {
	// Write persists the rendered documents plus the manifest describing
	// them. Returns the paths written, manifest included.
	Write(docs []render.Document, manifest *render.Manifest) ([]string, error)
}

// FSStore writes documents into a single output directory.
type FSStore struct {
	dir    string
	logger *slog.Logger
}

// NewFSStore creates a filesystem store rooted at dir. The directory is
// created on first write, not here; a dry run never touches disk.
func NewFSStore(dir string, logger *slog.Logger) *FSStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSStore{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (s *FSStore) Dir() string {
	return s.dir
}

// ManifestPath returns where the manifest lives for this store.
func (s *FSStore) ManifestPath() string {
	return filepath.Join(s.dir, render.ManifestFileName)
}

// Write creates the output directory and writes each document, then the
// manifest. The manifest goes last so its presence marks a complete run.
func (s *FSStore) Write(docs []render.Document, manifest *render.Manifest) ([]string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", s.dir, err)
	}

	var written []string
	for _, doc := range docs {
		path := filepath.Join(s.dir, doc.FileName)
		if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		s.logger.Debug("artifact.write", "path", path, "bytes", len(doc.Content))
	}

	if manifest != nil {
		data, err := manifest.Render()
		if err != nil {
			return written, err
		}
		path := s.ManifestPath()
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	s.logger.Info("artifact.write.complete", "dir", s.dir, "files", len(written))
	return written, nil
}
