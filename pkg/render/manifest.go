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

package render

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kraklabs/specgen/internal/output"
	"github.com/kraklabs/specgen/pkg/pipeline"
)

// ManifestFileName is the manifest's file name inside the output dir.
const ManifestFileName = "manifest.json"

// ManifestDocument records one written document and its size.
type ManifestDocument struct {
	Name     string `json:"name"`
	FileName string `json:"file_name"`
	Bytes    int    `json:"bytes"`
}

// Manifest describes one completed generation run. It is the file
// `specgen status` reads back.
type Manifest struct {
	RunID       string             `json:"run_id"`
	Version     string             `json:"version"`
	GeneratedAt time.Time          `json:"generated_at"`
	RootPath    string             `json:"root_path"`
	Documents   []ManifestDocument `json:"documents"`
	Counts      map[string]int     `json:"counts"`
	DurationMS  int64              `json:"duration_ms"`
}

// NewManifest builds the manifest for a finished run.
func NewManifest(version string, result *pipeline.Result, docs []Document) *Manifest {
	m := &Manifest{
		RunID:       uuid.NewString(),
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		RootPath:    result.RootPath,
		Counts: map[string]int{
			"endpoints": len(result.Endpoints),
			"models":    len(result.Models),
			"views":     len(result.Views),
			"services":  len(result.Services),
			"units":     len(result.Units),
			"skipped":   result.SkippedFiles(),
		},
		DurationMS: result.TotalDuration.Milliseconds(),
	}
	for _, doc := range docs {
		m.Documents = append(m.Documents, ManifestDocument{
			Name:     doc.Name,
			FileName: doc.FileName,
			Bytes:    len(doc.Content),
		})
	}
	return m
}

// Render returns the manifest as pretty-printed JSON.
func (m *Manifest) Render() ([]byte, error) {
	return output.JSONBytes(m)
}

// LoadManifest reads a manifest file back, for `specgen status`.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
