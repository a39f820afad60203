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

package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/kraklabs/specgen/pkg/scan"
)

// Extractor turns candidate files into structured records. It never writes
// to the scanned tree; files are read-only inputs.
type Extractor struct {
	logger   *slog.Logger
	detector AuthDetector
}

// NewExtractor creates an extractor using the given auth detector.
// A nil detector gets the default backward-window detector.
func NewExtractor(detector AuthDetector, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if detector == nil {
		detector = NewWindowDetector(DefaultAuthWindow, logger)
	}
	return &Extractor{logger: logger, detector: detector}
}

// Load reads one candidate into a SourceFile. Callers treat a failure as
// skip-with-warning; a single unreadable file never aborts a run.
func (e *Extractor) Load(file scan.FileInfo) (*SourceFile, error) {
	content, err := os.ReadFile(file.FullPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Path, err)
	}
	return &SourceFile{
		Path:     file.Path,
		FullPath: file.FullPath,
		Language: file.Language,
		Content:  content,
		Lines:    splitLines(content),
	}, nil
}

// ExtractView records one view file. Views are recorded by existence; the
// file is never opened.
func (e *Extractor) ExtractView(file scan.FileInfo) ViewRecord {
	base := baseWithoutExt(file.Path)
	return ViewRecord{
		Name:     base,
		FileName: filepath.Base(file.Path),
	}
}

// ExtractService records one service file. Existence only, no parsing.
func (e *Extractor) ExtractService(file scan.FileInfo) ServiceRecord {
	return ServiceRecord{Name: baseWithoutExt(file.Path)}
}

// unitNameFromFile derives the endpoint-owning unit name. Java controllers
// keep their class-style file name; dotted router files drop the routing
// qualifier ("orders.routes.js" owns its endpoints as "orders").
func unitNameFromFile(file *SourceFile) string {
	base := baseWithoutExt(file.Path)
	return stripNameQualifiers(base, ".routes", ".router", ".controller", ".resource", ".api")
}

// modelNameFromFile derives the model name from the file name.
func modelNameFromFile(file *SourceFile) string {
	base := baseWithoutExt(file.Path)
	return stripNameQualifiers(base, ".model", ".entity", ".schema")
}

// baseWithoutExt returns the file base name with its extension removed.
func baseWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// stripNameQualifiers removes a trailing dotted qualifier ("orders.routes"
// to "orders"). The base is returned unchanged when no qualifier matches or
// stripping would leave nothing.
func stripNameQualifiers(base string, qualifiers ...string) string {
	lower := strings.ToLower(base)
	for _, q := range qualifiers {
		if strings.HasSuffix(lower, q) && len(base) > len(q) {
			return base[:len(base)-len(q)]
		}
	}
	return base
}

// splitLines splits file content into lines, tolerating CRLF endings.
func splitLines(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
