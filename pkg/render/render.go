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
	"fmt"
	"strings"

	"log/slog"

	"github.com/kraklabs/specgen/pkg/pipeline"
)

// Document selection names accepted by --docs.
const (
	DocSpec      = "spec"
	DocDataModel = "data-model"
	DocOpenAPI   = "openapi"
	DocPlan      = "plan"
)

// AllDocs lists every renderable document, in render order.
var AllDocs = []string{DocSpec, DocDataModel, DocOpenAPI, DocPlan}

// docFileNames maps selection names to output file names.
var docFileNames = map[string]string{
	DocSpec:      "specification.md",
	DocDataModel: "data-model.md",
	DocOpenAPI:   "openapi.json",
	DocPlan:      "implementation-plan.md",
}

// Document is one rendered artifact, held in memory until the store writes
// it. Nothing touches disk during rendering.
type Document struct {
	Name     string // selection name (spec, data-model, openapi, plan)
	FileName string
	Content  []byte
}

// Renderer turns a pipeline result into the generated documents.
type Renderer struct {
	project string
	version string
	logger  *slog.Logger
}

// NewRenderer creates a renderer. project names the system in document
// headings; version is stamped into the OpenAPI info block and manifest.
func NewRenderer(project, version string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if project == "" {
		project = "Project"
	}
	return &Renderer{project: project, version: version, logger: logger}
}

// ParseDocList validates a comma-separated --docs value and expands "all".
func ParseDocList(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" || value == "all" {
		return AllDocs, nil
	}

	var docs []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if name == "all" {
			return AllDocs, nil
		}
		if _, ok := docFileNames[name]; !ok {
			return nil, fmt.Errorf("unknown document %q (valid: %s, all)", name, strings.Join(AllDocs, ", "))
		}
		if !seen[name] {
			seen[name] = true
			docs = append(docs, name)
		}
	}
	if len(docs) == 0 {
		return AllDocs, nil
	}
	return docs, nil
}

// RenderAll renders the requested documents to memory, in AllDocs order.
// The spec document requires actor mappings; requesting it from an
// extraction-only result is an error.
func (r *Renderer) RenderAll(result *pipeline.Result, docs []string) ([]Document, error) {
	requested := make(map[string]bool, len(docs))
	for _, d := range docs {
		requested[d] = true
	}

	var rendered []Document
	for _, name := range AllDocs {
		if !requested[name] {
			continue
		}

		var content []byte
		var err error
		switch name {
		case DocSpec:
			if result.ActorMappings == nil {
				return nil, fmt.Errorf("specification document needs classification results")
			}
			content = r.RenderSpec(result)
		case DocDataModel:
			content = r.RenderDataModel(result)
		case DocOpenAPI:
			content, err = r.RenderOpenAPI(result)
		case DocPlan:
			content = r.RenderPlan(result)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}

		rendered = append(rendered, Document{
			Name:     name,
			FileName: docFileNames[name],
			Content:  content,
		})
		r.logger.Debug("render.doc", "name", name, "bytes", len(content))
	}

	r.logger.Info("pipeline.render.complete", "documents", len(rendered))
	return rendered, nil
}
