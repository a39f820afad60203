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

	"github.com/kraklabs/specgen/internal/output"
	"github.com/kraklabs/specgen/pkg/extract"
	"github.com/kraklabs/specgen/pkg/pipeline"
)

// Minimal OpenAPI 3.0 shapes. Only the parts the contract needs are
// modeled; everything else is omitted rather than stubbed.
type openAPIDoc struct {
	OpenAPI    string                          `json:"openapi"`
	Info       openAPIInfo                     `json:"info"`
	Paths      map[string]map[string]operation `json:"paths"`
	Components *openAPIComponents              `json:"components,omitempty"`
}

type openAPIInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type operation struct {
	Summary   string                `json:"summary"`
	Tags      []string              `json:"tags,omitempty"`
	Security  []map[string][]string `json:"security,omitempty"`
	Responses map[string]response   `json:"responses"`
}

type response struct {
	Description string `json:"description"`
}

type openAPIComponents struct {
	Schemas         map[string]schema         `json:"schemas,omitempty"`
	SecuritySchemes map[string]securityScheme `json:"securitySchemes,omitempty"`
}

type schema struct {
	Type       string              `json:"type"`
	Format     string              `json:"format,omitempty"`
	Properties map[string]property `json:"properties,omitempty"`
}

type property struct {
	Type   string    `json:"type"`
	Format string    `json:"format,omitempty"`
	Items  *property `json:"items,omitempty"`
}

type securityScheme struct {
	Type   string `json:"type"`
	Scheme string `json:"scheme"`
}

// RenderOpenAPI renders a minimal OpenAPI 3.0 contract: one operation per
// method+path from the extracted endpoints, one schema per model from the
// field categories. Duplicate method+path tuples collapse to one operation.
func (r *Renderer) RenderOpenAPI(result *pipeline.Result) ([]byte, error) {
	doc := openAPIDoc{
		OpenAPI: "3.0.3",
		Info:    openAPIInfo{Title: r.project + " API", Version: infoVersion(r.version)},
		Paths:   make(map[string]map[string]operation),
	}

	needsAuth := false
	for _, ep := range result.Endpoints {
		method := strings.ToLower(ep.HTTPMethod)
		if doc.Paths[ep.Path] == nil {
			doc.Paths[ep.Path] = make(map[string]operation)
		}

		op := operation{
			Summary:   fmt.Sprintf("%s %s", ep.HTTPMethod, ep.Path),
			Tags:      []string{ep.OwningUnitName},
			Responses: map[string]response{"200": {Description: "Success"}},
		}
		if ep.RequiresAuth {
			op.Security = []map[string][]string{{"bearerAuth": {}}}
			needsAuth = true
		}
		doc.Paths[ep.Path][method] = op
	}

	schemas := make(map[string]schema, len(result.Models))
	for _, model := range result.Models {
		schemas[model.Name] = modelSchema(model)
	}

	if len(schemas) > 0 || needsAuth {
		doc.Components = &openAPIComponents{}
		if len(schemas) > 0 {
			doc.Components.Schemas = schemas
		}
		if needsAuth {
			doc.Components.SecuritySchemes = map[string]securityScheme{
				"bearerAuth": {Type: "http", Scheme: "bearer"},
			}
		}
	}

	return output.JSONBytes(doc)
}

// modelSchema builds an object schema from the parsed fields. Partial
// records (no field details) become a bare object schema.
func modelSchema(model extract.DataModelRecord) schema {
	s := schema{Type: "object"}
	if len(model.Fields) == 0 {
		return s
	}

	s.Properties = make(map[string]property, len(model.Fields))
	for _, field := range model.Fields {
		s.Properties[field.Name] = categoryProperty(field.Category)
	}
	return s
}

// categoryProperty maps a field category to an OpenAPI type.
func categoryProperty(category string) property {
	switch category {
	case extract.CategoryString:
		return property{Type: "string"}
	case extract.CategoryInteger:
		return property{Type: "integer"}
	case extract.CategoryLong:
		return property{Type: "integer", Format: "int64"}
	case extract.CategoryDouble:
		return property{Type: "number"}
	case extract.CategoryBoolean:
		return property{Type: "boolean"}
	case extract.CategoryDate:
		return property{Type: "string", Format: "date-time"}
	case extract.CategoryList:
		return property{Type: "array", Items: &property{Type: "object"}}
	default:
		return property{Type: "object"}
	}
}

func infoVersion(v string) string {
	if v == "" {
		return "0.0.0"
	}
	return strings.TrimPrefix(v, "v")
}
