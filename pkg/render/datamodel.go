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

	"github.com/kraklabs/specgen/pkg/pipeline"
)

// RenderDataModel renders one section per discovered model, discovery
// order. Partial records (counting pass succeeded, detail pass did not)
// render with the field count only.
func (r *Renderer) RenderDataModel(result *pipeline.Result) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Data Model\n\n", r.project)

	if len(result.Models) == 0 {
		b.WriteString("No data models discovered.\n")
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "%d models discovered.\n\n", len(result.Models))

	for _, model := range result.Models {
		fmt.Fprintf(&b, "## %s\n\n", model.Name)

		if len(model.Fields) == 0 {
			fmt.Fprintf(&b, "%d fields (declarations counted, details unavailable).\n\n", model.FieldCount)
			continue
		}

		b.WriteString("| Field | Type | Category | Annotations |\n")
		b.WriteString("|-------|------|----------|-------------|\n")
		for _, field := range model.Fields {
			annotations := strings.Join(field.Annotations, ", ")
			fmt.Fprintf(&b, "| %s | `%s` | %s | %s |\n",
				field.Name, field.Type, field.Category, annotations)
		}
		b.WriteString("\n")
	}

	if len(result.Views) > 0 || len(result.Services) > 0 {
		b.WriteString("## Related Components\n\n")
		if len(result.Views) > 0 {
			b.WriteString("**Views:**\n")
			for _, view := range result.Views {
				fmt.Fprintf(&b, "- %s (`%s`)\n", view.Name, view.FileName)
			}
			b.WriteString("\n")
		}
		if len(result.Services) > 0 {
			b.WriteString("**Services:**\n")
			for _, service := range result.Services {
				fmt.Fprintf(&b, "- %s\n", service.Name)
			}
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}
