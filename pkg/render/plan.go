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

// RenderPlan renders a phased implementation plan derived from the
// discovered components: data layer first, then API, views, services.
// Empty phases are skipped.
func (r *Renderer) RenderPlan(result *pipeline.Result) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Implementation Plan\n\n", r.project)

	phase := 1

	if len(result.Models) > 0 {
		fmt.Fprintf(&b, "## Phase %d: Data Layer\n\n", phase)
		phase++
		for _, model := range result.Models {
			if model.FieldCount > 0 {
				fmt.Fprintf(&b, "- [ ] Implement `%s` model (%d fields)\n", model.Name, model.FieldCount)
			} else {
				fmt.Fprintf(&b, "- [ ] Implement `%s` model\n", model.Name)
			}
		}
		b.WriteString("- [ ] Set up persistence and migrations\n\n")
	}

	if len(result.Units) > 0 {
		fmt.Fprintf(&b, "## Phase %d: API Layer\n\n", phase)
		phase++
		for _, unit := range result.Units {
			fmt.Fprintf(&b, "- [ ] Implement `%s` (%d endpoints: %s)\n",
				unit.Name, unit.EndpointCount, strings.Join(unit.Methods, ", "))
		}
		if hasAuthEndpoint(result) {
			b.WriteString("- [ ] Wire authentication middleware for protected routes\n")
		}
		b.WriteString("\n")
	}

	if len(result.Views) > 0 {
		fmt.Fprintf(&b, "## Phase %d: Views\n\n", phase)
		phase++
		for _, view := range result.Views {
			fmt.Fprintf(&b, "- [ ] Build `%s` view\n", view.Name)
		}
		b.WriteString("\n")
	}

	if len(result.Services) > 0 {
		fmt.Fprintf(&b, "## Phase %d: Services\n\n", phase)
		phase++
		for _, service := range result.Services {
			fmt.Fprintf(&b, "- [ ] Implement `%s`\n", service.Name)
		}
		b.WriteString("\n")
	}

	if phase == 1 {
		b.WriteString("No components discovered; nothing to plan.\n")
	}

	return []byte(b.String())
}

func hasAuthEndpoint(result *pipeline.Result) bool {
	for _, ep := range result.Endpoints {
		if ep.RequiresAuth {
			return true
		}
	}
	return false
}
