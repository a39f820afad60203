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

	"github.com/kraklabs/specgen/pkg/classify"
	"github.com/kraklabs/specgen/pkg/pipeline"
)

// Story caps per outcome focus. Classification never truncates; the cut
// happens here, in discovery order, so the document stays readable for
// large codebases.
const (
	maxStrategicStories   = 6
	maxOperationalStories = 2
)

// story pairs a unit with its mapping, in discovery order.
type story struct {
	unit    pipeline.UnitSummary
	mapping classify.ActorMapping
}

// RenderSpec renders the Markdown specification: actors, user stories
// grouped by outcome focus, and per-unit endpoint tables.
func (r *Renderer) RenderSpec(result *pipeline.Result) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Specification\n\n", r.project)
	fmt.Fprintf(&b, "Generated from `%s`.\n\n", result.RootPath)

	if result.Intent != nil && len(result.Intent.ActionVerbs) > 0 {
		fmt.Fprintf(&b, "**Core actions:** %s\n\n", strings.Join(result.Intent.ActionVerbs, ", "))
	}

	r.writeActors(&b, result)
	r.writeStories(&b, result)
	r.writeEndpointTables(&b, result)

	return []byte(b.String())
}

// writeActors lists each distinct actor role with the units it covers,
// first-seen order.
func (r *Renderer) writeActors(b *strings.Builder, result *pipeline.Result) {
	if len(result.Units) == 0 {
		return
	}

	b.WriteString("## Actors\n\n")
	b.WriteString("| Actor | Areas |\n")
	b.WriteString("|-------|-------|\n")

	index := make(map[string]int)
	var roles []string
	areas := make(map[string][]string)
	for _, unit := range result.Units {
		mapping := result.ActorMappings[unit.Name]
		if _, ok := index[mapping.ActorRole]; !ok {
			index[mapping.ActorRole] = len(roles)
			roles = append(roles, mapping.ActorRole)
		}
		areas[mapping.ActorRole] = append(areas[mapping.ActorRole], classify.EntityName(unit.Name))
	}

	for _, role := range roles {
		fmt.Fprintf(b, "| %s | %s |\n", role, strings.Join(areas[role], ", "))
	}
	b.WriteString("\n")
}

// writeStories renders user stories grouped by outcome focus. Strategic
// and operational groups are capped; enabler and support groups are small
// by construction and render in full.
func (r *Renderer) writeStories(b *strings.Builder, result *pipeline.Result) {
	if len(result.Units) == 0 {
		return
	}

	groups := make(map[classify.OutcomeFocus][]story)
	for _, unit := range result.Units {
		mapping := result.ActorMappings[unit.Name]
		groups[mapping.OutcomeFocus] = append(groups[mapping.OutcomeFocus], story{unit: unit, mapping: mapping})
	}

	b.WriteString("## User Stories\n\n")

	sections := []struct {
		focus classify.OutcomeFocus
		title string
		cap   int
	}{
		{classify.FocusStrategic, "Strategic", maxStrategicStories},
		{classify.FocusOperational, "Operational", maxOperationalStories},
		{classify.FocusEnabler, "Enablers", 0},
		{classify.FocusSupport, "Support", 0},
	}

	for _, section := range sections {
		stories := groups[section.focus]
		if len(stories) == 0 {
			continue
		}

		total := len(stories)
		if section.cap > 0 && total > section.cap {
			stories = stories[:section.cap]
		}

		fmt.Fprintf(b, "### %s\n\n", section.title)
		for _, s := range stories {
			fmt.Fprintf(b, "- As a %s, I want to %s, so that I can %s.\n",
				s.mapping.ActorRole, s.mapping.GoalPhrase, s.mapping.BenefitPhrase)
		}
		if section.cap > 0 && total > section.cap {
			fmt.Fprintf(b, "\n_%d additional %s stories omitted._\n", total-section.cap, strings.ToLower(section.title))
		}
		b.WriteString("\n")
	}
}

// writeEndpointTables renders one table per owning unit, then an overall
// summary grouped by method.
func (r *Renderer) writeEndpointTables(b *strings.Builder, result *pipeline.Result) {
	if len(result.Endpoints) == 0 {
		return
	}

	fmt.Fprintf(b, "## HTTP Endpoints (%d found)\n\n", len(result.Endpoints))

	for _, unit := range result.Units {
		fmt.Fprintf(b, "### %s\n\n", unit.Name)
		b.WriteString("| Method | Path | Auth |\n")
		b.WriteString("|--------|------|------|\n")
		for _, ep := range result.Endpoints {
			if ep.OwningUnitName != unit.Name {
				continue
			}
			auth := ""
			if ep.RequiresAuth {
				auth = "required"
			}
			fmt.Fprintf(b, "| %s | `%s` | %s |\n", ep.HTTPMethod, ep.Path, auth)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Summary\n\n")
	methodCounts := make(map[string]int)
	for _, ep := range result.Endpoints {
		methodCounts[ep.HTTPMethod]++
	}
	b.WriteString("**By Method:**\n")
	for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		if count, ok := methodCounts[m]; ok {
			fmt.Fprintf(b, "- %s: %d\n", m, count)
		}
	}
	b.WriteString("\n")
}
