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

package classify

import (
	"strings"
	"unicode"

	"log/slog"

	"github.com/kraklabs/specgen/pkg/intent"
)

// OutcomeFocus is the coarse business-value classification of one
// endpoint-owning unit.
type OutcomeFocus string

const (
	// FocusStrategic marks core decision-support functionality.
	FocusStrategic OutcomeFocus = "strategic"

	// FocusOperational marks routine CRUD functionality.
	FocusOperational OutcomeFocus = "operational"

	// FocusEnabler marks cross-cutting infrastructure such as auth.
	FocusEnabler OutcomeFocus = "enabler"

	// FocusSupport marks auxiliary and test tooling.
	FocusSupport OutcomeFocus = "support"
)

// UnitSignals carries the observed evidence for one endpoint-owning unit.
// Methods and Paths keep first-seen order.
type UnitSignals struct {
	Name          string
	Methods       []string
	Paths         []string
	EndpointCount int
}

// ActorMapping is the classification result for one owning unit. It is
// derived exactly once per unit and never mutated afterward.
type ActorMapping struct {
	OwningUnitName string       `json:"owning_unit"`
	ActorRole      string       `json:"actor_role"`
	GoalPhrase     string       `json:"goal"`
	BenefitPhrase  string       `json:"benefit"`
	OutcomeFocus   OutcomeFocus `json:"outcome_focus"`
}

// Classifier maps owning units to actor mappings with ordered rule tables.
// Classification is pure: no I/O, no randomness, identical inputs always
// produce identical mappings.
type Classifier struct {
	logger *slog.Logger
}

// NewClassifier creates a classifier.
func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// unitFacts is the precomputed view of one unit the rule tables match on.
type unitFacts struct {
	name      string // lower-cased unit name
	entity    string // unit name minus Controller/Api suffix, camel-split, lowered
	methods   map[string]bool
	pathText  string // lower-cased concatenation of the unit's paths
	count     int
	ctx       *intent.Context
}

// Classify resolves actor role, goal, benefit, and outcome focus for one
// owning unit. Each resolver walks its rule table in fixed order; the first
// matching rule wins.
func (c *Classifier) Classify(unit UnitSignals, ctx *intent.Context) ActorMapping {
	if ctx == nil {
		ctx = intent.NewContext(nil, nil)
	}

	facts := &unitFacts{
		name:     strings.ToLower(unit.Name),
		entity:   EntityName(unit.Name),
		methods:  methodSet(unit.Methods),
		pathText: strings.ToLower(strings.Join(unit.Paths, " ")),
		count:    unit.EndpointCount,
		ctx:      ctx,
	}

	mapping := ActorMapping{
		OwningUnitName: unit.Name,
		ActorRole:      resolveActor(facts),
		OutcomeFocus:   resolveOutcome(facts),
	}
	mapping.GoalPhrase = resolveGoal(facts)
	mapping.BenefitPhrase = resolveBenefit(facts, mapping.GoalPhrase)

	c.logger.Debug("classify.unit",
		"unit", unit.Name,
		"actor", mapping.ActorRole,
		"focus", string(mapping.OutcomeFocus),
	)
	return mapping
}

// ClassifyAll classifies every unit, keyed by owning-unit name. Units keep
// their given order; the map carries no ordering of its own.
func (c *Classifier) ClassifyAll(units []UnitSignals, ctx *intent.Context) map[string]ActorMapping {
	mappings := make(map[string]ActorMapping, len(units))
	for _, unit := range units {
		mappings[unit.Name] = c.Classify(unit, ctx)
	}
	return mappings
}

// EntityName derives the business-entity phrase from an owning-unit name:
// a trailing "Controller" or "Api" is stripped, the camel-case remainder is
// split into words, and the result is lower-cased. "UserProfileController"
// becomes "user profile".
func EntityName(unitName string) string {
	base := unitName
	for _, suffix := range []string{"Controller", "controller", "Api", "api"} {
		if strings.HasSuffix(base, suffix) && len(base) > len(suffix) {
			base = base[:len(base)-len(suffix)]
			break
		}
	}

	words := splitCamel(base)
	return strings.ToLower(strings.Join(words, " "))
}

// splitCamel splits a camel-case or snake-case identifier into words.
func splitCamel(s string) []string {
	var words []string
	var current strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		case unicode.IsUpper(r) && i > 0 && current.Len() > 0:
			words = append(words, current.String())
			current.Reset()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func methodSet(methods []string) map[string]bool {
	set := make(map[string]bool, len(methods))
	for _, m := range methods {
		set[strings.ToUpper(m)] = true
	}
	return set
}
