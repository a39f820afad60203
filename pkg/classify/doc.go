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

// Package classify maps endpoint-owning units to business actors, goals,
// benefits, and an outcome focus.
//
// Each resolver is an ordered rule table of (predicate, result) pairs
// evaluated in a fixed sequence with first-match-wins semantics. The tables
// match on substrings of the unit name, keywords in the unit's endpoint
// paths, the observed HTTP-method set, and the vocabulary mined by the
// intent package. Classification is deterministic: identical inputs always
// yield an identical ActorMapping.
//
// Typical usage:
//
//	c := classify.NewClassifier(logger)
//	mapping := c.Classify(classify.UnitSignals{
//	    Name:          "SprintController",
//	    Methods:       []string{"GET", "POST"},
//	    Paths:         []string{"/sprints", "/sprints/forecast"},
//	    EndpointCount: 2,
//	}, intentCtx)
package classify
