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

package intent

// actionVerbs is the closed vocabulary of recognized domain-action verbs.
// Matching is whole-word only; derived forms ("managing", "orders") do not
// count as verbs and fall through to the noun rules.
var actionVerbs = []string{
	"forecast", "predict", "estimate", "analyze", "calculate",
	"browse", "search", "filter",
	"manage", "track", "monitor", "coordinate", "schedule",
	"process", "deliver",
	"purchase", "order", "sell", "book", "reserve",
	"plan", "organize",
	"create", "update", "delete", "view", "list",
	"import", "export", "generate",
	"validate", "verify",
	"notify", "send", "publish", "subscribe",
	"authenticate", "authorize", "approve", "reject",
	"assign", "allocate",
	"measure", "assess", "evaluate", "compare",
	"recommend", "suggest",
	"optimize", "improve", "enhance",
	"report", "visualize", "display", "present",
	"share", "collaborate", "communicate",
	"integrate", "sync", "backup", "restore", "archive",
	"audit", "log", "alert", "remind",
}

// stopWords are common connective words never retained as domain nouns.
// Only words of four or more letters matter here; shorter tokens are
// already dropped by the length filter.
var stopWords = map[string]bool{
	"that": true, "this": true, "with": true, "from": true, "will": true,
	"your": true, "their": true, "there": true, "would": true, "should": true,
	"could": true, "about": true, "which": true, "when": true, "where": true,
	"what": true, "them": true, "they": true, "then": true, "than": true,
	"have": true, "been": true, "also": true, "such": true, "some": true,
	"more": true, "most": true, "other": true, "into": true, "over": true,
	"only": true, "very": true, "each": true, "both": true, "while": true,
}

// actionVerbSet provides O(1) membership checks against the vocabulary.
var actionVerbSet = buildVerbSet()

func buildVerbSet() map[string]bool {
	set := make(map[string]bool, len(actionVerbs))
	for _, v := range actionVerbs {
		set[v] = true
	}
	return set
}
