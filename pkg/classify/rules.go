// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package classify

import "strings"

// The resolvers below are ordered rule tables evaluated top to bottom,
// first match wins. The order is part of the contract: e.g. the admin-name
// rule must fire before the endpoint-count rule, so an AdminController with
// many endpoints still classifies as enabler.

// actorRule maps a unit to a business actor role.
type actorRule struct {
	name    string
	applies func(u *unitFacts) bool
	role    string
}

var actorRules = []actorRule{
	{name: "auth_name", applies: nameContainsAny("auth", "login", "session", "security", "token"), role: "system user"},
	{name: "admin_name", applies: nameContainsAny("admin", "system"), role: "administrator"},
	{name: "user_name", applies: nameContainsAny("user", "account", "profile"), role: "user"},

	// Domain co-occurrence: the context must mention the term AND the unit
	// name must carry a related substring. Either signal alone is too weak.
	{name: "project_domain", applies: domainCooccurrence([]string{"project"}, []string{"project"}), role: "project manager"},
	{name: "team_domain", applies: domainCooccurrence([]string{"team"}, []string{"team", "member"}), role: "team member"},
	{name: "commerce_domain", applies: domainCooccurrence([]string{"order", "cart", "product"}, []string{"order", "cart", "product"}), role: "customer"},
	{name: "billing_domain", applies: domainCooccurrence([]string{"invoice", "payment"}, []string{"invoice", "payment", "billing"}), role: "accountant"},
	{name: "care_domain", applies: domainCooccurrence([]string{"patient", "appointment"}, []string{"patient", "appointment"}), role: "healthcare provider"},
}

const defaultActorRole = "user"

func resolveActor(u *unitFacts) string {
	for _, rule := range actorRules {
		if rule.applies(u) {
			return rule.role
		}
	}
	return defaultActorRole
}

// goalRule maps a unit to a goal phrase. The builder receives the facts so
// rules can embed the entity name or a matched context verb.
type goalRule struct {
	name    string
	applies func(u *unitFacts) bool
	build   func(u *unitFacts) string
}

var goalRules = []goalRule{
	// A context verb literally present in the unit's paths, combined with
	// POST, signals a decision-support workflow rather than plain CRUD.
	{
		name:    "context_verb_in_path",
		applies: func(u *unitFacts) bool { return contextVerbInPath(u) != "" && u.methods["POST"] },
		build: func(u *unitFacts) string {
			return contextVerbInPath(u) + " and analyze " + u.entity + " to support decision-making"
		},
	},
	{
		name:    "reporting_paths",
		applies: pathContainsAny("report", "analytics", "stats", "dashboard"),
		build:   func(u *unitFacts) string { return "generate " + u.entity + " reports and analytics" },
	},
	{
		name: "search_filter_paths",
		applies: func(u *unitFacts) bool {
			return strings.Contains(u.pathText, "search") && strings.Contains(u.pathText, "filter")
		},
		build: func(u *unitFacts) string { return "search and filter " + u.entity + " records efficiently" },
	},
	{
		name:    "export_paths",
		applies: pathContainsAny("export", "download"),
		build:   func(u *unitFacts) string { return "export " + u.entity + " data for external analysis" },
	},
	{
		name:    "demo_data_paths",
		applies: pathContainsAny("demo", "sample", "seed", "fake"),
		build:   func(u *unitFacts) string { return "generate sample " + u.entity + " data for experimentation" },
	},
}

// methodGoalPhrases is the method-set precedence chain, checked in slice
// order after every keyword rule missed. Supersets are listed before their
// subsets so {POST,GET,PUT} wins over {GET,POST}.
var methodGoalPhrases = []struct {
	needs  []string
	phrase string
}{
	{needs: []string{"POST", "GET", "PUT"}, phrase: "create, view, and update"},
	{needs: []string{"GET", "POST"}, phrase: "create and track"},
	{needs: []string{"GET", "PUT"}, phrase: "view and update"},
	{needs: []string{"GET", "DELETE"}, phrase: "view and manage"},
	{needs: []string{"GET"}, phrase: "view and retrieve"},
	{needs: []string{"POST"}, phrase: "create"},
	{needs: []string{"PUT"}, phrase: "update"},
	{needs: []string{"PATCH"}, phrase: "update"},
	{needs: []string{"DELETE"}, phrase: "manage"},
}

func resolveGoal(u *unitFacts) string {
	for _, rule := range goalRules {
		if rule.applies(u) {
			return rule.build(u)
		}
	}

	for _, mg := range methodGoalPhrases {
		if hasAllMethods(u.methods, mg.needs) {
			return mg.phrase + " " + u.entity + " records"
		}
	}
	// A unit with no recognized verbs still gets a usable phrase
	return "manage " + u.entity + " records"
}

// benefitRule maps a resolved goal phrase back to a benefit phrase.
type benefitRule struct {
	name    string
	applies func(u *unitFacts, goal string) bool
	build   func(u *unitFacts) string
}

var benefitRules = []benefitRule{
	{
		name:    "decision_support_goal",
		applies: goalContains("decision-making"),
		build:   func(u *unitFacts) string { return "make informed decisions from " + u.entity + " insights" },
	},
	{
		name:    "reporting_goal",
		applies: goalContains("reports and analytics"),
		build:   func(u *unitFacts) string { return "understand " + u.entity + " trends at a glance" },
	},
	{
		name:    "search_goal",
		applies: goalContains("search and filter"),
		build:   func(u *unitFacts) string { return "find the right " + u.entity + " records without manual digging" },
	},
	{
		name:    "export_goal",
		applies: goalContains("export"),
		build:   func(u *unitFacts) string { return "reuse " + u.entity + " data in external tools" },
	},
	{
		name:    "sample_data_goal",
		applies: goalContains("sample"),
		build:   func(u *unitFacts) string { return "experiment with realistic " + u.entity + " data safely" },
	},
	{
		// A goal verb that is also a mined context verb means the unit
		// speaks the domain's own language.
		name: "context_verb_in_goal",
		applies: func(u *unitFacts, goal string) bool {
			for _, word := range strings.Fields(goal) {
				if u.ctx.HasVerb(word) {
					return true
				}
			}
			return false
		},
		build: func(u *unitFacts) string { return "keep " + u.entity + " information accurate and current" },
	},
	{
		name: "entity_in_context",
		applies: func(u *unitFacts, goal string) bool {
			for _, word := range strings.Fields(u.entity) {
				if len(word) > 3 && u.ctx.MentionsTerm(word) {
					return true
				}
			}
			return false
		},
		build: func(u *unitFacts) string { return "stay on top of " + u.entity + " activity" },
	},
}

func resolveBenefit(u *unitFacts, goal string) string {
	for _, rule := range benefitRules {
		if rule.applies(u, goal) {
			return rule.build(u)
		}
	}
	if u.entity != "" {
		return "work with " + u.entity + " data"
	}
	// Nameless unit: lean on the mined vocabulary as the last resort
	if verb := u.ctx.FirstVerb(); verb != "" {
		return verb + " data effectively"
	}
	return "work with the system's data"
}

// outcomeRule maps a unit to its outcome focus.
type outcomeRule struct {
	name    string
	applies func(u *unitFacts) bool
	focus   OutcomeFocus
}

var outcomeRules = []outcomeRule{
	{name: "auth_name", applies: nameContainsAny("auth", "login", "session", "security", "token"), focus: FocusEnabler},
	{name: "admin_name", applies: nameContainsAny("admin", "config", "setting"), focus: FocusEnabler},
	{
		name: "demo_tooling",
		applies: func(u *unitFacts) bool {
			return nameContainsAny("test", "demo")(u) && pathContainsAny("generate", "sample", "seed", "demo")(u)
		},
		focus: FocusSupport,
	},
	{name: "analytic_paths", applies: pathContainsAny("calculate", "compute", "analyze", "report", "stats", "metrics", "dashboard"), focus: FocusStrategic},
	{
		name: "entity_in_context",
		applies: func(u *unitFacts) bool {
			for _, word := range strings.Fields(u.entity) {
				if len(word) > 3 && u.ctx.MentionsTerm(word) {
					return true
				}
			}
			return false
		},
		focus: FocusStrategic,
	},
	{name: "endpoint_volume", applies: func(u *unitFacts) bool { return u.count >= 5 }, focus: FocusStrategic},
}

func resolveOutcome(u *unitFacts) OutcomeFocus {
	for _, rule := range outcomeRules {
		if rule.applies(u) {
			return rule.focus
		}
	}
	return FocusOperational
}

// Predicate constructors shared by the tables.

func nameContainsAny(substrings ...string) func(u *unitFacts) bool {
	return func(u *unitFacts) bool {
		for _, s := range substrings {
			if strings.Contains(u.name, s) {
				return true
			}
		}
		return false
	}
}

func pathContainsAny(terms ...string) func(u *unitFacts) bool {
	return func(u *unitFacts) bool {
		for _, t := range terms {
			if strings.Contains(u.pathText, t) {
				return true
			}
		}
		return false
	}
}

func goalContains(term string) func(u *unitFacts, goal string) bool {
	return func(_ *unitFacts, goal string) bool {
		return strings.Contains(goal, term)
	}
}

func domainCooccurrence(contextTerms, nameSubstrings []string) func(u *unitFacts) bool {
	return func(u *unitFacts) bool {
		mentioned := false
		for _, term := range contextTerms {
			if u.ctx.MentionsTerm(term) {
				mentioned = true
				break
			}
		}
		if !mentioned {
			return false
		}
		for _, s := range nameSubstrings {
			if strings.Contains(u.name, s) {
				return true
			}
		}
		return false
	}
}

// contextVerbInPath returns the first mined context verb that appears
// literally in the unit's path text, or "".
func contextVerbInPath(u *unitFacts) string {
	for _, verb := range u.ctx.ActionVerbs {
		if strings.Contains(u.pathText, verb) {
			return verb
		}
	}
	return ""
}

func hasAllMethods(set map[string]bool, needs []string) bool {
	for _, m := range needs {
		if !set[m] {
			return false
		}
	}
	return true
}
