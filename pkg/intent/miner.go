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

import (
	"errors"
	"strings"

	"log/slog"
)

// Mining failures are configuration errors: classification quality depends
// entirely on the description signal, so the run must stop rather than
// fall back to generic output.
var (
	// ErrEmptyDescription means no project description was provided.
	ErrEmptyDescription = errors.New("project description is empty")

	// ErrNoActionVerbs means the description (plus README features) contains
	// no whole-word match from the action-verb vocabulary.
	ErrNoActionVerbs = errors.New("no recognized action verbs in description")
)

// minNounLength is the shortest token retained as a domain noun.
const minNounLength = 4

// Context is the verb/noun vocabulary mined from the project description,
// used to bias classification toward domain-specific language. Verbs and
// nouns keep first-seen order so downstream iteration is deterministic.
// Lifetime is a single generation run; never persisted.
type Context struct {
	ActionVerbs []string
	DomainNouns []string

	verbSet map[string]bool
	nounSet map[string]bool
}

// NewContext builds a Context from explicit verb and noun lists.
func NewContext(verbs, nouns []string) *Context {
	c := &Context{
		verbSet: make(map[string]bool, len(verbs)),
		nounSet: make(map[string]bool, len(nouns)),
	}
	for _, v := range verbs {
		if !c.verbSet[v] {
			c.verbSet[v] = true
			c.ActionVerbs = append(c.ActionVerbs, v)
		}
	}
	for _, n := range nouns {
		if !c.nounSet[n] {
			c.nounSet[n] = true
			c.DomainNouns = append(c.DomainNouns, n)
		}
	}
	return c
}

// HasVerb reports whether word is one of the mined action verbs.
func (c *Context) HasVerb(word string) bool {
	return c.verbSet[word]
}

// HasNoun reports whether word is one of the mined domain nouns.
func (c *Context) HasNoun(word string) bool {
	return c.nounSet[word]
}

// MentionsTerm reports whether the mined text mentions a term: an exact
// verb match, or a noun equal to or extending the term ("projects"
// mentions "project").
func (c *Context) MentionsTerm(term string) bool {
	if c.verbSet[term] {
		return true
	}
	if c.nounSet[term] {
		return true
	}
	for _, noun := range c.DomainNouns {
		if strings.HasPrefix(noun, term) {
			return true
		}
	}
	return false
}

// FirstVerb returns the first mined action verb, or "" for an empty context.
func (c *Context) FirstVerb() string {
	if len(c.ActionVerbs) == 0 {
		return ""
	}
	return c.ActionVerbs[0]
}

// Miner derives a Context from free text.
type Miner struct {
	logger *slog.Logger
}

// NewMiner creates a context miner.
func NewMiner(logger *slog.Logger) *Miner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Miner{logger: logger}
}

// Mine analyzes the project description, augmented by the README's
// "Features" section when present, and returns the mined Context.
//
// An empty description or a description with zero recognized action verbs
// is a hard error; downstream classification must not run on a silent
// default.
func (m *Miner) Mine(description, readme string) (*Context, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	text := description
	if features := FeatureBullets(readme); len(features) > 0 {
		text += "\n" + strings.Join(features, "\n")
		m.logger.Debug("intent.readme.features", "bullets", len(features))
	}

	ctx := mineText(text)
	if len(ctx.ActionVerbs) == 0 {
		return nil, ErrNoActionVerbs
	}

	m.logger.Info("intent.mine.complete",
		"verbs", len(ctx.ActionVerbs),
		"nouns", len(ctx.DomainNouns),
	)
	return ctx, nil
}

// mineText runs the verb/noun extraction over lower-cased text.
func mineText(text string) *Context {
	ctx := &Context{
		verbSet: make(map[string]bool),
		nounSet: make(map[string]bool),
	}

	for _, raw := range strings.Fields(strings.ToLower(text)) {
		word := stripNonAlpha(raw)
		if word == "" {
			continue
		}

		if actionVerbSet[word] {
			if !ctx.verbSet[word] {
				ctx.verbSet[word] = true
				ctx.ActionVerbs = append(ctx.ActionVerbs, word)
			}
			continue
		}

		if len(word) < minNounLength || stopWords[word] {
			continue
		}
		if !ctx.nounSet[word] {
			ctx.nounSet[word] = true
			ctx.DomainNouns = append(ctx.DomainNouns, word)
		}
	}

	return ctx
}

// stripNonAlpha removes every non-letter character from a token.
func stripNonAlpha(token string) string {
	var b strings.Builder
	for _, r := range token {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FeatureBullets extracts the bullet texts of a README's "Features"
// section: lines starting with "-" or "*" after a heading containing
// "features", up to the next heading. Returns nil when the README has no
// such section.
func FeatureBullets(readme string) []string {
	if readme == "" {
		return nil
	}

	var bullets []string
	inFeatures := false
	for _, line := range strings.Split(readme, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			heading := strings.ToLower(strings.TrimLeft(trimmed, "# "))
			inFeatures = strings.Contains(heading, "features")
			continue
		}
		if !inFeatures {
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			text := strings.TrimSpace(strings.TrimLeft(trimmed, "-* "))
			if text != "" {
				bullets = append(bullets, text)
			}
		}
	}
	return bullets
}
