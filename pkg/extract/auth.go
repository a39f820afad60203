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

package extract

import (
	"regexp"

	"log/slog"
)

// AuthDetector decides whether the route marker at a given line of a loaded
// file sits in a protected scope. Implementations must be side-effect free
// with respect to the scanned tree.
type AuthDetector interface {
	// RequiresAuth reports whether the marker at markerLine (0-based index
	// into file.Lines) is guarded by an authorization marker.
	RequiresAuth(file *SourceFile, markerLine int) bool
}

// Ensure implementations satisfy the interface
var _ AuthDetector = (*WindowDetector)(nil)
var _ AuthDetector = (*JavaTreeDetector)(nil)

// AuthMode determines which auth detection implementation to use.
type AuthMode string

const (
	// AuthModeTreeSitter resolves annotation ownership from the parse tree.
	// Java only; other languages fall back to the window heuristic. Opt-in:
	// it is scope-aware and so classifies guards the window misses.
	AuthModeTreeSitter AuthMode = "treesitter"

	// AuthModeWindow uses a fixed-size backward line window. Fast and
	// language-agnostic, but not scope-aware: a guard annotation further
	// away than the window is missed. That imprecision is a documented
	// limitation of the heuristic, kept for parity with generated docs.
	AuthModeWindow AuthMode = "window"

	// AuthModeAuto resolves to the window heuristic. The scope-aware
	// detector changes which endpoints count as protected, so it never
	// engages unless explicitly requested.
	AuthModeAuto AuthMode = "auto"
)

// DefaultAuthMode is the default auth detection mode.
const DefaultAuthMode = AuthModeWindow

// DefaultAuthWindow is how many lines above a route marker the window
// detector inspects.
const DefaultAuthWindow = 10

// windowAuthPatterns match annotation/decorator guards that sit on their
// own line above the route marker. All require the @ sigil so that import
// lines naming a guard ("from flask_login import login_required") never
// poison the window.
var windowAuthPatterns = []*regexp.Regexp{
	// Spring Security annotations
	regexp.MustCompile(`@(?:PreAuthorize|PostAuthorize|Secured|RolesAllowed|DenyAll)\b`),
	// NestJS guards
	regexp.MustCompile(`@UseGuards\b`),
	// Flask/FastAPI decorators
	regexp.MustCompile(`@(?:login_required|jwt_required|auth_required|permission_required|requires_auth)\b`),
}

// inlineAuthPatterns match middleware guards passed inside the route
// registration itself. Checked on the marker line only; a require() of the
// middleware earlier in the file must not count.
var inlineAuthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:requireAuth|requiresAuth|isAuthenticated|ensureAuth(?:enticated)?|verifyToken|authMiddleware)\b`),
	regexp.MustCompile(`passport\.authenticate`),
}

// NewAuthDetector creates the detector for a mode, mirroring the configured
// window size. Unknown modes warn and fall back to the window heuristic.
func NewAuthDetector(mode AuthMode, window int, logger *slog.Logger) AuthDetector {
	if logger == nil {
		logger = slog.Default()
	}
	if window <= 0 {
		window = DefaultAuthWindow
	}

	switch mode {
	case AuthModeTreeSitter:
		logger.Info("extract.auth.mode", "mode", "treesitter")
		return NewJavaTreeDetector(window, logger)
	case AuthModeAuto:
		logger.Info("extract.auth.mode", "mode", "window", "window", window, "selected_by", "auto")
		return NewWindowDetector(window, logger)
	case AuthModeWindow:
		logger.Info("extract.auth.mode", "mode", "window", "window", window)
		return NewWindowDetector(window, logger)
	default:
		logger.Warn("extract.auth.mode.unknown", "mode", string(mode), "fallback", "window")
		return NewWindowDetector(window, logger)
	}
}

// WindowDetector inspects a fixed-size backward window of lines before a
// route marker, plus the marker line itself for same-line middleware. This
// is a proximity heuristic, not a scope-aware parse: a method whose guard
// annotation sits further away than the window is classified public.
type WindowDetector struct {
	logger *slog.Logger
	window int
}

// NewWindowDetector creates a window detector with the given lookback size.
func NewWindowDetector(window int, logger *slog.Logger) *WindowDetector {
	if logger == nil {
		logger = slog.Default()
	}
	if window <= 0 {
		window = DefaultAuthWindow
	}
	return &WindowDetector{logger: logger, window: window}
}

// RequiresAuth checks the marker line for inline middleware and the window
// of preceding lines for annotation/decorator guards.
func (d *WindowDetector) RequiresAuth(file *SourceFile, markerLine int) bool {
	if markerLine < 0 || markerLine >= len(file.Lines) {
		return false
	}

	if matchesAny(inlineAuthPatterns, file.Lines[markerLine]) ||
		matchesAny(windowAuthPatterns, file.Lines[markerLine]) {
		return true
	}

	start := markerLine - d.window
	if start < 0 {
		start = 0
	}
	for i := start; i < markerLine; i++ {
		if matchesAny(windowAuthPatterns, file.Lines[i]) {
			return true
		}
	}
	return false
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
