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
	"strings"
)

// routePattern matches one route-marker shape on a single source line.
// Either method (fixed verb implied by the marker) or methodIndex (capture
// group carrying the verb) is set, never both.
type routePattern struct {
	re          *regexp.Regexp
	method      string // fixed HTTP method, when the marker implies one
	methodIndex int    // capture group for the method, when captured
	pathIndex   int    // capture group for the sub-path; may match empty
	methodsList int    // capture group for a comma-separated verb list (Flask)
}

// javaRoutePatterns match Spring verb annotations. A @RequestMapping without
// a method attribute is a path prefix, not a route, and is deliberately
// absent from this table.
var javaRoutePatterns = []routePattern{
	// Shorthand verb annotations: @GetMapping, @PostMapping("/x"), @PutMapping(value = "/x")
	{re: regexp.MustCompile(`@GetMapping\b(?:\s*\(\s*(?:value\s*=\s*|path\s*=\s*)?["']([^"']*)["'])?`), method: "GET", pathIndex: 1},
	{re: regexp.MustCompile(`@PostMapping\b(?:\s*\(\s*(?:value\s*=\s*|path\s*=\s*)?["']([^"']*)["'])?`), method: "POST", pathIndex: 1},
	{re: regexp.MustCompile(`@PutMapping\b(?:\s*\(\s*(?:value\s*=\s*|path\s*=\s*)?["']([^"']*)["'])?`), method: "PUT", pathIndex: 1},
	{re: regexp.MustCompile(`@DeleteMapping\b(?:\s*\(\s*(?:value\s*=\s*|path\s*=\s*)?["']([^"']*)["'])?`), method: "DELETE", pathIndex: 1},
	{re: regexp.MustCompile(`@PatchMapping\b(?:\s*\(\s*(?:value\s*=\s*|path\s*=\s*)?["']([^"']*)["'])?`), method: "PATCH", pathIndex: 1},
	// Long form with an explicit method attribute, either argument order
	{re: regexp.MustCompile(`@RequestMapping\s*\(\s*method\s*=\s*RequestMethod\.(GET|POST|PUT|DELETE|PATCH)\s*(?:,\s*(?:value|path)\s*=\s*["']([^"']*)["'])?`), methodIndex: 1, pathIndex: 2},
	{re: regexp.MustCompile(`@RequestMapping\s*\(\s*(?:value|path)\s*=\s*["']([^"']*)["']\s*,\s*method\s*=\s*RequestMethod\.(GET|POST|PUT|DELETE|PATCH)`), methodIndex: 2, pathIndex: 1},
}

// jsRoutePatterns match Express router calls and NestJS verb decorators.
var jsRoutePatterns = []routePattern{
	// Express style: router.get('/path', ...), app.post("/path", ...)
	{re: regexp.MustCompile(`\b(?:router|app)\.(get|post|put|delete|patch)\s*\(\s*["'` + "`" + `]([^"'` + "`" + `]*)["'` + "`" + `]`), methodIndex: 1, pathIndex: 2},
	// NestJS style: @Get(), @Post('create')
	{re: regexp.MustCompile(`@(Get|Post|Put|Delete|Patch)\s*\(\s*(?:["']([^"']*)["'])?\s*\)`), methodIndex: 1, pathIndex: 2},
}

// pythonRoutePatterns match Flask and FastAPI decorators. The Flask
// methods=[...] form must come before the bare route form so its verb list
// is consumed; a bare @app.route defaults to GET.
var pythonRoutePatterns = []routePattern{
	// Flask with explicit verbs: @app.route("/x", methods=["GET", "POST"])
	{re: regexp.MustCompile(`@(?:app|bp|blueprint)\.route\s*\(\s*["']([^"']*)["']\s*,\s*methods\s*=\s*\[([^\]]*)\]`), pathIndex: 1, methodsList: 2},
	// FastAPI verb decorators: @app.get("/x"), @router.post("/x")
	{re: regexp.MustCompile(`@(?:app|router|api)\.(get|post|put|delete|patch)\s*\(\s*["']([^"']*)["']`), methodIndex: 1, pathIndex: 2},
	// Bare Flask route, implicit GET
	{re: regexp.MustCompile(`@(?:app|bp|blueprint)\.route\s*\(\s*["']([^"']*)["']\s*\)`), method: "GET", pathIndex: 1},
}

// prefixPattern matches a class/file-level route prefix. Only the first
// occurrence per file contributes a base path.
type prefixPattern struct {
	re        *regexp.Regexp
	pathIndex int
}

var javaPrefixPatterns = []prefixPattern{
	// Class-level @RequestMapping with no method attribute
	{re: regexp.MustCompile(`@RequestMapping\s*\(\s*(?:value\s*=\s*|path\s*=\s*)?["']([^"']*)["']\s*\)`), pathIndex: 1},
}

var jsPrefixPatterns = []prefixPattern{
	// NestJS controller base: @Controller('users')
	{re: regexp.MustCompile(`@Controller\s*\(\s*["']([^"']*)["']\s*\)`), pathIndex: 1},
}

var pythonPrefixPatterns = []prefixPattern{
	// Flask Blueprint url_prefix / FastAPI APIRouter prefix
	{re: regexp.MustCompile(`(?:url_prefix|prefix)\s*=\s*["']([^"']*)["']`), pathIndex: 1},
}

// routeTableFor returns the marker tables for a detected language.
// Vue files never carry routes; unknown languages match nothing.
func routeTableFor(language string) ([]routePattern, []prefixPattern) {
	switch language {
	case "java":
		return javaRoutePatterns, javaPrefixPatterns
	case "javascript", "typescript":
		return jsRoutePatterns, jsPrefixPatterns
	case "python":
		return pythonRoutePatterns, pythonPrefixPatterns
	default:
		return nil, nil
	}
}

// ExtractEndpoints produces the endpoint records of one loaded file.
//
// The base path is taken from the first prefix marker only. Each line is
// matched against the route table in order, first match wins, so one marker
// line yields records for exactly one table entry. Sub-paths concatenate
// with the base path verbatim; no slash normalization is applied.
func (e *Extractor) ExtractEndpoints(file *SourceFile) []Endpoint {
	routes, prefixes := routeTableFor(file.Language)
	if len(routes) == 0 {
		return nil
	}

	unit := unitNameFromFile(file)
	basePath := firstPrefix(file.Lines, prefixes)

	var endpoints []Endpoint
	for i, line := range file.Lines {
		p, match := matchRoute(routes, line)
		if match == nil {
			continue
		}

		subPath := ""
		if p.pathIndex > 0 && p.pathIndex < len(match) {
			subPath = match[p.pathIndex]
		}
		fullPath := basePath + subPath

		requiresAuth := e.detector.RequiresAuth(file, i)

		for _, method := range markerMethods(p, match) {
			endpoints = append(endpoints, Endpoint{
				HTTPMethod:     method,
				Path:           fullPath,
				OwningUnitName: unit,
				RequiresAuth:   requiresAuth,
			})
		}
	}

	e.logger.Debug("extract.endpoints",
		"path", file.Path,
		"unit", unit,
		"base_path", basePath,
		"count", len(endpoints),
	)
	return endpoints
}

// matchRoute tries the table entries in order and returns the first hit.
func matchRoute(routes []routePattern, line string) (*routePattern, []string) {
	for i := range routes {
		if m := routes[i].re.FindStringSubmatch(line); m != nil {
			return &routes[i], m
		}
	}
	return nil, nil
}

// firstPrefix returns the base path from the first prefix-marker occurrence,
// or "" when the file has none.
func firstPrefix(lines []string, prefixes []prefixPattern) string {
	for _, line := range lines {
		for _, p := range prefixes {
			if m := p.re.FindStringSubmatch(line); m != nil && p.pathIndex < len(m) {
				return m[p.pathIndex]
			}
		}
	}
	return ""
}

// markerMethods resolves the HTTP verbs one matched marker stands for.
// Flask's methods=[...] list may carry several verbs on a single marker;
// every other shape yields exactly one.
func markerMethods(p *routePattern, match []string) []string {
	if p.method != "" {
		return []string{p.method}
	}
	if p.methodIndex > 0 && p.methodIndex < len(match) {
		return []string{strings.ToUpper(match[p.methodIndex])}
	}
	if p.methodsList > 0 && p.methodsList < len(match) {
		return splitMethodsList(match[p.methodsList])
	}
	return nil
}

// splitMethodsList parses a Flask-style verb list: "GET", 'POST'.
func splitMethodsList(raw string) []string {
	var methods []string
	for _, part := range strings.Split(raw, ",") {
		m := strings.ToUpper(strings.Trim(strings.TrimSpace(part), `"'`))
		switch m {
		case "GET", "POST", "PUT", "DELETE", "PATCH":
			methods = append(methods, m)
		}
	}
	return methods
}
