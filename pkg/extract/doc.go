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

// Package extract turns candidate source files into structured records.
//
// Per file, the extractor applies language-specific textual patterns to pull
// out endpoints (method, path, owning unit, auth flag), data models (name,
// field count, field list), views, and services. Files are read-only inputs;
// extraction never modifies the scanned tree.
//
// # Supported Ecosystems
//
// Pattern tables exist for three ecosystems, selected by the language the
// scanner detected:
//   - Java/Kotlin: Spring verb annotations (@GetMapping et al.), class-level
//     @RequestMapping base paths, JPA-style field declarations
//   - JavaScript/TypeScript: Express router calls, NestJS verb decorators
//     and @Controller base paths, Mongoose and TS member fields
//   - Python: Flask @app.route (with and without methods=[...]), FastAPI
//     verb decorators, SQLAlchemy columns and annotated class fields
//
// Each table is an ordered slice of compiled patterns; per line, the first
// matching entry wins, so one marker line never yields records for two
// table entries.
//
// # Quick Start
//
//	detector := extract.NewAuthDetector(extract.AuthModeAuto, extract.DefaultAuthWindow, logger)
//	extractor := extract.NewExtractor(detector, logger)
//
//	file, err := extractor.Load(candidate)
//	if err != nil {
//	    // warn and skip; a single unreadable file never aborts a run
//	}
//	endpoints := extractor.ExtractEndpoints(file)
//
// # Path Building
//
// A file's base path comes from its first route-prefix marker (class-level
// @RequestMapping, @Controller, Blueprint url_prefix). Sub-paths concatenate
// with the base verbatim; no slash de-duplication is applied, so a trailing
// slash in the base plus a leading slash in the sub-path stays visible in
// the generated docs.
//
// # Auth Detection
//
// Whether an endpoint requires auth is decided by an AuthDetector:
//
//   - window: inspect a fixed-size backward line window (default 10)
//     before the route marker for a known guard. Fast, language-agnostic,
//     not scope-aware.
//   - treesitter: resolve annotation ownership from the Java parse tree;
//     guards are found however far they sit from the marker. Non-Java
//     files fall back to the window.
//   - auto: treesitter with window fallback.
//
// # Failure Semantics
//
// A file that cannot be read is skipped with a warning. A recognized file
// yielding zero records is a valid empty contribution, not an error. Model
// detail parsing that cannot re-open its file keeps the field count and
// leaves the field list empty.
package extract
