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

// Package scan discovers candidate source files in a project tree.
//
// The scanner walks a project once and sorts files into four candidate
// groups: endpoints, models, views, and services. Later stages parse the
// candidates; the scanner itself never reads file contents except for
// README discovery.
//
// # Discovery Strategy
//
// For each group the scanner tries two strategies in order:
//
//  1. Directory conventions: directories whose base name matches a known
//     convention (for example "controllers" for endpoints, "models" for
//     models) contribute every acceptable file beneath them.
//  2. Suffix fallback: when no conventional directory exists for a group,
//     files are matched by name suffix ("UserController.java",
//     "order.service.ts") under conventional source roots such as src/
//     or app/.
//
// Views are the exception: their fallback is a second directory
// convention ("components") rather than a suffix search, because view
// file names carry no reliable suffix.
//
// An empty candidate group is a valid outcome. A project with no views
// is still a project.
//
// # Quick Start
//
//	scanner := scan.NewScanner(logger)
//	result, err := scanner.Scan("/path/to/project")
//	if err != nil {
//	    return err
//	}
//
//	for _, f := range result.CandidatesFor(scan.KindEndpoints) {
//	    fmt.Println(f.Path, f.Language)
//	}
//
// Result records every matched directory, the total file count, and a
// map of skip reasons ("too_large", "ignored_dir", "unreadable") for
// reporting.
//
// # Ordering
//
// Candidate order is the tree walk order (lexical within each
// directory). Every downstream stage preserves this order, so the
// generated documents list endpoints in the order their files were
// discovered.
//
// # README Discovery
//
// FindReadme and ReadReadme locate and load the project README for the
// intent mining stage:
//
//	if path := scan.FindReadme(root); path != "" {
//	    text, ok := scan.ReadReadme(path)
//	    ...
//	}
//
// README content is truncated at the limit reported by
// contract.MaxReadmeBytes.
package scan
