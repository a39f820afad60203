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

// Package testing provides test helpers for specgen tests.
//
// This package scaffolds realistic source trees under t.TempDir() so the
// scanner, extractor, and pipeline can be exercised against conventional
// project layouts without committing large fixtures.
//
// # Quick Start
//
// Use ScaffoldSpringProject to create a conventional Spring Boot tree:
//
//	func TestMyFeature(t *testing.T) {
//	    root := testing.ScaffoldSpringProject(t)
//
//	    // root now contains controller/model/service/views files
//	    result, err := scanner.Scan(root)
//	    require.NoError(t, err)
//	}
//
// # Building Custom Trees
//
// WriteFile creates one file with its parent directories:
//
//	root := t.TempDir()
//	testing.WriteFile(t, root, "src/controllers/CartController.java", src)
//	testing.WriteFile(t, root, "src/models/Cart.java", model)
//
// # Fixture Sources
//
// The package exports small, framework-faithful source snippets:
//   - SpringController: base path + three verb markers, one secured
//   - SpringModel: JPA entity with five field declarations
//   - SpringService: annotated service class
//   - VueView: single-file component
//   - ExpressRouter: router.get/post/delete registrations
//   - FlaskApp: decorated Flask routes
//
// Tree scaffolds combine them into full layouts:
//   - ScaffoldSpringProject: src/main/java conventions plus a Vue frontend
//   - ScaffoldExpressProject: src/api + src/models + src/pages conventions
package testing
