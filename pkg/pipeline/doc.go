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

// Package pipeline orchestrates the generation run: scan → extract → mine
// → classify, producing the normalized Result the renderers consume.
//
// The run is single-threaded, synchronous, and batch-oriented. Records are
// appended in filesystem-traversal order and that order is preserved
// through to rendering; owning-unit grouping is first-seen order. Fatal
// errors (a missing project description when classification was requested)
// abort the run before any extraction; single unreadable files are counted
// in SkipReasons and never fatal.
package pipeline
