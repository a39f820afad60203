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

// Package contract provides validation constants and utilities for specgen.
//
// This internal package contains input size limits and validation functions
// shared by the scanner, the context miner, and the CLI layer.
//
// # Input Size Limits
//
// Specgen enforces limits on the inputs it reads to keep a scan of an
// arbitrary repository bounded:
//
//	// Skip pathological source files (default 4 MiB)
//	limit := contract.MaxSourceFileBytes()
//
//	// Validate the project description before mining
//	result := contract.ValidateDescription(description)
//	if !result.OK {
//	    log.Printf("Validation failed: %s", result.Message)
//	}
//
// # Configuration via Environment
//
// Each limit can be adjusted via an environment variable:
//
//	export SPECGEN_MAX_SOURCE_FILE_BYTES=2097152  # 2 MiB
//	export SPECGEN_MAX_DESCRIPTION_BYTES=32768    # 32 KiB
//	export SPECGEN_MAX_README_BYTES=131072        # 128 KiB
//
// If a variable is not set or invalid, the corresponding default is used.
//
// # Constants
//
// The package exports these defaults:
//
//   - DefaultMaxSourceFileBytes: per-file scan limit (4 MiB)
//   - DefaultMaxDescriptionBytes: description limit (16 KiB)
//   - DefaultMaxReadmeBytes: README consumption limit (64 KiB)
package contract
