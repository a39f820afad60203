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

package scan

import (
	"os"
	"path/filepath"

	"github.com/kraklabs/specgen/internal/contract"
)

// readmeNames are tried in order; the first readable one wins.
var readmeNames = []string{"README.md", "readme.md", "README.txt", "README"}

// FindReadme returns the path of the first conventional README in root, or ""
// when none exists. A missing README is not an error anywhere in specgen.
func FindReadme(root string) string {
	for _, name := range readmeNames {
		candidate := filepath.Join(root, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return candidate
	}
	return ""
}

// ReadReadme reads a README file, truncated to the contract limit. The second
// return value reports whether a readable README was found at all.
func ReadReadme(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	limit := contract.MaxReadmeBytes()
	if len(data) > limit {
		data = data[:limit]
	}
	return string(data), true
}
