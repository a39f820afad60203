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

package extract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/specgen/pkg/scan"
)

func TestLoad_UnreadableFile(t *testing.T) {
	e := newWindowExtractor(t)

	_, err := e.Load(scan.FileInfo{
		Path:     "missing.java",
		FullPath: filepath.Join(t.TempDir(), "missing.java"),
		Language: "java",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.java")
}

func TestExtractView(t *testing.T) {
	e := newWindowExtractor(t)

	view := e.ExtractView(scan.FileInfo{Path: "frontend/src/views/Dashboard.vue"})
	assert.Equal(t, ViewRecord{Name: "Dashboard", FileName: "Dashboard.vue"}, view)

	view = e.ExtractView(scan.FileInfo{Path: "src/pages/Orders.jsx"})
	assert.Equal(t, ViewRecord{Name: "Orders", FileName: "Orders.jsx"}, view)
}

func TestExtractService(t *testing.T) {
	e := newWindowExtractor(t)

	svc := e.ExtractService(scan.FileInfo{Path: "src/main/java/com/example/demo/service/UserService.java"})
	assert.Equal(t, ServiceRecord{Name: "UserService"}, svc)

	svc = e.ExtractService(scan.FileInfo{Path: "src/services/order.service.js"})
	assert.Equal(t, ServiceRecord{Name: "order.service"}, svc)
}

func TestUnitNameFromFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/controller/UserController.java", "UserController"},
		{"src/api/orders.routes.js", "orders"},
		{"src/api/orders.router.ts", "orders"},
		{"src/api/tasks.controller.ts", "tasks"},
		{"src/api/app.py", "app"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			file := &SourceFile{Path: tt.path}
			if got := unitNameFromFile(file); got != tt.want {
				t.Errorf("unitNameFromFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestModelNameFromFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/model/User.java", "User"},
		{"src/models/order.model.js", "order"},
		{"src/models/order.entity.ts", "order"},
		{"src/models/patient.py", "patient"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			file := &SourceFile{Path: tt.path}
			if got := modelNameFromFile(file); got != tt.want {
				t.Errorf("modelNameFromFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	lines := splitLines([]byte("a\r\nb\nc"))
	assert.Equal(t, []string{"a", "b", "c"}, lines)

	assert.Equal(t, []string{""}, splitLines(nil))
}
