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
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	specgentest "github.com/kraklabs/specgen/internal/testing"
)

func TestScanner_SpringConventions(t *testing.T) {
	root := specgentest.ScaffoldSpringProject(t)
	scanner := NewScanner(nil)

	result, err := scanner.Scan(root)
	require.NoError(t, err)

	endpoints := result.CandidatesFor(KindEndpoints)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "src/main/java/com/example/demo/controller/UserController.java", endpoints[0].Path)
	assert.Equal(t, "java", endpoints[0].Language)

	models := result.CandidatesFor(KindModels)
	require.Len(t, models, 1)
	assert.Equal(t, "src/main/java/com/example/demo/model/User.java", models[0].Path)

	views := result.CandidatesFor(KindViews)
	require.Len(t, views, 1)
	assert.Equal(t, "frontend/src/views/Dashboard.vue", views[0].Path)
	assert.Equal(t, "vue", views[0].Language)

	services := result.CandidatesFor(KindServices)
	require.Len(t, services, 1)
	assert.Equal(t, "src/main/java/com/example/demo/service/UserService.java", services[0].Path)

	assert.Equal(t, []string{"src/main/java/com/example/demo/controller"}, result.MatchedDirs[KindEndpoints])
	assert.Equal(t, 4, result.FileCount)
}

func TestScanner_ExpressConventions(t *testing.T) {
	root := specgentest.ScaffoldExpressProject(t)
	scanner := NewScanner(nil)

	result, err := scanner.Scan(root)
	require.NoError(t, err)

	endpoints := result.CandidatesFor(KindEndpoints)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "src/api/orders.routes.js", endpoints[0].Path)
	assert.Equal(t, "javascript", endpoints[0].Language)

	models := result.CandidatesFor(KindModels)
	require.Len(t, models, 1)
	assert.Equal(t, "src/models/order.model.js", models[0].Path)

	views := result.CandidatesFor(KindViews)
	require.Len(t, views, 1)
	assert.Equal(t, "src/pages/Orders.jsx", views[0].Path)

	services := result.CandidatesFor(KindServices)
	require.Len(t, services, 1)
	assert.Equal(t, "src/services/order.service.js", services[0].Path)
}

func TestScanner_ViewsFallBackToComponents(t *testing.T) {
	root := t.TempDir()
	specgentest.WriteFile(t, root, "src/components/Button.jsx", "export const Button = () => null;")
	specgentest.WriteFile(t, root, "src/components/Modal.tsx", "export const Modal = () => null;")

	scanner := NewScanner(nil)
	result, err := scanner.Scan(root)
	require.NoError(t, err)

	views := result.CandidatesFor(KindViews)
	require.Len(t, views, 2)
	assert.Equal(t, "src/components/Button.jsx", views[0].Path)
	assert.Equal(t, "src/components/Modal.tsx", views[1].Path)
	assert.Equal(t, []string{"src/components"}, result.MatchedDirs[KindViews])
}

func TestScanner_ViewsPreferViewsDirOverComponents(t *testing.T) {
	root := t.TempDir()
	specgentest.WriteFile(t, root, "src/views/Home.vue", "<template><div/></template>")
	specgentest.WriteFile(t, root, "src/components/Button.jsx", "export const Button = () => null;")

	scanner := NewScanner(nil)
	result, err := scanner.Scan(root)
	require.NoError(t, err)

	// Primary convention matched, so the fallback never runs
	views := result.CandidatesFor(KindViews)
	require.Len(t, views, 1)
	assert.Equal(t, "src/views/Home.vue", views[0].Path)
}

func TestScanner_SuffixFallback(t *testing.T) {
	root := t.TempDir()
	specgentest.WriteFile(t, root, "src/web/OrderController.java", "public class OrderController {}")
	specgentest.WriteFile(t, root, "src/web/order.service.ts", "export class OrderService {}")
	specgentest.WriteFile(t, root, "src/web/order.model.ts", "export interface Order {}")
	// Outside the conventional source roots, must not be picked up
	specgentest.WriteFile(t, root, "scripts/FakeController.java", "public class FakeController {}")

	scanner := NewScanner(nil)
	result, err := scanner.Scan(root)
	require.NoError(t, err)

	endpoints := result.CandidatesFor(KindEndpoints)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "src/web/OrderController.java", endpoints[0].Path)
	assert.Empty(t, result.MatchedDirs[KindEndpoints], "suffix fallback records no matched dirs")

	services := result.CandidatesFor(KindServices)
	require.Len(t, services, 1)
	assert.Equal(t, "src/web/order.service.ts", services[0].Path)

	models := result.CandidatesFor(KindModels)
	require.Len(t, models, 1)
	assert.Equal(t, "src/web/order.model.ts", models[0].Path)
}

func TestScanner_SuffixFallbackWholeTreeWithoutSourceRoots(t *testing.T) {
	root := t.TempDir()
	specgentest.WriteFile(t, root, "handlers/PaymentController.java", "public class PaymentController {}")

	scanner := NewScanner(nil)
	result, err := scanner.Scan(root)
	require.NoError(t, err)

	endpoints := result.CandidatesFor(KindEndpoints)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "handlers/PaymentController.java", endpoints[0].Path)
}

func TestScanner_EmptyProjectIsValid(t *testing.T) {
	root := t.TempDir()

	scanner := NewScanner(slog.Default())
	result, err := scanner.Scan(root)
	require.NoError(t, err)

	for _, kind := range Kinds {
		assert.Empty(t, result.CandidatesFor(kind), "kind %s should be empty", kind)
	}
	assert.Equal(t, 0, result.FileCount)
}

func TestScanner_ExcludesTestFiles(t *testing.T) {
	root := t.TempDir()
	specgentest.WriteFile(t, root, "src/api/orders.routes.js", "module.exports = router;")
	specgentest.WriteFile(t, root, "src/api/orders.test.js", "test('noop', () => {});")
	specgentest.WriteFile(t, root, "src/api/orders.spec.ts", "describe('noop', () => {});")
	specgentest.WriteFile(t, root, "src/api/routes_test.py", "def test_noop(): pass")

	scanner := NewScanner(nil)
	result, err := scanner.Scan(root)
	require.NoError(t, err)

	endpoints := result.CandidatesFor(KindEndpoints)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "src/api/orders.routes.js", endpoints[0].Path)
}

func TestScanner_SkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	specgentest.WriteFile(t, root, "src/api/users.routes.js", "module.exports = router;")
	specgentest.WriteFile(t, root, "node_modules/express/lib/router.js", "module.exports = {};")
	specgentest.WriteFile(t, root, ".git/hooks/pre-commit.sample", "#!/bin/sh")

	scanner := NewScanner(nil)
	result, err := scanner.Scan(root)
	require.NoError(t, err)

	endpoints := result.CandidatesFor(KindEndpoints)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "src/api/users.routes.js", endpoints[0].Path)
	assert.Positive(t, result.SkipReasons["ignored_dir"])
}

func TestScanner_SkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	specgentest.WriteFile(t, root, "src/controllers/small.routes.js", "ok")
	specgentest.WriteFile(t, root, "src/controllers/big.routes.js",
		"// padding padding padding padding padding padding padding padding")

	scanner := &Scanner{logger: slog.Default(), maxFileSize: 16}
	result, err := scanner.Scan(root)
	require.NoError(t, err)

	endpoints := result.CandidatesFor(KindEndpoints)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "src/controllers/small.routes.js", endpoints[0].Path)
	assert.Equal(t, 1, result.SkipReasons["too_large"])
}

func TestScanner_RootErrors(t *testing.T) {
	scanner := NewScanner(nil)

	_, err := scanner.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)

	file := specgentest.WriteFile(t, t.TempDir(), "plain.txt", "not a directory")
	_, err = scanner.Scan(file)
	assert.Error(t, err)
}

func TestScanner_OrderIsTraversalOrder(t *testing.T) {
	root := t.TempDir()
	specgentest.WriteFile(t, root, "src/controllers/CherryController.java", "class CherryController {}")
	specgentest.WriteFile(t, root, "src/controllers/AppleController.java", "class AppleController {}")
	specgentest.WriteFile(t, root, "src/controllers/BananaController.java", "class BananaController {}")

	scanner := NewScanner(nil)
	result, err := scanner.Scan(root)
	require.NoError(t, err)

	endpoints := result.CandidatesFor(KindEndpoints)
	require.Len(t, endpoints, 3)
	// WalkDir yields entries lexically within a directory
	assert.Equal(t, "src/controllers/AppleController.java", endpoints[0].Path)
	assert.Equal(t, "src/controllers/BananaController.java", endpoints[1].Path)
	assert.Equal(t, "src/controllers/CherryController.java", endpoints[2].Path)
}

func TestMatchDirs(t *testing.T) {
	tree := &walkedTree{
		dirs: []string{
			"src",
			"src/api",
			"src/internal",
			"src/API", // Matched case-insensitively, distinct cleaned path
			"src/api", // Duplicate entry, must be dropped
			"backend/controllers",
		},
	}

	got := matchDirs(tree, []string{"controller", "controllers", "api"})
	assert.Equal(t, []string{"src/api", "src/API", "backend/controllers"}, got)

	assert.Nil(t, matchDirs(tree, nil))
	assert.Nil(t, matchDirs(tree, []string{"models"}))
}

func TestExistingSourceRoots(t *testing.T) {
	tree := &walkedTree{
		dirs: []string{"docs", "frontend", "frontend/src", "src", "src/api"},
	}
	// Reported in the fixed sourceRoots order, not tree order
	assert.Equal(t, []string{"src", "frontend"}, existingSourceRoots(tree))

	empty := &walkedTree{dirs: []string{"docs", "misc"}}
	assert.Empty(t, existingSourceRoots(empty))
}

func TestAcceptFile(t *testing.T) {
	s := NewScanner(nil)

	tests := []struct {
		name string
		kind Kind
		rel  string
		want bool
	}{
		{"java controller", KindEndpoints, "src/api/UserController.java", true},
		{"python routes", KindEndpoints, "src/api/routes.py", true},
		{"vue not an endpoint", KindEndpoints, "src/api/Users.vue", false},
		{"markdown rejected", KindEndpoints, "src/api/README.md", false},
		{"jest test file", KindEndpoints, "src/api/users.test.js", false},
		{"spec file", KindEndpoints, "src/api/users.spec.ts", false},
		{"go-style test suffix", KindEndpoints, "src/api/routes_test.py", false},
		{"vue view", KindViews, "src/views/Home.vue", true},
		{"tsx view", KindViews, "src/views/Home.tsx", true},
		{"java not a view", KindViews, "src/views/Home.java", false},
		{"kotlin model", KindModels, "src/model/User.kt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.acceptFile(tt.kind, tt.rel); got != tt.want {
				t.Errorf("acceptFile(%q, %q) = %v, want %v", tt.kind, tt.rel, got, tt.want)
			}
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/Main.java", "java"},
		{"src/Main.kt", "java"},
		{"src/app.py", "python"},
		{"src/index.js", "javascript"},
		{"src/App.jsx", "javascript"},
		{"src/index.ts", "typescript"},
		{"src/App.tsx", "typescript"},
		{"src/Home.vue", "vue"},
		{"README.md", ""},
		{"Makefile", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectLanguage(tt.path); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
