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

package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/specgen/pkg/classify"
	"github.com/kraklabs/specgen/pkg/extract"
	"github.com/kraklabs/specgen/pkg/pipeline"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		RootPath: "/tmp/demo",
		Endpoints: []extract.Endpoint{
			{HTTPMethod: "GET", Path: "/api/users", OwningUnitName: "UserController"},
			{HTTPMethod: "POST", Path: "/api/users", OwningUnitName: "UserController", RequiresAuth: true},
			{HTTPMethod: "GET", Path: "/api/orders", OwningUnitName: "OrderController"},
		},
		Models: []extract.DataModelRecord{
			{Name: "User", FieldCount: 2, Fields: []extract.Field{
				{Name: "id", Type: "Long", Category: extract.CategoryLong},
				{Name: "name", Type: "String", Category: extract.CategoryString, Annotations: []string{"@NotNull"}},
			}},
			{Name: "Order", FieldCount: 4},
		},
		Views:    []extract.ViewRecord{{Name: "Dashboard", FileName: "Dashboard.vue"}},
		Services: []extract.ServiceRecord{{Name: "UserService"}},
		Units: []pipeline.UnitSummary{
			{Name: "UserController", Methods: []string{"GET", "POST"}, Paths: []string{"/api/users", "/api/users"}, EndpointCount: 2},
			{Name: "OrderController", Methods: []string{"GET"}, Paths: []string{"/api/orders"}, EndpointCount: 1},
		},
		ActorMappings: map[string]classify.ActorMapping{
			"UserController": {
				OwningUnitName: "UserController",
				ActorRole:      "user",
				GoalPhrase:     "create and track user records",
				BenefitPhrase:  "work with user data",
				OutcomeFocus:   classify.FocusOperational,
			},
			"OrderController": {
				OwningUnitName: "OrderController",
				ActorRole:      "customer",
				GoalPhrase:     "view and retrieve order records",
				BenefitPhrase:  "work with order data",
				OutcomeFocus:   classify.FocusStrategic,
			},
		},
	}
}

func TestRenderSpec_Sections(t *testing.T) {
	r := NewRenderer("Demo", "1.2.3", nil)
	doc := string(r.RenderSpec(sampleResult()))

	assert.Contains(t, doc, "# Demo Specification")
	assert.Contains(t, doc, "## Actors")
	assert.Contains(t, doc, "| user | user |")
	assert.Contains(t, doc, "## User Stories")
	assert.Contains(t, doc, "- As a customer, I want to view and retrieve order records, so that I can work with order data.")
	assert.Contains(t, doc, "### UserController")
	assert.Contains(t, doc, "| POST | `/api/users` | required |")
	assert.Contains(t, doc, "### Summary")
	assert.Contains(t, doc, "- GET: 2")
}

func TestRenderSpec_StoryCaps(t *testing.T) {
	result := &pipeline.Result{ActorMappings: map[string]classify.ActorMapping{}}
	for i := 0; i < 9; i++ {
		name := fmt.Sprintf("Strat%dController", i)
		result.Units = append(result.Units, pipeline.UnitSummary{Name: name, EndpointCount: 1})
		result.ActorMappings[name] = classify.ActorMapping{
			OwningUnitName: name,
			ActorRole:      "user",
			GoalPhrase:     fmt.Sprintf("goal %d", i),
			BenefitPhrase:  "benefit",
			OutcomeFocus:   classify.FocusStrategic,
		}
	}
	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("Ops%dController", i)
		result.Units = append(result.Units, pipeline.UnitSummary{Name: name, EndpointCount: 1})
		result.ActorMappings[name] = classify.ActorMapping{
			OwningUnitName: name,
			ActorRole:      "user",
			GoalPhrase:     fmt.Sprintf("ops goal %d", i),
			BenefitPhrase:  "benefit",
			OutcomeFocus:   classify.FocusOperational,
		}
	}

	r := NewRenderer("Demo", "", nil)
	doc := string(r.RenderSpec(result))

	assert.Equal(t, 6, strings.Count(doc, "I want to goal "))
	assert.Contains(t, doc, "I want to goal 5")
	assert.NotContains(t, doc, "I want to goal 6", "strategic stories cut at six, discovery order")
	assert.Contains(t, doc, "_3 additional strategic stories omitted._")

	assert.Contains(t, doc, "I want to ops goal 1")
	assert.NotContains(t, doc, "I want to ops goal 2")
	assert.Contains(t, doc, "_2 additional operational stories omitted._")
}

func TestRenderDataModel_PartialRecordCountOnly(t *testing.T) {
	r := NewRenderer("Demo", "", nil)
	doc := string(r.RenderDataModel(sampleResult()))

	assert.Contains(t, doc, "## User")
	assert.Contains(t, doc, "| name | `String` | string | @NotNull |")
	assert.Contains(t, doc, "## Order")
	assert.Contains(t, doc, "4 fields (declarations counted, details unavailable).")
	assert.Contains(t, doc, "- Dashboard (`Dashboard.vue`)")
}

func TestRenderOpenAPI(t *testing.T) {
	r := NewRenderer("Demo", "v1.2.3", nil)
	raw, err := r.RenderOpenAPI(sampleResult())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "3.0.3", doc["openapi"])
	info := doc["info"].(map[string]any)
	assert.Equal(t, "Demo API", info["title"])
	assert.Equal(t, "1.2.3", info["version"])

	paths := doc["paths"].(map[string]any)
	users := paths["/api/users"].(map[string]any)
	require.Contains(t, users, "get")
	require.Contains(t, users, "post")

	post := users["post"].(map[string]any)
	assert.Contains(t, post, "security", "auth-flagged endpoint carries a security hint")
	get := users["get"].(map[string]any)
	assert.NotContains(t, get, "security")

	components := doc["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)
	user := schemas["User"].(map[string]any)
	props := user["properties"].(map[string]any)
	id := props["id"].(map[string]any)
	assert.Equal(t, "integer", id["type"])
	assert.Equal(t, "int64", id["format"])

	order := schemas["Order"].(map[string]any)
	assert.Equal(t, "object", order["type"])
	assert.NotContains(t, order, "properties", "partial records have no property details")

	assert.Contains(t, components, "securitySchemes")
}

func TestRenderPlan_Phases(t *testing.T) {
	r := NewRenderer("Demo", "", nil)
	doc := string(r.RenderPlan(sampleResult()))

	assert.Contains(t, doc, "## Phase 1: Data Layer")
	assert.Contains(t, doc, "- [ ] Implement `User` model (2 fields)")
	assert.Contains(t, doc, "## Phase 2: API Layer")
	assert.Contains(t, doc, "- [ ] Implement `UserController` (2 endpoints: GET, POST)")
	assert.Contains(t, doc, "authentication middleware")
	assert.Contains(t, doc, "## Phase 3: Views")
	assert.Contains(t, doc, "## Phase 4: Services")
}

func TestRenderPlan_Empty(t *testing.T) {
	r := NewRenderer("Demo", "", nil)
	doc := string(r.RenderPlan(&pipeline.Result{}))
	assert.Contains(t, doc, "nothing to plan")
}

func TestParseDocList(t *testing.T) {
	docs, err := ParseDocList("all")
	require.NoError(t, err)
	assert.Equal(t, AllDocs, docs)

	docs, err = ParseDocList("")
	require.NoError(t, err)
	assert.Equal(t, AllDocs, docs)

	docs, err = ParseDocList("spec, openapi")
	require.NoError(t, err)
	assert.Equal(t, []string{"spec", "openapi"}, docs)

	_, err = ParseDocList("spec,bogus")
	assert.Error(t, err)
}

func TestRenderAll_SelectionAndOrder(t *testing.T) {
	r := NewRenderer("Demo", "1.0.0", nil)

	docs, err := r.RenderAll(sampleResult(), []string{"openapi", "spec"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	// Render order is fixed regardless of selection order
	assert.Equal(t, "spec", docs[0].Name)
	assert.Equal(t, "specification.md", docs[0].FileName)
	assert.Equal(t, "openapi", docs[1].Name)
}

func TestRenderAll_SpecNeedsMappings(t *testing.T) {
	r := NewRenderer("Demo", "1.0.0", nil)
	result := sampleResult()
	result.ActorMappings = nil

	_, err := r.RenderAll(result, []string{"spec"})
	assert.Error(t, err)

	// Other documents render fine without classification
	docs, err := r.RenderAll(result, []string{"openapi", "plan"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestManifest_RoundTrip(t *testing.T) {
	result := sampleResult()
	docs := []Document{{Name: "spec", FileName: "specification.md", Content: []byte("# hi\n")}}

	m := NewManifest("1.2.3", result, docs)
	assert.NotEmpty(t, m.RunID)
	assert.Equal(t, 3, m.Counts["endpoints"])
	assert.Equal(t, 2, m.Counts["units"])
	require.Len(t, m.Documents, 1)
	assert.Equal(t, 4, m.Documents[0].Bytes)

	raw, err := m.Render()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ManifestFileName)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m.RunID, loaded.RunID)
	assert.Equal(t, m.Counts, loaded.Counts)
}
