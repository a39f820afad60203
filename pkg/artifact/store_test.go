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

package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/specgen/pkg/pipeline"
	"github.com/kraklabs/specgen/pkg/render"
)

func TestFSStore_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated")
	store := NewFSStore(dir, nil)

	docs := []render.Document{
		{Name: "spec", FileName: "specification.md", Content: []byte("# Spec\n")},
		{Name: "openapi", FileName: "openapi.json", Content: []byte("{}\n")},
	}
	manifest := render.NewManifest("1.0.0", &pipeline.Result{RootPath: "/x"}, docs)

	written, err := store.Write(docs, manifest)
	require.NoError(t, err)
	require.Len(t, written, 3)

	data, err := os.ReadFile(filepath.Join(dir, "specification.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Spec\n", string(data))

	loaded, err := render.LoadManifest(store.ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, manifest.RunID, loaded.RunID)
	assert.Len(t, loaded.Documents, 2)
}

// A store that never writes leaves no trace: the output dir is created on
// write, not on construction.
func TestFSStore_NoDirUntilWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated")
	NewFSStore(dir, nil)

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
