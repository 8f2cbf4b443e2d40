// Copyright 2025 walteh LLC
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


package main

import (
	"bytes"
	"encoding/json"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBuildInfo(t *testing.T) {
	tests := []struct {
		name  string
		bi    *debug.BuildInfo
		check func(t *testing.T, info BuildInfo)
	}{
		{
			name: "no_build_info",
			check: func(t *testing.T, info BuildInfo) {
				assert.Equal(t, "dev", info.Version)
				assert.Empty(t, info.Clients)
				assert.Contains(t, info.CatalogBackends, "postgrest")
				assert.Contains(t, info.StorageBackends, "memory")
			},
		},
		{
			name: "devel_main_with_vcs",
			bi: &debug.BuildInfo{
				Main: debug.Module{Path: "github.com/walteh/catalogrc", Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			check: func(t *testing.T, info BuildInfo) {
				assert.Equal(t, "dev", info.Version)
				assert.Equal(t, "abc123", info.Revision)
				assert.Equal(t, "2025-01-02T03:04:05Z", info.Time)
				assert.True(t, info.Modified)
			},
		},
		{
			name: "tracked_clients_only",
			bi: &debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.0"},
				Deps: []*debug.Module{
					{Path: "github.com/jackc/pgx/v5", Version: "v5.8.0"},
					{Path: "github.com/spf13/cobra", Version: "v1.8.1"},
					{
						Path:    "github.com/supabase-community/storage-go",
						Version: "v0.7.0",
						Replace: &debug.Module{Path: "github.com/supabase-community/storage-go", Version: "v0.7.1"},
					},
				},
			},
			check: func(t *testing.T, info BuildInfo) {
				assert.Equal(t, "v1.2.0", info.Version)
				assert.Equal(t, map[string]string{
					"github.com/jackc/pgx/v5":                  "v5.8.0",
					"github.com/supabase-community/storage-go": "v0.7.1",
				}, info.Clients)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, readBuildInfo(tt.bi))
		})
	}
}

func TestWriteBuildInfo(t *testing.T) {
	var buf bytes.Buffer
	writeBuildInfo(&buf, BuildInfo{
		Version:         "v1.2.0",
		GoVersion:       "go1.24.0",
		Platform:        "linux/amd64",
		CatalogBackends: []string{"memory", "postgrest"},
		StorageBackends: []string{"local", "supabase"},
		Clients:         map[string]string{"github.com/jackc/pgx/v5": "v5.8.0"},
	})

	out := buf.String()
	assert.Contains(t, out, "catalogrc v1.2.0")
	assert.Contains(t, out, "Revision:  unknown")
	assert.NotContains(t, out, "Built:")
	assert.Contains(t, out, "Catalog:   memory, postgrest")
	assert.Contains(t, out, "Storage:   local, supabase")
	assert.Contains(t, out, "Client:    github.com/jackc/pgx/v5 v5.8.0")
}

func TestVersionCommandJSON(t *testing.T) {
	h := newHarness(t, productsJSON, nil)
	require.Equal(t, 0, h.run("version", "--json"), h.console.String())

	var info BuildInfo
	require.NoError(t, json.Unmarshal(h.console.Bytes(), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.StorageBackends, "supabase")
}
