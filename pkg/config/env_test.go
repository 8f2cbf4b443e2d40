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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/catalogrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestEnvironmentFrom(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Environment
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Environment{
				CatalogBackend: DefaultCatalogBackend,
				StorageBackend: DefaultStorageBackend,
				StorageBucket:  DefaultBucket,
			},
		},
		{
			name: "next_public_aliases",
			env: map[string]string{
				"NEXT_PUBLIC_SUPABASE_URL":      "https://x.supabase.co",
				"NEXT_PUBLIC_SUPABASE_ANON_KEY": "anon",
			},
			want: Environment{
				CatalogBackend: DefaultCatalogBackend,
				SupabaseURL:    "https://x.supabase.co",
				SupabaseKey:    "anon",
				StorageBackend: DefaultStorageBackend,
				StorageBucket:  DefaultBucket,
			},
		},
		{
			name: "service_role_key_wins_over_anon",
			env: map[string]string{
				"SUPABASE_URL":                  "https://x.supabase.co",
				"SUPABASE_SERVICE_ROLE_KEY":     "service",
				"NEXT_PUBLIC_SUPABASE_ANON_KEY": "anon",
				"CATALOG_BACKEND":               "Postgres",
				"DATABASE_URL":                  "postgres://localhost/catalog",
				"STORAGE_BACKEND":               "local",
				"STORAGE_BUCKET":                "mockups",
				"STORAGE_LOCAL_DIR":             "/srv/assets",
				"STORAGE_PUBLIC_BASE_URL":       "https://cdn.example.com",
			},
			want: Environment{
				CatalogBackend:       "postgres",
				SupabaseURL:          "https://x.supabase.co",
				SupabaseKey:          "service",
				DatabaseURL:          "postgres://localhost/catalog",
				StorageBackend:       "local",
				StorageBucket:        "mockups",
				StorageLocalDir:      "/srv/assets",
				StoragePublicBaseURL: "https://cdn.example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvironmentFrom(lookupFrom(tt.env)))
		})
	}
}

func TestEnvironmentValidate(t *testing.T) {
	tests := []struct {
		name        string
		env         Environment
		errContains string
	}{
		{name: "memory_everything", env: Environment{CatalogBackend: "memory", StorageBackend: "memory"}},
		{name: "supabase_complete", env: Environment{CatalogBackend: "postgrest", StorageBackend: "supabase", SupabaseURL: "u", SupabaseKey: "k"}},
		{name: "postgrest_missing_key", env: Environment{CatalogBackend: "postgrest", StorageBackend: "memory", SupabaseURL: "u"}, errContains: "SUPABASE_KEY"},
		{name: "postgres_missing_url", env: Environment{CatalogBackend: "postgres", StorageBackend: "memory"}, errContains: "DATABASE_URL"},
		{name: "unknown_catalog", env: Environment{CatalogBackend: "mysql", StorageBackend: "memory"}, errContains: "unknown catalog backend"},
		{name: "local_missing_dir", env: Environment{CatalogBackend: "memory", StorageBackend: "local"}, errContains: "STORAGE_LOCAL_DIR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.env.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.True(t, errors.Is(err, fault.ErrConfiguration))
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(local, []byte("CATALOGRC_TEST_BUCKET=from-local\n"), 0644))
	require.NoError(t, os.WriteFile(shared, []byte("CATALOGRC_TEST_BUCKET=from-shared\nCATALOGRC_TEST_ONLY_SHARED=yes\n"), 0644))

	t.Setenv("CATALOGRC_TEST_BUCKET", "")
	t.Setenv("CATALOGRC_TEST_ONLY_SHARED", "")
	os.Unsetenv("CATALOGRC_TEST_BUCKET")
	os.Unsetenv("CATALOGRC_TEST_ONLY_SHARED")

	err := LoadEnvFiles(testContext(t), local, shared, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "from-local", os.Getenv("CATALOGRC_TEST_BUCKET"), "earlier files win")
	assert.Equal(t, "yes", os.Getenv("CATALOGRC_TEST_ONLY_SHARED"))
}

func TestStorageSettings(t *testing.T) {
	env := Environment{SupabaseURL: "u", SupabaseKey: "k", StorageBucket: "b", StorageLocalDir: "/d", StoragePublicBaseURL: "https://cdn"}
	s := env.StorageSettings()
	assert.Equal(t, "u", s.URL)
	assert.Equal(t, "k", s.Key)
	assert.Equal(t, "b", s.Bucket)
	assert.Equal(t, "/d", s.LocalDir)
	assert.Equal(t, "https://cdn", s.PublicBaseURL)
}
