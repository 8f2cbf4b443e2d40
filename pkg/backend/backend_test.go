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

package backend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/catalog/postgrest"
	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/storage"
	"github.com/walteh/catalogrc/pkg/storage/local"
	"github.com/walteh/catalogrc/pkg/storage/supabase"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		env        config.Environment
		wantStore  any
		wantBucket any
		wantKind   string
	}{
		{
			name:       "memory",
			env:        config.Environment{CatalogBackend: "memory", StorageBackend: "memory"},
			wantStore:  &catalog.Memory{},
			wantBucket: &storage.Memory{},
		},
		{
			name: "supabase",
			env: config.Environment{
				CatalogBackend: "postgrest",
				StorageBackend: "supabase",
				SupabaseURL:    "https://example.supabase.co",
				SupabaseKey:    "service-key",
				StorageBucket:  "product-images",
			},
			wantStore:  &postgrest.Store{},
			wantBucket: &supabase.Bucket{},
		},
		{
			name:       "local_storage",
			env:        config.Environment{CatalogBackend: "memory", StorageBackend: "local", StorageLocalDir: dir},
			wantStore:  &catalog.Memory{},
			wantBucket: &local.Bucket{},
		},
		{
			name:     "missing_credentials",
			env:      config.Environment{CatalogBackend: "postgrest", StorageBackend: "memory"},
			wantKind: "configuration",
		},
		{
			name:     "missing_database_url",
			env:      config.Environment{CatalogBackend: "postgres", StorageBackend: "memory"},
			wantKind: "configuration",
		},
		{
			name:     "unknown_storage",
			env:      config.Environment{CatalogBackend: "memory", StorageBackend: "s3"},
			wantKind: "configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(testContext(t), tt.env)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, fault.Kind(err))
				return
			}
			require.NoError(t, err)
			defer b.Close()
			assert.IsType(t, tt.wantStore, b.Store)
			assert.IsType(t, tt.wantBucket, b.Bucket)
		})
	}
}

func TestMemory(t *testing.T) {
	b := Memory()
	assert.IsType(t, &catalog.Memory{}, b.Store)
	assert.IsType(t, &storage.Memory{}, b.Bucket)
	b.Close()
}
