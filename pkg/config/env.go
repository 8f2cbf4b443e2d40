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
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/storage"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultCatalogBackend = "postgrest"
	DefaultStorageBackend = "supabase"
	DefaultBucket         = "product-images"
)

// CatalogBackends are the accepted CATALOG_BACKEND values
var CatalogBackends = []string{"memory", "postgres", "postgrest"}

// DefaultEnvFiles are loaded when no --env-file is given. Earlier files win.
var DefaultEnvFiles = []string{".env.local", ".env"}

// 🌍 Environment holds credentials and endpoints read from the process environment
type Environment struct {
	CatalogBackend       string
	SupabaseURL          string
	SupabaseKey          string
	DatabaseURL          string
	StorageBackend       string
	StorageBucket        string
	StorageLocalDir      string
	StoragePublicBaseURL string
}

// 📥 LoadEnvFiles loads KEY=VALUE files into the process environment.
// Variables already set are never overridden and missing files are skipped.
func LoadEnvFiles(ctx context.Context, files ...string) error {
	logger := zerolog.Ctx(ctx)
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				logger.Trace().Str("file", f).Msg("env file not present")
				continue
			}
			return fault.Configuration(errors.Errorf("checking env file %s: %w", f, err))
		}
		if err := godotenv.Load(f); err != nil {
			return fault.Configuration(errors.Errorf("loading env file %s: %w", f, err))
		}
		logger.Debug().Str("file", f).Msg("loaded env file")
	}
	return nil
}

func first(lookup func(string) (string, bool), keys ...string) string {
	for _, k := range keys {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// 🔎 EnvironmentFrom reads the environment through lookup (os.LookupEnv in production)
func EnvironmentFrom(lookup func(string) (string, bool)) Environment {
	return Environment{
		CatalogBackend:       strings.ToLower(orDefault(first(lookup, "CATALOG_BACKEND"), DefaultCatalogBackend)),
		SupabaseURL:          first(lookup, "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"),
		SupabaseKey:          first(lookup, "SUPABASE_KEY", "SUPABASE_SERVICE_ROLE_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"),
		DatabaseURL:          first(lookup, "DATABASE_URL"),
		StorageBackend:       strings.ToLower(orDefault(first(lookup, "STORAGE_BACKEND"), DefaultStorageBackend)),
		StorageBucket:        orDefault(first(lookup, "STORAGE_BUCKET"), DefaultBucket),
		StorageLocalDir:      first(lookup, "STORAGE_LOCAL_DIR"),
		StoragePublicBaseURL: first(lookup, "STORAGE_PUBLIC_BASE_URL"),
	}
}

// 🔍 Validate checks that the selected backends have what they need
func (e Environment) Validate() error {
	switch e.CatalogBackend {
	case "postgrest":
		if e.SupabaseURL == "" || e.SupabaseKey == "" {
			return fault.Configurationf("catalog backend postgrest needs SUPABASE_URL and SUPABASE_KEY")
		}
	case "postgres":
		if e.DatabaseURL == "" {
			return fault.Configurationf("catalog backend postgres needs DATABASE_URL")
		}
	case "memory":
	default:
		return fault.Configurationf("unknown catalog backend %q, options: %s", e.CatalogBackend, strings.Join(CatalogBackends, ", "))
	}

	switch e.StorageBackend {
	case "supabase":
		if e.SupabaseURL == "" || e.SupabaseKey == "" {
			return fault.Configurationf("storage backend supabase needs SUPABASE_URL and SUPABASE_KEY")
		}
	case "local":
		if e.StorageLocalDir == "" {
			return fault.Configurationf("storage backend local needs STORAGE_LOCAL_DIR")
		}
	}
	return nil
}

// ⚙️ StorageSettings returns the settings passed to the storage factory
func (e Environment) StorageSettings() storage.Settings {
	return storage.Settings{
		URL:           e.SupabaseURL,
		Key:           e.SupabaseKey,
		Bucket:        e.StorageBucket,
		LocalDir:      e.StorageLocalDir,
		PublicBaseURL: e.StoragePublicBaseURL,
	}
}
