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

// Package backend opens the catalog store and the asset bucket selected by the
// environment.
package backend

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/catalog/postgres"
	"github.com/walteh/catalogrc/pkg/catalog/postgrest"
	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/project"
	"github.com/walteh/catalogrc/pkg/storage"
	"gitlab.com/tozd/go/errors"

	_ "github.com/walteh/catalogrc/pkg/storage/local"
	_ "github.com/walteh/catalogrc/pkg/storage/supabase"
)

// 🔌 Backend holds the remote collaborators of a run
type Backend struct {
	Store  catalog.Store
	Bucket storage.Bucket

	closers []func()
}

// Close releases connections held by the backend
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

// 🧪 Memory returns a backend that keeps everything in memory
func Memory() *Backend {
	return &Backend{
		Store:  catalog.NewMemory(),
		Bucket: storage.NewMemory(""),
	}
}

// 🏭 Open validates env and connects to the configured catalog and bucket
func Open(ctx context.Context, env config.Environment) (*Backend, error) {
	logger := zerolog.Ctx(ctx)

	if err := env.Validate(); err != nil {
		return nil, err
	}

	b := &Backend{}

	store, err := openStore(ctx, env, b)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.Store = store

	bucket, err := storage.Open(ctx, env.StorageBackend, env.StorageSettings())
	if err != nil {
		b.Close()
		return nil, errors.Errorf("opening %s storage: %w", env.StorageBackend, err)
	}
	b.Bucket = bucket

	logger.Debug().
		Str("catalog", env.CatalogBackend).
		Str("storage", env.StorageBackend).
		Str("bucket", env.StorageBucket).
		Msg("backend ready")

	return b, nil
}

func openStore(ctx context.Context, env config.Environment, b *Backend) (catalog.Store, error) {
	switch env.CatalogBackend {
	case "postgrest":
		p, err := project.New(env.SupabaseURL, env.SupabaseKey)
		if err != nil {
			return nil, fault.Configuration(errors.Errorf("creating catalog client: %w", err))
		}
		return postgrest.New(p), nil
	case "postgres":
		pool, err := postgres.Open(ctx, env.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		return postgres.New(pool), nil
	case "memory":
		return catalog.NewMemory(), nil
	default:
		return nil, fault.Configurationf("unknown catalog backend %q", env.CatalogBackend)
	}
}
