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

package opts

import (
	"context"
	"os"

	"github.com/walteh/catalogrc/pkg/backend"
	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/log"
	"github.com/walteh/catalogrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// RootOpts carries the persistent flags and the collaborators shared by commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	EnvFiles   []string

	// Lookup reads environment variables, os.LookupEnv when nil
	Lookup func(string) (string, bool)
	// OpenBackend connects to the catalog and bucket, backend.Open when nil
	OpenBackend func(ctx context.Context, env config.Environment) (*backend.Backend, error)
}

// LoadConfig loads the product configuration file
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Environment loads the env files and reads the backend settings
func (o *RootOpts) Environment(ctx context.Context) (config.Environment, error) {
	files := o.EnvFiles
	if len(files) == 0 {
		files = config.DefaultEnvFiles
	}
	if err := config.LoadEnvFiles(ctx, files...); err != nil {
		return config.Environment{}, err
	}
	lookup := o.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return config.EnvironmentFrom(lookup), nil
}

// Backend opens the remote collaborators, or in-memory ones when dryRun is set
func (o *RootOpts) Backend(ctx context.Context, dryRun bool) (*backend.Backend, error) {
	if dryRun {
		return backend.Memory(), nil
	}
	env, err := o.Environment(ctx)
	if err != nil {
		return nil, err
	}
	open := o.OpenBackend
	if open == nil {
		open = backend.Open
	}
	return open(ctx, env)
}

// Syncer creates a syncer over b reporting to the context reporter
func (o *RootOpts) Syncer(ctx context.Context, b *backend.Backend) (*operation.Syncer, error) {
	s, err := operation.New(operation.Options{
		Store:    b.Store,
		Bucket:   b.Bucket,
		Reporter: log.FromContext(ctx),
	})
	if err != nil {
		return nil, errors.Errorf("creating syncer: %w", err)
	}
	return s, nil
}
