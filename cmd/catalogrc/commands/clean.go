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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/catalogrc/cmd/catalogrc/opts"
	"github.com/walteh/catalogrc/pkg/log"
	"github.com/walteh/catalogrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func NewCleanCmd(opts *opts.RootOpts) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Retire catalog products that are no longer configured",
		Long: `Clean compares the catalog with the configuration.
Every catalog product whose SKU is not an active configured product is
deactivated, or deleted when --delete is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reporter := log.FromContext(ctx)

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			b, err := opts.Backend(ctx, false)
			if err != nil {
				return errors.Errorf("opening backend: %w", err)
			}
			defer b.Close()

			syncer, err := opts.Syncer(ctx, b)
			if err != nil {
				return err
			}

			reporter.Header("clean")
			result, err := syncer.Clean(ctx, cfg, operation.CleanOptions{Delete: remove})
			if err != nil {
				return errors.Errorf("cleaning catalog: %w", err)
			}

			if n := result.Count(operation.CleanFailed); n > 0 {
				return errors.Errorf("%d stale products could not be cleaned", n)
			}
			reporter.Successf("%d deactivated, %d deleted, %d already inactive",
				result.Count(operation.CleanDeactivated),
				result.Count(operation.CleanDeleted),
				result.Count(operation.CleanUnchanged))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "delete", false, "delete stale products instead of deactivating them")

	return cmd
}
