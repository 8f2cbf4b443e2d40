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

// ErrAborted is returned when at least one product could not be synced
var ErrAborted = errors.Base("products aborted")

func NewSyncCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		category string
		skus     []string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Publish mockups and upsert products into the catalog",
		Long: `Sync pushes every configured product into the catalog.
For each product it will:
1. Upload the mockup folder to the bucket, reusing files already there
2. Group the mockups into one gallery per color
3. Assemble the color variants and upsert the product by SKU

A product that fails is reported and the run continues with the next one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reporter := log.FromContext(ctx)

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			b, err := opts.Backend(ctx, dryRun)
			if err != nil {
				return errors.Errorf("opening backend: %w", err)
			}
			defer b.Close()

			syncer, err := opts.Syncer(ctx, b)
			if err != nil {
				return err
			}

			if dryRun {
				reporter.Header("sync (dry run, nothing leaves this machine)")
			} else {
				reporter.Header("sync")
			}

			result, err := syncer.Sync(ctx, cfg, operation.Filter{Category: category, SKUs: skus})
			if err != nil {
				return errors.Errorf("syncing products: %w", err)
			}

			summary := []any{
				result.Count(operation.StateUpserted),
				result.Count(operation.StateSkipped),
				result.Count(operation.StateAborted),
				result.Uploaded(),
			}
			if result.HasAborted() {
				reporter.Errorf("%d upserted, %d skipped, %d aborted, %d files uploaded", summary...)
				for _, p := range result.Products {
					if p.State == operation.StateAborted {
						reporter.Errorf("%s: %s", p.SKU, p.Reason)
					}
				}
				return errors.Errorf("%d of %d products: %w", result.Count(operation.StateAborted), len(result.Products), ErrAborted)
			}
			reporter.Successf("%d upserted, %d skipped, %d aborted, %d files uploaded", summary...)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only sync the category with this slug")
	cmd.Flags().StringArrayVar(&skus, "sku", nil, "only sync products with this sku (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run against an in-memory catalog and bucket")

	return cmd
}
