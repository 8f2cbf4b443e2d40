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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/catalogrc/cmd/catalogrc/opts"
	"github.com/walteh/catalogrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

func NewUploadCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <dir> <prefix>",
		Short: "Publish a folder to the bucket without touching the catalog",
		Long: `Upload publishes every file of dir under prefix in the bucket.
Files already present are reused and archives are skipped. The public URL of
each file is printed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reporter := log.FromContext(ctx)

			b, err := opts.Backend(ctx, false)
			if err != nil {
				return errors.Errorf("opening backend: %w", err)
			}
			defer b.Close()

			syncer, err := opts.Syncer(ctx, b)
			if err != nil {
				return err
			}

			reporter.Header("upload " + args[0])
			result, err := syncer.PublishOnly(ctx, args[0], args[1])
			if err != nil {
				return errors.Errorf("publishing %s: %w", args[0], err)
			}

			for _, rec := range result.Records {
				fmt.Fprintln(cmd.OutOrStdout(), rec.URL)
			}
			if len(result.Failures) > 0 {
				return errors.Errorf("%d files failed to upload", len(result.Failures))
			}
			reporter.Successf("%d uploaded, %d reused", result.Uploaded(), result.Reused())
			return nil
		},
	}

	return cmd
}
