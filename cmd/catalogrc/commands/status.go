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
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/catalogrc/cmd/catalogrc/opts"
	"github.com/walteh/catalogrc/pkg/backend"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/log"
	"github.com/walteh/catalogrc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func previewTable(previews []operation.Preview) pterm.TableData {
	data := pterm.TableData{{"CATEGORY", "SKU", "NAME", "ACTIVE", "FILES", "COLORS", "SIZE CHART", "PROBLEM"}}
	for _, p := range previews {
		data = append(data, []string{
			p.Category,
			p.SKU,
			p.Name,
			strconv.FormatBool(p.Active),
			strconv.Itoa(p.Files),
			strings.Join(p.Colors, ","),
			p.SizeChart,
			p.Problem,
		})
	}
	return data
}

func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the mockup folders without touching the catalog",
		Long: `Status classifies every configured mockup folder locally.
It will:
1. Resolve each product against its category defaults
2. Classify the files of its mockup folder
3. Report the colors found and any problem that would abort a sync`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reporter := log.FromContext(ctx)

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			syncer, err := opts.Syncer(ctx, backend.Memory())
			if err != nil {
				return err
			}

			previews, err := syncer.Preview(ctx, cfg, operation.Filter{Category: category})
			if err != nil {
				return errors.Errorf("previewing products: %w", err)
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(previewTable(previews)).Srender()
			if err != nil {
				return errors.Errorf("rendering status table: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)

			problems := 0
			for _, p := range previews {
				if !p.OK() {
					problems++
				}
			}
			if problems > 0 {
				return fault.Validationf("%d of %d products have problems", problems, len(previews))
			}
			reporter.Successf("%d products ready to sync", len(previews))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only check the category with this slug")

	return cmd
}
