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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/catalogrc/cmd/catalogrc/opts"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

func NewProductsCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Inspect and edit catalog products directly",
	}

	cmd.AddCommand(
		newProductsListCmd(opts),
		newProductsGetCmd(opts),
		newProductsUpdateCmd(opts),
		newProductsDeleteCmd(opts),
		newProductsCreateCmd(opts),
	)

	return cmd
}

// withStore runs fn against the configured catalog store
func withStore(cmd *cobra.Command, opts *opts.RootOpts, fn func(store catalog.Store) error) error {
	b, err := opts.Backend(cmd.Context(), false)
	if err != nil {
		return errors.Errorf("opening backend: %w", err)
	}
	defer b.Close()
	return fn(b.Store)
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

func recordTable(fields []string, records []catalog.Record) pterm.TableData {
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = strings.ToUpper(f)
	}
	data := pterm.TableData{header}
	for _, rec := range records {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = cell(rec[f])
		}
		data = append(data, row)
	}
	return data
}

func newProductsListCmd(opts *opts.RootOpts) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(fields) == 0 {
				fields = catalog.DefaultListFields
			}
			return withStore(cmd, opts, func(store catalog.Store) error {
				records, err := store.SelectProducts(cmd.Context(), fields)
				if err != nil {
					return errors.Errorf("listing products: %w", err)
				}
				table, err := pterm.DefaultTable.WithHasHeader().WithData(recordTable(fields, records)).Srender()
				if err != nil {
					return errors.Errorf("rendering product table: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "comma separated columns to show")

	return cmd
}

func newProductsGetCmd(opts *opts.RootOpts) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print one catalog product as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(fields) == 0 {
				fields = []string{"*"}
			}
			return withStore(cmd, opts, func(store catalog.Store) error {
				rec, err := store.SelectProduct(cmd.Context(), args[0], fields)
				if err != nil {
					return errors.Errorf("getting product %s: %w", args[0], err)
				}
				data, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return errors.Errorf("encoding product: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "comma separated columns to print")

	return cmd
}

func newProductsUpdateCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		name           string
		description    string
		price          float64
		compareAtPrice float64
		active         bool
		inventory      int
		tags           []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a catalog product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			var update catalog.ProductUpdate
			if flags.Changed("name") {
				update.Name = &name
			}
			if flags.Changed("description") {
				update.Description = &description
			}
			if flags.Changed("price") {
				update.Price = &price
			}
			if flags.Changed("compare-at-price") {
				update.CompareAtPrice = &compareAtPrice
			}
			if flags.Changed("active") {
				update.IsActive = &active
			}
			if flags.Changed("inventory") {
				update.InventoryQuantity = &inventory
			}
			if flags.Changed("tags") {
				update.Tags = append([]string{}, tags...)
			}
			if err := update.Validate(); err != nil {
				return err
			}

			return withStore(cmd, opts, func(store catalog.Store) error {
				if update.NeedsStoredPrices() {
					stored, err := store.SelectProduct(ctx, args[0], catalog.PriceFields)
					if err != nil {
						return errors.Errorf("reading product %s: %w", args[0], err)
					}
					if err := update.ValidateAgainst(stored); err != nil {
						return err
					}
				}

				p, err := store.UpdateProduct(ctx, args[0], update)
				if err != nil {
					return errors.Errorf("updating product %s: %w", args[0], err)
				}
				log.FromContext(ctx).Successf("updated %s (%s)", p.SKU, p.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new product name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().Float64Var(&price, "price", 0, "new price")
	cmd.Flags().Float64Var(&compareAtPrice, "compare-at-price", 0, "new compare at price")
	cmd.Flags().BoolVar(&active, "active", true, "whether the product is listed")
	cmd.Flags().IntVar(&inventory, "inventory", 0, "new inventory quantity")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma separated tags, replacing the current ones")

	return cmd
}

func newProductsDeleteCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a catalog product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(cmd, opts, func(store catalog.Store) error {
				found, err := store.DeleteProduct(ctx, args[0])
				if err != nil {
					return errors.Errorf("deleting product %s: %w", args[0], err)
				}
				if !found {
					return errors.Errorf("product %s: %w", args[0], catalog.ErrNotFound)
				}
				log.FromContext(ctx).Successf("deleted %s", args[0])
				return nil
			})
		},
	}
}

func readDocument(path string) (catalog.ProductDocument, error) {
	var doc catalog.ProductDocument

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fault.Validation(errors.Errorf("reading %s: %w", path, err))
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return doc, fault.Validation(errors.Errorf("decoding %s: %w", path, err))
	}
	if strings.TrimSpace(doc.Name) == "" || strings.TrimSpace(doc.SKU) == "" {
		return doc, fault.Validationf("%s: name and sku are required", path)
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	return doc, nil
}

func newProductsCreateCmd(opts *opts.RootOpts) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Insert a product document read from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			return withStore(cmd, opts, func(store catalog.Store) error {
				p, err := store.InsertProduct(ctx, doc)
				if err != nil {
					return errors.Errorf("creating product %s: %w", doc.SKU, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), p.ID)
				log.FromContext(ctx).Successf("created %s (%s)", p.SKU, p.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "product document in JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
