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

package operation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🧹 Clean actions
const (
	CleanDeactivated = "deactivated"
	CleanDeleted     = "deleted"
	CleanUnchanged   = "unchanged"
	CleanFailed      = "failed"
)

// 🧹 CleanOptions tune Clean
type CleanOptions struct {
	// Delete removes stale products instead of deactivating them
	Delete bool
}

// 🧾 CleanEntry is what happened to one stale catalog product
type CleanEntry struct {
	ID     string
	SKU    string
	Action string
	Err    error
}

// 📊 CleanResult lists the stale products found by Clean
type CleanResult struct {
	Entries []CleanEntry
}

// Count returns how many entries ended with action
func (r *CleanResult) Count(action string) int {
	n := 0
	for _, e := range r.Entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

// activeSKUs returns the upper-cased skus of every configured active product.
// Entries that fail validation still count when they name a sku.
func activeSKUs(cfg *config.Config) map[string]bool {
	skus := map[string]bool{}
	for _, cat := range cfg.Categories {
		for _, p := range cat.Products {
			merged := p.Merge(cat.Defaults)
			if merged.SKU == nil || strings.TrimSpace(*merged.SKU) == "" {
				continue
			}
			if merged.Active != nil && !*merged.Active {
				continue
			}
			skus[strings.ToUpper(strings.TrimSpace(*merged.SKU))] = true
		}
	}
	return skus
}

func recordString(rec catalog.Record, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// 🧹 Clean deactivates, or with opts.Delete deletes, every catalog product
// whose sku is not an active product of cfg
func (s *Syncer) Clean(ctx context.Context, cfg *config.Config, opts CleanOptions) (*CleanResult, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.store.SelectProducts(ctx, []string{"id", "sku", "is_active"})
	if err != nil {
		return nil, errors.Errorf("listing catalog products: %w", err)
	}

	keep := activeSKUs(cfg)
	result := &CleanResult{}

	for _, row := range rows {
		entry := CleanEntry{ID: recordString(row, "id"), SKU: recordString(row, "sku")}
		if keep[strings.ToUpper(strings.TrimSpace(entry.SKU))] {
			continue
		}

		switch {
		case opts.Delete:
			found, err := s.store.DeleteProduct(ctx, entry.ID)
			switch {
			case err != nil:
				entry.Action, entry.Err = CleanFailed, err
			case !found:
				entry.Action = CleanUnchanged
			default:
				entry.Action = CleanDeleted
			}
		case row["is_active"] == false:
			entry.Action = CleanUnchanged
		default:
			inactive := false
			if _, err := s.store.UpdateProduct(ctx, entry.ID, catalog.ProductUpdate{IsActive: &inactive}); err != nil {
				entry.Action, entry.Err = CleanFailed, err
			} else {
				entry.Action = CleanDeactivated
			}
		}

		if entry.Err != nil {
			s.reporter.Warningf("%s %s: %v", entry.SKU, entry.Action, entry.Err)
		} else if entry.Action != CleanUnchanged {
			s.reporter.Infof("%s %s", entry.SKU, entry.Action)
		}
		result.Entries = append(result.Entries, entry)
	}

	logger.Info().
		Int("stale", len(result.Entries)).
		Int("failed", result.Count(CleanFailed)).
		Msg("clean complete")

	return result, nil
}
