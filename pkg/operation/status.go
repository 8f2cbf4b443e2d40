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
	"strings"

	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/mockup"
	"github.com/walteh/catalogrc/pkg/variant"
)

// 🔍 Preview is what a sync would build for one product, computed locally
type Preview struct {
	Category  string
	SKU       string
	Name      string
	Active    bool
	Folder    string
	Files     int
	Mockups   int
	Colors    []string
	Primary   []string // primary images, as prefix/filename paths
	SizeChart string
	Unmatched []string
	Problem   string
}

// OK reports whether a sync of the product would reach the catalog
func (p Preview) OK() bool {
	return p.Problem == ""
}

// 🔍 Preview classifies every selected product's mockup folder and builds its
// galleries with {prefix}/{filename} placeholder URLs. Nothing remote is called.
func (s *Syncer) Preview(ctx context.Context, cfg *config.Config, filter Filter) ([]Preview, error) {
	var previews []Preview

	for _, slug := range cfg.CategorySlugs() {
		if !filter.matchCategory(slug) {
			continue
		}
		cat := cfg.Categories[slug]
		for i := range cat.Products {
			pv := Preview{Category: slug, SKU: cat.Label(i)}

			p, err := cfg.Resolve(slug, i)
			if err != nil {
				if filter.matchSKU(pv.SKU) {
					pv.Problem = err.Error()
					previews = append(previews, pv)
				}
				continue
			}
			if !filter.matchSKU(p.SKU) {
				continue
			}
			pv.SKU, pv.Name, pv.Active, pv.Folder = p.SKU, p.Name, p.Active, p.MockupFolder

			previews = append(previews, s.previewProduct(ctx, p, pv, cfg.Colors))
		}
	}

	return previews, nil
}

func (s *Syncer) previewProduct(ctx context.Context, p *config.Product, pv Preview, cfgColors map[string]config.Color) Preview {
	names, err := s.publisher.Eligible(p.MockupFolder)
	if err != nil {
		pv.Problem = err.Error()
		return pv
	}
	pv.Files = len(names)
	if len(names) == 0 {
		pv.Problem = "nothing to publish"
		return pv
	}

	classification := mockup.Classify(ctx, mockup.AssetsFromNames(p.Prefix, names))
	pv.Mockups = len(classification.Mockups)
	pv.Unmatched = classification.Unmatched
	if classification.SizeChart != nil {
		pv.SizeChart = classification.SizeChart.Filename
	}
	if len(classification.SizeCharts) > 1 {
		names := make([]string, 0, len(classification.SizeCharts))
		for _, c := range classification.SizeCharts {
			names = append(names, c.Filename)
		}
		pv.Problem = "multiple size charts: " + strings.Join(names, ", ")
		return pv
	}

	galleries := mockup.BuildGalleries(classification.Mockups, classification.SizeChart)
	colors, primary := variant.Build(galleries, s.colors.With(cfgColors))
	for _, c := range colors {
		pv.Colors = append(pv.Colors, c.ColorID)
	}
	pv.Primary = primary
	if len(colors) == 0 {
		pv.Problem = "no color mockups"
	}
	return pv
}
