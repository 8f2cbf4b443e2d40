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

	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/log"
	"github.com/walteh/catalogrc/pkg/mockup"
	"github.com/walteh/catalogrc/pkg/publish"
	"github.com/walteh/catalogrc/pkg/variant"
	"gitlab.com/tozd/go/errors"
)

// categoryRef resolves a category id at most once per run
type categoryRef struct {
	slug     string
	category *config.Category
	resolved bool
	id       string
	err      error
}

func (s *Syncer) categoryID(ctx context.Context, ref *categoryRef) (string, error) {
	if ref.resolved {
		return ref.id, ref.err
	}
	ref.resolved = true

	id, err := s.store.SelectCategoryID(ctx, ref.slug)
	if errors.Is(err, catalog.ErrNotFound) {
		zerolog.Ctx(ctx).Info().Str("category", ref.slug).Msg("creating category")
		id, err = s.store.InsertCategory(ctx, catalog.Category{
			Name:        ref.category.Name,
			Slug:        ref.slug,
			Description: ref.category.Description,
		})
	}
	if err != nil {
		ref.err = errors.Errorf("resolving category %s: %w", ref.slug, err)
		return "", ref.err
	}
	ref.id = id
	return id, nil
}

// 🔄 Sync pushes every product selected by filter into the catalog.
// Product failures are recorded in the result; the returned error is only set
// for problems that stop the whole run.
func (s *Syncer) Sync(ctx context.Context, cfg *config.Config, filter Filter) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if filter.Category != "" {
		if _, ok := cfg.Categories[filter.Category]; !ok {
			return nil, fault.Configurationf("category %q is not configured", filter.Category)
		}
	}

	colors := s.colors.With(cfg.Colors)
	result := &Result{}

	for _, slug := range cfg.CategorySlugs() {
		if !filter.matchCategory(slug) {
			continue
		}
		cat := cfg.Categories[slug]

		var indexes []int
		for i, p := range cat.Products {
			merged := p.Merge(cat.Defaults)
			sku := ""
			if merged.SKU != nil {
				sku = *merged.SKU
			}
			if filter.matchSKU(sku) {
				indexes = append(indexes, i)
			}
		}
		if len(indexes) == 0 {
			logger.Debug().Str("category", slug).Msg("no products selected")
			continue
		}

		s.reporter.StartCategory(ctx, slug, cat.Name)
		ref := &categoryRef{slug: slug, category: cat}

		for _, i := range indexes {
			if err := ctx.Err(); err != nil {
				return result, errors.Errorf("sync interrupted: %w", err)
			}
			pr := s.syncProduct(ctx, cfg, ref, i, colors)
			result.Products = append(result.Products, pr)
		}
		s.reporter.LogNewline()
	}

	logger.Info().
		Int("upserted", result.Count(StateUpserted)).
		Int("aborted", result.Count(StateAborted)).
		Int("skipped", result.Count(StateSkipped)).
		Msg("sync complete")

	return result, nil
}

func (s *Syncer) syncProduct(ctx context.Context, cfg *config.Config, ref *categoryRef, index int, colors variant.Table) (pr ProductResult) {
	pr = ProductResult{
		Category: ref.slug,
		SKU:      ref.category.Label(index),
		State:    StatePending,
		Reached:  StatePending,
	}

	abort := func(err error) ProductResult {
		pr.State = StateAborted
		pr.Err = err
		pr.Reason = err.Error()
		return pr
	}
	skip := func(reason string, err error) ProductResult {
		pr.State = StateSkipped
		pr.Err = err
		pr.Reason = reason
		return pr
	}

	p, err := cfg.Resolve(ref.slug, index)
	if err != nil {
		s.reporter.StartProduct(ctx, log.ProductOperation{Category: ref.slug, SKU: pr.SKU, Name: pr.SKU})
		defer s.endProduct(ctx, &pr)
		return abort(err)
	}
	pr.SKU, pr.Name = p.SKU, p.Name

	s.reporter.StartProduct(ctx, log.ProductOperation{Category: ref.slug, SKU: p.SKU, Name: p.Name})
	defer s.endProduct(ctx, &pr)

	if !p.Active {
		return skip("inactive", nil)
	}
	if ref.resolved && ref.err != nil {
		return skip("category unavailable", ref.err)
	}

	pub, err := s.publisher.Publish(ctx, p.MockupFolder, p.Prefix)
	if err != nil {
		return abort(err)
	}
	s.reportAssets(ctx, pub)
	pr.Uploaded, pr.Reused, pr.Failed = pub.Uploaded(), pub.Reused(), len(pub.Failures)

	if len(pub.Records) == 0 {
		if len(pub.Failures) > 0 {
			return abort(fault.Remotef("no file of %s could be published", p.MockupFolder))
		}
		return abort(fault.Validationf("nothing to publish in %s", p.MockupFolder))
	}
	pr.Reached = StateMockupsPublished

	classification := mockup.Classify(ctx, pub.Assets())
	if len(classification.SizeCharts) > 1 {
		names := make([]string, 0, len(classification.SizeCharts))
		for _, c := range classification.SizeCharts {
			names = append(names, c.Filename)
		}
		return abort(fault.Validationf("multiple size charts: %s", strings.Join(names, ", ")))
	}

	galleries := mockup.BuildGalleries(classification.Mockups, classification.SizeChart)
	if len(galleries) == 0 {
		return abort(fault.Validationf("no color mockups in %s", p.MockupFolder))
	}
	pr.Reached = StateGalleriesBuilt
	pr.Colors = len(galleries)

	categoryID, err := s.categoryID(ctx, ref)
	if err != nil {
		s.reporter.Warningf("category %s unavailable, skipping its products: %v", ref.slug, err)
		return skip("category unavailable", err)
	}

	doc, err := variant.Assemble(p, categoryID, galleries, colors)
	if err != nil {
		return abort(err)
	}
	pr.Reached = StateVariantsAssembled

	stored, err := s.store.UpsertProduct(ctx, doc)
	if err != nil {
		return abort(err)
	}
	pr.State = StateUpserted
	pr.Reached = StateUpserted
	pr.ProductID = stored.ID
	return pr
}

func (s *Syncer) endProduct(ctx context.Context, pr *ProductResult) {
	s.reporter.EndProduct(ctx, string(pr.State), pr.Reason)
}

func (s *Syncer) reportAssets(ctx context.Context, pub *publish.Result) {
	for _, rec := range pub.Records {
		status := log.AssetReused
		if rec.Status == publish.StatusUploaded {
			status = log.AssetUploaded
		}
		s.reporter.LogAsset(ctx, log.AssetOperation{Filename: rec.Filename, Status: status})
	}
	for _, f := range pub.Failures {
		s.reporter.LogAsset(ctx, log.AssetOperation{Filename: f.Filename, Status: log.AssetFailed, Detail: f.Err.Error()})
	}
}
