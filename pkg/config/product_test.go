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

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/catalogrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

func ptr[T any](v T) *T { return &v }

func baseProduct() ProductFields {
	return ProductFields{
		Name:         ptr("Classic Tee"),
		SKU:          ptr("TEE-001"),
		MockupFolder: ptr("classic"),
		BasePrice:    ptr(499.0),
	}
}

func singleCategory(defaults *ProductFields, products ...ProductFields) *Config {
	return &Config{
		location: "/catalog/products.json",
		Categories: map[string]*Category{
			"t-shirts": {Name: "T-Shirts", Defaults: defaults, Products: products},
		},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		defaults    *ProductFields
		product     func(p *ProductFields)
		wantErr     bool
		errContains string
		check       func(t *testing.T, p *Product)
	}{
		{
			name: "built_in_defaults",
			check: func(t *testing.T, p *Product) {
				assert.True(t, p.Active)
				assert.Equal(t, DefaultInventoryQuantity, p.InventoryQuantity)
				assert.Equal(t, "tee-001", p.Prefix)
				assert.Equal(t, filepath.Join("/catalog", "classic"), p.MockupFolder)
				assert.Empty(t, p.Sizes)
				assert.NotNil(t, p.Tags)
				assert.Nil(t, p.PriceBySize)
				assert.Equal(t, "t-shirts", p.Category)
			},
		},
		{
			name: "category_defaults_apply",
			defaults: &ProductFields{
				Vendor:            ptr("Qikink"),
				InventoryQuantity: ptr(50),
				Tags:              []string{"cotton"},
				Variants:          &VariantFields{Sizes: []string{"S", "M"}},
			},
			check: func(t *testing.T, p *Product) {
				assert.Equal(t, "Qikink", *p.Vendor)
				assert.Equal(t, 50, p.InventoryQuantity)
				assert.Equal(t, []string{"cotton"}, p.Tags)
				assert.Equal(t, []string{"S", "M"}, p.Sizes)
			},
		},
		{
			name: "product_overrides_defaults",
			defaults: &ProductFields{
				Vendor:   ptr("Qikink"),
				Active:   ptr(true),
				Tags:     []string{"cotton"},
				Variants: &VariantFields{Sizes: []string{"S", "M"}, PriceBySize: map[string]float64{"S": 1}},
			},
			product: func(p *ProductFields) {
				p.Vendor = ptr("Printrove")
				p.Active = ptr(false)
				p.Tags = []string{}
				p.Variants = &VariantFields{PriceBySize: map[string]float64{"M": 549}}
			},
			check: func(t *testing.T, p *Product) {
				assert.Equal(t, "Printrove", *p.Vendor)
				assert.False(t, p.Active)
				assert.Empty(t, p.Tags)
				assert.Equal(t, []string{"S", "M"}, p.Sizes, "sizes fall back independently of price_by_size")
				assert.Equal(t, map[string]float64{"M": 549}, p.PriceBySize)
			},
		},
		{
			name:    "explicit_slug_is_prefix",
			product: func(p *ProductFields) { p.Slug = ptr("Classic-Tee") },
			check: func(t *testing.T, p *Product) {
				assert.Equal(t, "classic-tee", p.Prefix)
			},
		},
		{
			name:    "absolute_mockup_folder",
			product: func(p *ProductFields) { p.MockupFolder = ptr("/srv/mockups/tee/") },
			check: func(t *testing.T, p *Product) {
				assert.Equal(t, "/srv/mockups/tee", p.MockupFolder)
			},
		},
		{
			name:        "missing_name",
			product:     func(p *ProductFields) { p.Name = nil },
			wantErr:     true,
			errContains: "name is required",
		},
		{
			name:        "blank_sku",
			product:     func(p *ProductFields) { p.SKU = ptr("  ") },
			wantErr:     true,
			errContains: "sku is required",
		},
		{
			name:        "missing_mockup_folder",
			product:     func(p *ProductFields) { p.MockupFolder = nil },
			wantErr:     true,
			errContains: "mockup_folder is required",
		},
		{
			name:        "missing_base_price",
			product:     func(p *ProductFields) { p.BasePrice = nil },
			wantErr:     true,
			errContains: "base_price is required",
		},
		{
			name:        "zero_base_price",
			product:     func(p *ProductFields) { p.BasePrice = ptr(0.0) },
			wantErr:     true,
			errContains: "base_price must be positive",
		},
		{
			name:        "compare_below_base",
			product:     func(p *ProductFields) { p.CompareAtPrice = ptr(100.0) },
			wantErr:     true,
			errContains: "compare_at_price",
		},
		{
			name:        "negative_inventory",
			product:     func(p *ProductFields) { p.InventoryQuantity = ptr(-1) },
			wantErr:     true,
			errContains: "inventory_quantity",
		},
		{
			name:        "invalid_slug",
			product:     func(p *ProductFields) { p.Slug = ptr("classic tee") },
			wantErr:     true,
			errContains: "slug",
		},
		{
			name: "price_for_unknown_size",
			product: func(p *ProductFields) {
				p.Variants = &VariantFields{Sizes: []string{"S"}, PriceBySize: map[string]float64{"XL": 599}}
			},
			wantErr:     true,
			errContains: "not in sizes",
		},
		{
			name: "price_by_size_without_sizes",
			product: func(p *ProductFields) {
				p.Variants = &VariantFields{PriceBySize: map[string]float64{"XL": 599}}
			},
			check: func(t *testing.T, p *Product) {
				assert.Equal(t, 599.0, p.PriceBySize["XL"])
			},
		},
		{
			name:    "required_field_from_defaults",
			product: func(p *ProductFields) { p.BasePrice = nil },
			defaults: &ProductFields{
				BasePrice: ptr(399.0),
			},
			check: func(t *testing.T, p *Product) {
				assert.Equal(t, 399.0, p.BasePrice)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := baseProduct()
			if tt.product != nil {
				tt.product(&product)
			}
			cfg := singleCategory(tt.defaults, product)

			p, err := cfg.Resolve("t-shirts", 0)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.True(t, errors.Is(err, fault.ErrValidation), "product problems are validation errors")
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestResolveOutOfRange(t *testing.T) {
	cfg := singleCategory(nil, baseProduct())

	_, err := cfg.Resolve("t-shirts", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrValidation))

	_, err = cfg.Resolve("mugs", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestMergeDoesNotShareDefaults(t *testing.T) {
	defaults := &ProductFields{Vendor: ptr("Qikink")}
	cfg := singleCategory(defaults, baseProduct(), baseProduct())

	first, err := cfg.Resolve("t-shirts", 0)
	require.NoError(t, err)
	first.Tags = append(first.Tags, "mutated")

	second, err := cfg.Resolve("t-shirts", 1)
	require.NoError(t, err)
	assert.Empty(t, second.Tags)
	assert.Nil(t, cfg.Categories["t-shirts"].Products[0].Vendor, "merging leaves the entry untouched")
}

func TestLabel(t *testing.T) {
	cat := &Category{Products: []ProductFields{
		{SKU: ptr("TEE-1")},
		{Name: ptr("Unnamed sku")},
		{},
	}}
	assert.Equal(t, "TEE-1", cat.Label(0))
	assert.Equal(t, "Unnamed sku", cat.Label(1))
	assert.Equal(t, "product #3", cat.Label(2))
	assert.Equal(t, "", cat.Label(7))
}
