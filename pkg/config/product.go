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
	"strings"

	"github.com/gosimple/slug"
	"github.com/walteh/catalogrc/pkg/fault"
)

// DefaultInventoryQuantity is used when neither product nor category sets one.
// Products are printed on demand.
const DefaultInventoryQuantity = 999

// 🧩 VariantFields configures the sizes offered for a product
type VariantFields struct {
	Sizes       []string           `json:"sizes,omitempty" yaml:"sizes,omitempty" hcl:"sizes,optional"`
	PriceBySize map[string]float64 `json:"price_by_size,omitempty" yaml:"price_by_size,omitempty" hcl:"price_by_size,optional"`
}

// 📝 ProductFields is a product entry or a category defaults block.
// Every field is optional here; Resolve enforces the required ones.
type ProductFields struct {
	Name              *string        `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,optional"`
	SKU               *string        `json:"sku,omitempty" yaml:"sku,omitempty" hcl:"sku,optional"`
	Slug              *string        `json:"slug,omitempty" yaml:"slug,omitempty" hcl:"slug,optional"`
	MockupFolder      *string        `json:"mockup_folder,omitempty" yaml:"mockup_folder,omitempty" hcl:"mockup_folder,optional"`
	Active            *bool          `json:"active,omitempty" yaml:"active,omitempty" hcl:"active,optional"`
	Description       *string        `json:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	BasePrice         *float64       `json:"base_price,omitempty" yaml:"base_price,omitempty" hcl:"base_price,optional"`
	CompareAtPrice    *float64       `json:"compare_at_price,omitempty" yaml:"compare_at_price,omitempty" hcl:"compare_at_price,optional"`
	Vendor            *string        `json:"vendor,omitempty" yaml:"vendor,omitempty" hcl:"vendor,optional"`
	ProductType       *string        `json:"product_type,omitempty" yaml:"product_type,omitempty" hcl:"product_type,optional"`
	Material          *string        `json:"material,omitempty" yaml:"material,omitempty" hcl:"material,optional"`
	FabricDetails     *string        `json:"fabric_details,omitempty" yaml:"fabric_details,omitempty" hcl:"fabric_details,optional"`
	FitInfo           *string        `json:"fit_info,omitempty" yaml:"fit_info,omitempty" hcl:"fit_info,optional"`
	CareInstructions  *string        `json:"care_instructions,omitempty" yaml:"care_instructions,omitempty" hcl:"care_instructions,optional"`
	InventoryQuantity *int           `json:"inventory_quantity,omitempty" yaml:"inventory_quantity,omitempty" hcl:"inventory_quantity,optional"`
	Tags              []string       `json:"tags,omitempty" yaml:"tags,omitempty" hcl:"tags,optional"`
	Variants          *VariantFields `json:"variants,omitempty" yaml:"variants,omitempty" hcl:"variants,block"`
}

// 📦 Product is a product entry merged over its category defaults
type Product struct {
	Category          string
	Name              string
	SKU               string
	Prefix            string // storage prefix for the product's assets
	MockupFolder      string
	Active            bool
	Description       string
	BasePrice         float64
	CompareAtPrice    *float64
	Vendor            *string
	ProductType       *string
	Material          *string
	FabricDetails     *string
	FitInfo           *string
	CareInstructions  *string
	InventoryQuantity int
	Tags              []string
	Sizes             []string
	PriceBySize       map[string]float64
}

func pick[T any](product, defaults *T) *T {
	if product != nil {
		return product
	}
	return defaults
}

func pickSlice[T any](product, defaults []T) []T {
	if product != nil {
		return product
	}
	return defaults
}

// 🔀 Merge overlays p on defaults. Fields set on p win.
func (p ProductFields) Merge(defaults *ProductFields) ProductFields {
	if defaults == nil {
		return p
	}
	out := ProductFields{
		Name:              pick(p.Name, defaults.Name),
		SKU:               pick(p.SKU, defaults.SKU),
		Slug:              pick(p.Slug, defaults.Slug),
		MockupFolder:      pick(p.MockupFolder, defaults.MockupFolder),
		Active:            pick(p.Active, defaults.Active),
		Description:       pick(p.Description, defaults.Description),
		BasePrice:         pick(p.BasePrice, defaults.BasePrice),
		CompareAtPrice:    pick(p.CompareAtPrice, defaults.CompareAtPrice),
		Vendor:            pick(p.Vendor, defaults.Vendor),
		ProductType:       pick(p.ProductType, defaults.ProductType),
		Material:          pick(p.Material, defaults.Material),
		FabricDetails:     pick(p.FabricDetails, defaults.FabricDetails),
		FitInfo:           pick(p.FitInfo, defaults.FitInfo),
		CareInstructions:  pick(p.CareInstructions, defaults.CareInstructions),
		InventoryQuantity: pick(p.InventoryQuantity, defaults.InventoryQuantity),
		Tags:              pickSlice(p.Tags, defaults.Tags),
	}
	if p.Variants != nil || defaults.Variants != nil {
		pv, dv := p.Variants, defaults.Variants
		if pv == nil {
			pv = &VariantFields{}
		}
		if dv == nil {
			dv = &VariantFields{}
		}
		out.Variants = &VariantFields{
			Sizes:       pickSlice(pv.Sizes, dv.Sizes),
			PriceBySize: pv.PriceBySize,
		}
		if out.Variants.PriceBySize == nil {
			out.Variants.PriceBySize = dv.PriceBySize
		}
	}
	return out
}

func required(field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", fault.Validationf("%s is required", field)
	}
	return strings.TrimSpace(*v), nil
}

// 🔧 Resolve merges product index of category categorySlug over the category
// defaults and validates the result. Errors are validation errors.
func (cfg *Config) Resolve(categorySlug string, index int) (*Product, error) {
	cat, ok := cfg.Categories[categorySlug]
	if !ok || cat == nil {
		return nil, fault.Validationf("unknown category %q", categorySlug)
	}
	if index < 0 || index >= len(cat.Products) {
		return nil, fault.Validationf("category %q has no product #%d", categorySlug, index+1)
	}

	f := cat.Products[index].Merge(cat.Defaults)

	p := &Product{
		Category:          categorySlug,
		Active:            true,
		InventoryQuantity: DefaultInventoryQuantity,
		CompareAtPrice:    f.CompareAtPrice,
		Vendor:            f.Vendor,
		ProductType:       f.ProductType,
		Material:          f.Material,
		FabricDetails:     f.FabricDetails,
		FitInfo:           f.FitInfo,
		CareInstructions:  f.CareInstructions,
		Tags:              append([]string{}, f.Tags...),
		Sizes:             []string{},
	}

	var err error
	if p.Name, err = required("name", f.Name); err != nil {
		return nil, err
	}
	if p.SKU, err = required("sku", f.SKU); err != nil {
		return nil, err
	}
	folder, err := required("mockup_folder", f.MockupFolder)
	if err != nil {
		return nil, err
	}
	if filepath.IsAbs(folder) {
		p.MockupFolder = filepath.Clean(folder)
	} else {
		p.MockupFolder = filepath.Join(cfg.MockupBase(), folder)
	}

	if f.BasePrice == nil {
		return nil, fault.Validationf("base_price is required")
	}
	if *f.BasePrice <= 0 {
		return nil, fault.Validationf("base_price must be positive, got %v", *f.BasePrice)
	}
	p.BasePrice = *f.BasePrice
	if f.CompareAtPrice != nil && *f.CompareAtPrice < p.BasePrice {
		return nil, fault.Validationf("compare_at_price %v is below base_price %v", *f.CompareAtPrice, p.BasePrice)
	}

	if f.Active != nil {
		p.Active = *f.Active
	}
	if f.Description != nil {
		p.Description = *f.Description
	}
	if f.InventoryQuantity != nil {
		if *f.InventoryQuantity < 0 {
			return nil, fault.Validationf("inventory_quantity must not be negative, got %d", *f.InventoryQuantity)
		}
		p.InventoryQuantity = *f.InventoryQuantity
	}

	if f.Slug != nil && strings.TrimSpace(*f.Slug) != "" {
		s := strings.ToLower(strings.TrimSpace(*f.Slug))
		if !slug.IsSlug(s) {
			return nil, fault.Validationf("slug %q must be lower case letters, digits and dashes", *f.Slug)
		}
		p.Prefix = s
	} else {
		p.Prefix = strings.ToLower(p.SKU)
	}

	if f.Variants != nil {
		p.Sizes = append(p.Sizes, f.Variants.Sizes...)
		if len(f.Variants.PriceBySize) > 0 {
			p.PriceBySize = make(map[string]float64, len(f.Variants.PriceBySize))
			known := map[string]bool{}
			for _, s := range p.Sizes {
				known[s] = true
			}
			for size, price := range f.Variants.PriceBySize {
				if len(p.Sizes) > 0 && !known[size] {
					return nil, fault.Validationf("price_by_size names size %q which is not in sizes", size)
				}
				if price <= 0 {
					return nil, fault.Validationf("price_by_size %q must be positive, got %v", size, price)
				}
				p.PriceBySize[size] = price
			}
		}
	}

	return p, nil
}
