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

// Package variant turns color galleries into the product document's images and
// variants.
package variant

import (
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/mockup"
)

// PlaceholderHex is shown for colors missing from the table
const PlaceholderHex = "#cccccc"

// 🎨 Color is the display name and swatch of a color id
type Color struct {
	Name string
	Hex  string
}

// 🗂️ Table maps print vendor color ids to display colors
type Table map[string]Color

// DefaultColors is the vendor color chart
var DefaultColors = Table{
	"1":  {Name: "White", Hex: "#FFFFFF"},
	"3":  {Name: "Black", Hex: "#000000"},
	"4":  {Name: "Grey", Hex: "#6b7280"},
	"9":  {Name: "Navy", Hex: "#1e3a8a"},
	"10": {Name: "Red", Hex: "#dc2626"},
	"25": {Name: "Maroon", Hex: "#7f1d1d"},
	"41": {Name: "Olive Green", Hex: "#6b7c3e"},
	"43": {Name: "Yellow", Hex: "#eab308"},
	"45": {Name: "Pink", Hex: "#ec4899"},
	"49": {Name: "Lavender", Hex: "#c4b5fd"},
	"52": {Name: "Coral", Hex: "#ff7f7f"},
	"53": {Name: "Mint", Hex: "#98d8c8"},
	"54": {Name: "Baby Blue", Hex: "#a7c7e7"},
}

// 🔍 Lookup returns the color for id, synthesizing one for unknown ids
func (t Table) Lookup(id string) Color {
	if c, ok := t[id]; ok {
		return c
	}
	return Color{Name: "Color " + id, Hex: PlaceholderHex}
}

// 🔀 With returns a copy of t with overrides applied
func (t Table) With(overrides map[string]config.Color) Table {
	out := make(Table, len(t)+len(overrides))
	for id, c := range t {
		out[id] = c
	}
	for id, c := range overrides {
		out[id] = Color{Name: c.Name, Hex: c.Hex}
	}
	return out
}

// 🧩 Build returns the color variants ordered by color id and the primary
// images, which are the gallery of the smallest color id
func Build(galleries map[string]mockup.Gallery, colors Table) ([]catalog.ColorVariant, []string) {
	ids := mockup.ColorIDs(galleries)
	variants := make([]catalog.ColorVariant, 0, len(ids))
	for _, id := range ids {
		c := colors.Lookup(id)
		variants = append(variants, catalog.ColorVariant{
			ColorID:   id,
			ColorName: c.Name,
			ColorHex:  c.Hex,
			Images:    galleries[id].URLs(),
		})
	}
	if len(variants) == 0 {
		return variants, []string{}
	}
	return variants, append([]string(nil), variants[0].Images...)
}

// 📄 Assemble builds the document upserted for p. A product without any color
// gallery is rejected.
func Assemble(p *config.Product, categoryID string, galleries map[string]mockup.Gallery, colors Table) (catalog.ProductDocument, error) {
	colorVariants, images := Build(galleries, colors)
	if len(colorVariants) == 0 {
		return catalog.ProductDocument{}, fault.Validationf("product %s has no color mockups", p.SKU)
	}

	priceBySize := make(map[string]float64, len(p.PriceBySize))
	for size, price := range p.PriceBySize {
		priceBySize[size] = price
	}

	return catalog.ProductDocument{
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.BasePrice,
		CompareAtPrice:    p.CompareAtPrice,
		SKU:               p.SKU,
		InventoryQuantity: p.InventoryQuantity,
		CategoryID:        categoryID,
		Images:            images,
		IsActive:          p.Active,
		Vendor:            p.Vendor,
		ProductType:       p.ProductType,
		Material:          p.Material,
		FabricDetails:     p.FabricDetails,
		FitInfo:           p.FitInfo,
		CareInstructions:  p.CareInstructions,
		Variants: catalog.Variants{
			Colors:      colorVariants,
			Sizes:       append([]string{}, p.Sizes...),
			PriceBySize: priceBySize,
		},
		Tags: append([]string{}, p.Tags...),
	}, nil
}
