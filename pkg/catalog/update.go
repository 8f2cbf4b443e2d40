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

package catalog

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/walteh/catalogrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 📋 Columns is the set of product fields that may be selected
var Columns = []string{
	"id", "name", "description", "price", "compare_at_price", "sku",
	"inventory_quantity", "category_id", "images", "is_active", "vendor",
	"product_type", "material", "fabric_details", "fit_info", "care_instructions",
	"variants", "tags", "created_at", "updated_at",
}

// DefaultListFields is the projection used when no fields are requested
var DefaultListFields = []string{"id", "sku", "name", "price", "is_active"}

// ✏️ ProductUpdate is a partial update; nil fields are left untouched
type ProductUpdate struct {
	Name              *string
	Description       *string
	Price             *float64
	CompareAtPrice    *float64
	IsActive          *bool
	InventoryQuantity *int
	Images            []string
	Tags              []string
	Variants          *Variants
}

// IsEmpty reports whether the update sets no field
func (u ProductUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// 🔍 Validate checks the update before it is sent
func (u ProductUpdate) Validate() error {
	if u.IsEmpty() {
		return fault.Validationf("update sets no fields")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fault.Validationf("name must not be blank")
	}
	if u.Price != nil && *u.Price <= 0 {
		return fault.Validationf("price must be positive, got %v", *u.Price)
	}
	if u.CompareAtPrice != nil && *u.CompareAtPrice < 0 {
		return fault.Validationf("compare_at_price must not be negative, got %v", *u.CompareAtPrice)
	}
	if u.Price != nil && u.CompareAtPrice != nil && *u.CompareAtPrice < *u.Price {
		return fault.Validationf("compare_at_price %v is below price %v", *u.CompareAtPrice, *u.Price)
	}
	if u.InventoryQuantity != nil && *u.InventoryQuantity < 0 {
		return fault.Validationf("inventory_quantity must not be negative, got %d", *u.InventoryQuantity)
	}
	return nil
}

// PriceFields are the stored columns ValidateAgainst compares with
var PriceFields = []string{"price", "compare_at_price"}

// NeedsStoredPrices reports whether the update sets only one of price and
// compare_at_price, leaving the other to be read from the stored row
func (u ProductUpdate) NeedsStoredPrices() bool {
	return (u.Price == nil) != (u.CompareAtPrice == nil)
}

// 🔍 ValidateAgainst checks the update merged over the stored price columns.
// A stored row without a compare_at_price never conflicts.
func (u ProductUpdate) ValidateAgainst(stored Record) error {
	if err := u.Validate(); err != nil {
		return err
	}

	price, hasPrice := recordNumber(stored, "price")
	if u.Price != nil {
		price, hasPrice = *u.Price, true
	}
	compare, hasCompare := recordNumber(stored, "compare_at_price")
	if u.CompareAtPrice != nil {
		compare, hasCompare = *u.CompareAtPrice, true
	}
	if hasPrice && hasCompare && compare < price {
		return fault.Validationf("compare_at_price %v is below price %v", compare, price)
	}
	return nil
}

func recordNumber(r Record, field string) (float64, bool) {
	switch v := r[field].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// 🗺️ Fields returns the column values set by the update
func (u ProductUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.CompareAtPrice != nil {
		fields["compare_at_price"] = *u.CompareAtPrice
	}
	if u.IsActive != nil {
		fields["is_active"] = *u.IsActive
	}
	if u.InventoryQuantity != nil {
		fields["inventory_quantity"] = *u.InventoryQuantity
	}
	if u.Images != nil {
		fields["images"] = u.Images
	}
	if u.Tags != nil {
		fields["tags"] = u.Tags
	}
	if u.Variants != nil {
		fields["variants"] = *u.Variants
	}
	return fields
}

// Apply writes the set fields onto doc
func (u ProductUpdate) Apply(doc *ProductDocument) {
	if u.Name != nil {
		doc.Name = *u.Name
	}
	if u.Description != nil {
		doc.Description = *u.Description
	}
	if u.Price != nil {
		doc.Price = *u.Price
	}
	if u.CompareAtPrice != nil {
		v := *u.CompareAtPrice
		doc.CompareAtPrice = &v
	}
	if u.IsActive != nil {
		doc.IsActive = *u.IsActive
	}
	if u.InventoryQuantity != nil {
		doc.InventoryQuantity = *u.InventoryQuantity
	}
	if u.Images != nil {
		doc.Images = append([]string(nil), u.Images...)
	}
	if u.Tags != nil {
		doc.Tags = append([]string(nil), u.Tags...)
	}
	if u.Variants != nil {
		doc.Variants = *u.Variants
	}
}

// 🔍 ValidateFields rejects projections naming unknown columns.
// An empty projection selects DefaultListFields.
func ValidateFields(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return DefaultListFields, nil
	}
	known := make(map[string]bool, len(Columns))
	for _, c := range Columns {
		known[c] = true
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if f != "*" && !known[f] {
			return nil, fault.Validationf("unknown product field %q", f)
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return DefaultListFields, nil
	}
	return out, nil
}

// 🔧 Project reduces a product to the given fields ("*" selects all)
func Project(p Product, fields []string) (Record, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Errorf("encoding product: %w", err)
	}
	var all Record
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, errors.Errorf("decoding product: %w", err)
	}

	rec := Record{}
	for _, f := range fields {
		if f == "*" {
			return all, nil
		}
		rec[f] = all[f]
	}
	return rec, nil
}

// SortedKeys returns the record's keys in column order, unknown keys last
func (r Record) SortedKeys() []string {
	order := make(map[string]int, len(Columns))
	for i, c := range Columns {
		order[c] = i
	}
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := order[keys[i]]
		oj, jok := order[keys[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
