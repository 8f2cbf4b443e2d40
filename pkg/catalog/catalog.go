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

// Package catalog defines the catalog store contract and the product document
// that the sync pipeline writes to it.
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ❓ ErrNotFound is returned when a selected record does not exist
var ErrNotFound = errors.Base("record not found")

// 📂 Category is a catalog category record
type Category struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// 🎨 ColorVariant is one color of a product with its gallery
type ColorVariant struct {
	ColorID   string   `json:"colorId"`
	ColorName string   `json:"colorName"`
	ColorHex  string   `json:"colorHex"`
	Images    []string `json:"images"`
}

// 🧩 Variants groups the selectable options of a product
type Variants struct {
	Colors      []ColorVariant     `json:"colors"`
	Sizes       []string           `json:"sizes"`
	PriceBySize map[string]float64 `json:"price_by_size"`
}

// MarshalJSON writes empty collections as [] and {} so the stored variants column never holds null
func (v Variants) MarshalJSON() ([]byte, error) {
	type plain Variants
	if v.Colors == nil {
		v.Colors = []ColorVariant{}
	}
	if v.Sizes == nil {
		v.Sizes = []string{}
	}
	if v.PriceBySize == nil {
		v.PriceBySize = map[string]float64{}
	}
	return json.Marshal(plain(v))
}

// 📄 ProductDocument is the normalized product sent to the store in one upsert
type ProductDocument struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	CompareAtPrice    *float64 `json:"compare_at_price"`
	SKU               string   `json:"sku"`
	InventoryQuantity int      `json:"inventory_quantity"`
	CategoryID        string   `json:"category_id"`
	Images            []string `json:"images"`
	IsActive          bool     `json:"is_active"`
	Vendor            *string  `json:"vendor"`
	ProductType       *string  `json:"product_type"`
	Material          *string  `json:"material"`
	FabricDetails     *string  `json:"fabric_details,omitempty"`
	FitInfo           *string  `json:"fit_info,omitempty"`
	CareInstructions  *string  `json:"care_instructions,omitempty"`
	Variants          Variants `json:"variants"`
	Tags              []string `json:"tags"`
}

// 🗂️ Product is a stored product row
type Product struct {
	ID string `json:"id"`
	ProductDocument
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// 📇 Record is a projection of a product row onto a set of fields
type Record map[string]any

// 🔌 Store is the remote catalog. Every call succeeds or fails atomically and
// no call is retried here.
type Store interface {
	// SelectCategoryID returns the id of the category with slug, or ErrNotFound
	SelectCategoryID(ctx context.Context, slug string) (string, error)
	// InsertCategory creates a category and returns its id
	InsertCategory(ctx context.Context, category Category) (string, error)
	// UpsertProduct inserts or replaces the product with the same SKU
	UpsertProduct(ctx context.Context, doc ProductDocument) (*Product, error)
	// InsertProduct creates a product, failing if the SKU exists
	InsertProduct(ctx context.Context, doc ProductDocument) (*Product, error)
	// UpdateProduct applies a partial update to the product with id
	UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*Product, error)
	// DeleteProduct deletes the product with id and reports whether it existed
	DeleteProduct(ctx context.Context, id string) (bool, error)
	// SelectProduct returns the requested fields of one product, or ErrNotFound
	SelectProduct(ctx context.Context, id string, fields []string) (Record, error)
	// SelectProducts returns the requested fields of every product
	SelectProducts(ctx context.Context, fields []string) ([]Record, error)
}
