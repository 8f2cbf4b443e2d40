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

// Package postgrest is a catalog store backed by a Supabase project's
// PostgREST API (tables categories and products).
package postgrest

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	pg "github.com/supabase-community/postgrest-go"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/project"
	"gitlab.com/tozd/go/errors"
)

const (
	categoriesTable = "categories"
	productsTable   = "products"

	returnRepresentation = "representation"
)

// 🗄️ Store implements catalog.Store over PostgREST
type Store struct {
	client *pg.Client
}

var _ catalog.Store = (*Store)(nil)

// 🏭 New creates a store talking to the rest/v1 endpoint of p
func New(p project.Project) *Store {
	return &Store{client: pg.NewClient(p.Endpoint("rest/v1"), "public", p.Headers())}
}

// execute runs a built request and classifies its failure as remote
func execute(ctx context.Context, op string, fb *pg.FilterBuilder, out any) error {
	if _, err := fb.ExecuteTo(out); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("op", op).Msg("postgrest call failed")
		return fault.Remote(errors.Errorf("%s: %w", op, err))
	}
	return nil
}

func (s *Store) SelectCategoryID(ctx context.Context, slug string) (string, error) {
	var rows []struct {
		ID string `json:"id"`
	}
	fb := s.client.From(categoriesTable).Select("id", "", false).Eq("slug", slug)
	if err := execute(ctx, "selecting category "+slug, fb, &rows); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", errors.Errorf("category %s: %w", slug, catalog.ErrNotFound)
	}
	return rows[0].ID, nil
}

func (s *Store) InsertCategory(ctx context.Context, category catalog.Category) (string, error) {
	category.ID = ""
	var rows []catalog.Category
	fb := s.client.From(categoriesTable).Insert(category, false, "", returnRepresentation, "")
	if err := execute(ctx, "inserting category "+category.Slug, fb, &rows); err != nil {
		return "", err
	}
	if len(rows) == 0 || rows[0].ID == "" {
		return "", fault.Remotef("inserting category %s: no id returned", category.Slug)
	}
	return rows[0].ID, nil
}

func firstProduct(op string, rows []catalog.Product) (*catalog.Product, error) {
	if len(rows) == 0 {
		return nil, fault.Remotef("%s: no row returned", op)
	}
	return &rows[0], nil
}

func (s *Store) UpsertProduct(ctx context.Context, doc catalog.ProductDocument) (*catalog.Product, error) {
	op := "upserting product " + doc.SKU
	var rows []catalog.Product
	fb := s.client.From(productsTable).Upsert(doc, "sku", returnRepresentation, "")
	if err := execute(ctx, op, fb, &rows); err != nil {
		return nil, err
	}
	return firstProduct(op, rows)
}

func (s *Store) InsertProduct(ctx context.Context, doc catalog.ProductDocument) (*catalog.Product, error) {
	op := "inserting product " + doc.SKU
	var rows []catalog.Product
	fb := s.client.From(productsTable).Insert(doc, false, "", returnRepresentation, "")
	if err := execute(ctx, op, fb, &rows); err != nil {
		return nil, err
	}
	return firstProduct(op, rows)
}

func (s *Store) UpdateProduct(ctx context.Context, id string, update catalog.ProductUpdate) (*catalog.Product, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	var rows []catalog.Product
	fb := s.client.From(productsTable).Update(update.Fields(), returnRepresentation, "").Eq("id", id)
	if err := execute(ctx, "updating product "+id, fb, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("product %s: %w", id, catalog.ErrNotFound)
	}
	return &rows[0], nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	var rows []struct {
		ID string `json:"id"`
	}
	fb := s.client.From(productsTable).Delete(returnRepresentation, "").Eq("id", id)
	if err := execute(ctx, "deleting product "+id, fb, &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (s *Store) SelectProduct(ctx context.Context, id string, fields []string) (catalog.Record, error) {
	fields, err := catalog.ValidateFields(fields)
	if err != nil {
		return nil, err
	}

	var rows []catalog.Record
	fb := s.client.From(productsTable).Select(strings.Join(fields, ","), "", false).Eq("id", id)
	if err := execute(ctx, "selecting product "+id, fb, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("product %s: %w", id, catalog.ErrNotFound)
	}
	return rows[0], nil
}

func (s *Store) SelectProducts(ctx context.Context, fields []string) ([]catalog.Record, error) {
	fields, err := catalog.ValidateFields(fields)
	if err != nil {
		return nil, err
	}

	var rows []catalog.Record
	fb := s.client.From(productsTable).Select(strings.Join(fields, ","), "", false)
	if err := execute(ctx, "selecting products", fb, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
