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

// Package postgres is a catalog store that talks to the catalog database
// directly, for self hosted deployments without a PostgREST gateway.
package postgres

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Querier is the subset of pgxpool.Pool used by the store
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// 🗄️ Store implements catalog.Store over a Postgres connection pool
type Store struct {
	db Querier
}

var _ catalog.Store = (*Store)(nil)

// 🏭 New creates a store over db
func New(db Querier) *Store {
	return &Store{db: db}
}

// 🔗 Open connects to databaseURL and verifies the connection
func Open(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fault.Configurationf("DATABASE_URL is required for the postgres catalog")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fault.Configuration(errors.Errorf("opening database pool: %w", err))
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fault.Remote(errors.Errorf("pinging database: %w", err))
	}
	zerolog.Ctx(ctx).Debug().Msg("database connection established")
	return pool, nil
}

// jsonColumns are stored as jsonb and sent as encoded text
var jsonColumns = map[string]bool{"images": true, "variants": true, "tags": true}

// writeColumns is the column order of product inserts
var writeColumns = []string{
	"name", "description", "price", "compare_at_price", "sku",
	"inventory_quantity", "category_id", "images", "is_active", "vendor",
	"product_type", "material", "fabric_details", "fit_info", "care_instructions",
	"variants", "tags",
}

func placeholder(column string, n int) string {
	p := "$" + strconv.Itoa(n)
	switch {
	case jsonColumns[column]:
		return p + "::jsonb"
	case column == "category_id":
		return "NULLIF(" + p + ", '')::uuid"
	}
	return p
}

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.Errorf("encoding column: %w", err)
	}
	return string(data), nil
}

func documentArgs(doc catalog.ProductDocument) ([]any, error) {
	images, err := encodeJSON(nonNil(doc.Images))
	if err != nil {
		return nil, err
	}
	variants, err := encodeJSON(doc.Variants)
	if err != nil {
		return nil, err
	}
	tags, err := encodeJSON(nonNil(doc.Tags))
	if err != nil {
		return nil, err
	}
	return []any{
		doc.Name, doc.Description, doc.Price, doc.CompareAtPrice, doc.SKU,
		doc.InventoryQuantity, doc.CategoryID, images, doc.IsActive, doc.Vendor,
		doc.ProductType, doc.Material, doc.FabricDetails, doc.FitInfo, doc.CareInstructions,
		variants, tags,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// insertSQL builds the product insert, optionally upserting on sku
func insertSQL(upsert bool) string {
	values := make([]string, len(writeColumns))
	for i, c := range writeColumns {
		values[i] = placeholder(c, i+1)
	}

	var b strings.Builder
	b.WriteString("INSERT INTO products (")
	b.WriteString(strings.Join(writeColumns, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(values, ", "))
	b.WriteString(")")
	if upsert {
		sets := make([]string, 0, len(writeColumns))
		for _, c := range writeColumns {
			if c == "sku" {
				continue
			}
			sets = append(sets, c+" = EXCLUDED."+c)
		}
		sets = append(sets, "updated_at = now()")
		b.WriteString(" ON CONFLICT (sku) DO UPDATE SET ")
		b.WriteString(strings.Join(sets, ", "))
	}
	b.WriteString(" RETURNING to_jsonb(products.*)")
	return b.String()
}

// updateSQL builds a partial update for the given column values
func updateSQL(id string, fields map[string]any) (string, []any, error) {
	columns := make([]string, 0, len(fields))
	for c := range fields {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	sets := make([]string, 0, len(columns)+1)
	args := make([]any, 0, len(columns)+1)
	for i, c := range columns {
		v := fields[c]
		if jsonColumns[c] {
			enc, err := encodeJSON(v)
			if err != nil {
				return "", nil, err
			}
			v = enc
		}
		sets = append(sets, c+" = "+placeholder(c, i+1))
		args = append(args, v)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	sql := "UPDATE products SET " + strings.Join(sets, ", ") +
		" WHERE id::text = $" + strconv.Itoa(len(args)) +
		" RETURNING to_jsonb(products.*)"
	return sql, args, nil
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var data []byte
	if err := row.Scan(&data); err != nil {
		return nil, err
	}
	var p catalog.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Errorf("decoding product row: %w", err)
	}
	return &p, nil
}

func (s *Store) SelectCategoryID(ctx context.Context, slug string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `SELECT id::text FROM categories WHERE slug = $1 LIMIT 1`, slug).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", errors.Errorf("category %s: %w", slug, catalog.ErrNotFound)
	}
	if err != nil {
		return "", fault.Remote(errors.Errorf("selecting category %s: %w", slug, err))
	}
	return id, nil
}

func (s *Store) InsertCategory(ctx context.Context, category catalog.Category) (string, error) {
	var id string
	err := s.db.QueryRow(ctx,
		`INSERT INTO categories (name, slug, description) VALUES ($1, $2, NULLIF($3, '')) RETURNING id::text`,
		category.Name, category.Slug, category.Description,
	).Scan(&id)
	if err != nil {
		return "", fault.Remote(errors.Errorf("inserting category %s: %w", category.Slug, err))
	}
	return id, nil
}

func (s *Store) writeProduct(ctx context.Context, upsert bool, doc catalog.ProductDocument) (*catalog.Product, error) {
	args, err := documentArgs(doc)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(s.db.QueryRow(ctx, insertSQL(upsert), args...))
	if err != nil {
		return nil, fault.Remote(err)
	}
	return p, nil
}

func (s *Store) UpsertProduct(ctx context.Context, doc catalog.ProductDocument) (*catalog.Product, error) {
	p, err := s.writeProduct(ctx, true, doc)
	if err != nil {
		return nil, errors.Errorf("upserting product %s: %w", doc.SKU, err)
	}
	return p, nil
}

func (s *Store) InsertProduct(ctx context.Context, doc catalog.ProductDocument) (*catalog.Product, error) {
	p, err := s.writeProduct(ctx, false, doc)
	if err != nil {
		return nil, errors.Errorf("inserting product %s: %w", doc.SKU, err)
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id string, update catalog.ProductUpdate) (*catalog.Product, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	sql, args, err := updateSQL(id, update.Fields())
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(s.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Errorf("product %s: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fault.Remote(errors.Errorf("updating product %s: %w", id, err))
	}
	return p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id::text = $1`, id)
	if err != nil {
		return false, fault.Remote(errors.Errorf("deleting product %s: %w", id, err))
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) SelectProduct(ctx context.Context, id string, fields []string) (catalog.Record, error) {
	fields, err := catalog.ValidateFields(fields)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(s.db.QueryRow(ctx, `SELECT to_jsonb(p) FROM products p WHERE p.id::text = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Errorf("product %s: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fault.Remote(errors.Errorf("selecting product %s: %w", id, err))
	}
	return catalog.Project(*p, fields)
}

func (s *Store) SelectProducts(ctx context.Context, fields []string) ([]catalog.Record, error) {
	fields, err := catalog.ValidateFields(fields)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, `SELECT to_jsonb(p) FROM products p ORDER BY p.created_at`)
	if err != nil {
		return nil, fault.Remote(errors.Errorf("selecting products: %w", err))
	}
	defer rows.Close()

	var out []catalog.Record
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fault.Remote(errors.Errorf("reading product row: %w", err))
		}
		rec, err := catalog.Project(*p, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Remote(errors.Errorf("iterating products: %w", err))
	}
	return out, nil
}
