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
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/walteh/catalogrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 🧠 Memory is an in-process Store used for dry runs and tests
type Memory struct {
	mu         sync.Mutex
	seq        int
	categories map[string]Category
	products   map[string]Product
	now        func() time.Time
}

var _ Store = (*Memory)(nil)

// 🏭 NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		categories: make(map[string]Category),
		products:   make(map[string]Product),
		now:        time.Now,
	}
}

func (m *Memory) nextID() string {
	m.seq++
	return strconv.Itoa(m.seq)
}

func (m *Memory) SelectCategoryID(ctx context.Context, slug string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, c := range m.categories {
		if c.Slug == slug {
			return id, nil
		}
	}
	return "", errors.Errorf("category %s: %w", slug, ErrNotFound)
}

func (m *Memory) InsertCategory(ctx context.Context, category Category) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.Slug == category.Slug {
			return "", fault.Remotef("category slug %s already exists", category.Slug)
		}
	}
	category.ID = m.nextID()
	m.categories[category.ID] = category
	return category.ID, nil
}

func (m *Memory) findBySKU(sku string) (Product, bool) {
	for _, p := range m.products {
		if p.SKU == sku {
			return p, true
		}
	}
	return Product{}, false
}

func (m *Memory) UpsertProduct(ctx context.Context, doc ProductDocument) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	p, ok := m.findBySKU(doc.SKU)
	if !ok {
		p = Product{ID: m.nextID(), CreatedAt: now}
	}
	p.ProductDocument = doc
	p.UpdatedAt = now
	m.products[p.ID] = p
	return &p, nil
}

func (m *Memory) InsertProduct(ctx context.Context, doc ProductDocument) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.findBySKU(doc.SKU); ok {
		return nil, fault.Remotef("product sku %s already exists", doc.SKU)
	}
	now := m.now()
	p := Product{ID: m.nextID(), ProductDocument: doc, CreatedAt: now, UpdatedAt: now}
	m.products[p.ID] = p
	return &p, nil
}

func (m *Memory) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*Product, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return nil, errors.Errorf("product %s: %w", id, ErrNotFound)
	}
	update.Apply(&p.ProductDocument)
	p.UpdatedAt = m.now()
	m.products[id] = p
	return &p, nil
}

func (m *Memory) DeleteProduct(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return false, nil
	}
	delete(m.products, id)
	return true, nil
}

func (m *Memory) SelectProduct(ctx context.Context, id string, fields []string) (Record, error) {
	fields, err := ValidateFields(fields)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	p, ok := m.products[id]
	m.mu.Unlock()
	if !ok {
		return nil, errors.Errorf("product %s: %w", id, ErrNotFound)
	}
	return Project(p, fields)
}

func (m *Memory) SelectProducts(ctx context.Context, fields []string) ([]Record, error) {
	fields, err := ValidateFields(fields)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	products := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	m.mu.Unlock()

	sort.Slice(products, func(i, j int) bool {
		a, _ := strconv.Atoi(products[i].ID)
		b, _ := strconv.Atoi(products[j].ID)
		return a < b
	})

	records := make([]Record, 0, len(products))
	for _, p := range products {
		rec, err := Project(p, fields)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Products returns a copy of every stored product, ordered by id
func (m *Memory) Products() []Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out
}

// ProductBySKU returns the stored product with sku
func (m *Memory) ProductBySKU(sku string) (Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findBySKU(sku)
}
