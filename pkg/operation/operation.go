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
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/log"
	"github.com/walteh/catalogrc/pkg/publish"
	"github.com/walteh/catalogrc/pkg/storage"
	"github.com/walteh/catalogrc/pkg/variant"
	"gitlab.com/tozd/go/errors"
)

// 🚦 State is a step of the per product pipeline
type State string

const (
	StatePending           State = "pending"
	StateMockupsPublished  State = "mockups_published"
	StateGalleriesBuilt    State = "galleries_built"
	StateVariantsAssembled State = "variants_assembled"
	StateUpserted          State = "upserted"
	StateAborted           State = "aborted"
	StateSkipped           State = "skipped"
)

// 🔧 Options contains the collaborators of a Syncer
type Options struct {
	// Store is the remote catalog
	Store catalog.Store
	// Bucket receives the mockup images
	Bucket storage.Bucket
	// Colors is the color table, variant.DefaultColors when nil
	Colors variant.Table
	// Reporter prints progress, discarded when nil
	Reporter *log.Reporter
	// Publish tunes the asset publisher
	Publish publish.Options
}

// 🎮 Syncer runs catalog operations
type Syncer struct {
	store     catalog.Store
	bucket    storage.Bucket
	colors    variant.Table
	reporter  *log.Reporter
	publisher *publish.Publisher
}

// 🏭 New creates a syncer with the given options
func New(opts Options) (*Syncer, error) {
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.Bucket == nil {
		return nil, errors.Errorf("bucket is required")
	}
	if opts.Colors == nil {
		opts.Colors = variant.DefaultColors
	}
	if opts.Reporter == nil {
		opts.Reporter = log.New(io.Discard, zerolog.Nop())
	}
	return &Syncer{
		store:     opts.Store,
		bucket:    opts.Bucket,
		colors:    opts.Colors,
		reporter:  opts.Reporter,
		publisher: publish.New(opts.Bucket, opts.Publish),
	}, nil
}

// 🔎 Filter narrows a run to one category and/or a set of skus
type Filter struct {
	Category string
	SKUs     []string
}

func (f Filter) matchCategory(slug string) bool {
	return f.Category == "" || f.Category == slug
}

func (f Filter) matchSKU(sku string) bool {
	if len(f.SKUs) == 0 {
		return true
	}
	for _, s := range f.SKUs {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(sku)) {
			return true
		}
	}
	return false
}

// 📋 ProductResult is the outcome of one product
type ProductResult struct {
	Category  string
	SKU       string
	Name      string
	State     State // final state: upserted, aborted or skipped
	Reached   State // furthest pipeline step completed
	Reason    string
	Err       error
	ProductID string
	Colors    int
	Uploaded  int
	Reused    int
	Failed    int
}

// 📊 Result is the outcome of a sync run
type Result struct {
	Products []ProductResult
}

// Count returns how many products ended in state
func (r *Result) Count(state State) int {
	n := 0
	for _, p := range r.Products {
		if p.State == state {
			n++
		}
	}
	return n
}

// HasAborted reports whether any product was aborted
func (r *Result) HasAborted() bool {
	return r.Count(StateAborted) > 0
}

// Uploaded returns the number of files uploaded during the run
func (r *Result) Uploaded() int {
	n := 0
	for _, p := range r.Products {
		n += p.Uploaded
	}
	return n
}
