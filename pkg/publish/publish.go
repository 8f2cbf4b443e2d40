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

// Package publish uploads a mockup directory to object storage, skipping
// objects that are already there.
package publish

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/mockup"
	"github.com/walteh/catalogrc/pkg/storage"
	"gitlab.com/tozd/go/errors"
)

// 📌 Status says how a file reached storage
type Status string

const (
	StatusUploaded Status = "uploaded"
	StatusReused   Status = "reused"
)

// 📄 Record is a published file and its public URL
type Record struct {
	Filename string
	URL      string
	Status   Status
}

// ❌ Failure is a file that could not be published
type Failure struct {
	Filename string
	Err      error
}

// 📦 Result lists published files in directory listing order
type Result struct {
	Records  []Record
	Failures []Failure
}

// Uploaded counts files written during this run
func (r *Result) Uploaded() int { return r.count(StatusUploaded) }

// Reused counts files that were already in storage
func (r *Result) Reused() int { return r.count(StatusReused) }

func (r *Result) count(s Status) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == s {
			n++
		}
	}
	return n
}

// Assets converts the records for classification
func (r *Result) Assets() []mockup.Asset {
	assets := make([]mockup.Asset, 0, len(r.Records))
	for _, rec := range r.Records {
		assets = append(assets, mockup.Asset{Filename: rec.Filename, URL: rec.URL})
	}
	return assets
}

// ⚙️ Options tune a Publisher
type Options struct {
	CacheControl string   // defaults to storage.DefaultCacheControl
	Ignore       []string // extra doublestar patterns of files never published
}

// 🚀 Publisher uploads mockup directories to a bucket
type Publisher struct {
	bucket storage.Bucket
	opts   Options
}

// 🏭 New creates a publisher for bucket
func New(bucket storage.Bucket, opts Options) *Publisher {
	if opts.CacheControl == "" {
		opts.CacheControl = storage.DefaultCacheControl
	}
	return &Publisher{bucket: bucket, opts: opts}
}

func (p *Publisher) ignored(name string) bool {
	if mockup.IsArchive(name) {
		return true
	}
	for _, pattern := range p.opts.Ignore {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Eligible lists the files of dir that would be published, in listing order
func (p *Publisher) Eligible(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fault.Validation(errors.Errorf("reading mockup folder %s: %w", dir, err))
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || p.ignored(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func normalizeURL(u string) string {
	return strings.TrimSuffix(u, "?")
}

// 📤 Publish publishes every eligible file of dir under prefix.
// A directory with no eligible files returns an empty result without touching
// storage. Single file failures are recorded in the result and do not stop the
// remaining files.
func (p *Publisher) Publish(ctx context.Context, dir, prefix string) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("dir", dir).Str("prefix", prefix).Logger()

	names, err := p.Eligible(dir)
	if err != nil {
		return nil, err
	}

	result := &Result{Records: []Record{}}
	if len(names) == 0 {
		logger.Debug().Msg("no files to publish")
		return result, nil
	}

	existing, err := p.bucket.List(ctx, prefix)
	if err != nil {
		logger.Warn().Err(err).Msg("listing existing objects failed, uploading everything")
		existing = map[string]struct{}{}
	}

	for _, name := range names {
		objectPath := storage.Join(prefix, name)
		status := StatusReused

		if _, ok := existing[name]; !ok {
			if err := p.upload(ctx, filepath.Join(dir, name), objectPath); err != nil {
				logger.Warn().Err(err).Str("file", name).Msg("upload failed")
				result.Failures = append(result.Failures, Failure{Filename: name, Err: err})
				continue
			}
			status = StatusUploaded
		}

		u, err := p.bucket.PublicURL(ctx, objectPath)
		if err != nil {
			err = fault.Remote(errors.Errorf("getting public url of %s: %w", objectPath, err))
			result.Failures = append(result.Failures, Failure{Filename: name, Err: err})
			continue
		}

		logger.Debug().Str("file", name).Str("status", string(status)).Msg("published")
		result.Records = append(result.Records, Record{Filename: name, URL: normalizeURL(u), Status: status})
	}

	return result, nil
}

func (p *Publisher) upload(ctx context.Context, localPath, objectPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return errors.Errorf("opening %s: %w", localPath, err)
	}
	defer f.Close()

	err = p.bucket.Upload(ctx, objectPath, f, storage.UploadOptions{
		CacheControl: p.opts.CacheControl,
		ContentType:  storage.ContentTypeFor(localPath),
		Upsert:       true,
	})
	if err != nil {
		return fault.Remote(errors.Errorf("uploading %s: %w", objectPath, err))
	}
	return nil
}
