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


// Package supabase publishes objects to a Supabase Storage bucket.
package supabase

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	storagego "github.com/supabase-community/storage-go"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/project"
	"github.com/walteh/catalogrc/pkg/storage"
	"gitlab.com/tozd/go/errors"
)

// pageSize is the number of entries requested per list call
const pageSize = 1000

// placeholderName marks an otherwise empty folder
const placeholderName = ".emptyFolderPlaceholder"

func init() {
	storage.Register("supabase", func(ctx context.Context, settings storage.Settings) (storage.Bucket, error) {
		p, err := project.New(settings.URL, settings.Key)
		if err != nil {
			return nil, err
		}
		return New(p, settings.Bucket)
	})
}

// 🪣 Bucket is a Supabase Storage bucket
type Bucket struct {
	client *storagego.Client
	name   string

	// upload options are applied to headers shared by the whole client
	uploadMu sync.Mutex
}

var _ storage.Bucket = (*Bucket)(nil)

// 🏭 New creates a bucket client for the named bucket of project p
func New(p project.Project, name string) (*Bucket, error) {
	if name == "" {
		return nil, fault.Configurationf("storage bucket name is required")
	}
	return &Bucket{
		client: storagego.NewClient(p.Endpoint("storage/v1"), p.Key(), p.Headers()),
		name:   name,
	}, nil
}

func (b *Bucket) List(ctx context.Context, prefix string) (map[string]struct{}, error) {
	prefix = strings.Trim(prefix, "/")
	names := map[string]struct{}{}
	for offset := 0; ; offset += pageSize {
		entries, err := b.client.ListFiles(b.name, prefix, storagego.FileSearchOptions{
			Limit:  pageSize,
			Offset: offset,
		})
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("bucket", b.name).Str("prefix", prefix).Msg("list failed")
			return nil, fault.Remote(errors.Errorf("listing %s: %w", prefix, err))
		}

		for _, e := range entries {
			// folders come back without an object id
			if e.Id == "" || e.Name == "" || e.Name == placeholderName {
				continue
			}
			names[e.Name] = struct{}{}
		}
		if len(entries) < pageSize {
			return names, nil
		}
	}
}

func (b *Bucket) Upload(ctx context.Context, path string, content io.Reader, opts storage.UploadOptions) error {
	cacheControl := opts.CacheControl
	if cacheControl == "" {
		cacheControl = storage.DefaultCacheControl
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeFor(path)
	}
	upsert := opts.Upsert

	b.uploadMu.Lock()
	defer b.uploadMu.Unlock()

	_, err := b.client.UploadFile(b.name, path, content, storagego.FileOptions{
		CacheControl: &cacheControl,
		ContentType:  &contentType,
		Upsert:       &upsert,
	})
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("bucket", b.name).Str("path", path).Msg("upload failed")
		return fault.Remote(errors.Errorf("uploading %s: %w", path, err))
	}
	return nil
}

func (b *Bucket) PublicURL(ctx context.Context, path string) (string, error) {
	return b.client.GetPublicUrl(b.name, path).SignedURL, nil
}
