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

// Package local stores published mockups in a directory on disk, for dry runs
// and for catalogs served by a plain static file server.
package local

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/storage"
	"gitlab.com/tozd/go/errors"
)

func init() {
	storage.Register("local", func(ctx context.Context, settings storage.Settings) (storage.Bucket, error) {
		if settings.LocalDir == "" {
			return nil, fault.Configurationf("STORAGE_LOCAL_DIR is required for the local storage backend")
		}
		return New(settings.LocalDir, settings.PublicBaseURL)
	})
}

// 💾 Bucket writes objects beneath a base directory
type Bucket struct {
	baseDir string
	baseURL string
}

var _ storage.Bucket = (*Bucket)(nil)

// 🏭 New creates a local bucket rooted at baseDir. Public URLs start with
// baseURL, or with a file:// URL of baseDir when baseURL is empty.
func New(baseDir, baseURL string) (*Bucket, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.Errorf("getting absolute path: %w", err)
	}
	if baseURL == "" {
		baseURL = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}
	return &Bucket{
		baseDir: abs,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// 🔒 getAbsPath returns the absolute path of an object path
func (b *Bucket) getAbsPath(p string) (string, error) {
	abs := filepath.Join(b.baseDir, filepath.FromSlash(p))
	if abs != b.baseDir && !strings.HasPrefix(abs, b.baseDir+string(filepath.Separator)) {
		return "", errors.Errorf("path %s escapes the bucket", p)
	}
	return abs, nil
}

func (b *Bucket) List(ctx context.Context, prefix string) (map[string]struct{}, error) {
	dir, err := b.getAbsPath(prefix)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, fault.Remote(errors.Errorf("reading directory: %w", err))
	}

	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		names[e.Name()] = struct{}{}
	}
	return names, nil
}

func (b *Bucket) Upload(ctx context.Context, p string, content io.Reader, opts storage.UploadOptions) error {
	absPath, err := b.getAbsPath(p)
	if err != nil {
		return err
	}

	if !opts.Upsert {
		if _, err := os.Stat(absPath); err == nil {
			return fault.Remotef("object %s already exists", p)
		}
	}

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fault.Remote(errors.Errorf("creating parent directories: %w", err))
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Msg("writing object")
	return b.writeFileAtomic(absPath, content)
}

func (b *Bucket) writeFileAtomic(absPath string, content io.Reader) error {
	tempPath := absPath + ".tmp"

	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fault.Remote(errors.Errorf("creating temp file: %w", err))
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fault.Remote(errors.Errorf("writing temp file: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fault.Remote(errors.Errorf("closing temp file: %w", err))
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return fault.Remote(errors.Errorf("renaming temp file: %w", err))
	}
	return nil
}

func (b *Bucket) PublicURL(ctx context.Context, p string) (string, error) {
	if _, err := b.getAbsPath(p); err != nil {
		return "", err
	}
	return b.baseURL + "/" + strings.TrimPrefix(p, "/"), nil
}
