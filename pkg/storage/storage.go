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

// Package storage defines the object storage contract used to publish mockups.
package storage

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/walteh/catalogrc/pkg/fault"
)

// DefaultCacheControl is the cache lifetime in seconds sent with uploads
const DefaultCacheControl = "3600"

// 📤 UploadOptions tune a single upload
type UploadOptions struct {
	CacheControl string // max-age in seconds
	ContentType  string
	Upsert       bool // overwrite when the object exists
}

// 🪣 Bucket is a remote object store addressed by slash separated paths
type Bucket interface {
	// List returns the filenames stored directly under prefix
	List(ctx context.Context, prefix string) (map[string]struct{}, error)
	// Upload writes content to path
	Upload(ctx context.Context, path string, content io.Reader, opts UploadOptions) error
	// PublicURL returns the canonical public URL of path
	PublicURL(ctx context.Context, path string) (string, error)
}

// 🏭 Factory creates a bucket from environment derived settings
type Factory func(ctx context.Context, settings Settings) (Bucket, error)

// ⚙️ Settings carries the backend specific connection values
type Settings struct {
	URL           string // service endpoint
	Key           string // service credential
	Bucket        string // bucket name
	LocalDir      string // root directory of the local backend
	PublicBaseURL string // base of public URLs for the local backend
}

var (
	// 🗺️ factories maps backend names to factories
	factories = map[string]Factory{}
)

// 📝 Register registers a backend factory
func Register(name string, factory Factory) {
	factories[name] = factory
}

// Backends returns the registered backend names in sorted order
func Backends() []string {
	names := make([]string, 0, len(factories))
	for k := range factories {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// 🎯 Open creates the bucket for the named backend
func Open(ctx context.Context, name string, settings Settings) (Bucket, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fault.Configurationf("storage backend %s not found, options: %s", name, strings.Join(Backends(), ", "))
	}
	return factory(ctx, settings)
}

// 🔗 Join builds an object path from a prefix and a filename
func Join(prefix, filename string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return filename
	}
	return prefix + "/" + filename
}

// 🖼️ ContentTypeFor guesses the content type of a mockup file from its extension
func ContentTypeFor(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
