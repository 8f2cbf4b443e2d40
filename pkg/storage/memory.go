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

package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("memory", func(ctx context.Context, settings Settings) (Bucket, error) {
		return NewMemory(settings.PublicBaseURL), nil
	})
}

// 🧠 Memory is an in-process bucket used for dry runs and tests
type Memory struct {
	mu      sync.Mutex
	baseURL string
	objects map[string][]byte
	opts    map[string]UploadOptions
	uploads int
}

var _ Bucket = (*Memory)(nil)

// 🏭 NewMemory creates an empty bucket whose public URLs start with baseURL
func NewMemory(baseURL string) *Memory {
	if baseURL == "" {
		baseURL = "memory://bucket"
	}
	return &Memory{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		objects: make(map[string][]byte),
		opts:    make(map[string]UploadOptions),
	}
}

func (m *Memory) List(ctx context.Context, prefix string) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix = strings.Trim(prefix, "/")
	names := map[string]struct{}{}
	for p := range m.objects {
		if path.Dir(p) == prefix || (prefix == "" && !strings.Contains(p, "/")) {
			names[path.Base(p)] = struct{}{}
		}
	}
	return names, nil
}

func (m *Memory) Upload(ctx context.Context, p string, content io.Reader, opts UploadOptions) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return errors.Errorf("reading content: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.objects[p]; exists && !opts.Upsert {
		return errors.Errorf("object %s already exists", p)
	}
	m.objects[p] = data
	m.opts[p] = opts
	m.uploads++
	return nil
}

func (m *Memory) PublicURL(ctx context.Context, p string) (string, error) {
	return m.baseURL + "/" + strings.TrimPrefix(p, "/"), nil
}

// Uploads returns how many uploads were performed
func (m *Memory) Uploads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploads
}

// Object returns the stored content and options of path
func (m *Memory) Object(p string) ([]byte, UploadOptions, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[p]
	return data, m.opts[p], ok
}
