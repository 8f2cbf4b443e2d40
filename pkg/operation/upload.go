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
	"context"
	"strings"

	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/publish"
)

// 📤 PublishOnly publishes dir under prefix without touching the catalog
func (s *Syncer) PublishOnly(ctx context.Context, dir, prefix string) (*publish.Result, error) {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return nil, fault.Validationf("a destination prefix is required")
	}

	pub, err := s.publisher.Publish(ctx, dir, prefix)
	if err != nil {
		return nil, err
	}
	s.reportAssets(ctx, pub)
	return pub, nil
}
