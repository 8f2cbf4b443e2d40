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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/catalogrc/pkg/catalog"
	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/storage"
)

func TestPreview(t *testing.T) {
	ctx := testContext(t)
	store := &mockStore{}
	bucket := storage.NewMemory("")

	cfg := catalogConfig(map[string]*config.Category{
		"t-shirts": {Name: "T-Shirts", Products: []config.ProductFields{
			product("Good", "TEE-1", mockupDir(t, "Back_1_c_3.jpg", "Front_1_c_3.jpg", "Front_1_c_1.jpg", "size_chart.jpg", "odd.jpg")),
			product("Empty", "TEE-2", mockupDir(t)),
			product("Charts", "TEE-3", mockupDir(t, "Front_1_c_1.jpg", "size_chart.jpg", "size_chart_2.jpg")),
			product("Plain", "TEE-4", mockupDir(t, "photo.jpg")),
			{Name: ptr("Broken"), SKU: ptr("TEE-5")},
		}},
	})

	previews, err := newSyncer(t, store, bucket).Preview(ctx, cfg, Filter{})
	require.NoError(t, err)
	require.Len(t, previews, 5)

	good := previews[0]
	assert.True(t, good.OK(), good.Problem)
	assert.Equal(t, 5, good.Files)
	assert.Equal(t, 3, good.Mockups)
	assert.Equal(t, []string{"1", "3"}, good.Colors)
	assert.Equal(t, []string{"tee-1/Front_1_c_1.jpg", "tee-1/size_chart.jpg"}, good.Primary)
	assert.Equal(t, "size_chart.jpg", good.SizeChart)
	assert.Equal(t, []string{"odd.jpg"}, good.Unmatched)

	assert.Equal(t, "nothing to publish", previews[1].Problem)
	assert.Contains(t, previews[2].Problem, "multiple size charts")
	assert.Equal(t, "no color mockups", previews[3].Problem)
	assert.Equal(t, "TEE-5", previews[4].SKU)
	assert.Contains(t, previews[4].Problem, "mockup_folder")

	store.AssertNotCalled(t, "SelectCategoryID", mock.Anything, mock.Anything)
	assert.Equal(t, 0, bucket.Uploads())
}

func TestPreviewFilter(t *testing.T) {
	cfg := catalogConfig(map[string]*config.Category{
		"hoodies":  {Name: "Hoodies", Products: []config.ProductFields{product("Zip", "HOOD-1", mockupDir(t, "Front_1_c_1.jpg"))}},
		"t-shirts": {Name: "T-Shirts", Products: []config.ProductFields{product("Tee", "TEE-1", mockupDir(t, "Front_1_c_1.jpg"))}},
	})

	previews, err := newSyncer(t, catalog.NewMemory(), storage.NewMemory("")).Preview(testContext(t), cfg, Filter{SKUs: []string{"tee-1"}})
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, "TEE-1", previews[0].SKU)
}

func TestPublishOnly(t *testing.T) {
	ctx := testContext(t)
	bucket := storage.NewMemory("https://cdn.example.com")
	s := newSyncer(t, catalog.NewMemory(), bucket)
	dir := mockupDir(t, "Front_1_c_1.jpg", "bundle.zip")

	pub, err := s.PublishOnly(ctx, dir, "/extras/")
	require.NoError(t, err)
	require.Len(t, pub.Records, 1)
	assert.Equal(t, "https://cdn.example.com/extras/Front_1_c_1.jpg", pub.Records[0].URL)

	_, _, ok := bucket.Object("extras/Front_1_c_1.jpg")
	assert.True(t, ok)

	_, err = s.PublishOnly(ctx, dir, "/")
	require.Error(t, err)
	assert.Equal(t, "validation", fault.Kind(err))
}
