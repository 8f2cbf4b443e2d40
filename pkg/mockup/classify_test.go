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

package mockup

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestClassify(t *testing.T) {
	ctx := testContext(t)

	t.Run("separates_buckets", func(t *testing.T) {
		got := Classify(ctx, AssetsFromNames("https://cdn/x", []string{
			"Front_1_c_1.jpg",
			"default.jpg",
			"Size_Chart.png",
			"mockups.ZIP",
			"notes.txt",
			"Back_1_c_1.jpg",
		}))

		require.Len(t, got.Mockups, 2)
		assert.Equal(t, "Front_1_c_1.jpg", got.Mockups[0].Filename)
		assert.Equal(t, "https://cdn/x/Front_1_c_1.jpg", got.Mockups[0].URL)
		assert.Equal(t, "Back", got.Mockups[1].View)

		require.NotNil(t, got.SizeChart)
		assert.Equal(t, "Size_Chart.png", got.SizeChart.Filename)
		assert.Len(t, got.SizeCharts, 1)

		assert.Equal(t, []string{"default.jpg", "mockups.ZIP"}, got.Ignored)
		assert.Equal(t, []string{"notes.txt"}, got.Unmatched)
	})

	t.Run("last_size_chart_wins", func(t *testing.T) {
		got := Classify(ctx, AssetsFromNames("", []string{"size_chart.jpg", "size_chart_v2.jpg"}))
		require.NotNil(t, got.SizeChart)
		assert.Equal(t, "size_chart_v2.jpg", got.SizeChart.Filename)
		assert.Len(t, got.SizeCharts, 2)
	})

	t.Run("default_image_is_exact_match", func(t *testing.T) {
		got := Classify(ctx, AssetsFromNames("", []string{"Default.jpg"}))
		assert.Empty(t, got.Ignored)
		assert.Equal(t, []string{"Default.jpg"}, got.Unmatched)
	})

	t.Run("empty_listing", func(t *testing.T) {
		got := Classify(ctx, nil)
		assert.Empty(t, got.Mockups)
		assert.Nil(t, got.SizeChart)
	})
}

func TestIsArchive(t *testing.T) {
	for name, want := range map[string]bool{
		"a.zip":     true,
		"a.tar.gz":  true,
		"A.RAR":     true,
		"a.7z":      true,
		"a.jpg":     false,
		"zip.png":   false,
		"a.zipper":  false,
		"archive":   false,
		"x.tgz":     true,
		"x.tar.bz2": true,
	} {
		assert.Equal(t, want, IsArchive(name), name)
	}
}
