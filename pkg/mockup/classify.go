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
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

const (
	// DefaultImage is the vendor's preview image, never part of a gallery
	DefaultImage = "default.jpg"

	sizeChartMarker = "size_chart"
)

// 🗃️ ArchivePatterns are matched against the lower-cased filename
var ArchivePatterns = []string{
	"*.{zip,rar,7z,tar,gz,tgz,bz2,xz}",
}

// 📎 Asset is a file in a mockup directory and the URL it is served from
type Asset struct {
	Filename string
	URL      string
}

// 🖼️ Mockup is an asset whose filename parsed as a mockup
type Mockup struct {
	Metadata
	Asset
}

// 📦 Classification is the result of sorting a directory listing into buckets
type Classification struct {
	// Mockups that matched the filename pattern, in input order
	Mockups []Mockup
	// SizeChart is the last size chart seen, nil when none
	SizeChart *Asset
	// SizeCharts lists every file that looked like a size chart
	SizeCharts []Asset
	// Ignored holds the default image and archives
	Ignored []string
	// Unmatched holds files that were none of the above
	Unmatched []string
}

// 🗃️ IsArchive reports whether filename has an archive extension
func IsArchive(filename string) bool {
	lower := strings.ToLower(filename)
	for _, pattern := range ArchivePatterns {
		if matched, err := doublestar.Match(pattern, lower); err == nil && matched {
			return true
		}
	}
	return false
}

// 📏 IsSizeChart reports whether filename names a size chart
func IsSizeChart(filename string) bool {
	return strings.Contains(strings.ToLower(filename), sizeChartMarker)
}

// 🔍 Classify sorts assets into mockups, size chart and ignorable files.
// Files that fail to parse are dropped and only logged.
func Classify(ctx context.Context, assets []Asset) Classification {
	logger := zerolog.Ctx(ctx)
	var out Classification

	for _, asset := range assets {
		switch {
		case asset.Filename == DefaultImage || IsArchive(asset.Filename):
			out.Ignored = append(out.Ignored, asset.Filename)
		case IsSizeChart(asset.Filename):
			chart := asset
			out.SizeChart = &chart
			out.SizeCharts = append(out.SizeCharts, asset)
		default:
			meta, ok := ParseFilename(asset.Filename)
			if !ok {
				logger.Debug().Str("file", asset.Filename).Msg("ignoring file that is not a mockup")
				out.Unmatched = append(out.Unmatched, asset.Filename)
				continue
			}
			out.Mockups = append(out.Mockups, Mockup{Metadata: meta, Asset: asset})
		}
	}

	return out
}

// 🔧 AssetsFromNames wraps plain filenames, deriving each URL from base
func AssetsFromNames(base string, names []string) []Asset {
	assets := make([]Asset, 0, len(names))
	for _, name := range names {
		url := name
		if base != "" {
			url = strings.TrimSuffix(base, "/") + "/" + name
		}
		assets = append(assets, Asset{Filename: name, URL: url})
	}
	return assets
}
