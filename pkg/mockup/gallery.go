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
	"sort"
	"strings"
)

const (
	// SizeChartView is the view name given to the shared size chart entry
	SizeChartView = "SizeChart"
	// SizeChartViewNumber keeps the size chart after every real view
	SizeChartViewNumber = 999
)

// 📷 Entry is one image in a color gallery
type Entry struct {
	URL        string
	View       string
	ViewNumber int
	Filename   string
}

// 🎞️ Gallery is the ordered image sequence of one color
type Gallery []Entry

// URLs returns the gallery's image URLs in order
func (g Gallery) URLs() []string {
	urls := make([]string, 0, len(g))
	for _, e := range g {
		urls = append(urls, e.URL)
	}
	return urls
}

// 🥇 ViewRank orders views: front, then back, then everything else
func ViewRank(view string) int {
	switch strings.ToLower(view) {
	case "front":
		return 0
	case "back":
		return 1
	default:
		return 2
	}
}

// less orders entries by view rank then view number. Ties fall back to the
// view name and filename so the order never depends on directory traversal.
func less(a, b Entry) bool {
	if ra, rb := ViewRank(a.View), ViewRank(b.View); ra != rb {
		return ra < rb
	}
	if a.ViewNumber != b.ViewNumber {
		return a.ViewNumber < b.ViewNumber
	}
	if va, vb := strings.ToLower(a.View), strings.ToLower(b.View); va != vb {
		return va < vb
	}
	return a.Filename < b.Filename
}

// 🏗️ BuildGalleries groups mockups by color id and orders each group.
// When sizeChart is non-nil its entry is appended to every gallery after sorting.
// Colors only appear when they have at least one mockup.
func BuildGalleries(mockups []Mockup, sizeChart *Asset) map[string]Gallery {
	galleries := make(map[string]Gallery)
	for _, m := range mockups {
		galleries[m.ColorID] = append(galleries[m.ColorID], Entry{
			URL:        m.URL,
			View:       m.View,
			ViewNumber: m.ViewNumber,
			Filename:   m.Filename,
		})
	}

	for colorID, gallery := range galleries {
		sort.SliceStable(gallery, func(i, j int) bool { return less(gallery[i], gallery[j]) })
		if sizeChart != nil {
			gallery = append(gallery, Entry{
				URL:        sizeChart.URL,
				View:       SizeChartView,
				ViewNumber: SizeChartViewNumber,
				Filename:   sizeChart.Filename,
			})
		}
		galleries[colorID] = gallery
	}

	return galleries
}

// 🔢 ColorIDs returns the gallery keys in ascending string order
func ColorIDs(galleries map[string]Gallery) []string {
	ids := make([]string, 0, len(galleries))
	for id := range galleries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
