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
	"math"
	"regexp"
	"strconv"

	"gitlab.com/tozd/go/errors"
)

// filenamePattern matches <view>_<viewNumber>_c_<colorId>.<ext>
var filenamePattern = regexp.MustCompile(`(?i)^(\w+)_(\d+)_c_(\d+)\.(jpg|png)$`)

// 🏷️ Metadata is the structured form of a mockup filename
type Metadata struct {
	View       string // view token, original case preserved
	ViewNumber int    // view index within the same view
	ColorID    string // print-vendor color code, kept as a string
}

// 🔍 ParseFilename extracts metadata from a mockup filename.
// ok is false when the name does not follow the mockup pattern. A view number
// beyond the int range saturates to math.MaxInt and orders after its siblings.
func ParseFilename(filename string) (meta Metadata, ok bool) {
	match := filenamePattern.FindStringSubmatch(filename)
	if match == nil {
		return Metadata{}, false
	}

	viewNumber, err := strconv.Atoi(match[2])
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return Metadata{}, false
		}
		viewNumber = math.MaxInt
	}

	return Metadata{
		View:       match[1],
		ViewNumber: viewNumber,
		ColorID:    match[3],
	}, true
}
