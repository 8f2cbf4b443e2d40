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

/*
Package mockup turns a flat directory of print-vendor mockup files into ordered
per-color galleries.

🎯 Filename pattern:

	<view>_<viewNumber>_c_<colorId>.<jpg|png>
	Front_1_c_1.jpg  -> view=Front viewNumber=1 colorId=1
	Back_2_c_10.PNG  -> view=Back  viewNumber=2 colorId=10

🔄 Flow:
 1. Classify splits files into mockups, the size chart and ignorable files
 2. BuildGalleries groups mockups by color and orders them front, back, others
 3. The size chart (if any) is appended last to every color
*/
package mockup
