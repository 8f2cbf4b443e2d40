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
Package config loads the product catalog configuration.

🎯 Purpose:
- Reads the catalog description from JSON, YAML or HCL
- Validates categories and colors up front
- Merges each product over its category defaults

🔄 Flow:
1. Load picks a parser by file extension
2. The parser decodes into Config
3. Validate checks category slugs and color overrides
4. Resolve merges and validates one product at a time

⚠️ Product level problems are validation errors for that product only.
Anything wrong with the file itself is a configuration error.
*/
package config
