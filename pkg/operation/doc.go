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
Package operation runs the catalog pipeline against a store and a bucket.

🎯 Purpose:
- Syncs every configured product into the catalog
- Deactivates or deletes catalog products no longer configured
- Previews mockup folders without any network access
- Publishes a single folder on demand

🔄 Flow of one product:
1. Pending: the config entry is merged and validated
2. MockupsPublished: the folder is published, reusing stored objects
3. GalleriesBuilt: published files are classified and grouped by color
4. VariantsAssembled: colors, sizes and prices form the document
5. Upserted: the document is written keyed by sku

A product that fails any step is Aborted and the run moves on. Inactive
products, and products whose category could not be resolved, are Skipped.

🔍 Example:

	syncer, err := operation.New(operation.Options{
		Store:    store,
		Bucket:   bucket,
		Reporter: reporter,
	})
	result, err := syncer.Sync(ctx, cfg, operation.Filter{})
*/
package operation
