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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/catalogrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "valid_json",
			filename: "products.json",
			config: `{
				"categories": {
					"t-shirts": {
						"name": "T-Shirts",
						"description": "Soft cotton tees",
						"defaults": {"vendor": "Qikink", "variants": {"sizes": ["S", "M", "L"]}},
						"products": [
							{"name": "Classic Tee", "sku": "TEE-001", "mockup_folder": "mockups/classic", "base_price": 499}
						]
					}
				}
			}`,
			check: func(t *testing.T, cfg *Config) {
				require.Contains(t, cfg.Categories, "t-shirts")
				cat := cfg.Categories["t-shirts"]
				assert.Equal(t, "T-Shirts", cat.Name)
				require.Len(t, cat.Products, 1)
				assert.Equal(t, "TEE-001", *cat.Products[0].SKU)
				require.NotNil(t, cat.Defaults)
				assert.Equal(t, "Qikink", *cat.Defaults.Vendor)
			},
		},
		{
			name:     "valid_yaml",
			filename: "products.yaml",
			config: `
mockup_root: assets
colors:
  "99":
    name: Sand
    hex: "#c2b280"
categories:
  hoodies:
    name: Hoodies
    products:
      - name: Zip Hoodie
        sku: HOOD-1
        mockup_folder: zip
        base_price: 999
        active: false
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "assets", cfg.MockupRoot)
				assert.Equal(t, Color{Name: "Sand", Hex: "#c2b280"}, cfg.Colors["99"])
				p := cfg.Categories["hoodies"].Products[0]
				require.NotNil(t, p.Active)
				assert.False(t, *p.Active)
				assert.Equal(t, filepath.Join(filepath.Dir(cfg.Location()), "assets"), cfg.MockupBase())
			},
		},
		{
			name:     "valid_hcl",
			filename: "products.hcl",
			config: `
color "99" {
  name = "Sand"
  hex  = "#c2b280"
}

category "t-shirts" {
  name = "T-Shirts"

  defaults {
    vendor = "Qikink"
    variants {
      sizes = ["S", "M"]
    }
  }

  product {
    name          = "Classic Tee"
    sku           = "TEE-001"
    mockup_folder = "classic"
    base_price    = 499
    tags          = ["cotton"]
    variants {
      sizes         = ["S", "M"]
      price_by_size = { S = 499, M = 549 }
    }
  }
}
`,
			check: func(t *testing.T, cfg *Config) {
				cat := cfg.Categories["t-shirts"]
				require.NotNil(t, cat)
				require.Len(t, cat.Products, 1)
				p := cat.Products[0]
				assert.Equal(t, "Classic Tee", *p.Name)
				assert.Equal(t, 499.0, *p.BasePrice)
				assert.Equal(t, []string{"cotton"}, p.Tags)
				require.NotNil(t, p.Variants)
				assert.Equal(t, map[string]float64{"S": 499, "M": 549}, p.Variants.PriceBySize)
				assert.Equal(t, "Qikink", *cat.Defaults.Vendor)
				assert.Equal(t, "Sand", cfg.Colors["99"].Name)
			},
		},
		{
			name:        "unknown_json_field",
			filename:    "products.json",
			config:      `{"categories": {"a": {"name": "A", "products": []}}, "bogus": true}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:     "unknown_yaml_field",
			filename: "products.yml",
			config: `
categories:
  a:
    name: A
    colour: red
`,
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "invalid_category_slug",
			filename:    "products.json",
			config:      `{"categories": {"T Shirts": {"name": "T-Shirts", "products": []}}}`,
			wantErr:     true,
			errContains: "slug must be",
		},
		{
			name:        "missing_category_name",
			filename:    "products.json",
			config:      `{"categories": {"tees": {"products": []}}}`,
			wantErr:     true,
			errContains: "name is required",
		},
		{
			name:        "no_categories",
			filename:    "products.json",
			config:      `{"categories": {}}`,
			wantErr:     true,
			errContains: "at least one category",
		},
		{
			name:        "bad_color_hex",
			filename:    "products.json",
			config:      `{"categories": {"a": {"name": "A", "products": []}}, "colors": {"5": {"name": "Teal", "hex": "teal"}}}`,
			wantErr:     true,
			errContains: "not a #rgb",
		},
		{
			name:        "duplicate_hcl_category",
			filename:    "products.hcl",
			config:      "category \"a\" {\n  name = \"A\"\n}\ncategory \"a\" {\n  name = \"B\"\n}\n",
			wantErr:     true,
			errContains: "more than once",
		},
		{
			name:        "unsupported_extension",
			filename:    "products.toml",
			config:      `categories = {}`,
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.filename, tt.config)
			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.True(t, errors.Is(err, fault.ErrConfiguration), "load errors are configuration errors")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(testContext(t), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrConfiguration))
	assert.Contains(t, err.Error(), "reading config file")
}

func TestHCLEnvVariables(t *testing.T) {
	t.Setenv("CATALOGRC_TEST_VENDOR", "Printrove")

	path := writeConfig(t, "products.hcl", `
category "mugs" {
  name = "Mugs"
  defaults {
    vendor = env.CATALOGRC_TEST_VENDOR
  }
}
`)
	cfg, err := Load(testContext(t), path)
	require.NoError(t, err)
	assert.Equal(t, "Printrove", *cfg.Categories["mugs"].Defaults.Vendor)
}

func TestCategorySlugs(t *testing.T) {
	cfg := &Config{Categories: map[string]*Category{
		"mugs":     {Name: "Mugs"},
		"hoodies":  {Name: "Hoodies"},
		"t-shirts": {Name: "T-Shirts"},
	}}
	assert.Equal(t, []string{"hoodies", "mugs", "t-shirts"}, cfg.CategorySlugs())
}

func TestMockupBase(t *testing.T) {
	tests := []struct {
		name     string
		location string
		root     string
		want     string
	}{
		{name: "no_location", want: "."},
		{name: "config_dir", location: "/etc/catalog/products.json", want: "/etc/catalog"},
		{name: "relative_root", location: "/etc/catalog/products.json", root: "mockups", want: "/etc/catalog/mockups"},
		{name: "absolute_root", location: "/etc/catalog/products.json", root: "/srv/mockups/", want: "/srv/mockups"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{location: tt.location, MockupRoot: tt.root}
			assert.Equal(t, tt.want, cfg.MockupBase())
		})
	}
}
