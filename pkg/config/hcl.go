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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
// Categories are labelled blocks holding product blocks:
//
//	category "t-shirts" {
//	  name = "T-Shirts"
//	  defaults { vendor = env.VENDOR }
//	  product {
//	    name          = "Classic Tee"
//	    sku           = "TEE-001"
//	    mockup_folder = "mockups/classic-tee"
//	    base_price    = 499
//	  }
//	}
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

type hclColor struct {
	ID   string `hcl:"id,label"`
	Name string `hcl:"name"`
	Hex  string `hcl:"hex"`
}

type hclCategory struct {
	Slug        string          `hcl:"slug,label"`
	Name        string          `hcl:"name"`
	Description string          `hcl:"description,optional"`
	Defaults    *ProductFields  `hcl:"defaults,block"`
	Products    []ProductFields `hcl:"product,block"`
}

type hclConfig struct {
	MockupRoot string        `hcl:"mockup_root,optional"`
	Colors     []hclColor    `hcl:"color,block"`
	Categories []hclCategory `hcl:"category,block"`
}

// envObject exposes the process environment to expressions as env.NAME
func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !isIdentifier(k) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "products.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		MockupRoot: hclCfg.MockupRoot,
		Categories: make(map[string]*Category, len(hclCfg.Categories)),
	}

	for _, c := range hclCfg.Colors {
		if cfg.Colors == nil {
			cfg.Colors = map[string]Color{}
		}
		if _, dup := cfg.Colors[c.ID]; dup {
			return nil, errors.Errorf("color %q is defined more than once", c.ID)
		}
		cfg.Colors[c.ID] = Color{Name: c.Name, Hex: c.Hex}
	}

	for _, c := range hclCfg.Categories {
		if _, dup := cfg.Categories[c.Slug]; dup {
			return nil, errors.Errorf("category %q is defined more than once", c.Slug)
		}
		cfg.Categories[c.Slug] = &Category{
			Name:        c.Name,
			Description: c.Description,
			Defaults:    c.Defaults,
			Products:    c.Products,
		}
	}

	return cfg, nil
}
