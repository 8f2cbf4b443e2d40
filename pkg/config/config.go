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
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎨 Color overrides or extends the built-in color table
type Color struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
}

// 📂 Category groups products under one catalog category
type Category struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Defaults    *ProductFields  `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Products    []ProductFields `json:"products" yaml:"products"`
}

// 📚 Config represents the complete catalog configuration
type Config struct {
	Categories map[string]*Category `json:"categories" yaml:"categories"`
	Colors     map[string]Color     `json:"colors,omitempty" yaml:"colors,omitempty"`
	MockupRoot string               `json:"mockup_root,omitempty" yaml:"mockup_root,omitempty"`

	location string
}

var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fault.Configuration(errors.Errorf("reading config file: %w", err))
	}

	p := GetParser(path)
	if p == nil {
		return nil, fault.Configurationf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, fault.Configuration(errors.Errorf("parsing config: %w", err))
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, fault.Configuration(errors.Errorf("validating config: %w", err))
	}

	logger.Debug().Int("categories", len(cfg.Categories)).Msg("configuration loaded")
	return cfg, nil
}

// 🔍 Validate checks the parts of the configuration shared by every product
func (cfg *Config) Validate() error {
	if len(cfg.Categories) == 0 {
		return errors.New("at least one category is required")
	}
	for s, c := range cfg.Categories {
		if !slug.IsSlug(s) {
			return errors.Errorf("category %q: slug must be lower case letters, digits and dashes", s)
		}
		if c == nil {
			return errors.Errorf("category %q: body is required", s)
		}
		if strings.TrimSpace(c.Name) == "" {
			return errors.Errorf("category %q: name is required", s)
		}
	}
	for id, c := range cfg.Colors {
		if strings.TrimSpace(id) == "" {
			return errors.New("color id must not be empty")
		}
		if strings.TrimSpace(c.Name) == "" {
			return errors.Errorf("color %q: name is required", id)
		}
		if !hexPattern.MatchString(c.Hex) {
			return errors.Errorf("color %q: hex %q is not a #rgb or #rrggbb value", id, c.Hex)
		}
	}
	return nil
}

// 📍 Location returns the file the configuration was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 📁 MockupBase is the directory relative mockup folders are resolved against
func (cfg *Config) MockupBase() string {
	base := "."
	if cfg.location != "" {
		base = filepath.Dir(cfg.location)
	}
	if cfg.MockupRoot == "" {
		return base
	}
	if filepath.IsAbs(cfg.MockupRoot) {
		return filepath.Clean(cfg.MockupRoot)
	}
	return filepath.Join(base, cfg.MockupRoot)
}

// 🔤 CategorySlugs returns the category slugs in sorted order
func (cfg *Config) CategorySlugs() []string {
	slugs := make([]string, 0, len(cfg.Categories))
	for s := range cfg.Categories {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return slugs
}

// 🏷️ Label names the product at index for reports, even when it is invalid
func (c *Category) Label(index int) string {
	if index < 0 || index >= len(c.Products) {
		return ""
	}
	p := c.Products[index]
	switch {
	case p.SKU != nil && strings.TrimSpace(*p.SKU) != "":
		return *p.SKU
	case p.Name != nil && strings.TrimSpace(*p.Name) != "":
		return *p.Name
	}
	return "product #" + strconv.Itoa(index+1)
}
