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

// Package project holds the connection values of a Supabase project shared by
// the catalog and storage clients.
package project

import (
	"net/url"
	"strings"

	"github.com/walteh/catalogrc/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// 🔑 Project is a Supabase project endpoint and its service key
type Project struct {
	url string
	key string
}

// 🏭 New validates rawURL and key
func New(rawURL, key string) (Project, error) {
	rawURL = strings.TrimSpace(rawURL)
	key = strings.TrimSpace(key)
	if rawURL == "" {
		return Project{}, fault.Configurationf("supabase url is required")
	}
	if key == "" {
		return Project{}, fault.Configurationf("supabase key is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Project{}, fault.Configuration(errors.Errorf("parsing supabase url: %w", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Project{}, fault.Configurationf("supabase url %q must be http or https", rawURL)
	}
	return Project{url: strings.TrimSuffix(rawURL, "/"), key: key}, nil
}

func (p Project) Key() string { return p.key }

// Endpoint returns the base URL of a project service such as rest/v1
func (p Project) Endpoint(service string) string {
	return p.url + "/" + strings.Trim(service, "/")
}

// Headers returns the authentication headers expected by every service
func (p Project) Headers() map[string]string {
	return map[string]string{
		"apikey":        p.key,
		"Authorization": "Bearer " + p.key,
	}
}
