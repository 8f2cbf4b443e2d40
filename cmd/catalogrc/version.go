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


package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/catalogrc/pkg/config"
	"github.com/walteh/catalogrc/pkg/storage"
)

// clientModules are the remote clients whose versions matter when debugging a sync
var clientModules = []string{
	"github.com/jackc/pgx/v5",
	"github.com/supabase-community/postgrest-go",
	"github.com/supabase-community/storage-go",
}

// 🏷️ BuildInfo describes the binary and the backends compiled into it
type BuildInfo struct {
	Version         string            `json:"version"`
	Revision        string            `json:"revision,omitempty"`
	Time            string            `json:"time,omitempty"`
	Modified        bool              `json:"modified"`
	GoVersion       string            `json:"go_version"`
	Platform        string            `json:"platform"`
	CatalogBackends []string          `json:"catalog_backends"`
	StorageBackends []string          `json:"storage_backends"`
	Clients         map[string]string `json:"clients"`
}

func readBuildInfo(bi *debug.BuildInfo) BuildInfo {
	info := BuildInfo{
		Version:         "dev",
		GoVersion:       runtime.Version(),
		Platform:        runtime.GOOS + "/" + runtime.GOARCH,
		CatalogBackends: config.CatalogBackends,
		StorageBackends: storage.Backends(),
		Clients:         map[string]string{},
	}
	if bi == nil {
		return info
	}

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.time":
			info.Time = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}

	tracked := map[string]bool{}
	for _, m := range clientModules {
		tracked[m] = true
	}
	for _, dep := range bi.Deps {
		if !tracked[dep.Path] {
			continue
		}
		if dep.Replace != nil {
			dep = dep.Replace
		}
		info.Clients[dep.Path] = dep.Version
	}
	return info
}

func writeBuildInfo(w io.Writer, info BuildInfo) {
	revision := info.Revision
	if revision == "" {
		revision = "unknown"
	}
	if info.Modified {
		revision += " (modified)"
	}

	fmt.Fprintf(w, "🛍️ catalogrc %s\n", info.Version)
	fmt.Fprintf(w, "Revision:  %s\n", revision)
	if info.Time != "" {
		fmt.Fprintf(w, "Built:     %s\n", info.Time)
	}
	fmt.Fprintf(w, "Go:        %s %s\n", info.GoVersion, info.Platform)
	fmt.Fprintf(w, "Catalog:   %s\n", strings.Join(info.CatalogBackends, ", "))
	fmt.Fprintf(w, "Storage:   %s\n", strings.Join(info.StorageBackends, ", "))

	paths := make([]string, 0, len(info.Clients))
	for p := range info.Clients {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(w, "Client:    %s %s\n", p, info.Clients[p])
	}
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information and the compiled-in backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bi, _ := debug.ReadBuildInfo()
			info := readBuildInfo(bi)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			writeBuildInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")
	return cmd
}
