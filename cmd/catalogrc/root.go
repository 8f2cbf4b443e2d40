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
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/catalogrc/cmd/catalogrc/commands"
	"github.com/walteh/catalogrc/cmd/catalogrc/opts"
	"github.com/walteh/catalogrc/pkg/log"
)

func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "products.json", "config file path (.json, .yaml or .hcl)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringArrayVar(&o.EnvFiles, "env-file", nil, "env file to load, repeatable (default .env.local and .env)")
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// newRootCmd builds the command tree. The console reporter and the logger are
// attached to the command context before any subcommand runs.
func newRootCmd(o *opts.RootOpts, console, logs io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalogrc",
		Short: "Publish product mockups and keep a storefront catalog in sync",
		Long: `catalogrc reads a product configuration, uploads each product's mockup
images to object storage, groups them into per color galleries and upserts
the resulting products into the catalog database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logs, o.Debug)
			ctx := logger.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.New(console, logger))
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewSyncCmd(o),
		commands.NewCleanCmd(o),
		commands.NewStatusCmd(o),
		commands.NewUploadCmd(o),
		commands.NewProductsCmd(o),
		newVersionCmd(),
	)

	rootCmd.SetOut(console)

	return rootCmd
}
