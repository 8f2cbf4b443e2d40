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
	"context"
	"io"
	"os"

	"github.com/walteh/catalogrc/cmd/catalogrc/opts"
	"github.com/walteh/catalogrc/pkg/fault"
	"github.com/walteh/catalogrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const (
	exitFailure       = 1
	exitConfiguration = 2
)

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, fault.ErrConfiguration):
		return exitConfiguration
	default:
		return exitFailure
	}
}

func run(ctx context.Context, o *opts.RootOpts, args []string, console, logs io.Writer) int {
	rootCmd := newRootCmd(o, console, logs)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.New(console, newLogger(logs, false)).Error(err.Error())
		return exitCode(err)
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), &opts.RootOpts{}, os.Args[1:], os.Stdout, os.Stderr))
}
