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

// Package log renders the console report of a catalog run and mirrors every
// line to zerolog.
package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	assetIndent = 4  // spaces to indent asset entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 10 // Width for status text
)

// 📌 Asset statuses
const (
	AssetUploaded = "uploaded"
	AssetReused   = "reused"
	AssetFailed   = "failed"
	AssetIgnored  = "ignored"
)

// 🎯 AssetOperation represents one published or skipped file
type AssetOperation struct {
	Filename string // File name within the mockup folder
	Status   string // One of the Asset* statuses
	Detail   string // Error text or note
}

// 📦 ProductOperation represents a product being synced
type ProductOperation struct {
	Category string
	SKU      string
	Name     string
}

// 🎯 Reporter prints the run to the console and to zerolog
type Reporter struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	current   *ProductOperation
	assets    []AssetOperation
	completed int
}

// 🏭 New creates a reporter writing to console and mirroring to zlog
func New(console io.Writer, zlog zerolog.Logger) *Reporter {
	return &Reporter{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the reporter from context
func FromContext(ctx context.Context) *Reporter {
	r, ok := ctx.Value(contextKey{}).(*Reporter)
	if !ok {
		panic("reporter not found in context")
	}
	return r
}

// 🎯 NewContext adds the reporter to context
func NewContext(ctx context.Context, r *Reporter) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// 📝 formatAsset formats an asset operation for display
func formatAsset(op AssetOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Status {
	case AssetUploaded:
		symbol = '✓'
		symbolColor = color.FgGreen
	case AssetFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case AssetReused:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", assetIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Filename),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
	if op.Detail != "" {
		line += " " + color.New(color.Faint).Sprint(op.Detail)
	}
	return line
}

// 📝 LogAsset logs an asset operation of the current product
func (r *Reporter) LogAsset(ctx context.Context, op AssetOperation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assets = append(r.assets, op)
	fmt.Fprintln(r.console, formatAsset(op))

	ev := r.zlog.Info()
	if op.Status == AssetFailed {
		ev = r.zlog.Warn()
	}
	ev.Str("file", op.Filename).
		Str("status", op.Status).
		Str("detail", op.Detail).
		Msg("asset")
}

// 📂 StartCategory prints a category header
func (r *Reporter) StartCategory(ctx context.Context, slug, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.console, "[category %s]\n", color.New(color.FgCyan).Sprint(slug))
	r.zlog.Info().Str("category", slug).Str("name", name).Msg("starting category")
}

// 📝 StartProduct starts reporting a product
func (r *Reporter) StartProduct(ctx context.Context, op ProductOperation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = &op
	r.assets = nil

	fmt.Fprintf(r.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.SKU))

	r.zlog.Info().
		Str("category", op.Category).
		Str("sku", op.SKU).
		Str("name", op.Name).
		Msg("starting product")
}

// 📝 EndProduct ends the current product with its final state
func (r *Reporter) EndProduct(ctx context.Context, state, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return
	}

	attr := color.FgGreen
	switch state {
	case "aborted":
		attr = color.FgRed
	case "skipped":
		attr = color.FgYellow
	}
	line := fmt.Sprintf("%*s→ %s", assetIndent, "", color.New(attr).Sprint(state))
	if reason != "" {
		line += " " + color.New(color.Faint).Sprint(reason)
	}
	fmt.Fprintln(r.console, line)

	r.zlog.Info().
		Str("sku", r.current.SKU).
		Str("state", state).
		Str("reason", reason).
		Int("assets", len(r.assets)).
		Msg("product complete")

	r.completed++
	r.current = nil
	r.assets = nil
}

// Completed returns how many products were ended
func (r *Reporter) Completed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// 📝 LogNewline logs a newline
func (r *Reporter) LogNewline() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.console)
}

// 📝 Header logs a header
func (r *Reporter) Header(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("catalogrc")
	fmt.Fprintf(r.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	r.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (r *Reporter) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	r.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (r *Reporter) Warning(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	r.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (r *Reporter) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	r.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (r *Reporter) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	r.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (r *Reporter) Infof(format string, args ...interface{}) {
	r.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (r *Reporter) Warningf(format string, args ...interface{}) {
	r.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (r *Reporter) Errorf(format string, args ...interface{}) {
	r.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (r *Reporter) Successf(format string, args ...interface{}) {
	r.Success(fmt.Sprintf(format, args...))
}
