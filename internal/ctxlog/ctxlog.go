// Copyright 2026 Liquidata, Inc.
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

// Package ctxlog threads a zerolog.Logger through context.Context instead
// of relying on a package-level global logger. Every component in this
// module that logs takes a ctx and calls ctxlog.From(ctx) to get a usable
// logger, even when none was ever attached (From falls back to a disabled
// logger, never to a panic or a global).
package ctxlog

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// disabled is returned by From when no logger has been attached to ctx.
var disabled = zerolog.New(io.Discard).Level(zerolog.Disabled)

// WithLogger returns a context carrying logger, retrievable with From.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From returns the logger attached to ctx, or a disabled logger if none
// was attached.
func From(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return logger
	}
	return disabled
}

// WithFields returns a context whose logger has the given key/value pairs
// added, building on whatever logger (possibly disabled) is already
// attached to ctx.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	logger := From(ctx).With().Fields(fields).Logger()
	return WithLogger(ctx, logger)
}
