// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	} {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
		assert.Equal(t, tt.want, New(tt.in).GetLevel(), "New(%q)", tt.in)
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "info")
	logger.Debug("hidden")
	logger.Info("converted", FieldReader, "gfm", FieldWriter, "html")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "converted")
	assert.Contains(t, out, "from=gfm")
	assert.Contains(t, out, "to=html")
}

func TestDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	logger := New("error")
	SetDefault(logger)
	assert.Same(t, logger, Default())

	SetLevel("debug")
	assert.Equal(t, log.DebugLevel, Default().GetLevel())
}

func TestContext(t *testing.T) {
	logger := New("warn")
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, Default(), FromContext(context.Background()))

	ctx = WithLogger(ctx, New("debug"))
	require.NotSame(t, logger, FromContext(ctx))
	assert.Equal(t, log.DebugLevel, FromContext(ctx).GetLevel())
}
