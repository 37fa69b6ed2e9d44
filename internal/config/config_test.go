// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsc.io/mdconv"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "gfm", cfg.From)
	assert.Equal(t, "native", cfg.To)
	assert.Equal(t, mdconv.NewParser(), cfg.Parser())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
to: latex
standalone: true
extensions:
  emoji: false
  mentions: false
`))
	require.NoError(t, err)
	assert.Equal(t, "gfm", cfg.From)
	assert.Equal(t, "latex", cfg.To)
	assert.True(t, cfg.Standalone)
	assert.False(t, cfg.Indent)

	p := cfg.Parser()
	assert.True(t, p.Table)
	assert.True(t, p.Strikethrough)
	assert.False(t, p.Emoji)
	assert.False(t, p.Mentions)
}

func TestParseError(t *testing.T) {
	_, err := Parse([]byte("to: [unclosed"))
	assert.ErrorContains(t, err, "parse yaml")

	_, err = Parse([]byte("standalone: maybe"))
	assert.Error(t, err)
}

func TestRenderOptions(t *testing.T) {
	guess := func(string) string { return "go" }
	cfg := Default()
	cfg.Indent = true
	opts := cfg.RenderOptions(guess)
	assert.True(t, opts.Indent)
	assert.Nil(t, opts.GuessLanguage)

	cfg.GuessLanguage = true
	opts = cfg.RenderOptions(guess)
	require.NotNil(t, opts.GuessLanguage)
	assert.Equal(t, "go", opts.GuessLanguage("x"))
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MDCONV_TO":         "typst",
		"MDCONV_STANDALONE": "1",
		"MDCONV_TABLE":      "false",
		"MDCONV_FROM":       "",
		"OTHER":             "x",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, lookup))
	assert.Equal(t, "gfm", cfg.From)
	assert.Equal(t, "typst", cfg.To)
	assert.True(t, cfg.Standalone)
	assert.False(t, cfg.Extensions.Table)

	env["MDCONV_EMOJI"] = "sometimes"
	err := ApplyEnv(cfg, lookup)
	assert.EqualError(t, err, `invalid boolean for MDCONV_EMOJI: "sometimes"`)
}

func TestEnvVars(t *testing.T) {
	vars := EnvVars()
	assert.Len(t, vars, 12)
	assert.Contains(t, vars, "MDCONV_GUESS_LANGUAGE")
	assert.IsIncreasing(t, vars)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, path, err := Load(dir, "")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default().To, cfg.To)

	file := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(file, []byte("from: commonmark\nto: html\n"), 0o644))
	t.Setenv("MDCONV_TO", "plain")
	cfg, path, err = Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, file, path)
	assert.Equal(t, "commonmark", cfg.From)
	assert.Equal(t, "plain", cfg.To)

	_, _, err = Load(dir, filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("extensions: 3\n"), 0o644))
	_, _, err = Load(dir, bad)
	assert.ErrorContains(t, err, bad)
}
