// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsc.io/mdconv"
)

var testInfo = BuildInfo{Version: "v1.2.3", Commit: "abc123", Date: "2024-01-02"}

// run executes mdconv with args and stdin,
// returning what it wrote to stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errb bytes.Buffer
	cmd := NewRootCommand(testInfo)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errb.String(), err
}

func TestConvertStdin(t *testing.T) {
	out, _, err := run(t, "# Hi *there*\n", "-t", "html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi <em>there</em></h1>\n", out)
}

func TestConvertDefaultsToNative(t *testing.T) {
	out, _, err := run(t, "x\n")
	require.NoError(t, err)
	assert.Equal(t, `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Para","c":[{"t":"Str","c":"x"}]}]}`+"\n", out)
}

func TestConvertFileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.md")
	outFile := filepath.Join(dir, "out.typ")
	require.NoError(t, os.WriteFile(in, []byte("## Sub\n\n- a\n- b\n"), 0o644))

	out, _, err := run(t, "", in, "--to", "typst", "-o", outFile)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "== Sub\n\n- a\n- b\n", string(data))
}

func TestConvertNativeRoundTrip(t *testing.T) {
	js, _, err := run(t, "1. [x] done\n2. ~~gone~~\n", "-t", "json")
	require.NoError(t, err)
	md, _, err := run(t, js, "-f", "native", "-t", "gfm")
	require.NoError(t, err)
	assert.Equal(t, "1. [x] done\n2. ~~gone~~\n", md)
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "out.txt")
	for _, tt := range []struct {
		name  string
		stdin string
		args  []string
		is    error
	}{
		{"writer", "x", []string{"-t", "docx", "-o", outFile}, mdconv.ErrUnrecognizedFormat},
		{"reader", "x", []string{"-f", "rst", "-o", outFile}, mdconv.ErrUnrecognizedFormat},
		{"missing", "", []string{filepath.Join(dir, "nope.md"), "-o", outFile}, mdconv.ErrUnreadableInput},
		{"structure", `{"blocks":[{"t":"Nope"}]}`, []string{"-f", "json", "-t", "html", "-o", outFile}, mdconv.ErrStructure},
		{"json", `{"blocks":`, []string{"-f", "json", "-o", outFile}, mdconv.ErrStructure},
	} {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.Equal(t, ExitFailure, ExitCode(err))
			assert.Empty(t, out)
			assert.NoFileExists(t, outFile)
		})
	}
}

func TestConvertWriterCheckedFirst(t *testing.T) {
	_, _, err := run(t, `{"blocks":`, "-f", "json", "-t", "odt")
	assert.ErrorIs(t, err, mdconv.ErrUnrecognizedFormat)
	assert.NotErrorIs(t, err, mdconv.ErrStructure)
}

func TestConvertTooManyArgs(t *testing.T) {
	_, _, err := run(t, "", "a.md", "b.md")
	assert.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestConvertConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "mdconv.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("to: plain\nextensions:\n  mentions: false\n"), 0o644))

	out, _, err := run(t, "hi @you\n", "--config", cfg, "-t", "html")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi @you</p>\n", out)

	out, _, err = run(t, "*hi*\n", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)

	t.Setenv("MDCONV_TO", "latex")
	out, _, err = run(t, "*hi*\n", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "\\emph{hi}\n", out)

	_, _, err = run(t, "x", "--config", filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestConvertOptions(t *testing.T) {
	out, _, err := run(t, "# T\n", "-t", "html", "--standalone")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"), "out:\n%s", out)
	assert.Contains(t, out, "<title>T</title>")

	out, _, err = run(t, "x\n", "--indent")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  "), "out:\n%s", out)

	out, _, err = run(t, "    package main\n", "-t", "html", "--guess-language")
	require.NoError(t, err)
	assert.Equal(t, "<pre><code class=\"language-go\">package main\n</code></pre>\n", out)

	out, _, err = run(t, "    package main\n", "-t", "html")
	require.NoError(t, err)
	assert.Equal(t, "<pre><code>package main\n</code></pre>\n", out)
}

func TestConvertDebugLogging(t *testing.T) {
	out, stderr, err := run(t, "a\n\nb\n", "-t", "plain", "--debug")
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb\n", out)
	assert.Contains(t, stderr, "parsed document")
	assert.Contains(t, stderr, "blocks=2")

	_, stderr, err = run(t, "a\n", "-t", "plain")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestFormatsCommand(t *testing.T) {
	out, _, err := run(t, "", "formats")
	require.NoError(t, err)
	readers, writers, ok := strings.Cut(out, "Writers:")
	require.True(t, ok, "output:\n%s", out)
	assert.True(t, strings.HasPrefix(readers, "Readers:\n"))
	for _, name := range mdconv.Readers() {
		assert.Contains(t, readers, "  "+name+" ")
	}
	for _, name := range mdconv.Writers() {
		assert.Contains(t, writers, "  "+name+" ")
	}
	assert.Contains(t, writers, "alias for gfm")
	assert.Contains(t, writers, "Pandoc JSON")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version=v1.2.3")
	assert.Contains(t, out, "commit=abc123")
	assert.Contains(t, out, "built=2024-01-02")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(&mdconv.FormatError{Dir: "writer", Name: "x"}))
}
