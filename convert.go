// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"slices"
	"strings"
)

// RenderOptions configures a writer.
// The zero value is the default for every writer.
type RenderOptions struct {
	// Standalone makes the html and latex writers produce a complete
	// document rather than a fragment.
	Standalone bool

	// Indent makes the native writer pretty-print its JSON.
	Indent bool

	// GuessLanguage, if non-nil, is called for code blocks
	// with no language and returns the language to report, or "".
	GuessLanguage func(code string) string
}

type readFunc func(p *Parser, data []byte) (*Document, error)

var readers = map[string]readFunc{
	"gfm":        readGFM,
	"markdown":   readGFM,
	"commonmark": readCommonMark,
	"native":     readNative,
	"json":       readNative,
}

func readGFM(p *Parser, data []byte) (*Document, error) {
	return p.parse(strings.ToValidUTF8(string(data), "�"))
}

func readCommonMark(_ *Parser, data []byte) (*Document, error) {
	return readGFM(new(Parser), data)
}

func readNative(_ *Parser, data []byte) (*Document, error) {
	return ParseNative(data)
}

type writeFunc func(doc *Document, opts *RenderOptions) (string, error)

var writers = map[string]writeFunc{
	"native":   encodeNative,
	"json":     encodeNative,
	"gfm":      writeMode(writeMarkdown).render,
	"markdown": writeMode(writeMarkdown).render,
	"html":     writeMode(writeHTML).render,
	"latex":    writeMode(writeLaTeX).render,
	"typst":    writeMode(writeTypst).render,
	"plain":    writeMode(writeText).render,
}

// render is the [writeFunc] for the printer-based writers.
func (m writeMode) render(doc *Document, opts *RenderOptions) (string, error) {
	p := newPrinter(m, opts)
	switch m {
	case writeHTML:
		return renderHTML(doc, p), nil
	case writeLaTeX:
		return renderLaTeX(doc, p), nil
	case writeMarkdown:
		printMarkdownBlocks(doc.Blocks, p, false)
	case writeTypst:
		printTypstBlocks(doc.Blocks, p, false)
	case writeText:
		printTextBlocks(doc.Blocks, p, false)
	}
	return p.finish(), nil
}

// Readers returns the sorted names accepted by [Read].
func Readers() []string {
	return sortedKeys(readers)
}

// Writers returns the sorted names accepted by [Render].
func Writers() []string {
	return sortedKeys(writers)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Read parses data in the named format using [NewParser]'s extensions.
func Read(format string, data []byte) (*Document, error) {
	return NewParser().Read(format, data)
}

// Read parses data in the named format.
// The gfm and markdown readers use p's extensions;
// commonmark uses none; native ignores them.
func (p *Parser) Read(format string, data []byte) (*Document, error) {
	read, ok := readers[format]
	if !ok {
		return nil, &FormatError{Dir: "reader", Name: format}
	}
	return read(p, data)
}

// CheckWriter returns a [*FormatError] if there is no writer for format.
// Callers that parse before rendering use it to fail early.
func CheckWriter(format string) error {
	if _, ok := writers[format]; !ok {
		return &FormatError{Dir: "writer", Name: format}
	}
	return nil
}

// Render renders doc in the named format.
// On error it returns no output.
func Render(format string, doc *Document, opts *RenderOptions) (string, error) {
	write, ok := writers[format]
	if !ok {
		return "", &FormatError{Dir: "writer", Name: format}
	}
	return write(doc, opts)
}

// Convert reads data in the from format and renders it in the to format.
func Convert(from, to string, data []byte, opts *RenderOptions) (string, error) {
	return NewParser().Convert(from, to, data, opts)
}

// Convert is like the top-level [Convert] but reads with p's extensions.
// The writer is checked before any input is parsed.
func (p *Parser) Convert(from, to string, data []byte, opts *RenderOptions) (string, error) {
	if err := CheckWriter(to); err != nil {
		return "", err
	}
	doc, err := p.Read(from, data)
	if err != nil {
		return "", err
	}
	return Render(to, doc, opts)
}
