// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"bytes"
	"strings"
)

// A writeMode selects which output dialect a [printer] produces.
type writeMode int

const (
	writeMarkdown writeMode = iota
	writeHTML
	writeText
	writeLaTeX
	writeTypst
)

// A printer accumulates the output of one writer.
//
// In markdown mode every newline is written through nl,
// which appends the current line prefix (list indentation, "> ", ...)
// so that nested blocks come out correctly framed.
type printer struct {
	mode      writeMode
	opts      *RenderOptions
	buf       bytes.Buffer
	prefix    []byte
	trimLimit int
	lineStart int // offset in buf just after the last newline written by nl

	// markdown list markers, chosen by printMarkdownBlocks
	bullet byte
	delim  byte

	enumDepth int  // LaTeX enumerate nesting
	inEmph    bool // Typst _..._ is open
	inStrong  bool // Typst *...* is open
}

func newPrinter(mode writeMode, opts *RenderOptions) *printer {
	if opts == nil {
		opts = new(RenderOptions)
	}
	return &printer{mode: mode, opts: opts}
}

// noTrim protects the output written so far from trailing-space trimming.
func (p *printer) noTrim() {
	p.trimLimit = p.buf.Len()
}

// nl ends the current line, dropping trailing spaces,
// and starts the next one with the current prefix.
func (p *printer) nl() {
	text := p.buf.Bytes()
	for len(text) > p.trimLimit && text[len(text)-1] == ' ' {
		text = text[:len(text)-1]
	}
	p.buf.Truncate(len(text))
	p.buf.WriteByte('\n')
	p.lineStart = p.buf.Len()
	p.buf.Write(p.prefix)
}

// atLineStart reports whether nothing but block markup
// (the prefix, a list marker, a task box) has been written
// on the current line, so that text written next would be
// read as the start of a line.
func (p *printer) atLineStart() bool {
	cur := p.buf.Bytes()[min(p.lineStart, p.buf.Len()):]
	cur = bytes.TrimSuffix(cur, []byte("[ ] "))
	cur = bytes.TrimSuffix(cur, []byte("[x] "))
	for _, c := range cur {
		if !strings.ContainsRune(" >-*+.)0123456789", rune(c)) {
			return false
		}
	}
	return true
}

// WriteString writes s without escaping.
// Except in HTML and LaTeX, newlines in s are written with nl.
func (p *printer) WriteString(s string) (int, error) {
	if p.mode == writeHTML || p.mode == writeLaTeX {
		return p.buf.WriteString(s)
	}
	n := len(s)
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		p.buf.WriteString(s[:i])
		p.nl()
		s = s[i+1:]
	}
	p.buf.WriteString(s)
	return n, nil
}

func (p *printer) WriteByte(c byte) error {
	if c == '\n' && p.mode != writeHTML && p.mode != writeLaTeX {
		p.nl()
		return nil
	}
	return p.buf.WriteByte(c)
}

// html writes raw HTML markup.
func (p *printer) html(list ...string) {
	if p.mode != writeHTML {
		panic("raw HTML in non-HTML output")
	}
	for _, s := range list {
		p.buf.WriteString(s)
	}
}

// md writes raw Markdown markup.
func (p *printer) md(list ...string) {
	if p.mode != writeMarkdown {
		panic("markdown in non-markdown output")
	}
	for _, s := range list {
		p.WriteString(s)
	}
}

// raw writes markup for the LaTeX, Typst, and plain text writers.
func (p *printer) raw(list ...string) {
	for _, s := range list {
		p.WriteString(s)
	}
}

// text writes document text, escaped for the output dialect.
// Markdown escaping depends on context and is done by the callers.
func (p *printer) text(list ...string) {
	for _, s := range list {
		switch p.mode {
		case writeHTML:
			htmlEscaper.WriteString(&p.buf, s)
		case writeLaTeX:
			latexEscaper.WriteString(&p.buf, s)
		case writeTypst:
			p.WriteString(typstEscaper.Replace(s))
		default:
			p.WriteString(s)
		}
	}
}

// push appends s to the line prefix and returns
// the value to pass to pop to remove it.
func (p *printer) push(s string) int {
	n := len(p.prefix)
	p.prefix = append(p.prefix, s...)
	return n
}

func (p *printer) pop(n int) {
	p.prefix = p.prefix[:n]
}

// guessLanguage returns the language to report for a code block
// that has none, using the configured guesser.
func (p *printer) guessLanguage(lang, code string) string {
	if lang == "" && p.opts.GuessLanguage != nil {
		return p.opts.GuessLanguage(code)
	}
	return lang
}

// finish returns the output, ending in exactly one newline
// unless it is empty.
func (p *printer) finish() string {
	out := bytes.TrimRight(p.buf.Bytes(), " \n")
	if len(out) == 0 {
		return ""
	}
	return string(out) + "\n"
}
