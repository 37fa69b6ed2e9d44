// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"strings"
)

// A CodeBlock is a [Block] representing an [indented code block]
// or [fenced code block], usually displayed in <pre><code> tags.
//
// [indented code block]: https://spec.commonmark.org/0.31.2/#indented-code-blocks
// [fenced code block]: https://spec.commonmark.org/0.31.2/#fenced-code-blocks
type CodeBlock struct {
	Position
	Lang string // first word of the info string; "" if none
	Text string // code, verbatim, without a final newline
}

func (b *CodeBlock) lines() []string {
	if b.Text == "" {
		return nil
	}
	return strings.Split(b.Text, "\n")
}

func (b *CodeBlock) printHTML(p *printer) {
	p.html("<pre><code")
	if lang := p.guessLanguage(b.Lang, b.Text); lang != "" {
		p.html(` class="language-`)
		p.text(lang)
		p.html(`"`)
	}
	p.html(">")
	if b.Text != "" {
		p.text(b.Text, "\n")
	}
	p.html("</code></pre>\n")
}

// fence returns a backtick fence longer than any backtick run in the code.
func (b *CodeBlock) fence() string {
	return strings.Repeat("`", max(3, maxRun(b.Text, '`')+1))
}

func (b *CodeBlock) printMarkdown(p *printer) {
	fence := b.fence()
	p.md(fence, p.guessLanguage(b.Lang, b.Text))
	for _, line := range b.lines() {
		p.nl()
		p.md(line)
		p.noTrim()
	}
	p.nl()
	p.md(fence)
}

func (b *CodeBlock) printText(p *printer) {
	for i, line := range b.lines() {
		if i > 0 {
			p.nl()
		}
		p.raw("    ", line)
		p.noTrim()
	}
}

func (b *CodeBlock) printLaTeX(p *printer) {
	p.raw(`\begin{lstlisting}`)
	if lang := p.guessLanguage(b.Lang, b.Text); lang != "" {
		p.raw("[language=", lang, "]")
	}
	p.raw("\n", b.Text, "\n", `\end{lstlisting}`)
}

func (b *CodeBlock) printTypst(p *printer) {
	fence := b.fence()
	p.raw(fence, p.guessLanguage(b.Lang, b.Text))
	for _, line := range b.lines() {
		p.nl()
		p.raw(line)
		p.noTrim()
	}
	p.nl()
	p.raw(fence)
}

func (b *CodeBlock) native(e *encoder) node {
	var classes []string
	if lang := e.guessLanguage(b.Lang, b.Text); lang != "" {
		classes = []string{lang}
	}
	return node{T: "CodeBlock", C: []any{attr(classes, nil), b.Text}}
}

// startIndentedCodeBlock is a [starter] for an indented [CodeBlock].
// See https://spec.commonmark.org/0.31.2/#indented-code-blocks.
func startIndentedCodeBlock(p *parser, s line) (line, bool) {
	// Line must start with 4 spaces and then not be blank.
	peek := s
	if p.para() != nil || !peek.trimSpace(4, 4, false) || peek.isBlank() {
		return s, false
	}

	b := &indentBuilder{}
	p.addBlock(b)
	b.text = append(b.text, peek.string())
	return line{}, true
}

// startFencedCodeBlock is a [starter] for a fenced [CodeBlock].
// See https://spec.commonmark.org/0.31.2/#fenced-code-blocks.
func startFencedCodeBlock(p *parser, s line) (line, bool) {
	indent, fence, info, ok := trimFence(&s)
	if !ok {
		return s, false
	}
	p.addBlock(&fenceBuilder{indent: indent, fence: fence, lang: infoLang(info)})
	return line{}, true
}

// infoLang returns the first word of a fence info string.
func infoLang(info string) string {
	for i, c := range info {
		if isUnicodeSpace(c) {
			return info[:i]
		}
	}
	return info
}

// trimFence attempts to trim leading indentation (up to 3 spaces),
// a code fence, and an info string from s.
// If successful, it returns those values and ok=true, leaving s empty.
// If unsuccessful, it leaves s unmodified and returns ok=false.
func trimFence(s *line) (indent int, fence, info string, ok bool) {
	t := *s
	indent = 0
	for indent < 3 && t.trimSpace(1, 1, false) {
		indent++
	}
	c := t.peek()
	if c != '`' && c != '~' {
		return
	}

	f := t.string()
	n := 0
	for t.trim(c) {
		n++
	}
	if n < 3 {
		return
	}

	txt := mdUnescape(t.trimString())
	if c == '`' && strings.Contains(txt, "`") {
		return
	}
	info = trimSpaceTab(txt)
	fence = f[:n]
	ok = true
	*s = line{}
	return
}

// An indentBuilder is a [blockBuilder] for an indented (unfenced) [CodeBlock].
type indentBuilder struct {
	text []string
}

func (b *indentBuilder) extend(p *parser, s line) (line, bool) {
	// Extension lines must start with 4 spaces or be blank.
	if !s.trimSpace(4, 4, true) {
		return s, false
	}
	b.text = append(b.text, s.string())
	return line{}, true
}

func (b *indentBuilder) build(p *parser) Block {
	// Trailing blank lines only separate the block from what follows.
	for len(b.text) > 0 && trimSpaceTab(b.text[len(b.text)-1]) == "" {
		b.text = b.text[:len(b.text)-1]
	}
	pos := p.pos()
	pos.EndLine = pos.StartLine + len(b.text) - 1
	return &CodeBlock{Position: pos, Text: strings.Join(b.text, "\n")}
}

// A fenceBuilder is a [blockBuilder] for a fenced [CodeBlock].
type fenceBuilder struct {
	indent int
	fence  string
	lang   string
	text   []string
}

func (b *fenceBuilder) extend(p *parser, s line) (line, bool) {
	// A closing fence is at least as long as the opening fence and has no info.
	// It can be indented less than the opening one.
	peek := s
	if _, fence, info, ok := trimFence(&peek); ok && strings.HasPrefix(fence, b.fence) && info == "" {
		return line{}, false
	}

	// Otherwise trim the opening fence's indentation from the line, if present.
	if !s.trimSpace(b.indent, b.indent, false) {
		s.trimSpace(0, b.indent, false)
	}

	b.text = append(b.text, s.string())
	return line{}, true
}

func (b *fenceBuilder) build(p *parser) Block {
	return &CodeBlock{Position: p.pos(), Lang: b.lang, Text: strings.Join(b.text, "\n")}
}
