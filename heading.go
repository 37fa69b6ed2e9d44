// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"fmt"
	"strings"
)

// A Header is a [Block] representing an [ATX heading] or
// [Setext heading], usually displayed with the <h1> through <h6> tags.
//
// [ATX heading]: https://spec.commonmark.org/0.31.2/#atx-headings
// [Setext heading]: https://spec.commonmark.org/0.31.2/#setext-headings
type Header struct {
	Position

	// Level is the heading level: 1 through 6.
	// Writers clamp other values to the valid range.
	Level int

	Inlines Inlines
}

// level returns the effective level, clamping Level to the range [1, 6].
func (b *Header) level() int {
	return max(1, min(6, b.Level))
}

func (b *Header) printHTML(p *printer) {
	fmt.Fprintf(&p.buf, "<h%d>", b.level())
	b.Inlines.printHTML(p)
	fmt.Fprintf(&p.buf, "</h%d>\n", b.level())
}

func (b *Header) printMarkdown(p *printer) {
	p.md(strings.Repeat("#", b.level()))
	if len(b.Inlines) == 0 {
		return
	}
	p.md(" ")
	// Header text is a single line.
	for _, x := range b.Inlines {
		if _, ok := x.(*SoftBreak); ok {
			p.md(" ")
			continue
		}
		x.printMarkdown(p)
	}
	// A trailing # would read back as a closing sequence.
	if bytesHasSuffix(p.buf.Bytes(), '#') {
		p.buf.Truncate(p.buf.Len() - 1)
		p.md(`\#`)
	}
}

func bytesHasSuffix(b []byte, c byte) bool {
	return len(b) > 0 && b[len(b)-1] == c
}

func (b *Header) printText(p *printer) {
	b.Inlines.printText(p)
}

var latexSections = [...]string{"section", "subsection", "subsubsection", "paragraph", "subparagraph"}

func (b *Header) printLaTeX(p *printer) {
	if l := b.level(); l <= len(latexSections) {
		p.raw(`\`, latexSections[l-1], "{")
		b.Inlines.printLaTeX(p)
		p.raw("}")
		return
	}
	b.Inlines.printLaTeX(p)
}

func (b *Header) printTypst(p *printer) {
	p.raw(strings.Repeat("=", b.level()), " ")
	b.Inlines.printTypst(p)
}

func (b *Header) native(e *encoder) node {
	return node{T: "Header", C: []any{b.level(), emptyAttr(), nativeInlines(b.Inlines)}}
}

// startATXHeader is a [starter] for an ATX [Header], like "## Heading".
//
// See https://spec.commonmark.org/0.31.2/#atx-headings.
func startATXHeader(p *parser, s line) (line, bool) {
	n, ok := trimATX(&s)
	if !ok {
		return s, false
	}
	text := trimRightSpaceTab(s.string())

	// Remove any number of trailing '#'s if preceded by a space or tab.
	if inner := strings.TrimRight(text, "#"); inner != trimRightSpaceTab(inner) || inner == "" {
		text = trimRightSpaceTab(inner)
	}

	h := &Header{Position: Position{p.lineno, p.lineno}, Level: n}
	p.newText(&h.Inlines, trimLeftSpaceTab(text))
	p.doneBlock(h)
	return line{}, true
}

// startSetextHeader is a [starter] for a Setext [Header], which is an
// underlined paragraph of text. The paragraph has already been
// parsed; startSetextHeader looks for the underline.
//
// See https://spec.commonmark.org/0.31.2/#setext-headings.
func startSetextHeader(p *parser, s line) (line, bool) {
	// Innermost block must be a paragraph.
	if b := p.para(); b == nil || p.nextB() != blockBuilder(b) {
		return s, false
	}

	t := s
	level, ok := trimSetext(&t)
	if !ok {
		return s, false
	}

	// A delimiter row under a pipe row makes a table, not a heading.
	if b := p.para(); p.Table && b.table == nil && len(b.text) > 0 {
		last := b.text[len(b.text)-1]
		if strings.Contains(last, "|") && isTableStart(last, s.trimSpaceString()) {
			return s, false
		}
	}

	// Closing the paragraph may reveal it held only link definitions,
	// in which case the underline is left for something else.
	para, ok := p.closeBlock().(*Paragraph)
	if !ok {
		return s, false
	}

	p.deleteLast()
	h := &Header{Position: Position{para.StartLine, p.lineno}, Level: level}
	p.moveText(&para.Inlines, &h.Inlines)
	p.doneBlock(h)
	return line{}, true
}

// trimATX trims an ATX heading prefix
// (optional spaces and then 1-6 #s followed by a space) from s,
// reporting the heading level and whether it was successful.
// If trimATX is unsuccessful, it leaves s unmodified.
func trimATX(s *line) (level int, ok bool) {
	t := *s
	t.trimSpace(0, 3, false)
	if !t.trim('#') {
		return
	}
	n := 1
	for n < 6 && t.trim('#') {
		n++
	}
	if !t.trimSpace(1, 1, true) {
		return
	}
	*s = t
	return n, true
}

// trimSetext trims a Setext heading underline
// (optional spaces and then only -'s or ='s
// followed by optional spaces and EOL) from s,
// reporting the heading level and whether it was successful.
// If trimSetext is unsuccessful, it leaves s unmodified.
func trimSetext(s *line) (level int, ok bool) {
	t := *s
	t.trimSpace(0, 3, false)
	c := t.peek()
	if c != '-' && c != '=' {
		return
	}
	for t.trim(c) {
	}
	t.skipSpace()
	if !t.eof() {
		return
	}
	level = 1
	if c == '-' {
		level = 2
	}
	*s = line{}
	return level, true
}
