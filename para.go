// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"strings"
)

// A Paragraph is a [Block] representing a [paragraph].
// Except when they appear directly in an item of a tight list,
// paragraphs render in <p>...</p> tags.
//
// [paragraph]: https://spec.commonmark.org/0.31.2/#paragraphs
type Paragraph struct {
	Position
	Inlines Inlines
}

func (b *Paragraph) printHTML(p *printer) {
	p.html("<p>")
	b.Inlines.printHTML(p)
	p.html("</p>\n")
}

func (b *Paragraph) printMarkdown(p *printer) {
	b.Inlines.printMarkdown(p)
}

func (b *Paragraph) printText(p *printer) {
	b.Inlines.printText(p)
}

func (b *Paragraph) printLaTeX(p *printer) {
	b.Inlines.printLaTeX(p)
}

func (b *Paragraph) printTypst(p *printer) {
	b.Inlines.printTypst(p)
}

func (b *Paragraph) native(e *encoder) node {
	return node{T: "Para", C: nativeInlines(b.Inlines)}
}

// plain returns the Plain node used for b directly inside a tight list item.
func (b *Paragraph) plain() node {
	return node{T: "Plain", C: nativeInlines(b.Inlines)}
}

// A paraBuilder is a [blockBuilder] for a [Paragraph].
type paraBuilder struct {
	text  []string // each line of the paragraph
	table *tableBuilder
}

// startParagraph handles a line that starts no other block:
// it continues the open paragraph or table, or starts a new paragraph.
func startParagraph(p *parser, s line) {
	b := p.para()
	indented := p.lineDepth == len(p.stack)-2 // fully indented, no lazy continuation
	text := s.trimSpaceString()

	if b != nil && b.table != nil {
		if indented && text != "" && text != "|" {
			b.table.addRow(text)
			return
		}
		// A blank line, a lazy continuation line,
		// or a line holding only a pipe ends the table.
		b = nil
	}

	if p.Table && b != nil && indented && len(b.text) > 0 && isTableStart(b.text[len(b.text)-1], text) {
		// s is the delimiter row and the last paragraph line is the header row.
		// Move the header into a new paragraph that holds only the table.
		// The old paragraph may end up empty, which build handles.
		hdr := b.text[len(b.text)-1]
		b.text = b.text[:len(b.text)-1]
		tb := new(paraBuilder)
		p.addBlock(tb)
		tb.table = new(tableBuilder)
		tb.table.start(hdr, text)
		return
	}

	if b != nil {
		for i := p.lineDepth; i < len(p.stack); i++ {
			p.stack[i].pos.EndLine = p.lineno
		}
	} else {
		b = new(paraBuilder)
		p.addBlock(b)
	}
	b.text = append(b.text, text)
}

// extend always refuses the line: startParagraph handles
// continuation, which it must do for lazy continuation lines anyway.
func (b *paraBuilder) extend(p *parser, s line) (line, bool) {
	return s, false
}

func (b *paraBuilder) build(p *parser) Block {
	if b.table != nil {
		return b.table.build(p)
	}

	s := strings.Join(b.text, "\n")

	// Link reference definitions at the start of the paragraph
	// are recorded and removed.
	for s != "" {
		end, ok := parseLinkRefDef(p, s)
		if !ok {
			break
		}
		s = s[skipSpace(s, end):]
	}

	// The paragraph can be empty if it held only definitions
	// or if its only line became a table header.
	if s == "" {
		return nil
	}

	// The last line of b.text may have moved into a table.
	pos := p.pos()
	pos.EndLine = pos.StartLine + len(b.text) - 1
	para := &Paragraph{Position: pos}
	p.newText(&para.Inlines, s)
	return para
}
