// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import "strings"

// A ThematicBreak is a [Block] representing a [thematic break],
// usually displayed as a horizontal rule (<hr> tag).
//
// [thematic break]: https://spec.commonmark.org/0.31.2/#thematic-breaks
type ThematicBreak struct {
	Position
}

func (b *ThematicBreak) printHTML(p *printer) {
	p.html("<hr />\n")
}

func (b *ThematicBreak) printMarkdown(p *printer) {
	p.md("***")
}

func (b *ThematicBreak) printText(p *printer) {
	p.raw("--------")
}

func (b *ThematicBreak) printLaTeX(p *printer) {
	p.raw(`\begin{center}\rule{0.5\linewidth}{0.5pt}\end{center}`)
}

func (b *ThematicBreak) printTypst(p *printer) {
	p.raw("#line(length: 100%)")
}

func (b *ThematicBreak) native(e *encoder) node {
	return node{T: "HorizontalRule"}
}

// startThematicBreak is a [starter] for a [ThematicBreak].
func startThematicBreak(p *parser, s line) (line, bool) {
	if !trimThematicBreak(&s) {
		return s, false
	}
	// A "---" delimiter row under a pipe header starts a table instead.
	if b := p.para(); b != nil && p.Table && b.table == nil && p.nextB() == blockBuilder(b) && len(b.text) > 0 {
		if last := b.text[len(b.text)-1]; strings.IndexByte(last, '|') >= 0 && isTableStart(last, s.trimSpaceString()) {
			return s, false
		}
	}
	p.doneBlock(&ThematicBreak{Position{p.lineno, p.lineno}})
	return line{}, true
}

// trimThematicBreak attempts to trim a thematic break from s,
// reporting whether it was successful.
// See https://spec.commonmark.org/0.31.2/#thematic-breaks.
func trimThematicBreak(s *line) bool {
	t := *s
	t.trimSpace(0, 3, false)
	c := t.peek()
	if c != '-' && c != '_' && c != '*' {
		return false
	}
	for i := 0; ; i++ {
		if !t.trim(c) {
			if i < 3 {
				return false
			}
			break
		}
		t.skipSpace()
	}
	if !t.eof() {
		return false
	}
	return true
}

// A HardBreak is an [Inline] representing a hard line break (<br> tag).
type HardBreak struct{}

func (x *HardBreak) printHTML(p *printer) {
	p.html("<br />\n")
}

func (x *HardBreak) printMarkdown(p *printer) {
	p.md(`\`)
	p.nl()
}

func (x *HardBreak) printText(p *printer) {
	p.nl()
}

func (x *HardBreak) printLaTeX(p *printer) {
	p.raw("\\\\\n")
}

func (x *HardBreak) printTypst(p *printer) {
	p.raw(`\`)
	p.nl()
}

func (x *HardBreak) appendNative(dst []node) []node {
	return append(dst, node{T: "LineBreak"})
}

// A SoftBreak is an [Inline] representing a soft line break.
type SoftBreak struct{}

func (x *SoftBreak) printHTML(p *printer) {
	p.html("\n")
}

func (x *SoftBreak) printMarkdown(p *printer) {
	p.nl()
}

func (x *SoftBreak) printText(p *printer) {
	p.nl()
}

func (x *SoftBreak) printLaTeX(p *printer) {
	p.raw("\n")
}

func (x *SoftBreak) printTypst(p *printer) {
	p.nl()
}

func (x *SoftBreak) appendNative(dst []node) []node {
	return append(dst, node{T: "SoftBreak"})
}

// parseBreak is an [inlineParser] for a [SoftBreak] or [HardBreak].
// The caller has checked that s[start] is a newline.
func parseBreak(p *parser, s string, start int) (x Inline, end int, ok bool) {
	// Back up to remove trailing spaces and tabs.
	i := start
	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	if i < start {
		// The caller will emit up to start, but the spaces
		// between i and start belong to no inline.
		p.emit(i)
		p.skip(start)
	}

	end = start + 1
	if start >= 2 && s[start-1] == ' ' && s[start-2] == ' ' {
		return &HardBreak{}, end, true
	}
	return &SoftBreak{}, end, true
}
