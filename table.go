// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// An Align is the alignment of a table column.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return ""
}

// A Table is a [Block] representing a [table],
// a GitHub-flavored Markdown extension.
// Every row has exactly len(Header) cells.
//
// [table]: https://github.github.com/gfm/#tables-extension-
type Table struct {
	Position
	Align  []Align   // per-column alignment
	Header []Inlines // header cells
	Rows   [][]Inlines
}

// cols returns the number of columns.
func (t *Table) cols() int {
	return len(t.Header)
}

// align returns the alignment of column i.
func (t *Table) align(i int) Align {
	if i < len(t.Align) {
		return t.Align[i]
	}
	return AlignNone
}

// row returns r normalized to the table's column count.
func (t *Table) row(r []Inlines) []Inlines {
	if len(r) == t.cols() {
		return r
	}
	out := make([]Inlines, t.cols())
	copy(out, r)
	return out
}

func (t *Table) printHTML(p *printer) {
	p.html("<table>\n")
	p.html("<thead>\n")
	p.html("<tr>\n")
	for i, hdr := range t.Header {
		p.html("<th")
		if a := t.align(i); a != AlignNone {
			p.html(` align="`, a.String(), `"`)
		}
		p.html(">")
		hdr.printHTML(p)
		p.html("</th>\n")
	}
	p.html("</tr>\n")
	p.html("</thead>\n")
	if len(t.Rows) > 0 {
		p.html("<tbody>\n")
		for _, row := range t.Rows {
			p.html("<tr>\n")
			for i, cell := range t.row(row) {
				p.html("<td")
				if a := t.align(i); a != AlignNone {
					p.html(` align="`, a.String(), `"`)
				}
				p.html(">")
				cell.printHTML(p)
				p.html("</td>\n")
			}
			p.html("</tr>\n")
		}
		p.html("</tbody>\n")
	}
	p.html("</table>\n")
}

// markdownCell returns the Markdown text for one cell,
// with pipes escaped so they do not end the cell.
func markdownCell(p *printer, cell Inlines) string {
	sub := newPrinter(writeMarkdown, p.opts)
	for _, x := range cell {
		if _, ok := x.(*SoftBreak); ok {
			sub.md(" ")
			continue
		}
		x.printMarkdown(sub)
	}
	return strings.ReplaceAll(sub.buf.String(), "|", `\|`)
}

func (t *Table) printMarkdown(p *printer) {
	hdr := make([]string, t.cols())
	width := make([]int, t.cols())
	for i, cell := range t.Header {
		hdr[i] = markdownCell(p, cell)
		width[i] = max(3, runewidth.StringWidth(hdr[i]))
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rows[r] = make([]string, t.cols())
		for i, cell := range t.row(row) {
			rows[r][i] = markdownCell(p, cell)
			width[i] = max(width[i], runewidth.StringWidth(rows[r][i]))
		}
	}

	t.printMarkdownRow(p, hdr, width)
	p.nl()
	p.md("|")
	for i, w := range width {
		a := t.align(i)
		dashes := w
		p.md(" ")
		if a == AlignLeft || a == AlignCenter {
			p.md(":")
			dashes--
		}
		if a == AlignRight || a == AlignCenter {
			dashes--
		}
		p.md(strings.Repeat("-", dashes))
		if a == AlignRight || a == AlignCenter {
			p.md(":")
		}
		p.md(" |")
	}
	for _, row := range rows {
		p.nl()
		t.printMarkdownRow(p, row, width)
	}
}

func (t *Table) printMarkdownRow(p *printer, cells []string, width []int) {
	p.md("|")
	for i, cell := range cells {
		p.md(" ", paddedCell(cell, t.align(i), width[i]), " |")
	}
	p.noTrim()
}

// paddedCell returns text padded with spaces to display width w,
// positioned according to a.
func paddedCell(text string, a Align, w int) string {
	n := runewidth.StringWidth(text)
	if n >= w {
		return text
	}
	switch a {
	case AlignRight:
		return strings.Repeat(" ", w-n) + text
	case AlignCenter:
		left := (w - n) / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", w-n-left)
	}
	return text + strings.Repeat(" ", w-n)
}

func (t *Table) printText(p *printer) {
	printCells := func(cells []Inlines) {
		for i, cell := range cells {
			if i > 0 {
				p.raw("\t")
			}
			cell.printText(p)
		}
	}
	printCells(t.Header)
	for _, row := range t.Rows {
		p.nl()
		printCells(t.row(row))
	}
}

func (t *Table) printLaTeX(p *printer) {
	p.raw(`\begin{tabular}{|`)
	for i := range t.Header {
		switch t.align(i) {
		case AlignLeft:
			p.raw("l|")
		case AlignRight:
			p.raw("r|")
		default:
			p.raw("c|")
		}
	}
	p.raw("} \\hline\n")
	printRow := func(cells []Inlines) {
		for i, cell := range cells {
			if i > 0 {
				p.raw(" & ")
			}
			cell.printLaTeX(p)
		}
		p.raw(" \\\\ \\hline\n")
	}
	printRow(t.Header)
	for _, row := range t.Rows {
		printRow(t.row(row))
	}
	p.raw(`\end{tabular}`)
}

func (t *Table) printTypst(p *printer) {
	p.raw("#table(")
	n := p.push("  ")
	p.nl()
	p.raw("columns: ", strconv.Itoa(t.cols()), ",")
	p.nl()
	p.raw("align: (")
	for i := range t.Header {
		if i > 0 {
			p.raw(", ")
		}
		switch a := t.align(i); a {
		case AlignNone:
			p.raw("auto")
		default:
			p.raw(a.String())
		}
	}
	if t.cols() == 1 {
		p.raw(",")
	}
	p.raw("),")
	printRow := func(cells []Inlines) {
		p.nl()
		for i, cell := range cells {
			if i > 0 {
				p.raw(" ")
			}
			p.raw("[")
			cell.printTypst(p)
			p.raw("],")
		}
	}
	printRow(t.Header)
	for _, row := range t.Rows {
		printRow(t.row(row))
	}
	p.pop(n)
	p.nl()
	p.raw(")")
}

func (t *Table) native(e *encoder) node {
	colspecs := make([]any, t.cols())
	for i := range colspecs {
		colspecs[i] = []any{node{T: nativeAlign(t.align(i))}, node{T: "ColWidthDefault"}}
	}
	head := []any{emptyAttr(), []any{nativeRow(t.Header)}}
	rows := make([]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, nativeRow(t.row(row)))
	}
	body := []any{emptyAttr(), 0, []any{}, rows}
	foot := []any{emptyAttr(), []any{}}
	caption := []any{nil, []any{}}
	return node{T: "Table", C: []any{emptyAttr(), caption, colspecs, head, []any{body}, foot}}
}

func nativeAlign(a Align) string {
	switch a {
	case AlignLeft:
		return "AlignLeft"
	case AlignCenter:
		return "AlignCenter"
	case AlignRight:
		return "AlignRight"
	}
	return "AlignDefault"
}

func nativeRow(cells []Inlines) []any {
	out := make([]any, 0, len(cells))
	for _, cell := range cells {
		content := []node{}
		if len(cell) > 0 {
			content = append(content, node{T: "Plain", C: nativeInlines(cell)})
		}
		out = append(out, []any{emptyAttr(), node{T: "AlignDefault"}, 1, 1, content})
	}
	return []any{emptyAttr(), out}
}

func isTableSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func tableTrimSpace(s string) string {
	i := 0
	for i < len(s) && isTableSpace(s[i]) {
		i++
	}
	j := len(s)
	for j > i && isTableSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

func tableTrimOuter(row string) string {
	row = tableTrimSpace(row)
	if len(row) > 0 && row[0] == '|' {
		row = row[1:]
	}
	if len(row) > 0 && row[len(row)-1] == '|' && !tableEscaped(row, len(row)-1) {
		row = row[:len(row)-1]
	}
	return row
}

// isTableStart reports whether hdr and delim are the header row
// and delimiter row of a table: delim must be a row of dash cells
// with optional alignment colons, with as many cells as hdr.
func isTableStart(hdr, delim string) bool {
	// This runs on every paragraph line, so it must be quick.
	col := 0
	delim = tableTrimOuter(delim)
	i := 0
	for ; ; col++ {
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i >= len(delim) {
			break
		}
		if i < len(delim) && delim[i] == ':' {
			i++
		}
		if i >= len(delim) || delim[i] != '-' {
			return false
		}
		i++
		for i < len(delim) && delim[i] == '-' {
			i++
		}
		if i < len(delim) && delim[i] == ':' {
			i++
		}
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i < len(delim) && delim[i] == '|' {
			i++
		}
	}
	return col == tableCount(tableTrimOuter(hdr))
}

// tableEscaped reports whether the pipe at row[i] is escaped.
// A backslash before a pipe always escapes it, even when
// the backslash is itself preceded by another backslash:
// the pipe split happens before any other escape processing.
func tableEscaped(row string, i int) bool {
	return i > 0 && row[i-1] == '\\'
}

// tableCount returns the number of cells in row,
// which has already had its outer pipes trimmed.
func tableCount(row string) int {
	col := 1
	for i := 0; i < len(row); i++ {
		if row[i] == '|' && !tableEscaped(row, i) {
			col++
		}
	}
	return col
}

// A tableBuilder collects the rows of a [Table].
// It lives inside a [paraBuilder], since a table
// starts out looking like a paragraph.
type tableBuilder struct {
	hdr   string
	delim string
	rows  []string
}

func (b *tableBuilder) start(hdr, delim string) {
	b.hdr = tableTrimOuter(hdr)
	b.delim = tableTrimOuter(delim)
}

func (b *tableBuilder) addRow(row string) {
	b.rows = append(b.rows, tableTrimOuter(row))
}

func (b *tableBuilder) build(p *parser) Block {
	pos := p.pos()
	pos.StartLine-- // builder does not count header
	pos.EndLine = pos.StartLine + 1 + len(b.rows)
	width := tableCount(b.hdr)
	t := &Table{
		Position: pos,
		Align:    b.parseAlign(b.delim, width),
		Header:   make([]Inlines, width),
		Rows:     make([][]Inlines, len(b.rows)),
	}
	b.parseRow(p, b.hdr, t.Header)
	for i, row := range b.rows {
		t.Rows[i] = make([]Inlines, width)
		b.parseRow(p, row, t.Rows[i])
	}
	return t
}

// parseRow splits row into cells, queueing each for inline parsing
// into out. Extra cells are discarded; missing cells stay empty.
func (b *tableBuilder) parseRow(p *parser, row string, out []Inlines) {
	start := 0
	n := 0
	unesc := nop
	for i := 0; i < len(row) && n < len(out); i++ {
		if row[i] != '|' {
			continue
		}
		if tableEscaped(row, i) {
			// An escaped pipe is a literal pipe in the cell.
			unesc = tableUnescape
			continue
		}
		p.newText(&out[n], unesc(tableTrimSpace(row[start:i])))
		n++
		start = i + 1
		unesc = nop
	}
	if n < len(out) {
		p.newText(&out[n], unesc(tableTrimSpace(row[start:])))
	}
}

func nop(text string) string {
	return text
}

func tableUnescape(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) && text[i+1] == '|' {
			i++
			c = '|'
		}
		out = append(out, c)
	}
	return string(out)
}

func (b *tableBuilder) parseAlign(delim string, n int) []Align {
	align := make([]Align, 0, n)
	start := 0
	for i := 0; i < len(delim) && len(align) < n; i++ {
		if delim[i] == '|' {
			align = append(align, tableAlign(delim[start:i]))
			start = i + 1
		}
	}
	if len(align) < n {
		align = append(align, tableAlign(delim[start:]))
	}
	return align
}

func tableAlign(cell string) Align {
	cell = tableTrimSpace(cell)
	if cell == "" {
		return AlignNone
	}
	l := cell[0] == ':'
	r := cell[len(cell)-1] == ':'
	switch {
	case l && r:
		return AlignCenter
	case l:
		return AlignLeft
	case r:
		return AlignRight
	}
	return AlignNone
}
