// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"fmt"
	"strconv"
	"strings"
)

// A TaskState records whether a [ListItem] is a task list item
// and, if so, whether it is checked.
type TaskState int

const (
	TaskUnset     TaskState = iota // not a task item
	TaskUnchecked                  // "- [ ] item"
	TaskChecked                    // "- [x] item"
)

// A BulletList is a [Block] representing a bullet [list].
// A list is loose if blank lines separate its items or the blocks
// inside them and at least one item holds a paragraph directly.
// Loose lists render their paragraphs with spacing; tight lists do not.
//
// [list]: https://spec.commonmark.org/0.31.2/#lists
type BulletList struct {
	Position
	Loose bool
	Items []*ListItem
}

// An OrderedList is a [Block] representing an ordered [list].
// Only the first item's number is significant; later items count up from Start.
//
// [list]: https://spec.commonmark.org/0.31.2/#lists
type OrderedList struct {
	Position
	Start int
	Delim byte // '.' or ')'
	Loose bool
	Items []*ListItem
}

// A ListItem is a [Block] representing a [list item].
// It only appears directly inside a [BulletList] or [OrderedList].
//
// [list item]: https://spec.commonmark.org/0.31.2/#list-items
type ListItem struct {
	Position
	Task   TaskState
	Blocks []Block
}

// delim returns the list's delimiter, defaulting to '.'.
func (b *OrderedList) delim() byte {
	if b.Delim == ')' {
		return ')'
	}
	return '.'
}

func otherDelim(d byte) byte {
	if d == '.' {
		return ')'
	}
	return '.'
}

func (b *BulletList) printHTML(p *printer) {
	p.html("<ul>\n")
	for _, item := range b.Items {
		item.printItemHTML(p, b.Loose)
	}
	p.html("</ul>\n")
}

func (b *OrderedList) printHTML(p *printer) {
	p.html("<ol")
	if b.Start != 1 {
		p.html(` start="`, strconv.Itoa(b.Start), `"`)
	}
	p.html(">\n")
	for _, item := range b.Items {
		item.printItemHTML(p, b.Loose)
	}
	p.html("</ol>\n")
}

func (b *ListItem) printHTML(p *printer) {
	b.printItemHTML(p, true)
}

func (b *ListItem) printCheckboxHTML(p *printer) {
	switch b.Task {
	case TaskUnchecked:
		p.html(`<input type="checkbox" disabled="" /> `)
	case TaskChecked:
		p.html(`<input type="checkbox" checked="" disabled="" /> `)
	}
}

// printItemHTML prints the item. In a tight list,
// paragraphs directly in the item print without <p> tags.
func (b *ListItem) printItemHTML(p *printer, loose bool) {
	p.html("<li>")
	if len(b.Blocks) == 0 {
		b.printCheckboxHTML(p)
	} else if _, ok := b.Blocks[0].(*Paragraph); !ok {
		b.printCheckboxHTML(p)
		p.html("\n")
	} else if loose {
		p.html("\n")
	}
	for i, c := range b.Blocks {
		para, ok := c.(*Paragraph)
		switch {
		case ok && !loose:
			if i == 0 {
				b.printCheckboxHTML(p)
			}
			para.Inlines.printHTML(p)
			if i+1 < len(b.Blocks) {
				p.html("\n")
			}
		case ok && i == 0 && b.Task != TaskUnset:
			p.html("<p>")
			b.printCheckboxHTML(p)
			para.Inlines.printHTML(p)
			p.html("</p>\n")
		default:
			c.printHTML(p)
		}
	}
	p.html("</li>\n")
}

func (b *BulletList) printMarkdown(p *printer) {
	bullet := p.bullet
	if bullet == 0 {
		bullet = '-'
	}
	marker := string(bullet) + " "
	for i, item := range b.Items {
		if i > 0 {
			p.nl()
			if b.Loose {
				p.nl()
			}
		}
		item.printItemMarkdown(p, marker, b.Loose)
	}
}

func (b *OrderedList) printMarkdown(p *printer) {
	delim := p.delim
	if delim == 0 {
		delim = b.delim()
	}
	for i, item := range b.Items {
		if i > 0 {
			p.nl()
			if b.Loose {
				p.nl()
			}
		}
		item.printItemMarkdown(p, fmt.Sprintf("%d%c ", b.Start+i, delim), b.Loose)
	}
}

func (b *ListItem) printMarkdown(p *printer) {
	b.printItemMarkdown(p, "- ", true)
}

func (b *ListItem) taskMarker() string {
	switch b.Task {
	case TaskUnchecked:
		return "[ ] "
	case TaskChecked:
		return "[x] "
	}
	return ""
}

func (b *ListItem) printItemMarkdown(p *printer, marker string, loose bool) {
	p.md(marker, b.taskMarker())
	defer p.pop(p.push(strings.Repeat(" ", len(marker))))
	printMarkdownBlocks(b.Blocks, p, !loose)
}

func (b *BulletList) printText(p *printer) {
	for i, item := range b.Items {
		if i > 0 {
			p.nl()
			if b.Loose {
				p.nl()
			}
		}
		item.printItemText(p, "- ", b.Loose)
	}
}

func (b *OrderedList) printText(p *printer) {
	for i, item := range b.Items {
		if i > 0 {
			p.nl()
			if b.Loose {
				p.nl()
			}
		}
		item.printItemText(p, fmt.Sprintf("%d%c ", b.Start+i, b.delim()), b.Loose)
	}
}

func (b *ListItem) printText(p *printer) {
	b.printItemText(p, "- ", true)
}

func (b *ListItem) printItemText(p *printer, marker string, loose bool) {
	p.raw(marker, b.taskMarker())
	defer p.pop(p.push(strings.Repeat(" ", len(marker))))
	printTextBlocks(b.Blocks, p, !loose)
}

func (b *BulletList) printLaTeX(p *printer) {
	p.raw(`\begin{itemize}`)
	if !b.Loose {
		p.raw("\n", `\tightlist`)
	}
	for _, item := range b.Items {
		item.printItemLaTeX(p, b.Loose)
	}
	p.raw("\n", `\end{itemize}`)
}

// enumCounters names the LaTeX counters of nested enumerate environments.
var enumCounters = [...]string{"enumi", "enumii", "enumiii", "enumiv"}

func (b *OrderedList) printLaTeX(p *printer) {
	p.enumDepth++
	defer func() { p.enumDepth-- }()
	p.raw(`\begin{enumerate}`)
	if b.Start != 1 && p.enumDepth <= len(enumCounters) {
		p.raw("\n", `\setcounter{`, enumCounters[p.enumDepth-1], "}{", strconv.Itoa(b.Start-1), "}")
	}
	if !b.Loose {
		p.raw("\n", `\tightlist`)
	}
	for _, item := range b.Items {
		item.printItemLaTeX(p, b.Loose)
	}
	p.raw("\n", `\end{enumerate}`)
}

func (b *ListItem) printLaTeX(p *printer) {
	b.printItemLaTeX(p, true)
}

func (b *ListItem) printItemLaTeX(p *printer, loose bool) {
	p.raw("\n", `\item`)
	switch b.Task {
	case TaskUnchecked:
		p.raw("[{[ ]}]")
	case TaskChecked:
		p.raw("[{[x]}]")
	}
	p.raw(" ")
	printLaTeXBlocks(b.Blocks, p, !loose)
}

func (b *BulletList) printTypst(p *printer) {
	for i, item := range b.Items {
		if i > 0 {
			p.nl()
			if b.Loose {
				p.nl()
			}
		}
		item.printItemTypst(p, "- ", b.Loose)
	}
}

func (b *OrderedList) printTypst(p *printer) {
	for i, item := range b.Items {
		if i > 0 {
			p.nl()
			if b.Loose {
				p.nl()
			}
		}
		marker := "+ "
		if b.Start != 1 {
			marker = strconv.Itoa(b.Start+i) + ". "
		}
		item.printItemTypst(p, marker, b.Loose)
	}
}

func (b *ListItem) printTypst(p *printer) {
	b.printItemTypst(p, "- ", true)
}

func (b *ListItem) printItemTypst(p *printer, marker string, loose bool) {
	p.raw(marker)
	switch b.Task {
	case TaskUnchecked:
		p.raw(taskUnchecked, " ")
	case TaskChecked:
		p.raw(taskChecked, " ")
	}
	defer p.pop(p.push(strings.Repeat(" ", len(marker))))
	printTypstBlocks(b.Blocks, p, !loose)
}

func (b *BulletList) native(e *encoder) node {
	items := make([][]node, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, e.item(item, b.Loose))
	}
	return node{T: "BulletList", C: items}
}

func (b *OrderedList) native(e *encoder) node {
	items := make([][]node, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, e.item(item, b.Loose))
	}
	delim := "Period"
	if b.delim() == ')' {
		delim = "OneParen"
	}
	attrs := []any{b.Start, node{T: "Decimal"}, node{T: delim}}
	return node{T: "OrderedList", C: []any{attrs, items}}
}

// native encodes a list item that appears outside any list
// as a single-item bullet list.
func (b *ListItem) native(e *encoder) node {
	return node{T: "BulletList", C: [][]node{e.item(b, true)}}
}

// A listBuilder is a [blockBuilder] for a list ([BulletList] or [OrderedList]).
type listBuilder struct {
	bullet byte // '-', '*', '+', '.', or ')'
	num    int  // start number of ordered list
	item   *itemBuilder
	todo   func() line
}

// An itemBuilder is a [blockBuilder] for a [ListItem].
type itemBuilder struct {
	list        *listBuilder
	width       int
	task        TaskState
	haveContent bool
}

func (b *listBuilder) build(p *parser) Block {
	blocks := p.blocks()
	pos := p.pos()

	// The list's own position can run past its last item.
	if len(blocks) > 0 {
		pos.EndLine = blocks[len(blocks)-1].Pos().EndLine
	}

	items := make([]*ListItem, 0, len(blocks))
	for _, c := range blocks {
		items = append(items, c.(*ListItem))
	}
	loose := listLoose(items)

	if b.bullet == '.' || b.bullet == ')' {
		return &OrderedList{Position: pos, Start: b.num, Delim: b.bullet, Loose: loose, Items: items}
	}
	return &BulletList{Position: pos, Loose: loose, Items: items}
}

// listLoose reports whether a list with the given items is loose:
// some items or blocks in items are separated by blank lines,
// and some item holds a paragraph directly.
func listLoose(items []*ListItem) bool {
	spaced := false
Spaced:
	for i, c := range items {
		if i+1 < len(items) && items[i+1].StartLine-c.EndLine > 1 {
			spaced = true
			break Spaced
		}
		for j, d := range c.Blocks {
			if j+1 < len(c.Blocks) && c.Blocks[j+1].Pos().StartLine-d.Pos().EndLine > 1 {
				spaced = true
				break Spaced
			}
		}
	}
	if !spaced {
		return false
	}
	for _, c := range items {
		for _, d := range c.Blocks {
			if _, ok := d.(*Paragraph); ok {
				return true
			}
		}
	}
	return false
}

func (b *itemBuilder) build(p *parser) Block {
	b.list.item = nil
	return &ListItem{Position: p.pos(), Task: b.task, Blocks: p.blocks()}
}

func (b *listBuilder) extend(p *parser, s line) (line, bool) {
	d := b.item
	if d != nil && s.trimSpace(d.width, d.width, true) || d == nil && s.isBlank() {
		return s, true
	}
	return s, false
}

func (b *itemBuilder) extend(p *parser, s line) (line, bool) {
	if s.isBlank() && !b.haveContent {
		return s, false
	}
	if s.isBlank() {
		return line{}, true
	}
	b.haveContent = true
	return s, true
}

// startListItem is a [starter] for a [ListItem], and for the list
// around it when the item does not continue an existing list.
//
// Starting an item takes two calls. The first finds the list marker,
// opens a new list if needed, and leaves a todo on the list;
// addLine then descends into the list and calls startListItem again,
// which runs the todo to open the item itself.
func startListItem(p *parser, s line) (line, bool) {
	if list, ok := p.curB().(*listBuilder); ok && list.todo != nil {
		s = list.todo()
		list.todo = nil
		return s, true
	}

	t := s
	n := 0
	for i := 0; i < 3; i++ {
		if !t.trimSpace(1, 1, false) {
			break
		}
		n++
	}
	bullet := t.peek()
	var num int
Switch:
	switch bullet {
	default:
		return s, false
	case '-', '*', '+':
		t.trim(bullet)
		n++
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		for j := t.i; ; j++ {
			if j >= len(t.text) {
				return s, false
			}
			c := t.text[j]
			if c == '.' || c == ')' {
				bullet = c
				j++
				n += j - t.i
				t.i = j
				break Switch
			}
			if c < '0' || '9' < c {
				return s, false
			}
			if j-t.i >= 9 {
				return s, false
			}
			num = num*10 + int(c) - '0'
		}
	}
	if !t.trimSpace(1, 1, true) {
		return s, false
	}
	n++

	// Up to 3 more spaces belong to the marker width,
	// unless 4 or more follow, which start indented code.
	tt := t
	m := 0
	for i := 0; i < 3 && tt.trimSpace(1, 1, false); i++ {
		m++
	}
	if !tt.trimSpace(1, 1, true) {
		n += m
		t = tt
	}

	var list *listBuilder
	if c, ok := p.nextB().(*listBuilder); ok {
		list = c
	}
	if list == nil || list.bullet != bullet {
		// “When the first list item in a list interrupts a paragraph—that is,
		// when it starts on a line that would otherwise count as
		// paragraph continuation text—then (a) the lines Ls must
		// not begin with a blank line,
		// and (b) if the list item is ordered, the start number must be 1.”
		if list == nil && p.para() != nil && (t.isBlank() || (bullet == '.' || bullet == ')') && num != 1) {
			return s, false
		}
	}

	// Point of no return.

	if list == nil || list.bullet != bullet {
		list = &listBuilder{bullet: bullet, num: num}
		p.addBlock(list)
	}

	var task TaskState
	if p.TaskList {
		task = trimTask(&t)
	}
	b := &itemBuilder{list: list, width: n, task: task, haveContent: !t.isBlank()}
	list.todo = func() line {
		p.addBlock(b)
		list.item = b
		return t
	}
	return s, true
}

// trimTask trims a task marker "[ ] ", "[x] ", or "[X] " from s,
// returning the task state it records.
// If there is no marker, trimTask leaves s unmodified and returns TaskUnset.
func trimTask(s *line) TaskState {
	if s.spaces > 0 || s.i+4 > len(s.text) {
		return TaskUnset
	}
	text := s.text[s.i:]
	if text[0] != '[' || text[2] != ']' || text[3] != ' ' && text[3] != '\t' {
		return TaskUnset
	}
	var task TaskState
	switch text[1] {
	case ' ':
		task = TaskUnchecked
	case 'x', 'X':
		task = TaskChecked
	default:
		return TaskUnset
	}
	t := *s
	t.skip(3)
	t.trimSpace(1, 1, false)
	*s = t
	return task
}
