// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mdconv converts documents between markup dialects.
//
// A reader parses input into a [Document], a tree of [Block] and [Inline]
// values that mirrors the Pandoc document model restricted to what
// GitHub-flavored Markdown can express. A writer renders that tree into an
// output dialect. [Read], [Render], and [Convert] select readers and writers
// by name; see [Readers] and [Writers] for the known names.
//
// The GFM reader is [Parser.Parse]. The native reader and writer speak
// Pandoc's JSON interchange format, so a Document can be handed to or
// received from pandoc itself.
package mdconv

// A Document is a parsed document: an ordered sequence of blocks.
// The document exclusively owns its blocks; there is no sharing
// between nodes and no back references.
type Document struct {
	Blocks []Block
}

// A Position records the source lines spanned by a [Block].
// Lines are numbered from 1. Documents decoded from the native
// format have zero positions.
type Position struct {
	StartLine int
	EndLine   int
}

// Pos returns p. It is promoted into every block type.
func (p Position) Pos() Position { return p }

// A Block is a block-level element, one of
// [Paragraph], [Header], [BulletList], [OrderedList], [ListItem],
// [BlockQuote], [CodeBlock], [Table], and [ThematicBreak].
//
// The set is closed: every writer implements each unexported method,
// so adding a block type does not compile until every writer handles it.
type Block interface {
	Pos() Position

	printHTML(*printer)
	printMarkdown(*printer)
	printText(*printer)
	printLaTeX(*printer)
	printTypst(*printer)
	native(*encoder) node
}

// Walk calls fn for every block, list item, and inline in doc,
// in document order. If fn returns false for a node,
// Walk does not visit that node's children.
func Walk(doc *Document, fn func(n any) bool) {
	for _, b := range doc.Blocks {
		walkBlock(b, fn)
	}
}

func walkBlock(b Block, fn func(any) bool) {
	if !fn(b) {
		return
	}
	switch b := b.(type) {
	case *Paragraph:
		walkInlines(b.Inlines, fn)
	case *Header:
		walkInlines(b.Inlines, fn)
	case *BlockQuote:
		for _, c := range b.Blocks {
			walkBlock(c, fn)
		}
	case *BulletList:
		for _, item := range b.Items {
			walkBlock(item, fn)
		}
	case *OrderedList:
		for _, item := range b.Items {
			walkBlock(item, fn)
		}
	case *ListItem:
		for _, c := range b.Blocks {
			walkBlock(c, fn)
		}
	case *Table:
		for _, cell := range b.Header {
			walkInlines(cell, fn)
		}
		for _, row := range b.Rows {
			for _, cell := range row {
				walkInlines(cell, fn)
			}
		}
	}
}

func walkInlines(list Inlines, fn func(any) bool) {
	for _, x := range list {
		if !fn(x) {
			continue
		}
		switch x := x.(type) {
		case *Emphasis:
			walkInlines(x.Inner, fn)
		case *Strong:
			walkInlines(x.Inner, fn)
		case *Strikethrough:
			walkInlines(x.Inner, fn)
		case *Link:
			walkInlines(x.Inner, fn)
		}
	}
}

// printMarkdownBlocks prints a sequence of sibling blocks,
// separating them by a blank line unless tight is set.
// Adjacent lists of the same kind get alternating markers
// so that they stay separate lists when parsed again.
func printMarkdownBlocks(bs []Block, p *printer, tight bool) {
	var prev Block
	var bullet, delim byte
	for bn, b := range bs {
		if bn > 0 {
			p.nl()
			if !tight || blankBetween(prev, b) {
				p.nl()
			}
		}
		switch b := b.(type) {
		case *BulletList:
			if _, ok := prev.(*BulletList); ok && bullet == '-' {
				bullet = '*'
			} else {
				bullet = '-'
			}
			p.bullet = bullet
		case *OrderedList:
			d := b.delim()
			if _, ok := prev.(*OrderedList); ok && delim == d {
				d = otherDelim(d)
			}
			delim = d
			p.delim = d
		}
		b.printMarkdown(p)
		prev = b
	}
}

// blankBetween reports whether b needs a blank line after prev
// even in a tight list, so that it is not read as a lazy
// continuation of prev.
func blankBetween(prev, b Block) bool {
	switch b := b.(type) {
	case *Paragraph:
		switch prev.(type) {
		case *Paragraph, *BlockQuote, *BulletList, *OrderedList:
			return true
		}
	case *OrderedList:
		// Only a list starting at 1 can interrupt a paragraph.
		_, ok := prev.(*Paragraph)
		return ok && b.Start != 1
	}
	return false
}

// ToMarkdown returns the GitHub-flavored Markdown form of doc.
func ToMarkdown(doc *Document) string {
	p := newPrinter(writeMarkdown, nil)
	printMarkdownBlocks(doc.Blocks, p, false)
	return p.finish()
}
