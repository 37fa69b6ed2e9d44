// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"fmt"
	"strings"
)

// A Parser is a GitHub-flavored Markdown parser.
// The zero Parser parses plain CommonMark;
// each field enables one GitHub extension.
// [NewParser] returns a Parser with every extension enabled.
type Parser struct {
	// Table enables pipe tables.
	Table bool

	// Strikethrough enables ~~deleted~~ text.
	Strikethrough bool

	// TaskList enables "- [ ]" and "- [x]" task list items.
	TaskList bool

	// AutoLinkText enables recognizing bare URLs, www. links,
	// and email addresses as links.
	AutoLinkText bool

	// Emoji enables :name: emoji shortcodes.
	Emoji bool

	// Mentions enables @user mentions and #123 issue references.
	Mentions bool
}

// NewParser returns a Parser with all GitHub extensions enabled.
func NewParser() *Parser {
	return &Parser{
		Table:         true,
		Strikethrough: true,
		TaskList:      true,
		AutoLinkText:  true,
		Emoji:         true,
		Mentions:      true,
	}
}

// A blockBuilder accumulates the lines of one block under construction.
//
// extend is called for each new line while the block is open.
// It trims the block's own prefix (such as "> " for a quote)
// and reports whether the line continues the block.
//
// build is called when the block is closed and returns the final Block.
type blockBuilder interface {
	extend(p *parser, s line) (line, bool)
	build(p *parser) Block
}

// An openBlock is an entry on the parser's stack of open blocks.
type openBlock struct {
	builder blockBuilder
	inner   []Block
	pos     Position
}

// A linkDef is a resolved link reference definition.
type linkDef struct {
	URL   string
	Title string
}

// A parser holds the state for a single call to [Parser.Parse].
type parser struct {
	*Parser

	lineno    int
	stack     []openBlock
	lineDepth int
	root      *Document

	// links is the reference definition table.
	// It is filled while closing paragraphs and consulted when
	// the inline parser resolves [text][label] and [label] links.
	links map[string]linkDef

	// texts holds the inline text of every block,
	// parsed only once all link definitions are known.
	texts []pendingText

	// inline parsing state
	s         string
	emitted   int
	list      []Inline
	backticks backtickParser
}

// A starter tries to start a new block at line s.
// If it succeeds, it returns the rest of the line, to be
// processed as the content of the new block, and ok=true.
type starter func(p *parser, s line) (line, bool)

var starters = []starter{
	startBlockQuote,
	startATXHeader,
	startSetextHeader,
	startThematicBreak,
	startListItem,
	startFencedCodeBlock,
	startIndentedCodeBlock,
}

// Parse parses text as GitHub-flavored Markdown and returns the document.
// Parse never fails: malformed markup degrades to literal text.
func (p *Parser) Parse(text string) *Document {
	var ps parser
	ps.Parser = p
	text = strings.ReplaceAll(text, "\x00", "�")

	ps.lineDepth = -1
	ps.addBlock(&rootBuilder{})
	for text != "" {
		var ln string
		var nl byte
		i := strings.Index(text, "\n")
		j := strings.Index(text, "\r")
		switch {
		case j >= 0 && (i < 0 || j < i):
			ln = text[:j]
			if i == j+1 {
				text = text[j+2:]
				nl = '\r' + '\n'
			} else {
				text = text[j+1:]
				nl = '\r'
			}
		case i >= 0:
			ln, text = text[:i], text[i+1:]
			nl = '\n'
		default:
			ln, text = text, ""
		}
		ps.lineno++
		ps.addLine(makeLine(ln, nl))
	}
	ps.trimStack(0)
	for _, t := range ps.texts {
		*t.dst = ps.inline(t.raw)
	}
	return ps.root
}

// parse is Parse with a recover, so that a broken invariant in the
// parser surfaces as a structural error instead of a crash.
func (p *Parser) parse(text string) (doc *Document, err error) {
	defer func() {
		if e := recover(); e != nil {
			doc = nil
			err = &ParseError{Path: "markdown", Err: fmt.Errorf("%v", e)}
		}
	}()
	return p.Parse(text), nil
}

// addLine adds a single line of input to the parse.
func (p *parser) addLine(s line) {
	// Process continued prefixes.
	p.lineDepth = 0
	for ; p.lineDepth+1 < len(p.stack); p.lineDepth++ {
		old := s
		var ok bool
		s, ok = p.stack[p.lineDepth+1].builder.extend(p, s)
		if !old.isBlank() && (ok || s != old) {
			p.stack[p.lineDepth+1].pos.EndLine = p.lineno
		}
		if !ok {
			break
		}
	}

	if s.isBlank() {
		p.trimStack(p.lineDepth + 1)
		return
	}

	// Process new prefixes, if any.
Prefixes:
	for _, start := range starters {
		if l, ok := start(p, s); ok {
			s = l
			if s.isBlank() {
				return
			}
			p.lineDepth++
			goto Prefixes
		}
	}

	startParagraph(p, s)
}

// curB returns the builder at the current line depth.
func (p *parser) curB() blockBuilder {
	if p.lineDepth < len(p.stack) {
		return p.stack[p.lineDepth].builder
	}
	return nil
}

// nextB returns the builder just inside the current line depth, if any.
func (p *parser) nextB() blockBuilder {
	if p.lineDepth+1 < len(p.stack) {
		return p.stack[p.lineDepth+1].builder
	}
	return nil
}

// trimStack closes open blocks until only depth remain.
func (p *parser) trimStack(depth int) {
	if len(p.stack) < depth {
		panic("trimStack")
	}
	for len(p.stack) > depth {
		p.closeBlock()
	}
}

// addBlock closes any unmatched open blocks and
// opens a new block built by c.
func (p *parser) addBlock(c blockBuilder) {
	p.trimStack(p.lineDepth + 1)
	p.stack = append(p.stack, openBlock{})
	ob := &p.stack[len(p.stack)-1]
	ob.builder = c
	ob.pos.StartLine = p.lineno
	ob.pos.EndLine = p.lineno
}

// doneBlock adds a complete, single-line block b.
func (p *parser) doneBlock(b Block) {
	p.trimStack(p.lineDepth + 1)
	ob := &p.stack[len(p.stack)-1]
	ob.inner = append(ob.inner, b)
}

// para returns the open paragraph builder, if the innermost open block is one.
func (p *parser) para() *paraBuilder {
	if b, ok := p.stack[len(p.stack)-1].builder.(*paraBuilder); ok {
		return b
	}
	return nil
}

// closeBlock builds the innermost open block and
// appends it to its parent.
func (p *parser) closeBlock() Block {
	ob := &p.stack[len(p.stack)-1]
	blk := ob.builder.build(p)
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) == 0 {
		p.root = &Document{Blocks: ob.inner}
		return nil
	}
	if blk != nil {
		parent := &p.stack[len(p.stack)-1]
		parent.inner = append(parent.inner, blk)
	}
	return blk
}

// pos returns the position of the block being built.
func (p *parser) pos() Position {
	return p.stack[len(p.stack)-1].pos
}

// blocks returns the completed children of the block being built.
func (p *parser) blocks() []Block {
	return p.stack[len(p.stack)-1].inner
}

// last returns the most recently completed child of the innermost open block.
func (p *parser) last() Block {
	ob := &p.stack[len(p.stack)-1]
	if len(ob.inner) == 0 {
		return nil
	}
	return ob.inner[len(ob.inner)-1]
}

// deleteLast removes the most recently completed child of the innermost open block.
func (p *parser) deleteLast() {
	ob := &p.stack[len(p.stack)-1]
	ob.inner = ob.inner[:len(ob.inner)-1]
}

// link returns the definition for the normalized label, if any.
func (p *parser) link(label string) (linkDef, bool) {
	def, ok := p.links[label]
	return def, ok
}

// defineLink records a definition for the normalized label.
// The first definition of a label wins.
func (p *parser) defineLink(label string, def linkDef) {
	if p.links == nil {
		p.links = make(map[string]linkDef)
	}
	if _, ok := p.links[label]; !ok {
		p.links[label] = def
	}
}

// A pendingText is inline text waiting to be parsed into *dst.
type pendingText struct {
	dst *Inlines
	raw string
}

// newText arranges for raw to be parsed as inline text into *dst
// after the block structure is complete.
func (p *parser) newText(dst *Inlines, raw string) {
	p.texts = append(p.texts, pendingText{dst, raw})
}

// moveText redirects the pending text for from into to.
func (p *parser) moveText(from, to *Inlines) {
	for i := len(p.texts) - 1; i >= 0; i-- {
		if p.texts[i].dst == from {
			p.texts[i].dst = to
			return
		}
	}
}

// A rootBuilder is the [blockBuilder] at the bottom of the stack.
// Its build result is collected by closeBlock into the Document.
type rootBuilder struct{}

func (b *rootBuilder) extend(p *parser, s line) (line, bool) {
	return s, true
}

func (b *rootBuilder) build(p *parser) Block {
	return nil
}
