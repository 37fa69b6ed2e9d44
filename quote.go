// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

// A BlockQuote is a [Block] representing a [block quote].
//
// [block quote]: https://spec.commonmark.org/0.31.2/#block-quotes
type BlockQuote struct {
	Position
	Blocks []Block
}

func (b *BlockQuote) printHTML(p *printer) {
	p.html("<blockquote>\n")
	for _, c := range b.Blocks {
		c.printHTML(p)
	}
	p.html("</blockquote>\n")
}

func (b *BlockQuote) printMarkdown(p *printer) {
	p.md("> ")
	defer p.pop(p.push("> "))
	printMarkdownBlocks(b.Blocks, p, false)
}

func (b *BlockQuote) printText(p *printer) {
	p.raw("  ")
	defer p.pop(p.push("  "))
	printTextBlocks(b.Blocks, p, false)
}

func (b *BlockQuote) printLaTeX(p *printer) {
	p.raw("\\begin{quote}\n")
	printLaTeXBlocks(b.Blocks, p, false)
	p.raw("\n\\end{quote}")
}

func (b *BlockQuote) printTypst(p *printer) {
	p.raw("#quote(block: true)[")
	p.nl()
	printTypstBlocks(b.Blocks, p, false)
	p.nl()
	p.raw("]")
}

func (b *BlockQuote) native(e *encoder) node {
	return node{T: "BlockQuote", C: e.blocks(b.Blocks)}
}

// A quoteBuilder is a [blockBuilder] for a block quote.
type quoteBuilder struct{}

// startBlockQuote is a [starter] for a [BlockQuote].
func startBlockQuote(p *parser, s line) (line, bool) {
	line, ok := trimQuote(s)
	if !ok {
		return s, false
	}
	p.addBlock(new(quoteBuilder))
	return line, true
}

func trimQuote(s line) (line, bool) {
	t := s
	t.trimSpace(0, 3, false)
	if !t.trim('>') {
		return s, false
	}
	t.trimSpace(0, 1, true)
	return t, true
}

func (b *quoteBuilder) extend(p *parser, s line) (line, bool) {
	return trimQuote(s)
}

func (b *quoteBuilder) build(p *parser) Block {
	return &BlockQuote{p.pos(), p.blocks()}
}
