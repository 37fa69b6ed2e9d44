// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	doc := NewParser().Parse("# *a*\n\n> - [b](/c) **d**\n\n| e |\n|---|\n| `f` |\n")
	var kinds []string
	Walk(doc, func(n any) bool {
		switch n.(type) {
		case *Header:
			kinds = append(kinds, "Header")
		case *Emphasis:
			kinds = append(kinds, "Emphasis")
		case *BlockQuote:
			kinds = append(kinds, "BlockQuote")
		case *BulletList:
			kinds = append(kinds, "BulletList")
		case *ListItem:
			kinds = append(kinds, "ListItem")
		case *Link:
			kinds = append(kinds, "Link")
		case *Strong:
			kinds = append(kinds, "Strong")
		case *Table:
			kinds = append(kinds, "Table")
		case *CodeSpan:
			kinds = append(kinds, "CodeSpan")
		}
		return true
	})
	assert.Equal(t, []string{"Header", "Emphasis", "BlockQuote", "BulletList", "ListItem", "Link", "Strong", "Table", "CodeSpan"}, kinds)

	var n int
	Walk(doc, func(x any) bool {
		n++
		_, isQuote := x.(*BlockQuote)
		return !isQuote
	})
	assert.Equal(t, 7, n) // Header, Emphasis, Text, BlockQuote, Table, Text, CodeSpan
}

func TestParseTrivial(t *testing.T) {
	for _, tt := range []struct {
		md   string
		html string
	}{
		{"", ""},
		{"\n\n", ""},
		{"hello", "<p>hello</p>\n"},
		{"# h", "<h1>h</h1>\n"},
	} {
		doc := NewParser().Parse(tt.md)
		require.NotNil(t, doc, "input %q", tt.md)
		assert.Equal(t, tt.html, ToHTML(doc), "input %q", tt.md)

		out, err := Convert("gfm", "html", []byte(tt.md), nil)
		require.NoError(t, err, "input %q", tt.md)
		assert.Equal(t, tt.html, out, "input %q", tt.md)
	}
}

func TestPrinterLineStart(t *testing.T) {
	p := newPrinter(writeMarkdown, nil)
	p.md("long text on the first line")
	assert.False(t, p.atLineStart())

	n := p.push("> ")
	p.nl()
	assert.True(t, p.atLineStart(), "after prefix")
	p.md("- [x] ")
	assert.True(t, p.atLineStart(), "after list marker and task box")
	p.md("x")
	assert.False(t, p.atLineStart())
	p.pop(n)

	p.nl()
	assert.True(t, p.atLineStart(), "empty line")
}

func TestPositions(t *testing.T) {
	doc := NewParser().Parse("para\ngraph\n\n- a\n- b\n\n```\nx\n```\n")
	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, Position{1, 2}, doc.Blocks[0].Pos())
	assert.Equal(t, Position{4, 5}, doc.Blocks[1].Pos())
	assert.Equal(t, Position{7, 9}, doc.Blocks[2].Pos())
}

func TestHeaderLevelClamp(t *testing.T) {
	doc := &Document{Blocks: []Block{
		&Header{Level: 0, Inlines: Inlines{&Text{"low"}}},
		&Header{Level: 12, Inlines: Inlines{&Text{"high"}}},
	}}
	assert.Equal(t, "# low\n\n###### high\n", ToMarkdown(doc))
	assert.Equal(t, "<h1>low</h1>\n<h6>high</h6>\n", ToHTML(doc))
	assert.Contains(t, ToNative(doc), `{"t":"Header","c":[6,`)
}

func TestTableRowNormalization(t *testing.T) {
	doc := &Document{Blocks: []Block{
		&Table{
			Align:  []Align{AlignLeft, AlignNone},
			Header: []Inlines{{&Text{"a"}}, {&Text{"b"}}},
			Rows: [][]Inlines{
				{{&Text{"1"}}},
				{{&Text{"2"}}, {&Text{"3"}}, {&Text{"dropped"}}},
			},
		},
	}}
	assert.Equal(t, "| a   | b   |\n| :-- | --- |\n| 1   |     |\n| 2   | 3   |\n", ToMarkdown(doc))
	assert.NotContains(t, ToHTML(doc), "dropped")
	assert.NotContains(t, ToNative(doc), "dropped")
}

func TestAdjacentLists(t *testing.T) {
	doc := &Document{Blocks: []Block{
		&OrderedList{Start: 1, Delim: '.', Items: []*ListItem{{Blocks: []Block{&Paragraph{Inlines: Inlines{&Text{"a"}}}}}}},
		&OrderedList{Start: 1, Delim: '.', Items: []*ListItem{{Blocks: []Block{&Paragraph{Inlines: Inlines{&Text{"b"}}}}}}},
		&BulletList{Items: []*ListItem{{Blocks: []Block{&Paragraph{Inlines: Inlines{&Text{"c"}}}}}}},
		&BulletList{Items: []*ListItem{{Blocks: []Block{&Paragraph{Inlines: Inlines{&Text{"d"}}}}}}},
		&BulletList{Items: []*ListItem{{Blocks: []Block{&Paragraph{Inlines: Inlines{&Text{"e"}}}}}}},
	}}
	md := ToMarkdown(doc)
	assert.Equal(t, "1. a\n\n1) b\n\n- c\n\n* d\n\n- e\n", md)
	assert.Len(t, NewParser().Parse(md).Blocks, 5)
}

func TestMarkdownEscapes(t *testing.T) {
	for _, tt := range []struct {
		text string
		want string
	}{
		{"*", `\*`},
		{"a_b", "a_b"},
		{"_a", `\_a`},
		{"1. x", `1\. x`},
		{"- x", `\- x`},
		{"+ x", `\+ x`},
		{"> x", `\> x`},
		{"# x", `\# x`},
		{"a # b", "a # b"},
		{"see #12", `see \#12`},
		{"@user", `\@user`},
		{"me@host", "me@host"},
		{":smile:", `\:smile:`},
		{"&amp;", `\&amp;`},
		{"AT&T", "AT&T"},
		{"a|b", "a|b"},
		{"| x", `\| x`},
	} {
		doc := &Document{Blocks: []Block{&Paragraph{Inlines: Inlines{&Text{tt.text}}}}}
		assert.Equal(t, tt.want+"\n", ToMarkdown(doc), "text %q", tt.text)
	}
}

func TestMarkdownImageBang(t *testing.T) {
	doc := &Document{Blocks: []Block{&Paragraph{Inlines: Inlines{
		&Text{"wow!"},
		&Link{Inner: Inlines{&Text{"x"}}, URL: "/y"},
	}}}}
	md := ToMarkdown(doc)
	assert.Equal(t, "wow\\![x](/y)\n", md)
	again := NewParser().Parse(md)
	para := again.Blocks[0].(*Paragraph)
	_, isLink := para.Inlines[len(para.Inlines)-1].(*Link)
	assert.True(t, isLink, "reparsed %s", ToNative(again))
}

func TestLinkDestinationEscapes(t *testing.T) {
	doc := &Document{Blocks: []Block{&Paragraph{Inlines: Inlines{
		&Link{Inner: Inlines{&Text{"a"}}, URL: "/p (1)", Title: `say "hi"`},
		&Text{" "},
		&Image{Alt: "b", URL: ""},
	}}}}
	md := ToMarkdown(doc)
	assert.Equal(t, `[a](</p \(1\)> "say \"hi\"") ![b](<>)`+"\n", md)
	assert.Equal(t, ToNative(doc), ToNative(NewParser().Parse(md)))
}

func TestCodeSpanMarkdown(t *testing.T) {
	for _, tt := range []struct {
		code string
		want string
	}{
		{"x", "`x`"},
		{"a`b", "``a`b``"},
		{"`a", "`` `a ``"},
		{" a ", "`  a  `"},
		{"", "`  `"},
	} {
		doc := &Document{Blocks: []Block{&Paragraph{Inlines: Inlines{&CodeSpan{tt.code}}}}}
		assert.Equal(t, tt.want+"\n", ToMarkdown(doc), "code %q", tt.code)
	}
}

func TestFencedCodeWithBackticks(t *testing.T) {
	doc := &Document{Blocks: []Block{&CodeBlock{Lang: "md", Text: "```\nx\n```"}}}
	md := ToMarkdown(doc)
	assert.Equal(t, "````md\n```\nx\n```\n````\n", md)
	again := NewParser().Parse(md)
	require.Len(t, again.Blocks, 1)
	assert.Equal(t, "```\nx\n```", again.Blocks[0].(*CodeBlock).Text)
}

func TestUnknownEmoji(t *testing.T) {
	x := &EmojiShortcode{Name: "not_an_emoji"}
	assert.Equal(t, ":not_an_emoji:", x.Glyph())
	assert.Equal(t, "👍", (&EmojiShortcode{Name: "+1"}).Glyph())
}

func TestMentionBoundaries(t *testing.T) {
	for _, tt := range []struct {
		md   string
		want string
	}{
		{"@a-b", `<span class="user-mention">@a-b</span>`},
		{"x@a", `x@a`},
		{"`c`@a", `<code>c</code>@a`},
		{"#1a", `#1a`},
		{"(#5)", `(<span class="issue">#5</span>)`},
		{"#1234567890", `#1234567890`},
		{"#007", `#007`},
		{"#0", `#0`},
		{"#10", `<span class="issue">#10</span>`},
		{"*@em*", `<em><span class="user-mention">@em</span></em>`},
		{"[@l](/u)", `<a href="/u">@l</a>`},
		{"a:tada:", `a:tada:`},
		{"(:tada:)", `(🎉)`},
	} {
		out, err := Convert("gfm", "html", []byte(tt.md), nil)
		require.NoError(t, err)
		assert.Equal(t, "<p>"+tt.want+"</p>\n", out, "input %q", tt.md)
	}
}

func TestLaTeXStandalone(t *testing.T) {
	out, err := Convert("gfm", "latex", []byte("# T\n\nbody\n"), &RenderOptions{Standalone: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `\documentclass[]{article}`), "out:\n%s", out)
	for _, pkg := range []string{"inputenc", "ulem", "graphicx", "listings"} {
		assert.Contains(t, out, "{"+pkg+"}\n", "missing package %s", pkg)
	}
	assert.Contains(t, out, "\\begin{document}\n\\section{T}\n\nbody\n\\end{document}\n")

	frag, err := Convert("gfm", "latex", []byte("# T\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "\\section{T}\n", frag)
}

func TestLaTeXNestedEnumerate(t *testing.T) {
	out, err := Convert("gfm", "latex", []byte("3. a\n   1. b\n"), nil)
	require.NoError(t, err)
	want := "\\begin{enumerate}\n\\setcounter{enumi}{2}\n\\tightlist\n" +
		"\\item a\n\\begin{enumerate}\n\\tightlist\n\\item b\n\\end{enumerate}\n" +
		"\\end{enumerate}\n"
	assert.Equal(t, want, out)
}

func TestTypstInline(t *testing.T) {
	for _, tt := range []struct {
		md   string
		want string
	}{
		{"*a **b** c*", "_a *b* c_"},
		{"~~x~~", "#strike[x]"},
		{"`a`b`", "`a`b\\`"},
		{"``a`b``", "#raw(\"a`b\")"},
		{"![alt](/i \"t\")", "#image(\"/i\")"},
		{"<https://x.org/\"q>", "#link(\"https://x.org/\\\"q\")[https:\\/\\/x.org\\/\"q]"},
		{"a  \nb", "a\\\nb"},
		{"@me", "\\@me"},
	} {
		out, err := Convert("gfm", "typst", []byte(tt.md), nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want+"\n", out, "input %q", tt.md)
	}
}

func TestTypstStructure(t *testing.T) {
	out, err := Convert("gfm", "typst", []byte("> a\n>\n> - b\n\n5. x\n6. y\n\n1) p\n2) q\n"), nil)
	require.NoError(t, err)
	want := "#quote(block: true)[\na\n\n- b\n]\n\n5. x\n6. y\n\n+ p\n+ q\n"
	assert.Equal(t, want, out)
}

func TestPlainText(t *testing.T) {
	out, err := Convert("gfm", "plain", []byte("# *Title*\n\n1. [link](/x) and ![img](/y)\n2. :tada: @me\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Title\n\n1. link and img\n2. 🎉 @me\n", out)
}
