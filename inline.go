// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"strings"
	"unicode/utf8"
)

// An Inline is an inline element, one of
// [Text], [SoftBreak], [HardBreak], [Emphasis], [Strong], [Strikethrough],
// [CodeSpan], [Link], [Image], [Autolink], [UserMention], [IssueReference],
// [EmojiShortcode], and [EscapedChar].
//
// Like [Block], the set is closed.
type Inline interface {
	printHTML(*printer)
	printMarkdown(*printer)
	printText(*printer)
	printLaTeX(*printer)
	printTypst(*printer)
	appendNative(dst []node) []node
}

// An Inlines is a sequence of inlines.
type Inlines []Inline

func (x Inlines) printHTML(p *printer) {
	for _, inl := range x {
		inl.printHTML(p)
	}
}

func (x Inlines) printMarkdown(p *printer) {
	for i, inl := range x {
		// "!" right before a link would turn it into an image.
		if t, ok := inl.(*Text); ok && i+1 < len(x) && strings.HasSuffix(t.Text, "!") {
			if _, ok := x[i+1].(*Link); ok {
				(&Text{t.Text[:len(t.Text)-1]}).printMarkdown(p)
				p.md(`\!`)
				continue
			}
		}
		inl.printMarkdown(p)
	}
}

func (x Inlines) printText(p *printer) {
	for _, inl := range x {
		inl.printText(p)
	}
}

func (x Inlines) printLaTeX(p *printer) {
	for _, inl := range x {
		inl.printLaTeX(p)
	}
}

func (x Inlines) printTypst(p *printer) {
	for _, inl := range x {
		inl.printTypst(p)
	}
}

// plainText returns the text content of x with all markup removed,
// as used for image descriptions.
func (x Inlines) plainText() string {
	p := newPrinter(writeText, nil)
	for _, inl := range x {
		switch inl := inl.(type) {
		case *SoftBreak, *HardBreak:
			p.buf.WriteByte(' ')
		default:
			inl.printText(p)
		}
	}
	return p.buf.String()
}

// A Text is an [Inline] representing [textual content].
//
// [textual content]: https://spec.commonmark.org/0.31.2/#textual-content
type Text struct {
	Text string
}

func (x *Text) printHTML(p *printer)  { p.text(x.Text) }
func (x *Text) printText(p *printer)  { p.text(x.Text) }
func (x *Text) printLaTeX(p *printer) { p.text(x.Text) }
func (x *Text) printTypst(p *printer) { p.text(x.Text) }

func (x *Text) printMarkdown(p *printer) {
	s := x.Text
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		esc := false
		switch c {
		case '\\', '*', '`', '[', ']', '<', '~':
			esc = true
		case '_':
			// Intraword underscores cannot open or close emphasis.
			esc = i == 0 || i+1 == len(s) || !isLetterDigit(s[i-1]) || !isLetterDigit(s[i+1])
		case '&':
			_, _, esc = decodeEntity(s, i)
		case ':':
			esc = emojiAt(s, i)
		case '@':
			esc = (i == 0 || mentionBoundary(s[i-1])) && i+1 < len(s) && isLetterDigit(s[i+1])
		case '#':
			esc = (i == 0 || issueBoundary(s[i-1])) && i+1 < len(s) && isDigit(s[i+1])
		}
		if i == 0 && !esc && p.atLineStart() {
			switch c {
			case '#', '>', '-', '+', '=', '|':
				esc = true
			}
			if isDigit(c) {
				j := i
				for j < len(s) && isDigit(s[j]) {
					j++
				}
				if j < len(s) && (s[j] == '.' || s[j] == ')') {
					b.WriteString(s[i:j])
					b.WriteByte('\\')
					i = j - 1
					continue
				}
			}
		}
		if esc {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	p.md(b.String())
}

func (x *Text) appendNative(dst []node) []node {
	s := x.Text
	for s != "" {
		i := strings.IndexByte(s, ' ')
		if i < 0 {
			dst = append(dst, node{T: "Str", C: s})
			break
		}
		if i > 0 {
			dst = append(dst, node{T: "Str", C: s[:i]})
		}
		dst = append(dst, node{T: "Space"})
		s = s[i+1:]
	}
	return dst
}

// An EscapedChar is an [Inline] representing a [backslash escaped]
// punctuation character.
//
// [backslash escaped]: https://spec.commonmark.org/0.31.2/#backslash-escapes
type EscapedChar struct {
	Char byte
}

func (x *EscapedChar) String() string { return string(rune(x.Char)) }

func (x *EscapedChar) printHTML(p *printer)  { p.text(x.String()) }
func (x *EscapedChar) printText(p *printer)  { p.text(x.String()) }
func (x *EscapedChar) printLaTeX(p *printer) { p.text(x.String()) }
func (x *EscapedChar) printTypst(p *printer) { p.text(x.String()) }

func (x *EscapedChar) printMarkdown(p *printer) {
	p.md(`\`, x.String())
}

func (x *EscapedChar) appendNative(dst []node) []node {
	return append(dst, span([]string{"escaped"}, nil, x.String()))
}

// A CodeSpan is an [Inline] representing a [code span].
//
// [code span]: https://spec.commonmark.org/0.31.2/#code-spans
type CodeSpan struct {
	Text string
}

func (x *CodeSpan) printText(p *printer) { p.text(x.Text) }

func (x *CodeSpan) printHTML(p *printer) {
	p.html(`<code>`)
	p.text(x.Text)
	p.html(`</code>`)
}

func (x *CodeSpan) printMarkdown(p *printer) {
	// Use the fewest backticks we can, and add spaces as needed.
	ticks := strings.Repeat("`", maxRun(x.Text, '`')+1)

	// An empty code span cannot be written in Markdown;
	// print a code-formatted space instead of nothing.
	t := x.Text
	space := len(t) == 0 || t[0] == '`' || t[len(t)-1] == '`' ||
		t[0] == ' ' && t[len(t)-1] == ' ' && trimSpaceTab(t) != ""
	p.md(ticks)
	if space {
		p.md(" ")
	}
	p.md(t)
	if space {
		p.md(" ")
	}
	p.noTrim()
	p.md(ticks)
}

func (x *CodeSpan) printLaTeX(p *printer) {
	p.raw(`\texttt{`)
	p.text(x.Text)
	p.raw("}")
}

func (x *CodeSpan) printTypst(p *printer) {
	if !strings.Contains(x.Text, "`") {
		p.raw("`", x.Text, "`")
		return
	}
	p.raw(`#raw("`, typstStringEscaper.Replace(x.Text), `")`)
}

func (x *CodeSpan) appendNative(dst []node) []node {
	return append(dst, node{T: "Code", C: []any{emptyAttr(), x.Text}})
}

// maxRun returns the length of the longest run of b bytes in s.
func maxRun(s string, b byte) int {
	m := 0
	n := 0
	for i := range len(s) {
		if s[i] == b {
			n++
			m = max(m, n)
		} else {
			n = 0
		}
	}
	return m
}

// An Emphasis is an [Inline] representing [emphasis] (italic text).
//
// [emphasis]: https://spec.commonmark.org/0.31.2/#emphasis-and-strong-emphasis
type Emphasis struct {
	Inner Inlines
}

// A Strong is an [Inline] representing [strong emphasis] (bold text).
//
// [strong emphasis]: https://spec.commonmark.org/0.31.2/#emphasis-and-strong-emphasis
type Strong struct {
	Inner Inlines
}

// A Strikethrough is an [Inline] representing [deleted text],
// a GitHub-flavored Markdown extension.
//
// [deleted text]: https://github.github.com/gfm/#strikethrough-extension-
type Strikethrough struct {
	Inner Inlines
}

// Emphasis, Strong, and Strikethrough are the same underlying struct,
// so the parser builds an Emphasis and converts it as needed.

func (x *Emphasis) printHTML(p *printer) {
	p.html("<em>")
	x.Inner.printHTML(p)
	p.html("</em>")
}

func (x *Emphasis) printMarkdown(p *printer) {
	// An emphasis directly inside another would read back as strong.
	marker := "*"
	if n := len(x.Inner); n > 0 {
		_, first := x.Inner[0].(*Emphasis)
		_, last := x.Inner[n-1].(*Emphasis)
		if first || last {
			marker = "_"
		}
	}
	p.md(marker)
	x.Inner.printMarkdown(p)
	p.md(marker)
}

func (x *Emphasis) printText(p *printer) { x.Inner.printText(p) }

func (x *Emphasis) printLaTeX(p *printer) {
	p.raw(`\emph{`)
	x.Inner.printLaTeX(p)
	p.raw("}")
}

func (x *Emphasis) printTypst(p *printer) {
	if p.inEmph {
		x.Inner.printTypst(p)
		return
	}
	p.inEmph = true
	p.raw("_")
	x.Inner.printTypst(p)
	p.raw("_")
	p.inEmph = false
}

func (x *Emphasis) appendNative(dst []node) []node {
	return append(dst, node{T: "Emph", C: nativeInlines(x.Inner)})
}

func (x *Strong) printHTML(p *printer) {
	p.html("<strong>")
	x.Inner.printHTML(p)
	p.html("</strong>")
}

func (x *Strong) printMarkdown(p *printer) {
	p.md("**")
	x.Inner.printMarkdown(p)
	p.md("**")
}

func (x *Strong) printText(p *printer) { x.Inner.printText(p) }

func (x *Strong) printLaTeX(p *printer) {
	p.raw(`\textbf{`)
	x.Inner.printLaTeX(p)
	p.raw("}")
}

func (x *Strong) printTypst(p *printer) {
	if p.inStrong {
		x.Inner.printTypst(p)
		return
	}
	p.inStrong = true
	p.raw("*")
	x.Inner.printTypst(p)
	p.raw("*")
	p.inStrong = false
}

func (x *Strong) appendNative(dst []node) []node {
	return append(dst, node{T: "Strong", C: nativeInlines(x.Inner)})
}

func (x *Strikethrough) printHTML(p *printer) {
	p.html("<del>")
	x.Inner.printHTML(p)
	p.html("</del>")
}

func (x *Strikethrough) printMarkdown(p *printer) {
	p.md("~~")
	x.Inner.printMarkdown(p)
	p.md("~~")
}

func (x *Strikethrough) printText(p *printer) { x.Inner.printText(p) }

func (x *Strikethrough) printLaTeX(p *printer) {
	p.raw(`\sout{`)
	x.Inner.printLaTeX(p)
	p.raw("}")
}

func (x *Strikethrough) printTypst(p *printer) {
	p.raw("#strike[")
	x.Inner.printTypst(p)
	p.raw("]")
}

func (x *Strikethrough) appendNative(dst []node) []node {
	return append(dst, node{T: "Strikeout", C: nativeInlines(x.Inner)})
}

// Parsing Inlines
//
// The parser walks over the text looking for opening special characters such as * or [
// and pushes them onto a parse stack. This same scan also looks for and pushes
// special leaf inlines such as escaped symbols, entities, code spans, and line breaks.
// Text between special cases is also pushed, as plain text (type Text).
// When the parser sees a closing special character such as ], it tries to match
// that closing special against a corresponding opening special. If it can, the stack
// content between the opening and the closing becomes the inner inline of a new
// node (a Link or an Image), and that new node is pushed on the stack
// in place of the opening and the inner content.
//
// The matching proceeds in two phases: brackets first, then emphasis
// (* and _, as well as ~~). This is because links and images
// take priority over emphasis: "this *nice [link*](/emph)" contains a link
// but no emphasis: the * outside the link brackets cannot match the * inside.
//
// Link text can contain images but not links:
//
//	[link ![foo](img.jpg)](/) ⇒
//	<a href="/">link <img src="img.jpg" alt="foo" /></a>
//
//	[link [foo](img.jpg)](/)  ⇒
//	[link <a href="img.jpg">foo</a>](/)
//
// Image text can contain anything, but it is flattened to plain text.
//
// A straightforward implementation of parts of this would be
// accidentally quadratic, so both phases bound the work they do
// per delimiter.

// An inlineParser parses s[start:] into an Inline, returning the Inline
// and the string index where the inline ends
// (that is, the Inline represents s[start:end]).
// If it cannot parse s[start:], it returns ok=false.
// The caller has usually checked that s[start:] is likely to be appropriate
// for this parser.
type inlineParser func(p *parser, s string, start int) (x Inline, end int, ok bool)

// emit emits p.s[p.emitted:i] as plain text and then sets p.emitted = i.
func (p *parser) emit(i int) {
	if p.emitted < i {
		p.list = append(p.list, &Text{p.s[p.emitted:i]})
		p.emitted = i
	}
}

// skip sets p.emitted = i.
func (p *parser) skip(i int) {
	p.emitted = i
}

// An openPlain is an opening marker [ or ![ that has not
// yet been matched to a closing marker.
// It only exists on the parse stack.
type openPlain struct {
	Text
	i int // position in input where bracket is
}

// An emphPlain is an emphasis marker such as * or _ or ~~
// that has not yet been matched.
// It only exists on the parse stack.
type emphPlain struct {
	Text
	canOpen  bool // marker can open emphasis
	canClose bool // marker can close emphasis
	i        int  // position in output where emph is
	n        int  // length of original span
}

// inline parses s into an Inlines.
//
// inline handles the scanning of the string into a parse stack and
// the construction of links and images; the emphasis processing is
// delegated to [parser.emph]. GitHub autolinks, mentions, and
// issue references are found afterward in the remaining text.
func (p *parser) inline(s string) Inlines {
	s = trimSpaceTab(s)

	p.s = s
	p.list = nil
	p.emitted = 0

	var opens []int          // indexes of open ![ and [ openPlains in p.list
	var ignoreLinkBefore int // ignore link openings before this stack offset, to avoid links inside links
	backticksReset := false  // for lazy initialization of p.backticks

	for off := 0; off < len(s); {
		var parser inlineParser
		switch s[off] {
		case '\\':
			parser = parseEscape
		case '`':
			if !backticksReset {
				p.backticks.reset()
				backticksReset = true
			}
			parser = p.backticks.parseCodeSpan
		case '<':
			parser = parseAngleAutolink
		case '[':
			parser = parseLinkOpen
		case '!':
			parser = parseImageOpen
		case '_', '*':
			parser = parseEmph
		case '~':
			if p.Strikethrough {
				parser = parseEmph
			}
		case '\n':
			parser = parseBreak
		case '&':
			parser = parseEntity
		case ':':
			if p.Emoji {
				parser = parseEmoji
			}
		}

		if parser != nil {
			if x, end, ok := parser(p, s, off); ok {
				p.emit(off)
				if _, ok := x.(*openPlain); ok {
					opens = append(opens, len(p.list))
				}
				p.list = append(p.list, x)
				p.skip(end)
				off = end
				continue
			}
		}

		// If there's a closing bracket, match it to an opening bracket.
		if s[off] == ']' && len(opens) > 0 {
			oi := opens[len(opens)-1]
			opens = opens[:len(opens)-1]

			// An image is valid anywhere; a link is only valid if it starts
			// after ignoreLinkBefore, to avoid links containing links.
			open := p.list[oi].(*openPlain)
			image := open.Text.Text[0] == '!'
			if open.i >= ignoreLinkBefore || image {
				if x, end, ok := parseLinkClose(p, s, off, open); ok {
					p.emit(off)
					x.Inner = p.emph(nil, p.list[oi+1:])
					if image {
						p.list[oi] = &Image{Alt: x.Inner.plainText(), URL: x.URL, Title: x.Title}
					} else {
						p.list[oi] = x
					}
					p.list = p.list[:oi+1]
					p.skip(end)
					off = end
					if !image {
						ignoreLinkBefore = open.i
					}
					continue
				}
			}
		}

		off++
	}

	p.emit(len(s))

	// Apply emphasis to the top-level stack.
	p.list = p.emph(p.list[:0], p.list)

	// Merge adjacent Text elements, so that for example
	// abc*def is Text{abc*def} and not Text{abc}Text{*}Text{def}.
	p.list = p.mergeText(p.list)

	if p.AutoLinkText {
		p.list = autoLinkText(p, p.list)
	}
	if p.Mentions {
		p.list = mentionText(p.list)
	}
	return p.list
}

// emph applies emphasis in a run of inlines that has already had links and images converted.
// The links and images themselves contain inlines that have already had emph run.
// This function only has to process the inlines in src itself.
// It appends the new sequence of inlines to dst.
// dst and src may point at the same underlying array, provided &dst[0] == &src[0],
// in which case appending to dst overwrites src, which is fine because
// the number of elements in src only decreases or stays the same as it gets converted.
// emph may edit the values in src.
func (ps *parser) emph(dst, src []Inline) []Inline {
	// For each emphasis character, we maintain a stack of the
	// possible openings we have seen, as *emphPlain nodes,
	// for matching against closings using the same character.
	const (
		stackStrike = 0
		stackStar   = 1 // also 2..6
		stackUnder  = 7 // also 8..12
		stackTotal  = 13
	)
	var stack [stackTotal][]*emphPlain

Src:
	for i := 0; i < len(src); i++ {
		inl := src[i]
		p, ok := inl.(*emphPlain)
		if !ok {
			if open, ok := inl.(*openPlain); ok {
				// Unused link/image open marker.
				inl = &open.Text
			}
			dst = append(dst, inl)
			continue
		}

		if p.canClose {
			// A closing ** might match against an earlier ** but also might match
			// against two separate *, as in "*hello *world**",
			// or might match against only one *, as in *hello world**,
			// which ends in a literal *.
			// When a run closes only part of its length, the rest of
			// p.Text.Text is processed again at PText.
		PText:
			var start *emphPlain
			switch p.Text.Text[0] {
			case '~':
				stk := stack[stackStrike]
				if len(stk) == 0 {
					goto EmitPlain
				}
				start = stk[len(stk)-1]

			case '*', '_':
				// “If one of the delimiters can both open and close emphasis, then the sum of the lengths
				// of the delimiter runs containing the opening and closing delimiters must not
				// be a multiple of 3 unless both lengths are multiples of 3.”
				// (https://spec.commonmark.org/0.31.2/#emphasis-and-strong-emphasis, rule 9)
				allow := func(p, start *emphPlain) bool {
					return (!p.canOpen && !start.canClose) || // neither can do both
						(p.n+start.n)%3 != 0 || // total not a multiple of 3
						p.n%3 == 0 // both are multiples of 3 (checking one implies the other)
				}

				// Consider the six possible stacks (3 n%3 values × 2 canClose values)
				// and take the acceptable one that appears latest in dst.
				// Walking down a single stack instead could be made
				// quadratic by a malicious input.
				si := stackStar
				if p.Text.Text[0] == '_' {
					si = stackUnder
				}
				for i := si; i < si+6; i++ {
					if len(stack[i]) == 0 {
						continue
					}
					maybe := stack[i][len(stack[i])-1]
					if allow(p, maybe) && (start == nil || maybe.i > start.i) {
						start = maybe
					}
				}
				if start == nil {
					goto EmitPlain
				}
			}

			// If both sides have at least 2 delimiters, chop 2 off each;
			// otherwise chop 1.
			d := 1
			if len(p.Text.Text) >= 2 && len(start.Text.Text) >= 2 {
				d = 2
			}
			strike := p.Text.Text[0] == '~'

			x := &Emphasis{Inner: append([]Inline(nil), ps.mergeText(dst[start.i+1:])...)}

			// Remove used delimiters from start; if start is empty, remove it from dst.
			start.Text.Text = start.Text.Text[:len(start.Text.Text)-d]
			if start.Text.Text == "" {
				dst = dst[:start.i]
			} else {
				dst = dst[:start.i+1]
			}

			// Pop everything removed from dst off the stacks too.
			for i := range stack {
				stk := stack[i]
				for len(stk) > 0 && stk[len(stk)-1].i >= len(dst) {
					stk = stk[:len(stk)-1]
				}
				stack[i] = stk
			}

			switch {
			case strike:
				dst = append(dst, (*Strikethrough)(x))
			case d == 2:
				dst = append(dst, (*Strong)(x))
			default:
				dst = append(dst, x)
			}

			p.Text.Text = p.Text.Text[d:]
			if p.Text.Text == "" {
				continue Src
			}
			goto PText
		}

	EmitPlain:
		if p.canOpen {
			p.i = len(dst)
			dst = append(dst, p)
			var si int
			switch p.Text.Text[0] {
			case '~':
				si = stackStrike
			case '*', '_':
				si = stackStar
				if p.Text.Text[0] == '_' {
					si = stackUnder
				}
				if p.canClose {
					si += 3
				}
				si += p.n % 3
			}
			stack[si] = append(stack[si], p)
		} else {
			dst = append(dst, &p.Text)
		}
	}

	return ps.mergeText(dst)
}

// parseEscape is an [inlineParser] for an [EscapedChar] or [HardBreak].
func parseEscape(p *parser, s string, start int) (x Inline, end int, ok bool) {
	if start+1 < len(s) {
		c := s[start+1]
		end = start + 2
		if isPunct(c) {
			return &EscapedChar{c}, end, true
		}
		if c == '\n' {
			return &HardBreak{}, end, true
		}
	}
	return nil, 0, false
}

// parseEntity is an [inlineParser] for an HTML entity reference,
// which decodes to plain [Text].
func parseEntity(_ *parser, s string, start int) (x Inline, end int, ok bool) {
	text, end, ok := decodeEntity(s, start)
	if !ok {
		return nil, 0, false
	}
	return &Text{text}, end, true
}

// maxBackticks is the maximum number of backticks allowed for an inline code span.
// To avoid super-linear (not quite quadratic) behavior, we track the last position
// where a run of exactly N backticks was seen, for each possible N, rather than scan
// backward to find them. This means we must place some limit on N.
// cmark-gfm imposes a limit of 80, which seems good enough.
const maxBackticks = 80

// A backtickParser holds the state for parseCodeSpan looking for backticks.
type backtickParser struct {
	last    [maxBackticks]int // last[n-1] = start offset where final run of n backticks was seen
	scanned bool              // whether we've scanned the string already
}

// reset resets the backtickParser for use with a new string.
func (b *backtickParser) reset() {
	*b = backtickParser{}
}

// parseCodeSpan is (as b.parseCodeSpan) an [inlineParser] for a [CodeSpan],
// which is an n-backtick-delimited code span for some n.
//
// The naive implementation would rescan the rest of the string for every
// unmatched run of backticks, which takes O(n√n) time on an input like
//
//	` `` ``` ```` ````` `````` ``````` ````````
//
// So during the first unsuccessful scan we record the last location of
// every run of n backticks for all n. Later scans for a count that never
// appears after start are skipped; the rest are guaranteed to succeed
// and pay for themselves by consuming the text they scanned.
func (b *backtickParser) parseCodeSpan(p *parser, s string, start int) (x Inline, end int, ok bool) {
	n := 1
	for start+n < len(s) && s[start+n] == '`' {
		n++
	}

	if n > len(b.last) || b.scanned && b.last[n-1] < start+n {
		goto NoMatch
	}

	for end = start + n; end < len(s); {
		if s[end] != '`' {
			end++
			continue
		}
		estart := end
		for end < len(s) && s[end] == '`' {
			end++
		}
		m := end - estart
		if !b.scanned && m < len(b.last) {
			b.last[m-1] = estart
		}
		if m == n {
			// Line endings are converted to single spaces.
			text := s[start+n : estart]
			text = strings.ReplaceAll(text, "\n", " ")

			// If the text starts and ends with a space and is not all spaces,
			// one space is removed from each end, so that `` ` `` quotes a backtick.
			if len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' ' && trimSpaceTab(text) != "" {
				text = text[1 : len(text)-1]
			}

			return &CodeSpan{text}, end, true
		}
	}
	b.scanned = true

NoMatch:
	// None of these backticks count: skip them all.
	// ``x` is not a single backtick followed by a code span.
	end = start + n
	return &Text{s[start:end]}, end, true
}

// parseEmph is an [inlineParser] for an emphasis open or close (* _ ~~)
// represented as an [emphPlain].
func parseEmph(p *parser, s string, start int) (x Inline, end int, ok bool) {
	c := s[start]
	end = start + 1
	for end < len(s) && s[end] == c {
		end++
	}
	if c == '~' && end-start != 2 {
		// Only ~~ marks strikethrough. Consume the whole run
		// so that a longer run does not match its last two.
		return &Text{s[start:end]}, end, true
	}

	before, after := ' ', ' '
	if start > 0 {
		before, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	if end < len(s) {
		after, _ = utf8.DecodeRuneInString(s[end:])
	}

	// See https://spec.commonmark.org/0.31.2/#emphasis-and-strong-emphasis.
	//
	// “A left-flanking delimiter run is a delimiter run that is
	// (1) not followed by Unicode whitespace, and either
	// (2a) not followed by a Unicode punctuation character, or
	// (2b) followed by a Unicode punctuation character
	// and preceded by Unicode whitespace or a Unicode punctuation character.
	// For purposes of this definition, the beginning and the end
	// of the line count as Unicode whitespace.”
	leftFlank := !isUnicodeSpace(after) &&
		(!isUnicodePunct(after) || isUnicodeSpace(before) || isUnicodePunct(before))

	// “A right-flanking delimiter run is a delimiter run that is
	// (1) not preceded by Unicode whitespace, and either
	// (2a) not preceded by a Unicode punctuation character, or
	// (2b) preceded by a Unicode punctuation character
	// and followed by Unicode whitespace or a Unicode punctuation character.”
	rightFlank := !isUnicodeSpace(before) &&
		(!isUnicodePunct(before) || isUnicodeSpace(after) || isUnicodePunct(after))

	var canOpen, canClose bool
	switch c {
	case '*', '~':
		canOpen = leftFlank
		canClose = rightFlank
	case '_':
		// Underscores may not open or close intraword.
		canOpen = leftFlank && (!rightFlank || isUnicodePunct(before))
		canClose = rightFlank && (!leftFlank || isUnicodePunct(after))
	}

	x = &emphPlain{
		Text:     Text{s[start:end]},
		canOpen:  canOpen,
		canClose: canClose,
		n:        end - start,
	}
	return x, end, true
}

// mergeText converts emphPlain nodes to Text nodes
// (openPlain nodes have already been converted)
// and then merges each run of Text nodes in list to a single Text node.
func (p *parser) mergeText(list []Inline) []Inline {
	out := list[:0]
	start := 0
	for i := 0; ; i++ {
		if i < len(list) {
			switch x := list[i].(type) {
			case *Text:
				continue
			case *emphPlain:
				list[i] = &x.Text
				continue
			}
		}
		if start < i {
			out = append(out, mergeTextRun(list[start:i]))
		}
		if i >= len(list) {
			break
		}
		out = append(out, list[i])
		start = i + 1
	}
	return out
}

// mergeTextRun merges list, which is known to be entirely *Text nodes,
// down to a single Text node.
func mergeTextRun(list []Inline) *Text {
	if len(list) == 1 {
		return list[0].(*Text)
	}
	var b strings.Builder
	for _, x := range list {
		b.WriteString(x.(*Text).Text)
	}
	return &Text{b.String()}
}
