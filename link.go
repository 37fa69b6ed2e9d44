// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// A Link is an [Inline] representing a [link] (<a> tag).
//
// [link]: https://spec.commonmark.org/0.31.2/#links
type Link struct {
	Inner Inlines
	URL   string
	Title string
}

// An Image is an [Inline] representing an [image] (<img> tag).
// Its description is kept as literal text.
//
// [image]: https://spec.commonmark.org/0.31.2/#images
type Image struct {
	Alt   string
	URL   string
	Title string
}

func (x *Link) printHTML(p *printer) {
	p.html(`<a href="`, htmlLinkEscape(x.URL), `"`)
	if x.Title != "" {
		p.html(` title="`)
		p.text(x.Title)
		p.html(`"`)
	}
	p.html(">")
	x.Inner.printHTML(p)
	p.html("</a>")
}

func (x *Link) printMarkdown(p *printer) {
	p.md("[")
	x.Inner.printMarkdown(p)
	p.md("]")
	printLinkTargetMarkdown(p, x.URL, x.Title)
}

// printLinkTargetMarkdown prints the (url "title") part of
// an inline link or image.
func printLinkTargetMarkdown(p *printer, url, title string) {
	u := mdLinkEscaper.Replace(url)
	if u == "" || strings.ContainsAny(u, " \t\n") {
		u = "<" + strings.ReplaceAll(u, "\n", " ") + ">"
	}
	p.md("(", u)
	if title != "" {
		p.md(` "`)
		for i, line := range strings.Split(mdTitleEscaper.Replace(title), "\n") {
			if i > 0 {
				p.nl()
			}
			p.md(line)
			p.noTrim()
		}
		p.md(`"`)
	}
	p.md(")")
}

func (x *Link) printText(p *printer) { x.Inner.printText(p) }

func (x *Link) printLaTeX(p *printer) {
	p.raw(`\href{`, latexURLEscaper.Replace(x.URL), "}{")
	x.Inner.printLaTeX(p)
	p.raw("}")
}

func (x *Link) printTypst(p *printer) {
	p.raw(`#link("`, typstStringEscaper.Replace(x.URL), `")[`)
	x.Inner.printTypst(p)
	p.raw("]")
}

func (x *Link) appendNative(dst []node) []node {
	return append(dst, node{T: "Link", C: []any{emptyAttr(), nativeInlines(x.Inner), []string{x.URL, x.Title}}})
}

func (x *Image) printHTML(p *printer) {
	p.html(`<img src="`, htmlLinkEscape(x.URL), `" alt="`)
	p.text(strings.ReplaceAll(x.Alt, "\n", " "))
	p.html(`"`)
	if x.Title != "" {
		p.html(` title="`)
		p.text(x.Title)
		p.html(`"`)
	}
	p.html(` />`)
}

func (x *Image) printMarkdown(p *printer) {
	p.md("![")
	(&Text{x.Alt}).printMarkdown(p)
	p.md("]")
	printLinkTargetMarkdown(p, x.URL, x.Title)
}

func (x *Image) printText(p *printer) { p.text(x.Alt) }

func (x *Image) printLaTeX(p *printer) {
	p.raw(`\includegraphics[width=\linewidth]{`, latexURLEscaper.Replace(x.URL), "}")
}

func (x *Image) printTypst(p *printer) {
	p.raw(`#image("`, typstStringEscaper.Replace(x.URL), `")`)
}

func (x *Image) appendNative(dst []node) []node {
	alt := (&Text{x.Alt}).appendNative([]node{})
	return append(dst, node{T: "Image", C: []any{emptyAttr(), alt, []string{x.URL, x.Title}}})
}

// parseLinkOpen is an [inlineParser] for a link open [.
// The caller has checked that s[start] == '['.
func parseLinkOpen(_ *parser, s string, start int) (x Inline, end int, ok bool) {
	return &openPlain{Text{s[start : start+1]}, start + 1}, start + 1, true
}

// parseImageOpen is an [inlineParser] for an image open ![.
// The caller has checked that s[start] == '!'.
func parseImageOpen(_ *parser, s string, start int) (x Inline, end int, ok bool) {
	if start+1 < len(s) && s[start+1] == '[' {
		return &openPlain{Text{s[start : start+2]}, start + 2}, start + 2, true
	}
	return
}

// parseLinkClose parses a link (or image) close ] or ](target) matching open.
// The returned Link has no Inner; the caller fills it in.
func parseLinkClose(p *parser, s string, start int, open *openPlain) (*Link, int, bool) {
	i := start
	if i+1 < len(s) {
		switch s[i+1] {
		case '(':
			// Inline link - [Text](Dest Title), with Title omitted or both Dest and Title omitted.
			i := skipSpace(s, i+2)
			var dest, title string
			if i < len(s) && s[i] != ')' {
				var ok bool
				dest, i, ok = parseLinkDest(s, i)
				if !ok {
					break
				}
				i = skipSpace(s, i)
				if i < len(s) && s[i] != ')' {
					title, i, ok = parseLinkTitle(s, i)
					if !ok {
						break
					}
					i = skipSpace(s, i)
				}
			}
			if i < len(s) && s[i] == ')' {
				return &Link{URL: dest, Title: title}, i + 1, true
			}
			// Fall back to a shortcut reference: [foo](not a link) may still
			// have [foo] defined.

		case '[':
			// Full reference link - [Text][Label]
			label, i, ok := parseLinkLabel(s, i+1)
			if !ok {
				break
			}
			if def, ok := p.link(normalizeLabel(label)); ok {
				return &Link{URL: def.URL, Title: def.Title}, i, true
			}
			// An unknown [Label] does not fall back to treating [Text] as a shortcut.
			return nil, 0, false
		}
	}

	// Collapsed or shortcut reference link: [Text][] or [Text].
	end := i + 1
	if strings.HasPrefix(s[end:], "[]") {
		end += 2
	}

	if def, ok := p.link(normalizeLabel(s[open.i:i])); ok {
		return &Link{URL: def.URL, Title: def.Title}, end, true
	}
	return nil, 0, false
}

// parseLinkRefDef parses and saves in p a [link reference definition]
// at the start of s, if any.
// It returns the length of the link reference definition
// and whether one was found.
//
// [link reference definition]: https://spec.commonmark.org/0.31.2/#link-reference-definitions
func parseLinkRefDef(p *parser, s string) (int, bool) {
	// “A link reference definition consists of a link label,
	// optionally preceded by up to three spaces of indentation,
	// followed by a colon (:),
	// optional spaces or tabs (including up to one line ending),
	// a link destination,
	// optional spaces or tabs (including up to one line ending),
	// and an optional link title,
	// which if it is present must be separated from the link destination
	// by spaces or tabs. No further character may occur.”
	i := skipSpace(s, 0)
	label, i, ok := parseLinkLabel(s, i)
	if !ok || i >= len(s) || s[i] != ':' {
		return 0, false
	}
	i = skipSpace(s, i+1)
	dest, i, ok := parseLinkDest(s, i)
	if !ok {
		return 0, false
	}
	moved := false
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		moved = true
		i++
	}

	// Take title if present and doesn't break parse.
	j := i
	if j >= len(s) || s[j] == '\n' {
		moved = true
		if j < len(s) {
			j++
		}
	}

	var title string
	if moved {
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if t, j, ok := parseLinkTitle(s, j); ok {
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j >= len(s) || s[j] == '\n' {
				i = j
				title = t
			}
		}
	}

	// Must end line. Already trimmed spaces.
	if i < len(s) && s[i] != '\n' {
		return 0, false
	}
	if i < len(s) {
		i++
	}

	label = normalizeLabel(label)
	if label != "" {
		p.defineLink(label, linkDef{URL: dest, Title: title})
	}
	return i, true
}

// parseLinkTitle parses a [link title] at s[i:], returning
// the unescaped title, the index just past the end of the title,
// and whether a title was found at all.
//
// [link title]: https://spec.commonmark.org/0.31.2/#link-title
func parseLinkTitle(s string, i int) (title string, end int, found bool) {
	if i < len(s) && (s[i] == '"' || s[i] == '\'' || s[i] == '(') {
		want := s[i]
		if want == '(' {
			want = ')'
		}
		j := i + 1
		for ; j < len(s); j++ {
			if s[j] == want {
				return mdUnescape(s[i+1 : j]), j + 1, true
			}
			if s[j] == '(' && want == ')' {
				break
			}
			if s[j] == '\\' && j+1 < len(s) {
				j++
			}
		}
	}
	return "", 0, false
}

// parseLinkLabel parses a [link label] at s[i:], returning
// the label, the end index just past the label, and
// whether a label was found at all.
//
// [link label]: https://spec.commonmark.org/0.31.2/#link-label
func parseLinkLabel(s string, i int) (string, int, bool) {
	// “A link label begins with a left bracket ([) and ends with
	// the first right bracket (]) that is not backslash-escaped.
	// Between these brackets there must be at least one character
	// that is not a space, tab, or line ending.
	// Unescaped square bracket characters are not allowed
	// inside the opening and closing square brackets of link labels.
	// A link label can have at most 999 characters inside the square brackets.”
	if i >= len(s) || s[i] != '[' {
		return "", 0, false
	}
	j := i + 1
	for ; j < len(s); j++ {
		if s[j] == ']' {
			if j-(i+1) > 999 {
				break
			}
			if label := trimSpaceTabNewline(s[i+1 : j]); label != "" {
				return label, j + 1, true
			}
			break
		}
		if s[j] == '[' {
			break
		}
		if s[j] == '\\' && j+1 < len(s) {
			j++
		}
	}
	return "", 0, false
}

// normalizeLabel returns the normalized label for s, for uniquely identifying that label.
func normalizeLabel(s string) string {
	if strings.Contains(s, "[") || strings.Contains(s, "]") {
		// Labels cannot have [ ] so avoid the work of translating.
		// This is especially important for pathological cases like
		// [[[[[[[[[[a]]]]]]]]]] which would otherwise generate quadratic
		// amounts of garbage.
		return ""
	}

	// “To normalize a label, strip off the opening and closing brackets,
	// perform the Unicode case fold, strip leading and trailing spaces, tabs, and line endings,
	// and collapse consecutive internal spaces, tabs, and line endings to a single space.”
	s = trimSpaceTabNewline(s)
	var b strings.Builder
	space := false
	hi := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n':
			space = true
			continue
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= 0x80 {
				hi = true
			}
			b.WriteByte(c)
		}
	}
	s = b.String()
	if hi {
		// Labels are only map keys, never displayed,
		// so full case folding is what we want.
		s = cases.Fold().String(s)
	}
	return s
}

// parseLinkDest parses a [link destination] at s[i:], returning
// the destination, the end index just past the destination,
// and whether a destination was found.
//
// [link destination]: https://spec.commonmark.org/0.31.2/#link-destination
func parseLinkDest(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", 0, false
	}

	// “A sequence of zero or more characters between an opening < and a closing >
	// that contains no line endings or unescaped < or > characters,”
	if s[i] == '<' {
		for j := i + 1; ; j++ {
			if j >= len(s) || s[j] == '\n' || s[j] == '<' {
				return "", 0, false
			}
			if s[j] == '>' {
				return mdUnescape(s[i+1 : j]), j + 1, true
			}
			if s[j] == '\\' {
				j++
			}
		}
	}

	// “or a nonempty sequence of characters that does not start with <,
	// does not include ASCII control characters or space character,
	// and includes parentheses only if (a) they are backslash-escaped
	// or (b) they are part of a balanced pair of unescaped parentheses.
	depth := 0
	j := i
Loop:
	for ; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
			if depth > 32 {
				// Avoid quadratic inputs by stopping if too deep.
				// This is the same depth that cmark-gfm uses.
				return "", 0, false
			}
		case ')':
			if depth == 0 {
				break Loop
			}
			depth--
		case '\\':
			if j+1 < len(s) {
				if s[j+1] == ' ' || s[j+1] == '\t' {
					return "", 0, false
				}
				j++
			}
		case ' ', '\t', '\n':
			break Loop
		}
	}
	if j == i || depth != 0 {
		return "", 0, false
	}
	return mdUnescape(s[i:j]), j, true
}

// An Autolink is an [Inline] representing a link whose text is its URL:
// an [autolink] in < > brackets, or a bare URL, www. name, or
// email address recognized in text.
// URL holds the text as written; see [Autolink.Href].
//
// [autolink]: https://spec.commonmark.org/0.31.2/#autolinks
type Autolink struct {
	URL string
}

// Href returns the link target for x:
// www. names get an https:// scheme and
// email addresses get a mailto: scheme.
func (x *Autolink) Href() string {
	switch {
	case strings.HasPrefix(x.URL, "www."):
		return "https://" + x.URL
	case x.isEmail():
		return "mailto:" + x.URL
	}
	return x.URL
}

func (x *Autolink) isEmail() bool {
	return strings.Contains(x.URL, "@") && !strings.Contains(x.URL, ":")
}

func (x *Autolink) printHTML(p *printer) {
	p.html(`<a href="`, htmlLinkEscape(x.Href()), `">`)
	p.text(x.URL)
	p.html(`</a>`)
}

func (x *Autolink) printMarkdown(p *printer) {
	// Use <url> when it reads back as the same link;
	// otherwise rely on the text being recognized as written.
	angle := "<" + x.URL + ">"
	if _, end, ok := parseAngleAutolink(nil, angle, 0); ok && end == len(angle) {
		p.md(angle)
		return
	}
	p.md(x.URL)
}

func (x *Autolink) printText(p *printer) { p.text(x.URL) }

func (x *Autolink) printLaTeX(p *printer) {
	p.raw(`\href{`, latexURLEscaper.Replace(x.Href()), "}{")
	p.text(x.URL)
	p.raw("}")
}

func (x *Autolink) printTypst(p *printer) {
	p.raw(`#link("`, typstStringEscaper.Replace(x.Href()), `")[`)
	p.text(x.URL)
	p.raw("]")
}

func (x *Autolink) appendNative(dst []node) []node {
	class := "uri"
	if x.isEmail() {
		class = "email"
	}
	return append(dst, node{T: "Link", C: []any{
		attr([]string{class}, nil),
		[]node{{T: "Str", C: x.URL}},
		[]string{x.Href(), ""},
	}})
}

// parseAngleAutolink is an [inlineParser] for an [Autolink]
// in angle brackets.
// The caller has checked that s[start] == '<'.
func parseAngleAutolink(_ *parser, s string, start int) (x Inline, end int, ok bool) {
	if x, end, ok := parseAutoLinkURI(s, start); ok {
		return x, end, ok
	}
	return parseAutoLinkEmail(s, start)
}

// parseAutoLinkURI parses a URI [Autolink] at s[i:].
// The caller has checked that s[i] == '<'.
func parseAutoLinkURI(s string, i int) (x Inline, end int, ok bool) {
	// CommonMark 0.31.2:
	//
	//	For purposes of this spec, a scheme is any sequence of 2–32 characters
	//	beginning with an ASCII letter and followed by any combination of
	//	ASCII letters, digits, or the symbols plus (”+”), period (”.”), or
	//	hyphen (”-”).
	//
	//	An absolute URI, for these purposes, consists of a scheme followed by
	//	a colon (:) followed by zero or more characters other ASCII control
	//	characters, space, <, and >. If the URI includes these characters,
	//	they must be percent-encoded (e.g. %20 for a space).

	j := i
	if j+1 >= len(s) || s[j] != '<' || !isLetter(s[j+1]) {
		return
	}
	j++
	for j < len(s) && isScheme(s[j]) && j-(i+1) <= 32 {
		j++
	}
	if j-(i+1) < 2 || j-(i+1) > 32 || j >= len(s) || s[j] != ':' {
		return
	}
	j++
	for j < len(s) && isURL(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '>' {
		return
	}
	return &Autolink{s[i+1 : j]}, j + 1, true
}

// parseAutoLinkEmail parses an email [Autolink] at s[i:].
// The caller has checked that s[i] == '<'.
func parseAutoLinkEmail(s string, i int) (x Inline, end int, ok bool) {
	// CommonMark 0.31.2:
	//
	//	An email address, for these purposes, is anything that matches
	//	the non-normative regex from the HTML5 spec:
	//
	//	/^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$/

	j := i
	if j+1 >= len(s) || s[j] != '<' || !isUser(s[j+1]) {
		return
	}
	j++
	for j < len(s) && isUser(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '@' {
		return
	}
	for {
		j++
		n, ok1 := skipDomainElem(s[j:])
		if !ok1 {
			return
		}
		j += n
		if j >= len(s) || s[j] != '.' && s[j] != '>' {
			return
		}
		if s[j] == '>' {
			break
		}
	}
	return &Autolink{s[i+1 : j]}, j + 1, true
}

// skipDomainElem reports the length of a leading domain element in s,
// along with whether there is one.
func skipDomainElem(s string) (int, bool) {
	// String of LDH, up to 63 in length, with LetterDigit
	// at both ends (1-letter/digit names are OK).
	// Aka /[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?/.
	if len(s) < 1 || !isLetterDigit(s[0]) {
		return 0, false
	}
	i := 1
	for i < len(s) && isLDH(s[i]) && i <= 63 {
		i++
	}
	if i > 63 || !isLetterDigit(s[i-1]) {
		return 0, false
	}
	return i, true
}

// isUser reports whether c is an email user byte.
func isUser(c byte) bool {
	// A-Za-z0-9 plus ".!#$%&'*+/=?^_`{|}~-"
	return c == '!' ||
		'#' <= c && c <= '\'' ||
		'*' <= c && c <= '+' ||
		'-' <= c && c <= '9' ||
		c == '=' ||
		c == '?' ||
		'A' <= c && c <= 'Z' ||
		'^' <= c && c <= '`' ||
		'a' <= c && c <= 'z' ||
		'{' <= c && c <= '~'
}

// isScheme reports whether c is a scheme character.
func isScheme(c byte) bool {
	return isLetterDigit(c) || c == '+' || c == '.' || c == '-'
}

// isURL reports whether c is a URL character.
func isURL(c byte) bool {
	return c > ' ' && c != '<' && c != '>'
}

// GitHub Flavored Markdown autolinks extension
// https://github.github.com/gfm/#autolinks-extension-

// autoLinkText rewrites any extended autolinks in the body
// and returns the result.
//
// Links and images are left alone: their text is already a link.
//
// The GitHub “spec” declares that “autolinks can only come at the
// beginning of a line, after whitespace, or any of the delimiting
// characters *, _, ~, and (”. However, the GitHub web site does not
// enforce this rule: text like "$abc@def.ghi is my email" links the
// text following the $ as an email address. It appears the actual rule
// is that autolinks cannot come after ASCII letters, although they can
// come after numbers or Unicode letters.
// We do what GitHub does, not what it says.
func autoLinkText(p *parser, list []Inline) []Inline {
	var out []Inline // allocated lazily when we first change list
	for i, x := range list {
		switch x := x.(type) {
		case *Text:
			if rewrite := autoLinkPlain(p, x.Text); rewrite != nil {
				if out == nil {
					out = append(out, list[:i]...)
				}
				out = append(out, rewrite...)
				continue
			}
		case *Strong:
			x.Inner = autoLinkText(p, x.Inner)
		case *Strikethrough:
			x.Inner = autoLinkText(p, x.Inner)
		case *Emphasis:
			x.Inner = autoLinkText(p, x.Inner)
		}
		if out != nil {
			out = append(out, x)
		}
	}
	if out == nil {
		return list
	}
	return out
}

// autoLinkPlain looks for text to auto-link in the plain text s.
// If it finds any, it returns an Inlines that should replace Text{s}.
func autoLinkPlain(p *parser, s string) Inlines {
	vd := &validDomainChecker{s: s}
	var out []Inline
Restart:
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '@' {
			if before, link, after, ok := parseAutoEmail(s, i); ok {
				if before != "" {
					out = append(out, &Text{before})
				}
				out = append(out, link)
				vd.removePrefix(len(s) - len(after))
				s = after
				goto Restart
			}
		}

		// Might this be http:// https:// mailto: xmpp: or www. ?
		if (c == 'h' || c == 'm' || c == 'x' || c == 'w') && (i == 0 || !isLetter(s[i-1])) {
			if link, after, ok := parseAutoURL(s, i, vd); ok {
				if i > 0 {
					out = append(out, &Text{s[:i]})
				}
				out = append(out, link)
				vd.removePrefix(len(s) - len(after))
				s = after
				goto Restart
			}
		}
	}
	if out == nil {
		return nil
	}
	if s != "" {
		out = append(out, &Text{s})
	}
	return out
}

// parseAutoURL parses an [extended URL autolink] or [extended www autolink],
// or [extended protocol autolink] from s[i:] if one exists,
// using vd as its valid domain checker.
// It returns the link, the text following the auto-link, and whether a link was found at all.
//
// [extended URL autolink]: https://github.github.com/gfm/#extended-url-autolink
// [extended www autolink]: https://github.github.com/gfm/#extended-www-autolink
// [extended protocol autolink]: https://github.github.com/gfm/#extended-email-autolink
func parseAutoURL(s string, i int, vd *validDomainChecker) (link *Autolink, after string, found bool) {
	switch s[i] {
	case 'h':
		var n int
		if strings.HasPrefix(s[i:], "https://") {
			n = len("https://")
		} else if strings.HasPrefix(s[i:], "http://") {
			n = len("http://")
		} else {
			return
		}
		return parseAutoHTTP(s, i, i+n, i+n+1, vd)
	case 'w':
		if !strings.HasPrefix(s[i:], "www.") {
			return
		}
		return parseAutoHTTP(s, i, i, i+4, vd)
	case 'm':
		if !strings.HasPrefix(s[i:], "mailto:") {
			return
		}
		return parseAutoProto(s, i, "mailto:")
	case 'x':
		if !strings.HasPrefix(s[i:], "xmpp:") {
			return
		}
		return parseAutoProto(s, i, "xmpp:")
	}
	return
}

// parseAutoHTTP parses a URL link, returning the link,
// the text following the link, and whether a link was found at all.
//
// The text of the link starts at s[textstart:].
// The domain starts at s[start:].
// The link must use at least s[start:min] or it is not a valid link.
// vd is the domain checker to use.
func parseAutoHTTP(s string, textstart, start, min int, vd *validDomainChecker) (link *Autolink, after string, found bool) {
	n, ok := vd.parseValidDomain(start)
	if !ok {
		return
	}
	i := start + n
	domEnd := i

	// “After a valid domain, zero or more non-space non-< characters may follow.”
	paren := 0
	for i < len(s) {
		r, n := utf8.DecodeRuneInString(s[i:])
		if isUnicodeSpace(r) || r == '<' {
			break
		}
		if r == '(' {
			paren++
		}
		if r == ')' {
			paren--
		}
		i += n
	}

	// https://github.github.com/gfm/#extended-autolink-path-validation
Trim:
	for i > 0 {
		switch s[i-1] {
		case '?', '!', '.', ',', ':', '@', '_', '~', '*', '\'', '"':
			// Trim certain trailing punctuation.
			i--
			continue Trim

		case ')':
			// Trim trailing unmatched (by count only) parens.
			if paren < 0 {
				for s[i-1] == ')' && paren < 0 {
					paren++
					i--
				}
				continue Trim
			}

		case ';':
			// Trim entity reference.
			// After doing the work of the scan, we either cut that part off the string
			// or we stop the trimming entirely, so there's no chance of repeating
			// the scan on a future iteration and going accidentally quadratic.
			for j := i - 2; j > start; j-- {
				if j < i-2 && s[j] == '&' {
					i = j
					continue Trim
				}
				if !isLetterDigit(s[j]) {
					i--
					break Trim
				}
			}
		}
		break Trim
	}

	// www.example.com$foo is not linked past the domain:
	// if a www. domain is followed by anything, it must be a slash.
	if textstart == start && i > domEnd && s[domEnd] != '/' {
		i = domEnd
	}

	if i < min {
		return
	}
	return &Autolink{s[textstart:i]}, s[i:], true
}

// parseAutoEmail parses an [extended email autolink] with its @ sign at s[i].
// The caller has checked that s[i] == '@'.
// parseAutoEmail returns the text of s before the link, the link, the text after the link,
// and whether a link was found at all.
//
// [extended email autolink]: https://github.github.com/gfm/#extended-email-autolink
func parseAutoEmail(s string, i int) (before string, link *Autolink, after string, ok bool) {
	// “One ore more characters which are alphanumeric, or ., -, _, or +.”
	j := i
	for j > 0 && (isLDH(s[j-1]) || s[j-1] == '_' || s[j-1] == '+' || s[j-1] == '.') {
		j--
	}
	if i-j < 1 {
		return
	}

	// “One or more characters which are alphanumeric, or - or _, separated by periods (.).
	// There must be at least one period. The last character must not be one of - or _.”
	dots := 0
	k := i + 1
	for k < len(s) && (isLDH(s[k]) || s[k] == '_' || s[k] == '.') {
		if s[k] == '.' {
			if s[k-1] == '.' {
				// Empirically, .. stops the scan but foo@.bar is fine.
				break
			}
			dots++
		}
		k++
	}

	// “., -, and _ can occur on both sides of the @, but only . may occur at the end
	// of the email address, in which case it will not be considered part of the address”
	if s[k-1] == '.' {
		dots--
		k--
	}
	if s[k-1] == '-' || s[k-1] == '_' {
		return
	}
	if k-(i+1)-dots < 2 || dots < 1 {
		return
	}
	return s[:j], &Autolink{s[j:k]}, s[k:], true
}

// parseAutoProto parses a mailto: or xmpp: [extended protocol autolink] from s[i:].
// The caller has checked that s[i:] begins with proto.
//
// [extended protocol autolink]: https://github.github.com/gfm/#extended-protocol-autolink
func parseAutoProto(s string, i int, proto string) (link *Autolink, after string, ok bool) {
	j := i + len(proto)
	for j < len(s) && (isLDH(s[j]) || s[j] == '_' || s[j] == '+' || s[j] == '.') {
		j++
	}
	if j >= len(s) || s[j] != '@' {
		return
	}
	before, _, after, ok := parseAutoEmail(s[i:], j-i)
	if before != proto || !ok {
		return nil, "", false
	}
	if proto == "xmpp:" && after != "" && after[0] == '/' {
		k := 1
		for k < len(after) && (isLetterDigit(after[k]) || after[k] == '@' || after[k] == '.') {
			k++
		}
		after = after[k:]
	}
	return &Autolink{s[i : len(s)-len(after)]}, after, true
}

// A validDomainChecker implements the operation of parsing a valid domain
// starting at a specific offset in a string, but it amortizes analysis of the string
// across multiple calls to avoid quadratic behavior when the checker is invoked
// at every offset (or many offsets) in the string.
type validDomainChecker struct {
	s   string
	cut int // before this index, no valid domains
}

// removePrefix removes the first n bytes from the target string s,
// so that future calls are valid for s[n:], not s.
func (v *validDomainChecker) removePrefix(n int) {
	v.s = v.s[n:]
	v.cut -= n
}

// parseValidDomain parses a [valid domain].
//
// If s[start:] starts with a valid domain, parseValidDomain returns
// the length of that domain and true. If s[start:] does not start with
// a valid domain, parseValidDomain returns 0, false and remembers
// that no later call can find a domain before the end of the failed scan.
//
// “A valid domain consists of segments of alphanumeric characters,
// underscores (_) and hyphens (-) separated by periods (.).
// There must be at least one period, and no underscores may be
// present in the last two segments of the domain.”
//
// [valid domain]: https://github.github.com/gfm/#valid-domain
func (v *validDomainChecker) parseValidDomain(start int) (n int, found bool) {
	if start < v.cut {
		return 0, false
	}
	i := start
	dots := 0
	for ; i < len(v.s); i++ {
		c := v.s[i]
		if c == '_' {
			dots = -2
			continue
		}
		if c == '.' {
			dots++
			continue
		}
		if !isLDH(c) {
			break
		}
	}
	if dots >= 0 && i > start {
		return i - start, true
	}
	v.cut = i
	return 0, false
}
