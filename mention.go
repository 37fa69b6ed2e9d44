// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import "strconv"

// A UserMention is an [Inline] representing a GitHub @handle mention.
type UserMention struct {
	Handle string // without the @
}

func (x *UserMention) String() string { return "@" + x.Handle }

func (x *UserMention) printHTML(p *printer) {
	p.html(`<span class="user-mention">`)
	p.text(x.String())
	p.html(`</span>`)
}

func (x *UserMention) printMarkdown(p *printer) { p.md(x.String()) }
func (x *UserMention) printText(p *printer)     { p.text(x.String()) }
func (x *UserMention) printLaTeX(p *printer)    { p.text(x.String()) }
func (x *UserMention) printTypst(p *printer)    { p.text(x.String()) }

func (x *UserMention) appendNative(dst []node) []node {
	return append(dst, span([]string{"user-mention"}, nil, x.String()))
}

// An IssueReference is an [Inline] representing a GitHub #123 issue reference.
type IssueReference struct {
	Number int
}

func (x *IssueReference) String() string { return "#" + strconv.Itoa(x.Number) }

func (x *IssueReference) printHTML(p *printer) {
	p.html(`<span class="issue">`)
	p.text(x.String())
	p.html(`</span>`)
}

func (x *IssueReference) printMarkdown(p *printer) { p.md(x.String()) }
func (x *IssueReference) printText(p *printer)     { p.text(x.String()) }
func (x *IssueReference) printLaTeX(p *printer)    { p.text(x.String()) }
func (x *IssueReference) printTypst(p *printer)    { p.text(x.String()) }

func (x *IssueReference) appendNative(dst []node) []node {
	return append(dst, span([]string{"issue"}, nil, x.String()))
}

const (
	maxHandle    = 39 // GitHub's limit on user names
	maxIssueLen  = 9
	noPrevByte   = 0
	codePrevByte = '`'
)

// mentionBoundary reports whether an @ mention may follow the byte c.
func mentionBoundary(c byte) bool {
	return !isLetterDigit(c) && c != '`' && c != '@' && c != '/'
}

// issueBoundary reports whether a # issue reference may follow the byte c.
func issueBoundary(c byte) bool {
	return !isLetterDigit(c) && c != '&'
}

// mentionText rewrites @handle mentions and #123 issue references
// in the Text nodes of list, descending into emphasis but not into
// links, which already have their own target.
func mentionText(list []Inline) []Inline {
	var out []Inline // allocated lazily when we first change list
	prev := byte(noPrevByte)
	for i, x := range list {
		switch x := x.(type) {
		case *Text:
			if rewrite := mentionPlain(x.Text, prev); rewrite != nil {
				if out == nil {
					out = append(out, list[:i]...)
				}
				out = append(out, rewrite...)
				prev = x.Text[len(x.Text)-1]
				continue
			}
		case *Emphasis:
			x.Inner = mentionText(x.Inner)
		case *Strong:
			x.Inner = mentionText(x.Inner)
		case *Strikethrough:
			x.Inner = mentionText(x.Inner)
		}
		prev = noPrevByte
		switch x := x.(type) {
		case *Text:
			if x.Text != "" {
				prev = x.Text[len(x.Text)-1]
			}
		case *CodeSpan:
			prev = codePrevByte
		case *EscapedChar:
			prev = x.Char
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

// mentionPlain looks for mentions and issue references in s,
// which follows the byte prev (or noPrevByte at the start of a run).
// If it finds any, it returns an Inlines that should replace Text{s}.
func mentionPlain(s string, prev byte) Inlines {
	var out []Inline
	start := 0
	for i := 0; i < len(s); i++ {
		before := prev
		if i > 0 {
			before = s[i-1]
		}
		var x Inline
		var end int
		switch s[i] {
		case '@':
			if before != noPrevByte && !mentionBoundary(before) {
				continue
			}
			x, end = parseMention(s, i)
		case '#':
			if before != noPrevByte && !issueBoundary(before) {
				continue
			}
			x, end = parseIssue(s, i)
		}
		if x == nil {
			continue
		}
		if start < i {
			out = append(out, &Text{s[start:i]})
		}
		out = append(out, x)
		start = end
		i = end - 1
	}
	if out == nil {
		return nil
	}
	if start < len(s) {
		out = append(out, &Text{s[start:]})
	}
	return out
}

// parseMention parses an @handle at s[i:].
// A handle is a letter or digit followed by letters, digits, and hyphens.
func parseMention(s string, i int) (Inline, int) {
	j := i + 1
	if j >= len(s) || !isLetterDigit(s[j]) {
		return nil, 0
	}
	for j < len(s) && isLDH(s[j]) {
		j++
	}
	if j-(i+1) > maxHandle {
		return nil, 0
	}
	return &UserMention{Handle: s[i+1 : j]}, j
}

// parseIssue parses a #123 issue reference at s[i:].
func parseIssue(s string, i int) (Inline, int) {
	j := i + 1
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j < len(s) && isLetterDigit(s[j]) {
		return nil, 0
	}
	n, ok := issueNumber(s[i+1 : j])
	if !ok {
		return nil, 0
	}
	return &IssueReference{Number: n}, j
}

// issueNumber parses the digits of an issue reference.
// Leading zeros are rejected so that the number prints back
// exactly as written.
func issueNumber(digits string) (int, bool) {
	if digits == "" || len(digits) > maxIssueLen || digits[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	return n, err == nil
}
