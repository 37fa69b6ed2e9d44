// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"html"
	"strconv"
	"strings"
	"unicode"
)

// isPunct reports whether c is Markdown punctuation.
func isPunct(c byte) bool {
	return '!' <= c && c <= '/' || ':' <= c && c <= '@' || '[' <= c && c <= '`' || '{' <= c && c <= '~'
}

// isLetter reports whether c is an ASCII letter.
func isLetter(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isLetterDigit reports whether c is an ASCII letter or digit.
func isLetterDigit(c byte) bool {
	return isLetter(c) || isDigit(c)
}

// isLDH reports whether c is an ASCII letter, digit, or hyphen.
func isLDH(c byte) bool {
	return isLetterDigit(c) || c == '-'
}

// isHexDigit reports whether c is an ASCII hexadecimal digit.
func isHexDigit(c byte) bool {
	return 'A' <= c && c <= 'F' || 'a' <= c && c <= 'f' || '0' <= c && c <= '9'
}

// isUnicodeSpace reports whether r is a Unicode space as defined by Markdown.
// This is not the same as unicode.IsSpace:
// U+0085 satisfies unicode.IsSpace but not isUnicodeSpace.
func isUnicodeSpace(r rune) bool {
	if r < 0x80 {
		return r == ' ' || r == '\t' || r == '\f' || r == '\n'
	}
	return unicode.In(r, unicode.Zs)
}

// isUnicodePunct reports whether r is Unicode punctuation as defined by Markdown,
// which includes the symbol classes.
func isUnicodePunct(r rune) bool {
	if r < 0x80 {
		return isPunct(byte(r))
	}
	return unicode.In(r, unicode.Punct, unicode.Symbol)
}

// skipSpace returns the index of the first byte at or after i
// that is not a space, tab, or newline.
func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

// mdUnescape returns s with backslash escapes and
// HTML entity references decoded.
func mdUnescape(s string) string {
	if !strings.ContainsAny(s, `\&`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && isPunct(s[i+1]):
			i++
			b.WriteByte(s[i])
		case c == '&':
			if text, end, ok := decodeEntity(s, i); ok {
				b.WriteString(text)
				i = end - 1
				break
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// decodeEntity decodes the HTML entity reference at s[start],
// such as &quot;, &#123;, or &#x12AB;.
// It returns the decoded text and the index just past the reference.
func decodeEntity(s string, start int) (text string, end int, ok bool) {
	i := start + 1
	if i < len(s) && s[i] == '#' {
		i++
		var r int64
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			i++
			j := i
			for j < len(s) && isHexDigit(s[j]) {
				j++
			}
			if j-i < 1 || j-i > 6 || j >= len(s) || s[j] != ';' {
				return "", 0, false
			}
			r, _ = strconv.ParseInt(s[i:j], 16, 32)
			end = j + 1
		} else {
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j-i < 1 || j-i > 7 || j >= len(s) || s[j] != ';' {
				return "", 0, false
			}
			r, _ = strconv.ParseInt(s[i:j], 10, 32)
			end = j + 1
		}
		if r > unicode.MaxRune || r == 0 || 0xD800 <= r && r <= 0xDFFF {
			r = unicode.ReplacementChar
		}
		return string(rune(r)), end, true
	}

	// Entity names are at most 32 bytes.
	if i >= len(s) || !isLetter(s[i]) {
		return "", 0, false
	}
	for j := i + 1; j < len(s) && j-i <= 32; j++ {
		if s[j] == ';' {
			ref := s[start : j+1]
			// UnescapeString also expands legacy prefixes like "&amp" in "&ampx;",
			// which leave the rest of the name and the semicolon behind.
			text := html.UnescapeString(ref)
			if text != ref && (text == ";" || !strings.HasSuffix(text, ";")) {
				return text, j + 1, true
			}
			break
		}
		if !isLetterDigit(s[j]) {
			break
		}
	}
	return "", 0, false
}

// mdLinkEscaper escapes a link destination for Markdown output.
var mdLinkEscaper = strings.NewReplacer(
	`\`, `\\`,
	`(`, `\(`,
	`)`, `\)`,
	`<`, `\<`,
	`>`, `\>`,
	`&`, `\&`,
)

// mdTitleEscaper escapes a double-quoted link title for Markdown output.
var mdTitleEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`&`, `\&`,
)
