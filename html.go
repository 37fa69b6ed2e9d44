// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"strings"
)

// htmlEscaper escapes text for use in HTML content and attribute values.
var htmlEscaper = strings.NewReplacer(
	`&`, `&amp;`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	`"`, `&quot;`,
)

// htmlLinkEscape escapes a URL for use in an href or src attribute.
// Bytes outside the URL-safe set are percent-encoded;
// existing %XX escapes are left alone.
func htmlLinkEscape(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '&':
			b.WriteString("&amp;")
		case isLetterDigit(c) || strings.IndexByte("-_.!~*'();/?:@=+$,%#", c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xF])
		}
	}
	return b.String()
}

const (
	htmlPageHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>`
	htmlPageBody = `</title>
</head>
<body>
`
	htmlPageFooter = `</body>
</html>
`
)

// ToHTML returns the HTML fragment for doc.
func ToHTML(doc *Document) string {
	return renderHTML(doc, newPrinter(writeHTML, nil))
}

func renderHTML(doc *Document, p *printer) string {
	if p.opts.Standalone {
		p.html(htmlPageHeader)
		p.text(documentTitle(doc))
		p.html(htmlPageBody)
	}
	for _, b := range doc.Blocks {
		b.printHTML(p)
	}
	if p.opts.Standalone {
		p.html(htmlPageFooter)
	}
	return p.finish()
}

// documentTitle returns the text of the first header in doc, if any.
func documentTitle(doc *Document) string {
	for _, b := range doc.Blocks {
		if h, ok := b.(*Header); ok {
			return h.Inlines.plainText()
		}
	}
	return ""
}
