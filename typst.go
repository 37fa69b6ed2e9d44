// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import "strings"

// typstEscaper escapes the characters that have meaning in Typst markup.
var typstEscaper = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`(`, `\(`,
	`)`, `\)`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`^`, `\^`,
	`*`, `\*`,
	`_`, `\_`,
	`&`, `\&`,
	`~`, `\~`,
	"`", "\\`",
	`@`, `\@`,
	`<`, `\<`,
	`>`, `\>`,
	`/`, `\/`,
)

// typstStringEscaper escapes s for use inside a Typst "string".
var typstStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
)

// printTypstBlocks prints a sequence of sibling blocks,
// separating them by a blank line unless tight is set.
func printTypstBlocks(bs []Block, p *printer, tight bool) {
	for bn, b := range bs {
		if bn > 0 {
			p.nl()
			if !tight {
				p.nl()
			}
		}
		b.printTypst(p)
	}
}

// ToTypst returns the Typst form of doc.
func ToTypst(doc *Document) string {
	p := newPrinter(writeTypst, nil)
	printTypstBlocks(doc.Blocks, p, false)
	return p.finish()
}
