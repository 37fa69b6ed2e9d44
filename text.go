// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

// printTextBlocks prints a sequence of sibling blocks as plain text,
// separating them by a blank line unless tight is set.
func printTextBlocks(bs []Block, p *printer, tight bool) {
	for bn, b := range bs {
		if bn > 0 {
			p.nl()
			if !tight {
				p.nl()
			}
		}
		b.printText(p)
	}
}

// ToText returns the plain text of doc, with all markup removed.
func ToText(doc *Document) string {
	p := newPrinter(writeText, nil)
	printTextBlocks(doc.Blocks, p, false)
	return p.finish()
}
