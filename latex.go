// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import "strings"

// latexEscaper escapes the LaTeX special characters in document text.
var latexEscaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\^{}`,
	`\`, `\textbackslash{}`,
	"`", `\textasciigrave{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
)

// latexURLEscaper escapes a URL for use as the argument of \href or \includegraphics.
var latexURLEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`#`, `\#`,
	`{`, `\{`,
	`}`, `\}`,
)

const latexPreamble = `\documentclass[]{article}
\usepackage[utf8]{inputenc}
\usepackage[normalem]{ulem}
\usepackage{graphicx}
\usepackage{listings}
\providecommand{\tightlist}{\setlength{\itemsep}{0pt}\setlength{\parskip}{0pt}}
\begin{document}
`

// printLaTeXBlocks prints a sequence of sibling blocks,
// separating them by a blank line unless tight is set.
func printLaTeXBlocks(bs []Block, p *printer, tight bool) {
	for bn, b := range bs {
		if bn > 0 {
			p.raw("\n")
			if !tight {
				p.raw("\n")
			}
		}
		b.printLaTeX(p)
	}
}

// ToLaTeX returns the LaTeX form of doc.
// If standalone is set, the result is a complete article.
func ToLaTeX(doc *Document, standalone bool) string {
	p := newPrinter(writeLaTeX, &RenderOptions{Standalone: standalone})
	return renderLaTeX(doc, p)
}

func renderLaTeX(doc *Document, p *printer) string {
	if p.opts.Standalone {
		p.raw(latexPreamble)
	}
	printLaTeXBlocks(doc.Blocks, p, false)
	if p.opts.Standalone {
		p.raw("\n", `\end{document}`)
	}
	return p.finish()
}
