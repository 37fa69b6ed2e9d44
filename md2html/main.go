// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Md2html converts GitHub-flavored Markdown to HTML.
//
// Usage:
//
//	md2html [-standalone] [-guess] [file...]
//
// Md2html reads the named files, or else standard input, as Markdown documents
// and then prints the corresponding HTML to standard output.
//
// The -standalone flag prints a complete HTML page for each document.
// The -guess flag labels code blocks that have no language
// with a guessed one.
package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"unicode/utf8"

	"rsc.io/mdconv"
	"rsc.io/mdconv/internal/langdetect"
	"rsc.io/mdconv/internal/logging"
)

var (
	standalone = flag.Bool("standalone", false, "print a complete HTML page")
	guess      = flag.Bool("guess", false, "guess the language of unlabeled code blocks")
)

func main() {
	log := logging.New("info").WithPrefix("md2html")
	flag.Parse()
	opts := &mdconv.RenderOptions{Standalone: *standalone}
	if *guess {
		opts.GuessLanguage = langdetect.Guess
	}

	args := flag.Args()
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal("reading standard input", logging.FieldError, err)
		}
		os.Stdout.WriteString(toHTML(data, opts))
		return
	}
	for _, arg := range args {
		data, err := os.ReadFile(arg)
		if err != nil {
			log.Fatal("reading input", logging.FieldInput, arg, logging.FieldError, err)
		}
		os.Stdout.WriteString(toHTML(data, opts))
	}
}

// toHTML converts Markdown to HTML.
func toHTML(md []byte, opts *mdconv.RenderOptions) string {
	doc := mdconv.NewParser().Parse(string(replaceTabs(md)))
	out, err := mdconv.Render("html", doc, opts)
	if err != nil {
		// The html writer always exists.
		panic(err)
	}
	return out
}

// replaceTabs replaces all tabs in text with spaces up to a 4-space tab stop.
//
// In Markdown, tabs used for indentation are required to be interpreted as
// 4-space tab stops. See https://spec.commonmark.org/0.30/#tabs.
// Go also renders nicely and more compactly on the screen with 4-space
// tab stops, while browsers often use 8-space.
// Make the Go code consistently compact across browsers,
// all while staying Markdown-compatible, by expanding to 4-space tab stops.
//
// This function does not handle multi-codepoint Unicode sequences correctly.
func replaceTabs(text []byte) []byte {
	var buf bytes.Buffer
	col := 0
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		text = text[size:]

		switch r {
		case '\n':
			buf.WriteByte('\n')
			col = 0

		case '\t':
			buf.WriteByte(' ')
			col++
			for col%4 != 0 {
				buf.WriteByte(' ')
				col++
			}

		default:
			buf.WriteRune(r)
			col++
		}
	}
	return buf.Bytes()
}
