// Copyright 2021 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mdfmt reformats GitHub-flavored Markdown.
//
// Usage:
//
//	mdfmt [-w] [-commonmark] [file...]
//
// Mdfmt reads the named files, or else standard input, as Markdown documents
// and then reprints the same Markdown documents to standard output.
//
// The -w flag specifies to rewrite the files in place.
// Files whose formatting is already canonical are left untouched.
//
// The -commonmark flag disables the GitHub extensions.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"rsc.io/mdconv"
	"rsc.io/mdconv/internal/fsutil"
	"rsc.io/mdconv/internal/logging"
)

var (
	wflag      = flag.Bool("w", false, "write reformatted Markdown to files")
	commonmark = flag.Bool("commonmark", false, "parse plain CommonMark")
	exit       = 0
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: mdfmt [-w] [-commonmark] [file...]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	logger := logging.New("info").WithPrefix("mdfmt")
	flag.Usage = usage
	flag.Parse()

	p := mdconv.NewParser()
	if *commonmark {
		p = new(mdconv.Parser)
	}

	if flag.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatal("reading standard input", logging.FieldError, err)
		}
		convert(logger, p, data, "")
	} else {
		for _, file := range flag.Args() {
			data, err := os.ReadFile(file)
			if err != nil {
				logger.Error("reading input", logging.FieldInput, file, logging.FieldError, err)
				exit = 1
				continue
			}
			convert(logger, p, data, file)
		}
	}
	os.Exit(exit)
}

func convert(logger *log.Logger, p *mdconv.Parser, data []byte, file string) {
	out := []byte(mdconv.ToMarkdown(p.Parse(string(data))))
	if *wflag && file != "" {
		wrote, err := fsutil.WriteAtomicIfChanged(context.Background(), file, out, 0)
		if err != nil {
			logger.Error("writing output", logging.FieldOutput, file, logging.FieldError, err)
			exit = 1
			return
		}
		if wrote {
			logger.Debug("reformatted", logging.FieldOutput, file)
		}
		return
	}
	os.Stdout.Write(out)
}
