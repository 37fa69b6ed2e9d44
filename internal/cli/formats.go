// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rsc.io/mdconv"
)

// aliases maps format names to the name they are an alias of.
var aliases = map[string]string{
	"markdown": "gfm",
	"json":     "native",
}

// formatDescriptions describes each canonical format.
var formatDescriptions = map[string]string{
	"gfm":        "GitHub-flavored Markdown",
	"commonmark": "CommonMark, without GitHub extensions",
	"native":     "Pandoc JSON",
	"html":       "HTML fragment or page",
	"latex":      "LaTeX fragment or article",
	"typst":      "Typst markup",
	"plain":      "plain text",
}

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available readers and writers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			st := newStyles(colorEnabled(w))
			if err := printFormats(w, st, "Readers", mdconv.Readers()); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			return printFormats(w, st, "Writers", mdconv.Writers())
		},
	}
}

func printFormats(w io.Writer, st *styles, title string, names []string) error {
	if _, err := fmt.Fprintln(w, st.Heading.Render(title+":")); err != nil {
		return err
	}
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		desc := formatDescriptions[name]
		if target, ok := aliases[name]; ok {
			desc = st.Alias.Render("alias for " + target)
		}
		padded := fmt.Sprintf("%-*s", width, name)
		if _, err := fmt.Fprintf(w, "  %s  %s\n", st.Name.Render(padded), desc); err != nil {
			return err
		}
	}
	return nil
}
