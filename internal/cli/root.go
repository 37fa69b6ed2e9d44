// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli implements the mdconv command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo holds version information set at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand returns the mdconv command.
// Run without a subcommand, it converts one document.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "mdconv [file]",
		Short: "Convert documents between markup formats",
		Long: `mdconv converts a document from one markup format to another.

It reads the named file, or standard input until EOF, parses it with
the reader chosen by --from, and prints it in the format chosen by --to.
Readers and writers are listed by "mdconv formats".

Settings are read from .mdconv.yaml in the current directory (or --config),
then from MDCONV_* environment variables, then from flags.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.from, "from", "f", "", "input format (default gfm)")
	f.StringVarP(&flags.to, "to", "t", "", "output format (default native)")
	f.StringVarP(&flags.output, "output", "o", "", "write output to `file` instead of standard output")
	f.BoolVar(&flags.standalone, "standalone", false, "produce a complete html or latex document")
	f.BoolVar(&flags.indent, "indent", false, "pretty-print native output")
	f.BoolVar(&flags.guessLanguage, "guess-language", false, "guess the language of unlabeled code blocks")

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "read settings from `file`")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newFormatsCommand())
	cmd.AddCommand(newVersionCommand(info))
	return cmd
}
