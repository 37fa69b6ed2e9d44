// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mdconv converts documents between markup formats.
//
// Usage:
//
//	mdconv [-f from] [-t to] [-o file] [--standalone] [--indent] [--guess-language] [file]
//	mdconv formats
//	mdconv version
//
// Mdconv reads the named file, or else standard input, in the format
// given by -f (default gfm) and writes it in the format given by -t
// (default native, Pandoc's JSON) to standard output or the -o file.
// Run "mdconv formats" for the list of formats.
package main

import (
	"context"
	"os"

	"rsc.io/mdconv/internal/cli"
	"rsc.io/mdconv/internal/logging"
)

// Set by the linker.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		logging.Default().Error("conversion failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
