// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"rsc.io/mdconv"
	"rsc.io/mdconv/internal/config"
	"rsc.io/mdconv/internal/fsutil"
	"rsc.io/mdconv/internal/langdetect"
	"rsc.io/mdconv/internal/logging"
)

type convertFlags struct {
	from          string
	to            string
	output        string
	standalone    bool
	indent        bool
	guessLanguage bool
	configPath    string
	debug         bool
}

// resolve loads the configuration and applies the flags
// that were set explicitly on the command line.
func (fl *convertFlags) resolve(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, path, err := config.Load(".", fl.configPath)
	if err != nil {
		return nil, "", err
	}
	f := cmd.Flags()
	if f.Changed("from") {
		cfg.From = fl.from
	}
	if f.Changed("to") {
		cfg.To = fl.to
	}
	if f.Changed("standalone") {
		cfg.Standalone = fl.standalone
	}
	if f.Changed("indent") {
		cfg.Indent = fl.indent
	}
	if f.Changed("guess-language") {
		cfg.GuessLanguage = fl.guessLanguage
	}
	if fl.debug {
		cfg.LogLevel = "debug"
	}
	return cfg, path, nil
}

func runConvert(cmd *cobra.Command, fl *convertFlags, args []string) error {
	cfg, cfgPath, err := fl.resolve(cmd)
	if err != nil {
		return err
	}
	logger := logging.NewWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	ctx := logging.WithLogger(cmd.Context(), logger)
	if cfgPath != "" {
		logger.Debug("loaded config", logging.FieldConfig, cfgPath)
	}

	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	data, err := readInput(cmd.InOrStdin(), name, logger)
	if err != nil {
		return err
	}
	logger.Debug("read input",
		logging.FieldInput, name,
		logging.FieldBytes, len(data),
		logging.FieldReader, cfg.From,
		logging.FieldWriter, cfg.To,
	)

	out, err := convert(cfg, data, logger)
	if err != nil {
		return err
	}

	if fl.output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
	if err := fsutil.WriteAtomic(ctx, fl.output, []byte(out), 0); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("wrote output", logging.FieldOutput, fl.output, logging.FieldBytes, len(out))
	return nil
}

// readInput reads the named file, or stdin if name is "-".
func readInput(stdin io.Reader, name string, logger *log.Logger) ([]byte, error) {
	if name != "-" {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", mdconv.ErrUnreadableInput, err)
		}
		return data, nil
	}
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		logger.Debug("reading standard input until EOF")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("%w: standard input: %w", mdconv.ErrUnreadableInput, err)
	}
	return data, nil
}

// convert parses data and renders it as configured by cfg.
func convert(cfg *config.Config, data []byte, logger *log.Logger) (string, error) {
	if err := mdconv.CheckWriter(cfg.To); err != nil {
		return "", err
	}
	doc, err := cfg.Parser().Read(cfg.From, data)
	if err != nil {
		return "", err
	}
	logger.Debug("parsed document", logging.FieldBlocks, len(doc.Blocks))
	return mdconv.Render(cfg.To, doc, cfg.RenderOptions(langdetect.Guess))
}
