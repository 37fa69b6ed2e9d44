// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads mdconv settings from a YAML file
// and MDCONV_ environment variables.
//
// Settings are resolved in increasing precedence:
// built-in defaults, the configuration file, the environment,
// and finally command-line flags, which the caller applies.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"rsc.io/mdconv"
)

// FileName is the configuration file looked up in the working directory
// when no explicit path is given.
const FileName = ".mdconv.yaml"

// Config holds the resolved settings.
type Config struct {
	From          string     `yaml:"from"`
	To            string     `yaml:"to"`
	Standalone    bool       `yaml:"standalone"`
	Indent        bool       `yaml:"indent"`
	GuessLanguage bool       `yaml:"guess_language"`
	LogLevel      string     `yaml:"log_level"`
	Extensions    Extensions `yaml:"extensions"`
}

// Extensions selects the GitHub extensions of the gfm reader.
type Extensions struct {
	Table         bool `yaml:"table"`
	Strikethrough bool `yaml:"strikethrough"`
	TaskList      bool `yaml:"tasklist"`
	AutoLink      bool `yaml:"autolink"`
	Emoji         bool `yaml:"emoji"`
	Mentions      bool `yaml:"mentions"`
}

// Default returns the built-in settings: gfm to native with every extension on.
func Default() *Config {
	return &Config{
		From:     "gfm",
		To:       "native",
		LogLevel: "info",
		Extensions: Extensions{
			Table:         true,
			Strikethrough: true,
			TaskList:      true,
			AutoLink:      true,
			Emoji:         true,
			Mentions:      true,
		},
	}
}

// Parser returns a parser with the configured extensions.
func (c *Config) Parser() *mdconv.Parser {
	return &mdconv.Parser{
		Table:         c.Extensions.Table,
		Strikethrough: c.Extensions.Strikethrough,
		TaskList:      c.Extensions.TaskList,
		AutoLinkText:  c.Extensions.AutoLink,
		Emoji:         c.Extensions.Emoji,
		Mentions:      c.Extensions.Mentions,
	}
}

// RenderOptions returns the writer options for c.
// guess is installed as the language guesser when GuessLanguage is set.
func (c *Config) RenderOptions(guess func(string) string) *mdconv.RenderOptions {
	opts := &mdconv.RenderOptions{
		Standalone: c.Standalone,
		Indent:     c.Indent,
	}
	if c.GuessLanguage {
		opts.GuessLanguage = guess
	}
	return opts
}

// Parse decodes YAML settings on top of [Default].
// Keys absent from data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Load resolves the settings from the file at path and the environment.
// An empty path means [FileName] in dir, which may be absent;
// an explicit path must exist.
// Load returns the path actually read, or "" if none.
func Load(dir, path string) (*Config, string, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
		path = ""
	default:
		return nil, "", fmt.Errorf("read config: %w", err)
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
