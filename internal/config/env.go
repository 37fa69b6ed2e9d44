// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by [ApplyEnv].
const EnvPrefix = "MDCONV_"

type envField struct {
	str *string
	b   *bool
}

// envFields maps variable names (without the prefix) to fields of c.
func envFields(c *Config) map[string]envField {
	return map[string]envField{
		"FROM":           {str: &c.From},
		"TO":             {str: &c.To},
		"LOG_LEVEL":      {str: &c.LogLevel},
		"STANDALONE":     {b: &c.Standalone},
		"INDENT":         {b: &c.Indent},
		"GUESS_LANGUAGE": {b: &c.GuessLanguage},
		"TABLE":          {b: &c.Extensions.Table},
		"STRIKETHROUGH":  {b: &c.Extensions.Strikethrough},
		"TASKLIST":       {b: &c.Extensions.TaskList},
		"AUTOLINK":       {b: &c.Extensions.AutoLink},
		"EMOJI":          {b: &c.Extensions.Emoji},
		"MENTIONS":       {b: &c.Extensions.Mentions},
	}
}

// EnvVars returns the sorted names of the recognized environment variables.
func EnvVars() []string {
	var names []string
	for k := range envFields(new(Config)) {
		names = append(names, EnvPrefix+k)
	}
	slices.Sort(names)
	return names
}

// ApplyEnv overrides fields of c from the environment, as seen through lookup.
// Empty values are ignored.
func ApplyEnv(c *Config, lookup func(string) (string, bool)) error {
	for _, name := range EnvVars() {
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		f := envFields(c)[strings.TrimPrefix(name, EnvPrefix)]
		switch {
		case f.str != nil:
			*f.str = value
		case f.b != nil:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %q", name, value)
			}
			*f.b = b
		}
	}
	return nil
}
