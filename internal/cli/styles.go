// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// styles holds the lipgloss styles for listings.
type styles struct {
	Heading lipgloss.Style
	Name    lipgloss.Style
	Alias   lipgloss.Style
}

func newStyles(color bool) *styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &styles{Heading: plain, Name: plain, Alias: plain}
	}
	return &styles{
		Heading: lipgloss.NewStyle().Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Alias:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}

// colorEnabled reports whether output to w should be colored:
// w must be a terminal and NO_COLOR must be unset.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
