// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging wraps charmbracelet/log for the mdconv commands.
// Loggers write to standard error so that converted output
// on standard output is never mixed with diagnostics.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	defaultMu     sync.Mutex
	defaultLogger *log.Logger
)

// New returns a logger writing to standard error at the named level.
// Valid levels are "debug", "info", "warn", and "error";
// anything else means "info".
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter is like [New] but writes to w.
func NewWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "mdconv",
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	}
	return log.InfoLevel
}

// Default returns the package-level logger, creating it on first use.
func Default() *log.Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// SetLevel sets the level of the package-level logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
