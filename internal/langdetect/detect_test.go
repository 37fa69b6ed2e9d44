// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var guessTests = []struct {
	code string
	want string
}{
	{"", ""},
	{"   \n\t\n", ""},
	{"#!/bin/bash\necho hi\n", "bash"},
	{"#!/usr/bin/env python3\nprint('x')\n", "python"},
	{"package main\n\nfunc main() {}\n", "go"},
	{"<!DOCTYPE html>\n<html></html>\n", "html"},
	{"FROM golang:1.22\nRUN go build ./...\n", "dockerfile"},
	{"fn main() {\n    println!(\"hi\");\n}\n", "rust"},
}

func TestGuess(t *testing.T) {
	for _, tt := range guessTests {
		assert.Equal(t, tt.want, Guess(tt.code), "Guess(%q)", tt.code)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "bash", normalize("Shell"))
	assert.Equal(t, "cpp", normalize("C++"))
	assert.Equal(t, "javascript", normalize("JavaScript"))
}
