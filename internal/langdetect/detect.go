// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package langdetect guesses the language of a code block
// that has no info string, using go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// candidates limits the classifier to languages
// commonly found in Markdown code blocks.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Guess returns a lower-case fence tag for code, such as "go" or "bash",
// or "" if the language cannot be determined with confidence.
// Its signature matches mdconv.RenderOptions.GuessLanguage.
func Guess(code string) string {
	content := []byte(code)
	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	if lang := byPattern(content); lang != "" {
		return lang
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}
	return ""
}

// byPattern recognizes a few unmistakable openings
// that the classifier handles poorly on short snippets.
func byPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	lower := bytes.ToLower(trimmed)
	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return "go"
	case bytes.HasPrefix(lower, []byte("<!doctype html")), bytes.HasPrefix(lower, []byte("<html")):
		return "html"
	case bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(content, []byte("\nRUN ")):
		return "dockerfile"
	case bytes.Contains(content, []byte("fn main()")):
		return "rust"
	}
	return ""
}

// normalize converts an enry language name to a fence tag.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	}
	return strings.ToLower(lang)
}
