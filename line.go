// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

// A line is a single input line, partially consumed by block prefixes.
// Tabs are expanded lazily: a tab that is only partly consumed
// leaves its remaining columns in spaces.
type line struct {
	spaces   int    // virtual spaces left over from a partially consumed tab
	i        int    // offset of the unconsumed text
	tab      int    // offset where tab stops are measured from
	text     string // line text, without the newline
	nl       byte   // '\n', '\r', '\r'+'\n', or 0 at EOF
	nonblank int    // offset of first non-space, non-tab byte at or after i; len(text) if none
}

func makeLine(text string, nl byte) line {
	s := line{text: text, nl: nl}
	s.setNonblank()
	return s
}

func (s *line) setNonblank() {
	i := s.i
	for i < len(s.text) && (s.text[i] == ' ' || s.text[i] == '\t') {
		i++
	}
	s.nonblank = i
}

// peek returns the next byte of the line, or 0 at the end.
func (s *line) peek() byte {
	if s.spaces > 0 {
		return ' '
	}
	if s.i >= len(s.text) {
		return 0
	}
	return s.text[s.i]
}

func (s *line) skipSpace() {
	s.spaces = 0
	if s.nonblank < s.i {
		panic("nonblank")
	}
	s.i = s.nonblank
}

// trimSpace consumes between min and max columns of indentation,
// reporting whether at least min were available.
// If eolOK is set, the end of the line counts as indentation.
func (s *line) trimSpace(min, max int, eolOK bool) bool {
	t := *s
	for n := 0; n < max; n++ {
		if t.spaces > 0 {
			t.spaces--
			continue
		}
		if t.i >= len(t.text) && eolOK {
			continue
		}
		if t.i < len(t.text) {
			switch t.text[t.i] {
			case '\t':
				t.spaces = 4 - (t.i-t.tab)&3 - 1
				t.i++
				t.tab = t.i
				continue
			case ' ':
				t.i++
				continue
			}
		}
		if n >= min {
			break
		}
		return false
	}
	if t.nonblank < t.i {
		t.setNonblank()
	}
	*s = t
	return true
}

// trim consumes c if it is the next byte.
func (s *line) trim(c byte) bool {
	if s.spaces > 0 {
		if c == ' ' {
			s.spaces--
			return true
		}
		return false
	}
	if s.i < len(s.text) && s.text[s.i] == c {
		s.i++
		if s.nonblank < s.i {
			s.setNonblank()
		}
		return true
	}
	return false
}

func (s *line) skip(n int) {
	s.i += n
	if s.nonblank < s.i {
		s.setNonblank()
	}
}

// string returns the unconsumed text,
// including leftover columns of a split tab.
func (s *line) string() string {
	switch s.spaces {
	case 0:
		return s.text[s.i:]
	case 1:
		return " " + s.text[s.i:]
	case 2:
		return "  " + s.text[s.i:]
	case 3:
		return "   " + s.text[s.i:]
	}
	panic("bad spaces")
}

func (s *line) isBlank() bool {
	return s.nonblank == len(s.text)
}

func (s *line) eof() bool {
	return s.i >= len(s.text)
}

func (s *line) trimSpaceString() string {
	return s.text[s.nonblank:]
}

func (s *line) trimString() string {
	if s.nonblank < s.i {
		panic("bad blank")
	}
	return trimSpaceTab(s.text[s.nonblank:])
}

func trimLeftSpaceTab(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

func trimRightSpaceTab(s string) string {
	j := len(s)
	for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[:j]
}

func trimSpaceTab(s string) string {
	return trimRightSpaceTab(trimLeftSpaceTab(s))
}

func trimSpaceTabNewline(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	s = s[i:]
	j := len(s)
	for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n') {
		j--
	}
	return s[:j]
}
