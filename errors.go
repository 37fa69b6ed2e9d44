// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdconv

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat reports a reader or writer name that is not known.
	ErrUnrecognizedFormat = errors.New("unrecognized format")

	// ErrUnreadableInput reports input that could not be acquired.
	ErrUnreadableInput = errors.New("unreadable input")

	// ErrStructure reports input whose structure defeats every fallback,
	// such as a native document with an unknown node type.
	ErrStructure = errors.New("structural parse failure")
)

// A FormatError reports an unknown reader or writer name.
// It matches [ErrUnrecognizedFormat] with [errors.Is].
type FormatError struct {
	Dir  string // "reader" or "writer"
	Name string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized %s format %q", e.Dir, e.Name)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrUnrecognizedFormat
}

// A ParseError reports a structural failure at Path in the input,
// such as $.blocks[2].c[1] for native input.
// It matches [ErrStructure] with [errors.Is] and unwraps to its cause.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	return target == ErrStructure
}
