// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

// Structured logging keys.
const (
	FieldError  = "error"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldConfig = "config"

	FieldReader = "from"
	FieldWriter = "to"
	FieldBytes  = "bytes"
	FieldBlocks = "blocks"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
