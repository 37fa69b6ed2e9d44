// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

// Exit codes for mdconv.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitCode returns the process exit code for the result of running a command.
// Every failure, including unknown formats, unreadable input,
// and structural parse errors, exits with [ExitFailure].
func ExitCode(err error) int {
	if err != nil {
		return ExitFailure
	}
	return ExitSuccess
}
