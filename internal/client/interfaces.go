// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Prompter reads input from the user.
type Prompter interface {
	// ReadSecret prints prompt and reads one line without echo when the
	// input is a terminal.
	ReadSecret(prompt string) (string, error)

	// ReadLine prints prompt and reads one line. It returns io.EOF once the
	// input is exhausted.
	ReadLine(prompt string) (string, error)
}
