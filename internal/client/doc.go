// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// It wires storage, the key vault, the lock state machine, the backup codec
// and the client services into a single [App], prompts for the PIN when a
// command needs the vault unlocked, and runs the interactive shell together
// with the background auto-lock job.
package client
