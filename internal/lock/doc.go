// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package lock implements the vault lock state machine.
//
// The vault is in exactly one of three states: no PIN set, locked or
// unlocked. The PIN credential and the auto-lock timeout are persisted in the
// "lock" bucket of a [store.KeyValueStore]; the current state itself lives in
// memory and starts as Locked whenever a credential exists.
package lock
