// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package vdf defines the Verifiable Delay Function collaborator contract
// (Solve/Verify over opaque bytes) and supplies one reference
// implementation. The VDF primitive is a pluggable collaborator, not part
// of the protocol core; nothing in this package is imported by package
// beacon.
package vdf

// VDF evaluates and verifies a delay function: Solve takes seconds to
// minutes of sequential CPU work; Verify is cheap.
type VDF interface {
	// Solve evaluates the VDF over seed for difficulty sequential steps,
	// returning an opaque proof.
	Solve(seed []byte, difficulty uint64) ([]byte, error)
	// Verify checks that proof is a valid VDF output for seed and
	// difficulty.
	Verify(seed []byte, difficulty uint64, proof []byte) bool
}
