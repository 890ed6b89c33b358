// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the per-process configuration constants that drive
// a UNICORN peer round: expected peer count, commit-delay/round-timeout
// windows, and VDF difficulty.
package config

import "time"

// Parameters bundles the per-process constants that drive one round.
type Parameters struct {
	// NumPeers is the total number of expected participants.
	NumPeers int
	// CommitDelayMin is the minimum randomized commit delay. Each peer
	// actually waits CommitDelayMin plus a random jitter in [0, CommitJitter).
	CommitDelayMin time.Duration
	// CommitJitter bounds the randomized portion added to CommitDelayMin.
	CommitJitter time.Duration
	// CommitRoundTimeout is armed from the start of the commit-delay
	// window; when it fires the peer decides whether to proceed, restart,
	// or abort.
	CommitRoundTimeout time.Duration
	// VdfGatheringTimeout is armed from the VDF broadcast; when it fires
	// the peer verifies collected VDF results.
	VdfGatheringTimeout time.Duration
	// VdfDifficulty is the VDF's repeated-squaring iteration count. It
	// MUST be tuned so the fastest honest peer's evaluation exceeds twice
	// CommitRoundTimeout, the security assumption that prevents a peer
	// from solving the VDF in time to bias its own commitment.
	VdfDifficulty uint64
	// MaxCommitRestarts bounds how many times a peer re-rolls the commit
	// phase after an insufficient-commitments round before aborting.
	MaxCommitRestarts int
}

// Threshold returns the minimum count of matching/valid inputs required to
// finalize a phase: ceil(NumPeers * 2/3).
func (p Parameters) Threshold() int {
	return (p.NumPeers*2 + 2) / 3
}

// DefaultParameters holds reasonable values for a six-peer round.
var DefaultParameters = Parameters{
	NumPeers:            6,
	CommitDelayMin:      1 * time.Second,
	CommitJitter:        4 * time.Second,
	CommitRoundTimeout:  6 * time.Second,
	VdfGatheringTimeout: 6 * time.Second,
	VdfDifficulty:       100_000,
	MaxCommitRestarts:   8,
}

// TestParameters scales DefaultParameters down to timings suitable for
// fast, deterministic unit tests.
var TestParameters = Parameters{
	NumPeers:            6,
	CommitDelayMin:      1 * time.Millisecond,
	CommitJitter:        2 * time.Millisecond,
	CommitRoundTimeout:  20 * time.Millisecond,
	VdfGatheringTimeout: 20 * time.Millisecond,
	VdfDifficulty:       64,
	MaxCommitRestarts:   3,
}
