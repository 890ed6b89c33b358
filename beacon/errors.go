// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package beacon

import "errors"

// Layer A's error taxonomy: four discriminated kinds, one per lifecycle
// guard. Beacon never panics on a misordered call; every guard returns one
// of these.
var (
	// ErrNotCollectingSeedCommitments is returned by AddSeedCommitment or
	// FinalizeSeed when phase != CollectingSeedCommitments.
	ErrNotCollectingSeedCommitments = errors.New("beacon: not collecting seed commitments")
	// ErrNotEnoughSeedCommitments is returned by FinalizeSeed when fewer
	// than threshold commitments have been collected.
	ErrNotEnoughSeedCommitments = errors.New("beacon: not enough seed commitments")
	// ErrNotCollectingVdfResults is returned by AddVdfResult or
	// FinalizeVdfResult when phase != SeedReady.
	ErrNotCollectingVdfResults = errors.New("beacon: not collecting vdf results")
	// ErrNotEnoughVdfResults is returned by FinalizeVdfResult when no value
	// reaches threshold frequency.
	ErrNotEnoughVdfResults = errors.New("beacon: not enough vdf results")
)
