// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package beacon implements the deterministic per-participant UNICORN
// protocol state machine: it aggregates seed commitments into a canonical
// seed, then aggregates VDF results into a final randomness value under a
// threshold policy. It holds no timers, no threads, and performs no I/O —
// it is a pure data structure touched only by its owning peer.
package beacon

import (
	"bytes"
	"sort"
)

// Phase is one of the three states a Beacon passes through.
type Phase int

const (
	// CollectingSeedCommitments is the initial phase: the beacon accepts
	// SeedCommitment values until threshold is reached and FinalizeSeed is
	// called.
	CollectingSeedCommitments Phase = iota
	// SeedReady means a canonical seed has been derived; the beacon now
	// accepts VdfResult values.
	SeedReady
	// RandomnessReady means a final randomness value has been derived.
	RandomnessReady
)

func (p Phase) String() string {
	switch p {
	case CollectingSeedCommitments:
		return "CollectingSeedCommitments"
	case SeedReady:
		return "SeedReady"
	case RandomnessReady:
		return "RandomnessReady"
	default:
		return "Unknown"
	}
}

// Ordered is the constraint on the peer-identifier type I: it must be
// usable as a map key and admit a total order, so commitments can be
// sorted deterministically regardless of arrival order.
type Ordered[T any] interface {
	comparable
	// Compare returns <0, 0, or >0 as the receiver is less than, equal to,
	// or greater than other.
	Compare(other T) int
}

// SeedCommitment is a peer's contribution to the canonical seed.
type SeedCommitment[I Ordered[I]] interface {
	ID() I
	Value() []byte
}

// VdfResult is a peer's claimed VDF evaluation over the canonical seed.
type VdfResult[I Ordered[I]] interface {
	ID() I
	Seed() []byte
	Value() []byte
}

// Hash is the collaborator hash function H: bytes -> bytes of fixed
// output width. The reference instantiation uses SHA-256.
type Hash func([]byte) []byte

// Beacon is the Layer A state machine. It is exclusively owned by the peer
// that constructs it; received commitments and VDF results transfer
// ownership into its internal maps.
type Beacon[I Ordered[I], C SeedCommitment[I], R VdfResult[I]] struct {
	phase       Phase
	commitments map[I]C
	vdfResults  map[I]R
	seed        []byte
	randomness  []byte
	threshold   int
	hash        Hash
}

// New constructs a Beacon in CollectingSeedCommitments with the given
// threshold and hash function. threshold must be >= 1.
func New[I Ordered[I], C SeedCommitment[I], R VdfResult[I]](threshold int, hash Hash) *Beacon[I, C, R] {
	if threshold < 1 {
		panic("beacon: threshold must be >= 1")
	}
	return &Beacon[I, C, R]{
		phase:       CollectingSeedCommitments,
		commitments: make(map[I]C),
		vdfResults:  make(map[I]R),
		threshold:   threshold,
		hash:        hash,
	}
}

// Phase returns the current phase.
func (b *Beacon[I, C, R]) Phase() Phase { return b.phase }

// Seed returns the canonical seed and whether it has been derived.
func (b *Beacon[I, C, R]) Seed() ([]byte, bool) {
	if b.seed == nil {
		return nil, false
	}
	return b.seed, true
}

// Randomness returns the final randomness value and whether it has been
// derived.
func (b *Beacon[I, C, R]) Randomness() ([]byte, bool) {
	if b.randomness == nil {
		return nil, false
	}
	return b.randomness, true
}

// Threshold returns the fixed threshold this beacon was constructed with.
func (b *Beacon[I, C, R]) Threshold() int { return b.threshold }

// NumCommitments returns the number of distinct seed commitments collected
// so far.
func (b *Beacon[I, C, R]) NumCommitments() int { return len(b.commitments) }

// NumVdfResults returns the number of distinct VDF results collected so
// far.
func (b *Beacon[I, C, R]) NumVdfResults() int { return len(b.vdfResults) }

// AddSeedCommitment inserts c under key c.ID(). A second commitment from an
// already-seen ID is a no-op: first-seen wins, so a peer cannot change its
// contribution after seeing others'.
func (b *Beacon[I, C, R]) AddSeedCommitment(c C) error {
	if b.phase != CollectingSeedCommitments {
		return ErrNotCollectingSeedCommitments
	}
	id := c.ID()
	if _, seen := b.commitments[id]; seen {
		return nil
	}
	b.commitments[id] = c
	return nil
}

// FinalizeSeed computes the canonical seed from the collected commitments
// and transitions to SeedReady. It fails if fewer than threshold
// commitments have been collected; on failure, state is unchanged.
func (b *Beacon[I, C, R]) FinalizeSeed() error {
	if b.phase != CollectingSeedCommitments {
		return ErrNotCollectingSeedCommitments
	}
	if len(b.commitments) < b.threshold {
		return ErrNotEnoughSeedCommitments
	}

	ordered := make([]C, 0, len(b.commitments))
	for _, c := range b.commitments {
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID().Compare(ordered[j].ID()) < 0
	})

	var buf bytes.Buffer
	for _, c := range ordered {
		buf.Write(c.Value())
	}

	b.seed = b.hash(buf.Bytes())
	b.phase = SeedReady
	return nil
}

// AddVdfResult inserts r under key r.ID(). Duplicate IDs are a no-op,
// first-seen wins, matching AddSeedCommitment's policy.
func (b *Beacon[I, C, R]) AddVdfResult(r R) error {
	if b.phase != SeedReady {
		return ErrNotCollectingVdfResults
	}
	id := r.ID()
	if _, seen := b.vdfResults[id]; seen {
		return nil
	}
	b.vdfResults[id] = r
	return nil
}

// FinalizeVdfResult selects the modal VDF output value among collected
// results, requires its frequency to reach threshold, hashes it into the
// final randomness, and transitions to RandomnessReady. Ties among
// maximum-frequency values are broken by smallest byte-lexicographic value.
// On failure, state is unchanged.
func (b *Beacon[I, C, R]) FinalizeVdfResult() error {
	if b.phase != SeedReady {
		return ErrNotCollectingVdfResults
	}

	counts := make(map[string]int, len(b.vdfResults))
	for _, r := range b.vdfResults {
		counts[string(r.Value())]++
	}

	mode, freq := modeWithTieBreak(counts)
	if freq < b.threshold {
		return ErrNotEnoughVdfResults
	}

	b.randomness = b.hash([]byte(mode))
	b.phase = RandomnessReady
	return nil
}

// Reset consumes the beacon's collections and outputs, returning a fresh
// Beacon with the same threshold and hash. It is the only way to move
// "backwards" in the lifecycle.
func (b *Beacon[I, C, R]) Reset() *Beacon[I, C, R] {
	return New[I, C, R](b.threshold, b.hash)
}

// modeWithTieBreak returns the string with the highest count, breaking
// ties by lexicographically smallest value.
func modeWithTieBreak(counts map[string]int) (mode string, freq int) {
	candidates := make([]string, 0, len(counts))
	for v := range counts {
		candidates = append(candidates, v)
	}
	sort.Strings(candidates)

	for _, v := range candidates {
		if counts[v] > freq {
			mode = v
			freq = counts[v]
		}
	}
	return mode, freq
}
