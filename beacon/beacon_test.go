// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package beacon_test

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/unicorn/beacon"
)

type intID int

func (i intID) Compare(other intID) int {
	switch {
	case i < other:
		return -1
	case i > other:
		return 1
	default:
		return 0
	}
}

type commitment struct {
	id    intID
	value []byte
}

func (c commitment) ID() intID     { return c.id }
func (c commitment) Value() []byte { return c.value }

type vdfResult struct {
	id    intID
	seed  []byte
	value []byte
}

func (r vdfResult) ID() intID     { return r.id }
func (r vdfResult) Seed() []byte  { return r.seed }
func (r vdfResult) Value() []byte { return r.value }

func sha256Hash(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

func newBeacon(threshold int) *beacon.Beacon[intID, commitment, vdfResult] {
	return beacon.New[intID, commitment, vdfResult](threshold, sha256Hash)
}

func TestGoldenSeedThreeCommitments(t *testing.T) {
	b := newBeacon(3)
	for i := 0; i < 3; i++ {
		c := commitment{id: intID(i), value: []byte{byte(i), byte(i), byte(i)}}
		require.NoError(t, b.AddSeedCommitment(c))
	}
	require.NoError(t, b.FinalizeSeed())
	require.Equal(t, beacon.SeedReady, b.Phase())

	seed, ok := b.Seed()
	require.True(t, ok)
	require.Equal(t, "4333ddceb169e2f1741ae48779c9b647154fd69affc8b61f050de97a87945ba3", hex.EncodeToString(seed))
}

func TestGoldenSeedFiveCommitments(t *testing.T) {
	b := newBeacon(5)
	for i := 0; i < 5; i++ {
		c := commitment{id: intID(i), value: []byte{byte(i), byte(i), byte(i)}}
		require.NoError(t, b.AddSeedCommitment(c))
	}
	require.NoError(t, b.FinalizeSeed())

	seed, ok := b.Seed()
	require.True(t, ok)
	require.Equal(t, "8d84c7b55695b4ac9ef8a92224a64f449107a4027dd763587003fc65a664f4ce", hex.EncodeToString(seed))
}

func TestGoldenRandomnessFromAgreeingVdfResults(t *testing.T) {
	b := newBeacon(3)
	for i := 0; i < 3; i++ {
		c := commitment{id: intID(i), value: []byte{byte(i), byte(i), byte(i)}}
		require.NoError(t, b.AddSeedCommitment(c))
	}
	require.NoError(t, b.FinalizeSeed())
	seed, _ := b.Seed()

	v := []byte("agreed-vdf-output")
	for i := 0; i < 3; i++ {
		r := vdfResult{id: intID(i), seed: seed, value: v}
		require.NoError(t, b.AddVdfResult(r))
	}
	require.NoError(t, b.FinalizeVdfResult())
	require.Equal(t, beacon.RandomnessReady, b.Phase())

	randomness, ok := b.Randomness()
	require.True(t, ok)
	require.Equal(t, sha256Hash(v), randomness)
}

func TestFinalizeSeedFailsBelowThreshold(t *testing.T) {
	b := newBeacon(3)
	require.NoError(t, b.AddSeedCommitment(commitment{id: 0, value: []byte{1, 2, 3}}))

	err := b.FinalizeSeed()
	require.ErrorIs(t, err, beacon.ErrNotEnoughSeedCommitments)
	require.Equal(t, beacon.CollectingSeedCommitments, b.Phase())
	_, ok := b.Seed()
	require.False(t, ok)
}

func TestAddSeedCommitmentAfterFinalizeFails(t *testing.T) {
	b := newBeacon(1)
	require.NoError(t, b.AddSeedCommitment(commitment{id: 0, value: []byte{1}}))
	require.NoError(t, b.FinalizeSeed())

	err := b.AddSeedCommitment(commitment{id: 1, value: []byte{2}})
	require.ErrorIs(t, err, beacon.ErrNotCollectingSeedCommitments)
}

func TestFinalizeVdfResultFailsBelowThresholdFrequency(t *testing.T) {
	b := newBeacon(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, b.AddSeedCommitment(commitment{id: intID(i), value: []byte{byte(i)}}))
	}
	require.NoError(t, b.FinalizeSeed())
	seed, _ := b.Seed()

	// Only two results agree; the modal frequency (2) is below threshold (3).
	require.NoError(t, b.AddVdfResult(vdfResult{id: 0, seed: seed, value: []byte("a")}))
	require.NoError(t, b.AddVdfResult(vdfResult{id: 1, seed: seed, value: []byte("a")}))
	require.NoError(t, b.AddVdfResult(vdfResult{id: 2, seed: seed, value: []byte("b")}))

	err := b.FinalizeVdfResult()
	require.ErrorIs(t, err, beacon.ErrNotEnoughVdfResults)
	require.Equal(t, beacon.SeedReady, b.Phase())
	_, ok := b.Randomness()
	require.False(t, ok)
}

func TestModeTieBreakIsLexicographicallySmallest(t *testing.T) {
	b := newBeacon(2)
	for i := 0; i < 2; i++ {
		require.NoError(t, b.AddSeedCommitment(commitment{id: intID(i), value: []byte{byte(i)}}))
	}
	require.NoError(t, b.FinalizeSeed())
	seed, _ := b.Seed()

	// "aaa" and "bbb" both appear twice: tie-break picks "aaa".
	require.NoError(t, b.AddVdfResult(vdfResult{id: 0, seed: seed, value: []byte("bbb")}))
	require.NoError(t, b.AddVdfResult(vdfResult{id: 1, seed: seed, value: []byte("aaa")}))
	require.NoError(t, b.AddVdfResult(vdfResult{id: 2, seed: seed, value: []byte("bbb")}))
	require.NoError(t, b.AddVdfResult(vdfResult{id: 3, seed: seed, value: []byte("aaa")}))

	require.NoError(t, b.FinalizeVdfResult())
	randomness, _ := b.Randomness()
	require.Equal(t, sha256Hash([]byte("aaa")), randomness)
}

func TestDuplicateCommitmentIsFirstSeenWins(t *testing.T) {
	b := newBeacon(1)
	require.NoError(t, b.AddSeedCommitment(commitment{id: 0, value: []byte{1, 2, 3}}))
	// Same ID, different value: should be ignored.
	require.NoError(t, b.AddSeedCommitment(commitment{id: 0, value: []byte{9, 9, 9}}))
	require.Equal(t, 1, b.NumCommitments())

	require.NoError(t, b.FinalizeSeed())
	seed, _ := b.Seed()
	require.Equal(t, sha256Hash([]byte{1, 2, 3}), seed)
}

func TestSeedDeterministicUnderInsertionOrder(t *testing.T) {
	commitments := make([]commitment, 10)
	for i := range commitments {
		commitments[i] = commitment{id: intID(i), value: []byte{byte(i), byte(i * 2)}}
	}

	first := newBeacon(len(commitments))
	for _, c := range commitments {
		require.NoError(t, first.AddSeedCommitment(c))
	}
	require.NoError(t, first.FinalizeSeed())
	wantSeed, _ := first.Seed()

	shuffled := append([]commitment(nil), commitments...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	second := newBeacon(len(shuffled))
	for _, c := range shuffled {
		require.NoError(t, second.AddSeedCommitment(c))
	}
	require.NoError(t, second.FinalizeSeed())
	gotSeed, _ := second.Seed()

	require.Equal(t, wantSeed, gotSeed)
}

func TestRandomnessDeterministicUnderInsertionOrder(t *testing.T) {
	results := make([]vdfResult, 9)
	for i := range results {
		// Three distinct values, each appearing three times.
		results[i] = vdfResult{id: intID(i), value: []byte{byte(i % 3)}}
	}

	finalize := func(rs []vdfResult) []byte {
		b := newBeacon(3)
		for i := 0; i < 3; i++ {
			require.NoError(t, b.AddSeedCommitment(commitment{id: intID(i), value: []byte{byte(i)}}))
		}
		require.NoError(t, b.FinalizeSeed())
		for _, r := range rs {
			require.NoError(t, b.AddVdfResult(r))
		}
		require.NoError(t, b.FinalizeVdfResult())
		randomness, _ := b.Randomness()
		return randomness
	}

	want := finalize(results)

	shuffled := append([]vdfResult(nil), results...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	require.Equal(t, want, finalize(shuffled))
}

func TestResetPreservesThresholdAndClearsState(t *testing.T) {
	b := newBeacon(2)
	require.NoError(t, b.AddSeedCommitment(commitment{id: 0, value: []byte{1}}))
	require.NoError(t, b.AddSeedCommitment(commitment{id: 1, value: []byte{2}}))
	require.NoError(t, b.FinalizeSeed())

	fresh := b.Reset()
	require.Equal(t, beacon.CollectingSeedCommitments, fresh.Phase())
	require.Equal(t, 2, fresh.Threshold())
	require.Equal(t, 0, fresh.NumCommitments())
	_, ok := fresh.Seed()
	require.False(t, ok)
}
