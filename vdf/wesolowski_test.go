// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package vdf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/unicorn/vdf"
)

func TestSolveThenVerifySucceeds(t *testing.T) {
	w := vdf.NewWesolowski()
	seed := []byte("unicorn canonical seed")

	proof, err := w.Solve(seed, 32)
	require.NoError(t, err)
	require.True(t, w.Verify(seed, 32, proof))
}

func TestVerifyRejectsWrongSeed(t *testing.T) {
	w := vdf.NewWesolowski()
	proof, err := w.Solve([]byte("seed-a"), 16)
	require.NoError(t, err)
	require.False(t, w.Verify([]byte("seed-b"), 16, proof))
}

func TestVerifyRejectsWrongDifficulty(t *testing.T) {
	w := vdf.NewWesolowski()
	seed := []byte("fixed-seed")
	proof, err := w.Solve(seed, 16)
	require.NoError(t, err)
	require.False(t, w.Verify(seed, 17, proof))
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	w := vdf.NewWesolowski()
	seed := []byte("fixed-seed")
	proof, err := w.Solve(seed, 16)
	require.NoError(t, err)

	tampered := append([]byte(nil), proof...)
	tampered[0] ^= 0xFF
	require.False(t, w.Verify(seed, 16, tampered))
}

func TestSolveIsDeterministic(t *testing.T) {
	w := vdf.NewWesolowski()
	seed := []byte("determinism check")

	p1, err := w.Solve(seed, 20)
	require.NoError(t, err)
	p2, err := w.Solve(seed, 20)
	require.NoError(t, err)
	require.Equal(t, p1, p2)
}

func TestSolveRejectsZeroDifficulty(t *testing.T) {
	w := vdf.NewWesolowski()
	_, err := w.Solve([]byte("seed"), 0)
	require.Error(t, err)
}

func TestValueExtractsOutput(t *testing.T) {
	w := vdf.NewWesolowski()
	seed := []byte("value extraction")
	proof, err := w.Solve(seed, 8)
	require.NoError(t, err)

	v := vdf.Value(proof)
	require.NotNil(t, v)
	require.Len(t, v, len(proof)/2)
}
