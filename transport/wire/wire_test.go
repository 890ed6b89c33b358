// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/unicorn/transport/wire"
)

func TestCommitmentRoundTrip(t *testing.T) {
	data := wire.EncodeCommitment("peer-1", []byte{1, 2, 3, 4})

	from, value, err := wire.DecodeCommitment(data)
	require.NoError(t, err)
	require.Equal(t, "peer-1", from)
	require.Equal(t, []byte{1, 2, 3, 4}, value)
}

func TestVdfResultRoundTrip(t *testing.T) {
	data := wire.EncodeVdfResult("peer-2", []byte("seed-bytes"), []byte("vdf-output"))

	from, seed, value, err := wire.DecodeVdfResult(data)
	require.NoError(t, err)
	require.Equal(t, "peer-2", from)
	require.Equal(t, []byte("seed-bytes"), seed)
	require.Equal(t, []byte("vdf-output"), value)
}

func TestDecodeCommitmentRejectsMissingFrom(t *testing.T) {
	data := wire.EncodeVdfResult("", []byte("seed"), []byte("value"))
	_, _, err := wire.DecodeCommitment(data)
	require.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := wire.DecodeCommitment([]byte{0xFF, 0xFF, 0xFF})
	require.Error(t, err)
}
