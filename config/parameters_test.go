// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/unicorn/config"
)

func TestThresholdIsCeilTwoThirds(t *testing.T) {
	cases := map[int]int{
		1: 1,
		2: 2,
		3: 2,
		4: 3,
		5: 4,
		6: 4,
		7: 5,
		9: 6,
	}
	for numPeers, want := range cases {
		p := config.Parameters{NumPeers: numPeers}
		require.Equal(t, want, p.Threshold(), "numPeers=%d", numPeers)
	}
}

func TestDefaultAndTestParametersAreValid(t *testing.T) {
	require.NoError(t, config.DefaultParameters.Validate())
	require.NoError(t, config.TestParameters.Validate())
}

func TestValidateRejectsRoundTimeoutBelowCommitWindow(t *testing.T) {
	p := config.DefaultParameters
	p.CommitRoundTimeout = p.CommitDelayMin
	require.ErrorIs(t, p.Validate(), config.ErrRoundTimeoutTooLow)
}

func TestValidateRejectsZeroPeers(t *testing.T) {
	p := config.DefaultParameters
	p.NumPeers = 0
	require.ErrorIs(t, p.Validate(), config.ErrInvalidNumPeers)
}
