// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package peer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/unicorn/clock"
	"github.com/luxfi/unicorn/config"
	unilog "github.com/luxfi/unicorn/log"
	"github.com/luxfi/unicorn/metrics"
	"github.com/luxfi/unicorn/peer"
	"github.com/luxfi/unicorn/transport"
	"github.com/luxfi/unicorn/transport/transportmock"
	"github.com/luxfi/unicorn/vdf"
)

// TestRoundFailsGracefullyWhenBroadcastAlwaysErrors drives a Peer against
// a Broadcaster that never delivers anything: Register succeeds with an
// inbox no one ever writes to, and every Broadcast call fails. The peer
// still records its own commitment locally, but with no other participants
// it never collects threshold commitments and gives up after
// MaxCommitRestarts restarts, so the round should fail cleanly rather than
// hang or panic.
func TestRoundFailsGracefullyWhenBroadcastAlwaysErrors(t *testing.T) {
	ctrl := gomock.NewController(t)

	inbox := make(chan transport.Envelope)
	net := transportmock.NewMockBroadcaster(ctrl)
	net.EXPECT().Register(gomock.Any()).Return((<-chan transport.Envelope)(inbox), nil).AnyTimes()
	net.EXPECT().Broadcast(gomock.Any()).Return(errors.New("network unreachable")).AnyTimes()

	params := config.TestParameters
	m, err := metrics.NewPeer(nil)
	require.NoError(t, err)

	p, err := peer.New(testPeerID(t, 0), params, net, vdf.NewWesolowski(), clock.New(), unilog.NewNoOpLogger(), m)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := p.Run(ctx)
	require.NoError(t, err)

	select {
	case r := <-res:
		require.False(t, r.Success)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for round result")
	}
}
