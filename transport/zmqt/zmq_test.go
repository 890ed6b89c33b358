// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package zmqt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/unicorn/transport"
	"github.com/luxfi/unicorn/transport/zmqt"
)

func TestBroadcastDeliversOverPubSub(t *testing.T) {
	peers := []zmqt.Endpoint{
		{ID: "a", Addr: "tcp://127.0.0.1:17556"},
		{ID: "b", Addr: "tcp://127.0.0.1:17557"},
	}

	a, err := zmqt.New("a", "tcp://127.0.0.1:17556", peers)
	require.NoError(t, err)
	defer a.Close()

	b, err := zmqt.New("b", "tcp://127.0.0.1:17557", peers)
	require.NoError(t, err)
	defer b.Close()

	inboxB, err := b.Register("b")
	require.NoError(t, err)

	// ZMQ's PUB/SUB has no connect handshake signal; give the SUB socket
	// time to finish connecting before the first publish (the usual
	// slow-joiner workaround).
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, a.Broadcast(transport.Envelope{
		From:    "a",
		Kind:    transport.KindCommitment,
		Payload: []byte("hello"),
	}))

	select {
	case env := <-inboxB:
		require.Equal(t, "a", env.From)
		require.Equal(t, transport.KindCommitment, env.Kind)
		require.Equal(t, []byte("hello"), env.Payload)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for pub/sub delivery")
	}
}

func TestRegisterWrongIDFails(t *testing.T) {
	peers := []zmqt.Endpoint{{ID: "solo", Addr: "tcp://127.0.0.1:17558"}}
	n, err := zmqt.New("solo", "tcp://127.0.0.1:17558", peers)
	require.NoError(t, err)
	defer n.Close()

	_, err = n.Register("other")
	require.Error(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	peers := []zmqt.Endpoint{{ID: "solo", Addr: "tcp://127.0.0.1:17559"}}
	n, err := zmqt.New("solo", "tcp://127.0.0.1:17559", peers)
	require.NoError(t, err)

	require.NoError(t, n.Close())
	require.NoError(t, n.Close())
}
