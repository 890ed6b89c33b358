// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package appsender adapts transport.Broadcaster onto a node's p2p gossip
// surface: outbound broadcasts become SendAppGossip calls on a
// p2p.Sender, and the host's gossip handler feeds received payloads back
// in through AppGossip. Use this to run a peer inside a process that
// already participates in a p2p network; inproc and zmqt remain for
// self-contained deployments.
package appsender

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
	"github.com/luxfi/p2p"

	"github.com/luxfi/unicorn/transport"
	"github.com/luxfi/unicorn/transport/wire"
)

// Sender is the slice of the node's sender surface this transport needs:
// fire-and-forget gossip fan-out. p2p.Sender carries the full
// request/response surface as well; an unordered bag of broadcasts is all
// the protocol asks of its network.
type Sender interface {
	SendAppGossip(ctx context.Context, nodeIDs set.Set[ids.NodeID], appGossipBytes []byte) error
}

var _ Sender = (p2p.Sender)(nil)

// Network is a transport.Broadcaster that gossips through a Sender. Like
// zmqt.Network it serves exactly one local peer; Register validates that
// id names the peer this Network was constructed for.
type Network struct {
	id     ids.NodeID
	sender Sender
	peers  set.Set[ids.NodeID]

	mu     sync.Mutex
	inbox  chan transport.Envelope
	closed bool
}

// New wraps sender for the local peer id. peers is the gossip target set
// of round participants; including the local peer is harmless, since the
// peer records its own messages directly and drops duplicates first-seen.
func New(id ids.NodeID, sender Sender, peers set.Set[ids.NodeID]) *Network {
	return &Network{
		id:     id,
		sender: sender,
		peers:  peers,
		inbox:  make(chan transport.Envelope, 256),
	}
}

// Register implements transport.Broadcaster.
func (n *Network) Register(id string) (<-chan transport.Envelope, error) {
	if id != n.id.String() {
		return nil, fmt.Errorf("appsender: network bound to peer %q, not %q", n.id, id)
	}
	return n.inbox, nil
}

// Broadcast implements transport.Broadcaster: the envelope is folded into
// one gossip payload and fanned out to the peer set.
func (n *Network) Broadcast(env transport.Envelope) error {
	b := wire.EncodeEnvelope(uint64(env.Kind), env.From, env.Payload)
	if err := n.sender.SendAppGossip(context.Background(), n.peers, b); err != nil {
		return fmt.Errorf("appsender: gossip: %w", err)
	}
	return nil
}

// AppGossip is the inbound hook: the host's gossip handler calls it with
// each payload received from nodeID. Payloads that don't parse as an
// envelope are dropped, as are any arriving once the inbox buffer is
// full; the transport contract promises neither reliability nor ordering.
func (n *Network) AppGossip(_ context.Context, _ ids.NodeID, msg []byte) error {
	kind, from, payload, err := wire.DecodeEnvelope(msg)
	if err != nil {
		return nil
	}
	env := transport.Envelope{
		From:    from,
		Kind:    transport.Kind(kind),
		Payload: payload,
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	select {
	case n.inbox <- env:
	default:
	}
	return nil
}

// Close closes the inbox. The underlying Sender belongs to the host and
// is left alone.
func (n *Network) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	close(n.inbox)
	return nil
}

var _ transport.Broadcaster = (*Network)(nil)
