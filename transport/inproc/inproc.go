// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package inproc implements transport.Broadcaster in-process with
// channels, shuffling delivery order on every broadcast to simulate
// network propagation delay and non-determinism; the protocol must be
// robust against differences in message arrival time. Used by the demo
// CLI's `run` subcommand and by package tests that don't need a real
// socket.
package inproc

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/luxfi/unicorn/transport"
)

// Network is an in-process transport.Broadcaster. The zero value is not
// usable; construct with New.
type Network struct {
	mu      sync.Mutex
	inboxes map[string]chan transport.Envelope
	closed  bool
}

// New returns an empty in-process network with room for a burst of
// buffered messages per peer so a slow consumer doesn't stall a
// broadcaster.
func New() *Network {
	return &Network{
		inboxes: make(map[string]chan transport.Envelope),
	}
}

// Register implements transport.Broadcaster.
func (n *Network) Register(id string) (<-chan transport.Envelope, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil, fmt.Errorf("inproc: network closed")
	}
	if _, exists := n.inboxes[id]; exists {
		return nil, fmt.Errorf("inproc: peer %q already registered", id)
	}

	inbox := make(chan transport.Envelope, 256)
	n.inboxes[id] = inbox
	return inbox, nil
}

// Broadcast implements transport.Broadcaster: it delivers env to every
// registered peer (including the sender, if registered) in a shuffled
// order, matching the broadcaster's arbitrary-delivery-order contract.
// A peer whose inbox buffer is full misses the message; the transport
// contract promises neither reliability nor ordering, and the protocol's
// threshold rules absorb the loss.
func (n *Network) Broadcast(env transport.Envelope) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return fmt.Errorf("inproc: network closed")
	}
	recipients := make([]chan transport.Envelope, 0, len(n.inboxes))
	for _, inbox := range n.inboxes {
		recipients = append(recipients, inbox)
	}

	rand.Shuffle(len(recipients), func(i, j int) {
		recipients[i], recipients[j] = recipients[j], recipients[i]
	})

	for _, inbox := range recipients {
		select {
		case inbox <- env:
		default:
		}
	}
	return nil
}

// Close closes every registered peer's inbox. Broadcast and Register fail
// after Close.
func (n *Network) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	for _, inbox := range n.inboxes {
		close(inbox)
	}
	return nil
}

var _ transport.Broadcaster = (*Network)(nil)
