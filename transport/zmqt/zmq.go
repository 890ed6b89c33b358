// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package zmqt implements transport.Broadcaster over real ZeroMQ sockets
// as a leaderless PUB/SUB fabric: every peer binds one PUB socket for its
// own broadcasts and SUB-connects to every other peer's PUB endpoint.
// There is no coordinator; the protocol's threshold rules make the
// unordered, unacknowledged fan-out sufficient.
package zmqt

import (
	"fmt"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/luxfi/unicorn/transport"
)

// Endpoint names one peer's bind address for SUB-connection.
type Endpoint struct {
	ID   string
	Addr string // e.g. "tcp://10.0.0.5:5556"
}

// Network is a transport.Broadcaster backed by one PUB socket (this
// peer's outbound channel) and one SUB socket fanned in from every other
// peer's PUB socket. Unlike inproc.Network, a zmqt.Network serves exactly
// one local peer; Register validates that id matches the peer this
// Network was constructed for.
type Network struct {
	id  string
	pub *zmq.Socket
	sub *zmq.Socket

	mu       sync.Mutex
	inbox    chan transport.Envelope
	done     chan struct{}
	loopDone chan struct{}
	closed   bool
}

// New binds a PUB socket at bindAddr for id and SUB-connects to every peer
// in peers whose ID != id. It starts a background goroutine pumping
// received frames into the returned Network's inbox.
func New(id, bindAddr string, peers []Endpoint) (*Network, error) {
	pub, err := zmq.NewSocket(zmq.PUB)
	if err != nil {
		return nil, fmt.Errorf("zmqt: new pub socket: %w", err)
	}
	if err := pub.Bind(bindAddr); err != nil {
		pub.Close()
		return nil, fmt.Errorf("zmqt: bind %s: %w", bindAddr, err)
	}

	sub, err := zmq.NewSocket(zmq.SUB)
	if err != nil {
		pub.Close()
		return nil, fmt.Errorf("zmqt: new sub socket: %w", err)
	}
	// A receive timeout lets recvLoop notice done between polls; without
	// it Close would have to tear the socket down under a blocked Recv.
	if err := sub.SetRcvtimeo(500 * time.Millisecond); err != nil {
		pub.Close()
		sub.Close()
		return nil, fmt.Errorf("zmqt: set rcvtimeo: %w", err)
	}
	if err := sub.SetSubscribe(""); err != nil {
		pub.Close()
		sub.Close()
		return nil, fmt.Errorf("zmqt: subscribe: %w", err)
	}
	for _, p := range peers {
		if p.ID == id {
			continue
		}
		if err := sub.Connect(p.Addr); err != nil {
			pub.Close()
			sub.Close()
			return nil, fmt.Errorf("zmqt: connect to %s (%s): %w", p.ID, p.Addr, err)
		}
	}

	n := &Network{
		id:       id,
		pub:      pub,
		sub:      sub,
		inbox:    make(chan transport.Envelope, 256),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	go n.recvLoop()
	return n, nil
}

func (n *Network) recvLoop() {
	defer close(n.loopDone)
	for {
		select {
		case <-n.done:
			return
		default:
		}

		parts, err := n.sub.RecvMessage(0)
		if err != nil {
			continue
		}
		if len(parts) != 3 {
			continue
		}

		kind := transport.KindCommitment
		if parts[0] == "1" {
			kind = transport.KindVdfResult
		}

		env := transport.Envelope{
			From:    parts[1],
			Kind:    kind,
			Payload: []byte(parts[2]),
		}

		select {
		case n.inbox <- env:
		case <-n.done:
			return
		}
	}
}

// Register implements transport.Broadcaster. zmqt serves a single local
// peer, so id must match the one this Network was constructed for.
func (n *Network) Register(id string) (<-chan transport.Envelope, error) {
	if id != n.id {
		return nil, fmt.Errorf("zmqt: network bound to peer %q, not %q", n.id, id)
	}
	return n.inbox, nil
}

// Broadcast publishes env on the PUB socket as a three-frame message:
// kind, from, payload.
func (n *Network) Broadcast(env transport.Envelope) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return fmt.Errorf("zmqt: network closed")
	}

	kind := "0"
	if env.Kind == transport.KindVdfResult {
		kind = "1"
	}
	_, err := n.pub.SendMessage(kind, env.From, string(env.Payload))
	if err != nil {
		return fmt.Errorf("zmqt: broadcast: %w", err)
	}
	return nil
}

// Close stops the receive loop, then tears down both sockets. The loop is
// joined before the sockets close so Recv never races socket teardown.
func (n *Network) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	close(n.done)
	<-n.loopDone
	n.pub.Close()
	n.sub.Close()
	close(n.inbox)
	return nil
}

var _ transport.Broadcaster = (*Network)(nil)
