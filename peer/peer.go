// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package peer implements the message-driven Layer B actor that drives a
// beacon.Beacon through one commit-then-VDF round over a transport.
//
// Peer keeps a single-threaded-mailbox guarantee with one goroutine
// (loop) selecting over the network inbox and a task queue. Every clock
// callback and the VDF-solving goroutine communicate with the loop
// exclusively by enqueuing a closure onto that task queue, so beacon
// state is only ever touched from the single loop goroutine.
package peer

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/luxfi/log"

	"github.com/luxfi/unicorn/beacon"
	"github.com/luxfi/unicorn/clock"
	"github.com/luxfi/unicorn/config"
	"github.com/luxfi/unicorn/metrics"
	"github.com/luxfi/unicorn/transport"
	"github.com/luxfi/unicorn/transport/wire"
	"github.com/luxfi/unicorn/vdf"
)

// Result is what a round produces: either agreement on a randomness value
// or a failure to reach threshold agreement.
type Result struct {
	Success    bool
	Randomness []byte
}

// Peer drives one beacon.Beacon through a full round: randomized commit
// delay, commit-round timeout, VDF evaluation, VDF-gathering timeout, and
// finalization.
type Peer struct {
	id     PeerID
	params config.Parameters
	net    transport.Broadcaster
	vdf    vdf.VDF
	clk    *clock.Clock
	logger log.Logger
	m      *metrics.Peer

	state  State
	beacon *beacon.Beacon[PeerID, Commitment, VdfResultMsg]

	commitRestarts int

	// ownCommitment is generated once per lifecycle and rebroadcast
	// unchanged across commit restarts: under first-seen semantics a
	// peer cannot change its contribution after others have stored it,
	// so re-rolling the value on restart would split the peer set over
	// which value counts as this peer's commitment.
	ownCommitment []byte

	// vdfReceived holds every VDF result seen so far, keyed first-seen by
	// sender. Results are only fed into the beacon at the gathering
	// timeout, after the seed filter and proof verification.
	vdfReceived map[PeerID]VdfResultMsg

	inbox  <-chan transport.Envelope
	tasks  chan func()
	result chan Result
	stop   chan struct{}
}

// New constructs a Peer. params is validated with Validate before use.
func New(id PeerID, params config.Parameters, net transport.Broadcaster, v vdf.VDF, clk *clock.Clock, logger log.Logger, m *metrics.Peer) (*Peer, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("peer: invalid parameters: %w", err)
	}
	return &Peer{
		id:          id,
		params:      params,
		net:         net,
		vdf:         v,
		clk:         clk,
		logger:      logger,
		m:           m,
		state:       StateIdle,
		beacon:      beacon.New[PeerID, Commitment, VdfResultMsg](params.Threshold(), sha256Hash),
		vdfReceived: make(map[PeerID]VdfResultMsg),
		tasks:       make(chan func(), 64),
		result:      make(chan Result, 1),
		stop:        make(chan struct{}),
	}, nil
}

func sha256Hash(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}

// Run registers the peer on net, starts the round, and returns a channel
// that receives exactly one Result when the round concludes. ctx
// cancellation stops the peer without a result.
func (p *Peer) Run(ctx context.Context) (<-chan Result, error) {
	inbox, err := p.net.Register(p.id.String())
	if err != nil {
		return nil, fmt.Errorf("peer: register: %w", err)
	}
	p.inbox = inbox
	p.state = StateConnected

	go p.loop(ctx)
	p.startCommitPhase()
	return p.result, nil
}

func (p *Peer) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case env, ok := <-p.inbox:
			if !ok {
				return
			}
			p.handleEnvelope(env)
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			t()
		}
	}
}

func (p *Peer) post(f func()) {
	select {
	case p.tasks <- f:
	case <-p.stop:
	}
}

func (p *Peer) handleEnvelope(env transport.Envelope) {
	switch env.Kind {
	case transport.KindCommitment:
		from, value, err := wire.DecodeCommitment(env.Payload)
		if err != nil {
			p.logger.Warn("dropping malformed commitment", zap.Error(err))
			return
		}
		id, err := ParsePeerID(from)
		if err != nil {
			p.logger.Warn("dropping commitment with unparseable sender", zap.String("from", from))
			return
		}
		before := p.beacon.NumCommitments()
		if err := p.beacon.AddSeedCommitment(Commitment{id: id, value: value}); err != nil {
			p.logger.Verbo("commitment not accepted", zap.Stringer("from", id.NodeID), zap.Error(err))
			return
		}
		if p.beacon.NumCommitments() > before {
			p.m.CommitmentsReceived.Inc()
		}

	case transport.KindVdfResult:
		from, seed, value, err := wire.DecodeVdfResult(env.Payload)
		if err != nil {
			p.logger.Warn("dropping malformed vdf result", zap.Error(err))
			return
		}
		id, err := ParsePeerID(from)
		if err != nil {
			p.logger.Warn("dropping vdf result with unparseable sender", zap.String("from", from))
			return
		}
		p.recordVdfResult(VdfResultMsg{id: id, seed: seed, value: value})
	}
}

// recordVdfResult stores r first-seen by sender. Results arriving before
// this peer has finalized its own seed are kept too; whether they count
// is decided at the gathering timeout.
func (p *Peer) recordVdfResult(r VdfResultMsg) {
	if _, seen := p.vdfReceived[r.id]; seen {
		return
	}
	p.vdfReceived[r.id] = r
	p.m.VdfResultsReceived.Inc()
}

func (p *Peer) startCommitPhase() {
	delay := p.params.CommitDelayMin
	if p.params.CommitJitter > 0 {
		jitter, err := rand.Int(rand.Reader, big.NewInt(int64(p.params.CommitJitter)))
		if err == nil {
			delay += time.Duration(jitter.Int64())
		}
	}

	p.clk.AfterFunc(delay, func() { p.post(p.sendCommitment) })
	p.clk.AfterFunc(p.params.CommitRoundTimeout, func() { p.post(p.commitRoundFinished) })
}

func (p *Peer) sendCommitment() {
	if p.ownCommitment == nil {
		value := make([]byte, 32)
		if _, err := rand.Read(value); err != nil {
			p.logger.Error("failed to generate commitment value", zap.Error(err))
			p.finish(Result{Success: false})
			return
		}
		p.ownCommitment = value
	}

	if err := p.beacon.AddSeedCommitment(Commitment{id: p.id, value: p.ownCommitment}); err != nil {
		p.logger.Error("failed to record own commitment", zap.Error(err))
	}

	payload := wire.EncodeCommitment(p.id.String(), p.ownCommitment)
	if err := p.net.Broadcast(transport.Envelope{From: p.id.String(), Kind: transport.KindCommitment, Payload: payload}); err != nil {
		p.logger.Error("failed to broadcast commitment", zap.Error(err))
	}
	p.state = StateCommit
	p.logger.Verbo("sent commitment", zap.Stringer("id", p.id.NodeID))
}

func (p *Peer) commitRoundFinished() {
	if p.state != StateCommit {
		p.logger.Warn("commit round timed out before commitment was sent", zap.Stringer("state", p.state))
		p.m.RoundsFailed.Inc()
		p.finish(Result{Success: false})
		return
	}

	if p.beacon.NumCommitments() < p.beacon.Threshold() {
		p.commitRestarts++
		if p.commitRestarts > p.params.MaxCommitRestarts {
			p.logger.Warn("aborting after too many commit restarts",
				zap.Int("restarts", p.commitRestarts),
				zap.Int("collected", p.beacon.NumCommitments()),
				zap.Int("threshold", p.beacon.Threshold()))
			p.m.RoundsFailed.Inc()
			p.finish(Result{Success: false})
			return
		}

		// Commitments collected so far are kept; the next delay window
		// only rebroadcasts and gathers the stragglers.
		p.logger.Verbo("not enough commitments collected, restarting",
			zap.Int("collected", p.beacon.NumCommitments()),
			zap.Int("threshold", p.beacon.Threshold()))
		p.m.CommitRestarts.Inc()
		p.startCommitPhase()
		return
	}

	if err := p.beacon.FinalizeSeed(); err != nil {
		p.logger.Error("failed to finalize seed", zap.Error(err))
		p.m.RoundsFailed.Inc()
		p.finish(Result{Success: false})
		return
	}
	p.startVdfPhase()
}

func (p *Peer) startVdfPhase() {
	p.state = StateDoingVdf
	seed, ok := p.beacon.Seed()
	if !ok {
		p.logger.Error("entered vdf phase without a finalized seed")
		p.m.RoundsFailed.Inc()
		p.finish(Result{Success: false})
		return
	}

	go func() {
		start := p.clk.Now()
		proof, err := p.vdf.Solve(seed, p.params.VdfDifficulty)
		elapsed := p.clk.Now().Sub(start)

		p.post(func() {
			if err != nil {
				p.logger.Error("vdf evaluation failed", zap.Error(err))
				p.m.RoundsFailed.Inc()
				p.finish(Result{Success: false})
				return
			}
			p.m.ObserveVdfDuration(elapsed)

			p.recordVdfResult(VdfResultMsg{id: p.id, seed: seed, value: proof})

			payload := wire.EncodeVdfResult(p.id.String(), seed, proof)
			if err := p.net.Broadcast(transport.Envelope{From: p.id.String(), Kind: transport.KindVdfResult, Payload: payload}); err != nil {
				p.logger.Error("failed to broadcast vdf result", zap.Error(err))
			}

			p.clk.AfterFunc(p.params.VdfGatheringTimeout, func() { p.post(p.vdfGatherTimeout) })
		})
	}()
}

// vdfGatherTimeout runs when the gathering window closes: every stored
// result is checked against this peer's seed and its proof verified, the
// valid ones are handed to the beacon, and the beacon's mode-frequency
// finalization decides the round.
func (p *Peer) vdfGatherTimeout() {
	p.state = StateVerifyingVdf
	seed, ok := p.beacon.Seed()
	if !ok {
		p.logger.Error("gathering timeout fired without a finalized seed")
		p.m.RoundsFailed.Inc()
		p.finish(Result{Success: false})
		return
	}

	p.logger.Verbo("verifying collected vdf results", zap.Int("collected", len(p.vdfReceived)))

	for _, r := range p.vdfReceived {
		if !bytes.Equal(r.seed, seed) {
			p.logger.Verbo("rejecting vdf result with mismatched seed", zap.Stringer("from", r.id.NodeID))
			continue
		}
		if !p.vdf.Verify(seed, p.params.VdfDifficulty, r.value) {
			p.logger.Warn("rejecting vdf result that failed verification", zap.Stringer("from", r.id.NodeID))
			continue
		}
		if err := p.beacon.AddVdfResult(r); err != nil {
			p.logger.Verbo("vdf result not accepted", zap.Stringer("from", r.id.NodeID), zap.Error(err))
		}
	}

	if err := p.beacon.FinalizeVdfResult(); err != nil {
		p.logger.Warn("not enough evidence to agree on a randomness value", zap.Error(err))
		p.m.RoundsFailed.Inc()
		p.finish(Result{Success: false})
		return
	}

	randomness, _ := p.beacon.Randomness()
	p.m.RoundsSucceeded.Inc()
	p.finish(Result{Success: true, Randomness: randomness})
}

func (p *Peer) finish(r Result) {
	select {
	case p.result <- r:
	default:
	}
	close(p.stop)
}

// State returns the peer's current lifecycle state.
func (p *Peer) State() State { return p.state }
