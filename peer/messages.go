// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package peer

// Commitment is the concrete beacon.SeedCommitment[PeerID] a Peer
// exchanges during the commit phase.
type Commitment struct {
	id    PeerID
	value []byte
}

func (c Commitment) ID() PeerID    { return c.id }
func (c Commitment) Value() []byte { return c.value }

// VdfResultMsg is the concrete beacon.VdfResult[PeerID] a Peer exchanges
// during the VDF phase.
type VdfResultMsg struct {
	id    PeerID
	seed  []byte
	value []byte
}

func (r VdfResultMsg) ID() PeerID    { return r.id }
func (r VdfResultMsg) Seed() []byte  { return r.seed }
func (r VdfResultMsg) Value() []byte { return r.value }
