// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package peer

import (
	"bytes"

	"github.com/luxfi/ids"
)

// PeerID wraps ids.NodeID to satisfy beacon.Ordered: it is comparable
// (NodeID is a fixed-size byte array) and gains a total order over its
// byte representation, so commitments sort deterministically regardless
// of network arrival order.
type PeerID struct {
	ids.NodeID
}

// NewPeerID wraps an existing ids.NodeID.
func NewPeerID(n ids.NodeID) PeerID {
	return PeerID{NodeID: n}
}

// ParsePeerID parses the string form produced by PeerID.String.
func ParsePeerID(s string) (PeerID, error) {
	n, err := ids.NodeIDFromString(s)
	if err != nil {
		return PeerID{}, err
	}
	return PeerID{NodeID: n}, nil
}

// Compare implements beacon.Ordered[PeerID].
func (p PeerID) Compare(other PeerID) int {
	return bytes.Compare(p.NodeID.Bytes(), other.NodeID.Bytes())
}
