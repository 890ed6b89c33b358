// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package peer

// State is one of the five states a Peer passes through in a round.
type State int

const (
	StateIdle State = iota
	StateConnected
	StateCommit
	StateDoingVdf
	StateVerifyingVdf
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateConnected:
		return "Connected"
	case StateCommit:
		return "Commit"
	case StateDoingVdf:
		return "DoingVdf"
	case StateVerifyingVdf:
		return "VerifyingVdf"
	default:
		return "Unknown"
	}
}
