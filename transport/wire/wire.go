// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package wire encodes Commitment and VdfResult messages onto the byte
// strings that cross the network, using google.golang.org/protobuf's
// low-level protowire helpers directly rather than a generated .pb.go —
// the message set is small and stable enough that hand-written tag/varint
// framing is clearer than a code-generation step, and protowire is the
// supported building block for exactly this (it underlies every generated
// marshaler in the module).
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers shared by both message shapes below.
const (
	fieldFrom  = 1
	fieldSeed  = 2
	fieldValue = 3
)

// Envelope frame field numbers, for carriers that deliver one opaque byte
// string per message and so need kind and sender folded into the payload.
const (
	fieldKind    = 1
	fieldEnvFrom = 2
	fieldPayload = 3
)

// EncodeEnvelope folds a message kind, sender, and payload into a single
// byte string.
func EncodeEnvelope(kind uint64, from string, payload []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldKind, protowire.VarintType)
	b = protowire.AppendVarint(b, kind)
	b = protowire.AppendTag(b, fieldEnvFrom, protowire.BytesType)
	b = protowire.AppendString(b, from)
	b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
	b = protowire.AppendBytes(b, payload)
	return b
}

// DecodeEnvelope parses the output of EncodeEnvelope.
func DecodeEnvelope(data []byte) (kind uint64, from string, payload []byte, err error) {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return 0, "", nil, fmt.Errorf("wire: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldKind && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return 0, "", nil, fmt.Errorf("wire: bad field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
			kind = v
		case typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return 0, "", nil, fmt.Errorf("wire: bad field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
			switch num {
			case fieldEnvFrom:
				from = string(v)
			case fieldPayload:
				payload = append([]byte(nil), v...)
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return 0, "", nil, fmt.Errorf("wire: bad field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	if from == "" {
		return 0, "", nil, fmt.Errorf("wire: missing from field")
	}
	return kind, from, payload, nil
}

// EncodeCommitment serializes a Commitment{from, value}.
func EncodeCommitment(from string, value []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldFrom, protowire.BytesType)
	b = protowire.AppendString(b, from)
	b = protowire.AppendTag(b, fieldValue, protowire.BytesType)
	b = protowire.AppendBytes(b, value)
	return b
}

// DecodeCommitment parses the output of EncodeCommitment.
func DecodeCommitment(data []byte) (from string, value []byte, err error) {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return "", nil, fmt.Errorf("wire: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return "", nil, fmt.Errorf("wire: bad field %d: %w", num, protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldFrom:
			if typ != protowire.BytesType {
				return "", nil, fmt.Errorf("wire: field %d: unexpected wire type %d", num, typ)
			}
			from = string(v)
		case fieldValue:
			value = append([]byte(nil), v...)
		}
	}
	if from == "" {
		return "", nil, fmt.Errorf("wire: missing from field")
	}
	return from, value, nil
}

// EncodeVdfResult serializes a VdfResult{from, seed, value}.
func EncodeVdfResult(from string, seed, value []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldFrom, protowire.BytesType)
	b = protowire.AppendString(b, from)
	b = protowire.AppendTag(b, fieldSeed, protowire.BytesType)
	b = protowire.AppendBytes(b, seed)
	b = protowire.AppendTag(b, fieldValue, protowire.BytesType)
	b = protowire.AppendBytes(b, value)
	return b
}

// DecodeVdfResult parses the output of EncodeVdfResult.
func DecodeVdfResult(data []byte) (from string, seed, value []byte, err error) {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return "", nil, nil, fmt.Errorf("wire: bad tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		if typ != protowire.BytesType {
			return "", nil, nil, fmt.Errorf("wire: field %d: unexpected wire type %d", num, typ)
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return "", nil, nil, fmt.Errorf("wire: bad field %d: %w", num, protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldFrom:
			from = string(v)
		case fieldSeed:
			seed = append([]byte(nil), v...)
		case fieldValue:
			value = append([]byte(nil), v...)
		}
	}
	if from == "" {
		return "", nil, nil, fmt.Errorf("wire: missing from field")
	}
	return from, seed, value, nil
}
