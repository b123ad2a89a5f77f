// Package protoerr collects the error taxonomy shared by the codec, world,
// and session layers so callers can branch on failure kind with errors.Is.
package protoerr

import "errors"

var (
	// ErrMalformedPacket marks a packet whose payload could not be decoded
	// (short read or otherwise unreadable field). The owning session must
	// terminate.
	ErrMalformedPacket = errors.New("protoerr: malformed packet")

	// ErrUnknownOpcode marks an opcode byte with no known payload size.
	// Since the payload length can't be recovered the stream can't safely
	// resync; callers decide whether to terminate the session.
	ErrUnknownOpcode = errors.New("protoerr: unknown opcode")

	// ErrInvalidBlock marks a block id outside 0..=49.
	ErrInvalidBlock = errors.New("protoerr: invalid block id")

	// ErrServerFull marks a join attempt with no free player-id slot.
	ErrServerFull = errors.New("protoerr: server full")

	// ErrStringTooLong marks a PacketString value whose UTF-8 encoding
	// exceeds 64 bytes.
	ErrStringTooLong = errors.New("protoerr: string exceeds 64 bytes")

	// ErrDimMismatch marks a loaded level whose declared block count
	// disagrees with X*Y*Z of the expected dimensions.
	ErrDimMismatch = errors.New("protoerr: block count does not match dimensions")

	// ErrBroadcastLagged marks a broadcast subscriber that fell behind and
	// had a message dropped.
	ErrBroadcastLagged = errors.New("protoerr: broadcast subscriber lagged")
)
