// Package packet implements the classic-protocol wire codec: bit-exact
// encode/decode of every packet type the server speaks. Every packet is a
// single opcode byte followed by a fixed-size payload — there is no length
// prefix, so decoding a client packet depends on mapping its opcode to a
// known payload size up front.
//
// ClientPacket/ServerPacket are interfaces implemented by one concrete
// struct per packet type, and Decode is a single free function switching
// on opcode — a tagged union rather than a polymorphic class hierarchy.
package packet

import (
	"fmt"
	"io"

	"github.com/vintagecraft/vintage/internal/fixed"
	"github.com/vintagecraft/vintage/internal/protoerr"
)

// Client to server opcodes.
const (
	OpPlayerIdent byte = 0x00
	OpSetBlock    byte = 0x05
	OpPosition    byte = 0x08
	OpMessage     byte = 0x0d
)

// Server to client opcodes.
const (
	OpServerIdent     byte = 0x00
	OpPing            byte = 0x01
	OpLevelInit       byte = 0x02
	OpLevelDataChunk  byte = 0x03
	OpLevelFinalise   byte = 0x04
	OpSetBlockServer  byte = 0x06
	OpSpawnPlayer     byte = 0x07
	OpPlayerTeleport  byte = 0x08
	OpPosOriUpdate    byte = 0x09
	OpPosUpdate       byte = 0x0a
	OpOriUpdate       byte = 0x0b
	OpDespawnPlayer   byte = 0x0c
	OpMessageServer   byte = 0x0d
	OpDisconnect      byte = 0x0e
	OpUpdateUserType  byte = 0x0f
)

// LevelChunkSize is the payload length of a LevelDataChunk's data field.
const LevelChunkSize = 1024

// ProtocolVersion is the classic protocol version this server speaks.
const ProtocolVersion uint8 = 7

// UserTypeRegular is the non-operator user-type value sent in ServerIdent
// and UpdateUserType.
const UserTypeRegular uint8 = 0x64

// SelfID is the wire value of PlayerId meaning "this connection's own
// player," never allocated by PlayerIdTable.
const SelfID int8 = -1

// clientPayloadSize maps a known client opcode to its payload length (the
// bytes following the opcode byte). Opcodes not present here are unknown.
var clientPayloadSize = map[byte]int{
	OpPlayerIdent: 130,
	OpSetBlock:    8,
	OpPosition:    9,
	OpMessage:     65,
}

// KnownClientOpcode reports whether op has a registered payload size.
func KnownClientOpcode(op byte) (size int, known bool) {
	size, known = clientPayloadSize[op]
	return
}

// ClientPacket is a decoded client-to-server packet.
type ClientPacket interface {
	clientPacket()
}

// PlayerIdentPacket is C2S opcode 0x00.
type PlayerIdentPacket struct {
	ProtocolVersion uint8
	Username        fixed.PacketString
	VerifyKey       fixed.PacketString
	CPEMagic        uint8
}

func (PlayerIdentPacket) clientPacket() {}

// SetBlockPacket is C2S opcode 0x05.
type SetBlockPacket struct {
	X, Y, Z   int16
	Mode      uint8
	BlockType uint8
}

func (SetBlockPacket) clientPacket() {}

// PositionPacket is C2S opcode 0x08.
type PositionPacket struct {
	PlayerID   int8
	X, Y, Z    fixed.Short
	Yaw, Pitch fixed.Angle
}

func (PositionPacket) clientPacket() {}

// MessagePacket is C2S opcode 0x0d.
type MessagePacket struct {
	PlayerID int8
	Message  fixed.PacketString
}

func (MessagePacket) clientPacket() {}

// Decode reads size bytes for the given known opcode and returns the
// decoded packet. It assumes op is a key of clientPayloadSize; callers
// must check KnownClientOpcode first.
func Decode(op byte, r io.Reader) (ClientPacket, error) {
	switch op {
	case OpPlayerIdent:
		var p PlayerIdentPacket
		var ver, magic u8
		if _, err := (&ver).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Username).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.VerifyKey).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&magic).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.ProtocolVersion = uint8(ver)
		p.CPEMagic = uint8(magic)
		return p, nil

	case OpSetBlock:
		var p SetBlockPacket
		var x, y, z i16
		var mode, bt u8
		if _, err := (&x).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&y).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&z).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&mode).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&bt).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.X, p.Y, p.Z = int16(x), int16(y), int16(z)
		p.Mode = uint8(mode)
		p.BlockType = uint8(bt)
		return p, nil

	case OpPosition:
		var p PositionPacket
		var id i8
		if _, err := (&id).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.X).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Y).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Z).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Yaw).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Pitch).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.PlayerID = int8(id)
		return p, nil

	case OpMessage:
		var p MessagePacket
		var id i8
		if _, err := (&id).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Message).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.PlayerID = int8(id)
		return p, nil

	default:
		return nil, protoerr.ErrUnknownOpcode
	}
}

func wrapMalformed(err error) error {
	return fmt.Errorf("%w: %v", protoerr.ErrMalformedPacket, err)
}
