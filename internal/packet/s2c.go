package packet

import (
	"io"

	"github.com/vintagecraft/vintage/internal/fixed"
)

// ServerPacket is an encoded server-to-client packet.
type ServerPacket interface {
	WriteTo(w io.Writer) (int64, error)
}

// ServerIdentPacket is S2C opcode 0x00.
type ServerIdentPacket struct {
	ProtocolVersion uint8
	Name            fixed.PacketString
	MOTD            fixed.PacketString
	UserType        uint8
}

// WriteTo encodes the packet.
func (p ServerIdentPacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpServerIdent,
		u8(p.ProtocolVersion), p.Name, p.MOTD, u8(p.UserType))
}

// PingPacket is S2C opcode 0x01. It carries no fields.
type PingPacket struct{}

// WriteTo encodes the packet.
func (PingPacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpPing)
}

// LevelInitPacket is S2C opcode 0x02. It carries no fields.
type LevelInitPacket struct{}

// WriteTo encodes the packet.
func (LevelInitPacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpLevelInit)
}

// LevelDataChunkPacket is S2C opcode 0x03.
type LevelDataChunkPacket struct {
	Len     int16
	Data    [LevelChunkSize]byte
	Percent uint8
}

// WriteTo encodes the packet.
func (p LevelDataChunkPacket) WriteTo(w io.Writer) (int64, error) {
	n, err := writeAll(w, OpLevelDataChunk, i16(p.Len))
	if err != nil {
		return n, err
	}
	nn, err := w.Write(p.Data[:])
	n += int64(nn)
	if err != nil {
		return n, err
	}
	nn2, err := u8(p.Percent).WriteTo(w)
	return n + nn2, err
}

// LevelFinalisePacket is S2C opcode 0x04.
type LevelFinalisePacket struct {
	X, Y, Z int16
}

// WriteTo encodes the packet.
func (p LevelFinalisePacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpLevelFinalise, i16(p.X), i16(p.Y), i16(p.Z))
}

// SetBlockServerPacket is S2C opcode 0x06.
type SetBlockServerPacket struct {
	X, Y, Z int16
	Block   uint8
}

// WriteTo encodes the packet.
func (p SetBlockServerPacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpSetBlockServer, i16(p.X), i16(p.Y), i16(p.Z), u8(p.Block))
}

// SpawnPlayerPacket is S2C opcode 0x07.
type SpawnPlayerPacket struct {
	ID         int8
	Name       fixed.PacketString
	X, Y, Z    fixed.Short
	Yaw, Pitch fixed.Angle
}

// WriteTo encodes the packet.
func (p SpawnPlayerPacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpSpawnPlayer, i8(p.ID), p.Name, p.X, p.Y, p.Z, p.Yaw, p.Pitch)
}

// PlayerTeleportPacket is S2C opcode 0x08.
type PlayerTeleportPacket struct {
	ID         int8
	X, Y, Z    fixed.Short
	Yaw, Pitch fixed.Angle
}

// WriteTo encodes the packet.
func (p PlayerTeleportPacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpPlayerTeleport, i8(p.ID), p.X, p.Y, p.Z, p.Yaw, p.Pitch)
}

// PosOriUpdatePacket is S2C opcode 0x09.
type PosOriUpdatePacket struct {
	ID         int8
	DX, DY, DZ fixed.Byte
	Yaw, Pitch fixed.Angle
}

// WriteTo encodes the packet.
func (p PosOriUpdatePacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpPosOriUpdate, i8(p.ID), p.DX, p.DY, p.DZ, p.Yaw, p.Pitch)
}

// PosUpdatePacket is S2C opcode 0x0a.
type PosUpdatePacket struct {
	ID         int8
	DX, DY, DZ fixed.Byte
}

// WriteTo encodes the packet.
func (p PosUpdatePacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpPosUpdate, i8(p.ID), p.DX, p.DY, p.DZ)
}

// OriUpdatePacket is S2C opcode 0x0b.
type OriUpdatePacket struct {
	ID         int8
	Yaw, Pitch fixed.Angle
}

// WriteTo encodes the packet.
func (p OriUpdatePacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpOriUpdate, i8(p.ID), p.Yaw, p.Pitch)
}

// DespawnPlayerPacket is S2C opcode 0x0c.
type DespawnPlayerPacket struct {
	ID int8
}

// WriteTo encodes the packet.
func (p DespawnPlayerPacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpDespawnPlayer, i8(p.ID))
}

// MessageServerPacket is S2C opcode 0x0d.
type MessageServerPacket struct {
	ID      int8
	Message fixed.PacketString
}

// WriteTo encodes the packet.
func (p MessageServerPacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpMessageServer, i8(p.ID), p.Message)
}

// DisconnectPacket is S2C opcode 0x0e.
type DisconnectPacket struct {
	Reason fixed.PacketString
}

// WriteTo encodes the packet.
func (p DisconnectPacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpDisconnect, p.Reason)
}

// UpdateUserTypePacket is S2C opcode 0x0f.
type UpdateUserTypePacket struct {
	UserType uint8
}

// WriteTo encodes the packet.
func (p UpdateUserTypePacket) WriteTo(w io.Writer) (int64, error) {
	return writeAll(w, OpUpdateUserType, u8(p.UserType))
}

// writeAll writes the opcode followed by each field's WriteTo in order.
func writeAll(w io.Writer, op byte, fields ...io.WriterTo) (int64, error) {
	n, err := w.Write([]byte{op})
	total := int64(n)
	if err != nil {
		return total, err
	}
	for _, f := range fields {
		n, err := f.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
