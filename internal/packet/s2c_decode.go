package packet

import "io"

// DecodeServer parses a server-to-client packet for the given opcode. It
// exists for round-trip testing of the codec; the session's write path
// never needs to decode its own output.
func DecodeServer(op byte, r io.Reader) (ServerPacket, error) {
	switch op {
	case OpServerIdent:
		var p ServerIdentPacket
		var ver, ut u8
		if _, err := (&ver).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Name).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.MOTD).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&ut).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.ProtocolVersion, p.UserType = uint8(ver), uint8(ut)
		return p, nil

	case OpPing:
		return PingPacket{}, nil

	case OpLevelInit:
		return LevelInitPacket{}, nil

	case OpLevelDataChunk:
		var p LevelDataChunkPacket
		var length i16
		if _, err := (&length).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := io.ReadFull(r, p.Data[:]); err != nil {
			return nil, wrapMalformed(err)
		}
		var pct u8
		if _, err := (&pct).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.Len, p.Percent = int16(length), uint8(pct)
		return p, nil

	case OpLevelFinalise:
		var p LevelFinalisePacket
		var x, y, z i16
		if _, err := (&x).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&y).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&z).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.X, p.Y, p.Z = int16(x), int16(y), int16(z)
		return p, nil

	case OpSetBlockServer:
		var p SetBlockServerPacket
		var x, y, z i16
		var b u8
		if _, err := (&x).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&y).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&z).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&b).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.X, p.Y, p.Z, p.Block = int16(x), int16(y), int16(z), uint8(b)
		return p, nil

	case OpSpawnPlayer:
		var p SpawnPlayerPacket
		var id i8
		if _, err := (&id).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Name).ReadFrom(r); err != nil {
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
		p.ID = int8(id)
		return p, nil

	case OpPlayerTeleport:
		var p PlayerTeleportPacket
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
		p.ID = int8(id)
		return p, nil

	case OpPosOriUpdate:
		var p PosOriUpdatePacket
		var id i8
		if _, err := (&id).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.DX).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.DY).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.DZ).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Yaw).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Pitch).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.ID = int8(id)
		return p, nil

	case OpPosUpdate:
		var p PosUpdatePacket
		var id i8
		if _, err := (&id).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.DX).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.DY).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.DZ).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.ID = int8(id)
		return p, nil

	case OpOriUpdate:
		var p OriUpdatePacket
		var id i8
		if _, err := (&id).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Yaw).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Pitch).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.ID = int8(id)
		return p, nil

	case OpDespawnPlayer:
		var id i8
		if _, err := (&id).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		return DespawnPlayerPacket{ID: int8(id)}, nil

	case OpMessageServer:
		var p MessageServerPacket
		var id i8
		if _, err := (&id).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		if _, err := (&p.Message).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		p.ID = int8(id)
		return p, nil

	case OpDisconnect:
		var p DisconnectPacket
		if _, err := (&p.Reason).ReadFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		return p, nil

	case OpUpdateUserType:
		var ut u8
		if _, err := (&ut).readFrom(r); err != nil {
			return nil, wrapMalformed(err)
		}
		return UpdateUserTypePacket{UserType: uint8(ut)}, nil

	default:
		return nil, wrapMalformed(io.ErrUnexpectedEOF)
	}
}
