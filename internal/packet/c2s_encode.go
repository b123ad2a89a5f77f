package packet

import (
	"io"
)

// EncodeClient writes p's opcode and payload to w. It exists mainly so
// tests (and any future bot/client tooling) can round-trip a ClientPacket
// without hand-assembling bytes; the server itself never calls this.
func EncodeClient(p ClientPacket, w io.Writer) error {
	switch v := p.(type) {
	case PlayerIdentPacket:
		if _, err := w.Write([]byte{OpPlayerIdent}); err != nil {
			return err
		}
		if _, err := u8(v.ProtocolVersion).WriteTo(w); err != nil {
			return err
		}
		if _, err := v.Username.WriteTo(w); err != nil {
			return err
		}
		if _, err := v.VerifyKey.WriteTo(w); err != nil {
			return err
		}
		_, err := u8(v.CPEMagic).WriteTo(w)
		return err

	case SetBlockPacket:
		if _, err := w.Write([]byte{OpSetBlock}); err != nil {
			return err
		}
		if _, err := i16(v.X).WriteTo(w); err != nil {
			return err
		}
		if _, err := i16(v.Y).WriteTo(w); err != nil {
			return err
		}
		if _, err := i16(v.Z).WriteTo(w); err != nil {
			return err
		}
		if _, err := u8(v.Mode).WriteTo(w); err != nil {
			return err
		}
		_, err := u8(v.BlockType).WriteTo(w)
		return err

	case PositionPacket:
		if _, err := w.Write([]byte{OpPosition}); err != nil {
			return err
		}
		if _, err := i8(v.PlayerID).WriteTo(w); err != nil {
			return err
		}
		if _, err := v.X.WriteTo(w); err != nil {
			return err
		}
		if _, err := v.Y.WriteTo(w); err != nil {
			return err
		}
		if _, err := v.Z.WriteTo(w); err != nil {
			return err
		}
		if _, err := v.Yaw.WriteTo(w); err != nil {
			return err
		}
		_, err := v.Pitch.WriteTo(w)
		return err

	case MessagePacket:
		if _, err := w.Write([]byte{OpMessage}); err != nil {
			return err
		}
		if _, err := i8(v.PlayerID).WriteTo(w); err != nil {
			return err
		}
		_, err := v.Message.WriteTo(w)
		return err

	default:
		panic("packet: unknown ClientPacket type")
	}
}
