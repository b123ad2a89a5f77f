// Package fixed implements the classic-protocol wire encodings that do not
// map onto a plain big-endian integer: space-padded fixed-length strings,
// 1/32-scaled position fields, and the 1/255-of-a-turn angle byte.
//
// Every type exposes io.WriterTo/io.ReaderFrom, the same convention the
// packet codec uses for every other field, so a packet's field list can be
// written as a flat sequence of WriteTo calls.
package fixed

import (
	"io"
	"math"

	"github.com/vintagecraft/vintage/internal/protoerr"
)

// StringLen is the wire length of a PacketString, in bytes.
const StringLen = 64

// PacketString is a 64-byte space-padded UTF-8 field.
type PacketString string

// WriteTo encodes s as 64 bytes: its UTF-8 form right-padded with 0x20.
func (s PacketString) WriteTo(w io.Writer) (int64, error) {
	raw := []byte(s)
	if len(raw) > StringLen {
		return 0, protoerr.ErrStringTooLong
	}

	var buf [StringLen]byte
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf[:], raw)

	n, err := w.Write(buf[:])
	return int64(n), err
}

// Truncate builds a PacketString from s, cutting at the last full rune
// that still fits within 64 bytes instead of failing construction. Used
// by the chat message flow, which must always deliver something even
// when "name: message" overflows the field.
func Truncate(s string) PacketString {
	raw := []byte(s)
	if len(raw) <= StringLen {
		return PacketString(raw)
	}
	end := StringLen
	for end > 0 && !utf8ValidStart(raw, end) {
		end--
	}
	return PacketString(raw[:end])
}

// utf8ValidStart reports whether cutting raw at byte offset end lands on a
// rune boundary (i.e. doesn't split a multi-byte UTF-8 sequence).
func utf8ValidStart(raw []byte, end int) bool {
	if end >= len(raw) {
		return true
	}
	return raw[end]&0xC0 != 0x80
}

// ReadFrom decodes a PacketString, trimming trailing spaces. Invalid UTF-8
// is decoded lossily rather than rejected.
func (s *PacketString) ReadFrom(r io.Reader) (int64, error) {
	var buf [StringLen]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}

	end := StringLen
	for end > 0 && buf[end-1] == ' ' {
		end--
	}
	*s = PacketString(buf[:end])
	return int64(n), nil
}

// Short is a position coordinate scaled by 32, the wire's fixed-point
// encoding for sub-block precision.
type Short int16

// NewShort converts a block-coordinate float into its wire representation,
// rounding toward zero.
func NewShort(v float32) Short {
	return Short(int16(v * 32))
}

// Float converts back to a block-coordinate float.
func (s Short) Float() float32 {
	return float32(s) / 32.0
}

// WriteTo encodes the underlying i16, big-endian.
func (s Short) WriteTo(w io.Writer) (int64, error) {
	u := uint16(s)
	n, err := w.Write([]byte{byte(u >> 8), byte(u)})
	return int64(n), err
}

// ReadFrom decodes a big-endian i16.
func (s *Short) ReadFrom(r io.Reader) (int64, error) {
	var buf [2]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}
	*s = Short(int16(buf[0])<<8 | int16(buf[1]))
	return int64(n), nil
}

// Byte is a delta-coordinate scaled by 32, used for relative-move packets.
type Byte int8

// NewByte converts a delta in blocks into its wire representation.
func NewByte(v float32) Byte {
	return Byte(int8(v * 32))
}

// Float converts back to a delta in blocks.
func (b Byte) Float() float32 {
	return float32(b) / 32.0
}

// WriteTo encodes the underlying i8.
func (b Byte) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte{byte(b)})
	return int64(n), err
}

// ReadFrom decodes an i8.
func (b *Byte) ReadFrom(r io.Reader) (int64, error) {
	var buf [1]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}
	*b = Byte(int8(buf[0]))
	return int64(n), nil
}

// Angle is a rotation angle encoded as a byte, in steps of 1/255 of a full
// turn (a full turn encodes as 255).
type Angle uint8

// RadiansToAngle converts radians to the wire byte.
// angle_to_byte(radians) = (radians / 2*pi) * 255, truncated.
func RadiansToAngle(radians float64) Angle {
	return Angle(byte(int((radians / (2 * math.Pi)) * 255)))
}

// Radians converts the wire byte back to radians.
func (a Angle) Radians() float64 {
	return (float64(a) / 255) * 2 * math.Pi
}

// WriteTo encodes the angle byte.
func (a Angle) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte{byte(a)})
	return int64(n), err
}

// ReadFrom decodes the angle byte.
func (a *Angle) ReadFrom(r io.Reader) (int64, error) {
	var buf [1]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}
	*a = Angle(buf[0])
	return int64(n), nil
}
