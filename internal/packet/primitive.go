package packet

import "io"

// rawByte reads a single byte, preferring io.ByteReader when available to
// avoid an allocation per field on a buffered reader.
func rawByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var v [1]byte
	_, err := io.ReadFull(r, v[:])
	return v[0], err
}

// u8 is an unsigned 8-bit wire field.
type u8 uint8

// WriteTo encodes the byte.
func (v u8) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte{byte(v)})
	return int64(n), err
}

// readFrom decodes the byte.
func (v *u8) readFrom(r io.Reader) (int64, error) {
	b, err := rawByte(r)
	if err != nil {
		return 0, err
	}
	*v = u8(b)
	return 1, nil
}

// i8 is a signed 8-bit wire field, two's complement.
type i8 int8

// WriteTo encodes the byte.
func (v i8) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte{byte(v)})
	return int64(n), err
}

// readFrom decodes the byte.
func (v *i8) readFrom(r io.Reader) (int64, error) {
	b, err := rawByte(r)
	if err != nil {
		return 0, err
	}
	*v = i8(int8(b))
	return 1, nil
}

// i16 is a signed 16-bit big-endian wire field.
type i16 int16

// WriteTo encodes the value big-endian.
func (v i16) WriteTo(w io.Writer) (int64, error) {
	u := uint16(v)
	n, err := w.Write([]byte{byte(u >> 8), byte(u)})
	return int64(n), err
}

// readFrom decodes a big-endian value.
func (v *i16) readFrom(r io.Reader) (int64, error) {
	var buf [2]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}
	*v = i16(int16(buf[0])<<8 | int16(buf[1]))
	return int64(n), nil
}
