// Package cursor implements the byte-level primitives shared by the EWKB
// and TWKB decoders: a bounds-checked cursor over an owned, immutable
// buffer, fixed-width integer/float reads in a selectable endianness, and
// LEB128-style unsigned/signed (ZigZag) varint reads.
//
// Grounded on SAP-go-hdb's driver/internal/protocol/encoding.Decoder for
// the one-method-per-wire-width shape, but every read returns its error
// directly instead of latching it in a sticky field: wkbparse callers must
// see a decode failure at the call site that caused it.
package cursor

import (
	"encoding/binary"
	"math"

	"github.com/arjuote/wkbparse/wkerr"
)

// maxVarintBytes is the LEB128 byte budget before a varint is considered
// malformed: 9 groups of 7 bits cover 63 bits and the 10th group supplies
// the last one, so an 11th continuation byte is always an overflow.
const maxVarintBytes = 10

// Cursor is a read-only view over buf, advanced by every read call. It
// never retains buf past the lifetime of the decode call that owns it.
type Cursor struct {
	buf []byte
	pos int
}

// New wraps buf in a Cursor starting at position 0.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read offset into buf.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes left in buf.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Bytes reads the next n bytes and advances the cursor past them.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, wkerr.New(wkerr.ErrKindUnexpectedEOF, "need %d bytes, have %d at offset %d", n, c.Remaining(), c.pos)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Uint8 reads a single unsigned byte. Used to read the EWKB endian flag
// (0 = big-endian, 1 = little-endian) and the TWKB header/metadata bytes.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint32 reads an unsigned 32-bit integer in the given byte order.
func (c *Cursor) Uint32(order binary.ByteOrder) (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// Float64 reads an IEEE 754 binary64 in the given byte order.
func (c *Cursor) Float64(order binary.ByteOrder) (float64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(order.Uint64(b)), nil
}

// Varint reads an unsigned LEB128 varint: up to 10 groups of 7 bits,
// little-endian group order, high bit of each byte signals continuation.
func (c *Cursor) Varint() (uint64, error) {
	var val uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := c.Uint8()
		if err != nil {
			return 0, err
		}
		if i == maxVarintBytes-1 && b > 1 {
			// The 10th group only has one payload bit of headroom within
			// 64 bits; anything larger has overflowed.
			return 0, wkerr.New(wkerr.ErrKindVarintOverflow, "varint exceeds 64 bits at offset %d", c.pos)
		}
		val |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return val, nil
		}
		shift += 7
	}
	return 0, wkerr.New(wkerr.ErrKindVarintOverflow, "varint continues past %d bytes at offset %d", maxVarintBytes, c.pos)
}

// SVarint reads a ZigZag-encoded signed LEB128 varint:
// (n >> 1) ^ -(n & 1).
func (c *Cursor) SVarint() (int64, error) {
	u, err := c.Varint()
	if err != nil {
		return 0, err
	}
	return zigzagDecode(u), nil
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
