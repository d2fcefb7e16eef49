package cursor_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjuote/wkbparse/internal/cursor"
	"github.com/arjuote/wkbparse/wkerr"
)

func TestUint8(t *testing.T) {
	c := cursor.New([]byte{0x01, 0x02})
	v, err := c.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), v)
	require.Equal(t, 1, c.Pos())
}

func TestUint32BothEndians(t *testing.T) {
	c := cursor.New([]byte{0x01, 0x00, 0x00, 0x00})
	v, err := c.Uint32(binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, uint32(1), v)

	c = cursor.New([]byte{0x00, 0x00, 0x00, 0x01})
	v, err = c.Uint32(binary.BigEndian)
	require.NoError(t, err)
	require.Equal(t, uint32(1), v)
}

func TestFloat64(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, 0x3FF0000000000000) // 1.0
	c := cursor.New(buf)
	v, err := c.Float64(binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestUnexpectedEOF(t *testing.T) {
	c := cursor.New([]byte{0x01})
	_, err := c.Uint32(binary.LittleEndian)
	require.Error(t, err)
	require.True(t, errors.Is(err, wkerr.ErrUnexpectedEOF))
}

func TestVarintSingleByte(t *testing.T) {
	c := cursor.New([]byte{0x01})
	v, err := c.Varint()
	require.NoError(t, err)
	require.Equal(t, uint64(1), v)
}

func TestVarintMultiByte(t *testing.T) {
	// 300 = 0b100101100 -> LEB128: 0xAC 0x02
	c := cursor.New([]byte{0xAC, 0x02})
	v, err := c.Varint()
	require.NoError(t, err)
	require.Equal(t, uint64(300), v)
}

func TestVarintOverflow(t *testing.T) {
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 0xFF
	}
	c := cursor.New(buf)
	_, err := c.Varint()
	require.Error(t, err)
	require.True(t, errors.Is(err, wkerr.ErrVarintOverflow))
}

func TestSVarintZigZag(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want int64
	}{
		{"zero", []byte{0x00}, 0},
		{"minus one", []byte{0x01}, -1},
		{"one", []byte{0x02}, 1},
		{"minus two", []byte{0x03}, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor.New(tt.buf)
			v, err := c.SVarint()
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestRemainingAndBytesBound(t *testing.T) {
	c := cursor.New([]byte{1, 2, 3})
	require.Equal(t, 3, c.Remaining())
	_, err := c.Bytes(10)
	require.Error(t, err)
	require.True(t, errors.Is(err, wkerr.ErrUnexpectedEOF))
}
