package bitio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader_ReadBit(t *testing.T) {
	r := NewReader([]byte{0b1010_0000})

	want := []byte{1, 0, 1, 0, 0, 0, 0, 0}
	for i, w := range want {
		require.True(t, r.HasBits(), "bit %d", i)
		b, err := r.ReadBit()
		require.NoError(t, err)
		require.Equal(t, w, b, "bit %d", i)
	}
	require.False(t, r.HasBits())

	_, err := r.ReadBit()
	require.Error(t, err)
}

func TestReader_AlignToByte(t *testing.T) {
	r := NewReader([]byte{0xFF, 0x01, 0x02})
	_, _ = r.ReadBit()
	_, _ = r.ReadBit()
	_, _ = r.ReadBit()
	r.AlignToByte()
	n, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0102), n)
}

func TestReader_AlignToByteNoOpWhenAligned(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	r.AlignToByte()
	n, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0102), n)
}

func TestReader_ReadUint16Truncated(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadUint16()
	require.Error(t, err)
}

func TestReader_ReadBytes(t *testing.T) {
	r := NewReader([]byte{0b1000_0000, 'h', 'i'})
	bit, err := r.ReadBit()
	require.NoError(t, err)
	require.Equal(t, byte(1), bit)

	b, err := r.ReadBytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte("hi"), b)
}

func TestReader_ReadBytesTruncated(t *testing.T) {
	r := NewReader([]byte{'h'})
	_, err := r.ReadBytes(2)
	require.Error(t, err)
}
