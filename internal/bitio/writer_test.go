package bitio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_AddBitsAndFlush(t *testing.T) {
	tests := []struct {
		name string
		bits []byte
		want []byte
	}{
		{
			name: "empty",
			bits: nil,
			want: []byte{},
		},
		{
			name: "single bit pads low side",
			bits: []byte{1},
			want: []byte{0b1000_0000},
		},
		{
			name: "exact byte",
			bits: []byte{1, 0, 1, 0, 1, 0, 1, 0},
			want: []byte{0b1010_1010},
		},
		{
			name: "byte and a half",
			bits: []byte{1, 1, 1, 1, 1, 1, 1, 1, 1},
			want: []byte{0xFF, 0b1000_0000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			w.AddBits(tt.bits)
			require.Equal(t, tt.want, w.Bytes())
		})
	}
}

func TestWriter_FlushToByteIdempotent(t *testing.T) {
	w := NewWriter()
	w.AddBits([]byte{1, 1})
	w.FlushToByte()
	first := append([]byte(nil), w.Bytes()...)
	w.FlushToByte()
	require.Equal(t, first, w.Bytes())
}

func TestWriter_AddUint16ForcesAlignment(t *testing.T) {
	w := NewWriter()
	w.AddBit(1)
	w.AddUint16(0x0102)
	got := w.Bytes()
	require.Equal(t, []byte{0b1000_0000, 0x01, 0x02}, got)
}

func TestWriter_AddBytesForcesAlignment(t *testing.T) {
	w := NewWriter()
	w.AddBits([]byte{1, 0, 1})
	w.AddBytes([]byte("hi"))
	got := w.Bytes()
	require.Equal(t, []byte{0b1010_0000, 'h', 'i'}, got)
}
