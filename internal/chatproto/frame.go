// Package chatproto implements the length-prefixed message framing that
// carries codec payloads over a stream connection: a uint32 big-endian
// length followed by that many payload bytes, with no further header.
package chatproto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxPayload is the frame-length ceiling the reference broker
// enforces absent an explicit FrameOption.
const DefaultMaxPayload = 1_000_000

// ErrEmptyPayload is returned by WriteFrame for a zero-length payload; the
// wire format requires every frame to carry at least one byte.
var ErrEmptyPayload = errors.New("chatproto: empty payload")

// ErrPayloadTooLarge is returned when a frame's declared length exceeds the
// configured ceiling, either on write (caller-supplied payload) or on read
// (a length header received from the peer).
var ErrPayloadTooLarge = errors.New("chatproto: payload exceeds maximum length")

type config struct {
	maxPayload uint32
}

// FrameOption configures WriteFrame/ReadFrame's payload-length ceiling.
type FrameOption func(*config)

// WithMaxPayload overrides DefaultMaxPayload.
func WithMaxPayload(n uint32) FrameOption {
	return func(c *config) { c.maxPayload = n }
}

func resolve(opts []FrameOption) config {
	c := config{maxPayload: DefaultMaxPayload}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WriteFrame writes a length-prefixed frame of payload to w: a uint32 BE
// length followed by payload verbatim. Rejects an empty or oversized
// payload before writing anything.
func WriteFrame(w io.Writer, payload []byte, opts ...FrameOption) error {
	c := resolve(opts)

	if len(payload) == 0 {
		return ErrEmptyPayload
	}
	if uint32(len(payload)) > c.maxPayload {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(payload), c.maxPayload)
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("chatproto: writing length header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("chatproto: writing payload: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame from r and returns its payload.
// The declared length is checked against the configured ceiling before any
// payload bytes are read, so an oversized or hostile length header never
// causes an unbounded read. Returns io.EOF only when r is exhausted exactly
// at a frame boundary (no header read yet); any other truncation is
// reported as io.ErrUnexpectedEOF via the underlying io.ReadFull call.
func ReadFrame(r io.Reader, opts ...FrameOption) ([]byte, error) {
	c := resolve(opts)

	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("chatproto: reading length header: %w", err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length == 0 {
		return nil, ErrEmptyPayload
	}
	if length > c.maxPayload {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, length, c.maxPayload)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("chatproto: reading payload: %w", err)
	}
	return payload, nil
}
