package adahuff

import "errors"

// Sentinel error kinds the codec returns, wrapped with location context via
// utils.WrapError so callers can use errors.Is against these values while
// still getting a human-readable message out of Error().
var (
	// ErrWordTooLong is returned by Encode when a word's UTF-8 encoding is
	// 65536 bytes or longer.
	ErrWordTooLong = errors.New("word exceeds maximum encodable length")

	// ErrTruncated is returned by Decode when the bitstream or a raw
	// length/byte section ends before a token completes.
	ErrTruncated = errors.New("bitstream truncated mid-token")

	// ErrBadText is returned by Decode when a new word's raw bytes are not
	// valid UTF-8.
	ErrBadText = errors.New("new-word bytes are not valid UTF-8")

	// ErrCorrupt is returned by Decode on a structural impossibility, such
	// as a bit path terminating at the NYT leaf.
	ErrCorrupt = errors.New("decoded bit path is structurally invalid")
)
