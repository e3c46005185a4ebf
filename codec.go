// Package adahuff implements a word-level adaptive Huffman codec for
// interactive text chat: a self-balancing prefix-code tree that mutates
// identically on both sides of a connection, so a single encoded bitstream
// decoded by a peer whose tree started empty reconstructs the exact input.
//
// A Codec is stateful and must not be shared between the two directions of
// a connection: pair exactly one encoder with one decoder per stream
// direction, and never encode and decode through the same instance.
package adahuff

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/adahuff/adahuff/internal/bitio"
	"github.com/adahuff/adahuff/internal/tree"
	"github.com/adahuff/adahuff/internal/utils"
	"github.com/adahuff/adahuff/internal/wordsplit"
)

// Codec holds one adaptive Huffman tree and word index. All exported
// methods acquire an exclusive lock for their entire duration and release
// it before returning, including on every error path: a single call to
// Encode or Decode is atomic with respect to any concurrent call on the
// same instance. There is no suspension point inside the lock — both
// operations are pure in-memory computation.
type Codec struct {
	mu   sync.Mutex
	tree *tree.Tree
}

// New returns a Codec with a freshly initialized tree (root + NYT + NCW,
// per the tree package's New).
func New() *Codec {
	return &Codec{tree: tree.New()}
}

// NextKey returns the key that will be assigned to the next newly inserted
// word's symbol leaf. It briefly takes the codec lock to read the value
// and releases it before returning — callers driving a key-budget advisor
// must not hold any other lock across this call, and must call the
// advisor only after it returns, never while still holding a reference
// into codec-owned state.
func (c *Codec) NextKey() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.NextKey()
}

// Encode partitions text into word tokens on the literal single-space
// byte, interleaves a " " separator token between consecutive words, and
// emits each token's codeword, mutating the tree after every token. Empty
// input returns an empty, non-nil byte slice.
//
// Encode never partially emits on error: if any token fails (only possible
// for a word whose UTF-8 encoding is 65536 bytes or longer), the partially
// built buffer is discarded and the instance's tree has already been
// mutated for the tokens emitted before the failure — per the codec's
// error policy, the caller must treat a failed instance as desynchronized
// and discard it.
func (c *Codec) Encode(text string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	words := wordsplit.Split(text)
	if words == nil {
		return []byte{}, nil
	}

	w := bitio.NewWriter()
	for i, word := range words {
		if i != 0 {
			if err := c.emitWord(w, wordsplit.Separator); err != nil {
				return nil, err
			}
		}
		if err := c.emitWord(w, word); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// emitWord writes one token: the bit path to word's leaf if word has been
// seen before, or the path to NCW followed by the raw bytes and a tree
// insertion if it has not.
func (c *Codec) emitWord(w *bitio.Writer, word string) error {
	if idx, ok := c.tree.Lookup(word); ok {
		w.AddBits(c.tree.PathTo(idx))
		c.tree.Increment(idx)
		return nil
	}

	w.AddBits(c.tree.PathTo(c.tree.NCW()))

	raw := []byte(word)
	if err := utils.ValidateWordLength(len(raw)); err != nil {
		return utils.WrapError(fmt.Sprintf("encoding word of %d bytes", len(raw)), ErrWordTooLong)
	}

	w.FlushToByte()
	w.AddUint16(uint16(len(raw)))
	w.AddBytes(raw)
	c.tree.InsertWord(word)
	return nil
}

// Decode consumes a byte stream produced by Encode (on any codec instance
// whose tree evolved from the same initial state through the same ordered
// sequence of prior messages) and returns the reconstructed text. Empty
// input returns "".
func (c *Codec) Decode(data []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(data) == 0 {
		return "", nil
	}

	r := bitio.NewReader(data)
	var tokens []string
	for r.HasBits() {
		word, err := c.decodeNextWord(r)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, word)
	}

	words := tokens[:0]
	for _, tok := range tokens {
		if tok != wordsplit.Separator {
			words = append(words, tok)
		}
	}
	return strings.Join(words, wordsplit.Separator), nil
}

// decodeNextWord walks the tree from the root one bit at a time until it
// reaches a leaf, then resolves that leaf to a word per §4.4 of the codec
// specification.
func (c *Codec) decodeNextWord(r *bitio.Reader) (string, error) {
	idx := c.tree.Root()
	for c.tree.Kind(idx) == tree.Internal {
		bit, err := r.ReadBit()
		if err != nil {
			return "", utils.WrapError("reading tree path bit", ErrTruncated)
		}
		idx = c.tree.Child(idx, bit)
	}

	switch c.tree.Kind(idx) {
	case tree.NCW:
		r.AlignToByte()
		length, err := r.ReadUint16()
		if err != nil {
			return "", utils.WrapError("reading new-word length", ErrTruncated)
		}
		raw, err := r.ReadBytes(int(length))
		if err != nil {
			return "", utils.WrapError("reading new-word bytes", ErrTruncated)
		}
		if !utf8.Valid(raw) {
			return "", utils.WrapError("validating new-word bytes", ErrBadText)
		}
		word := string(raw)
		c.tree.InsertWord(word)
		return word, nil

	case tree.NYT:
		return "", utils.WrapError("resolving decoded leaf", ErrCorrupt)

	default: // tree.Leaf
		c.tree.Increment(idx)
		return c.tree.Word(idx), nil
	}
}
