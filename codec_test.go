package adahuff

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adahuff/adahuff/internal/tree"
)

func TestCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"single word", "hi"},
		{"repeated word", "hi hi"},
		{"three distinct with repeat", "hello world hello"},
		{"alternating pair", "a b a b a b"},
		{"long repetition", "ha ha ha ha ha ha ha ha"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enc := New()
			dec := New()

			payload, err := enc.Encode(tc.in)
			require.NoError(t, err)

			got, err := dec.Decode(payload)
			require.NoError(t, err)
			require.Equal(t, tc.in, got)
		})
	}
}

func TestCodec_RoundTrip_RandomWords(t *testing.T) {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	rng := rand.New(rand.NewSource(42))

	words := make([]string, 256)
	for i := range words {
		n := 1 + rng.Intn(12)
		var sb strings.Builder
		for j := 0; j < n; j++ {
			sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		words[i] = sb.String()
	}
	text := strings.Join(words, " ")

	enc := New()
	dec := New()
	payload, err := enc.Encode(text)
	require.NoError(t, err)

	got, err := dec.Decode(payload)
	require.NoError(t, err)
	require.Equal(t, text, got)
}

func TestCodec_EmptyInputIsIdempotent(t *testing.T) {
	enc := New()
	payload, err := enc.Encode("")
	require.NoError(t, err)
	require.Equal(t, []byte{}, payload)

	dec := New()
	text, err := dec.Decode(nil)
	require.NoError(t, err)
	require.Equal(t, "", text)
}

func TestCodec_Statefulness(t *testing.T) {
	messages := []string{"hello world", "hello again", "world peace hello"}

	enc := New()
	dec := New()
	for _, m := range messages {
		payload, err := enc.Encode(m)
		require.NoError(t, err)

		got, err := dec.Decode(payload)
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}

// TestCodec_OutOfOrderDesynchronizes demonstrates property 2's order
// dependence: feeding a decoder the same encoder's outputs out of order
// desynchronizes it. The second message was encoded against a tree that
// already knew "alpha" from the first message, so decoding it first
// against a fresh decoder tree walks stale bit paths — this either
// surfaces as a structural decode error or silently yields the wrong
// text, and either outcome demonstrates the desynchronization.
func TestCodec_OutOfOrderDesynchronizes(t *testing.T) {
	enc := New()
	first, err := enc.Encode("alpha beta")
	require.NoError(t, err)
	second, err := enc.Encode("alpha gamma")
	require.NoError(t, err)

	dec := New()
	gotSecond, errSecond := dec.Decode(second)
	if errSecond != nil {
		return // desynchronized immediately: demonstrates the property
	}
	require.NotEqual(t, "alpha gamma", gotSecond)

	gotFirst, errFirst := dec.Decode(first)
	if errFirst != nil {
		return
	}
	require.NotEqual(t, "alpha beta", gotFirst)
}

func TestCodec_UnknownWordEscape(t *testing.T) {
	enc := New()
	payload, err := enc.Encode("alpha")
	require.NoError(t, err)

	require.NotEmpty(t, payload)
	firstByte := payload[0]
	require.Equal(t, byte(1), firstByte>>7&1, "first bit must select NCW (root's right child)")

	require.Equal(t, []byte{0x80, 0x00, 0x05, 'a', 'l', 'p', 'h', 'a'}, payload)
}

func TestCodec_WordRepetitionCompresses(t *testing.T) {
	enc := New()
	repeated, err := enc.Encode("ha ha ha ha ha ha ha ha")
	require.NoError(t, err)

	fresh := New()
	var firstThreeLen int
	for i := 0; i < 3; i++ {
		p, err := fresh.Encode("ha")
		require.NoError(t, err)
		firstThreeLen += len(p)
	}

	require.Less(t, len(repeated), firstThreeLen*8/3)
}

func TestCodec_WordTooLong(t *testing.T) {
	enc := New()
	huge := strings.Repeat("x", 1<<16)
	_, err := enc.Encode(huge)
	require.ErrorIs(t, err, ErrWordTooLong)
}

func TestCodec_InvariantsAfterEachOperation(t *testing.T) {
	c := New()
	texts := []string{"the quick brown fox", "the fox jumps", "quick quick quick"}

	for _, txt := range texts {
		_, err := c.Encode(txt)
		require.NoError(t, err)
		requireTreeInvariants(t, c)
	}
}

func requireTreeInvariants(t *testing.T, c *Codec) {
	t.Helper()
	tr := c.tree

	var nyt, ncw int
	seenKeys := make(map[int]bool)
	var walk func(int) int
	walk = func(idx int) int {
		require.False(t, seenKeys[tr.Key(idx)], "duplicate key at node %d", idx)
		seenKeys[tr.Key(idx)] = true

		switch tr.Kind(idx) {
		case tree.NYT:
			nyt++
			return tr.Weight(idx)
		case tree.NCW:
			ncw++
			return tr.Weight(idx)
		case tree.Leaf:
			return tr.Weight(idx)
		default: // tree.Internal
			l, r := tr.Children(idx)
			sum := walk(l) + walk(r)
			require.Equal(t, tr.Weight(idx), sum, "weight additivity violated at node %d", idx)
			return sum
		}
	}
	walk(tr.Root())

	require.Equal(t, 1, nyt)
	require.Equal(t, 1, ncw)

	for _, txt := range []string{"the", "quick", "brown", "fox", "jumps"} {
		idx, ok := tr.Lookup(txt)
		if !ok {
			continue
		}
		path := tr.PathTo(idx)
		cur := tr.Root()
		for _, bit := range path {
			cur = tr.Child(cur, bit)
		}
		require.Equal(t, idx, cur, "word %q not reachable by its own path", txt)
	}
}
