// Package wordsplit partitions message text into the word sequence the
// codec encodes, per the codec specification's definition of the symbol
// alphabet: whitespace-delimited words, split on the literal single-space
// byte.
package wordsplit

// Separator is the single-space token the codec emits between consecutive
// words and drops again when decoding.
const Separator = " "

// Split partitions text on the literal single-space byte, the same way
// Python's str.split(" ") does: it never merges runs of spaces, so a
// doubled space produces an empty-string word between two single spaces,
// and a leading or trailing space produces an empty leading or trailing
// element. Empty text returns a nil slice (no word tokens at all, not a
// slice containing one empty string), so callers can test the result for
// nil to apply the codec's "empty input produces empty output" rule.
func Split(text string) []string {
	if text == "" {
		return nil
	}

	var words []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			words = append(words, text[start:i])
			start = i + 1
		}
	}
	return append(words, text[start:])
}
