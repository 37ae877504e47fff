package grammar

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// This file implements the binary encoding of a compiled Grammar. It is
// embedded in the encoding of parse.Tables, which internal/langfront/cache
// persists. It follows the manual field-at-a-time style of
// dekarrin/tunaq's internal/tunascript/binary.go: a length-prefixed string
// encoding and a varint int encoding, rather than reaching for
// reflection-based serialization.

func encBinaryString(s string) []byte {
	enc := make([]byte, 0, len(s))

	chCount := 0
	for _, ch := range s {
		chBuf := make([]byte, utf8.UTFMax)
		n := utf8.EncodeRune(chBuf, ch)
		enc = append(enc, chBuf[:n]...)
		chCount++
	}

	return append(encBinaryInt(chCount), enc...)
}

func encBinaryInt(i int) []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutVarint(buf, int64(i))
	return buf[:n]
}

func encBinaryStrings(ss []string) []byte {
	enc := encBinaryInt(len(ss))
	for _, s := range ss {
		enc = append(enc, encBinaryString(s)...)
	}
	return enc
}

func decBinaryInt(data []byte) (int, int, error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("data is empty")
	}
	val, read := binary.Varint(data)
	if read <= 0 {
		return 0, 0, fmt.Errorf("malformed varint")
	}
	return int(val), read, nil
}

func decBinaryString(data []byte) (string, int, error) {
	runeCount, readBytes, err := decBinaryInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("decoding string rune count: %w", err)
	}
	data = data[readBytes:]
	if runeCount < 0 {
		return "", 0, fmt.Errorf("string rune count < 0")
	}

	var sb []rune
	for i := 0; i < runeCount; i++ {
		ch, n := utf8.DecodeRune(data)
		if ch == utf8.RuneError && n <= 1 {
			return "", 0, fmt.Errorf("invalid UTF-8 encoding in string")
		}
		sb = append(sb, ch)
		readBytes += n
		data = data[n:]
	}

	return string(sb), readBytes, nil
}

func decBinaryStrings(data []byte) ([]string, int, error) {
	count, readBytes, err := decBinaryInt(data)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding string count: %w", err)
	}
	data = data[readBytes:]

	out := make([]string, count)
	for i := 0; i < count; i++ {
		s, n, err := decBinaryString(data)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding string %d: %w", i, err)
		}
		out[i] = s
		readBytes += n
		data = data[n:]
	}
	return out, readBytes, nil
}

// MarshalBinary encodes g as: start symbol, terminal vocabulary, then every
// production as lhs followed by its rhs symbol list.
func (g Grammar) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, encBinaryString(g.Start)...)
	data = append(data, encBinaryStrings(g.Terminals())...)
	data = append(data, encBinaryInt(len(g.productions))...)
	for _, r := range g.productions {
		data = append(data, encBinaryString(r.lhs)...)
		data = append(data, encBinaryStrings([]string(r.rhs))...)
	}

	return data, nil
}

// UnmarshalBinary decodes a Grammar encoded by MarshalBinary. Terminals not
// mentioned in any production rhs (possible if a grammar declares a
// terminal it never uses) are restored from the separately-encoded
// vocabulary list; non-terminals are re-derived from productions' lhs.
func (g *Grammar) UnmarshalBinary(data []byte) error {
	start, n, err := decBinaryString(data)
	if err != nil {
		return fmt.Errorf("decoding start symbol: %w", err)
	}
	data = data[n:]

	terms, n, err := decBinaryStrings(data)
	if err != nil {
		return fmt.Errorf("decoding terminal vocabulary: %w", err)
	}
	data = data[n:]

	prodCount, n, err := decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("decoding production count: %w", err)
	}
	data = data[n:]

	out := Grammar{Start: start, terminals: map[string]bool{}, nonTerms: map[string]bool{}}
	for _, t := range terms {
		out.terminals[t] = true
	}

	for i := 0; i < prodCount; i++ {
		lhs, n, err := decBinaryString(data)
		if err != nil {
			return fmt.Errorf("decoding production %d lhs: %w", i, err)
		}
		data = data[n:]

		rhs, n, err := decBinaryStrings(data)
		if err != nil {
			return fmt.Errorf("decoding production %d rhs: %w", i, err)
		}
		data = data[n:]

		out.nonTerms[lhs] = true
		out.productions = append(out.productions, record{lhs: lhs, rhs: Production(rhs)})
	}

	*g = out
	return nil
}
