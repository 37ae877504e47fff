package parse

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/dekarrin/langfront/internal/langfront/grammar"
)

// This file gives Tables a binary encoding so internal/langfront/cache can
// persist a compiled table set alongside its grammar, rather than rebuilding
// the ACTION/GOTO tables on every invocation. It follows the
// same manual field-at-a-time style as grammar/binary.go, which in turn
// follows dekarrin/tunaq's internal/tunascript/binary.go.

func encBinaryInt(i int) []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutVarint(buf, int64(i))
	return buf[:n]
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

func encBinaryStrings(ss []string) []byte {
	enc := encBinaryInt(len(ss))
	for _, s := range ss {
		enc = append(enc, encBinaryString(s)...)
	}
	return enc
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

func encBinaryAction(a Action) []byte {
	data := encBinaryInt(int(a.Kind))
	data = append(data, encBinaryInt(a.State)...)
	data = append(data, encBinaryString(a.LHS)...)
	data = append(data, encBinaryStrings([]string(a.RHS))...)
	return data
}

func decBinaryAction(data []byte) (Action, int, error) {
	kind, n, err := decBinaryInt(data)
	if err != nil {
		return Action{}, 0, fmt.Errorf("decoding action kind: %w", err)
	}
	read := n
	data = data[n:]

	state, n, err := decBinaryInt(data)
	if err != nil {
		return Action{}, 0, fmt.Errorf("decoding action state: %w", err)
	}
	read += n
	data = data[n:]

	lhs, n, err := decBinaryString(data)
	if err != nil {
		return Action{}, 0, fmt.Errorf("decoding action lhs: %w", err)
	}
	read += n
	data = data[n:]

	rhs, n, err := decBinaryStrings(data)
	if err != nil {
		return Action{}, 0, fmt.Errorf("decoding action rhs: %w", err)
	}
	read += n

	return Action{Kind: ActionKind(kind), State: state, LHS: lhs, RHS: grammar.Production(rhs)}, read, nil
}

// MarshalBinary encodes t as: the underlying grammar, start state, state
// count, the ACTION table, the GOTO table, then the recorded shift/reduce
// conflicts.
func (t *Tables) MarshalBinary() ([]byte, error) {
	var data []byte

	gBytes, err := t.g.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding grammar: %w", err)
	}
	data = append(data, encBinaryInt(len(gBytes))...)
	data = append(data, gBytes...)

	data = append(data, encBinaryInt(t.start)...)
	data = append(data, encBinaryInt(t.numStates)...)

	data = append(data, encBinaryInt(len(t.action))...)
	for state, row := range t.action {
		data = append(data, encBinaryInt(state)...)
		data = append(data, encBinaryInt(len(row))...)
		for symbol, a := range row {
			data = append(data, encBinaryString(symbol)...)
			data = append(data, encBinaryAction(a)...)
		}
	}

	data = append(data, encBinaryInt(len(t.gotoTable))...)
	for state, row := range t.gotoTable {
		data = append(data, encBinaryInt(state)...)
		data = append(data, encBinaryInt(len(row))...)
		for symbol, to := range row {
			data = append(data, encBinaryString(symbol)...)
			data = append(data, encBinaryInt(to)...)
		}
	}

	data = append(data, encBinaryInt(len(t.conflicts))...)
	for _, c := range t.conflicts {
		data = append(data, encBinaryInt(c.State)...)
		data = append(data, encBinaryString(c.Symbol)...)
		data = append(data, encBinaryAction(c.Reduce)...)
	}

	return data, nil
}

// UnmarshalBinary decodes a Tables encoded by MarshalBinary.
func (t *Tables) UnmarshalBinary(data []byte) error {
	gLen, n, err := decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("decoding grammar length: %w", err)
	}
	data = data[n:]
	if len(data) < gLen {
		return fmt.Errorf("truncated grammar data")
	}

	var g grammar.Grammar
	if err := g.UnmarshalBinary(data[:gLen]); err != nil {
		return fmt.Errorf("decoding grammar: %w", err)
	}
	data = data[gLen:]

	start, n, err := decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("decoding start state: %w", err)
	}
	data = data[n:]

	numStates, n, err := decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("decoding state count: %w", err)
	}
	data = data[n:]

	out := &Tables{
		g:         g,
		start:     start,
		numStates: numStates,
		action:    map[int]map[string]Action{},
		gotoTable: map[int]map[string]int{},
	}

	actionStates, n, err := decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("decoding action state count: %w", err)
	}
	data = data[n:]

	for i := 0; i < actionStates; i++ {
		state, n, err := decBinaryInt(data)
		if err != nil {
			return fmt.Errorf("decoding action state %d: %w", i, err)
		}
		data = data[n:]

		rowLen, n, err := decBinaryInt(data)
		if err != nil {
			return fmt.Errorf("decoding action row length for state %d: %w", state, err)
		}
		data = data[n:]

		row := map[string]Action{}
		for j := 0; j < rowLen; j++ {
			symbol, n, err := decBinaryString(data)
			if err != nil {
				return fmt.Errorf("decoding action symbol for state %d: %w", state, err)
			}
			data = data[n:]

			a, n, err := decBinaryAction(data)
			if err != nil {
				return fmt.Errorf("decoding action for state %d symbol %d: %w", state, j, err)
			}
			data = data[n:]

			row[symbol] = a
		}
		out.action[state] = row
	}

	gotoStates, n, err := decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("decoding goto state count: %w", err)
	}
	data = data[n:]

	for i := 0; i < gotoStates; i++ {
		state, n, err := decBinaryInt(data)
		if err != nil {
			return fmt.Errorf("decoding goto state %d: %w", i, err)
		}
		data = data[n:]

		rowLen, n, err := decBinaryInt(data)
		if err != nil {
			return fmt.Errorf("decoding goto row length for state %d: %w", state, err)
		}
		data = data[n:]

		row := map[string]int{}
		for j := 0; j < rowLen; j++ {
			symbol, n, err := decBinaryString(data)
			if err != nil {
				return fmt.Errorf("decoding goto symbol for state %d: %w", state, err)
			}
			data = data[n:]

			to, n, err := decBinaryInt(data)
			if err != nil {
				return fmt.Errorf("decoding goto target for state %d symbol %d: %w", state, j, err)
			}
			data = data[n:]

			row[symbol] = to
		}
		out.gotoTable[state] = row
	}

	conflictCount, n, err := decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("decoding conflict count: %w", err)
	}
	data = data[n:]

	for i := 0; i < conflictCount; i++ {
		state, n, err := decBinaryInt(data)
		if err != nil {
			return fmt.Errorf("decoding conflict %d state: %w", i, err)
		}
		data = data[n:]

		symbol, n, err := decBinaryString(data)
		if err != nil {
			return fmt.Errorf("decoding conflict %d symbol: %w", i, err)
		}
		data = data[n:]

		reduce, n, err := decBinaryAction(data)
		if err != nil {
			return fmt.Errorf("decoding conflict %d reduce action: %w", i, err)
		}
		data = data[n:]

		out.conflicts = append(out.conflicts, Conflict{State: state, Symbol: symbol, Reduce: reduce})
	}

	*t = *out
	return nil
}
