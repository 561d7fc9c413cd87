/*
Package huffman implements a static Huffman coder over byte symbols: frequency counting,
deterministic tree construction, a textual codebook, a packed bitstream encoder and a
count-bounded decoder.

Bits are packed most significant first. The last byte of an encoded stream is padded with
zero bits, so the symbol count must travel alongside the payload (see Container).
*/
package huffman

// Symbol is one unit of the input alphabet.
type Symbol = byte

// FrequencyTable counts symbols and remembers the order in which they were first seen.
// Symbols with a zero count are never stored.
type FrequencyTable struct {
	counts map[Symbol]uint64
	order  []Symbol
	total  uint64
}

// CountFrequencies builds the table for symbols. It returns ErrEmptyInput, together with
// an empty usable table, when symbols has zero length.
func CountFrequencies(symbols []Symbol) (*FrequencyTable, error) {
	ft := &FrequencyTable{counts: make(map[Symbol]uint64)}
	if len(symbols) == 0 {
		return ft, ErrEmptyInput
	}
	for _, s := range symbols {
		ft.add(s, 1)
	}
	return ft, nil
}

func (ft *FrequencyTable) add(s Symbol, n uint64) {
	if n == 0 {
		return
	}
	if _, ok := ft.counts[s]; !ok {
		ft.order = append(ft.order, s)
	}
	ft.counts[s] += n
	ft.total += n
}

// Count returns the number of occurrences of s.
func (ft *FrequencyTable) Count(s Symbol) uint64 { return ft.counts[s] }

// Total is the length of the counted input.
func (ft *FrequencyTable) Total() uint64 { return ft.total }

// Distinct is the alphabet size.
func (ft *FrequencyTable) Distinct() int { return len(ft.order) }

// Symbols returns the alphabet in first-seen order.
func (ft *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, len(ft.order))
	copy(out, ft.order)
	return out
}
