package huffman

import (
	"fmt"
	"math"
)

// bitReader reads bits most significant first and never past bits.
type bitReader struct {
	data []byte
	bits int
	pos  int
}

func newBitReader(b []byte, bits int) *bitReader {
	if limit := len(b) * 8; bits > limit || bits < 0 {
		bits = limit
	}
	return &bitReader{data: b, bits: bits}
}

func (br *bitReader) readBit() (uint8, bool) {
	if br.pos >= br.bits {
		return 0, false
	}
	v := br.data[br.pos/8] >> (7 - uint(br.pos%8)) & 1
	br.pos++
	return v, true
}

// Decode walks the code trie of cb bit by bit over data until expected symbols have been
// emitted. Bits after the last symbol, such as padding, are never read.
func Decode(data []byte, cb *Codebook, expected int) ([]Symbol, error) {
	out, _, err := decodeBits(data, len(data)*8, cb, expected)
	return out, err
}

// DecodeStream decodes es, reading at most es.Bits bits.
func DecodeStream(es *EncodedStream, cb *Codebook) ([]Symbol, error) {
	if err := checkCounts(es.Symbols, es.Bits, es.Data); err != nil {
		return nil, err
	}
	out, _, err := decodeBits(es.Data, int(es.Bits), cb, int(es.Symbols))
	return out, err
}

// checkCounts rejects recorded counts that data cannot hold: more bits than it carries,
// or more symbols than bits.
func checkCounts(symbols, bits uint64, data []byte) error {
	if bits > uint64(len(data))*8 || symbols > bits {
		return &TruncatedStreamError{Expected: int(min(symbols, math.MaxInt))}
	}
	return nil
}

func decodeBits(data []byte, nbits int, cb *Codebook, expected int) ([]Symbol, int, error) {
	if expected < 0 {
		return nil, 0, fmt.Errorf("%w: %d", ErrNegativeCount, expected)
	}
	br := newBitReader(data, nbits)
	// Every symbol costs at least one bit.
	out := make([]Symbol, 0, min(expected, br.bits))
	trie := cb.trie
	for len(out) < expected {
		cur := 0
		for !trie[cur].leaf {
			bit, ok := br.readBit()
			if !ok {
				return out, br.pos, &TruncatedStreamError{Decoded: len(out), Expected: expected}
			}
			cur = trie[cur].child[bit]
			if cur == noChild {
				return out, br.pos, &InvalidCodeError{BitOffset: br.pos - 1, Decoded: len(out)}
			}
		}
		out = append(out, trie[cur].sym)
	}
	return out, br.pos, nil
}
