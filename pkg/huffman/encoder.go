package huffman

import (
	"bytes"
	"sync"

	"github.com/icza/bitio"
)

// EncodedStream is a packed bit sequence. Data is zero padded to a whole byte; Bits counts
// the valid bits and Symbols the symbols they encode.
type EncodedStream struct {
	Data    []byte
	Bits    uint64
	Symbols uint64
}

// Encode appends the code of every symbol, in input order, to a fresh bit buffer.
func Encode(symbols []Symbol, cb *Codebook) (*EncodedStream, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	out := &EncodedStream{Symbols: uint64(len(symbols))}
	for i, s := range symbols {
		chunks, ok := cb.chunks[s]
		if !ok {
			return nil, &UnknownSymbolError{Symbol: s, Position: i}
		}
		for _, c := range chunks {
			if err := w.WriteBits(c.val, c.n); err != nil {
				return nil, err
			}
			out.Bits += uint64(c.n)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	out.Data = buf.Bytes()
	return out, nil
}

// EncodeChunks encodes fixed-size chunks of symbols concurrently against the shared codebook
// and joins them in order. The result is identical to Encode.
func EncodeChunks(symbols []Symbol, cb *Codebook, chunkSize int) (*EncodedStream, error) {
	if chunkSize <= 0 || len(symbols) <= chunkSize {
		return Encode(symbols, cb)
	}

	n := (len(symbols) + chunkSize - 1) / chunkSize
	parts := make([]*EncodedStream, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		lo := i * chunkSize
		hi := min(lo+chunkSize, len(symbols))
		wg.Add(1)
		go func(i, lo, hi int) {
			defer wg.Done()
			parts[i], errs[i] = Encode(symbols[lo:hi], cb)
		}(i, lo, hi)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			if use, ok := err.(*UnknownSymbolError); ok {
				use.Position += i * chunkSize
			}
			return nil, err
		}
	}
	return concat(parts)
}

// concat joins streams bit-exactly, dropping the padding of every part but the last.
func concat(parts []*EncodedStream) (*EncodedStream, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	out := &EncodedStream{}
	for _, p := range parts {
		full := p.Bits / 8
		for _, b := range p.Data[:full] {
			if err := w.WriteByte(b); err != nil {
				return nil, err
			}
		}
		if rest := uint8(p.Bits % 8); rest > 0 {
			if err := w.WriteBits(uint64(p.Data[full]>>(8-rest)), rest); err != nil {
				return nil, err
			}
		}
		out.Bits += p.Bits
		out.Symbols += p.Symbols
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	out.Data = buf.Bytes()
	return out, nil
}
