package huffman

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

const (
	containerMagic   = "HUFE"
	containerVersion = 1

	// magic, version, symbol count, bit count, checksum
	containerHeaderSize = 4 + 1 + 8 + 8 + 8
)

// Container is the on-disk form of an encoded file: a little-endian header carrying the
// symbol count, the valid bit count and an xxhash64 of the original symbols, followed by
// the packed payload.
type Container struct {
	Symbols  uint64
	Bits     uint64
	Checksum uint64
	Payload  []byte
}

// Checksum hashes a symbol sequence the way containers record it.
func Checksum(symbols []Symbol) uint64 { return xxhash.Sum64(symbols) }

// NewContainer wraps es for the symbols it encodes.
func NewContainer(es *EncodedStream, symbols []Symbol) *Container {
	return &Container{
		Symbols:  es.Symbols,
		Bits:     es.Bits,
		Checksum: Checksum(symbols),
		Payload:  es.Data,
	}
}

// WriteTo writes the header and payload.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	var hdr [containerHeaderSize]byte
	copy(hdr[:4], containerMagic)
	hdr[4] = containerVersion
	binary.LittleEndian.PutUint64(hdr[5:], c.Symbols)
	binary.LittleEndian.PutUint64(hdr[13:], c.Bits)
	binary.LittleEndian.PutUint64(hdr[21:], c.Checksum)

	n, err := w.Write(hdr[:])
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(c.Payload)
	return int64(n + m), err
}

// ReadContainer parses a container. A payload shorter than the header declares is kept
// as is; decoding reports it as a truncated stream.
func ReadContainer(r io.Reader) (*Container, error) {
	br := bufio.NewReader(r)
	var hdr [containerHeaderSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short header", ErrBadContainer)
		}
		return nil, err
	}
	if string(hdr[:4]) != containerMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadContainer, hdr[:4])
	}
	if hdr[4] != containerVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadContainer, hdr[4])
	}
	c := &Container{
		Symbols:  binary.LittleEndian.Uint64(hdr[5:]),
		Bits:     binary.LittleEndian.Uint64(hdr[13:]),
		Checksum: binary.LittleEndian.Uint64(hdr[21:]),
	}
	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	c.Payload = payload
	return c, nil
}

// Decode recovers the symbols with cb and verifies them against the recorded checksum.
// Header counts the payload cannot hold are reported as a truncated stream before any
// decoding happens.
func (c *Container) Decode(cb *Codebook) ([]Symbol, error) {
	if err := checkCounts(c.Symbols, c.Bits, c.Payload); err != nil {
		return nil, err
	}
	out, _, err := decodeBits(c.Payload, int(c.Bits), cb, int(c.Symbols))
	if err != nil {
		return out, err
	}
	if got := Checksum(out); got != c.Checksum {
		return out, &ChecksumMismatchError{Want: c.Checksum, Got: got}
	}
	return out, nil
}
