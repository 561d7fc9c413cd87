package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for a zero-length symbol sequence. Callers treat it as
	// non-fatal and produce empty artifacts.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrMalformedCodebook is matched by every *MalformedCodebookError.
	ErrMalformedCodebook = errors.New("huffman: malformed codebook")
	// ErrUnknownSymbol is matched by every *UnknownSymbolError.
	ErrUnknownSymbol = errors.New("huffman: unknown symbol")
	// ErrTruncatedStream is matched by every *TruncatedStreamError.
	ErrTruncatedStream = errors.New("huffman: truncated stream")
	// ErrInvalidCode is matched by every *InvalidCodeError.
	ErrInvalidCode = errors.New("huffman: invalid code")
	// ErrChecksumMismatch is matched by every *ChecksumMismatchError.
	ErrChecksumMismatch = errors.New("huffman: checksum mismatch")
	// ErrBadContainer reports an encoded file whose header cannot be read.
	ErrBadContainer = errors.New("huffman: bad encoded container")
	// ErrNegativeCount is returned when decoding is asked for fewer than zero symbols.
	ErrNegativeCount = errors.New("huffman: negative symbol count")
)

// MalformedCodebookError locates the codebook line that failed to parse.
type MalformedCodebookError struct {
	Line   int
	Reason string
}

func (e *MalformedCodebookError) Error() string {
	return fmt.Sprintf("huffman: malformed codebook: line %d: %s", e.Line, e.Reason)
}

func (e *MalformedCodebookError) Is(target error) bool { return target == ErrMalformedCodebook }

// UnknownSymbolError means the codebook does not cover the input.
type UnknownSymbolError struct {
	Symbol   Symbol
	Position int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("huffman: symbol %q at position %d has no code", e.Symbol, e.Position)
}

func (e *UnknownSymbolError) Is(target error) bool { return target == ErrUnknownSymbol }

// TruncatedStreamError means the bits ran out before Expected symbols were decoded.
type TruncatedStreamError struct {
	Decoded  int
	Expected int
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("huffman: stream truncated after %d of %d symbols", e.Decoded, e.Expected)
}

func (e *TruncatedStreamError) Is(target error) bool { return target == ErrTruncatedStream }

// InvalidCodeError means the bits ending at BitOffset follow no path in the code trie.
type InvalidCodeError struct {
	BitOffset int
	Decoded   int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("huffman: no code matches bits ending at offset %d (decoded %d symbols)", e.BitOffset, e.Decoded)
}

func (e *InvalidCodeError) Is(target error) bool { return target == ErrInvalidCode }

// ChecksumMismatchError means the decoded symbols do not hash to the value in the header.
type ChecksumMismatchError struct {
	Want, Got uint64
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("huffman: checksum mismatch: header %016x, decoded %016x", e.Want, e.Got)
}

func (e *ChecksumMismatchError) Is(target error) bool { return target == ErrChecksumMismatch }
