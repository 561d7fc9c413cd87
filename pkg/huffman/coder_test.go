package huffman

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeScenario(t *testing.T) {
	input := []byte("AAABBC")
	cb, _, err := Build(input)
	require.NoError(t, err)

	es, err := Encode(input, cb)
	require.NoError(t, err)
	require.Equal(t, uint64(9), es.Bits)
	require.Equal(t, uint64(6), es.Symbols)
	// 0 0 0 11 11 10 | 0000000 padding
	require.Equal(t, []byte{0x1f, 0x00}, es.Data)

	out, err := Decode(es.Data, cb, len(input))
	require.NoError(t, err)
	require.Equal(t, input, out)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	for i := 0; i < 30; i++ {
		input := []byte(randomInput(rng, 1+rng.Intn(4000), 1+rng.Intn(256)))
		cb, _, err := Build(input)
		require.NoError(t, err)

		es, err := Encode(input, cb)
		require.NoError(t, err)
		require.Equal(t, int((es.Bits+7)/8), len(es.Data))

		out, err := Decode(es.Data, cb, len(input))
		require.NoError(t, err)
		require.Equal(t, input, out)

		out, err = DecodeStream(es, cb)
		require.NoError(t, err)
		require.Equal(t, input, out)
	}
}

func TestSingleSymbolRoundTrip(t *testing.T) {
	input := bytes.Repeat([]byte{'q'}, 13)
	cb, _, err := Build(input)
	require.NoError(t, err)
	code, _ := cb.Code('q')
	require.Equal(t, "0", code)

	es, err := Encode(input, cb)
	require.NoError(t, err)
	require.Equal(t, uint64(13), es.Bits)
	require.Equal(t, []byte{0, 0}, es.Data)

	out, err := Decode(es.Data, cb, len(input))
	require.NoError(t, err)
	require.Equal(t, input, out)
}

func TestEncodeEmpty(t *testing.T) {
	cb, _, err := Build(nil)
	require.ErrorIs(t, err, ErrEmptyInput)

	es, err := Encode(nil, cb)
	require.NoError(t, err)
	require.Zero(t, es.Bits)
	require.Empty(t, es.Data)

	out, err := Decode(es.Data, cb, 0)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestEncodeUnknownSymbol(t *testing.T) {
	cb, _, err := Build([]byte("abc"))
	require.NoError(t, err)

	_, err = Encode([]byte("abcd"), cb)
	require.ErrorIs(t, err, ErrUnknownSymbol)
	var use *UnknownSymbolError
	require.ErrorAs(t, err, &use)
	require.Equal(t, Symbol('d'), use.Symbol)
	require.Equal(t, 3, use.Position)
}

func TestEncodeChunks(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	input := []byte(randomInput(rng, 10000, 90))
	cb, _, err := Build(input)
	require.NoError(t, err)

	want, err := Encode(input, cb)
	require.NoError(t, err)
	for _, size := range []int{0, 1, 7, 64, 1000, 9999, 20000} {
		got, err := EncodeChunks(input, cb, size)
		require.NoError(t, err)
		require.Equal(t, want, got, "chunk size %d", size)
	}

	bad := append([]byte{}, input...)
	bad[5000] = 0xff
	_, err = EncodeChunks(bad, cb, 64)
	var use *UnknownSymbolError
	require.ErrorAs(t, err, &use)
	require.Equal(t, 5000, use.Position)
}

func TestDecodeTruncated(t *testing.T) {
	input := []byte("AAABBC")
	cb, _, err := Build(input)
	require.NoError(t, err)
	es, err := Encode(input, cb)
	require.NoError(t, err)

	out, err := Decode(es.Data[:len(es.Data)-1], cb, len(input))
	require.ErrorIs(t, err, ErrTruncatedStream)
	var tse *TruncatedStreamError
	require.ErrorAs(t, err, &tse)
	require.Equal(t, 6, tse.Expected)
	require.Equal(t, 5, tse.Decoded)
	require.Len(t, out, 5)
}

func TestDecodeTruncatedRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	for i := 0; i < 20; i++ {
		input := []byte(randomInput(rng, 1+rng.Intn(3000), 1+rng.Intn(200)))
		cb, _, err := Build(input)
		require.NoError(t, err)
		es, err := Encode(input, cb)
		require.NoError(t, err)

		_, err = Decode(es.Data[:len(es.Data)-1], cb, len(input))
		require.ErrorIs(t, err, ErrTruncatedStream)
	}
}

func TestDecodeIgnoresPadding(t *testing.T) {
	cb, _, err := Build([]byte("AAABBC"))
	require.NoError(t, err)
	// Trailing ones in the padding would decode to B if they were read.
	out, err := Decode([]byte{0x1f, 0x7f}, cb, 6)
	require.NoError(t, err)
	require.Equal(t, []byte("AAABBC"), out)
}

func TestDecodeInvalidCode(t *testing.T) {
	cb, err := ParseCodebookString("\"a\"\t0\n\"b\"\t10\n")
	require.NoError(t, err)

	// 0 10 11: the last pair has no path.
	_, err = Decode([]byte{0b01011000}, cb, 3)
	require.ErrorIs(t, err, ErrInvalidCode)
	var ice *InvalidCodeError
	require.ErrorAs(t, err, &ice)
	require.Equal(t, 4, ice.BitOffset)
	require.Equal(t, 2, ice.Decoded)

	single, err := ParseCodebookString("\"a\"\t0\n")
	require.NoError(t, err)
	_, err = Decode([]byte{0x80}, single, 1)
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestDecodeCountBeyondData(t *testing.T) {
	cb, _, err := Build([]byte("AAABBC"))
	require.NoError(t, err)

	// A count no input could satisfy must fail on the data, not on allocation.
	out, err := Decode([]byte{0x1f, 0x00}, cb, 1<<62)
	require.ErrorIs(t, err, ErrTruncatedStream)
	require.Len(t, out, 13)

	_, err = Decode([]byte{0x1f}, cb, -1)
	require.ErrorIs(t, err, ErrNegativeCount)
}

func TestDecodeStreamRejectsCounts(t *testing.T) {
	cb, _, err := Build([]byte("AAABBC"))
	require.NoError(t, err)
	data := []byte{0x1f, 0x00}

	for _, es := range []*EncodedStream{
		{Data: data, Bits: 17, Symbols: 6},
		{Data: data, Bits: 1 << 63, Symbols: 6},
		{Data: data, Bits: 9, Symbols: 10},
		{Data: data, Bits: 9, Symbols: 1 << 63},
	} {
		out, err := DecodeStream(es, cb)
		require.ErrorIs(t, err, ErrTruncatedStream, "bits=%d symbols=%d", es.Bits, es.Symbols)
		require.Empty(t, out)
	}
}
