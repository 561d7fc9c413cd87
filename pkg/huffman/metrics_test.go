package huffman

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func TestFixedCodeLength(t *testing.T) {
	for distinct, want := range map[int]int{0: 1, 1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 17: 5, 128: 7, 129: 8, 256: 8} {
		require.Equal(t, want, FixedCodeLength(distinct), "distinct=%d", distinct)
	}
}

func TestComputeStatsScenario(t *testing.T) {
	input := []byte("AAABBC")
	cb, ft, err := Build(input)
	require.NoError(t, err)

	st := ComputeStats(ft, cb)
	entropy := 0.5*math.Log2(2) + (1.0/3)*math.Log2(3) + (1.0/6)*math.Log2(6)
	require.Equal(t, uint64(6), st.NumSymbols)
	require.Equal(t, 3, st.Distinct)
	require.InDelta(t, entropy, st.EntropyBitsPerSymbol, eps)
	require.InDelta(t, math.Exp2(entropy), st.Perplexity, eps)
	require.Equal(t, 2.0, st.FixedBitsPerSymbol)
	require.Equal(t, 1.5, st.HuffmanBitsPerSymbol)
	require.Equal(t, 12.0, st.TotalBitsFixed)
	require.Equal(t, 9.0, st.TotalBitsHuffman)
	require.InDelta(t, 12.0/9.0, st.CompressionRatio, eps)
	require.InDelta(t, 0.75, st.CompressionFactor, eps)
	require.InDelta(t, 0.25, st.SavingPercentage, eps)
}

func TestComputeStatsSingleSymbol(t *testing.T) {
	cb, ft, err := Build([]byte("kkkkkkk"))
	require.NoError(t, err)

	st := ComputeStats(ft, cb)
	require.Equal(t, 0.0, st.EntropyBitsPerSymbol)
	require.Equal(t, 1.0, st.Perplexity)
	require.Equal(t, 1.0, st.FixedBitsPerSymbol)
	require.Equal(t, 1.0, st.HuffmanBitsPerSymbol)
	require.Equal(t, 1.0, st.CompressionRatio)
	require.Equal(t, 0.0, st.SavingPercentage)
}

func TestComputeStatsEmpty(t *testing.T) {
	cb, ft, err := Build(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Equal(t, Stats{}, ComputeStats(ft, cb))
}

func TestEntropyBound(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	for i := 0; i < 50; i++ {
		cb, ft, err := Build([]byte(randomInput(rng, 2+rng.Intn(5000), 2+rng.Intn(254))))
		require.NoError(t, err)
		if ft.Distinct() < 2 {
			continue
		}
		st := ComputeStats(ft, cb)
		require.GreaterOrEqual(t, st.HuffmanBitsPerSymbol+1e-9, st.EntropyBitsPerSymbol)
		// Huffman is within one bit of the entropy.
		require.Less(t, st.HuffmanBitsPerSymbol, st.EntropyBitsPerSymbol+1)
		require.LessOrEqual(t, st.HuffmanBitsPerSymbol, st.FixedBitsPerSymbol)
	}
}
