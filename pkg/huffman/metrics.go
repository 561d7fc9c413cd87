package huffman

import (
	"math"
	"math/bits"
)

// Stats compares the Huffman code of an input with its entropy and with a fixed-length code.
type Stats struct {
	NumSymbols           uint64  `json:"num_symbols"`
	Distinct             int     `json:"distinct"`
	FixedBitsPerSymbol   float64 `json:"fixed_code_bits_per_symbol"`
	EntropyBitsPerSymbol float64 `json:"entropy_bits_per_symbol"`
	Perplexity           float64 `json:"perplexity"`
	HuffmanBitsPerSymbol float64 `json:"huffman_bits_per_symbol"`
	TotalBitsFixed       float64 `json:"total_bits_fixed"`
	TotalBitsHuffman     float64 `json:"total_bits_huffman"`
	CompressionRatio     float64 `json:"compression_ratio"`
	CompressionFactor    float64 `json:"compression_factor"`
	SavingPercentage     float64 `json:"saving_percentage"`
}

// FixedCodeLength is ceil(log2(distinct)), with one bit for a single-symbol alphabet.
func FixedCodeLength(distinct int) int {
	if distinct <= 1 {
		return 1
	}
	return bits.Len(uint(distinct - 1))
}

// ComputeStats derives the statistics of ft coded with cb. An empty table yields the zero
// Stats. Symbols of ft missing from cb are charged zero bits.
func ComputeStats(ft *FrequencyTable, cb *Codebook) Stats {
	st := Stats{NumSymbols: ft.Total(), Distinct: ft.Distinct()}
	if st.NumSymbols == 0 {
		return st
	}

	total := float64(st.NumSymbols)
	var huffBits uint64
	for _, s := range ft.order {
		c := ft.counts[s]
		p := float64(c) / total
		st.EntropyBitsPerSymbol += p * math.Log2(1/p)
		code, _ := cb.Code(s)
		huffBits += c * uint64(len(code))
	}
	if st.Distinct == 1 {
		st.EntropyBitsPerSymbol = 0
	}
	st.Perplexity = math.Exp2(st.EntropyBitsPerSymbol)

	st.FixedBitsPerSymbol = float64(FixedCodeLength(st.Distinct))
	st.TotalBitsFixed = total * st.FixedBitsPerSymbol
	st.TotalBitsHuffman = float64(huffBits)
	st.HuffmanBitsPerSymbol = st.TotalBitsHuffman / total
	if st.TotalBitsHuffman > 0 {
		st.CompressionRatio = st.TotalBitsFixed / st.TotalBitsHuffman
	}
	st.CompressionFactor = st.TotalBitsHuffman / st.TotalBitsFixed
	st.SavingPercentage = 1 - st.CompressionFactor
	return st
}
