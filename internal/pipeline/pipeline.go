package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"huffman_codec_go/pkg/huffman"
	"huffman_codec_go/pkg/logger"
)

// Options tunes a pipeline run. The zero value encodes in one piece and logs nothing.
type Options struct {
	ChunkSize int
	Log       logger.Logger
}

func (o Options) log() logger.Logger {
	if o.Log == nil {
		return logger.Nop()
	}
	return o.Log
}

// Encoded holds the artifacts of one encode run.
type Encoded struct {
	Codebook  *huffman.Codebook
	Container *huffman.Container
	Stats     huffman.Stats
}

// CodebookText is the serialized codebook.
func (e *Encoded) CodebookText() []byte {
	return []byte(e.Codebook.String())
}

// ContainerBytes is the serialized encoded file.
func (e *Encoded) ContainerBytes() []byte {
	var buf bytes.Buffer
	_, _ = e.Container.WriteTo(&buf)
	return buf.Bytes()
}

// EncodeBytes builds the codebook for input, encodes it and reports a metrics summary.
// Empty input produces an empty codebook and an empty stream.
func EncodeBytes(name string, input []byte, opts Options) (*Encoded, error) {
	log := opts.log()
	cb, ft, err := huffman.Build(input)
	switch {
	case errors.Is(err, huffman.ErrEmptyInput):
		log.Event("encoder", "empty_input", logger.F("input_file", name))
	case err != nil:
		return nil, err
	}

	es, err := huffman.EncodeChunks(input, cb, opts.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	out := &Encoded{
		Codebook:  cb,
		Container: huffman.NewContainer(es, input),
		Stats:     huffman.ComputeStats(ft, cb),
	}
	log.Event("metrics", "summary", append([]logger.Field{logger.F("input_file", name)}, StatsFields(out.Stats)...)...)
	return out, nil
}

// StatsFields lists the metrics summary fields in reporting order.
func StatsFields(st huffman.Stats) []logger.Field {
	return []logger.Field{
		logger.F("num_symbols", st.NumSymbols),
		logger.F("fixed_code_bits_per_symbol", st.FixedBitsPerSymbol),
		logger.F("entropy_bits_per_symbol", st.EntropyBitsPerSymbol),
		logger.F("perplexity", st.Perplexity),
		logger.F("huffman_bits_per_symbol", st.HuffmanBitsPerSymbol),
		logger.F("total_bits_fixed", st.TotalBitsFixed),
		logger.F("total_bits_huffman", st.TotalBitsHuffman),
		logger.F("compression_ratio", st.CompressionRatio),
		logger.F("compression_factor", st.CompressionFactor),
		logger.F("saving_percentage", st.SavingPercentage),
	}
}

// DecodeBytes parses a codebook and an encoded file and recovers the original bytes.
func DecodeBytes(encoded, codebook []byte) ([]byte, error) {
	cb, err := huffman.ParseCodebook(bytes.NewReader(codebook))
	if err != nil {
		return nil, fmt.Errorf("codebook: %w", err)
	}
	return DecodeWith(encoded, cb)
}

// DecodeWith decodes with an already parsed codebook. On a decode failure the symbols
// recovered before it are returned with the error.
func DecodeWith(encoded []byte, cb *huffman.Codebook) ([]byte, error) {
	c, err := huffman.ReadContainer(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("encoded file: %w", err)
	}
	out, err := c.Decode(cb)
	if err != nil {
		return out, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}
