package model

import (
	"time"

	"huffman_codec_go/pkg/huffman"
)

// Artifact is one persisted encode result: the codebook/encoded-file pair plus its metrics.
type Artifact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Codebook  string        `json:"codebook"`
	Encoded   []byte        `json:"encoded"`
	Symbols   uint64        `json:"symbols"`
	Bits      uint64        `json:"bits"`
	Stats     huffman.Stats `json:"stats"`
	CreatedAt time.Time     `json:"created_at"`
}
