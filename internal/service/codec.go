package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"huffman_codec_go/internal/model"
	"huffman_codec_go/internal/pipeline"
	"huffman_codec_go/internal/repo"
	"huffman_codec_go/pkg/huffman"
	"huffman_codec_go/pkg/logger"
)

// CodecService encodes uploads into stored artifacts and decodes them back. Parsed
// codebooks are cached by the hash of their text.
type CodecService struct {
	repo      repo.ArtifactRepo
	logger    logger.Logger
	codebooks *lru.Cache[uint64, *huffman.Codebook]
	chunkSize int
	now       func() time.Time
}

func NewCodecService(r repo.ArtifactRepo, l logger.Logger, cacheSize, chunkSize int) (*CodecService, error) {
	cache, err := lru.New[uint64, *huffman.Codebook](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("codebook cache: %w", err)
	}
	return &CodecService{
		repo:      r,
		logger:    l,
		codebooks: cache,
		chunkSize: chunkSize,
		now:       time.Now,
	}, nil
}

// Encode builds and stores the artifact for data. Identical uploads share one ID.
func (s *CodecService) Encode(ctx context.Context, name string, data []byte) (*model.Artifact, error) {
	enc, err := pipeline.EncodeBytes(name, data, pipeline.Options{ChunkSize: s.chunkSize, Log: s.logger})
	if err != nil {
		return nil, err
	}
	codebook := enc.CodebookText()
	encoded := enc.ContainerBytes()

	a := &model.Artifact{
		ID:        fmt.Sprintf("%016x", xxhash.Sum64(encoded)^xxhash.Sum64(codebook)),
		Name:      name,
		Codebook:  string(codebook),
		Encoded:   encoded,
		Symbols:   enc.Container.Symbols,
		Bits:      enc.Container.Bits,
		Stats:     enc.Stats,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.codebooks.Add(xxhash.Sum64(codebook), enc.Codebook)
	s.logger.Infof("artifact saved: %s (%d symbols, %d bits)", a.ID, a.Symbols, a.Bits)
	return a, nil
}

// Decode recovers the bytes of an encoded file with the given codebook text.
func (s *CodecService) Decode(ctx context.Context, codebook string, encoded []byte) ([]byte, error) {
	cb, err := s.codebook(codebook)
	if err != nil {
		return nil, err
	}
	out, err := pipeline.DecodeWith(encoded, cb)
	fields := []logger.Field{logger.F("num_decoded_symbols", len(out)), logger.F("status", "ok")}
	if err != nil {
		fields[1] = logger.F("status", "error")
		s.logger.ErrorEvent("metrics", "summary", append(fields, logger.F("error", err))...)
		return nil, err
	}
	s.logger.Event("metrics", "summary", fields...)
	return out, nil
}

// DecodeArtifact decodes a stored artifact.
func (s *CodecService) DecodeArtifact(ctx context.Context, id string) ([]byte, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Decode(ctx, a.Codebook, a.Encoded)
}

func (s *CodecService) codebook(text string) (*huffman.Codebook, error) {
	key := xxhash.Sum64String(text)
	if cb, ok := s.codebooks.Get(key); ok {
		return cb, nil
	}
	cb, err := huffman.ParseCodebook(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("codebook: %w", err)
	}
	s.codebooks.Add(key, cb)
	return cb, nil
}

// CachedCodebooks is the number of parsed codebooks held in memory.
func (s *CodecService) CachedCodebooks() int { return s.codebooks.Len() }

func (s *CodecService) GetByID(ctx context.Context, id string) (*model.Artifact, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CodecService) List(ctx context.Context) ([]*model.Artifact, error) {
	return s.repo.List(ctx)
}
