package repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"huffman_codec_go/internal/model"
	"huffman_codec_go/pkg/huffman"
)

func sampleArtifacts() []*model.Artifact {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []*model.Artifact{
		{ID: "b", Name: "second", Codebook: "\"x\"\t0\n", Encoded: []byte("HUFE"), Symbols: 1, Bits: 1, CreatedAt: base.Add(time.Second)},
		{ID: "a", Name: "first", Codebook: "\"y\"\t0\n", Encoded: []byte{0}, Symbols: 2, Bits: 2,
			Stats: huffman.Stats{NumSymbols: 2, Distinct: 1, Perplexity: 1}, CreatedAt: base},
	}
}

func exerciseRepo(t *testing.T, r ArtifactRepo) {
	ctx := context.Background()
	for _, a := range sampleArtifacts() {
		require.NoError(t, r.Save(ctx, a))
	}

	got, err := r.FindByID(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "first", got.Name)
	require.Equal(t, uint64(2), got.Symbols)
	require.Equal(t, 1.0, got.Stats.Perplexity)

	// The first copy wins.
	dup := *got
	dup.Name = "replaced"
	require.NoError(t, r.Save(ctx, &dup))
	got, err = r.FindByID(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "first", got.Name)

	_, err = r.FindByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a", list[0].ID)
	require.Equal(t, "b", list[1].ID)
}

func TestArtifactRepoInMemory(t *testing.T) {
	exerciseRepo(t, NewArtifactRepoInMemory())
}

func TestArtifactRepoPostgres(t *testing.T) {
	dsn := os.Getenv("HUFF_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("HUFF_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE artifacts`)
	require.NoError(t, err)

	exerciseRepo(t, NewArtifactRepoPostgres(pool))
}

func TestOpenBadDSN(t *testing.T) {
	_, err := Open(context.Background(), "postgres://%zz")
	require.Error(t, err)
}
