package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"huffman_codec_go/internal/model"
)

func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS artifacts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  codebook TEXT NOT NULL,
  encoded BYTEA NOT NULL,
  symbols BIGINT NOT NULL,
  bits BIGINT NOT NULL,
  stats JSONB NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
)`)
	return err
}

type artifactRepoPostgres struct {
	pool *pgxpool.Pool
}

func NewArtifactRepoPostgres(pool *pgxpool.Pool) ArtifactRepo {
	return &artifactRepoPostgres{pool: pool}
}

const artifactColumns = `id, name, codebook, encoded, symbols, bits, stats, created_at`

func (r *artifactRepoPostgres) Save(ctx context.Context, a *model.Artifact) error {
	stats, err := json.Marshal(a.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO artifacts (`+artifactColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`,
		a.ID, a.Name, a.Codebook, a.Encoded, int64(a.Symbols), int64(a.Bits), string(stats), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert artifact: %w", err)
	}
	return nil
}

func (r *artifactRepoPostgres) FindByID(ctx context.Context, id string) (*model.Artifact, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+artifactColumns+` FROM artifacts WHERE id = $1`, id)
	a, err := scanArtifact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *artifactRepoPostgres) List(ctx context.Context) ([]*model.Artifact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+artifactColumns+` FROM artifacts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var out []*model.Artifact
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanArtifact(row pgx.Row) (*model.Artifact, error) {
	var (
		a             model.Artifact
		symbols, bits int64
		stats         []byte
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Codebook, &a.Encoded, &symbols, &bits, &stats, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stats, &a.Stats); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	a.Symbols, a.Bits = uint64(symbols), uint64(bits)
	return &a, nil
}
