package retrieval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const searchTimeout = 10 * time.Second

// PostgresIndex stores policy documents with pgvector embeddings and serves
// cosine-distance top-k search. The pool must have pgvector types registered.
type PostgresIndex struct {
	pool     *pgxpool.Pool
	embedder Embedder
	topK     int
}

func NewPostgresIndex(ctx context.Context, pool *pgxpool.Pool, embedder Embedder, dim, topK int) (*PostgresIndex, error) {
	if topK <= 0 {
		topK = 3
	}

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector;`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`, dim),
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("init documents schema failed on %q: %w", stmt, err)
		}
	}

	return &PostgresIndex{pool: pool, embedder: embedder, topK: topK}, nil
}

func (x *PostgresIndex) Add(ctx context.Context, name, content string) error {
	emb, err := x.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("embed document %q: %w", name, err)
	}

	_, err = x.pool.Exec(ctx,
		`INSERT INTO documents (id, name, content, embedding) VALUES ($1, $2, $3, $4)`,
		uuid.NewString(),
		name,
		content,
		pgvector.NewVector(emb),
	)
	if err != nil {
		return fmt.Errorf("insert document %q: %w", name, err)
	}
	return nil
}

func (x *PostgresIndex) Retrieve(ctx context.Context, query string) ([]Passage, error) {
	emb, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	queryCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	vec := pgvector.NewVector(emb)
	rows, err := x.pool.Query(queryCtx,
		`SELECT content, embedding <=> $1 AS distance
		 FROM documents ORDER BY embedding <=> $1 LIMIT $2`,
		vec,
		x.topK,
	)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var out []Passage
	for rows.Next() {
		var p Passage
		if err := rows.Scan(&p.Content, &p.Distance); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}
	return out, nil
}
