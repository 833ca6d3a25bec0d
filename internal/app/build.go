package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/antoniostano/ingpt/internal/chat"
	"github.com/antoniostano/ingpt/internal/config"
	"github.com/antoniostano/ingpt/internal/httpapi"
	"github.com/antoniostano/ingpt/internal/llm"
	"github.com/antoniostano/ingpt/internal/observability"
	"github.com/antoniostano/ingpt/internal/retrieval"
	"github.com/antoniostano/ingpt/internal/store"
)

type BuildResult struct {
	Config     config.Config
	API        *httpapi.Server
	Controller *chat.Controller
	Store      store.Store
	Index      retrieval.Index
	Metrics    *observability.Metrics

	// Cleanup should be called on shutdown to release external resources (DB pool, etc).
	Cleanup func() error
}

// Build wires the full service graph. With DATABASE_URL set, both the session
// store and the document index share one connection pool; without it, both
// fall back to in-process implementations.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*BuildResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	var pool *pgxpool.Pool
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse database url: %w", err)
		}
		poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			return pgxvector.RegisterTypes(ctx, conn)
		}
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
	}

	sessionStore, err := store.NewStore(ctx, pool)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("session store init failed: %w", err)
	}

	embedder := retrieval.NewOllamaEmbedder(cfg.OllamaBaseURL, cfg.EmbedModel, cfg.GenerateTimeout)

	var index retrieval.Index
	if pool != nil {
		index, err = retrieval.NewPostgresIndex(ctx, pool, embedder, cfg.EmbeddingDim, cfg.RetrieveTopK)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("document index init failed: %w", err)
		}
		logger.Info("document index ready", "backend", "postgres", "dim", cfg.EmbeddingDim)
	} else {
		index, err = retrieval.NewMemoryIndex(embedder, cfg.RetrieveTopK)
		if err != nil {
			return nil, fmt.Errorf("document index init failed: %w", err)
		}
		logger.Info("document index ready", "backend", "memory")
	}

	generator := llm.NewOllamaClient(cfg.OllamaBaseURL, cfg.LLMModel, cfg.GenerateTimeout)

	controller := chat.NewController(sessionStore, index, generator, metrics, logger, cfg.ConfidenceThreshold)

	api := httpapi.New(cfg, controller, sessionStore, index, metrics, logger)

	cleanup := func() error {
		err := sessionStore.Close()
		if pool != nil {
			pool.Close()
		}
		return err
	}

	return &BuildResult{
		Config:     cfg,
		API:        api,
		Controller: controller,
		Store:      sessionStore,
		Index:      index,
		Metrics:    metrics,
		Cleanup:    cleanup,
	}, nil
}
