package records

import (
	"context"
	"fmt"
	"log/slog"

	fsstore "despesabot/internal/records/firestore"
	"despesabot/internal/records/memory"
	"despesabot/internal/storage"
)

const (
	MemoryBackend    = "memory"
	SQLiteBackend    = "sqlite"
	FirestoreBackend = "firestore"
)

// Config selects and parameterizes the store backend.
type Config struct {
	Backend string

	SQLiteDBPath string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirestoreCollection      string
}

// Open builds the configured store. The returned cleanup func is always
// safe to call, even for backends with nothing to close.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	switch cfg.Backend {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		slog.Info("Initialized SQLite record store", "db_path", cfg.SQLiteDBPath)
		return repo, repo.Close, nil

	case FirestoreBackend:
		store, err := fsstore.New(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile, cfg.FirestoreCollection)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize firestore backend: %w", err)
		}
		slog.Info("Initialized Firestore record store",
			"project_id", cfg.FirestoreProjectID,
			"collection", cfg.FirestoreCollection)
		return store, store.Close, nil

	case MemoryBackend:
		slog.Info("Initialized in-memory record store")
		return memory.New(), func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("unsupported record store backend: %s", cfg.Backend)
}
