package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/ticketdesk/internal/platform/timeouts"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage/memory"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage/postgres"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage/sqlite"
)

// Storage backend names accepted by StorageConfig.Backend.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// StorageConfig selects and locates the slot backend.
type StorageConfig struct {
	Backend     string
	DBPath      string
	PostgresDSN string
}

// SlotBackend is a slot store that owns resources.
type SlotBackend interface {
	storage.SlotStore
	Close() error
}

// OpenSlots opens the configured slot backend.
func OpenSlots(ctx context.Context, cfg StorageConfig) (SlotBackend, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StorageOpen)
	defer cancel()

	switch backend := strings.ToLower(strings.TrimSpace(cfg.Backend)); backend {
	case "", BackendSQLite:
		path := strings.TrimSpace(cfg.DBPath)
		if path == "" {
			path = filepath.Join("data", "ticketdesk.db")
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite slot store: %w", err)
		}
		return store, nil
	case BackendPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, fmt.Errorf("postgres dsn is required for the postgres backend")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres slot store: %w", err)
		}
		return store, nil
	case BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
