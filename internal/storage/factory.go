// internal/storage/factory.go
package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/carlaops/carpark/internal/database"
	"github.com/carlaops/carpark/internal/storage/jsonfile"
	"github.com/carlaops/carpark/internal/storage/websocket"
)

// NewBackend creates a storage backend based on configuration.
func NewBackend(cfg Config, log zerolog.Logger, slogger *slog.Logger) (Backend, error) {
	switch cfg.Type {
	case "jsonfile":
		return jsonfile.New(cfg.OutputDir, cfg.CompressOutput), nil
	case "database":
		return database.NewManager(log, filepath.Join(cfg.OutputDir, "carpark.db")), nil
	case "websocket":
		return websocket.New(websocket.Config{
			URL:    cfg.WebsocketURL,
			Secret: cfg.WebsocketSecret,
		}, slogger), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
