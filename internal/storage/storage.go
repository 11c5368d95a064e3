// internal/storage/storage.go
package storage

import "github.com/carlaops/carpark/pkg/core"

// Backend is the interface all spawn-record stores must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Batch management
	StartBatch(info core.BatchInfo) error

	// Record writing
	RecordSpawn(rec core.SpawnRecord) error
	RecordLine(line core.ParkingLine, report core.LineReport) error

	// LoadBatch reads back the spawn records of a stored batch, in original
	// order, for replaying without re-running the generator. ref is
	// backend-specific: a file path or a batch ID.
	LoadBatch(ref string) ([]core.SpawnRecord, error)
}

// Config selects and parameterises a storage backend.
type Config struct {
	Type           string // "jsonfile", "database" or "websocket"
	OutputDir      string
	CompressOutput bool

	// websocket backend only
	WebsocketURL    string
	WebsocketSecret string
}
