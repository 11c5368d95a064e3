// Package websocket streams batch data to a live viewer server as it is
// produced, so placements can be watched while the batch runs. The stream is
// write-only: replay needs one of the persistent backends.
package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/carlaops/carpark/pkg/core"
)

// Config holds WebSocket backend configuration.
type Config struct {
	URL    string
	Secret string
}

// Backend streams spawn batches over WebSocket.
type Backend struct {
	conn *connection
	cfg  Config
}

// New creates a new WebSocket storage backend.
func New(cfg Config, logger *slog.Logger) *Backend {
	return &Backend{
		conn: newConnection(logger),
		cfg:  cfg,
	}
}

// Init connects to the WebSocket server.
func (b *Backend) Init() error {
	return b.conn.dial(b.cfg.URL, b.cfg.Secret)
}

// Close signals end of batch and disconnects.
func (b *Backend) Close() error {
	if data, err := marshalEnvelope(TypeEndBatch, nil); err == nil {
		b.conn.send(data)
	}
	b.conn.mu.Lock()
	b.conn.cachedBatchMsg = nil
	b.conn.mu.Unlock()
	return b.conn.close()
}

// marshalEnvelope builds a JSON-encoded Envelope from a message type and payload.
func marshalEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
		}
	}
	env := Envelope{Type: msgType, Payload: raw}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", msgType, err)
	}
	return data, nil
}

// sendEnvelope marshals the payload into an Envelope and pushes it
// to the write loop (fire-and-forget).
func (b *Backend) sendEnvelope(msgType string, payload any) error {
	data, err := marshalEnvelope(msgType, payload)
	if err != nil {
		return err
	}
	b.conn.send(data)
	return nil
}

// StartBatch sends the batch header and waits for server ack.
func (b *Backend) StartBatch(info core.BatchInfo) error {
	data, err := marshalEnvelope(TypeStartBatch, info)
	if err != nil {
		return err
	}

	// Cache for reconnect replay.
	b.conn.mu.Lock()
	b.conn.cachedBatchMsg = data
	b.conn.mu.Unlock()

	return b.conn.sendAndWait(data, TypeStartBatch, ackTimeout)
}

// RecordSpawn streams one spawn record (fire-and-forget).
func (b *Backend) RecordSpawn(rec core.SpawnRecord) error {
	return b.sendEnvelope(TypeSpawn, rec)
}

// linePayload pairs a line definition with its report for the viewer.
type linePayload struct {
	Line   core.ParkingLine `json:"line"`
	Report core.LineReport  `json:"report"`
}

// RecordLine streams one line definition with its report.
func (b *Backend) RecordLine(line core.ParkingLine, report core.LineReport) error {
	return b.sendEnvelope(TypeLineReport, linePayload{Line: line, Report: report})
}

// LoadBatch is not available over a write-only stream.
func (b *Backend) LoadBatch(ref string) ([]core.SpawnRecord, error) {
	return nil, fmt.Errorf("websocket backend cannot load batches, use the jsonfile or database backend")
}
