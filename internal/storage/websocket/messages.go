package websocket

import "encoding/json"

// Message types understood by the viewer server.
const (
	TypeStartBatch = "start_batch"
	TypeSpawn      = "spawn"
	TypeLineReport = "line_report"
	TypeEndBatch   = "end_batch"
)

// Envelope wraps every message with its type so the server can route it.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// AckMessage is the server's acknowledgement of a message that requires one.
type AckMessage struct {
	Type string `json:"type"`
	For  string `json:"for"`
}
