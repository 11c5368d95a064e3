package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/carlaops/carpark/internal/geo"
	"github.com/carlaops/carpark/pkg/core"
)

// SpawnFromRecord converts a core spawn record to its database row.
func SpawnFromRecord(batchID uint, rec core.SpawnRecord) Spawn {
	return Spawn{
		BatchID:   batchID,
		LineIndex: rec.LineIndex,
		Candidate: rec.Candidate,
		Side:      string(rec.Side),
		Location:  geo.PointFromPosition(rec.Location),
		Yaw:       rec.Rotation.Yaw,
		Pitch:     rec.Rotation.Pitch,
		Roll:      rec.Rotation.Roll,
	}
}

// RecordFromSpawn converts a database row back to a core spawn record.
func RecordFromSpawn(s Spawn) core.SpawnRecord {
	return core.SpawnRecord{
		LineIndex: s.LineIndex,
		Candidate: s.Candidate,
		Side:      core.Side(s.Side),
		Location:  geo.PositionFromPoint(s.Location),
		Rotation:  core.Rotation{Yaw: s.Yaw, Pitch: s.Pitch, Roll: s.Roll},
	}
}

// LineFromConfig converts a configured parking line and its report to a row.
func LineFromConfig(batchID uint, line core.ParkingLine, report core.LineReport) (ParkingLine, error) {
	exclude, err := json.Marshal(line.Exclude)
	if err != nil {
		return ParkingLine{}, fmt.Errorf("failed to marshal exclude keywords: %w", err)
	}
	return ParkingLine{
		BatchID:    batchID,
		LineIndex:  report.LineIndex,
		Geometry:   geo.SegmentLineString(line.Segment),
		Side:       string(line.Side),
		Requested:  report.Requested,
		MinSpacing: line.MinSpacing,
		Exclude:    datatypes.JSON(exclude),
		Effective:  report.Effective,
		Produced:   report.Produced,
		Skipped:    report.Skipped,
	}, nil
}
