package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Batch{},
	&ParkingLine{},
	&Spawn{},
}

// Batch is one full carpark generation run. Seed plus the stored spawns is
// enough to reproduce or replay the run.
type Batch struct {
	gorm.Model
	StartTime     time.Time `json:"startTime" gorm:"type:timestamptz"`
	Seed          int64     `json:"seed"`
	SpawnHeight   float64   `json:"spawnHeight"`
	ParkingOffset float64   `json:"parkingOffset"`
	Lines         []ParkingLine
	Spawns        []Spawn
}

func (*Batch) TableName() string {
	return "batches"
}

// ParkingLine is one configured middle line plus its processing report.
type ParkingLine struct {
	gorm.Model
	BatchID   uint            `json:"batchId" gorm:"index:idx_parkingline_batch_id"`
	Batch     Batch           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:BatchID;"`
	LineIndex int             `json:"lineIndex" gorm:"index:idx_parkingline_line_index"`
	Geometry  geom.LineString `json:"geometry"` // middle line, local frame metres
	Side      string          `json:"side" gorm:"size:8"`
	Requested int             `json:"requested"`
	MinSpacing float64        `json:"minSpacing"`
	Exclude   datatypes.JSON  `json:"exclude"` // keyword list as JSON array
	Effective int             `json:"effective"`
	Produced  int             `json:"produced"`
	Skipped   bool            `json:"skipped" gorm:"default:false"`
}

func (*ParkingLine) TableName() string {
	return "parking_lines"
}

// Spawn is one produced slot: position, rotation and chosen candidate.
type Spawn struct {
	gorm.Model
	BatchID   uint       `json:"batchId" gorm:"index:idx_spawn_batch_id"`
	Batch     Batch      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:BatchID;"`
	LineIndex int        `json:"lineIndex" gorm:"index:idx_spawn_line_index"`
	Candidate string     `json:"candidate" gorm:"size:128"`
	Side      string     `json:"side" gorm:"size:8"`
	Location  geom.Point `json:"location"`
	Yaw       float64    `json:"yaw"`
	Pitch     float64    `json:"pitch"`
	Roll      float64    `json:"roll"`
}

func (*Spawn) TableName() string {
	return "spawns"
}
