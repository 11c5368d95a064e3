// Package jsonfile stores spawn batches as a single JSON document,
// optionally gzip-compressed. The format is sufficient to replay an
// identical batch: per slot it records location, rotation, candidate, side
// and originating line index.
package jsonfile

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/carlaops/carpark/internal/queue"
	"github.com/carlaops/carpark/pkg/core"
)

// document is the on-disk layout of one batch file.
type document struct {
	Info    core.BatchInfo     `json:"info"`
	Lines   []lineEntry        `json:"lines"`
	Records []core.SpawnRecord `json:"records"`
}

type lineEntry struct {
	Line   core.ParkingLine `json:"line"`
	Report core.LineReport  `json:"report"`
}

// Backend buffers records in memory and writes the document on Close.
type Backend struct {
	outputDir string
	compress  bool

	info    core.BatchInfo
	started bool
	lines   []lineEntry
	records *queue.Queue[core.SpawnRecord]

	writtenPath string
}

// New creates a jsonfile backend writing into outputDir.
func New(outputDir string, compress bool) *Backend {
	return &Backend{
		outputDir: outputDir,
		compress:  compress,
		records:   queue.New[core.SpawnRecord](),
	}
}

// Init creates the output directory.
func (b *Backend) Init() error {
	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return nil
}

// StartBatch sets the batch metadata for the file header.
func (b *Backend) StartBatch(info core.BatchInfo) error {
	b.info = info
	b.started = true
	return nil
}

// RecordSpawn buffers one spawn record.
func (b *Backend) RecordSpawn(rec core.SpawnRecord) error {
	b.records.Push(rec)
	return nil
}

// RecordLine buffers one line definition together with its report.
func (b *Backend) RecordLine(line core.ParkingLine, report core.LineReport) error {
	b.lines = append(b.lines, lineEntry{Line: line, Report: report})
	return nil
}

// Close flushes the buffered batch to disk. Without a started batch there
// is nothing to write.
func (b *Backend) Close() error {
	if !b.started {
		return nil
	}

	doc := document{
		Info:    b.info,
		Lines:   b.lines,
		Records: b.records.GetAndEmpty(),
	}

	name := fmt.Sprintf("carpark_%s.json", b.info.StartTime.Format("20060102_150405"))
	if b.compress {
		name += ".gz"
	}
	path := filepath.Join(b.outputDir, name)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create spawn data file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	var gz *gzip.Writer
	if b.compress {
		gz = gzip.NewWriter(file)
		w = gz
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode spawn data: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to finish gzip stream: %w", err)
		}
	}

	b.writtenPath = path
	b.started = false
	return nil
}

// WrittenPath returns the path of the last file Close produced.
func (b *Backend) WrittenPath() string {
	return b.writtenPath
}

// LoadBatch reads the spawn records of a stored batch file. ref is the
// file path; gzip files are detected by extension.
func (b *Backend) LoadBatch(ref string) ([]core.SpawnRecord, error) {
	file, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to open spawn data file: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(ref, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode spawn data: %w", err)
	}
	return doc.Records, nil
}
