package spawn

import (
	"log/slog"

	"github.com/carlaops/carpark/pkg/core"
)

// Replay re-spawns a previously recorded batch. Locations, rotations and
// candidate assignments come straight from the records, so an identical
// scene is reproduced without invoking the packer's randomization.
//
// Per-slot spawn failures are logged and skipped, same as in a live batch.
func Replay(records []core.SpawnRecord, actors ActorSpawner, logger *slog.Logger) []core.LineReport {
	perLine := make(map[int]*core.LineReport)
	order := make([]int, 0)

	for _, rec := range records {
		report, ok := perLine[rec.LineIndex]
		if !ok {
			report = &core.LineReport{LineIndex: rec.LineIndex}
			perLine[rec.LineIndex] = report
			order = append(order, rec.LineIndex)
		}
		report.Requested++
		report.Effective++

		pose := core.Pose{Location: rec.Location, Rotation: rec.Rotation}
		if _, err := actors.Spawn(core.Candidate{ID: rec.Candidate}, pose); err != nil {
			logger.Error("failed to replay spawn, dropping slot",
				"line", rec.LineIndex, "candidate", rec.Candidate, "error", err)
			continue
		}
		report.Produced++
	}

	reports := make([]core.LineReport, 0, len(order))
	for _, idx := range order {
		reports = append(reports, *perLine[idx])
	}
	return reports
}
