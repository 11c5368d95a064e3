package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/carlaops/carpark/internal/cache"
	"github.com/carlaops/carpark/internal/catalog"
	"github.com/carlaops/carpark/internal/config"
	"github.com/carlaops/carpark/internal/influx"
	"github.com/carlaops/carpark/internal/layout"
	"github.com/carlaops/carpark/internal/logging"
	intotel "github.com/carlaops/carpark/internal/otel"
	"github.com/carlaops/carpark/internal/sim"
	"github.com/carlaops/carpark/internal/spawn"
	"github.com/carlaops/carpark/internal/storage"
	"github.com/carlaops/carpark/pkg/core"
)

const appName = "carpark"

func main() {
	sessionStart := time.Now()

	logManager := logging.NewSlogManager()

	err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config, using defaults: %v\n", err)
	}

	// logs dir and session log file
	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logs dir: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(
		logging.LogFilePath(logsDir, appName, sessionStart),
		os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// OTel log export is optional; the provider is nil when disabled
	var logProvider *sdklog.LoggerProvider
	otelProvider, err := intotel.New(intotel.Config{
		Enabled:      config.GetBool("otel.enabled"),
		ServiceName:  config.GetString("otel.serviceName"),
		BatchTimeout: time.Duration(config.GetInt("otel.batchTimeoutSeconds")) * time.Second,
		LogWriter:    logFile,
		Endpoint:     config.GetString("otel.endpoint"),
		Insecure:     config.GetBool("otel.insecure"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize otel provider: %v\n", err)
	} else if otelProvider.Enabled() {
		logProvider = otelProvider.LoggerProvider()
		defer otelProvider.Shutdown(context.Background())
	}

	logManager.Setup(logFile, config.GetString("logLevel"), logProvider)
	logger := logManager.Logger()

	// zerolog for the storage and influx layers
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	mode, batchRef := parseArgs(os.Args[1:])

	// seed: explicit for reproducible layouts, otherwise time-derived
	seed := config.GetInt64("seed")
	if seed == 0 {
		seed = sessionStart.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ground, err := buildGround()
	if err != nil {
		logger.Error("failed to set up terrain", "error", err)
		os.Exit(1)
	}

	backend, err := storage.NewBackend(storage.Config{
		Type:            config.GetString("storage.type"),
		OutputDir:       config.GetString("storage.outputDir"),
		CompressOutput:  config.GetBool("storage.compressOutput"),
		WebsocketURL:    config.GetString("storage.websocketUrl"),
		WebsocketSecret: config.GetString("storage.websocketSecret"),
	}, zlog, logger)
	if err != nil {
		logger.Error("failed to create storage backend", "error", err)
		os.Exit(1)
	}
	if err := backend.Init(); err != nil {
		logger.Error("failed to initialize storage backend", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	spawner := sim.NewDryRunSpawner(logger)
	if meshFile := config.GetString("meshFile"); meshFile != "" {
		meshes, err := catalog.LoadMeshMapping(meshFile)
		if err != nil {
			logger.Error("failed to load mesh mapping", "file", meshFile, "error", err)
			os.Exit(1)
		}
		spawner.SetMeshes(meshes)
	}

	switch mode {
	case modeReplay:
		records, err := backend.LoadBatch(batchRef)
		if err != nil {
			logger.Error("failed to load batch for replay", "ref", batchRef, "error", err)
			os.Exit(1)
		}
		logger.Info("replaying recorded batch", "ref", batchRef, "records", len(records))
		reports := spawn.Replay(records, spawner, logger)
		printReports(reports)

	case modeGenerate:
		if err := generate(sessionStart, seed, rng, ground, backend, spawner, logger, zlog); err != nil {
			logger.Error("batch failed", "error", err)
			os.Exit(1)
		}
	}
}

func generate(
	sessionStart time.Time,
	seed int64,
	rng *rand.Rand,
	ground layout.GroundQuery,
	backend storage.Backend,
	spawner spawn.ActorSpawner,
	slogger *slog.Logger,
	zlog zerolog.Logger,
) error {
	lines, err := config.Lines()
	if err != nil {
		return fmt.Errorf("bad parking line config: %w", err)
	}
	if len(lines) == 0 {
		return fmt.Errorf("no parking lines configured")
	}

	pool := config.Candidates()
	pool, excluded := catalog.FourWheeled(pool)
	if excluded > 0 {
		slogger.Info("filtered two-wheeled candidates from pool", "excluded", excluded)
	}
	if len(pool) == 0 {
		return fmt.Errorf("no spawnable candidates configured")
	}

	service, err := spawn.NewService(spawn.Dependencies{
		Ground: ground,
		Actors: spawner,
		Logger: slogger,
		Rand:   rng,
	}, layout.PoseOptions{
		SpawnHeight:   config.GetFloat("spawnHeight"),
		ParkingOffset: config.GetFloat("parkingOffset"),
	})
	if err != nil {
		return err
	}

	info := core.BatchInfo{
		StartTime:     sessionStart,
		Seed:          seed,
		SpawnHeight:   config.GetFloat("spawnHeight"),
		ParkingOffset: config.GetFloat("parkingOffset"),
	}
	if err := backend.StartBatch(info); err != nil {
		return err
	}

	records, reports, err := service.ProcessLines(context.Background(), lines, pool)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if err := backend.RecordSpawn(rec); err != nil {
			return err
		}
	}
	for _, report := range reports {
		if err := backend.RecordLine(lines[report.LineIndex], report); err != nil {
			return err
		}
	}

	if config.GetBool("influx.enabled") {
		fluxManager := influx.NewManager(zlog, filepath.Join(config.GetString("storage.outputDir"), "influx_backup.log.gzip"))
		if err := fluxManager.Connect(); err != nil {
			slogger.Warn("influx disabled", "reason", err)
		} else {
			if err := fluxManager.WriteLineReports(info, reports); err != nil {
				slogger.Warn("failed to write batch metrics", "error", err)
			}
			fluxManager.Close()
		}
	}

	printReports(reports)
	slogger.Info("batch complete", "lines", len(reports), "vehicles", len(records), "seed", seed)
	return nil
}

func buildGround() (layout.GroundQuery, error) {
	terrainFile := config.GetString("terrain.file")
	if terrainFile == "" {
		return cache.NewGroundCache(sim.FlatGround{Z: config.GetFloat("terrain.flatZ")}), nil
	}
	terrain, err := sim.LoadTerrain(terrainFile)
	if err != nil {
		return nil, err
	}
	return cache.NewGroundCache(terrain), nil
}
