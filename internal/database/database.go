package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carlaops/carpark/internal/model"
	"github.com/carlaops/carpark/pkg/core"
)

// Manager handles database connections and implements the spawn-record
// storage backend on top of gorm.
type Manager struct {
	DB              *gorm.DB
	SqlDB           *sql.DB
	IsValid         bool
	ShouldSaveLocal bool
	SqliteFilePath  string
	Logger          zerolog.Logger

	batch *model.Batch
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger, sqliteFilePath string) *Manager {
	return &Manager{
		IsValid:         false,
		ShouldSaveLocal: false,
		SqliteFilePath:  sqliteFilePath,
		Logger:          log,
	}
}

// Connect establishes a database connection, falling back to SQLite if Postgres fails.
func (m *Manager) Connect() error {
	var err error

	m.DB, err = m.GetPostgresDB()
	if err != nil {
		m.Logger.Error().Err(err).Msg("Failed to connect to Postgres DB, trying SQLite")
		m.ShouldSaveLocal = true
		m.DB, err = m.GetSqliteDB(m.SqliteFilePath)
		if err != nil || m.DB == nil {
			m.IsValid = false
			return fmt.Errorf("failed to get local SQLite DB: %s", err)
		}
		m.IsValid = true
	}

	// test connection
	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %s", err)
	}

	err = m.SqlDB.Ping()
	if err != nil {
		m.Logger.Error().Err(err).Msg("Failed to validate connection, trying SQLite")
		m.ShouldSaveLocal = true
		m.DB, err = m.GetSqliteDB(m.SqliteFilePath)
		if err != nil || m.DB == nil {
			m.IsValid = false
			return fmt.Errorf("failed to get local SQLite DB: %s", err)
		}
		m.IsValid = true
	} else {
		m.Logger.Info().Msg("Connected to database")
		m.IsValid = true
	}

	if !m.IsValid {
		return fmt.Errorf("db not valid. not saving")
	}

	if !m.ShouldSaveLocal {
		m.SqlDB.SetMaxOpenConns(10)
	}

	return nil
}

// GetPostgresDB returns a connection to the Postgres database.
func (m *Manager) GetPostgresDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("db.host"),
		viper.GetString("db.port"),
		viper.GetString("db.username"),
		viper.GetString("db.password"),
		viper.GetString("db.database"),
	)

	m.Logger.Debug().Msgf("Connecting to Postgres DB at '%s'", dsn)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func (m *Manager) GetSqliteDB(path string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if path != "" {
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			CreateBatchSize:        2000,
			Logger:                 logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			m.IsValid = false
			return nil, err
		}
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	} else {
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			CreateBatchSize:        2000,
			Logger:                 logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			m.IsValid = false
			return nil, err
		}
		m.Logger.Info().Msg("Using local SQLite DB in memory")
	}

	// set PRAGMAS
	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA cache_size = -32000;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %s", err)
		}
	}

	return db, nil
}

// Setup migrates the schema. For Postgres, ensures PostGIS is present so
// geometry columns work.
func (m *Manager) Setup() error {
	if m.DB.Dialector.Name() == "postgres" {
		err := m.DB.Exec(`CREATE Extension IF NOT EXISTS postgis;`).Error
		if err != nil {
			m.IsValid = false
			return fmt.Errorf("failed to create PostGIS Extension: %s", err)
		}
		m.Logger.Info().Msg("PostGIS Extension created")
	}

	m.Logger.Info().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to migrate schema: %s", err)
	}

	m.Logger.Info().Msg("Database setup complete")
	return nil
}

// Init connects and migrates. Part of the storage backend interface.
func (m *Manager) Init() error {
	if dir := filepath.Dir(m.SqliteFilePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create storage dir: %w", err)
		}
	}
	if err := m.Connect(); err != nil {
		return err
	}
	return m.Setup()
}

// Close closes the underlying sql connection.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	return m.SqlDB.Close()
}

// StartBatch inserts the batch row all subsequent records attach to.
func (m *Manager) StartBatch(info core.BatchInfo) error {
	batch := &model.Batch{
		StartTime:     info.StartTime,
		Seed:          info.Seed,
		SpawnHeight:   info.SpawnHeight,
		ParkingOffset: info.ParkingOffset,
	}
	if err := m.DB.Create(batch).Error; err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	m.batch = batch
	return nil
}

// RecordSpawn inserts one spawn row for the current batch.
func (m *Manager) RecordSpawn(rec core.SpawnRecord) error {
	if m.batch == nil {
		return fmt.Errorf("no batch started")
	}
	row := model.SpawnFromRecord(m.batch.ID, rec)
	if err := m.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record spawn: %w", err)
	}
	return nil
}

// RecordLine inserts one parking-line row for the current batch.
func (m *Manager) RecordLine(line core.ParkingLine, report core.LineReport) error {
	if m.batch == nil {
		return fmt.Errorf("no batch started")
	}
	row, err := model.LineFromConfig(m.batch.ID, line, report)
	if err != nil {
		return err
	}
	if err := m.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record line: %w", err)
	}
	return nil
}

// LoadBatch reads back the spawn records of a stored batch by ID.
func (m *Manager) LoadBatch(ref string) ([]core.SpawnRecord, error) {
	batchID, err := strconv.Atoi(ref)
	if err != nil {
		return nil, fmt.Errorf("batch reference must be a numeric ID: %w", err)
	}

	var rows []model.Spawn
	err = m.DB.Model(&model.Spawn{}).
		Where("batch_id = ?", batchID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %d: %w", batchID, err)
	}

	records := make([]core.SpawnRecord, len(rows))
	for i, row := range rows {
		records[i] = model.RecordFromSpawn(row)
	}
	return records, nil
}
