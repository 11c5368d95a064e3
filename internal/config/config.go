package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/carlaops/carpark/internal/geo"
	"github.com/carlaops/carpark/pkg/core"
)

// lineEntry is the config-file shape of one parking line. Start and end are
// "x,y,z" strings in the simulator's local frame.
type lineEntry struct {
	Start      string   `json:"start" mapstructure:"start"`
	End        string   `json:"end" mapstructure:"end"`
	Side       string   `json:"side" mapstructure:"side"`
	Count      int      `json:"count" mapstructure:"count"`
	MinSpacing float64  `json:"minSpacing" mapstructure:"minSpacing"`
	Exclude    []string `json:"exclude" mapstructure:"exclude"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./carparklogs")

	viper.SetDefault("seed", 0) // 0 means derive from current time
	viper.SetDefault("spawnHeight", 1.5)
	viper.SetDefault("parkingOffset", 3.0)

	viper.SetDefault("meshFile", "")

	viper.SetDefault("terrain.file", "")
	viper.SetDefault("terrain.flatZ", 0.0)

	viper.SetDefault("storage.type", "jsonfile")
	viper.SetDefault("storage.outputDir", "./carpark_out")
	viper.SetDefault("storage.compressOutput", false)
	viper.SetDefault("storage.websocketUrl", "")
	viper.SetDefault("storage.websocketSecret", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "carpark")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "carpark")
	viper.SetDefault("otel.batchTimeoutSeconds", 5)
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", false)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "carpark-metrics")
	viper.SetDefault("influx.bucket", "carpark_batches")

	viper.SetConfigName("carpark.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Lines decodes the parking-line table from configuration.
func Lines() ([]core.ParkingLine, error) {
	var entries []lineEntry
	if err := viper.UnmarshalKey("lines", &entries); err != nil {
		return nil, fmt.Errorf("error decoding parking lines: %w", err)
	}

	lines := make([]core.ParkingLine, 0, len(entries))
	for i, e := range entries {
		start, err := geo.Position3DFromString(e.Start)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad start %q: %w", i, e.Start, err)
		}
		end, err := geo.Position3DFromString(e.End)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad end %q: %w", i, e.End, err)
		}
		side, err := core.ParseSide(e.Side)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines = append(lines, core.ParkingLine{
			Segment:    core.LineSegment{Start: start, End: end},
			Side:       side,
			Count:      e.Count,
			MinSpacing: e.MinSpacing,
			Exclude:    e.Exclude,
		})
	}
	return lines, nil
}

// Candidates decodes the vehicle blueprint pool from configuration.
func Candidates() []core.Candidate {
	ids := viper.GetStringSlice("candidates")
	pool := make([]core.Candidate, len(ids))
	for i, id := range ids {
		pool[i] = core.Candidate{ID: id}
	}
	return pool
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetInt64 returns an int64 config value.
func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

// GetFloat returns a float64 config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
