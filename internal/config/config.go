package config

import (
	"time"

	"github.com/grievancesense/grievancesense/internal/logging"
)

// Default configuration values.
const (
	defaultServiceName      = "grievancesense"
	defaultServiceVersion   = "1.0.0"
	defaultServicePort      = 8080
	defaultArtifactPath     = "data/model.gob"
	defaultTrainingDataPath = "data/complaints.csv"
	defaultStoreBackend     = "csv"
	defaultSubmissionsPath  = "data/submissions.csv"
	defaultSQLitePath       = "data/submissions.db"
	defaultBatchConcurrency = 10
	defaultBatchRPS         = 50
	defaultLogLevel         = "info"
)

// Config holds all configuration for the grievance service.
type Config struct {
	Service Service        `yaml:"service"`
	Model   Model          `yaml:"model"`
	Store   Store          `yaml:"store"`
	Logging logging.Config `yaml:"logging"`
}

// Service holds service-level configuration.
type Service struct {
	Name             string        `yaml:"name"`
	Version          string        `yaml:"version"`
	Port             int           `env:"GRIEVANCE_PORT"        yaml:"port"`
	Debug            bool          `env:"APP_DEBUG"             yaml:"debug"`
	BatchConcurrency int           `env:"GRIEVANCE_CONCURRENCY" yaml:"batch_concurrency"`
	BatchRPS         int           `yaml:"batch_rps"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
}

// Model holds classifier artifact and training configuration.
type Model struct {
	ArtifactPath     string `env:"GRIEVANCE_ARTIFACT_PATH" yaml:"artifact_path"`
	TrainingDataPath string `env:"GRIEVANCE_TRAINING_DATA" yaml:"training_data_path"`
}

// Store holds submission store configuration.
type Store struct {
	// Backend selects the store implementation: "csv", "sqlite" or "postgres".
	Backend string `env:"GRIEVANCE_STORE_BACKEND" yaml:"backend"`
	// Path is the flat file location for the csv backend, or the database
	// file for sqlite.
	Path string `env:"GRIEVANCE_STORE_PATH" yaml:"path"`
	// DSN is the connection string for the postgres backend.
	DSN string `env:"GRIEVANCE_STORE_DSN" yaml:"dsn"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	s := &cfg.Service
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.BatchConcurrency == 0 {
		s.BatchConcurrency = defaultBatchConcurrency
	}
	if s.BatchRPS == 0 {
		s.BatchRPS = defaultBatchRPS
	}

	if cfg.Model.ArtifactPath == "" {
		cfg.Model.ArtifactPath = defaultArtifactPath
	}
	if cfg.Model.TrainingDataPath == "" {
		cfg.Model.TrainingDataPath = defaultTrainingDataPath
	}

	st := &cfg.Store
	if st.Backend == "" {
		st.Backend = defaultStoreBackend
	}
	if st.Path == "" {
		switch st.Backend {
		case "sqlite":
			st.Path = defaultSQLitePath
		default:
			st.Path = defaultSubmissionsPath
		}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
}
