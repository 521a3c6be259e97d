// Package config loads runtime configuration for the galaxydb commands.
// Configuration can come from a YAML file (galaxydb.yaml in the working
// directory) or environment variables; environment variables override YAML
// values, and command-line flags override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// File is the optional configuration file, looked up in the working
// directory.
const File = "galaxydb.yaml"

// Config holds every knob for a galaxydb run.
type Config struct {
	// DataDir is the directory holding the survey, catalog, galaxy and
	// schema files.
	DataDir string `yaml:"data_dir" env:"GALAXYDB_DATA_DIR" env-default:"."`

	// DatabaseURL selects the database engine and target. Empty means a
	// SQLite file named galaxy.db inside DataDir.
	DatabaseURL string `yaml:"database_url" env:"GALAXYDB_DATABASE_URL" env-default:""`

	// LogLevel is the zap level: debug, info, warn or error.
	LogLevel string `yaml:"log_level" env:"GALAXYDB_LOG_LEVEL" env-default:"info"`

	Files FilesConfig `yaml:"files"`
	Load  LoadConfig  `yaml:"load"`
}

// FilesConfig names the data files inside DataDir.
type FilesConfig struct {
	Survey    string `yaml:"survey" env:"GALAXYDB_SURVEY_FILE" env-default:"survey.json"`
	Galaxy    string `yaml:"galaxy" env:"GALAXYDB_GALAXY_FILE" env-default:"galaxy.json"`
	Resources string `yaml:"resources" env:"GALAXYDB_RESOURCES_FILE" env-default:"resources.json"`
	Schema    string `yaml:"schema" env:"GALAXYDB_SCHEMA_FILE" env-default:"schema.sql"`
}

// LoadConfig controls the relational loading stage.
type LoadConfig struct {
	// Commit is the transaction granularity: per-body or per-run.
	Commit string `yaml:"commit" env:"GALAXYDB_LOAD_COMMIT" env-default:"per-body"`

	// DuplicateResources decides what a resource name collision does while
	// the catalog index is built: reject or overwrite.
	DuplicateResources string `yaml:"duplicate_resources" env:"GALAXYDB_DUPLICATE_RESOURCES" env-default:"reject"`
}

// Load reads configuration from galaxydb.yaml when present, otherwise from
// environment variables alone.
func Load() (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(File); err == nil {
		if err := cleanenv.ReadConfig(File, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", File, err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// SurveyPath is the raw survey file location.
func (c *Config) SurveyPath() string { return filepath.Join(c.DataDir, c.Files.Survey) }

// GalaxyPath is the canonical galaxy file location.
func (c *Config) GalaxyPath() string { return filepath.Join(c.DataDir, c.Files.Galaxy) }

// ResourcesPath is the resource catalog location.
func (c *Config) ResourcesPath() string { return filepath.Join(c.DataDir, c.Files.Resources) }

// SchemaPath is the optional schema override location.
func (c *Config) SchemaPath() string { return filepath.Join(c.DataDir, c.Files.Schema) }

// EffectiveDatabaseURL returns DatabaseURL, or the default SQLite database
// inside DataDir when none is configured.
func (c *Config) EffectiveDatabaseURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "sqlite://" + filepath.Join(c.DataDir, "galaxy.db")
}
