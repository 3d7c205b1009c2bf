// Package config provides centralized configuration management for tinydb.
//
// This package implements a three-tier configuration hierarchy:
//  1. Explicit Option values passed to Load (highest priority)
//  2. An optional tinydb.yaml file
//  3. Environment variables (lowest priority)
//
// Boolean settings in the YAML file can only switch a setting on: a false
// there leaves a true from the environment in place.
//
// All configuration values have sensible defaults and can be overridden
// through environment variables, a YAML file, or functional options.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// ValidationMode governs write-time schema enforcement performed by the
// schema catalog.
type ValidationMode int

const (
	// ValidationNone performs no schema checks on write.
	ValidationNone ValidationMode = iota
	// ValidationLoose enforces required fields only.
	ValidationLoose
	// ValidationStrict additionally rejects unknown fields and kind
	// mismatches.
	ValidationStrict
)

// ParseValidationMode parses the textual validation mode used in the YAML
// file and environment variable ("none", "loose", "strict"), defaulting to
// ValidationNone for any unrecognized value.
func ParseValidationMode(s string) ValidationMode {
	switch s {
	case "loose":
		return ValidationLoose
	case "strict":
		return ValidationStrict
	default:
		return ValidationNone
	}
}

func (m ValidationMode) String() string {
	switch m {
	case ValidationLoose:
		return "loose"
	case ValidationStrict:
		return "strict"
	default:
		return "none"
	}
}

// Config holds all configuration values read by the core packages
// (bson, mapping, catalog, emit) and by cmd/tinydbctl.
//
// Configuration follows a three-tier hierarchy, see the package comment.
// All values have sensible defaults and can be overridden through
// environment variables, a tinydb.yaml file, or explicit Options.
type Config struct {
	// DataPath is the directory cmd/tinydbctl uses for its smoke-test
	// database file.
	// Environment: TINYDB_DATA_PATH
	// Default: "./var"
	DataPath string

	// SchemaValidationMode governs catalog.MetadataManager.ValidateForWrite.
	// Environment: TINYDB_SCHEMA_VALIDATION_MODE ("none"|"loose"|"strict")
	// Default: ValidationNone
	SchemaValidationMode ValidationMode

	// ReadOnly, when true, makes catalog.MetadataManager.EnsureSchema raise
	// InvalidOperation instead of creating a missing schema.
	// Environment: TINYDB_READ_ONLY
	// Default: false
	ReadOnly bool

	// LeaveOpen controls whether bson.Writer/bson.Reader close their
	// underlying ByteSink on Close/Dispose.
	// Environment: TINYDB_LEAVE_OPEN
	// Default: false
	LeaveOpen bool

	// Code-gen shape flags — no runtime effect beyond emit.
	EmitNullableAnnotations  bool
	UseLanguageAliases       bool
	EmitMetadataAttributes   bool
	EmitForeignKeyAttributes bool
	FileScopedNamespace      bool

	// LogLevel sets the minimum log level for message output.
	// Environment: TINYDB_LOG_LEVEL
	// Default: "info"
	LogLevel string
}

// Option mutates a Config after it has been loaded from the YAML file and
// environment variables, implementing the highest-priority tier of the
// hierarchy.
type Option func(*Config)

// WithDataPath overrides DataPath.
func WithDataPath(path string) Option {
	return func(c *Config) { c.DataPath = path }
}

// WithSchemaValidationMode overrides SchemaValidationMode.
func WithSchemaValidationMode(mode ValidationMode) Option {
	return func(c *Config) { c.SchemaValidationMode = mode }
}

// WithReadOnly overrides ReadOnly.
func WithReadOnly(readOnly bool) Option {
	return func(c *Config) { c.ReadOnly = readOnly }
}

// WithLeaveOpen overrides LeaveOpen.
func WithLeaveOpen(leaveOpen bool) Option {
	return func(c *Config) { c.LeaveOpen = leaveOpen }
}

// yamlConfig mirrors the subset of Config that may be set from tinydb.yaml.
// Kept separate from Config so the YAML tags don't leak into the exported
// type's documentation.
type yamlConfig struct {
	DataPath                 string `yaml:"data_path"`
	SchemaValidationMode     string `yaml:"schema_validation_mode"`
	ReadOnly                 bool   `yaml:"read_only"`
	LeaveOpen                bool   `yaml:"leave_open"`
	EmitNullableAnnotations  bool   `yaml:"emit_nullable_annotations"`
	UseLanguageAliases       bool   `yaml:"use_language_aliases"`
	EmitMetadataAttributes   bool   `yaml:"emit_metadata_attributes"`
	EmitForeignKeyAttributes bool   `yaml:"emit_foreign_key_attributes"`
	FileScopedNamespace      bool   `yaml:"file_scoped_namespace"`
	LogLevel                 string `yaml:"log_level"`
}

// Load builds a Config by applying the three-tier hierarchy described in the
// package comment: environment variables first, then an optional yamlPath
// file (ignored if it does not exist), then opts.
func Load(yamlPath string, opts ...Option) (*Config, error) {
	cfg := &Config{
		DataPath:             getEnv("TINYDB_DATA_PATH", "./var"),
		SchemaValidationMode: ParseValidationMode(getEnv("TINYDB_SCHEMA_VALIDATION_MODE", "none")),
		ReadOnly:             getEnvBool("TINYDB_READ_ONLY", false),
		LeaveOpen:            getEnvBool("TINYDB_LEAVE_OPEN", false),
		LogLevel:             getEnv("TINYDB_LOG_LEVEL", "info"),
	}

	if yamlPath != "" {
		if err := applyYAMLFile(cfg, yamlPath); err != nil {
			return nil, err
		}
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg, nil
}

// applyYAMLFile merges yamlPath into cfg. A missing file is not an error —
// the YAML tier is optional, so callers without a config file still get
// sane defaults. String settings replace earlier values when non-empty;
// boolean settings are ORed in, so the file cannot turn one off.
func applyYAMLFile(cfg *Config, yamlPath string) error {
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return err
	}

	if y.DataPath != "" {
		cfg.DataPath = y.DataPath
	}
	if y.SchemaValidationMode != "" {
		cfg.SchemaValidationMode = ParseValidationMode(y.SchemaValidationMode)
	}
	cfg.ReadOnly = cfg.ReadOnly || y.ReadOnly
	cfg.LeaveOpen = cfg.LeaveOpen || y.LeaveOpen
	cfg.EmitNullableAnnotations = cfg.EmitNullableAnnotations || y.EmitNullableAnnotations
	cfg.UseLanguageAliases = cfg.UseLanguageAliases || y.UseLanguageAliases
	cfg.EmitMetadataAttributes = cfg.EmitMetadataAttributes || y.EmitMetadataAttributes
	cfg.EmitForeignKeyAttributes = cfg.EmitForeignKeyAttributes || y.EmitForeignKeyAttributes
	cfg.FileScopedNamespace = cfg.FileScopedNamespace || y.FileScopedNamespace
	if y.LogLevel != "" {
		cfg.LogLevel = y.LogLevel
	}

	return nil
}

// DatabasePath returns the full path of a database file under DataPath.
// cmd/tinydbctl does not call it; it writes catalog.bson and echo.bson
// directly under DataPath.
//
// Path structure: {DataPath}/data/tinydb.bson
func (c *Config) DatabasePath() string {
	return c.DataPath + "/data/tinydb.bson"
}

// getEnv retrieves a string environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable with a default
// fallback. Accepts "true" and "1" as true; anything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable with a default
// fallback, kept for parity with future integer-valued settings.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
