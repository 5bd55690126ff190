// Package config loads the engine configuration from file, environment, and
// .env sources. All default values live here to keep a single source of
// truth.
package config

// Config file and environment settings
const (
	// ConfigName is the base name of the config file (.annostat.yaml).
	ConfigName = ".annostat"

	// EnvPrefix namespaces environment overrides, e.g. ANNOSTAT_VERBOSE.
	EnvPrefix = "ANNOSTAT"
)

// Classification defaults
const (
	// DefaultNotWorkedThresholdSeconds treats any positive worktime as
	// worked unless the caller raises it.
	DefaultNotWorkedThresholdSeconds = 0
)

// Archive defaults
const (
	// DefaultArchiveDir is where snapshot archives are kept.
	DefaultArchiveDir = ".annostat/snapshots"

	// DefaultArchiveFormat selects the JSON file archive.
	DefaultArchiveFormat = "json"
)
