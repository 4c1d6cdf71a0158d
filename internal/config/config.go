package config

import (
	"fmt"
	"strings"
)

// Config represents the top-level configuration structure parsed from
// codegen.yaml. It defines the project metadata, output layout, logging
// settings, and the inputs for each generator.
type Config struct {
	// Project contains metadata about the project (name, version).
	Project ProjectConfig `yaml:"project"`
	// Output controls where generated sources are written.
	Output OutputConfig `yaml:"output"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
	// Events configures the game event schema sources.
	Events EventsConfig `yaml:"events"`
	// Natives configures the native signature listings.
	Natives NativesConfig `yaml:"natives"`
	// Protos configures the protobuf descriptor inputs.
	Protos ProtosConfig `yaml:"protos"`
	// Datamaps configures the datamap dump input.
	Datamaps DatamapsConfig `yaml:"datamaps"`
}

// ProjectConfig contains basic project metadata.
type ProjectConfig struct {
	// Name is the name of the project.
	Name string `yaml:"name"`
	// Version is the version of the project.
	Version string `yaml:"version"`
}

// OutputConfig controls the generated source tree.
type OutputConfig struct {
	// Root is the directory generated sources are written under. Each
	// generator owns one subdirectory of it.
	Root string `yaml:"root"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty logs to stderr.
	Path string `yaml:"path"`
}

// EventsConfig configures the game event generator.
type EventsConfig struct {
	// Sources lists the event schema sources in precedence order.
	// The earliest source that defines an event wins its fields.
	Sources []SourceConfig `yaml:"sources"`
	// CacheDir is where fetched sources are cached for offline runs.
	CacheDir string `yaml:"cache_dir"`
}

// SourceConfig is one schema source, either remote or local.
// Exactly one of URL and Path must be set.
type SourceConfig struct {
	// Name identifies the source in logs and cache file names.
	Name string `yaml:"name"`
	// URL is a remote location fetched over HTTP.
	URL string `yaml:"url"`
	// Path is a local file.
	Path string `yaml:"path"`
}

// NativesConfig configures the native binding generator.
type NativesConfig struct {
	// Files lists the native signature listings to process.
	Files []string `yaml:"files"`
}

// ProtosConfig configures the protobuf binding generator.
type ProtosConfig struct {
	// ImportPaths are the descriptor resolution roots.
	ImportPaths []string `yaml:"import_paths"`
	// Files lists the proto files to emit bindings for, relative to
	// the import paths. Transitive imports resolve but do not emit.
	Files []string `yaml:"files"`
}

// DatamapsConfig configures the datamap binding generator.
type DatamapsConfig struct {
	// File is the JSON datamap dump to process.
	File string `yaml:"file"`
}

// maxEventSources bounds the event source precedence chain.
const maxEventSources = 3

// Validate checks the configuration for errors, such as ambiguous
// event sources or an unsupported logging level.
//
// Parameters:
//   - config: The Config object to validate.
//
// Returns:
//   - error: An error if the configuration is invalid, or nil otherwise.
func Validate(config *Config) error {
	if len(config.Events.Sources) > maxEventSources {
		return fmt.Errorf("too many event sources: %d (allowed: %d)", len(config.Events.Sources), maxEventSources)
	}
	seenSources := make(map[string]bool)
	for i, src := range config.Events.Sources {
		if src.URL != "" && src.Path != "" {
			return fmt.Errorf("event source %d: url and path are mutually exclusive", i)
		}
		if src.URL == "" && src.Path == "" {
			return fmt.Errorf("event source %d: needs a url or a path", i)
		}
		if src.Name != "" {
			if seenSources[src.Name] {
				return fmt.Errorf("duplicate event source name: %s", src.Name)
			}
			seenSources[src.Name] = true
		}
	}

	if len(config.Protos.Files) > 0 && len(config.Protos.ImportPaths) == 0 {
		return fmt.Errorf("protos.files requires at least one import path")
	}

	if config.Logging.Level != "" {
		switch strings.ToLower(config.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
		}
	}

	return nil
}

// ApplyDefaults sets default values for configuration fields that are
// missing.
//
// Parameters:
//   - config: The Config object to modify.
func ApplyDefaults(config *Config) {
	if config.Output.Root == "" {
		config.Output.Root = "generated"
	}
	if config.Events.CacheDir == "" {
		config.Events.CacheDir = ".codegen-cache"
	}
	for i := range config.Events.Sources {
		if config.Events.Sources[i].Name == "" {
			config.Events.Sources[i].Name = fmt.Sprintf("source%d", i+1)
		}
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
}
