package config

import (
	"strings"
	"testing"
)

func TestValidate_EventSources(t *testing.T) {
	tests := []struct {
		name      string
		sources   []SourceConfig
		wantError string
	}{
		{
			name: "valid mixed sources",
			sources: []SourceConfig{
				{Name: "core", URL: "https://example.com/core.txt"},
				{Name: "mod", Path: "schemas/mod.txt"},
			},
			wantError: "",
		},
		{
			name: "url and path together",
			sources: []SourceConfig{
				{Name: "core", URL: "https://example.com/core.txt", Path: "core.txt"},
			},
			wantError: "url and path are mutually exclusive",
		},
		{
			name:      "neither url nor path",
			sources:   []SourceConfig{{Name: "core"}},
			wantError: "needs a url or a path",
		},
		{
			name: "too many sources",
			sources: []SourceConfig{
				{Path: "a.txt"}, {Path: "b.txt"}, {Path: "c.txt"}, {Path: "d.txt"},
			},
			wantError: "too many event sources",
		},
		{
			name: "duplicate names",
			sources: []SourceConfig{
				{Name: "core", Path: "a.txt"},
				{Name: "core", Path: "b.txt"},
			},
			wantError: "duplicate event source name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Events: EventsConfig{Sources: tt.sources}}

			err := Validate(cfg)
			if tt.wantError != "" {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantError)
				} else if !strings.Contains(err.Error(), tt.wantError) {
					t.Errorf("Validate() error = %v, want substring %q", err, tt.wantError)
				}
			} else {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestValidate_Protos(t *testing.T) {
	cfg := &Config{Protos: ProtosConfig{Files: []string{"netmessages.proto"}}}
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "import path") {
		t.Errorf("Validate() error = %v, want import path error", err)
	}

	cfg.Protos.ImportPaths = []string{"protos"}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_LoggingLevel(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "verbose"}}
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "invalid logging level") {
		t.Errorf("Validate() error = %v, want logging level error", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{
		Events: EventsConfig{Sources: []SourceConfig{{Path: "a.txt"}, {Name: "mod", Path: "b.txt"}}},
	}
	ApplyDefaults(cfg)

	if cfg.Output.Root != "generated" {
		t.Errorf("Output.Root = %q, want %q", cfg.Output.Root, "generated")
	}
	if cfg.Events.CacheDir != ".codegen-cache" {
		t.Errorf("Events.CacheDir = %q, want %q", cfg.Events.CacheDir, ".codegen-cache")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Events.Sources[0].Name != "source1" {
		t.Errorf("Sources[0].Name = %q, want %q", cfg.Events.Sources[0].Name, "source1")
	}
	if cfg.Events.Sources[1].Name != "mod" {
		t.Errorf("Sources[1].Name = %q, want %q", cfg.Events.Sources[1].Name, "mod")
	}
}
