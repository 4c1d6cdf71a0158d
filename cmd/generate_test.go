package cmd

import (
	"os"
	"testing"

	"github.com/swiftly-solution/codegen/internal/generator"
)

func TestSelectedKinds(t *testing.T) {
	defer func() {
		generateFlags.events = false
		generateFlags.natives = false
		generateFlags.protos = false
		generateFlags.datamaps = false
	}()

	generateFlags.events = true
	generateFlags.datamaps = true
	kinds := selectedKinds()
	if len(kinds) != 2 || kinds[0] != generator.KindEvents || kinds[1] != generator.KindDatamaps {
		t.Errorf("selectedKinds() = %v", kinds)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "codegen-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	originalWd, _ := os.Getwd()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	defer os.Chdir(originalWd)

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig should fail without codegen.yaml")
	}

	bad := "events:\n  sources:\n    - name: core\n"
	if err := os.WriteFile("codegen.yaml", []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig should reject a source with neither url nor path")
	}

	good := "project:\n  name: demo\nevents:\n  sources:\n    - name: core\n      path: core.txt\n"
	if err := os.WriteFile("codegen.yaml", []byte(good), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Output.Root != "generated" {
		t.Errorf("default output root not applied: %q", cfg.Output.Root)
	}
}
