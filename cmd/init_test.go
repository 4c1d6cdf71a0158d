package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRunInit verifies that the init command correctly scaffolds a new
// project with the expected file structure.
func TestRunInit(t *testing.T) {
	// Create a temp dir for testing
	tempDir, err := os.MkdirTemp("", "codegen-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Change to temp dir
	originalWd, _ := os.Getwd()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	defer os.Chdir(originalWd)

	projectName := "my-test-plugin"
	if err := runInit(projectName); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	// Verify files exist
	expectedFiles := []string{
		"codegen.yaml",
		".gitignore",
		filepath.Join("schemas", "protos"),
	}

	for _, f := range expectedFiles {
		path := filepath.Join(projectName, f)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Expected file %s not created", path)
		}
	}

	data, err := os.ReadFile(filepath.Join(projectName, "codegen.yaml"))
	if err != nil {
		t.Fatalf("Failed to read scaffolded config: %v", err)
	}
	if !strings.Contains(string(data), "name: "+projectName) {
		t.Errorf("Scaffolded config missing project name:\n%s", data)
	}

	// Running init again against the same name must refuse
	if err := runInit(projectName); err == nil {
		t.Error("runInit should fail when the directory exists")
	}
}
