package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/swiftly-solution/codegen/internal/ui"
)

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration and schema inputs",
	Run: func(cmd *cobra.Command, args []string) {
		runDoctor()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor checks that every configured schema input is reachable or
// at least covered by a cached copy. Problems are reported, not fatal.
func runDoctor() {
	ui.PrintHeader("Checking configuration")

	cfg, err := loadConfig()
	if err != nil {
		ui.PrintError("config", err.Error())
		return
	}
	ui.PrintSuccess("config", "codegen.yaml is valid")

	for _, src := range cfg.Events.Sources {
		if src.Path != "" {
			checkFile("events/"+src.Name, src.Path)
			continue
		}
		if _, err := url.ParseRequestURI(src.URL); err != nil {
			ui.PrintError("events/"+src.Name, fmt.Sprintf("invalid url: %v", err))
			continue
		}
		cachePath := filepath.Join(cfg.Events.CacheDir, src.Name+".txt")
		if _, err := os.Stat(cachePath); err != nil {
			ui.PrintWarning("events/"+src.Name, "no cached copy yet, run `codegen fetch`")
		} else {
			ui.PrintSuccess("events/"+src.Name, "cached copy present")
		}
	}

	for _, path := range cfg.Natives.Files {
		checkFile("natives", path)
	}
	for _, dir := range cfg.Protos.ImportPaths {
		checkFile("protos", dir)
	}
	for _, file := range cfg.Protos.Files {
		found := false
		for _, dir := range cfg.Protos.ImportPaths {
			if _, err := os.Stat(filepath.Join(dir, file)); err == nil {
				found = true
				break
			}
		}
		if found {
			ui.PrintSuccess("protos", file)
		} else {
			ui.PrintError("protos", fmt.Sprintf("%s not found under any import path", file))
		}
	}
	if cfg.Datamaps.File != "" {
		checkFile("datamaps", cfg.Datamaps.File)
	}
}

func checkFile(label, path string) {
	if _, err := os.Stat(path); err != nil {
		ui.PrintError(label, fmt.Sprintf("%s: %v", path, err))
		return
	}
	ui.PrintSuccess(label, path)
}
