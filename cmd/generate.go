package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/swiftly-solution/codegen/internal/config"
	"github.com/swiftly-solution/codegen/internal/generator"
	"github.com/swiftly-solution/codegen/internal/ui"
	"github.com/swiftly-solution/codegen/pkg/log"
)

var generateFlags = struct {
	events   bool
	natives  bool
	protos   bool
	datamaps bool
}{}

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate C# bindings from codegen.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGenerate(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateFlags.events, "events", false, "Generate game event bindings")
	generateCmd.Flags().BoolVar(&generateFlags.natives, "natives", false, "Generate native trampolines")
	generateCmd.Flags().BoolVar(&generateFlags.protos, "protos", false, "Generate network message bindings")
	generateCmd.Flags().BoolVar(&generateFlags.datamaps, "datamaps", false, "Generate datamap bindings")
	rootCmd.AddCommand(generateCmd)
}

// loadConfig parses and validates codegen.yaml from the current
// directory.
func loadConfig() (*config.Config, error) {
	data, err := os.ReadFile("codegen.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read codegen.yaml: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse codegen.yaml: %w", err)
	}

	config.ApplyDefaults(&cfg)
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// runGenerate resolves the pipeline selection, runs the selected
// pipelines concurrently and reports per-pipeline outcomes.
func runGenerate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
		return err
	}

	kinds := selectedKinds()
	if len(kinds) == 0 {
		kinds = promptKinds()
	}
	if len(kinds) == 0 {
		return fmt.Errorf("nothing selected")
	}

	ui.PrintHeader(fmt.Sprintf("Generating bindings for %s", cfg.Project.Name))
	results := generator.Run(cmd.Context(), cfg, kinds)

	failed := 0
	for _, res := range results {
		label := string(res.Kind)
		if res.Err != nil {
			failed++
			ui.PrintError(label, res.Err.Error())
			continue
		}
		for _, warning := range res.Warnings {
			ui.PrintWarning(label, warning)
		}
		ui.PrintSuccess(label, fmt.Sprintf("%d files in %s", res.Files, res.Elapsed.Round(time.Millisecond)))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pipelines failed", failed, len(results))
	}
	return nil
}

func selectedKinds() []generator.Kind {
	var kinds []generator.Kind
	if generateFlags.events {
		kinds = append(kinds, generator.KindEvents)
	}
	if generateFlags.natives {
		kinds = append(kinds, generator.KindNatives)
	}
	if generateFlags.protos {
		kinds = append(kinds, generator.KindProtos)
	}
	if generateFlags.datamaps {
		kinds = append(kinds, generator.KindDatamaps)
	}
	return kinds
}

func promptKinds() []generator.Kind {
	options := make([]string, len(generator.Kinds))
	for i, kind := range generator.Kinds {
		options[i] = string(kind)
	}
	var kinds []generator.Kind
	for _, picked := range ui.MultiSelect("Select generators to run", options) {
		kinds = append(kinds, generator.Kind(picked))
	}
	return kinds
}
