package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swiftly-solution/codegen/internal/fetch"
	"github.com/swiftly-solution/codegen/internal/ui"
	"github.com/swiftly-solution/codegen/pkg/log"
)

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh the cached event schema sources",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFetch(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
		return err
	}

	ui.PrintHeader("Refreshing event schema cache")
	failed := 0
	for _, src := range cfg.Events.Sources {
		if src.URL == "" {
			continue
		}
		var data []byte
		err := ui.RunSpinner(fmt.Sprintf("Fetching %s...", src.Name), func() error {
			var err error
			data, err = fetch.Remote(cmd.Context(), src.Name, src.URL, cfg.Events.CacheDir)
			return err
		})
		if err != nil {
			failed++
			ui.PrintError(src.Name, err.Error())
			continue
		}
		ui.PrintSuccess(src.Name, fmt.Sprintf("%d bytes", len(data)))
	}
	if failed > 0 {
		return fmt.Errorf("%d sources failed", failed)
	}
	return nil
}
