package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "codegen",
	Short: "Generate Swiftly plugin bindings from engine schema sources",
	Long: `codegen turns engine schema descriptions (game events, native function
signatures, protobuf network messages and datamap dumps) into strongly
typed C# bindings for Swiftly plugins.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
