package main

import "github.com/swiftly-solution/codegen/cmd"

// main is the entry point of the codegen CLI application.
// It executes the root command which handles argument parsing and subcommand dispatch.
func main() {
	cmd.Execute()
}
