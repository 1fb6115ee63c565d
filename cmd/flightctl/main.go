package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flightctl",
	Short: "Compare and manage flight registries",
	Long: `flightctl runs the flight desk from the command line.

It can replay the built-in demonstration sequence or load two fleet files
and compare them with the registry set operations.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
