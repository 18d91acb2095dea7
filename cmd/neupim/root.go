package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/neupim/logging"
)

var (
	settingsPath string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use: "neupim",
	Short: "NeuPIM CLI tool can run instrumented workloads and inspect " +
		"recorded counter databases.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env file is fine; variables from it only provide
		// defaults.
		_ = godotenv.Load()

		if settingsPath == "" {
			settingsPath = os.Getenv("NEUPIM_SETTINGS")
		}

		logging.Init(logging.ParseLevel(logLevel))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "",
		"path of the settings file (default sjq.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level: debug, info, warn, or error")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
