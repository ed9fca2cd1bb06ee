package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mzachh/hatchway/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "hatchway",
	Short: "Hatchway launches worker processes and discovers the ports they bind",
	Long: `Hatchway spawns a worker process, hands it a temporary handshake file via
--port-filename, and polls that file until the worker publishes the port it
bound. The resolved port is printed to stdout.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log verbosity (debug, info, warn, error)")
}

// newLogger builds the application logger from the persistent flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = slog.LevelInfo
	}
	return logging.New(level)
}
