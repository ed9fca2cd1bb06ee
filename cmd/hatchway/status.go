package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mzachh/hatchway/pkg/status"
)

var statusCmd = &cobra.Command{
	Use:   "status key=value [key=value ...]",
	Short: "Emit a status line as single-line JSON",
	Long: `Serializes the given key=value pairs to a single-line JSON object with
sorted keys. Lets workers written in any language emit the same status
format Go workers produce with pkg/status.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reporter := status.NewReporter(cmd.OutOrStdout())

		for _, arg := range args {
			key, raw, found := strings.Cut(arg, "=")
			if !found || key == "" {
				fmt.Fprintf(os.Stderr, "Error: %q is not key=value\n", arg)
				os.Exit(1)
			}
			reporter.Add(key, coerce(raw))
		}

		if withTS, _ := cmd.Flags().GetBool("timestamp"); withTS {
			reporter.AddTimestamp(float64(time.Now().UnixMilli()) / 1000.0)
		}

		if err := reporter.Emit(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// coerce keeps numbers and booleans typed so consumers get JSON numbers,
// not quoted strings.
func coerce(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().Bool("timestamp", false, "Add the reserved _timestamp field (seconds since epoch)")
}
