package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzachh/hatchway"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hatchway",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hatchway version %s\n", strings.TrimSpace(hatchway.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
