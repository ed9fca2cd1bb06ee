package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mzachh/hatchway"
	"github.com/mzachh/hatchway/internal/observability"
	"github.com/mzachh/hatchway/pkg/registry"
)

var runCmd = &cobra.Command{
	Use:   "run [command|target] [args...]",
	Short: "Launch a worker and print the port it bound",
	Long: `Launches the given command (or a named target from --config) with the
handshake flag appended, waits for the worker to publish its port, and
prints the port to stdout.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)

		configPath, _ := cmd.Flags().GetString("config")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		pollInterval, _ := cmd.Flags().GetDuration("poll-interval")
		dir, _ := cmd.Flags().GetString("dir")
		env, _ := cmd.Flags().GetStringArray("env")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

		command := args[0]
		extraArgs := args[1:]

		if configPath != "" {
			targets, err := registry.Load(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				os.Exit(1)
			}
			target, ok := targets[args[0]]
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: target %q not found in %s\n", args[0], configPath)
				os.Exit(1)
			}
			command = target.Command
			extraArgs = append(append([]string{}, target.Args...), extraArgs...)
			if target.Dir != "" {
				dir = target.Dir
			}
			for key, value := range target.Env {
				env = append(env, key+"="+value)
			}
			if target.Timeout != 0 && !cmd.Flags().Changed("timeout") {
				timeout = time.Duration(target.Timeout)
			}
		}

		if metricsAddr != "" {
			go func() {
				logger.Info("serving metrics", "addr", metricsAddr)
				if err := http.ListenAndServe(metricsAddr, observability.Handler()); err != nil {
					logger.Error("metrics server stopped", "error", err)
				}
			}()
		}

		l := hatchway.New(command,
			hatchway.WithArgs(extraArgs...),
			hatchway.WithDir(dir),
			hatchway.WithEnv(env...),
			hatchway.WithTimeout(timeout),
			hatchway.WithPollInterval(pollInterval),
			hatchway.WithStderr(os.Stderr),
			hatchway.WithLogger(logger),
		)

		port, err := l.Start(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// The port is the command's only stdout product.
		fmt.Println(port)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("config", "", "Launcher config file with named targets (YAML or JSON)")
	runCmd.Flags().Duration("timeout", hatchway.DefaultTimeout, "Max wait for the worker's handshake (0 = no limit)")
	runCmd.Flags().Duration("poll-interval", hatchway.DefaultPollInterval, "Delay between handshake file reads")
	runCmd.Flags().String("dir", "", "Working directory for the worker")
	runCmd.Flags().StringArray("env", nil, "Extra KEY=VALUE entries for the worker environment")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}
