package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// debug indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// configPath holds the path to the YAML configuration file.
// It's passed via the `--config` or `-c` flag.
var configPath string

// rootCmd is the base command for the CLI tool `a3modtools`.
// Invoked without a subcommand it prints usage and exits cleanly.
var rootCmd = &cobra.Command{
	Use:   "a3modtools",
	Short: "Install, update and maintain mods for an Arma 3 Linux server",

	// PersistentPreRun is a hook that runs before any subcommand.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

// Execute registers flags and subcommands and starts command execution.
// It's the entry point for the CLI when invoked by the user.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "a3modtools.yaml", "Path to configuration file")

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(keysCmd)

	// Cobra prints the error itself; the exit code signals failure to any
	// cron job or wrapper script driving the tool.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
