package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/config"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/steamcmd"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/updater"
)

// htmlFile is the launcher mod-list export driving an update run.
// It's passed via the `--html-file` or `-f` flag.
var htmlFile string

// updateCmd runs the full mod pipeline: resolve the mod list, download
// stale items, normalize the mirror, refresh symlinks, and rewrite the
// startup script's -mod= parameter.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update and install mods from an Arma 3 Launcher HTML mod list",
	RunE: func(cmd *cobra.Command, args []string) error {
		if htmlFile == "" {
			return errors.New("an HTML mod list is required, pass one with --html-file")
		}
		cfg := config.Load(configPath)
		creds, err := steamcmd.PromptCredentials()
		if err != nil {
			return err
		}
		u := updater.New(cfg, steamcmd.ExecRunner{Bin: cfg.SteamCmd})
		return u.RunHTMLUpdate(htmlFile, creds)
	},
}

// updateServerCmd updates and validates the dedicated server install
// itself, without touching any mods.
var updateServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Update and validate the dedicated server install",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath)
		creds, err := steamcmd.PromptCredentials()
		if err != nil {
			return err
		}
		u := updater.New(cfg, steamcmd.ExecRunner{Bin: cfg.SteamCmd})
		return u.UpdateServer(creds)
	},
}

// init wires the update flags and subcommands.
func init() {
	updateCmd.Flags().StringVarP(&htmlFile, "html-file", "f", "", "Arma 3 Launcher-made HTML mod list")
	updateCmd.AddCommand(updateServerCmd)
}
