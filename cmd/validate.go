package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/config"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/steamcmd"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/updater"
)

// validateCmd runs a steamcmd validation pass over every mod currently
// present in the workshop mirror directory.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate existing mods in the workshop directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath)
		creds, err := steamcmd.PromptCredentials()
		if err != nil {
			return err
		}
		u := updater.New(cfg, steamcmd.ExecRunner{Bin: cfg.SteamCmd})
		return u.ValidateInstalled(creds)
	},
}
