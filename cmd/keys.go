package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/config"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/steamcmd"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/updater"
)

// keysCmd prunes broken key symlinks and relinks every .bikey found under
// the workshop mirror. No Steam login is needed for this.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Clean up and recreate key symlinks from installed mods",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath)
		u := updater.New(cfg, steamcmd.ExecRunner{Bin: cfg.SteamCmd})
		return u.RebuildKeyLinks()
	},
}
