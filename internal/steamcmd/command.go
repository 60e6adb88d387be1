package steamcmd

import (
	"github.com/Bilgecrank/arma-3-mod-tools/internal/config"
)

// Credentials is the Steam login used for workshop downloads. The account
// must own the game; the Steam Guard code is optional and only needed when
// the machine is not yet authorized.
type Credentials struct {
	Username  string
	Password  string
	GuardCode string
}

// loginArgs renders the +login directive.
func (c Credentials) loginArgs() []string {
	args := []string{"+login", c.Username, c.Password}
	if c.GuardCode != "" {
		args = append(args, c.GuardCode)
	}
	return args
}

// downloadArgs assembles one batched steamcmd invocation: login, install
// dir, one +workshop_download_item directive per item, and +quit. Batching
// all items into a single invocation avoids paying the steamcmd startup and
// login cost once per mod.
func downloadArgs(cfg config.Config, creds Credentials, ids []string, validate bool) []string {
	args := creds.loginArgs()
	args = append(args, "+force_install_dir", cfg.ServerDir)
	for _, id := range ids {
		args = append(args, "+workshop_download_item", cfg.WorkshopID, id)
		if validate {
			args = append(args, "validate")
		}
	}
	return append(args, "+quit")
}

// serverUpdateArgs assembles the invocation that updates and validates the
// dedicated server install itself.
func serverUpdateArgs(cfg config.Config, creds Credentials) []string {
	args := creds.loginArgs()
	args = append(args,
		"+force_install_dir", cfg.ServerDir,
		"+app_update", cfg.ServerID, "validate",
		"+quit")
	return args
}
