package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default returns the stock configuration for a conventional Linux install
// under /home/steam. Every field can be overridden by the YAML config file.
func Default() Config {
	serverDir := "/home/steam/servers/arma3"
	cfg := Config{
		SteamCmd:      "steamcmd",
		ServerID:      "233780",
		WorkshopID:    "107410",
		ServerDir:     serverDir,
		ModsDir:       filepath.Join(serverDir, "mods"),
		KeysDir:       filepath.Join(serverDir, "keys"),
		StartupScript: filepath.Join(serverDir, "start-server.sh"),
		WorkshopURL:   "https://steamcommunity.com/sharedfiles/filedetails/?id=",
		ChangelogURL:  "https://steamcommunity.com/sharedfiles/filedetails/changelog",
		Download: DownloadPolicy{
			MaxAttempts: 10,
			RetryDelay:  Duration(5 * time.Second),
		},
		Resolver: ResolverPolicy{
			MaxInFlight: 8,
			HTTPTimeout: Duration(30 * time.Second),
		},
	}
	cfg.WorkshopDir = workshopDirFor(cfg)
	return cfg
}

// workshopDirFor derives the workshop mirror location steamcmd downloads
// into: <server_dir>/steamapps/workshop/content/<workshop_id>.
func workshopDirFor(cfg Config) string {
	return filepath.Join(cfg.ServerDir, "steamapps", "workshop", "content", cfg.WorkshopID)
}

// Load reads the YAML configuration at configFile, layered over Default().
// A missing file simply yields the defaults; a file that exists but cannot
// be parsed is a fatal configuration error.
func Load(configFile string) Config {
	cfg := Default()

	raw, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file is fine, the defaults describe a standard install.
			return cfg
		}
		panic("Failed to read " + configFile + ": " + err.Error())
	}

	// Blank the derived paths so that after unmarshalling we can tell whether
	// the file pinned them or they should follow the (possibly overridden)
	// server dir.
	cfg.WorkshopDir = ""
	cfg.ModsDir = ""
	cfg.KeysDir = ""
	cfg.StartupScript = ""
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		panic("Failed to unmarshal " + configFile + ": " + err.Error())
	}

	// Re-derive paths the file left unset against the (possibly overridden) server dir.
	if cfg.WorkshopDir == "" {
		cfg.WorkshopDir = workshopDirFor(cfg)
	}
	if cfg.ModsDir == "" {
		cfg.ModsDir = filepath.Join(cfg.ServerDir, "mods")
	}
	if cfg.KeysDir == "" {
		cfg.KeysDir = filepath.Join(cfg.ServerDir, "keys")
	}
	if cfg.StartupScript == "" {
		cfg.StartupScript = filepath.Join(cfg.ServerDir, "start-server.sh")
	}
	return cfg
}
