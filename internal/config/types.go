package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "5s" or "250ms" parse
// with time.ParseDuration, which yaml.v3 does not do on its own.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// DownloadPolicy controls the retry behavior of the steamcmd download loop.
// steamcmd's exit status does not reliably indicate that every requested
// workshop item landed on disk, so downloads are re-attempted until every
// item's mirror directory exists or MaxAttempts is exhausted.
type DownloadPolicy struct {
	MaxAttempts int      `yaml:"max_attempts"` // Upper bound on batch invocations per update run
	RetryDelay  Duration `yaml:"retry_delay"`  // Pause between attempts, also a window to Ctrl+C out
}

// ResolverPolicy controls the workshop metadata fan-out.
type ResolverPolicy struct {
	MaxInFlight int      `yaml:"max_in_flight"` // Cap on concurrent workshop page requests
	HTTPTimeout Duration `yaml:"http_timeout"`  // Per-request timeout for workshop pages
}

// Config carries every path and identifier the pipeline needs. It is built
// once at startup and passed explicitly into each component, so tests can
// substitute temporary directories and local HTTP servers.
type Config struct {
	SteamCmd   string `yaml:"steam_cmd"`   // steamcmd binary, either on PATH or an absolute path
	ServerID   string `yaml:"server_id"`   // Steam app ID of the Arma 3 dedicated server
	WorkshopID string `yaml:"workshop_id"` // Workshop app ID mods are published under

	ServerDir     string `yaml:"server_dir"`     // Root of the server install
	WorkshopDir   string `yaml:"workshop_dir"`   // Mirror of downloaded workshop items, one subdirectory per item ID
	ModsDir       string `yaml:"mods_dir"`       // Stable @shortname symlinks the server loads mods through
	KeysDir       string `yaml:"keys_dir"`       // Flat directory of .bikey symlinks
	StartupScript string `yaml:"startup_script"` // Shell script carrying the managed -mod= parameter

	WorkshopURL  string `yaml:"workshop_url"`  // Base URL of workshop item pages
	ChangelogURL string `yaml:"changelog_url"` // Base URL of workshop changelog pages

	Download DownloadPolicy `yaml:"download"`
	Resolver ResolverPolicy `yaml:"resolver"`
}
