package updater

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/config"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/loadorder"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/mirror"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/steamcmd"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/workshop"
)

// Updater wires the pipeline stages together: registry building, staleness
// planning, steamcmd downloads, mirror normalization, symlink maintenance,
// and startup-script generation. It assumes exclusive ownership of the
// mirror, the link directories, and the startup script for the duration of
// a run; concurrent runs are unsupported.
type Updater struct {
	cfg        config.Config
	resolver   *workshop.Resolver
	downloader *steamcmd.Downloader
}

// New builds an Updater. Pass a steamcmd.ExecRunner outside of tests.
func New(cfg config.Config, runner steamcmd.Runner) *Updater {
	return &Updater{
		cfg:        cfg,
		resolver:   workshop.NewResolver(cfg),
		downloader: steamcmd.NewDownloader(cfg, runner),
	}
}

// RunHTMLUpdate executes the full pipeline from a launcher mod-list export:
// resolve, plan, download stale items, validate the whole set, lowercase
// the mirror, refresh mod and key symlinks, and write the dependency-sorted
// -mod= parameter into the startup script. The pipeline is idempotent: a
// second run with no remote changes downloads nothing and leaves the
// symlink set and script unchanged.
//
// Filesystem-level failures (a lowercase collision, one missing mirror
// directory) are reported and the run continues; a failed download batch or
// a dependency cycle aborts, the latter before the script is touched.
func (u *Updater) RunHTMLUpdate(htmlFile string, creds steamcmd.Credentials) error {
	logger.Banner("Scanning mod list %s", htmlFile)
	urls, err := workshop.ParseModList(htmlFile)
	if err != nil {
		return err
	}
	registry, err := u.resolver.BuildRegistry(urls)
	if err != nil {
		return err
	}

	logger.Banner("Checking for updates")
	plan := BuildPlan(registry, u.cfg.WorkshopDir, u.resolver.NeedsUpdate)
	if len(plan.NeedsUpdate) > 0 {
		if err := u.downloader.Fetch(plan.NeedsUpdate, creds); err != nil {
			return fmt.Errorf("mod download incomplete: %w", err)
		}
		if err := u.downloader.Validate(plan.All, creds); err != nil {
			// Validation is a best-effort second pass over already present
			// directories; its outcome does not gate the rest of the run.
			logger.Warn("[WARN] Validation pass failed: %v\n", err)
		}
	}

	logger.Banner("Converting uppercase files/folders to lowercase")
	if err := mirror.LowercaseTree(u.cfg.WorkshopDir); err != nil {
		logger.Error("[ERROR] Lowercase pass had failures: %v\n", err)
	}

	logger.Banner("Creating symlinks")
	if err := mirror.LinkMods(u.cfg.ModsDir, u.cfg.WorkshopDir, registry); err != nil {
		logger.Error("[ERROR] Mod symlink pass had failures: %v\n", err)
	}
	if err := mirror.LinkKeys(u.cfg.WorkshopDir, u.cfg.KeysDir); err != nil {
		logger.Error("[ERROR] Key symlink pass had failures: %v\n", err)
	}

	logger.Banner("Sorting mods by dependency")
	order, err := loadorder.Sort(registry)
	if err != nil {
		// A cycle means no valid load order exists; leave the script alone.
		return err
	}
	modsRel, err := filepath.Rel(u.cfg.ServerDir, u.cfg.ModsDir)
	if err != nil {
		modsRel = u.cfg.ModsDir
	}
	param := loadorder.Render(order, modsRel)

	logger.Banner("Updating startup script %s", u.cfg.StartupScript)
	return loadorder.WriteStartupScript(u.cfg.StartupScript, param)
}

// ValidateInstalled runs a steamcmd validation pass over every item already
// present in the workshop mirror.
func (u *Updater) ValidateInstalled(creds steamcmd.Credentials) error {
	entries, err := os.ReadDir(u.cfg.WorkshopDir)
	if err != nil {
		return fmt.Errorf("failed to read workshop directory %s: %w", u.cfg.WorkshopDir, err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	if len(ids) == 0 {
		logger.Warn("[WARN] No mods installed under %s\n", u.cfg.WorkshopDir)
		return nil
	}
	logger.Info("[INFO] Validating %d workshop mods.\n", len(ids))
	return u.downloader.Validate(ids, creds)
}

// RebuildKeyLinks refreshes the key symlink directory only.
func (u *Updater) RebuildKeyLinks() error {
	logger.Banner("Rebuilding key symlinks")
	return mirror.LinkKeys(u.cfg.WorkshopDir, u.cfg.KeysDir)
}

// UpdateServer updates and validates the dedicated server install.
func (u *Updater) UpdateServer(creds steamcmd.Credentials) error {
	return u.downloader.UpdateServer(creds)
}
