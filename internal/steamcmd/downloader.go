package steamcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/config"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// Downloader drives steamcmd to fetch workshop items into the mirror
// directory. steamcmd frequently exits zero after downloading only part of
// a large batch, so completion is judged by mirror directory presence and
// incomplete batches are retried as a fresh invocation.
type Downloader struct {
	cfg    config.Config
	runner Runner
}

// NewDownloader builds a Downloader on the given runner. Pass an ExecRunner
// for the real tool.
func NewDownloader(cfg config.Config, runner Runner) *Downloader {
	return &Downloader{cfg: cfg, runner: runner}
}

// mirrorPath is where steamcmd deposits one workshop item.
func (d *Downloader) mirrorPath(id string) string {
	return filepath.Join(d.cfg.WorkshopDir, id)
}

// missing filters ids down to those whose mirror directory does not exist,
// sorted so retry logs and failure reports are stable.
func (d *Downloader) missing(ids []string) []string {
	var absent []string
	for _, id := range ids {
		if info, err := os.Stat(d.mirrorPath(id)); err != nil || !info.IsDir() {
			absent = append(absent, id)
		}
	}
	sort.Strings(absent)
	return absent
}

// Fetch downloads the given workshop items. Items that already have a
// mirror directory are slated for update, so their directories are removed
// first; directory absence is the only completion signal steamcmd gives us.
// The batch is retried with a fixed delay until every directory exists or
// the attempt budget is spent, in which case the error names every item
// that never completed.
func (d *Downloader) Fetch(ids []string, creds Credentials) error {
	if len(ids) == 0 {
		return nil
	}

	// Clear out stale mirror directories so a reappearing directory means
	// the download actually succeeded. This removal is irreversible.
	for _, id := range ids {
		path := d.mirrorPath(id)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			logger.Info("[INFO] Removing %s ahead of its update\n", path)
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("failed to clear %s for update: %w", path, err)
			}
		}
	}

	maxAttempts := d.cfg.Download.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	attempt := 0
	var remaining []string
	download := func() error {
		attempt++
		remaining = d.missing(ids)
		if len(remaining) == 0 {
			return nil
		}
		logger.Banner("Downloading %d mods (attempt %d of %d)", len(remaining), attempt, maxAttempts)
		if err := d.runner.Run(downloadArgs(d.cfg, creds, remaining, false)...); err != nil {
			// Advisory only; the directory check below decides.
			logger.Warn("[WARN] steamcmd reported an error: %v\n", err)
		}
		remaining = d.missing(ids)
		if len(remaining) > 0 {
			return fmt.Errorf("%d mods still missing after attempt %d", len(remaining), attempt)
		}
		return nil
	}

	policy := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(time.Duration(d.cfg.Download.RetryDelay)),
		uint64(maxAttempts-1),
	)
	if err := backoff.Retry(download, policy); err != nil {
		return fmt.Errorf("giving up after %d attempts, mods never downloaded: %s",
			attempt, strings.Join(remaining, ", "))
	}
	return nil
}

// Validate runs one validation pass over the given items. No polling or
// retries: the items are already present and validation failures surface in
// steamcmd's own output.
func (d *Downloader) Validate(ids []string, creds Credentials) error {
	if len(ids) == 0 {
		return nil
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	logger.Banner("Validating %d mods", len(sorted))
	return d.runner.Run(downloadArgs(d.cfg, creds, sorted, true)...)
}

// UpdateServer updates and validates the dedicated server install itself.
func (d *Downloader) UpdateServer(creds Credentials) error {
	logger.Banner("Updating server (%s)", d.cfg.ServerID)
	return d.runner.Run(serverUpdateArgs(d.cfg, creds)...)
}
