package mirror

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/workshop"
)

// pruneLinks removes every entry in dir that no longer resolves to the
// wanted kind of target (directory for mod links, regular file for key
// links). Broken symlinks fail os.Stat and are pruned too.
func pruneLinks(dir string, wantDir bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path) // Follows the link to its target
		if err == nil && info.IsDir() == wantDir {
			continue
		}
		logger.Info("[INFO] Unlinking broken link: %s\n", path)
		if err := os.Remove(path); err != nil {
			logger.Error("[ERROR] Failed to unlink %s: %v\n", path, err)
		}
	}
}

// LinkMods maintains the stable-name symlink directory the server loads
// mods through: modsDir/@shortname -> workshopDir/<item id>. Broken links
// are pruned first; valid existing links are left alone, so re-running is a
// no-op. A registry entry whose mirror directory is missing is reported and
// skipped; the returned error aggregates those misses.
func LinkMods(modsDir, workshopDir string, registry workshop.Registry) error {
	if err := os.MkdirAll(modsDir, 0755); err != nil {
		return fmt.Errorf("failed to create mods directory %s: %w", modsDir, err)
	}
	pruneLinks(modsDir, true)

	// Sorted so link creation (and any overwrite contention) is deterministic.
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var failures []error
	for _, id := range ids {
		mod := registry[id]
		linkPath := filepath.Join(modsDir, mod.ShortName)
		realPath := filepath.Join(workshopDir, id)

		if info, err := os.Stat(realPath); err != nil || !info.IsDir() {
			logger.Error("[ERROR] Mod %q does not exist! (%s)\n", mod.Name, realPath)
			failures = append(failures, fmt.Errorf("missing mirror directory for %s: %s", mod.ShortName, realPath))
			continue
		}
		if info, err := os.Stat(linkPath); err == nil && info.IsDir() {
			// Already linked and resolving, nothing to do.
			continue
		}
		if err := os.Symlink(realPath, linkPath); err != nil {
			logger.Error("[ERROR] Failed to link %s: %v\n", linkPath, err)
			failures = append(failures, err)
			continue
		}
		logger.Info("[INFO] Creating symlink %s -> %s\n", linkPath, realPath)
	}
	return errors.Join(failures...)
}

// LinkKeys links every .bikey found under the workshop mirror into the flat
// keys directory by file name, pruning broken key links first. Mods nest
// their keys either as <id>/keys/*.bikey or one level deeper, so both
// depths are globbed. Glob results are sorted before linking and a link is
// always recreated, so duplicate key names across mods resolve
// deterministically to the lexically last occurrence.
func LinkKeys(workshopDir, keysDir string) error {
	if err := os.MkdirAll(keysDir, 0755); err != nil {
		return fmt.Errorf("failed to create keys directory %s: %w", keysDir, err)
	}
	pruneLinks(keysDir, false)

	var keys []string
	for _, pattern := range []string{"*/*/*.bikey", "*/*/*/*.bikey"} {
		matches, err := filepath.Glob(filepath.Join(workshopDir, pattern))
		if err != nil {
			return fmt.Errorf("bad key glob %s: %w", pattern, err)
		}
		keys = append(keys, matches...)
	}
	sort.Strings(keys)

	var failures []error
	for _, key := range keys {
		linkPath := filepath.Join(keysDir, filepath.Base(key))
		if _, err := os.Lstat(linkPath); err == nil {
			if err := os.Remove(linkPath); err != nil {
				logger.Error("[ERROR] Failed to replace key link %s: %v\n", linkPath, err)
				failures = append(failures, err)
				continue
			}
		}
		if err := os.Symlink(key, linkPath); err != nil {
			logger.Error("[ERROR] Failed to link key %s: %v\n", linkPath, err)
			failures = append(failures, err)
			continue
		}
		logger.Info("[INFO] Creating key symlink %s\n", linkPath)
	}
	return errors.Join(failures...)
}
