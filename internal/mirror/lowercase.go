package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// LowercaseTree renames every file and directory under root to lowercase.
// The Arma engine on Linux resolves mod content case-sensitively while
// workshop uploads arrive with whatever casing the author used, so the
// whole mirror is normalized after each download pass.
//
// Entries are renamed deepest first so a directory's children are settled
// before the directory itself moves. Two siblings whose names collide once
// lowercased are reported and skipped; the rest of the pass continues. The
// returned error aggregates every per-item failure.
func LowercaseTree(root string) error {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("no workshop directory at %s", root)
	}

	// WalkDir visits parents before children; collecting paths and walking
	// the list backwards gives the deepest-first order renaming needs.
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", root, err)
	}

	var failures []error
	for i := len(paths) - 1; i >= 0; i-- {
		path := paths[i]
		base := filepath.Base(path)
		lowered := strings.ToLower(base)
		if lowered == base {
			continue
		}
		target := filepath.Join(filepath.Dir(path), lowered)

		// A sibling already occupying the lowercased name cannot be merged.
		if _, err := os.Lstat(target); err == nil {
			logger.Error("[ERROR] Cannot lowercase %s: %s already exists\n", path, target)
			failures = append(failures, fmt.Errorf("lowercase collision: %s vs %s", path, target))
			continue
		}
		if err := os.Rename(path, target); err != nil {
			logger.Error("[ERROR] Failed to rename %s: %v\n", path, err)
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}
