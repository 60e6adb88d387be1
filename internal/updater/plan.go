package updater

import (
	"path/filepath"
	"sort"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/workshop"
)

// StatusFunc classifies one workshop item against its mirror directory.
// Satisfied by (*workshop.Resolver).NeedsUpdate; tests substitute a stub.
type StatusFunc func(id, mirrorPath string) workshop.Status

// Plan is the disjoint classification of a registry before downloading:
// items already current, items to fetch (stale or absent), and the full ID
// set for the validation pass. All three slices are sorted by ID.
type Plan struct {
	UpToDate    []string
	NeedsUpdate []string
	All         []string
}

// BuildPlan runs the staleness check for every registry entry and reports
// the classification to the operator by mod name. Pure classification, no
// filesystem mutation.
func BuildPlan(registry workshop.Registry, workshopDir string, status StatusFunc) Plan {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var plan Plan
	for _, id := range ids {
		plan.All = append(plan.All, id)
		switch status(id, filepath.Join(workshopDir, id)) {
		case workshop.StatusCurrent:
			plan.UpToDate = append(plan.UpToDate, id)
		case workshop.StatusStale:
			logger.Debug("[DEBUG] %s (%s) is stale\n", registry[id].Name, id)
			plan.NeedsUpdate = append(plan.NeedsUpdate, id)
		case workshop.StatusAbsent:
			logger.Debug("[DEBUG] %s (%s) is not installed\n", registry[id].Name, id)
			plan.NeedsUpdate = append(plan.NeedsUpdate, id)
		}
	}

	if len(plan.UpToDate) == len(plan.All) {
		logger.Info("[INFO] All mods are up-to-date.\n")
		return plan
	}
	if len(plan.UpToDate) > 0 {
		logger.Info("[INFO] The following mods are up-to-date:\n")
		for _, id := range plan.UpToDate {
			logger.Info("\t%s\n", registry[id].Name)
		}
	}
	logger.Info("[INFO] The following mods will be downloaded:\n")
	for _, id := range plan.NeedsUpdate {
		logger.Info("\t%s (%s)\n", registry[id].Name, id)
	}
	return plan
}
