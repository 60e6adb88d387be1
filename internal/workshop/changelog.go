package workshop

import (
	"os"
	"strconv"
	"time"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// Status classifies one mirror entry against its workshop changelog.
type Status int

const (
	// StatusCurrent means the mirror entry is at least as new as the last
	// workshop announcement.
	StatusCurrent Status = iota
	// StatusStale means the workshop has announced an update since the
	// mirror entry was synced.
	StatusStale
	// StatusAbsent means the mirror directory does not exist at all.
	StatusAbsent
)

// NeedsUpdate checks one item's changelog page against the mirror directory
// at mirrorPath. The mirror directory's modification time stands in for
// "last synced at"; no explicit version is tracked anywhere.
//
// The check fails open: when the changelog cannot be fetched or carries no
// parseable announcement block, the item is reported stale so it gets
// re-downloaded rather than silently left behind.
func (r *Resolver) NeedsUpdate(id, mirrorPath string) Status {
	info, err := os.Stat(mirrorPath)
	if err != nil || !info.IsDir() {
		return StatusAbsent
	}

	doc, err := r.fetchDocument(r.changelogURL + "/" + id)
	if err != nil {
		logger.Warn("[WARN] Could not fetch changelog for %s, assuming update needed: %v\n", id, err)
		return StatusStale
	}

	// The newest announcement is a <p> inside the workshopAnnouncement box
	// whose id attribute is the announcement's Unix timestamp.
	stamp, ok := doc.Find("div.workshopAnnouncement p").First().Attr("id")
	if !ok {
		logger.Warn("[WARN] No announcement block on changelog for %s, assuming update needed\n", id)
		return StatusStale
	}
	seconds, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		logger.Warn("[WARN] Unparseable announcement timestamp %q for %s, assuming update needed\n", stamp, id)
		return StatusStale
	}

	updated := time.Unix(seconds, 0)
	synced := info.ModTime()
	logger.Debug("[DEBUG] %s: workshop updated %s, mirror synced %s\n", id, updated, synced)

	// Stale only when the announcement is strictly newer than the sync.
	if updated.After(synced) {
		return StatusStale
	}
	return StatusCurrent
}
