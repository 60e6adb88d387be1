package workshop

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// changelogPage renders a changelog page whose newest announcement carries
// the given Unix timestamp.
func changelogPage(stamp int64) string {
	return fmt.Sprintf(`<html><body>
		<div class="detailBox workshopAnnouncement noFooter">
			<p id="%d">Update: fixed things</p>
		</div>
	</body></html>`, stamp)
}

// changelogServer serves one changelog body for every request.
func changelogServer(t *testing.T, body string) *Resolver {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return testResolver(server.URL)
}

// mirrorDir creates a mirror directory whose mtime is set to synced.
func mirrorDir(t *testing.T, synced time.Time) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "123456")
	require.NoError(t, os.MkdirAll(path, 0755))
	require.NoError(t, os.Chtimes(path, synced, synced))
	return path
}

func TestNeedsUpdateAbsentDirectory(t *testing.T) {
	resolver := changelogServer(t, changelogPage(time.Now().Unix()))
	status := resolver.NeedsUpdate("123456", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, StatusAbsent, status)
}

func TestNeedsUpdateStaleWhenAnnouncementIsNewer(t *testing.T) {
	synced := time.Now().Add(-24 * time.Hour)
	resolver := changelogServer(t, changelogPage(synced.Add(time.Hour).Unix()))

	status := resolver.NeedsUpdate("123456", mirrorDir(t, synced))
	assert.Equal(t, StatusStale, status)
}

func TestNeedsUpdateCurrentWhenSyncIsNewer(t *testing.T) {
	synced := time.Now().Add(-time.Hour)
	resolver := changelogServer(t, changelogPage(synced.Add(-24*time.Hour).Unix()))

	status := resolver.NeedsUpdate("123456", mirrorDir(t, synced))
	assert.Equal(t, StatusCurrent, status)
}

func TestNeedsUpdateCurrentWhenTimesAreEqual(t *testing.T) {
	synced := time.Unix(time.Now().Add(-time.Hour).Unix(), 0)
	resolver := changelogServer(t, changelogPage(synced.Unix()))

	status := resolver.NeedsUpdate("123456", mirrorDir(t, synced))
	assert.Equal(t, StatusCurrent, status)
}

func TestNeedsUpdateFailsOpenOnMissingAnnouncement(t *testing.T) {
	resolver := changelogServer(t, `<html><body><p>no announcements here</p></body></html>`)

	status := resolver.NeedsUpdate("123456", mirrorDir(t, time.Now()))
	assert.Equal(t, StatusStale, status)
}

func TestNeedsUpdateFailsOpenOnUnreachableChangelog(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	resolver := testResolver(server.URL)
	server.Close()

	status := resolver.NeedsUpdate("123456", mirrorDir(t, time.Now()))
	assert.Equal(t, StatusStale, status)
}
