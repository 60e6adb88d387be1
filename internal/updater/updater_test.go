package updater

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/config"
	"github.com/Bilgecrank/arma-3-mod-tools/internal/steamcmd"
)

// deliveringRunner materializes every requested workshop item directory, so
// each download batch "succeeds" on its first attempt.
type deliveringRunner struct {
	workshopDir string
	calls       int
}

func (d *deliveringRunner) Run(args ...string) error {
	d.calls++
	for i, arg := range args {
		if arg == "+workshop_download_item" && i+2 < len(args) {
			if err := os.MkdirAll(filepath.Join(d.workshopDir, args[i+2]), 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// fixtureServer serves workshop item pages and changelog pages whose only
// announcement predates any directory the test creates.
func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	past := time.Now().Add(-24 * time.Hour).Unix()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/changelog") {
			fmt.Fprintf(w, `<div class="detailBox workshopAnnouncement noFooter"><p id="%d">update</p></div>`, past)
			return
		}
		switch r.URL.Query().Get("id") {
		case "1":
			fmt.Fprint(w, `<div class="workshopItemTitle">CBA_A3</div>`)
		case "2":
			fmt.Fprintf(w, `<div class="workshopItemTitle">ACE 3</div><div id="RequiredItems"><a href="%s/?id=1">dep</a></div>`, server.URL)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func pipelineConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.ServerDir = t.TempDir()
	cfg.WorkshopDir = filepath.Join(cfg.ServerDir, "workshop")
	cfg.ModsDir = filepath.Join(cfg.ServerDir, "mods")
	cfg.KeysDir = filepath.Join(cfg.ServerDir, "keys")
	cfg.StartupScript = filepath.Join(cfg.ServerDir, "start-server.sh")
	cfg.ChangelogURL = baseURL + "/changelog"
	cfg.Download.RetryDelay = config.Duration(time.Millisecond)
	require.NoError(t, os.MkdirAll(cfg.WorkshopDir, 0755))
	return cfg
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func TestRunHTMLUpdatePipelineIsIdempotent(t *testing.T) {
	server := fixtureServer(t)
	cfg := pipelineConfig(t, server.URL)

	modList := filepath.Join(t.TempDir(), "mods.html")
	html := fmt.Sprintf(`<html><body><a href="%s/?id=1">CBA</a><a href="%s/?id=2">ACE</a></body></html>`,
		server.URL, server.URL)
	require.NoError(t, os.WriteFile(modList, []byte(html), 0644))

	runner := &deliveringRunner{workshopDir: cfg.WorkshopDir}
	u := New(cfg, runner)
	creds := steamcmd.Credentials{Username: "user", Password: "pass"}

	// First run downloads both mods and writes everything out.
	require.NoError(t, u.RunHTMLUpdate(modList, creds))
	assert.Equal(t, 2, runner.calls, "one download batch plus one validation pass")
	assert.Equal(t, []string{"@ace3", "@cbaa3"}, dirNames(t, cfg.ModsDir))

	script, err := os.ReadFile(cfg.StartupScript)
	require.NoError(t, err)
	assert.Contains(t, string(script), `-mod="mods/@cbaa3;mods/@ace3"`)

	// Second run with no remote changes downloads nothing and leaves the
	// script and symlink set untouched.
	require.NoError(t, u.RunHTMLUpdate(modList, creds))
	assert.Equal(t, 2, runner.calls, "no further steamcmd invocations")
	assert.Equal(t, []string{"@ace3", "@cbaa3"}, dirNames(t, cfg.ModsDir))

	again, err := os.ReadFile(cfg.StartupScript)
	require.NoError(t, err)
	assert.Equal(t, string(script), string(again))
}

func TestRunHTMLUpdateAbortsOnUnreadableModList(t *testing.T) {
	server := fixtureServer(t)
	cfg := pipelineConfig(t, server.URL)
	u := New(cfg, &deliveringRunner{workshopDir: cfg.WorkshopDir})

	err := u.RunHTMLUpdate(filepath.Join(t.TempDir(), "nope.html"), steamcmd.Credentials{})
	require.Error(t, err)
	assert.NoFileExists(t, cfg.StartupScript)
}
