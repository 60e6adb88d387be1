package loadorder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "start-server.sh")
}

func TestWriteStartupScriptCreatesNewScript(t *testing.T) {
	path := scriptPath(t)

	require.NoError(t, WriteStartupScript(path, `-mod="mods/@cbaa3"`))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.True(t, len(content) > 0 && content[:9] == "#!/bin/sh", "script must start with a shebang")
	assert.Contains(t, content, "./arma3server -mod=\"mods/@cbaa3\"")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0100, "script must be executable by owner")
}

func TestWriteStartupScriptReplacesExistingModParam(t *testing.T) {
	path := scriptPath(t)
	existing := "#!/bin/sh\n\n./arma3server -port=2302 -mod=\"@old\" -name=server\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0744))

	require.NoError(t, WriteStartupScript(path, `-mod="mods/@a;mods/@b"`))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, `-mod="mods/@a;mods/@b"`)
	assert.NotContains(t, content, "@old")
	// Every other token survives in its original relative order.
	assert.Contains(t, content, "./arma3server -port=2302 -mod=\"mods/@a;mods/@b\" -name=server")
	assert.Contains(t, content, "#!/bin/sh\n")
}

func TestWriteStartupScriptAppendsWhenNoModParam(t *testing.T) {
	path := scriptPath(t)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n./arma3server -port=2302\n"), 0744))

	require.NoError(t, WriteStartupScript(path, `-mod="mods/@a"`))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "./arma3server -port=2302 -mod=\"mods/@a\"")
}

func TestWriteStartupScriptOnlyTouchesFirstModToken(t *testing.T) {
	path := scriptPath(t)
	require.NoError(t, os.WriteFile(path, []byte("./arma3server -mod=\"@one\" -mod=\"@two\"\n"), 0744))

	require.NoError(t, WriteStartupScript(path, `-mod="@new"`))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "./arma3server -mod=\"@new\" -mod=\"@two\"\n", string(raw))
}

func TestWriteStartupScriptIsIdempotent(t *testing.T) {
	path := scriptPath(t)
	param := `-mod="mods/@cbaa3;mods/@ace3"`

	require.NoError(t, WriteStartupScript(path, param))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteStartupScript(path, param))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
