package loadorder

import (
	"fmt"
	"os"
	"strings"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// modParamPrefix identifies the one startup-script token this tool manages.
const modParamPrefix = "-mod="

// newScript is the script written when none exists yet.
const newScript = "#!/bin/sh\n\necho \"Starting server PRESS CTRL+C to exit\"\n./arma3server %s\n"

// WriteStartupScript inserts or replaces the -mod= parameter in the server
// startup script. When no script exists one is created with a shebang, a
// startup banner, and the server invocation, and made executable.
//
// An existing script is rewritten by reconstruction: each line is split
// into whitespace-delimited tokens, the first token starting with -mod=
// anywhere in the file is swapped for the new parameter, and if none is
// found the parameter is appended to the last non-blank line. Every other
// token keeps its line and relative order; runs of spaces or tabs within a
// line collapse to single spaces.
func WriteStartupScript(path, modParam string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read startup script %s: %w", path, err)
		}
		logger.Info("[INFO] Creating startup script %s\n", path)
		if err := os.WriteFile(path, []byte(fmt.Sprintf(newScript, modParam)), 0744); err != nil {
			return fmt.Errorf("failed to create startup script %s: %w", path, err)
		}
		// WriteFile masks the mode by umask; the script must stay executable.
		return os.Chmod(path, 0744)
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	replaced := false
	lastContent := -1
	for i, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		lastContent = i
		if !replaced {
			for j, token := range tokens {
				if strings.HasPrefix(token, modParamPrefix) {
					tokens[j] = modParam
					replaced = true
					break
				}
			}
		}
		lines[i] = strings.Join(tokens, " ")
	}
	if !replaced {
		if lastContent >= 0 {
			lines[lastContent] += " " + modParam
		} else {
			lines = append(lines, modParam)
		}
	}

	logger.Info("[INFO] Updating startup script %s\n", path)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0744); err != nil {
		return fmt.Errorf("failed to rewrite startup script %s: %w", path, err)
	}
	return nil
}
