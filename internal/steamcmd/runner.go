package steamcmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Bilgecrank/arma-3-mod-tools/internal/logger"
)

// Runner executes one steamcmd invocation and waits for it to exit. The
// exec-backed implementation is swapped for a fake in tests, which is also
// how the download retry loop is exercised without a Steam account.
type Runner interface {
	Run(args ...string) error
}

// ExecRunner runs the real steamcmd binary, wired to the terminal so the
// operator sees download progress and can answer any Steam Guard prompt.
type ExecRunner struct {
	Bin string // steamcmd binary name or path
}

// Run invokes steamcmd with the given directives. The error only reflects
// whether the process ran and exited zero; callers must not treat success
// as proof that the requested items actually downloaded.
func (e ExecRunner) Run(args ...string) error {
	logger.Debug("[DEBUG] Running %s with %d directives\n", e.Bin, strings.Count(strings.Join(args, " "), "+"))

	cmd := exec.Command(e.Bin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s exited abnormally: %w", e.Bin, err)
	}
	return nil
}
