package main

import (
	"github.com/Bilgecrank/arma-3-mod-tools/cmd" // CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// a3modtools automates mod maintenance for a dedicated Arma 3 Linux server:
//   - Parses an Arma 3 Launcher HTML mod-list export into workshop item URLs
//   - Scrapes each item's workshop page for its name and declared dependencies
//   - Compares workshop changelog timestamps against the local mirror to find stale mods
//   - Drives steamcmd in batched invocations, verifying downloads by directory
//     presence and retrying incomplete batches up to a configured bound
//   - Lowercases the workshop mirror and maintains @shortname and .bikey symlinks
//   - Topologically sorts mod dependencies and writes the -mod= parameter into
//     the server startup script
//
// Error handling strategy:
//   - Per-item failures (an unreachable workshop page, a lowercase collision,
//     a missing mirror directory) are reported and the run continues, applying
//     as much of the pipeline as possible
//   - A download batch that never completes or a dependency cycle aborts the
//     run with a non-zero exit status, the latter before the startup script
//     is touched
func main() {
	cmd.Execute()
}
