// Package git builds git invocations for the session workspace.
package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// CloneArgs returns the arguments of a clone of url into dest.
// The branch is left to the remote default, matching a plain clone.
func CloneArgs(url, dest string) []string {
	return []string{"clone", url, dest}
}

// CloneCommand constructs, but does not start, a clone of url into dest.
func CloneCommand(ctx context.Context, url, dest string) *exec.Cmd {
	args := CloneArgs(url, dest)
	log.Debug().Str("cmd", "git").Strs("args", args).Msg("prepared git command")
	return exec.CommandContext(ctx, "git", args...)
}

// CommandLine renders a command for display.
func CommandLine(cmd *exec.Cmd) string {
	return strings.Join(cmd.Args, " ")
}
