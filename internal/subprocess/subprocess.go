// Package subprocess implements the sub-command runner contract (spec
// §4.7, §6): it shells out via os/exec and reports only the exit code,
// which is all the expression evaluator needs.
package subprocess

import (
	"context"
	"os/exec"
	"runtime"
)

// Runner is the default contracts.SubCommandRunner: it launches cmdText
// through the platform shell and returns its exit code, mapping a launch
// failure to 255 per spec §4.7(b).
type Runner struct{}

// NewRunner returns a Runner.
func NewRunner() Runner { return Runner{} }

// shellCommand returns the platform shell invocation for cmdText. NMAKE
// itself only ever runs under cmd.exe, but the core is exercised in CI on
// whatever host is available, so the evaluator falls back to a POSIX shell
// there.
func shellCommand(ctx context.Context, cmdText string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/c", cmdText)
	}
	return exec.CommandContext(ctx, "sh", "-c", cmdText)
}

// RunAndGetExitCode implements contracts.SubCommandRunner.
func (Runner) RunAndGetExitCode(ctx context.Context, cmdText string, env []string) int {
	cmd := shellCommand(ctx, cmdText)
	cmd.Env = env

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		return 255
	}
	return 0
}
