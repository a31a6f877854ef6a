package gdalext

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/magefile/mage/sh"
)

// CommandRunner executes external programs for the resolver and generators.
//
// Exec runs name in dir, or in the current directory when dir is empty.
// It reports ran=false when the program could not be started at all (not on
// PATH, not executable) or was stopped because ctx ended. A program that
// started and exited non-zero reports ran=true along with a non-nil error.
type CommandRunner interface {
	Exec(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) (ran bool, err error)
}

// DefaultWaitDelay bounds how long ShellRunner waits for output pipes after
// a canceled command has been killed.
const DefaultWaitDelay = time.Second

// ShellRunner runs commands with os/exec and classifies the outcome with
// mage's sh helpers.
//
// Arguments are passed through verbatim; no $VAR expansion takes place.
type ShellRunner struct {
	// Env is added to the inherited environment of every command.
	Env map[string]string

	// WaitDelay overrides DefaultWaitDelay.
	WaitDelay time.Duration
}

// Exec runs name with args in dir. The command is killed when ctx ends.
func (r ShellRunner) Exec(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}
	if len(r.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range r.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		return false, ctxErr
	}
	return sh.CmdRan(err), err
}

// ExitStatus returns the exit code carried by an error from CommandRunner.Exec.
func ExitStatus(err error) int {
	return sh.ExitStatus(err)
}
