// Package execx provides a testable abstraction for command execution.
package execx

import (
	"context"
	"os/exec"
)

// Runner defines an interface for executing external commands. Every
// delegated tool here (make, git, st-flash, brew) is sensitive to its
// working directory, so dir is part of the contract; an empty dir runs
// in the process working directory.
type Runner interface {
	CombinedOutput(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// RealRunner implements Runner using os/exec.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// CombinedOutput executes a command in dir and returns its combined
// stdout and stderr output.
func (r *RealRunner) CombinedOutput(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
