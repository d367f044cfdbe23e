// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/smoothtype/smoothtype/internal/domain"
)

// CommandRunner implements the CommandRunner port for real system commands.
type CommandRunner struct {
	log domain.Logger
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(log domain.Logger) *CommandRunner {
	return &CommandRunner{log: log}
}

// Execute runs a command with the terminal attached and waits for it.
func (r *CommandRunner) Execute(ctx context.Context, name string, args ...string) error {
	r.log.Progressf("Executing: %s %s", name, strings.Join(args, " "))

	// #nosec G204 - the restart command comes from the user's own configuration
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// MockCommandRunner implements the CommandRunner port for testing.
type MockCommandRunner struct {
	Executed []string
	Err      error
}

// NewMockCommandRunner creates a new mock command runner for testing.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{}
}

// Execute records the command line and returns the configured error.
func (r *MockCommandRunner) Execute(_ context.Context, name string, args ...string) error {
	r.Executed = append(r.Executed, strings.TrimSpace(name+" "+strings.Join(args, " ")))

	return r.Err
}

var (
	_ domain.CommandRunner = (*CommandRunner)(nil)
	_ domain.CommandRunner = (*MockCommandRunner)(nil)
)
