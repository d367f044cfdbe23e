// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/smoothtype/smoothtype/internal/adapters/platform"
	"github.com/smoothtype/smoothtype/internal/domain"
	hostplatform "github.com/smoothtype/smoothtype/internal/platform"
	"github.com/smoothtype/smoothtype/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const pristineHTML = "<!DOCTYPE html>\n<html>\n<head></head>\n<body></body>\n</html>\n"

// The CLI configures the shared console output, so these tests run sequentially.
type harness struct {
	files    *platform.MockFileManager
	runner   *platform.MockCommandRunner
	notifier *testutil.MockNotifier
	stdout   *bytes.Buffer
	env      map[string]string
	config   string
	paths    domain.Paths
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		files:    platform.NewMockFileManager(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
		runner:   platform.NewMockCommandRunner(),
		notifier: new(testutil.MockNotifier),
		stdout:   &bytes.Buffer{},
		env:      map[string]string{},
		config:   filepath.Join(t.TempDir(), "config.toml"),
		paths:    hostplatform.ResolvePaths("/app/out", false),
	}

	h.files.SetMockFile(h.paths.Target, []byte(pristineHTML))

	return h
}

func (h *harness) run(args ...string) error {
	app := NewCLIWithDependencies(Dependencies{
		Files:    h.files,
		Runner:   h.runner,
		Notifier: h.notifier,
		Log:      testutil.NopLogger{},
		Stdout:   h.stdout,
		Getenv:   func(key string) string { return h.env[key] },
		GOOS:     "linux",
	})

	argv := append([]string{"smoothtype", "--config", h.config, "--app-dir", "/app/out"}, args...)

	return app.Run(context.Background(), argv)
}

func (h *harness) target(t *testing.T) string {
	t.Helper()

	data, ok := h.files.Content(h.paths.Target)
	require.True(t, ok)

	return string(data)
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr *domain.ExitError
	require.ErrorAs(t, err, &exitErr)

	return exitErr.Code
}

func TestNewCLI(t *testing.T) {
	app := NewCLI()

	require.NotNil(t, app.app)
	assert.Equal(t, "smoothtype", app.app.Name)
	assert.NotEmpty(t, app.app.Usage)

	names := make(map[string]bool)
	for _, cmd := range app.app.Commands {
		names[cmd.Name] = true
		for _, alias := range cmd.Aliases {
			names[alias] = true
		}
	}

	for _, expected := range []string{"enable", "enableAnimation", "disable", "disableAnimation", "reload", "reloadAnimation", "status", "paths", "config", "help", "version"} {
		assert.True(t, names[expected], "command %s should exist", expected)
	}
}

func TestEnableDisableCycle(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--duration", "120", "enable"))
	assert.Contains(t, h.stdout.String(), msgEnabled)
	assert.Contains(t, h.target(t), "transition: all 120ms;")
	assert.True(t, h.files.Exists(h.paths.Backup))

	h.stdout.Reset()
	require.NoError(t, h.run("--duration", "120", "enableAnimation"))
	assert.Contains(t, h.stdout.String(), msgAlreadyEnabled)

	h.stdout.Reset()
	require.NoError(t, h.run("disable"))
	assert.Contains(t, h.stdout.String(), msgDisabled)
	assert.Equal(t, pristineHTML, h.target(t))
	assert.False(t, h.files.Exists(h.paths.Backup))

	h.notifier.AssertExpectations(t)
}

func TestReloadAppliesNewDuration(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--duration", "100", "enable"))

	h.stdout.Reset()
	require.NoError(t, h.run("--json", "--duration", "40", "reloadAnimation"))

	var result domain.PatchResult
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &result))
	assert.Equal(t, domain.OperationReinstall, result.Operation)
	assert.Equal(t, domain.OutcomeEnabled, result.Outcome)
	assert.True(t, result.Restored)
	assert.True(t, result.RestartRequired)
	assert.Contains(t, h.target(t), "transition: all 40ms;")
}

func TestEnableReadsEnvironment(t *testing.T) {
	h := newHarness(t)
	h.env["SMOOTHTYPE_DURATION"] = "75"

	require.NoError(t, h.run("enable"))
	assert.Contains(t, h.target(t), "transition: all 75ms;")
}

func TestEnableNotConfigured(t *testing.T) {
	h := newHarness(t)
	h.notifier.On("Inform", msgNotConfigured).Once()

	require.NoError(t, h.run("--json", "enable"))

	var result domain.PatchResult
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &result))
	assert.Equal(t, domain.OutcomeNotConfigured, result.Outcome)
	assert.False(t, result.RestartRequired)
	assert.Equal(t, pristineHTML, h.target(t))
	h.notifier.AssertExpectations(t)
}

func TestRestartCommandRunsWhenConfirmed(t *testing.T) {
	tests := []struct {
		name     string
		accept   bool
		executed []string
	}{
		{name: "accepted", accept: true, executed: []string{"code --reuse-window"}},
		{name: "declined", accept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, os.WriteFile(h.config, []byte("duration = 90\nrestart_command = [\"code\", \"--reuse-window\"]\n"), 0o600))

			h.notifier.On("Confirm", mock.Anything, msgEnabled, msgRestartAction).Return(tt.accept).Once()

			require.NoError(t, h.run("enable"))
			assert.Equal(t, tt.executed, h.runner.Executed)
			h.notifier.AssertExpectations(t)
		})
	}
}

func TestPatchErrorsMapToExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
		code  int
	}{
		{
			name: "permission denied on write",
			setup: func(h *harness) {
				h.files.FailOn("write", h.paths.Target, syscall.EACCES)
			},
			code: ExitPermissionError,
		},
		{
			name: "malformed markers",
			setup: func(h *harness) {
				h.files.SetMockFile(h.paths.Target, []byte("<html>"+domain.MarkerEnd+domain.MarkerStart+"</html>"))
			},
			code: ExitPatchError,
		},
		{
			name: "backup copy fails",
			setup: func(h *harness) {
				h.files.FailOn("copy", h.paths.Backup, syscall.ENOSPC)
			},
			code: ExitPatchError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setup(h)

			err := h.run("--duration", "100", "enable")
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(t, err))
		})
	}
}

func TestJSONModeReportsErrors(t *testing.T) {
	h := newHarness(t)
	h.files.FailOn("write", h.paths.Target, syscall.EACCES)

	err := h.run("--json", "--duration", "100", "enable")
	require.Error(t, err)
	assert.Equal(t, ExitPermissionError, exitCode(t, err))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &decoded))
	assert.Contains(t, decoded["error"], "elevated privileges")
	assert.Equal(t, pristineHTML, h.target(t))
}

func TestTextModeKeepsStdoutClean(t *testing.T) {
	h := newHarness(t)
	h.files.FailOn("write", h.paths.Target, syscall.EACCES)

	require.Error(t, h.run("--duration", "100", "enable"))
	assert.Empty(t, h.stdout.String())
}

func TestInvalidConfigurationExitCode(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.config, []byte("duration = \"fast\"\n"), 0o600))

	err := h.run("enable")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(t, err))
}

func TestNegativeDurationIsUsageError(t *testing.T) {
	h := newHarness(t)

	err := h.run("--duration=-5", "enable")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(t, err))
}

func TestMissingAppDir(t *testing.T) {
	h := newHarness(t)

	app := NewCLIWithDependencies(Dependencies{
		Files:    h.files,
		Runner:   h.runner,
		Notifier: h.notifier,
		Log:      testutil.NopLogger{},
		Stdout:   h.stdout,
		Getenv:   func(string) string { return "" },
		GOOS:     "linux",
	})

	err := app.Run(context.Background(), []string{"smoothtype", "--config", h.config, "paths"})
	require.Error(t, err)
	assert.Equal(t, ExitNotFoundError, exitCode(t, err))
	assert.True(t, errors.Is(err, ErrAppDirNotFound))
}

func TestStatusJSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--duration", "100", "enable"))

	h.stdout.Reset()
	require.NoError(t, h.run("--json", "--duration", "100", "status"))

	var status domain.StatusResult
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &status))
	assert.Equal(t, domain.StateInstalled, status.State)
	assert.True(t, status.Patched)
	assert.Equal(t, 100, status.PatchedDuration)
	assert.Equal(t, h.paths, status.Paths)
}

func TestPathsText(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("paths"))
	assert.Contains(t, h.stdout.String(), h.paths.Target)
	assert.Contains(t, h.stdout.String(), h.paths.Backup)
}

func TestConfigInitWritesFile(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--duration", "200", "config", "init"))

	data, err := os.ReadFile(h.config)
	require.NoError(t, err)
	assert.Contains(t, string(data), "duration = 200")

	err = h.run("config", "init")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(t, err))

	require.NoError(t, h.run("config", "init", "--force"))
}

func TestHelpTopics(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--json", "help", "markers"))

	var topic map[string]string
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &topic))
	assert.Equal(t, "markers", topic["topic"])
	assert.Contains(t, topic["markdown"], domain.MarkerStart)

	err := h.run("help", "nonsense")
	require.Error(t, err)
	assert.Equal(t, ExitNotFoundError, exitCode(t, err))
}

func TestHelpForCommand(t *testing.T) {
	tests := []string{"enable", "disableAnimation", "status"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)

			require.NoError(t, h.run("help", name))
			assert.Contains(t, h.stdout.String(), "USAGE")
		})
	}

	h := newHarness(t)
	require.NoError(t, h.run("help", "enable"))
	assert.Contains(t, h.stdout.String(), "Inject the cursor transition into the editor")
}

func TestRenderMarkdownPlain(t *testing.T) {
	rendered, err := renderMarkdown(helpTopics["exit-codes"], false)
	require.NoError(t, err)
	assert.Contains(t, rendered, "elevated privileges required")
}

func TestOutcomeMessage(t *testing.T) {
	tests := []struct {
		result domain.PatchResult
		want   string
	}{
		{domain.PatchResult{Outcome: domain.OutcomeEnabled}, msgEnabled},
		{domain.PatchResult{Outcome: domain.OutcomeAlreadyEnabled}, msgAlreadyEnabled},
		{domain.PatchResult{Outcome: domain.OutcomeDisabled}, msgDisabled},
		{domain.PatchResult{Outcome: domain.OutcomeNotInstalled}, msgNotInstalled},
		{domain.PatchResult{Outcome: domain.OutcomeNotConfigured}, msgNotConfigured},
		{domain.PatchResult{Outcome: domain.OutcomeNotConfigured, Restored: true}, msgNotConfigured + " " + msgDisabled},
	}

	for _, tt := range tests {
		t.Run(string(tt.result.Outcome), func(t *testing.T) {
			assert.Equal(t, tt.want, outcomeMessage(&tt.result))
		})
	}
}
