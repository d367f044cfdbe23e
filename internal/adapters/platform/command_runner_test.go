// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package platform_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/smoothtype/smoothtype/internal/adapters/platform"
	"github.com/smoothtype/smoothtype/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRunner_RunsCommand(t *testing.T) {
	t.Parallel()

	log := &testutil.RecordingLogger{}
	runner := platform.NewCommandRunner(log)

	// The test binary itself exits cleanly when no test matches.
	require.NoError(t, runner.Execute(context.Background(), os.Args[0], "-test.run=^$"))
	require.Len(t, log.Progress, 1)
	assert.Contains(t, log.Progress[0], "-test.run=^$")
}

func TestCommandRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	runner := platform.NewCommandRunner(testutil.NopLogger{})

	err := runner.Execute(context.Background(), "definitely-not-a-real-binary-smoothtype")
	assert.Error(t, err)
}

func TestMockCommandRunner(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockCommandRunner()
	require.NoError(t, runner.Execute(context.Background(), "code", "--reuse-window"))
	assert.Equal(t, []string{"code --reuse-window"}, runner.Executed)

	runner.Err = errors.New("boom")
	assert.Error(t, runner.Execute(context.Background(), "code"))
}
