// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests in this file mutate AutoYes and therefore do not run in parallel.

func TestNotifierInform(t *testing.T) {
	var buf bytes.Buffer

	n := NewNotifier(&OutputState{Err: &buf})
	n.Inform("SmoothType enabled. Restart the editor to apply.")

	assert.Contains(t, buf.String(), "SmoothType enabled")
}

func TestNotifierInformSilentInJSONMode(t *testing.T) {
	var buf bytes.Buffer

	n := NewNotifier(&OutputState{JSON: true, Err: &buf})
	n.Inform("hidden")

	assert.Empty(t, buf.String())
}

func TestNotifierConfirmAutoYes(t *testing.T) {
	AutoYes = true

	t.Cleanup(func() { AutoYes = false })

	var buf bytes.Buffer

	n := NewNotifier(&OutputState{Err: &buf})
	n.prompt = func(context.Context, string, string) (bool, error) {
		t.Fatal("prompt must not run when --yes is set")

		return false, nil
	}

	assert.True(t, n.Confirm(context.Background(), "restart?", "Restart"))
	assert.Contains(t, buf.String(), "Auto-accepting: Restart")
}

func TestNotifierConfirmNonInteractiveDeclines(t *testing.T) {
	var buf bytes.Buffer

	n := NewNotifier(&OutputState{Err: &buf})
	n.in = nil
	n.prompt = func(context.Context, string, string) (bool, error) {
		t.Fatal("prompt must not run without a terminal")

		return false, nil
	}

	assert.False(t, n.Confirm(context.Background(), "Restart required", "Restart"))
	assert.Contains(t, buf.String(), "Restart required")
}
