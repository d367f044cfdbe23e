// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides shared test doubles.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/smoothtype/smoothtype/internal/domain"
	"github.com/stretchr/testify/mock"
)

// NopLogger discards every message.
type NopLogger struct{}

// Progressf discards the message.
func (NopLogger) Progressf(string, ...any) {}

// Warningf discards the message.
func (NopLogger) Warningf(string, ...any) {}

// Errorf discards the message.
func (NopLogger) Errorf(string, ...any) {}

// RecordingLogger keeps every message for later assertions.
type RecordingLogger struct {
	mu       sync.Mutex
	Progress []string
	Warnings []string
	Errors   []string
}

// Progressf records a progress message.
func (l *RecordingLogger) Progressf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Progress = append(l.Progress, fmt.Sprintf(format, args...))
}

// Warningf records a warning.
func (l *RecordingLogger) Warningf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Warnings = append(l.Warnings, fmt.Sprintf(format, args...))
}

// Errorf records an error.
func (l *RecordingLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Errors = append(l.Errors, fmt.Sprintf(format, args...))
}

// MockNotifier mocks the Notifier port.
type MockNotifier struct {
	mock.Mock
}

// Inform records the message.
func (m *MockNotifier) Inform(message string) {
	m.Called(message)
}

// Confirm returns the configured answer.
func (m *MockNotifier) Confirm(ctx context.Context, message, action string) bool {
	args := m.Called(ctx, message, action)

	return args.Bool(0)
}

// MockSettings mocks the SettingsProvider port.
type MockSettings struct {
	mock.Mock
}

// Settings returns the configured settings.
func (m *MockSettings) Settings() (domain.Settings, error) {
	args := m.Called()

	settings, _ := args.Get(0).(domain.Settings)

	return settings, args.Error(1)
}

var (
	_ domain.Logger           = NopLogger{}
	_ domain.Logger           = (*RecordingLogger)(nil)
	_ domain.Notifier         = (*MockNotifier)(nil)
	_ domain.SettingsProvider = (*MockSettings)(nil)
)
