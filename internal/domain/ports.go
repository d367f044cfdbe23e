// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
	"io/fs"
)

// Paths holds the absolute locations of the target and its backup.
type Paths struct {
	Target string `json:"target"`
	Backup string `json:"backup"`
}

// FileSystem defines the file operations the patch engine depends on.
type FileSystem interface {
	// Stat returns file information, including the modification time.
	Stat(path string) (fs.FileInfo, error)

	// CopyFile streams src to dest and returns only once dest is flushed and closed.
	CopyFile(src, dest string) error

	// ReadFile reads data from a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the content of a file.
	WriteFile(path string, data []byte) error

	// RemoveFile removes a file.
	RemoveFile(path string) error
}

// SettingsProvider supplies the current configuration at patch time.
type SettingsProvider interface {
	Settings() (Settings, error)
}

// SettingsFunc adapts a plain function to SettingsProvider.
type SettingsFunc func() (Settings, error)

// Settings calls f.
func (f SettingsFunc) Settings() (Settings, error) {
	return f()
}

// Logger receives diagnostic messages from the services.
type Logger interface {
	Progressf(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Notifier presents advisory messages to the user and collects a choice.
type Notifier interface {
	// Inform shows a message that needs no answer.
	Inform(message string)

	// Confirm shows a message with a single action and reports whether it was chosen.
	Confirm(ctx context.Context, message, action string) bool
}

// CommandRunner defines the interface for executing host commands.
type CommandRunner interface {
	// Execute runs a command and returns the result.
	Execute(ctx context.Context, name string, args ...string) error
}
