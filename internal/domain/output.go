// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "time"

// OutputPort defines the interface for presenting command results.
// This is a domain port that adapters implement for different output formats.
type OutputPort interface {
	// Success outputs a success message with optional structured data
	Success(message string, data interface{}) error

	// Error outputs an error message
	Error(message string) error

	// Info outputs an informational message
	Info(message string) error

	// Table outputs tabular data
	Table(headers []string, rows [][]string) error

	// IsQuiet returns true if output should be suppressed
	IsQuiet() bool

	// IsJSON reports whether results are machine-readable
	IsJSON() bool
}

// Operation names a state machine entry point.
type Operation string

// Entry points exposed to the user.
const (
	OperationInstall   Operation = "enable"
	OperationUninstall Operation = "disable"
	OperationReinstall Operation = "reload"
)

// Outcome is the terminal result of one state machine cycle.
type Outcome string

// Possible outcomes.
const (
	// OutcomeEnabled means the block was written; a restart is required.
	OutcomeEnabled Outcome = "enabled"
	// OutcomeAlreadyEnabled means a fresh backup exists and nothing changed.
	OutcomeAlreadyEnabled Outcome = "already_enabled"
	// OutcomeDisabled means the backup was restored; a restart is required.
	OutcomeDisabled Outcome = "disabled"
	// OutcomeNotInstalled means there was no backup to restore.
	OutcomeNotInstalled Outcome = "not_installed"
	// OutcomeNotConfigured means install was redirected to the disable path.
	OutcomeNotConfigured Outcome = "not_configured"
)

// PatchResult represents the outcome of an install, uninstall or reinstall.
type PatchResult struct {
	Operation       Operation     `json:"operation"`
	Outcome         Outcome       `json:"outcome"`
	RestartRequired bool          `json:"restart_required"`
	Restored        bool          `json:"restored"`
	Stale           bool          `json:"stale,omitempty"`
	Duration        int           `json:"duration_ms,omitempty"`
	Paths           Paths         `json:"paths"`
	Elapsed         time.Duration `json:"elapsed"`
	Timestamp       time.Time     `json:"timestamp"`
}

// State is the persisted install state derived from the files on disk.
type State string

// Install states.
const (
	StateUninstalled State = "uninstalled"
	StateInstalled   State = "installed"
	// StateStale means a backup exists but the target was replaced externally.
	StateStale State = "stale"
	// StateUnmanaged means the target carries a block but no backup exists.
	StateUnmanaged State = "unmanaged"
)

// StatusResult represents the read-only verification report.
type StatusResult struct {
	State           State     `json:"state"`
	Paths           Paths     `json:"paths"`
	TargetExists    bool      `json:"target_exists"`
	BackupExists    bool      `json:"backup_exists"`
	Patched         bool      `json:"patched"`
	PatchedDuration int       `json:"patched_duration_ms,omitempty"`
	TargetModified  time.Time `json:"target_modified,omitzero"`
	BackupModified  time.Time `json:"backup_modified,omitzero"`
	Settings        Settings  `json:"settings"`
	Problems        []string  `json:"problems,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
