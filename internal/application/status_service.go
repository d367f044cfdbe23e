// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"fmt"
	"time"

	"github.com/smoothtype/smoothtype/internal/domain"
)

// StatusService inspects the target and backup without modifying them.
type StatusService struct {
	files    domain.FileSystem
	paths    domain.Paths
	settings domain.SettingsProvider
	now      func() time.Time
}

// NewStatusService creates a new status service.
func NewStatusService(files domain.FileSystem, paths domain.Paths, settings domain.SettingsProvider) *StatusService {
	return &StatusService{
		files:    files,
		paths:    paths,
		settings: settings,
		now:      time.Now,
	}
}

// Status derives the install state from the files on disk.
func (s *StatusService) Status(ctx context.Context) (*domain.StatusResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.StatusResult{
		State:     domain.StateUninstalled,
		Paths:     s.paths,
		Timestamp: s.now(),
	}

	settings, err := s.settings.Settings()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	result.Settings = settings

	if !settings.Configured() {
		result.Problems = append(result.Problems, domain.ErrNotConfigured.Error())
	}

	if info, err := s.files.Stat(s.paths.Backup); err == nil {
		result.BackupExists = true
		result.BackupModified = info.ModTime()
	}

	targetInfo, err := s.files.Stat(s.paths.Target)
	if err != nil {
		result.Problems = append(result.Problems, domain.NewFileAccessError("stat", s.paths.Target, err).Error())

		return result, nil
	}

	result.TargetExists = true
	result.TargetModified = targetInfo.ModTime()

	if data, err := s.files.ReadFile(s.paths.Target); err != nil {
		result.Problems = append(result.Problems, domain.NewFileAccessError("read", s.paths.Target, err).Error())
	} else {
		content := string(data)

		patched, err := domain.HasBlock(content)
		if err != nil {
			result.Problems = append(result.Problems, err.Error())
		}

		result.Patched = patched
		result.PatchedDuration = domain.BlockDuration(content)
	}

	switch {
	case result.BackupExists && domain.IsStale(result.BackupModified, result.TargetModified):
		result.State = domain.StateStale
	case result.BackupExists:
		result.State = domain.StateInstalled

		if result.TargetExists && !result.Patched {
			result.Problems = append(result.Problems, "backup present but target not patched")
		}
	case result.Patched:
		result.State = domain.StateUnmanaged
	}

	return result, nil
}
