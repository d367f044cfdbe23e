// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application orchestrates the install, uninstall and reinstall flows.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smoothtype/smoothtype/internal/domain"
)

// continuation runs after an uninstall that left no backup behind.
type continuation func(ctx context.Context) (*domain.PatchResult, error)

// PatchService is the install state machine:
// Uninstalled -> Installed -> Uninstalled, plus Reinstall which chains a
// completed uninstall into a fresh install.
//
// Calls are not synchronized; callers run one cycle at a time.
type PatchService struct {
	files    domain.FileSystem
	backup   *BackupService
	paths    domain.Paths
	settings domain.SettingsProvider
	log      domain.Logger
	now      func() time.Time
}

// NewPatchService creates the state machine for paths.
func NewPatchService(files domain.FileSystem, paths domain.Paths, settings domain.SettingsProvider, log domain.Logger) *PatchService {
	return &PatchService{
		files:    files,
		backup:   NewBackupService(files, paths, log),
		paths:    paths,
		settings: settings,
		log:      log,
		now:      time.Now,
	}
}

// Install patches the target unless a fresh backup shows it is already patched.
// A missing duration redirects to the uninstall path.
func (s *PatchService) Install(ctx context.Context) (*domain.PatchResult, error) {
	return s.install(ctx, domain.OperationInstall)
}

// Uninstall restores the target from the backup. Without a backup it is a no-op.
func (s *PatchService) Uninstall(ctx context.Context) (*domain.PatchResult, error) {
	return s.uninstall(ctx, domain.OperationUninstall, nil)
}

// Reinstall uninstalls and, once the target is back to its pristine state,
// installs again with the current settings.
func (s *PatchService) Reinstall(ctx context.Context) (*domain.PatchResult, error) {
	return s.uninstall(ctx, domain.OperationReinstall, func(ctx context.Context) (*domain.PatchResult, error) {
		return s.install(ctx, domain.OperationReinstall)
	})
}

func (s *PatchService) install(ctx context.Context, op domain.Operation) (*domain.PatchResult, error) {
	start := s.now()

	settings, err := s.settings.Settings()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if !settings.Configured() {
		return s.notConfigured(ctx, op, start)
	}

	backupInfo, hasBackup := s.backup.Info()
	if !hasBackup {
		s.log.Progressf("No backup found, performing clean install")

		return s.cleanInstall(ctx, op, settings, start, false)
	}

	targetInfo, err := s.files.Stat(s.paths.Target)
	if err != nil {
		s.log.Errorf("Could not stat %s: %v", s.paths.Target, err)

		return nil, domain.UnknownError("stat", s.paths.Target, err)
	}

	if domain.IsStale(backupInfo.ModTime(), targetInfo.ModTime()) {
		s.log.Warningf("%s changed since the backup was taken (%s vs %s), reinstalling",
			s.paths.Target,
			targetInfo.ModTime().Format(time.RFC3339),
			backupInfo.ModTime().Format(time.RFC3339))

		return s.cleanInstall(ctx, op, settings, start, true)
	}

	s.log.Progressf("Backup is fresh, nothing to do")

	return s.result(op, domain.OutcomeAlreadyEnabled, start, func(r *domain.PatchResult) {
		r.Duration = settings.Duration
	}), nil
}

// cleanInstall computes the new content first, then takes the backup and
// finally replaces the target. Malformed content aborts before any mutation.
func (s *PatchService) cleanInstall(ctx context.Context, op domain.Operation, settings domain.Settings, start time.Time, stale bool) (*domain.PatchResult, error) {
	raw, err := s.files.ReadFile(s.paths.Target)
	if err != nil {
		return nil, s.fail(domain.MutationError("read", s.paths.Target, err))
	}

	original := string(raw)

	patched, err := domain.ComputeInjectedContent(original, settings)
	if err != nil {
		return nil, s.fail(fmt.Errorf("%w: %s: %w", domain.ErrUnknownFile, s.paths.Target, err))
	}

	// A target that still carries a block must not become the restore point.
	pristine, _ := domain.StripBlock(original)
	if pristine != original {
		s.log.Warningf("%s already contains a SmoothType block, backing up the cleaned content", s.paths.Target)
		err = s.backup.WriteBackup(ctx, []byte(pristine))
	} else {
		err = s.backup.CreateBackup(ctx)
	}

	if err != nil {
		return nil, s.fail(err)
	}

	if err := ctx.Err(); err != nil {
		s.discardFreshBackup()

		return nil, err
	}

	if err := s.files.WriteFile(s.paths.Target, []byte(patched)); err != nil {
		s.discardFreshBackup()

		return nil, s.fail(domain.MutationError("write", s.paths.Target, err))
	}

	s.log.Progressf("Injected %dms cursor transition into %s", settings.Duration, s.paths.Target)

	return s.result(op, domain.OutcomeEnabled, start, func(r *domain.PatchResult) {
		r.RestartRequired = true
		r.Stale = stale
		r.Duration = settings.Duration
	}), nil
}

// notConfigured makes sure no patch is left behind when there is no duration.
func (s *PatchService) notConfigured(ctx context.Context, op domain.Operation, start time.Time) (*domain.PatchResult, error) {
	s.log.Warningf("%v, removing any existing patch", domain.ErrNotConfigured)

	restored, err := s.restoreIfInstalled(ctx)
	if err != nil {
		return nil, err
	}

	return s.result(op, domain.OutcomeNotConfigured, start, func(r *domain.PatchResult) {
		r.Restored = restored
		r.RestartRequired = restored
	}), nil
}

// uninstall restores the backup; then, if set, runs next instead of
// reporting. next also runs when there was nothing to restore.
func (s *PatchService) uninstall(ctx context.Context, op domain.Operation, next continuation) (*domain.PatchResult, error) {
	start := s.now()

	restored, err := s.restoreIfInstalled(ctx)
	if err != nil {
		return nil, err
	}

	if next != nil {
		result, err := next(ctx)
		if result != nil && restored {
			result.Restored = true
			result.RestartRequired = true
		}

		return result, err
	}

	if !restored {
		s.log.Progressf("No backup found, nothing to restore")

		return s.result(op, domain.OutcomeNotInstalled, start, nil), nil
	}

	return s.result(op, domain.OutcomeDisabled, start, func(r *domain.PatchResult) {
		r.Restored = true
		r.RestartRequired = true
	}), nil
}

// restoreIfInstalled restores the target when a backup exists and reports
// whether it did.
func (s *PatchService) restoreIfInstalled(ctx context.Context) (bool, error) {
	if !s.backup.HasBackup() {
		return false, nil
	}

	if _, err := s.files.Stat(s.paths.Target); err != nil {
		s.log.Errorf("Could not stat %s: %v", s.paths.Target, err)

		return false, domain.UnknownError("stat", s.paths.Target, err)
	}

	if err := s.backup.Restore(ctx); err != nil {
		return false, s.fail(err)
	}

	return true, nil
}

func (s *PatchService) discardFreshBackup() {
	if err := s.files.RemoveFile(s.paths.Backup); err != nil {
		s.log.Warningf("Could not remove backup %s after failed patch: %v", s.paths.Backup, err)
	}
}

// fail logs errors that are not permission related with their raw detail.
func (s *PatchService) fail(err error) error {
	if !domain.IsPermissionError(err) && !errors.Is(err, context.Canceled) {
		s.log.Errorf("%v", err)
	}

	return err
}

func (s *PatchService) result(op domain.Operation, outcome domain.Outcome, start time.Time, apply func(*domain.PatchResult)) *domain.PatchResult {
	now := s.now()

	result := &domain.PatchResult{
		Operation: op,
		Outcome:   outcome,
		Paths:     s.paths,
		Elapsed:   now.Sub(start),
		Timestamp: now,
	}

	if apply != nil {
		apply(result)
	}

	return result
}
