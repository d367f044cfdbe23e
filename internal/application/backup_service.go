// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"io/fs"

	"github.com/smoothtype/smoothtype/internal/domain"
)

// BackupService owns the backup file. Its presence is the only persisted
// "is patched" flag.
type BackupService struct {
	files domain.FileSystem
	paths domain.Paths
	log   domain.Logger
}

// NewBackupService creates a backup service for paths.
func NewBackupService(files domain.FileSystem, paths domain.Paths, log domain.Logger) *BackupService {
	return &BackupService{
		files: files,
		paths: paths,
		log:   log,
	}
}

// CreateBackup copies the target to the backup path. A partially written
// backup is removed so it can never be mistaken for a valid one.
func (s *BackupService) CreateBackup(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.log.Progressf("Creating backup %s", s.paths.Backup)

	if err := s.files.CopyFile(s.paths.Target, s.paths.Backup); err != nil {
		s.discardBackup()

		return domain.MutationError("backup", s.paths.Backup, err)
	}

	return nil
}

// WriteBackup stores content as the backup instead of copying the target.
// Used when the target already carries a block that must not be preserved.
func (s *BackupService) WriteBackup(ctx context.Context, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.log.Progressf("Writing cleaned backup %s", s.paths.Backup)

	if err := s.files.WriteFile(s.paths.Backup, content); err != nil {
		s.discardBackup()

		return domain.MutationError("backup", s.paths.Backup, err)
	}

	return nil
}

// HasBackup reports whether the backup exists. Any stat error counts as absent.
func (s *BackupService) HasBackup() bool {
	_, ok := s.Info()

	return ok
}

// Info returns the backup's file information when it exists.
func (s *BackupService) Info() (fs.FileInfo, bool) {
	info, err := s.files.Stat(s.paths.Backup)
	if err != nil {
		return nil, false
	}

	return info, true
}

// Restore deletes the target, copies the backup back and deletes the backup.
// A failed first delete aborts with an elevation error and leaves both files
// untouched. A failed copy leaves the target missing; that state is not
// repaired here.
func (s *BackupService) Restore(ctx context.Context) error {
	s.log.Progressf("Restoring %s from %s", s.paths.Target, s.paths.Backup)

	if err := s.files.RemoveFile(s.paths.Target); err != nil {
		return domain.ElevationError("remove", s.paths.Target, err)
	}

	if err := ctx.Err(); err != nil {
		s.log.Warningf("Restore interrupted after removing %s; the backup is kept at %s", s.paths.Target, s.paths.Backup)

		return err
	}

	if err := s.files.CopyFile(s.paths.Backup, s.paths.Target); err != nil {
		s.log.Errorf("Restore failed after removing %s; the backup is kept at %s: %v", s.paths.Target, s.paths.Backup, err)

		return domain.MutationError("restore", s.paths.Target, err)
	}

	if err := s.files.RemoveFile(s.paths.Backup); err != nil {
		s.log.Warningf("Restored %s but could not remove backup %s: %v", s.paths.Target, s.paths.Backup, err)
	}

	return nil
}

func (s *BackupService) discardBackup() {
	if _, err := s.files.Stat(s.paths.Backup); err != nil {
		return
	}

	if err := s.files.RemoveFile(s.paths.Backup); err != nil {
		s.log.Warningf("Could not remove incomplete backup %s: %v", s.paths.Backup, err)
	}
}
