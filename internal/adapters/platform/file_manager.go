// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides file system and command adapters.
package platform

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/smoothtype/smoothtype/internal/domain"
)

// defaultFileMode is used when a destination file has no prior mode to inherit.
const defaultFileMode fs.FileMode = 0o644

// FileManager implements the FileSystem port for real file operations.
type FileManager struct {
	log domain.Logger
}

// NewFileManager creates a new file manager.
func NewFileManager(log domain.Logger) *FileManager {
	return &FileManager{log: log}
}

// Stat returns file information.
func (f *FileManager) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// CopyFile streams src into dest. It returns only after dest has been synced
// and closed, so a truncated copy is never reported as complete.
func (f *FileManager) CopyFile(src, dest string) (err error) {
	f.log.Progressf("Copying file: %s -> %s", src, dest)

	// #nosec G304 - paths come from the resolved installation directory
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}

	defer func() { _ = srcFile.Close() }()

	mode := defaultFileMode
	if info, statErr := srcFile.Stat(); statErr == nil {
		mode = info.Mode().Perm()
	}

	// #nosec G304 - paths come from the resolved installation directory
	destFile, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	if _, err = io.Copy(destFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err = destFile.Sync(); err != nil {
		return fmt.Errorf("failed to flush destination file: %w", err)
	}

	return nil
}

// ReadFile reads data from a file.
func (f *FileManager) ReadFile(path string) ([]byte, error) {
	f.log.Progressf("Reading file: %s", path)

	// #nosec G304 - paths come from the resolved installation directory
	return os.ReadFile(path)
}

// WriteFile replaces path atomically: data goes to a sibling temporary file
// which is then renamed over the original, keeping its permissions.
func (f *FileManager) WriteFile(path string, data []byte) error {
	f.log.Progressf("Writing file: %s (%d bytes)", path, len(data))

	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		cleanup()

		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()

		cleanup()

		return fmt.Errorf("failed to flush temporary file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()

		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()

		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		cleanup()

		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}

// RemoveFile removes a file.
func (f *FileManager) RemoveFile(path string) error {
	f.log.Progressf("Removing file: %s", path)

	return os.Remove(path)
}

// MockFileManager implements the FileSystem port in memory for testing.
// Every mutation stamps the file with the mock clock.
type MockFileManager struct {
	mu       sync.Mutex
	files    map[string]*mockFile
	failures map[string]error
	now      time.Time
}

type mockFile struct {
	data    []byte
	modTime time.Time
}

// NewMockFileManager creates a new mock file manager whose clock starts at now.
func NewMockFileManager(now time.Time) *MockFileManager {
	return &MockFileManager{
		files:    make(map[string]*mockFile),
		failures: make(map[string]error),
		now:      now,
	}
}

// SetMockFile sets the content of a mock file, stamped with the current mock time.
func (f *MockFileManager) SetMockFile(path string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.files[path] = &mockFile{data: append([]byte(nil), content...), modTime: f.now}
}

// SetModTime overrides the modification time of a mock file.
func (f *MockFileManager) SetModTime(path string, modTime time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if file, ok := f.files[path]; ok {
		file.modTime = modTime
	}
}

// Advance moves the mock clock forward.
func (f *MockFileManager) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

// FailOn makes the named operation ("stat", "copy", "read", "write", "remove") on path return err.
// For "copy" the path is the destination.
func (f *MockFileManager) FailOn(op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failures[op+":"+path] = err
}

// Content returns the content of a mock file.
func (f *MockFileManager) Content(path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, ok := f.files[path]
	if !ok {
		return nil, false
	}

	return append([]byte(nil), file.data...), true
}

// Exists reports whether a mock file exists.
func (f *MockFileManager) Exists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.files[path]

	return ok
}

func (f *MockFileManager) failure(op, path string) error {
	if err, ok := f.failures[op+":"+path]; ok {
		return err
	}

	return nil
}

// Stat returns mock file information.
func (f *MockFileManager) Stat(path string) (fs.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure("stat", path); err != nil {
		return nil, err
	}

	file, ok := f.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}

	return mockFileInfo{name: filepath.Base(path), size: int64(len(file.data)), modTime: file.modTime}, nil
}

// CopyFile copies between mock files.
func (f *MockFileManager) CopyFile(src, dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure("copy", dest); err != nil {
		return err
	}

	file, ok := f.files[src]
	if !ok {
		return &fs.PathError{Op: "open", Path: src, Err: fs.ErrNotExist}
	}

	f.files[dest] = &mockFile{data: append([]byte(nil), file.data...), modTime: f.now}

	return nil
}

// ReadFile reads from a mock file.
func (f *MockFileManager) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure("read", path); err != nil {
		return nil, err
	}

	file, ok := f.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	return append([]byte(nil), file.data...), nil
}

// WriteFile writes to a mock file.
func (f *MockFileManager) WriteFile(path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure("write", path); err != nil {
		return err
	}

	f.files[path] = &mockFile{data: append([]byte(nil), data...), modTime: f.now}

	return nil
}

// RemoveFile removes a mock file.
func (f *MockFileManager) RemoveFile(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure("remove", path); err != nil {
		return err
	}

	if _, ok := f.files[path]; !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}

	delete(f.files, path)

	return nil
}

type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() fs.FileMode  { return defaultFileMode }
func (i mockFileInfo) ModTime() time.Time { return i.modTime }
func (i mockFileInfo) IsDir() bool        { return false }
func (i mockFileInfo) Sys() any           { return nil }

var (
	_ domain.FileSystem = (*FileManager)(nil)
	_ domain.FileSystem = (*MockFileManager)(nil)
)
