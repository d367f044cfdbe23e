// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// Common domain errors.
var (
	ErrPermission       = errors.New("elevated privileges required")
	ErrUnknownFile      = errors.New("unknown file error")
	ErrNotConfigured    = errors.New("cursor transition duration not configured")
	ErrMalformedMarkers = errors.New("malformed SmoothType markers")
	ErrMissingRootTag   = errors.New("closing </html> tag not found")
)

// Error codes treated as "needs elevated privileges" when they surface during a mutation.
const (
	CodeNotExist   = "ENOENT"
	CodeAccess     = "EACCES"
	CodePermission = "EPERM"
	CodeUnknown    = "EUNKNOWN"
)

// FileAccessError records a failed file-system operation together with the errno name.
type FileAccessError struct {
	Op   string
	Path string
	Code string
	Err  error
}

// NewFileAccessError wraps err, deriving Code from the underlying errno.
func NewFileAccessError(op, path string, err error) *FileAccessError {
	return &FileAccessError{
		Op:   op,
		Path: path,
		Code: ErrorCode(err),
		Err:  err,
	}
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Code, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// IsPermissionCode reports whether code belongs to the ENOENT|EACCES|EPERM class.
func IsPermissionCode(code string) bool {
	switch code {
	case CodeNotExist, CodeAccess, CodePermission:
		return true
	default:
		return false
	}
}

var errnoNames = map[syscall.Errno]string{ //nolint:gochecknoglobals
	syscall.ENOENT: CodeNotExist,
	syscall.EACCES: CodeAccess,
	syscall.EPERM:  CodePermission,
	syscall.EEXIST: "EEXIST",
	syscall.EISDIR: "EISDIR",
	syscall.ENOSPC: "ENOSPC",
	syscall.EROFS:  "EROFS",
	syscall.EBUSY:  "EBUSY",
}

// ErrorCode returns the errno name carried by err, or EUNKNOWN.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if name, ok := errnoNames[errno]; ok {
			return name
		}
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return CodeNotExist
	case errors.Is(err, fs.ErrPermission):
		return CodeAccess
	default:
		return CodeUnknown
	}
}

// MutationError classifies a failed write/remove/copy on the target or backup:
// permission-class codes become ErrPermission, everything else ErrUnknownFile.
func MutationError(op, path string, err error) error {
	fae := NewFileAccessError(op, path, err)
	if IsPermissionCode(fae.Code) {
		return fmt.Errorf("%w: %w", ErrPermission, fae)
	}

	return fmt.Errorf("%w: %w", ErrUnknownFile, fae)
}

// UnknownError classifies err as ErrUnknownFile regardless of its code.
// Used for stat failures, which never indicate a privilege problem on their own.
func UnknownError(op, path string, err error) error {
	return fmt.Errorf("%w: %w", ErrUnknownFile, NewFileAccessError(op, path, err))
}

// ElevationError classifies err as ErrPermission regardless of its code.
func ElevationError(op, path string, err error) error {
	return fmt.Errorf("%w: %w", ErrPermission, NewFileAccessError(op, path, err))
}

// IsPermissionError reports whether err needs elevated privileges to resolve.
func IsPermissionError(err error) bool {
	return errors.Is(err, ErrPermission)
}

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
	ShowDetails bool     // Whether to show technical details
}

// GetErrorInfo analyzes an error and returns user-friendly information.
func GetErrorInfo(err error, verbose bool) ErrorInfo {
	switch {
	case err == nil:
		return ErrorInfo{}
	case errors.Is(err, ErrPermission):
		return ErrorInfo{
			Message: "SmoothType needs elevated privileges to modify the editor installation",
			Suggestions: []string{
				"Re-run the command with sudo (or as Administrator on Windows)",
				"Check that the installation directory is writable",
			},
			ShowDetails: verbose,
		}
	case errors.Is(err, ErrMalformedMarkers), errors.Is(err, ErrMissingRootTag):
		return ErrorInfo{
			Message:     "The bootstrap HTML file has an unexpected layout",
			Suggestions: []string{"Reinstall the editor to restore a pristine bootstrap file", "Run 'smoothtype status' to inspect the markers"},
			ShowDetails: true,
		}
	case errors.Is(err, ErrNotConfigured):
		return ErrorInfo{
			Message:     "Cursor transition duration is not configured",
			Suggestions: []string{"Set 'duration' in the config file or pass --duration"},
			ShowDetails: verbose,
		}
	default:
		return ErrorInfo{
			Message:     "Something went wrong",
			Suggestions: []string{"Run with --verbose for more details"},
			ShowDetails: true,
		}
	}
}

// FormatErrorMessage formats an error for display.
func FormatErrorMessage(err error, verbose bool) string {
	info := GetErrorInfo(err, verbose)

	var result strings.Builder

	result.WriteString(info.Message)

	if info.ShowDetails && err != nil {
		result.WriteString(": ")
		result.WriteString(err.Error())
	}

	if len(info.Suggestions) > 0 && !verbose {
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")
	} else if len(info.Suggestions) > 0 {
		result.WriteString("\n  Suggestions:")

		for _, suggestion := range info.Suggestions {
			result.WriteString("\n    • ")
			result.WriteString(suggestion)
		}
	}

	return result.String()
}
