// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console renders human-facing messages on the terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// OutputState holds global output configuration.
type OutputState struct {
	Verbose bool
	JSON    bool
	Plain   bool

	// Err receives all diagnostics; nil means os.Stderr.
	Err io.Writer
}

// DefaultOutput provides output formatting utilities.
var DefaultOutput = &OutputState{} //nolint:gochecknoglobals

// SetMode configures output mode.
func (o *OutputState) SetMode(verbose, json, plain bool) {
	o.Verbose = verbose
	o.JSON = json
	o.Plain = plain
}

// IsTTY checks if the file descriptor is a terminal (not piped/redirected).
func (o *OutputState) IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// ColorEnabled reports whether ANSI styling may be emitted.
func (o *OutputState) ColorEnabled() bool {
	if o.JSON || o.Plain {
		return false
	}

	// Check no-color.org standards
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}

	return o.Err == nil && o.IsTTY(os.Stderr.Fd())
}

// Style applies style when color is enabled and returns text untouched otherwise.
func (o *OutputState) Style(style lipgloss.Style, text string) string {
	if !o.ColorEnabled() {
		return text
	}

	return style.Render(text)
}

func (o *OutputState) writer() io.Writer {
	if o.Err != nil {
		return o.Err
	}

	return os.Stderr
}

// Progressf writes progress messages to stderr (only if verbose and not JSON/Plain).
func (o *OutputState) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		_, _ = fmt.Fprintf(o.writer(), format+"\n", args...)
	}
}

// Successf writes success messages to stderr (only if not JSON/Plain).
func (o *OutputState) Successf(format string, args ...any) {
	if !o.JSON && !o.Plain {
		_, _ = fmt.Fprintln(o.writer(), o.Style(successStyle, "✓ "+fmt.Sprintf(format, args...)))
	}
}

// Warningf writes warning messages to stderr (always visible).
func (o *OutputState) Warningf(format string, args ...any) {
	if o.Plain {
		_, _ = fmt.Fprintf(o.writer(), "warning: "+format+"\n", args...)

		return
	}

	_, _ = fmt.Fprintln(o.writer(), o.Style(warningStyle, "⚠ "+fmt.Sprintf(format, args...)))
}

// Errorf writes error messages to stderr (always visible).
func (o *OutputState) Errorf(format string, args ...any) {
	if o.Plain {
		_, _ = fmt.Fprintf(o.writer(), "error: "+format+"\n", args...)

		return
	}

	_, _ = fmt.Fprintln(o.writer(), o.Style(errorStyle, "✗ "+fmt.Sprintf(format, args...)))
}

//nolint:gochecknoglobals
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")).PaddingLeft(1)
)
