// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package console

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/smoothtype/smoothtype/internal/domain"
)

// AutoYes is set by the --yes flag to auto-accept prompts.
var AutoYes bool //nolint:gochecknoglobals // CLI flag state needs to be global

// Notifier implements domain.Notifier on the terminal.
type Notifier struct {
	output *OutputState
	in     *os.File
	prompt func(ctx context.Context, message, action string) (bool, error)
}

// NewNotifier creates a notifier writing through output and reading from stdin.
func NewNotifier(output *OutputState) *Notifier {
	return &Notifier{
		output: output,
		in:     os.Stdin,
		prompt: promptConfirm,
	}
}

// Inform shows a message that needs no answer.
func (n *Notifier) Inform(message string) {
	if n.output.JSON {
		return
	}

	_, _ = fmt.Fprintln(n.writer(), n.output.Style(noticeStyle, message))
}

// Confirm asks the user to take action. --yes accepts, non-interactive
// sessions decline.
func (n *Notifier) Confirm(ctx context.Context, message, action string) bool {
	if AutoYes {
		_, _ = fmt.Fprintf(n.writer(), "Auto-accepting: %s\n", action)

		return true
	}

	if n.output.JSON || n.in == nil || !n.output.IsTTY(n.in.Fd()) {
		n.Inform(message)

		return false
	}

	ok, err := n.prompt(ctx, message, action)
	if err != nil {
		n.output.Progressf("prompt aborted: %v", err)

		return false
	}

	return ok
}

func (n *Notifier) writer() io.Writer {
	return n.output.writer()
}

func promptConfirm(ctx context.Context, message, action string) (bool, error) {
	var accepted bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative(action).
				Negative("Later").
				Value(&accepted),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return false, err
	}

	return accepted, nil
}

var _ domain.Notifier = (*Notifier)(nil)
