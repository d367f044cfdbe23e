// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for SmoothType.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/smoothtype/smoothtype/internal/cli"
	"github.com/smoothtype/smoothtype/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	// One patch cycle at a time across processes
	lockPath := filepath.Join(os.TempDir(), "smoothtype.lock")
	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

		return cli.ExitGeneralError
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another smoothtype instance is already running\n")

		return cli.ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewCLI().Run(ctx, os.Args); err != nil {
		exitErr := &domain.ExitError{}
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Message)

			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "%v\n", err)

		return cli.ExitUsageError
	}

	return cli.ExitSuccess
}
