// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/smoothtype/smoothtype/internal/application"
	"github.com/smoothtype/smoothtype/internal/config"
	"github.com/smoothtype/smoothtype/internal/console"
	"github.com/smoothtype/smoothtype/internal/domain"
	hostplatform "github.com/smoothtype/smoothtype/internal/platform"
	"github.com/urfave/cli/v3"
)

// User-facing messages for the state machine outcomes.
const (
	msgEnabled        = "SmoothType is enabled. Restart the editor to apply the cursor animation."
	msgAlreadyEnabled = "SmoothType is already enabled."
	msgDisabled       = "SmoothType is disabled. Restart the editor to remove the cursor animation."
	msgNotInstalled   = "SmoothType is not installed; nothing to restore."
	msgNotConfigured  = "SmoothType is not configured: set a cursor transition duration."
	msgRestartAction  = "Restart editor"
)

func (app *CLI) createCommands() []*cli.Command {
	return []*cli.Command{
		app.createPatchCommand("enable", "enableAnimation", "Inject the cursor transition into the editor", app.runEnable),
		app.createPatchCommand("disable", "disableAnimation", "Restore the pristine editor bootstrap file", app.runDisable),
		app.createPatchCommand("reload", "reloadAnimation", "Restore, then enable again with the current settings", app.runReload),
		app.createStatusCommand(),
		app.createPathsCommand(),
		app.createConfigCommand(),
		app.createHelpCommand(),
		app.createVersionCommand(),
	}
}

type patchFunc func(ctx context.Context, service *application.PatchService) (*domain.PatchResult, error)

func (app *CLI) createPatchCommand(name, alias, usage string, run patchFunc) *cli.Command {
	return &cli.Command{
		Name:    name,
		Aliases: []string{alias},
		Usage:   usage,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return app.runPatch(ctx, run)
		},
	}
}

func (app *CLI) runEnable(ctx context.Context, service *application.PatchService) (*domain.PatchResult, error) {
	return service.Install(ctx)
}

func (app *CLI) runDisable(ctx context.Context, service *application.PatchService) (*domain.PatchResult, error) {
	return service.Uninstall(ctx)
}

func (app *CLI) runReload(ctx context.Context, service *application.PatchService) (*domain.PatchResult, error) {
	return service.Reinstall(ctx)
}

func (app *CLI) runPatch(ctx context.Context, run patchFunc) error {
	paths, err := app.resolvePaths()
	if err != nil {
		return err
	}

	service := application.NewPatchService(app.deps.Files, paths, domain.SettingsFunc(app.settings), app.deps.Log)

	result, err := run(ctx, service)
	if err != nil {
		return app.exitError(err)
	}

	message := outcomeMessage(result)

	if err := app.output.Success(message, result); err != nil {
		return domain.NewExitError(ExitGeneralError, "failed to output results", err)
	}

	app.notify(ctx, result, message)

	return nil
}

// notify tells the user about the outcome and offers a restart when one is required.
func (app *CLI) notify(ctx context.Context, result *domain.PatchResult, message string) {
	if result.Outcome == domain.OutcomeNotConfigured {
		app.deps.Notifier.Inform(msgNotConfigured)
	}

	if !result.RestartRequired {
		return
	}

	restart := app.cfg.RestartCommand
	if len(restart) == 0 {
		return
	}

	if !app.deps.Notifier.Confirm(ctx, message, msgRestartAction) {
		return
	}

	if err := app.deps.Runner.Execute(ctx, restart[0], restart[1:]...); err != nil {
		console.DefaultOutput.Warningf("Restart command failed: %v", err)
	}
}

func outcomeMessage(result *domain.PatchResult) string {
	switch result.Outcome {
	case domain.OutcomeEnabled:
		return msgEnabled
	case domain.OutcomeAlreadyEnabled:
		return msgAlreadyEnabled
	case domain.OutcomeDisabled:
		return msgDisabled
	case domain.OutcomeNotConfigured:
		if result.Restored {
			return msgNotConfigured + " " + msgDisabled
		}

		return msgNotConfigured
	default:
		return msgNotInstalled
	}
}

// exitError maps a service error to a process exit code and a user-facing message.
func (app *CLI) exitError(err error) error {
	message := domain.FormatErrorMessage(err, app.verbose)

	switch {
	case errors.Is(err, context.Canceled):
		return domain.NewExitError(ExitInterruptError, "interrupted", err)
	case domain.IsPermissionError(err):
		return domain.NewExitError(ExitPermissionError, message, err)
	case errors.Is(err, config.ErrInvalidConfig):
		return domain.NewExitError(ExitConfigError, message, err)
	default:
		return domain.NewExitError(ExitPatchError, message, err)
	}
}

func (app *CLI) createStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show paths, backup state and freshness without changing anything",
		Action: func(ctx context.Context, _ *cli.Command) error {
			paths, err := app.resolvePaths()
			if err != nil {
				return err
			}

			status, err := application.NewStatusService(app.deps.Files, paths, domain.SettingsFunc(app.settings)).Status(ctx)
			if err != nil {
				return app.exitError(err)
			}

			return app.outputStatus(status)
		},
	}
}

func (app *CLI) outputStatus(status *domain.StatusResult) error {
	if app.output.IsJSON() {
		return app.output.Success("", status)
	}

	if err := app.output.Info(console.DefaultOutput.Style(stateStyle(status.State), "State: "+string(status.State))); err != nil {
		return domain.NewExitError(ExitGeneralError, "failed to output results", err)
	}

	rows := [][]string{
		{"target", status.Paths.Target},
		{"backup", status.Paths.Backup},
		{"target exists", yesNo(status.TargetExists)},
		{"backup exists", yesNo(status.BackupExists)},
		{"patched", patchedLabel(status)},
		{"duration", durationLabel(status.Settings)},
		{"policy removal", yesNo(status.Settings.Policy)},
	}

	if !status.TargetModified.IsZero() {
		rows = append(rows, []string{"target modified", status.TargetModified.Format(time.RFC3339)})
	}

	if !status.BackupModified.IsZero() {
		rows = append(rows, []string{"backup modified", status.BackupModified.Format(time.RFC3339)})
	}

	if err := app.output.Table(nil, rows); err != nil {
		return domain.NewExitError(ExitGeneralError, "failed to output results", err)
	}

	for _, problem := range status.Problems {
		console.DefaultOutput.Warningf("%s", problem)
	}

	return nil
}

func patchedLabel(status *domain.StatusResult) string {
	if !status.Patched {
		return "no"
	}

	return fmt.Sprintf("yes (%dms)", status.PatchedDuration)
}

func durationLabel(settings domain.Settings) string {
	if !settings.Configured() {
		return "not configured"
	}

	return strconv.Itoa(settings.Duration) + "ms"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

func (app *CLI) createPathsCommand() *cli.Command {
	return &cli.Command{
		Name:  "paths",
		Usage: "Print the resolved target and backup paths",
		Action: func(_ context.Context, _ *cli.Command) error {
			paths, err := app.resolvePaths()
			if err != nil {
				return err
			}

			if app.output.IsJSON() {
				return app.output.Success("", paths)
			}

			return app.output.Table(nil, [][]string{
				{"target", paths.Target},
				{"backup", paths.Backup},
			})
		},
	}
}

func (app *CLI) createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the current settings to the configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite an existing file"},
				},
				Action: app.runConfigInit,
			},
			{
				Name:  "show",
				Usage: "Print the merged configuration",
				Action: func(_ context.Context, _ *cli.Command) error {
					if app.output.IsJSON() {
						return app.output.Success("", app.cfg)
					}

					return app.output.Table(nil, [][]string{
						{"file", hostplatform.ExpandPath(app.configPath)},
						{"duration", durationLabel(app.cfg.Settings())},
						{"policy", strconv.FormatBool(app.cfg.Policy)},
						{"app_dir", app.cfg.AppDir},
						{"platform", app.cfg.Platform},
					})
				},
			},
		},
	}
}

func (app *CLI) runConfigInit(_ context.Context, cmd *cli.Command) error {
	path := hostplatform.ExpandPath(app.configPath)

	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return domain.NewExitError(ExitUsageError, "configuration file already exists (use --force to overwrite): "+path, nil)
	}

	if err := config.Save(path, app.cfg); err != nil {
		return domain.NewExitError(ExitConfigError, "failed to write configuration", err)
	}

	if !app.output.IsQuiet() {
		console.DefaultOutput.Successf("Wrote %s", path)
	}

	return app.output.Success("", map[string]string{"config": path})
}

func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			if app.output.IsJSON() {
				return app.output.Success("", map[string]string{"version": Version})
			}

			return app.output.Info(Version)
		},
	}
}
