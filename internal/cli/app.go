// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the SmoothType command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	cliAdapter "github.com/smoothtype/smoothtype/internal/adapters/cli"
	"github.com/smoothtype/smoothtype/internal/adapters/platform"
	"github.com/smoothtype/smoothtype/internal/config"
	"github.com/smoothtype/smoothtype/internal/console"
	"github.com/smoothtype/smoothtype/internal/domain"
	hostplatform "github.com/smoothtype/smoothtype/internal/platform"
	"github.com/urfave/cli/v3"
)

// Exit codes follow standard Unix conventions for better scripting support.
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Generic failure (catch-all)
	ExitUsageError      = 2  // Invalid command line usage
	ExitConfigError     = 3  // Configuration file error
	ExitPermissionError = 4  // Elevated privileges required
	ExitNotFoundError   = 5  // Installation directory not found
	ExitInterruptError  = 14 // User interrupted (Ctrl+C)
	ExitPatchError      = 23 // Backup, restore or patch failed
)

// Version is stamped at build time with -ldflags.
var Version = "dev" //nolint:gochecknoglobals

var (
	// ErrAppDirNotFound is returned when no installation directory is configured or detected.
	ErrAppDirNotFound = errors.New("editor installation directory not found")
	// ErrUnknownTopic is returned for an unknown help topic.
	ErrUnknownTopic = errors.New("unknown help topic")
)

// CLI wires the command tree to the application services.
type CLI struct {
	app *cli.Command

	verbose    bool
	json       bool
	quiet      bool
	yes        bool
	configPath string
	appDir     string
	platform   string
	duration   int
	policy     bool

	cfg    *config.Config
	deps   Dependencies
	output domain.OutputPort
}

// Dependencies holds the adapters the commands run against.
type Dependencies struct {
	Files    domain.FileSystem
	Runner   domain.CommandRunner
	Notifier domain.Notifier
	Log      domain.Logger
	Stdout   io.Writer
	Getenv   func(string) string
	GOOS     string
}

// DefaultDependencies returns the adapters for the real host.
func DefaultDependencies() Dependencies {
	return Dependencies{
		Files:    platform.NewFileManager(console.DefaultOutput),
		Runner:   platform.NewCommandRunner(console.DefaultOutput),
		Notifier: console.NewNotifier(console.DefaultOutput),
		Log:      console.DefaultOutput,
		Stdout:   os.Stdout,
		Getenv:   os.Getenv,
		GOOS:     runtime.GOOS,
	}
}

// NewCLI creates the CLI bound to the real host.
func NewCLI() *CLI {
	return NewCLIWithDependencies(DefaultDependencies())
}

// NewCLIWithDependencies creates the CLI with injected adapters.
func NewCLIWithDependencies(deps Dependencies) *CLI {
	app := &CLI{deps: deps}

	app.app = &cli.Command{
		Name:    "smoothtype",
		Usage:   "Smooth cursor animation for the code editor",
		Version: Version,
		Suggest: true,
		Description: `Patches the editor's bootstrap HTML with a CSS transition on the text cursor.
A pristine backup is kept next to the file; disable restores it.

ESSENTIAL COMMANDS:
  enable     Inject the cursor transition (restart required)
  disable    Restore the pristine bootstrap file
  reload     Restore, then inject again with the current settings
  status     Show paths, backup state and freshness`,
		Flags:           app.globalFlags(),
		Before:          app.initConfig,
		Commands:        app.createCommands(),
		CommandNotFound: app.commandNotFound,
		Writer:          deps.Stdout,
	}

	return app
}

// Run executes the CLI application. In JSON mode a failure is also
// reported on stdout as an error object.
func (app *CLI) Run(ctx context.Context, args []string) error {
	err := app.app.Run(ctx, args)
	if err != nil && app.output != nil && app.output.IsJSON() {
		message := err.Error()

		var exitErr *domain.ExitError
		if errors.As(err, &exitErr) {
			message = exitErr.Message
		}

		_ = app.output.Error(message)
	}

	return err
}

func (app *CLI) globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "show progress messages to stderr",
			Aliases:     []string{"v"},
			Destination: &app.verbose,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output structured JSON results",
			Aliases:     []string{"j"},
			Destination: &app.json,
		},
		&cli.BoolFlag{
			Name:        "quiet",
			Usage:       "suppress non-essential output",
			Aliases:     []string{"q"},
			Destination: &app.quiet,
		},
		&cli.BoolFlag{
			Name:        "yes",
			Aliases:     []string{"y"},
			Usage:       "automatically accept the restart prompt",
			Destination: &app.yes,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "configuration file",
			Value:       config.DefaultPath(),
			Destination: &app.configPath,
		},
		&cli.StringFlag{
			Name:        "app-dir",
			Usage:       "editor installation directory containing vs/workbench",
			Destination: &app.appDir,
		},
		&cli.StringFlag{
			Name:        "platform",
			Usage:       "path conventions: auto, windows, unix",
			Destination: &app.platform,
		},
		&cli.IntFlag{
			Name:        "duration",
			Usage:       "cursor transition duration in milliseconds",
			Destination: &app.duration,
		},
		&cli.BoolFlag{
			Name:        "policy",
			Usage:       "remove the Content-Security-Policy meta tag",
			Destination: &app.policy,
		},
	}
}

// initConfig merges the config file, the environment and the flags.
func (app *CLI) initConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	console.DefaultOutput.SetMode(app.verbose, app.json, false)
	console.AutoYes = app.yes

	app.output = cliAdapter.NewOutputAdapter(app.deps.Stdout, outputFormat(app.json), app.quiet)

	cfg, err := config.Load(hostplatform.ExpandPath(app.configPath))
	if err != nil {
		return ctx, domain.NewExitError(ExitConfigError, "failed to load configuration", err)
	}

	if err := cfg.ApplyEnv(app.deps.Getenv); err != nil {
		return ctx, domain.NewExitError(ExitConfigError, "invalid environment override", err)
	}

	if cmd.IsSet("duration") {
		cfg.Duration = app.duration
	}

	if cmd.IsSet("policy") {
		cfg.Policy = app.policy
	}

	if cmd.IsSet("app-dir") {
		cfg.AppDir = app.appDir
	}

	if cmd.IsSet("platform") {
		cfg.Platform = app.platform
	}

	if err := cfg.Validate(); err != nil {
		return ctx, domain.NewExitError(ExitUsageError, "invalid flag value", err)
	}

	app.cfg = cfg

	return ctx, nil
}

// settings reads the merged configuration at patch time.
func (app *CLI) settings() (domain.Settings, error) {
	return app.cfg.Settings(), nil
}

// resolvePaths picks the installation directory: flag, env, file, then detection.
func (app *CLI) resolvePaths() (domain.Paths, error) {
	windows := app.cfg.IsWindows(app.deps.GOOS)

	baseDir := hostplatform.ExpandPath(app.cfg.AppDir)
	if baseDir == "" {
		baseDir = hostplatform.DetectAppDir(app.deps.GOOS, app.deps.Getenv, app.exists)
	}

	if baseDir == "" {
		return domain.Paths{}, domain.NewExitError(ExitNotFoundError,
			"editor installation directory not found (set app_dir or pass --app-dir)", ErrAppDirNotFound)
	}

	return hostplatform.ResolvePaths(baseDir, windows), nil
}

func (app *CLI) exists(path string) bool {
	_, err := app.deps.Files.Stat(path)

	return err == nil
}

// commandNotFound reports unknown commands.
func (app *CLI) commandNotFound(_ context.Context, _ *cli.Command, command string) {
	console.DefaultOutput.Errorf("'%s' is not a command. Run 'smoothtype --help' to see available commands.", command)
}

func outputFormat(json bool) cliAdapter.OutputFormat {
	if json {
		return cliAdapter.JSONFormat
	}

	return cliAdapter.TextFormat
}
