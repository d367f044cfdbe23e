// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/smoothtype/smoothtype/internal/console"
	"github.com/smoothtype/smoothtype/internal/domain"
	"github.com/urfave/cli/v3"
)

const helpWordWrap = 80

//nolint:gochecknoglobals
var helpTopics = map[string]string{
	"markers": "# Patch markers\n\n" +
		"SmoothType writes one block into the bootstrap HTML, immediately before the first `</html>`:\n\n" +
		"```html\n" + domain.MarkerStart + "\n<style>...transition: all <duration>ms;...</style>\n" + domain.MarkerEnd + "\n```\n\n" +
		"- The block is identified only by these two comment lines.\n" +
		"- A file with an end marker before its start marker, a start marker without an end marker, " +
		"or more than one block is reported as malformed and never modified.\n" +
		"- With `policy = true` the first `Content-Security-Policy` meta tag is removed as well.\n",
	"config": "# Configuration\n\n" +
		"The configuration file is TOML, by default `$XDG_CONFIG_HOME/smoothtype/config.toml`.\n\n" +
		"| Key | Meaning |\n|---|---|\n" +
		"| `duration` | transition duration in milliseconds; `0` means not configured |\n" +
		"| `policy` | remove the Content-Security-Policy meta tag |\n" +
		"| `app_dir` | editor directory containing `vs/workbench` |\n" +
		"| `platform` | `auto`, `windows` or `unix` path conventions |\n" +
		"| `restart_command` | command run when the restart prompt is accepted |\n\n" +
		"Environment variables `SMOOTHTYPE_DURATION`, `SMOOTHTYPE_POLICY` and `SMOOTHTYPE_APP_DIR` " +
		"override the file; flags override both.\n",
	"exit-codes": "# Exit codes\n\n" +
		"| Code | Meaning |\n|---|---|\n" +
		"| 0 | success |\n| 1 | another instance is running |\n| 2 | invalid usage |\n" +
		"| 3 | configuration error |\n| 4 | elevated privileges required |\n" +
		"| 5 | installation directory not found |\n| 14 | interrupted |\n" +
		"| 23 | backup, restore or patch failed |\n",
}

func (app *CLI) createHelpCommand() *cli.Command {
	return &cli.Command{
		Name:      "help",
		Usage:     "Show help for a command or a topic",
		ArgsUsage: "[command|" + strings.Join(topicNames(), "|") + "]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			topic := cmd.Args().First()
			if topic == "" {
				return cli.ShowAppHelp(cmd.Root())
			}

			if cmd.Root().Command(topic) != nil {
				return cli.ShowCommandHelp(ctx, cmd.Root(), topic)
			}

			doc, ok := helpTopics[topic]
			if !ok {
				return domain.NewExitError(ExitNotFoundError,
					fmt.Sprintf("unknown command or help topic %q (topics: %s)", topic, strings.Join(topicNames(), ", ")), ErrUnknownTopic)
			}

			return app.showTopic(topic, doc)
		},
	}
}

func (app *CLI) showTopic(topic, doc string) error {
	if app.output.IsJSON() {
		return app.output.Success("", map[string]string{"topic": topic, "markdown": doc})
	}

	rendered, err := renderMarkdown(doc, console.DefaultOutput.ColorEnabled())
	if err != nil {
		rendered = doc
	}

	_, _ = fmt.Fprint(app.deps.Stdout, rendered)

	return nil
}

func renderMarkdown(doc string, color bool) (string, error) {
	style := glamour.WithStandardStyle(styles.NoTTYStyle)
	if color {
		style = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(helpWordWrap))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return renderer.Render(doc)
}

func topicNames() []string {
	names := make([]string, 0, len(helpTopics))
	for name := range helpTopics {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

//nolint:gochecknoglobals
var (
	installedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	staleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	idleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true)
)

func stateStyle(state domain.State) lipgloss.Style {
	switch state {
	case domain.StateInstalled:
		return installedStyle
	case domain.StateStale, domain.StateUnmanaged:
		return staleStyle
	default:
		return idleStyle
	}
}
