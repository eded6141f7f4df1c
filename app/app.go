// Package app defines the dash command-line application.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/dashtrack/dash/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the dash app instance.
func Get() *cli.App {
	dashApp := &cli.App{
		Name: "dash",
		Usage: `
		Dash is a minimal time tracker for the command line. It records
		contiguous spans of work (phases) within projects and prints a
		chronological work log.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "start",
				Usage:     "Start work on a phase, or resume the last one when no phase is given",
				ArgsUsage: "[phase]",
				Flags:     []cli.Flag{sinceFlag},
				Action:    startAction,
			},
			{
				Name:   "end",
				Usage:  "End the open work record",
				Flags:  []cli.Flag{sinceFlag},
				Action: endAction,
			},
			{
				Name:      "project",
				Usage:     "Print the current project, or switch to (creating if needed) the named one",
				ArgsUsage: "[name]",
				Action:    projectAction,
			},
			{
				Name:   "projects",
				Usage:  "List all known projects",
				Action: projectsAction,
			},
			{
				Name:   "status",
				Usage:  "Print the current project and its last record",
				Action: statusAction,
			},
			{
				Name:   "log",
				Usage:  "Print the work log for the current project",
				Action: logAction,
			},
			{
				Name:   "remove-last",
				Usage:  "Delete the last record of the current project",
				Action: removeLastAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "usage",
				Usage:  "Print usage text",
				Action: usageAction,
			},
		},
		Flags:  []cli.Flag{noColorFlag},
		Action: defaultAction,
		Before: beforeAction,
	}

	return dashApp
}
