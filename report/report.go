// Package report prints user-facing messages to the command line.
package report

import (
	"time"

	"github.com/pterm/pterm"

	"github.com/dashtrack/dash/internal/models"
	"github.com/dashtrack/dash/internal/timeutil"
	"github.com/dashtrack/dash/internal/ui"
)

func PhaseStarted(project, phase string) {
	pterm.Info.Printfln("started work on %s (project %s)", ui.Green(phase), project)
}

func AlreadyWorking(phase string) {
	pterm.Info.Printfln("already working on %s", ui.Green(phase))
}

func PhaseEnded(phase string) {
	pterm.Info.Printfln("ended work on %s", ui.Green(phase))
}

func NothingToEnd() {
	pterm.Info.Println("no open record to end")
}

func RecordRemoved(phase string) {
	pterm.Info.Printfln("removed the last record (%s)", ui.Green(phase))
}

func NoRecords() {
	pterm.Info.Println("no records to remove")
}

func ProjectCreated(name string) {
	pterm.Info.Printfln("creating project %s", ui.Cyan(name))
}

func ProjectSwitched(name string) {
	pterm.Info.Printfln("setting project to %s", ui.Cyan(name))
}

func CurrentProject(name string) {
	pterm.Printfln("Current project: %s", ui.Cyan(name))
}

func CurrentProjectNotSet() {
	pterm.Info.Println("current project not set")
}

// Status summarises the active project and its last record.
func Status(project string, last *models.Record, now time.Time, layout string) {
	pterm.Printfln("Currently working on project %s", ui.Cyan(project))

	if last == nil {
		pterm.Info.Println("no records yet")
		return
	}

	delta := timeutil.FormatDelta(last.Duration(now))

	if last.Open() {
		pterm.Printfln(
			"Working on %s since %s (%s)",
			ui.Green(last.Phase),
			last.StartTime.Format(layout),
			delta,
		)

		return
	}

	pterm.Printfln(
		"Last worked on %s from %s to %s (%s)",
		ui.Green(last.Phase),
		last.StartTime.Format(layout),
		last.EndTime.Format(layout),
		delta,
	)
}

func Error(err error) {
	pterm.Error.Println(err)
}
