package app

import (
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/maruel/natural"

	"github.com/dashtrack/dash/internal/models"
	"github.com/dashtrack/dash/internal/timeutil"
	"github.com/dashtrack/dash/internal/tracker"
	"github.com/dashtrack/dash/internal/ui"
)

// printLogTable prints the project's work log to the command line.
// Open records show an empty end column and a delta measured against
// the reference time.
func printLogTable(
	w io.Writer,
	records []models.Record,
	now time.Time,
	layout string,
) {
	tableBody := make([][]string, len(records))

	for i := range records {
		r := records[i]

		endDate := ""
		if r.EndTime != nil {
			endDate = r.EndTime.Format(layout)
		}

		tableBody[i] = []string{
			r.Phase,
			r.StartTime.Format(layout),
			endDate,
			timeutil.FormatDelta(r.Duration(now)),
		}
	}

	tableBody = append([][]string{
		{"PHASE", "START", "END", "DELTA"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// printProjectsTable prints all known projects in natural name order,
// marking the current one.
func printProjectsTable(
	w io.Writer,
	projects []models.Project,
	records []models.Record,
	current string,
) {
	names := make([]string, len(projects))

	for i := range projects {
		names[i] = projects[i].Name
	}

	sort.Slice(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})

	tableBody := make([][]string, len(names))

	for i, name := range names {
		marker := ""
		if name == current {
			marker = ui.Green("current")
		}

		tableBody[i] = []string{
			name,
			strconv.Itoa(len(tracker.ProjectRecords(records, name))),
			marker,
		}
	}

	tableBody = append([][]string{
		{"NAME", "RECORDS", ""},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}
