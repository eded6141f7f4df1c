package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dashtrack/dash/internal/models"
	"github.com/dashtrack/dash/internal/timeutil"
)

func TestPrintLogTable(t *testing.T) {
	disableStyling()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	now := start.Add(2 * time.Hour)

	records := []models.Record{
		{
			ID:        1,
			Project:   "demo",
			Phase:     "coding",
			StartTime: start,
			EndTime:   &end,
		},
		{
			ID:        2,
			Project:   "demo",
			Phase:     "meeting",
			StartTime: start.Add(time.Hour),
		},
	}

	var buf bytes.Buffer

	printLogTable(&buf, records, now, timeutil.Format24Hour)

	out := buf.String()

	for _, want := range []string{
		"PHASE",
		"START",
		"END",
		"DELTA",
		"coding",
		"2024-03-01 09:00",
		"2024-03-01 09:30",
		"0:30",
		"meeting",
		"2024-03-01 10:00",
		"1:00", // open record measured against now
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "coding") > strings.Index(out, "meeting") {
		t.Errorf("expected coding to be listed before meeting:\n%s", out)
	}
}

func TestPrintProjectsTableNaturalOrder(t *testing.T) {
	disableStyling()

	projects := []models.Project{
		{Name: "proj10"},
		{Name: "proj2"},
	}

	records := []models.Record{
		{ID: 1, Project: "proj2", Phase: "coding", StartTime: time.Now()},
	}

	var buf bytes.Buffer

	printProjectsTable(&buf, projects, records, "proj2")

	out := buf.String()

	if strings.Index(out, "proj2") > strings.Index(out, "proj10") {
		t.Errorf("expected natural ordering (proj2 before proj10):\n%s", out)
	}

	if !strings.Contains(out, "current") {
		t.Errorf("expected the current project to be marked:\n%s", out)
	}
}
