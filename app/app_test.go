package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"github.com/dashtrack/dash/internal/config"
	"github.com/dashtrack/dash/internal/tracker"
	"github.com/dashtrack/dash/store"
)

// setupTestEnv redirects all file paths into a temporary directory so
// tests never touch real user data.
func setupTestEnv(t *testing.T) {
	t.Helper()

	tmp := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("DASH_ENV", "test")
	t.Setenv("NO_COLOR", "1")

	xdg.Reload()
}

func run(args ...string) error {
	return Get().Run(append([]string{"dash"}, args...))
}

func TestWorkflow(t *testing.T) {
	setupTestEnv(t)

	steps := [][]string{
		{"project", "demo"},
		{"start", "coding"},
		{"start", "coding"}, // no-op, already working on coding
		{"start", "review"}, // implicitly ends coding
		{"end"},
		{"status"},
		{"log"},
	}

	for _, step := range steps {
		if err := run(step...); err != nil {
			t.Fatalf("dash %v: unexpected error: %v", step, err)
		}
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta, projects, records, err := db.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = db.Close()

	if meta.CurrentProject != "demo" {
		t.Errorf("expected current project demo, but got: %q", meta.CurrentProject)
	}

	if len(projects) != 1 {
		t.Errorf("expected 1 project, but got %d", len(projects))
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, but got %d", len(records))
	}

	coding, review := records[0], records[1]

	if coding.Phase != "coding" || review.Phase != "review" {
		t.Fatalf("unexpected phases: %q, %q", coding.Phase, review.Phase)
	}

	if coding.Open() || review.Open() {
		t.Fatal("expected both records to be closed")
	}

	// switching phases must not leave a gap or an overlap
	if !coding.EndTime.Equal(review.StartTime) {
		t.Errorf(
			"expected coding to end when review started, but got %v and %v",
			coding.EndTime,
			review.StartTime,
		)
	}

	if err := run("remove-last"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	db, err = store.NewClient(config.DBFilePath())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defer db.Close()

	_, _, records, err = db.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 || records[0].Phase != "coding" {
		t.Errorf("expected only the coding record to remain, but got: %v", records)
	}
}

func TestStartWithoutCurrentProject(t *testing.T) {
	setupTestEnv(t)

	err := run("start", "coding")
	if !errors.Is(err, tracker.ErrNoCurrentProject) {
		t.Fatalf("expected ErrNoCurrentProject, but got: %v", err)
	}
}

func TestStartWithoutPhaseOrHistory(t *testing.T) {
	setupTestEnv(t)

	if err := run("project", "fresh"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := run("start")
	if !errors.Is(err, tracker.ErrPhaseRequired) {
		t.Fatalf("expected ErrPhaseRequired, but got: %v", err)
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defer db.Close()

	_, _, records, err := db.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 0 {
		t.Errorf("expected no records, but got %d", len(records))
	}
}

func TestProjectSwitchDoesNotDuplicate(t *testing.T) {
	setupTestEnv(t)

	for range 3 {
		if err := run("project", "foo"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defer db.Close()

	_, projects, _, err := db.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(projects) != 1 {
		t.Errorf("expected 1 project, but got %d", len(projects))
	}
}

func TestEndWithNoRecordsIsANoOp(t *testing.T) {
	setupTestEnv(t)

	if err := run("project", "demo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := run("end"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSinceBackdatesStart(t *testing.T) {
	setupTestEnv(t)

	if err := run("project", "demo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := run("start", "--since", "20 minutes ago", "coding"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := run("end"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defer db.Close()

	_, _, records, err := db.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, but got %d", len(records))
	}

	r := records[0]

	if r.Open() {
		t.Fatal("expected the record to be closed")
	}

	mins := r.EndTime.Sub(r.StartTime).Minutes()
	if mins < 19 || mins > 21 {
		t.Errorf("expected a span of roughly 20 minutes, but got %.1f", mins)
	}
}
