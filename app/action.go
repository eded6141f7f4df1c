package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dashtrack/dash/internal/config"
	"github.com/dashtrack/dash/internal/models"
	"github.com/dashtrack/dash/internal/timeutil"
	"github.com/dashtrack/dash/internal/tracker"
	"github.com/dashtrack/dash/internal/ui"
	"github.com/dashtrack/dash/report"
	"github.com/dashtrack/dash/store"
)

const (
	envNoColor     = "NO_COLOR"
	envDashNoColor = "DASH_NO_COLOR"
)

var errSinceTooEarly = errors.New(
	"the since time must not predate the project's last record",
)

var appConfig *config.Config

// firstNonEmptyString returns its first non-empty argument, or "" if
// all arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// initLog routes slog diagnostics to a rotating file so the CLI output
// stays clean.
func initLog() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   config.LogFilePath(),
		MaxSize:    1,
		MaxBackups: 3,
	}, nil)))
}

// mutationTime resolves the instant a state change takes effect,
// honouring the --since flag.
func mutationTime(ctx *cli.Context) (time.Time, error) {
	since := ctx.String("since")
	if since == "" {
		return time.Now(), nil
	}

	t, err := timeutil.FromStr(since)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid since time: %w", err)
	}

	if t.After(time.Now()) {
		return time.Time{}, fmt.Errorf(
			"invalid since time: %s is in the future",
			since,
		)
	}

	return t, nil
}

// openStore connects to the database and loads the full state snapshot.
func openStore() (store.DB, models.Meta, []models.Project, []models.Record, error) {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, models.Meta{}, nil, nil, err
	}

	meta, projects, records, err := db.Load()
	if err != nil {
		_ = db.Close()
		return nil, models.Meta{}, nil, nil, err
	}

	return db, meta, projects, records, nil
}

func requireCurrentProject(
	meta models.Meta,
	projects []models.Project,
) (models.Project, error) {
	project, found := tracker.CurrentProject(meta, projects)
	if !found {
		return models.Project{}, tracker.ErrNoCurrentProject
	}

	return project, nil
}

// runSettingsCmd executes the command configured under settings.cmd
// after a successful state change. Failures are logged, not fatal.
func runSettingsCmd() {
	cmdStr := appConfig.Settings.Cmd
	if cmdStr == "" {
		return
	}

	cmdSlice, err := shellquote.Split(cmdStr)
	if err != nil {
		slog.Warn("unable to parse settings.cmd option", slog.Any("error", err))
		return
	}

	if len(cmdSlice) == 0 {
		return
	}

	cmd := exec.Command(cmdSlice[0], cmdSlice[1:]...)

	if err := cmd.Run(); err != nil {
		slog.Warn("settings.cmd failed", slog.Any("error", err))
	}
}

// startAction handles the start command which opens a work record for
// a phase, implicitly ending the previous one on a phase switch.
func startAction(ctx *cli.Context) error {
	now, err := mutationTime(ctx)
	if err != nil {
		return err
	}

	db, meta, projects, records, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	project, err := requireCurrentProject(meta, projects)
	if err != nil {
		return err
	}

	last, found := tracker.LastRecord(records, project.Name)
	if found && now.Before(last.StartTime) {
		return errSinceTooEarly
	}

	updated, changed, err := tracker.Start(
		records,
		project.Name,
		ctx.Args().First(),
		now,
	)
	if err != nil {
		return err
	}

	if !changed {
		report.AlreadyWorking(last.Phase)
		return nil
	}

	if err := db.SaveRecords(updated); err != nil {
		return err
	}

	started := updated[len(updated)-1]

	slog.Info("started work record",
		slog.String("project", started.Project),
		slog.String("phase", started.Phase),
		slog.Time("start_time", started.StartTime),
	)

	report.PhaseStarted(started.Project, started.Phase)

	runSettingsCmd()

	return nil
}

// endAction handles the end command which closes the last open record.
func endAction(ctx *cli.Context) error {
	now, err := mutationTime(ctx)
	if err != nil {
		return err
	}

	db, meta, projects, records, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	project, err := requireCurrentProject(meta, projects)
	if err != nil {
		return err
	}

	last, found := tracker.LastRecord(records, project.Name)
	if found && last.Open() && now.Before(last.StartTime) {
		return errSinceTooEarly
	}

	updated, changed := tracker.End(records, project.Name, now)
	if !changed {
		report.NothingToEnd()
		return nil
	}

	if err := db.SaveRecords(updated); err != nil {
		return err
	}

	slog.Info("ended work record",
		slog.String("project", project.Name),
		slog.String("phase", last.Phase),
		slog.Time("end_time", now),
	)

	report.PhaseEnded(last.Phase)

	runSettingsCmd()

	return nil
}

// projectAction handles the project command which prints the current
// project or switches to (creating if needed) the named one.
func projectAction(ctx *cli.Context) error {
	db, meta, projects, _, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	name := ctx.Args().First()

	if name == "" {
		project, found := tracker.CurrentProject(meta, projects)
		if !found {
			report.CurrentProjectNotSet()
			return nil
		}

		report.CurrentProject(project.Name)

		return nil
	}

	if _, found := tracker.FindProject(projects, name); found {
		report.ProjectSwitched(name)
	} else {
		projects = append(projects, models.Project{Name: name})

		if err := db.SaveProjects(projects); err != nil {
			return err
		}

		report.ProjectCreated(name)
	}

	meta.CurrentProject = name

	if err := db.SaveMeta(meta); err != nil {
		return err
	}

	slog.Info("switched current project", slog.String("project", name))

	runSettingsCmd()

	return nil
}

// projectsAction handles the projects command which lists all known
// projects with their record counts.
func projectsAction(ctx *cli.Context) error {
	db, meta, projects, records, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	if len(projects) == 0 {
		pterm.Info.Println("no projects created yet")
		return nil
	}

	printProjectsTable(os.Stdout, projects, records, meta.CurrentProject)

	return nil
}

// statusAction handles the status command which prints the current
// project and its last record.
func statusAction(ctx *cli.Context) error {
	db, meta, projects, records, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	project, found := tracker.CurrentProject(meta, projects)
	if !found {
		report.CurrentProjectNotSet()
		return nil
	}

	var lastPtr *models.Record

	if last, found := tracker.LastRecord(records, project.Name); found {
		lastPtr = &last
	}

	report.Status(project.Name, lastPtr, time.Now(), appConfig.TimestampFormat())

	return nil
}

// logAction handles the log command which prints the work log for the
// current project sorted by ascending start time.
func logAction(ctx *cli.Context) error {
	db, meta, projects, records, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	project, err := requireCurrentProject(meta, projects)
	if err != nil {
		return err
	}

	matched := tracker.SortByStart(
		tracker.ProjectRecords(records, project.Name),
	)

	if len(matched) == 0 {
		pterm.Info.Printfln("no records found for project %s", project.Name)
		return nil
	}

	printLogTable(os.Stdout, matched, time.Now(), appConfig.TimestampFormat())

	return nil
}

// removeLastAction handles the remove-last command which deletes the
// last record of the current project.
func removeLastAction(ctx *cli.Context) error {
	db, meta, projects, records, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	project, err := requireCurrentProject(meta, projects)
	if err != nil {
		return err
	}

	last, _ := tracker.LastRecord(records, project.Name)

	updated, changed := tracker.RemoveLast(records, project.Name)
	if !changed {
		report.NoRecords()
		return nil
	}

	if err := db.SaveRecords(updated); err != nil {
		return err
	}

	slog.Info("removed work record",
		slog.String("project", project.Name),
		slog.String("phase", last.Phase),
	)

	report.RecordRemoved(last.Phase)

	runSettingsCmd()

	return nil
}

// editConfigAction handles the edit-config command which opens the
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// usageAction prints the usage text and terminates with a non-zero
// exit code.
func usageAction(ctx *cli.Context) error {
	_ = cli.ShowAppHelp(ctx)

	return cli.Exit("", 1)
}

// defaultAction runs when no (or an unknown) command is given.
func defaultAction(ctx *cli.Context) error {
	if ctx.Args().Present() {
		pterm.Error.Printfln("unknown command: %s", ctx.Args().First())
	}

	_ = cli.ShowAppHelp(ctx)

	return cli.Exit("", 1)
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if DASH_NO_COLOR is set
	if _, exists := os.LookupEnv(envDashNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	config.InitializePaths()

	cfg, err := config.Get()
	if err != nil {
		return err
	}

	appConfig = cfg
	ui.DarkTheme = cfg.Display.DarkTheme

	initLog()

	return nil
}
