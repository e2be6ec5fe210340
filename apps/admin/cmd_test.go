package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitfewfer/attendance/core/attendance"
	"github.com/rohitfewfer/attendance/core/summary"
	"github.com/rohitfewfer/attendance/core/timetable"
	sqlxrepos "github.com/rohitfewfer/attendance/storage/database/sqlx"
	"github.com/rohitfewfer/attendance/tests"
)

var ttRepo timetable.Repository

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	// set up DB & repos
	db := testutil.PrepareDB(t)
	ttRepo = sqlxrepos.NewTimetableRepository(db)
	out := new(bytes.Buffer)

	// start CLI
	return &commandLine{
		db:     db,
		ttSvc:  timetable.NewService(ttRepo),
		attSvc: attendance.NewService(sqlxrepos.NewAttendanceRepository(db)),
		sumSvc: summary.NewService(sqlxrepos.NewSummaryRepository(db)),
		out:    out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		if tt.wantErr != nil || tt.wantErrStr != "" {
			t.Errorf("cli.run() error = nil, wantErr %v %s", tt.wantErr, tt.wantErrStr)
		}
		return
	}
	if tt.wantErr != nil {
		if err != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	} else if tt.wantErrStr != "" {
		if err.Error() != tt.wantErrStr {
			t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
		}
	} else {
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			tt.check(t, cli.run(args))
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	origRun := gooseRunFunc
	t.Cleanup(func() { gooseRunFunc = origRun })

	var gotDir string
	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		gotDir = dir
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "holidays", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}
	assert.Equal(t, "migrations/sqlite", gotDir)
}

func Test_commandLine_seed(t *testing.T) {
	cli, out := setup(t)
	ctx := context.Background()

	require.NoError(t, cli.run([]string{"admin", "seed"}))
	assert.Equal(t, fmt.Sprintf("seeded %d timetable entries\n", len(timetable.DefaultSchedule())), out.String())

	out.Reset()
	require.NoError(t, cli.run([]string{"admin", "seed"}))
	assert.Equal(t, "timetable is not empty, nothing seeded\n", out.String())

	n, err := ttRepo.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(timetable.DefaultSchedule()), n)
}

func Test_commandLine_reset(t *testing.T) {
	cli, out := setup(t)
	ctx := context.Background()

	origConfirm := readConfirmFunc
	t.Cleanup(func() { readConfirmFunc = origConfirm })

	type extra struct {
		confirm    bool
		confirmErr error
		wantOut    string
		wantMarks  int
	}
	tests := []cliTest{
		{name: "no target", args: []string{"reset"}, wantErr: errHelp, extra: extra{wantMarks: 2}},
		{name: "unknown target", args: []string{"reset", "lol"}, wantErr: errHelp, extra: extra{wantMarks: 2}},
		{name: "not interactive", args: []string{"reset", "attendance"}, wantErr: errNotInteractive, extra: extra{confirmErr: errNotInteractive, wantMarks: 2}},
		{name: "declined", args: []string{"reset", "attendance"}, extra: extra{wantOut: "aborted\n", wantMarks: 2}},
		{name: "summary confirmed", args: []string{"reset", "summary"}, extra: extra{confirm: true, wantOut: "deleted 1 summary records\n", wantMarks: 2}},
		{name: "attendance with -yes", args: []string{"reset", "-yes", "attendance"}, extra: extra{wantOut: "deleted 2 attendance records\n"}},
	}

	require.NoError(t, cli.attSvc.Mark(ctx, "CCL LAB", "2024-01-02"))
	require.NoError(t, cli.sumSvc.Save(ctx, summary.DailySummary{Date: "2024-01-02", Attended: 2, Total: 6, Percentage: 33.33}))

	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		ex := tt.extra.(extra)

		readConfirmFunc = func(prompt string) (bool, error) {
			return ex.confirm, ex.confirmErr
		}

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			tt.check(t, err)
			if ex.wantOut != "" {
				assert.Equal(t, ex.wantOut, out.String())
			}

			marks, err := cli.attSvc.ListAll(ctx)
			require.NoError(t, err)
			assert.Len(t, marks, ex.wantMarks)
		})
	}
}

func Test_commandLine_timetableDiff(t *testing.T) {
	cli, out := setup(t)

	require.NoError(t, cli.run([]string{"admin", "seed"}))
	out.Reset()

	require.NoError(t, cli.run([]string{"admin", "timetable-diff"}))
	assert.Equal(t, "timetable matches the default schedule\n", out.String())

	testutil.CreateEntry(t, ttRepo, "Saturday", 1, "SPORTS")
	out.Reset()

	require.NoError(t, cli.run([]string{"admin", "timetable-diff"}))
	diff := out.String()
	assert.True(t, strings.HasPrefix(diff, "--- default\n+++ current\n"), diff)
	assert.Contains(t, diff, "+Saturday\t1\tSPORTS\n")
	assert.NotContains(t, diff, "\n-")
}
