package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/rohitfewfer/attendance/core/timetable"
)

func formatEntries(entries []timetable.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		_, _ = fmt.Fprintf(&b, "%s\t%d\t%s\n", e.Day, e.Position, e.Subject)
	}
	return b.String()
}

// timetableDiff prints a unified diff from the default schedule to the stored one.
func (cli *commandLine) timetableDiff() error {
	current, err := cli.ttSvc.List(context.Background())
	if err != nil {
		return err
	}
	defaults := timetable.DefaultSchedule()
	timetable.SortEntries(defaults)

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(formatEntries(defaults)),
		B:        difflib.SplitLines(formatEntries(current)),
		FromFile: "default",
		ToFile:   "current",
		Context:  1,
	})
	if err != nil {
		return err
	}
	if diff == "" {
		_, _ = fmt.Fprintln(cli.out, "timetable matches the default schedule")
		return nil
	}
	_, _ = fmt.Fprint(cli.out, diff)
	return nil
}
