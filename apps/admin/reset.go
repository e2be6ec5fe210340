package main

import (
	"context"
	"fmt"
)

const (
	resetAttendance = "attendance"
	resetSummary    = "summary"
)

func (cli *commandLine) reset(target string) error {
	var (
		n   int64
		err error
	)
	ctx := context.Background()
	switch target {
	case resetAttendance:
		n, err = cli.attSvc.ClearAll(ctx)
	case resetSummary:
		n, err = cli.sumSvc.ClearAll(ctx)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "deleted %d %s records\n", n, target)
	return nil
}
