package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) seed() error {
	n, err := cli.ttSvc.SeedIfEmpty(context.Background())
	if err != nil {
		return err
	}
	if n == 0 {
		_, _ = fmt.Fprintln(cli.out, "timetable is not empty, nothing seeded")
		return nil
	}
	_, _ = fmt.Fprintf(cli.out, "seeded %d timetable entries\n", n)
	return nil
}
