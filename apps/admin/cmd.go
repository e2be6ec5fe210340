package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/attendance"
	"github.com/rohitfewfer/attendance/core/summary"
	"github.com/rohitfewfer/attendance/core/timetable"
)

var (
	readConfirmFunc = confirmOnTerminal // mockable

	errHelp           = errors.New("help provided")
	errNotInteractive = errors.New("stdin is not a terminal: pass -yes to confirm")
)

type commandLine struct {
	db     *sqlx.DB
	ttSvc  *timetable.Service
	attSvc *attendance.Service
	sumSvc *summary.Service
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]               - run a goose command (up, down, status, ...)")
	_, _ = fmt.Fprintln(cli.out, "  seed                                 - insert the default timetable if it is empty")
	_, _ = fmt.Fprintln(cli.out, "  reset [-yes] attendance|summary      - delete every attendance mark or daily summary")
	_, _ = fmt.Fprintln(cli.out, "  timetable-diff                       - compare the stored timetable with the default one")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resetCmd := flag.NewFlagSet("reset", flag.ContinueOnError)
	resetCmd.SetOutput(cli.out)
	resetYes := resetCmd.Bool("yes", false, "Do not ask for confirmation.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "reset":
		if err := resetCmd.Parse(args[2:]); err != nil {
			return err
		}
		target := resetCmd.Arg(0)
		if target != resetAttendance && target != resetSummary {
			resetCmd.Usage()
			return errHelp
		}
		if !*resetYes {
			ok, err := readConfirmFunc(fmt.Sprintf("Delete every %s record? [y/N] ", target))
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cli.out, "aborted")
				return nil
			}
		}
		return cli.reset(target)
	case "timetable-diff":
		return cli.timetableDiff()
	default:
		cli.printUsage()
		return errHelp
	}
}

// confirmOnTerminal asks a yes/no question; it refuses when stdin is not interactive.
func confirmOnTerminal(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errNotInteractive
	}
	fmt.Print(prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = core.CleanString(answer, true /* lower */)
	return answer == "y" || answer == "yes", nil
}
