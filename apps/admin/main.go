package main

import (
	"fmt"
	"os"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/attendance"
	"github.com/rohitfewfer/attendance/core/summary"
	"github.com/rohitfewfer/attendance/core/timetable"
	logsvc "github.com/rohitfewfer/attendance/services/logger"
	"github.com/rohitfewfer/attendance/storage/database"
	sqlxrepos "github.com/rohitfewfer/attendance/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.New("ADMIN : ", conf)

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	// start CLI
	cli := commandLine{
		db:     db,
		ttSvc:  timetable.NewService(sqlxrepos.NewTimetableRepository(db)),
		attSvc: attendance.NewService(sqlxrepos.NewAttendanceRepository(db)),
		sumSvc: summary.NewService(sqlxrepos.NewSummaryRepository(db)),
		out:    os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		os.Exit(1)
	}
}
