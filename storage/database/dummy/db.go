package dummydb

import (
	"sync"

	"github.com/rohitfewfer/attendance/core/attendance"
	"github.com/rohitfewfer/attendance/core/summary"
	"github.com/rohitfewfer/attendance/core/timetable"
)

type (
	// DB is an in-memory stand-in for the SQL database, used by tests and local demos.
	DB struct {
		timetable  *timetableTable
		attendance *attendanceTable
		summary    *summaryTable
	}

	timetableTable struct {
		sync.RWMutex
		pkCount int64
		table   map[int64]*timetable.Entry
	}

	attendanceTable struct {
		sync.RWMutex
		pkCount int64
		table   []attendance.Mark
	}

	summaryTable struct {
		sync.RWMutex
		table map[string]summary.DailySummary // {date: summary}
	}
)

func Open() *DB {
	return &DB{
		timetable:  &timetableTable{table: make(map[int64]*timetable.Entry)},
		attendance: &attendanceTable{},
		summary:    &summaryTable{table: make(map[string]summary.DailySummary)},
	}
}
