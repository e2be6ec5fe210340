package sqlxrepos

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/storage/database"
)

const (
	timetableTable  = "timetable_entry"
	attendanceTable = "attendance_mark"
	summaryTable    = "daily_summary"
)

type baseRepository struct {
	db core.DB
	sb sq.StatementBuilderType
}

func newBaseRepository(db core.DB) baseRepository {
	return baseRepository{db: db, sb: database.StatementBuilder(db.DriverName())}
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "reading rows affected")
	}
	return n, nil
}
