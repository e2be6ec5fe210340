package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/attendance"
	"github.com/rohitfewfer/attendance/storage/database"
)

type attendanceRepository struct {
	baseRepository
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db core.DB) *attendanceRepository {
	return &attendanceRepository{newBaseRepository(db)}
}

// CreateMarks relies on the (subject, date, slot) unique key: when slot 1 already
// exists the whole mark is a duplicate, even under concurrent requests.
func (repo *attendanceRepository) CreateMarks(ctx context.Context, subject, date string, weight int) error {
	return database.WithTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		for slot := 1; slot <= weight; slot++ {
			// INSERT INTO attendance_mark (subject,date,slot) VALUES ($1,$2,$3) ON CONFLICT (subject, date, slot) DO NOTHING
			q, args, err := repo.sb.Insert(attendanceTable).
				Columns("subject", "date", "slot").
				Values(subject, date, slot).
				Suffix("ON CONFLICT (subject, date, slot) DO NOTHING").
				ToSql()
			if err != nil {
				return errors.Wrap(err, "building query")
			}
			res, err := tx.ExecContext(ctx, q, args...)
			if err != nil {
				return errors.Wrap(err, "inserting attendance mark")
			}
			n, err := rowsAffected(res)
			if err != nil {
				return err
			}
			if n == 0 && slot == 1 {
				return attendance.ErrAlreadyMarked
			}
		}
		return nil
	})
}

func (repo *attendanceRepository) QuerySubjectsOn(ctx context.Context, date string) ([]string, error) {
	q, args, err := repo.sb.Select("subject").Distinct().
		From(attendanceTable).
		Where(sq.Eq{"date": date}).
		OrderBy("subject").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	subjects := make([]string, 0)
	if err = repo.db.SelectContext(ctx, &subjects, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying marked subjects")
	}
	return subjects, nil
}

func (repo *attendanceRepository) QueryMarks(ctx context.Context) ([]attendance.Mark, error) {
	q, args, err := repo.sb.Select("id", "subject", "date", "slot").
		From(attendanceTable).
		OrderBy("date DESC", "id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	marks := make([]attendance.Mark, 0)
	if err = repo.db.SelectContext(ctx, &marks, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance marks")
	}
	return marks, nil
}

func (repo *attendanceRepository) DeleteAllMarks(ctx context.Context) (int64, error) {
	q, args, err := repo.sb.Delete(attendanceTable).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting attendance marks")
	}
	return rowsAffected(res)
}
