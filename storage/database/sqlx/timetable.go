package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/timetable"
	"github.com/rohitfewfer/attendance/storage/database"
)

type timetableRepository struct {
	baseRepository
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db core.DB) *timetableRepository {
	return &timetableRepository{newBaseRepository(db)}
}

func (repo *timetableRepository) CountEntries(ctx context.Context) (int, error) {
	// SELECT COUNT(*) FROM timetable_entry
	q, args, err := repo.sb.Select("COUNT(*)").From(timetableTable).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}
	var count int
	if err = repo.db.GetContext(ctx, &count, q, args...); err != nil {
		return 0, errors.Wrap(err, "counting timetable entries")
	}
	return count, nil
}

func (repo *timetableRepository) insertEntry(ctx context.Context, tx *sqlx.Tx, entry timetable.Entry) (timetable.Entry, error) {
	// INSERT INTO timetable_entry (day,position,subject) VALUES ($1,$2,$3) RETURNING id
	q, args, err := repo.sb.Insert(timetableTable).
		Columns("day", "position", "subject").
		Values(entry.Day, entry.Position, entry.Subject).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return entry, errors.Wrap(err, "building query")
	}
	if err = tx.QueryRowxContext(ctx, q, args...).Scan(&entry.ID); err != nil {
		return entry, errors.Wrap(err, "inserting timetable entry")
	}
	return entry, nil
}

func (repo *timetableRepository) CreateEntries(ctx context.Context, entries ...timetable.Entry) ([]timetable.Entry, error) {
	created := make([]timetable.Entry, 0, len(entries))
	err := database.WithTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		for _, entry := range entries {
			e, err := repo.insertEntry(ctx, tx, entry)
			if err != nil {
				return err
			}
			created = append(created, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (repo *timetableRepository) QueryEntries(ctx context.Context) ([]timetable.Entry, error) {
	q, args, err := repo.sb.Select("id", "day", "position", "subject").
		From(timetableTable).
		OrderBy("day", "position", "id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	entries := make([]timetable.Entry, 0)
	if err = repo.db.SelectContext(ctx, &entries, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying timetable entries")
	}
	return entries, nil
}

func (repo *timetableRepository) UpdateEntry(ctx context.Context, entry timetable.Entry) (timetable.Entry, error) {
	// UPDATE timetable_entry SET day = $1, position = $2, subject = $3 WHERE id = $4
	q, args, err := repo.sb.Update(timetableTable).
		Set("day", entry.Day).
		Set("position", entry.Position).
		Set("subject", entry.Subject).
		Where(sq.Eq{"id": entry.ID}).
		ToSql()
	if err != nil {
		return timetable.Entry{}, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return timetable.Entry{}, errors.Wrap(err, "updating timetable entry")
	}
	n, err := rowsAffected(res)
	if err != nil {
		return timetable.Entry{}, err
	}
	if n == 0 {
		return timetable.Entry{}, timetable.ErrNotFound
	}
	return entry, nil
}

func (repo *timetableRepository) DeleteEntry(ctx context.Context, id int64) error {
	q, args, err := repo.sb.Delete(timetableTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "deleting timetable entry")
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return timetable.ErrNotFound
	}
	return nil
}
