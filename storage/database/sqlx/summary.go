package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/summary"
)

type summaryRepository struct {
	baseRepository
}

var _ summary.Repository = (*summaryRepository)(nil) // interface compliance check

func NewSummaryRepository(db core.DB) *summaryRepository {
	return &summaryRepository{newBaseRepository(db)}
}

func (repo *summaryRepository) CreateSummary(ctx context.Context, s summary.DailySummary) error {
	// INSERT INTO daily_summary (date,attended,total,percentage) VALUES ($1,$2,$3,$4) ON CONFLICT (date) DO NOTHING
	q, args, err := repo.sb.Insert(summaryTable).
		Columns("date", "attended", "total", "percentage").
		Values(s.Date, s.Attended, s.Total, s.Percentage).
		Suffix("ON CONFLICT (date) DO NOTHING").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "inserting daily summary")
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return summary.ErrExists
	}
	return nil
}

func (repo *summaryRepository) QuerySummaries(ctx context.Context) ([]summary.DailySummary, error) {
	q, args, err := repo.sb.Select("date", "attended", "total", "percentage").
		From(summaryTable).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	summaries := make([]summary.DailySummary, 0)
	if err = repo.db.SelectContext(ctx, &summaries, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying daily summaries")
	}
	return summaries, nil
}

func (repo *summaryRepository) AveragePercentage(ctx context.Context) (null.Float64, error) {
	q, args, err := repo.sb.Select("AVG(percentage)").From(summaryTable).ToSql()
	if err != nil {
		return null.Float64{}, errors.Wrap(err, "building query")
	}
	var avg null.Float64
	if err = repo.db.GetContext(ctx, &avg, q, args...); err != nil {
		return null.Float64{}, errors.Wrap(err, "averaging daily summaries")
	}
	return avg, nil
}

func (repo *summaryRepository) DeleteAllSummaries(ctx context.Context) (int64, error) {
	q, args, err := repo.sb.Delete(summaryTable).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting daily summaries")
	}
	return rowsAffected(res)
}
