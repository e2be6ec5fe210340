package dummydb

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/rohitfewfer/attendance/core/summary"
)

type summaryRepository struct {
	db *summaryTable
}

var _ summary.Repository = (*summaryRepository)(nil) // interface compliance check

func NewSummaryRepository(db *DB) summary.Repository {
	return &summaryRepository{db: db.summary}
}

func (repo *summaryRepository) CreateSummary(_ context.Context, s summary.DailySummary) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[s.Date]; ok {
		return summary.ErrExists
	}
	repo.db.table[s.Date] = s
	return nil
}

func (repo *summaryRepository) QuerySummaries(context.Context) ([]summary.DailySummary, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	summaries := make([]summary.DailySummary, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Date > summaries[j].Date })
	return summaries, nil
}

func (repo *summaryRepository) AveragePercentage(context.Context) (null.Float64, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if len(repo.db.table) == 0 {
		return null.Float64{}, nil
	}
	var sum float64
	for _, s := range repo.db.table {
		sum += s.Percentage
	}
	return null.Float64From(sum / float64(len(repo.db.table))), nil
}

func (repo *summaryRepository) DeleteAllSummaries(context.Context) (int64, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n := int64(len(repo.db.table))
	repo.db.table = make(map[string]summary.DailySummary)
	return n, nil
}
