package summary

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrExists = errors.New("summary already exists")
)

type (
	Repository interface {
		// CreateSummary returns ErrExists if a summary for the date is already stored.
		CreateSummary(ctx context.Context, s DailySummary) error
		// QuerySummaries returns every summary, most recent date first.
		QuerySummaries(ctx context.Context) ([]DailySummary, error)
		// AveragePercentage is invalid (null) when there are no summaries.
		AveragePercentage(ctx context.Context) (null.Float64, error)
		DeleteAllSummaries(ctx context.Context) (int64, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save stores s; an existing summary for the same date is never overwritten.
func (svc *Service) Save(ctx context.Context, s DailySummary) error {
	return svc.repo.CreateSummary(ctx, s)
}

func (svc *Service) ListAll(ctx context.Context) ([]DailySummary, error) {
	return svc.repo.QuerySummaries(ctx)
}

func (svc *Service) AveragePercentage(ctx context.Context) (null.Float64, error) {
	return svc.repo.AveragePercentage(ctx)
}

func (svc *Service) ClearAll(ctx context.Context) (int64, error) {
	return svc.repo.DeleteAllSummaries(ctx)
}
