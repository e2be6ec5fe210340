package attendance

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrAlreadyMarked = errors.New("subject already marked for this date")
)

type (
	Repository interface {
		// CreateMarks atomically inserts `weight` rows for (subject, date).
		// It returns ErrAlreadyMarked if the pair is already in the ledger.
		CreateMarks(ctx context.Context, subject, date string, weight int) error
		// QuerySubjectsOn returns the distinct subjects marked on date.
		QuerySubjectsOn(ctx context.Context, date string) ([]string, error)
		// QueryMarks returns every row, most recent date first.
		QueryMarks(ctx context.Context) ([]Mark, error)
		DeleteAllMarks(ctx context.Context) (int64, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Mark records attendance of subject on date, weighted for labs.
func (svc *Service) Mark(ctx context.Context, subject, date string) error {
	return svc.repo.CreateMarks(ctx, subject, date, Weight(subject))
}

// MarksFor returns the distinct subjects marked on date.
func (svc *Service) MarksFor(ctx context.Context, date string) ([]string, error) {
	return svc.repo.QuerySubjectsOn(ctx, date)
}

func (svc *Service) ListAll(ctx context.Context) ([]Mark, error) {
	return svc.repo.QueryMarks(ctx)
}

// ClearAll empties the whole ledger, not only today's marks.
func (svc *Service) ClearAll(ctx context.Context) (int64, error) {
	return svc.repo.DeleteAllMarks(ctx)
}
