package timetable

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("timetable entry not found")
)

type (
	Repository interface {
		CountEntries(ctx context.Context) (int, error)
		// CreateEntries inserts all entries atomically and returns them with their IDs set.
		CreateEntries(ctx context.Context, entries ...Entry) ([]Entry, error)
		QueryEntries(ctx context.Context) ([]Entry, error)
		UpdateEntry(ctx context.Context, entry Entry) (Entry, error)
		DeleteEntry(ctx context.Context, id int64) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SeedIfEmpty inserts the default schedule when the timetable has no rows.
// It returns the number of inserted entries.
func (svc *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := svc.repo.CountEntries(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "counting timetable entries")
	}
	if count > 0 {
		return 0, nil
	}
	created, err := svc.repo.CreateEntries(ctx, DefaultSchedule()...)
	if err != nil {
		return 0, errors.Wrap(err, "seeding timetable")
	}
	return len(created), nil
}

// List returns every entry ordered by day then position.
func (svc *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := svc.repo.QueryEntries(ctx)
	if err != nil {
		return nil, err
	}
	SortEntries(entries)
	return entries, nil
}

// LoadByDay groups subjects by day name, each list ordered by position.
// Days without entries are absent from the map.
func (svc *Service) LoadByDay(ctx context.Context) (map[string][]string, error) {
	entries, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string][]string)
	for _, e := range entries {
		byDay[e.Day] = append(byDay[e.Day], e.Subject)
	}
	return byDay, nil
}

func (svc *Service) Add(ctx context.Context, ne NewEntry) (Entry, error) {
	created, err := svc.repo.CreateEntries(ctx, Entry{Day: ne.Day, Position: ne.Position, Subject: ne.Subject})
	if err != nil {
		return Entry{}, err
	}
	return created[0], nil
}

// Update replaces day, position and subject of the entry with the given id.
func (svc *Service) Update(ctx context.Context, id int64, ne NewEntry) (Entry, error) {
	return svc.repo.UpdateEntry(ctx, Entry{ID: id, Day: ne.Day, Position: ne.Position, Subject: ne.Subject})
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteEntry(ctx, id)
}
