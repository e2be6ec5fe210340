package dummydb

import (
	"context"

	"github.com/rohitfewfer/attendance/core/timetable"
)

type timetableRepository struct {
	db *timetableTable
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{db: db.timetable}
}

func (repo *timetableRepository) CountEntries(context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return len(repo.db.table), nil
}

func (repo *timetableRepository) CreateEntries(_ context.Context, entries ...timetable.Entry) ([]timetable.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	created := make([]timetable.Entry, 0, len(entries))
	for _, e := range entries {
		repo.db.pkCount++
		e.ID = repo.db.pkCount
		entry := e
		repo.db.table[e.ID] = &entry
		created = append(created, e)
	}
	return created, nil
}

func (repo *timetableRepository) QueryEntries(context.Context) ([]timetable.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]timetable.Entry, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		entries = append(entries, *e)
	}
	timetable.SortEntries(entries)
	return entries, nil
}

func (repo *timetableRepository) UpdateEntry(_ context.Context, entry timetable.Entry) (timetable.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[entry.ID]; !ok {
		return timetable.Entry{}, timetable.ErrNotFound
	}
	repo.db.table[entry.ID] = &entry
	return entry, nil
}

func (repo *timetableRepository) DeleteEntry(_ context.Context, id int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return timetable.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
