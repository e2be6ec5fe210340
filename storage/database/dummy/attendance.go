package dummydb

import (
	"context"
	"sort"

	"github.com/rohitfewfer/attendance/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) CreateMarks(_ context.Context, subject, date string, weight int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, m := range repo.db.table {
		if m.Subject == subject && m.Date == date {
			return attendance.ErrAlreadyMarked
		}
	}
	for slot := 1; slot <= weight; slot++ {
		repo.db.pkCount++
		repo.db.table = append(repo.db.table, attendance.Mark{
			ID:      repo.db.pkCount,
			Subject: subject,
			Date:    date,
			Slot:    slot,
		})
	}
	return nil
}

func (repo *attendanceRepository) QuerySubjectsOn(_ context.Context, date string) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	seen := make(map[string]struct{})
	subjects := make([]string, 0)
	for _, m := range repo.db.table {
		if m.Date != date {
			continue
		}
		if _, ok := seen[m.Subject]; !ok {
			seen[m.Subject] = struct{}{}
			subjects = append(subjects, m.Subject)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

func (repo *attendanceRepository) QueryMarks(context.Context) ([]attendance.Mark, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	marks := make([]attendance.Mark, len(repo.db.table))
	copy(marks, repo.db.table)
	sort.SliceStable(marks, func(i, j int) bool {
		if marks[i].Date != marks[j].Date {
			return marks[i].Date > marks[j].Date
		}
		return marks[i].ID < marks[j].ID
	})
	return marks, nil
}

func (repo *attendanceRepository) DeleteAllMarks(context.Context) (int64, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n := int64(len(repo.db.table))
	repo.db.table = nil
	return n, nil
}
