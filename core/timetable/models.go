package timetable

import (
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/rohitfewfer/attendance/core"
)

// Entry is one lecture slot of the weekly schedule.
type Entry struct {
	ID       int64  `json:"id" db:"id"`
	Day      string `json:"day" db:"day"`
	Position int    `json:"position" db:"position"`
	Subject  string `json:"subject" db:"subject"`
}

// NewEntry contains information needed to create or replace an Entry.
// Day is free text and may be empty.
type NewEntry struct {
	Day      string `json:"day"`
	Position int    `json:"position"`
	Subject  string `json:"subject" validate:"required"`
}

// EntryForm is the admin page form; all fields arrive as text.
type EntryForm struct {
	Day      string `form:"day"`
	Position string `form:"position" validate:"notblank"`
	Subject  string `form:"subject" validate:"required"`
}

// Validate checks the form and converts it into a NewEntry.
func (f EntryForm) Validate(validate *validator.Validate) (NewEntry, error) {
	if err := validate.Struct(f); err != nil {
		return NewEntry{}, err
	}
	pos, err := strconv.Atoi(core.CleanString(f.Position))
	if err != nil {
		return NewEntry{}, core.NewValidationError(
			errors.New("invalid position"),
			core.FieldError{Field: "position", Error: "position must be an integer"},
		)
	}
	return NewEntry{Day: f.Day, Position: pos, Subject: f.Subject}, nil
}

// SortEntries orders entries by day name, then position (byte-wise, stable).
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day < entries[j].Day
		}
		if entries[i].Position != entries[j].Position {
			return entries[i].Position < entries[j].Position
		}
		return entries[i].ID < entries[j].ID
	})
}
