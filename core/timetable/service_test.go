package timetable_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/timetable"
	dummydb "github.com/rohitfewfer/attendance/storage/database/dummy"
)

func newService() *timetable.Service {
	return timetable.NewService(dummydb.NewTimetableRepository(dummydb.Open()))
}

func TestService_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	n, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 23, n)

	n, err = svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "second seed must not insert")

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 23)
}

func TestService_SeedIfEmpty_NotEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Add(ctx, timetable.NewEntry{Day: "Monday", Position: 1, Subject: "PE"})
	require.NoError(t, err)

	n, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	byDay, err := svc.LoadByDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Monday": {"PE"}}, byDay)
}

func TestService_LoadByDay(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)

	byDay, err := svc.LoadByDay(ctx)
	require.NoError(t, err)

	tests := []struct {
		day  string
		want []string
	}{
		{day: "Monday", want: []string{"ML", "CSS", "IVP", "DAV"}},
		{day: "Tuesday", want: []string{"CSS", "IVP", "SEPM LAB", "CCL LAB"}},
		{day: "Wednesday", want: []string{"SEPM", "DAV", "CCL LAB", "CSS", "MINI PROJECT"}},
		{day: "-Wednesday", want: []string{"IVP"}},
		{day: "Thursday", want: []string{"DAV", "ML", "DAV LAB", "SEPM"}},
		{day: "Friday", want: []string{"ML", "SEPM", "CSS LAB", "ML LAB", "MINI PROJECT"}},
		{day: "Saturday"},
		{day: "Sunday"},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			assert.Equal(t, tt.want, byDay[tt.day])
		})
	}
}

func TestService_LoadByDay_OrdersByPosition(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	for _, ne := range []timetable.NewEntry{
		{Day: "Monday", Position: 3, Subject: "C"},
		{Day: "Monday", Position: 1, Subject: "A"},
		{Day: "Monday", Position: 2, Subject: "B"},
		{Day: "Monday", Position: 2, Subject: "B2"},
	} {
		_, err := svc.Add(ctx, ne)
		require.NoError(t, err)
	}

	byDay, err := svc.LoadByDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "B2", "C"}, byDay["Monday"])
}

func TestService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	e, err := svc.Add(ctx, timetable.NewEntry{Day: "Monday", Position: 1, Subject: "ML"})
	require.NoError(t, err)
	assert.NotZero(t, e.ID)

	e, err = svc.Update(ctx, e.ID, timetable.NewEntry{Day: "Tuesday", Position: 2, Subject: "ML LAB"})
	require.NoError(t, err)
	assert.Equal(t, timetable.Entry{ID: e.ID, Day: "Tuesday", Position: 2, Subject: "ML LAB"}, e)

	_, err = svc.Update(ctx, e.ID+100, timetable.NewEntry{Day: "Tuesday", Position: 2, Subject: "X"})
	assert.Equal(t, timetable.ErrNotFound, errors.Cause(err))

	require.NoError(t, svc.Delete(ctx, e.ID))
	assert.Equal(t, timetable.ErrNotFound, errors.Cause(svc.Delete(ctx, e.ID)))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_Delete_KeepsOtherEntries(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)

	before, err := svc.LoadByDay(ctx)
	require.NoError(t, err)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	var ivp timetable.Entry
	for _, e := range entries {
		if e.Day == "Tuesday" && e.Position == 2 {
			ivp = e
		}
	}
	require.Equal(t, "IVP", ivp.Subject)
	require.NoError(t, svc.Delete(ctx, ivp.ID))

	after, err := svc.LoadByDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"CSS", "SEPM LAB", "CCL LAB"}, after["Tuesday"])
	for day, subjects := range before {
		if day != "Tuesday" {
			assert.Equal(t, subjects, after[day], day)
		}
	}

	entries, err = svc.List(ctx)
	require.NoError(t, err)
	var positions []int
	for _, e := range entries {
		if e.Day == "Tuesday" {
			positions = append(positions, e.Position)
		}
	}
	assert.Equal(t, []int{1, 3, 4}, positions)
}

func TestDefaultSchedule_IsCopy(t *testing.T) {
	s := timetable.DefaultSchedule()
	s[0].Subject = "CHANGED"
	assert.Equal(t, "ML", timetable.DefaultSchedule()[0].Subject)
}

func TestEntryForm_Validate(t *testing.T) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	tests := []struct {
		name    string
		form    timetable.EntryForm
		want    timetable.NewEntry
		wantErr bool
	}{
		{
			name: "valid",
			form: timetable.EntryForm{Day: "Monday", Position: "2", Subject: "CSS"},
			want: timetable.NewEntry{Day: "Monday", Position: 2, Subject: "CSS"},
		},
		{
			name: "negative position",
			form: timetable.EntryForm{Day: "Monday", Position: " -1 ", Subject: "CSS"},
			want: timetable.NewEntry{Day: "Monday", Position: -1, Subject: "CSS"},
		},
		{
			name: "empty day is kept",
			form: timetable.EntryForm{Position: "1", Subject: "CSS"},
			want: timetable.NewEntry{Day: "", Position: 1, Subject: "CSS"},
		},
		{name: "blank position", form: timetable.EntryForm{Day: "Monday", Position: "  ", Subject: "CSS"}, wantErr: true},
		{name: "missing subject", form: timetable.EntryForm{Day: "Monday", Position: "1"}, wantErr: true},
		{name: "non integer position", form: timetable.EntryForm{Day: "Monday", Position: "first", Subject: "CSS"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.form.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
