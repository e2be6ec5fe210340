package dashboard

import (
	"context"
	"net/mail"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/attendance"
	"github.com/rohitfewfer/attendance/core/summary"
	"github.com/rohitfewfer/attendance/core/timetable"
)

var NowFunc = time.Now // mockable

type (
	// Today is everything the home page shows.
	Today struct {
		Weekday   string                 `json:"weekday"`
		Date      string                 `json:"date"`
		Timetable map[string][]string    `json:"timetable"`
		Scheduled []string               `json:"scheduled"`
		Marked    []string               `json:"marked"`
		Total     int                    `json:"total"`
		Attended  int                    `json:"attended"`
		Percent   float64                `json:"percent"`
		History   []summary.DailySummary `json:"history"`
		Overall   float64                `json:"overall"`
	}

	Overview struct {
		Summaries []summary.DailySummary `json:"summaries"`
		Overall   float64                `json:"overall"`
	}

	Deps struct {
		Timetable  *timetable.Service
		Attendance *attendance.Service
		Summary    *summary.Service
		Location   *time.Location

		// optional: the daily summary is mailed to NotifyTo when both are set
		Mailer   core.EmailService
		NotifyTo []mail.Address
	}

	Service struct {
		deps Deps
	}
)

func NewService(deps Deps) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(deps.Timetable, "Timetable"),
		vala.IsNotNil(deps.Attendance, "Attendance"),
		vala.IsNotNil(deps.Summary, "Summary"),
	).CheckAndPanic()

	if deps.Location == nil {
		deps.Location = time.Local
	}
	return &Service{deps: deps}
}

func (svc *Service) now() time.Time {
	return NowFunc().In(svc.deps.Location)
}

// TodayDate is the current calendar date in the configured timezone.
func (svc *Service) TodayDate() string {
	return svc.now().Format(core.DateLayout)
}

// Mark records subject as attended today.
func (svc *Service) Mark(ctx context.Context, subject string) error {
	return svc.deps.Attendance.Mark(ctx, subject, svc.TodayDate())
}

// current computes today's figures from a single clock reading.
func (svc *Service) current(ctx context.Context) (Today, error) {
	now := svc.now()
	today := Today{
		Weekday: now.Weekday().String(),
		Date:    now.Format(core.DateLayout),
	}

	byDay, err := svc.deps.Timetable.LoadByDay(ctx)
	if err != nil {
		return Today{}, errors.Wrap(err, "loading timetable")
	}
	marked, err := svc.deps.Attendance.MarksFor(ctx, today.Date)
	if err != nil {
		return Today{}, errors.Wrap(err, "loading marks")
	}

	today.Timetable = byDay
	today.Scheduled = byDay[today.Weekday]
	if today.Scheduled == nil {
		today.Scheduled = []string{}
	}
	today.Marked = marked
	if today.Marked == nil {
		today.Marked = []string{}
	}
	today.Total = Total(today.Scheduled)
	today.Attended = Attended(today.Marked)
	today.Percent = Percent(today.Attended, today.Total)
	return today, nil
}

// Today returns the current day's schedule, marks and percentage plus the saved history.
func (svc *Service) Today(ctx context.Context) (Today, error) {
	today, err := svc.current(ctx)
	if err != nil {
		return Today{}, err
	}
	overview, err := svc.Overview(ctx)
	if err != nil {
		return Today{}, err
	}
	today.History = overview.Summaries
	today.Overall = overview.Overall
	return today, nil
}

// SaveDay freezes today's figures into the archive.
// It returns summary.ErrExists if today was already saved.
func (svc *Service) SaveDay(ctx context.Context) (summary.DailySummary, error) {
	today, err := svc.current(ctx)
	if err != nil {
		return summary.DailySummary{}, err
	}
	s := summary.DailySummary{
		Date:       today.Date,
		Attended:   today.Attended,
		Total:      today.Total,
		Percentage: today.Percent,
	}
	if err := svc.deps.Summary.Save(ctx, s); err != nil {
		return summary.DailySummary{}, err
	}
	svc.notify(s)
	return s, nil
}

// Overview returns the saved history (most recent first) and the overall average.
func (svc *Service) Overview(ctx context.Context) (Overview, error) {
	summaries, err := svc.deps.Summary.ListAll(ctx)
	if err != nil {
		return Overview{}, errors.Wrap(err, "loading summaries")
	}
	if summaries == nil {
		summaries = []summary.DailySummary{}
	}
	avg, err := svc.deps.Summary.AveragePercentage(ctx)
	if err != nil {
		return Overview{}, errors.Wrap(err, "computing overall percentage")
	}
	return Overview{Summaries: summaries, Overall: Overall(avg)}, nil
}

func (svc *Service) notify(s summary.DailySummary) {
	if svc.deps.Mailer == nil || len(svc.deps.NotifyTo) == 0 {
		return
	}
	svc.deps.Mailer.SendMessages(&core.EmailMessage{
		To:           svc.deps.NotifyTo,
		Subject:      "Attendance summary for " + s.Date,
		TemplateName: "daily_summary",
		TemplateData: s,
	})
}
