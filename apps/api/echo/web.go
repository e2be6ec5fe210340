package echoapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/attendance"
	"github.com/rohitfewfer/attendance/core/dashboard"
	"github.com/rohitfewfer/attendance/core/summary"
	"github.com/rohitfewfer/attendance/core/timetable"
)

var entryFormFields = []string{"day", "position", "subject"}

type webApi struct {
	dashboard     *dashboard.Service
	timetableSvc  *timetable.Service
	attendanceSvc *attendance.Service
	summarySvc    *summary.Service
	validate      *validator.Validate
}

func newWebApi(deps ServerDeps) *webApi {
	return &webApi{
		dashboard:     deps.Dashboard,
		timetableSvc:  deps.TimetableSvc,
		attendanceSvc: deps.AttendanceSvc,
		summarySvc:    deps.SummarySvc,
		validate:      deps.Validate,
	}
}

func registerWebAPI(e *echo.Echo, deps ServerDeps) {
	api := newWebApi(deps)

	e.GET("/", api.index)
	e.POST("/mark", api.mark)
	e.POST("/save_day", api.saveDay)
	e.POST("/reset", api.resetAttendance)
	e.POST("/reset_summary", api.resetSummary)
	e.GET("/attended", api.attended)
	e.GET("/summary", api.summary)

	ag := e.Group("/admin", adminMiddleware(deps.Conf)...)
	ag.GET("", api.admin)
	ag.POST("/add", api.addEntry)
	ag.POST("/edit/:id", api.editEntry)
	ag.POST("/delete/:id", api.deleteEntry)
}

// flashAndRedirect queues msg for the next page and redirects (302) to path.
func flashAndRedirect(ctx echo.Context, msg, path string) error {
	if err := addFlash(ctx, msg); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusFound, path)
}

// requireFormFields rejects forms missing one of names; present but empty values pass.
func requireFormFields(ctx echo.Context, names ...string) error {
	params, err := ctx.FormParams()
	if err != nil {
		return errors.Wrap(err, "parsing form")
	}
	var fields []core.FieldError
	for _, name := range names {
		if _, ok := params[name]; !ok {
			fields = append(fields, core.FieldError{Field: name, Error: "this field is required"})
		}
	}
	if len(fields) > 0 {
		return core.NewValidationError(errors.New("missing form fields"), fields...)
	}
	return nil
}

func entryID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// Handlers

func (api *webApi) index(ctx echo.Context) error {
	today, err := api.dashboard.Today(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading today")
	}
	return ctx.Render(http.StatusOK, "index", newView(ctx, today))
}

func (api *webApi) mark(ctx echo.Context) error {
	var data attendance.MarkRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkRequest")
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	var msg string
	switch err := api.dashboard.Mark(ctx.Request().Context(), data.Subject); errors.Cause(err) {
	case nil:
		markOutcomes.WithLabelValues("marked").Inc()
		msg = fmt.Sprintf("%s marked.", data.Subject)
	case attendance.ErrAlreadyMarked:
		markOutcomes.WithLabelValues("duplicate").Inc()
		msg = fmt.Sprintf("%s already marked.", data.Subject)
	default:
		return errors.Wrap(err, "marking attendance")
	}
	return flashAndRedirect(ctx, msg, "/")
}

func (api *webApi) saveDay(ctx echo.Context) error {
	var msg string
	switch _, err := api.dashboard.SaveDay(ctx.Request().Context()); errors.Cause(err) {
	case nil:
		summaryOutcomes.WithLabelValues("saved").Inc()
		msg = "Day summary saved."
	case summary.ErrExists:
		summaryOutcomes.WithLabelValues("exists").Inc()
		msg = "Summary already exists."
	default:
		return errors.Wrap(err, "saving day summary")
	}
	return flashAndRedirect(ctx, msg, "/")
}

func (api *webApi) resetAttendance(ctx echo.Context) error {
	if _, err := api.attendanceSvc.ClearAll(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "resetting attendance")
	}
	resets.WithLabelValues("attendance").Inc()
	return flashAndRedirect(ctx, "Today's attendance reset.", "/")
}

func (api *webApi) resetSummary(ctx echo.Context) error {
	if _, err := api.summarySvc.ClearAll(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "resetting summaries")
	}
	resets.WithLabelValues("summary").Inc()
	return flashAndRedirect(ctx, "Summary history reset.", "/")
}

func (api *webApi) attended(ctx echo.Context) error {
	marks, err := api.attendanceSvc.ListAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing attendance")
	}
	return ctx.Render(http.StatusOK, "attended", newView(ctx, marks))
}

func (api *webApi) summary(ctx echo.Context) error {
	overview, err := api.dashboard.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading summaries")
	}
	return ctx.Render(http.StatusOK, "summary", newView(ctx, overview))
}

func (api *webApi) admin(ctx echo.Context) error {
	entries, err := api.timetableSvc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing timetable")
	}
	return ctx.Render(http.StatusOK, "admin", newView(ctx, entries))
}

func (api *webApi) addEntry(ctx echo.Context) error {
	if err := requireFormFields(ctx, entryFormFields...); err != nil {
		return err
	}
	var form timetable.EntryForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to EntryForm")
	}
	ne, err := form.Validate(api.validate)
	if err != nil {
		return err
	}
	if _, err = api.timetableSvc.Add(ctx.Request().Context(), ne); err != nil {
		return errors.Wrap(err, "adding timetable entry")
	}
	return flashAndRedirect(ctx, "Entry added.", "/admin")
}

func (api *webApi) editEntry(ctx echo.Context) error {
	id, err := entryID(ctx)
	if err != nil {
		return err
	}
	if err = requireFormFields(ctx, entryFormFields...); err != nil {
		return err
	}
	var form timetable.EntryForm
	if err = ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to EntryForm")
	}
	ne, err := form.Validate(api.validate)
	if err != nil {
		return err
	}

	switch _, err = api.timetableSvc.Update(ctx.Request().Context(), id, ne); errors.Cause(err) {
	case nil:
		return flashAndRedirect(ctx, "Entry updated.", "/admin")
	case timetable.ErrNotFound:
		return flashAndRedirect(ctx, "Entry not found.", "/admin")
	default:
		return errors.Wrap(err, "updating timetable entry")
	}
}

func (api *webApi) deleteEntry(ctx echo.Context) error {
	id, err := entryID(ctx)
	if err != nil {
		return err
	}

	switch err = api.timetableSvc.Delete(ctx.Request().Context(), id); errors.Cause(err) {
	case nil:
		return flashAndRedirect(ctx, "Entry deleted.", "/admin")
	case timetable.ErrNotFound:
		return flashAndRedirect(ctx, "Entry not found.", "/admin")
	default:
		return errors.Wrap(err, "deleting timetable entry")
	}
}
