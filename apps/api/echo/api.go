package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rohitfewfer/attendance/core/attendance"
	"github.com/rohitfewfer/attendance/core/dashboard"
	"github.com/rohitfewfer/attendance/core/summary"
	"github.com/rohitfewfer/attendance/core/timetable"
)

type (
	jsonApi struct {
		dashboard     *dashboard.Service
		timetableSvc  *timetable.Service
		attendanceSvc *attendance.Service
		summarySvc    *summary.Service
	}

	markResponse struct {
		Subject string `json:"subject"`
		Date    string `json:"date"`
		Weight  int    `json:"weight"`
	}

	deletedResponse struct {
		Deleted int64 `json:"deleted"`
	}
)

// registerJSONAPI mirrors the HTML actions as JSON endpoints.
func registerJSONAPI(g *echo.Group, deps ServerDeps) {
	api := jsonApi{
		dashboard:     deps.Dashboard,
		timetableSvc:  deps.TimetableSvc,
		attendanceSvc: deps.AttendanceSvc,
		summarySvc:    deps.SummarySvc,
	}

	g.GET("/today", api.today)
	g.POST("/mark", api.mark)
	g.POST("/save-day", api.saveDay)
	g.GET("/attendance", api.queryAttendance)
	g.DELETE("/attendance", api.resetAttendance)
	g.GET("/summary", api.querySummary)
	g.DELETE("/summary", api.resetSummary)

	tg := g.Group("/timetable", adminMiddleware(deps.Conf)...)
	tg.GET("", api.queryTimetable)
	tg.POST("", api.createEntry)
	tg.PUT("/:id", api.updateEntry)
	tg.DELETE("/:id", api.destroyEntry)
}

// Handlers

func (api *jsonApi) today(ctx echo.Context) error {
	today, err := api.dashboard.Today(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading today")
	}
	return ctx.JSON(http.StatusOK, today)
}

func (api *jsonApi) mark(ctx echo.Context) error {
	var data attendance.MarkRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkRequest")
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}

	switch err := api.dashboard.Mark(ctx.Request().Context(), data.Subject); errors.Cause(err) {
	case nil:
		markOutcomes.WithLabelValues("marked").Inc()
		return ctx.JSON(http.StatusCreated, markResponse{
			Subject: data.Subject,
			Date:    api.dashboard.TodayDate(),
			Weight:  attendance.Weight(data.Subject),
		})
	case attendance.ErrAlreadyMarked:
		markOutcomes.WithLabelValues("duplicate").Inc()
		return echo.NewHTTPError(http.StatusConflict, data.Subject+" already marked")
	default:
		return errors.Wrap(err, "marking attendance")
	}
}

func (api *jsonApi) saveDay(ctx echo.Context) error {
	switch s, err := api.dashboard.SaveDay(ctx.Request().Context()); errors.Cause(err) {
	case nil:
		summaryOutcomes.WithLabelValues("saved").Inc()
		return ctx.JSON(http.StatusCreated, s)
	case summary.ErrExists:
		summaryOutcomes.WithLabelValues("exists").Inc()
		return echo.NewHTTPError(http.StatusConflict, summary.ErrExists.Error())
	default:
		return errors.Wrap(err, "saving day summary")
	}
}

func (api *jsonApi) queryAttendance(ctx echo.Context) error {
	marks, err := api.attendanceSvc.ListAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing attendance")
	}
	return ctx.JSON(http.StatusOK, marks)
}

func (api *jsonApi) resetAttendance(ctx echo.Context) error {
	n, err := api.attendanceSvc.ClearAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "resetting attendance")
	}
	resets.WithLabelValues("attendance").Inc()
	return ctx.JSON(http.StatusOK, deletedResponse{Deleted: n})
}

func (api *jsonApi) querySummary(ctx echo.Context) error {
	overview, err := api.dashboard.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading summaries")
	}
	return ctx.JSON(http.StatusOK, overview)
}

func (api *jsonApi) resetSummary(ctx echo.Context) error {
	n, err := api.summarySvc.ClearAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "resetting summaries")
	}
	resets.WithLabelValues("summary").Inc()
	return ctx.JSON(http.StatusOK, deletedResponse{Deleted: n})
}

func (api *jsonApi) queryTimetable(ctx echo.Context) error {
	entries, err := api.timetableSvc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing timetable")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *jsonApi) createEntry(ctx echo.Context) error {
	var data timetable.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := ctx.Validate(data); err != nil {
		return err
	}
	entry, err := api.timetableSvc.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding timetable entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *jsonApi) updateEntry(ctx echo.Context) error {
	id, err := entryID(ctx)
	if err != nil {
		return err
	}
	var data timetable.NewEntry
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err = ctx.Validate(data); err != nil {
		return err
	}
	entry, err := api.timetableSvc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating timetable entry")
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *jsonApi) destroyEntry(ctx echo.Context) error {
	id, err := entryID(ctx)
	if err != nil {
		return err
	}
	if err = api.timetableSvc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting timetable entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}
