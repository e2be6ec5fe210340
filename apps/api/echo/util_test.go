package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/rohitfewfer/attendance/core"
	"github.com/rohitfewfer/attendance/core/attendance"
	"github.com/rohitfewfer/attendance/core/dashboard"
	"github.com/rohitfewfer/attendance/core/summary"
	"github.com/rohitfewfer/attendance/core/timetable"
	logsvc "github.com/rohitfewfer/attendance/services/logger"
	dummydb "github.com/rohitfewfer/attendance/storage/database/dummy"
	testutil "github.com/rohitfewfer/attendance/tests"
)

var monday = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

type testApp struct {
	*Server
	conf          *core.Config
	ttRepo        timetable.Repository
	attendanceSvc *attendance.Service
	summarySvc    *summary.Service
}

func setup(t *testing.T, configure ...func(conf *core.Config)) *testApp {
	t.Helper()
	conf := testutil.NewConfig(t)
	for _, fn := range configure {
		fn(conf)
	}

	db := dummydb.Open()
	ttRepo := dummydb.NewTimetableRepository(db)
	ttSvc := timetable.NewService(ttRepo)
	attSvc := attendance.NewService(dummydb.NewAttendanceRepository(db))
	sumSvc := summary.NewService(dummydb.NewSummaryRepository(db))
	if _, err := ttSvc.SeedIfEmpty(context.Background()); err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	dashboard.NowFunc = func() time.Time { return monday }
	t.Cleanup(func() { dashboard.NowFunc = time.Now })

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:   conf,
		Logger: logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf),
		Dashboard: dashboard.NewService(dashboard.Deps{
			Timetable:  ttSvc,
			Attendance: attSvc,
			Summary:    sumSvc,
			Location:   conf.Location(),
		}),
		TimetableSvc:  ttSvc,
		AttendanceSvc: attSvc,
		SummarySvc:    sumSvc,
		Validate:      validate,
		Translator:    translator,
	})
	return &testApp{Server: server, conf: conf, ttRepo: ttRepo, attendanceSvc: attSvc, summarySvc: sumSvc}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	form     url.Values
	wantCode int
	wantData []byte
	wantLoc  string
	wantText string // expected flash/page content
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func newFormRequest(method, path string, form url.Values, cookies ...*http.Cookie) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

// follow GETs `path` carrying the cookies set by a previous response.
func (app *testApp) follow(t *testing.T, prev *httptest.ResponseRecorder, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range prev.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// checkRedirectAndFlash asserts a 302 to tt.wantLoc whose next page shows tt.wantText.
func (app *testApp) checkRedirectAndFlash(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
		return
	}
	if tt.wantCode != http.StatusFound {
		return
	}
	assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
	page := app.follow(t, rec, tt.wantLoc)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), tt.wantText)
}
