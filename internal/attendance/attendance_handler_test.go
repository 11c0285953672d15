package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	attendance.Service
	clockInFn       func(ctx context.Context, employeeNo int64, req attendance.ClockRequest) (attendance.AttendanceResponse, error)
	listFn          func(ctx context.Context, employeeNo int64, from, to time.Time) ([]attendance.AttendanceResponse, error)
	requestManualFn func(ctx context.Context, employeeNo int64, req attendance.ManualAttendanceCreateRequest) (attendance.ManualAttendanceResponse, error)
	summaryFn       func(ctx context.Context, employeeNo int64, from, to time.Time) (attendance.Summary, error)
}

func (f *fakeService) ClockIn(ctx context.Context, employeeNo int64, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	return f.clockInFn(ctx, employeeNo, req)
}
func (f *fakeService) List(ctx context.Context, employeeNo int64, from, to time.Time) ([]attendance.AttendanceResponse, error) {
	return f.listFn(ctx, employeeNo, from, to)
}
func (f *fakeService) RequestManual(ctx context.Context, employeeNo int64, req attendance.ManualAttendanceCreateRequest) (attendance.ManualAttendanceResponse, error) {
	return f.requestManualFn(ctx, employeeNo, req)
}
func (f *fakeService) Summary(ctx context.Context, employeeNo int64, from, to time.Time) (attendance.Summary, error) {
	return f.summaryFn(ctx, employeeNo, from, to)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextEmployeeNo, int64(100))
	return c, w
}

func TestHandler_ClockInAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		clockInFn: func(ctx context.Context, employeeNo int64, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, int64(100), employeeNo)
			return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeNo: employeeNo}, nil
		},
		listFn: func(ctx context.Context, employeeNo int64, from, to time.Time) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "2024-03-01", from.Format("2006-01-02"))
			assert.Equal(t, "2024-03-31", to.Format("2006-01-02"))
			return []attendance.AttendanceResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}
	h := attendance.NewHandler(svc)

	c, w := newContext(http.MethodPost, "/attendances/clock-in", `{}`)
	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c2, w2 := newContext(http.MethodGet, "/attendances?from=2024-03-01&to=2024-03-31&page=1&page_size=1", "")
	h.List(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
}

func TestHandler_ClockInRequiresActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/clock-in", strings.NewReader(`{}`))
	h.ClockIn(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_RequestManual(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("validation error", func(t *testing.T) {
		h := attendance.NewHandler(&fakeService{})
		c, w := newContext(http.MethodPost, "/attendances/manual-requests", `{"attendance_date":"2024-03-04"}`)
		h.RequestManual(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		svc := &fakeService{
			requestManualFn: func(ctx context.Context, employeeNo int64, req attendance.ManualAttendanceCreateRequest) (attendance.ManualAttendanceResponse, error) {
				return attendance.ManualAttendanceResponse{}, attendanceerrors.ErrManualRequestExists
			},
		}
		h := attendance.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/attendances/manual-requests",
			`{"attendance_date":"2024-03-04","clock_in":"09:00","clock_out":"17:00","reason":"device offline"}`)
		h.RequestManual(c)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandler_Summary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		summaryFn: func(ctx context.Context, employeeNo int64, from, to time.Time) (attendance.Summary, error) {
			assert.Equal(t, int64(42), employeeNo)
			return attendance.Summary{
				OvertimeHours: decimal.RequireFromString("3.5"),
				DelayedHours:  decimal.Zero,
				EarlyOutHours: decimal.Zero,
				AbsentDays:    decimal.NewFromInt(1),
			}, nil
		},
	}
	h := attendance.NewHandler(svc)

	c, w := newContext(http.MethodGet, "/attendances/summary/42?from=2024-03-01&to=2024-03-31", "")
	c.Params = gin.Params{{Key: "employeeNo", Value: "42"}}
	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"overtime_hours":"3.50"`)
	assert.Contains(t, w.Body.String(), `"absent_days":"1"`)
}
