package get_week_schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/StudioBookingService/internal/domain"
	getWeekSchedule "github.com/m04kA/StudioBookingService/internal/usecase/get_week_schedule"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *getWeekSchedule.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getWeekSchedule.Request) (*getWeekSchedule.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}

	resp := &getWeekSchedule.Response{
		WeekStart: "2026-03-02",
		WeekEnd:   "2026-03-08",
		Classes:   []getWeekSchedule.ClassOption{{ID: "c-1", Name: "Hot Pilates"}},
	}
	start, _ := types.ParseDate("2026-03-02")
	for i := 0; i < 7; i++ {
		day := getWeekSchedule.Day{Date: start.AddDays(i), Weekday: (i + 1) % 7}
		if i == 0 {
			day.Entries = []getWeekSchedule.Entry{{
				Slot: domain.ScheduledSlot{
					Slot:  domain.TimeSlot{ID: "s-1", ClassID: "c-1", DayOfWeek: 1, StartTime: "07:00", EndTime: "08:00", Active: true},
					Class: domain.ClassOffering{ID: "c-1", Name: "Hot Pilates"},
				},
				DisplayCapacity: 12,
			}}
		}
		resp.Days = append(resp.Days, day)
	}
	return resp, nil
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/schedule/week?start=2026-03-04&classId=c-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.Date("2026-03-04"), uc.got.Start)
	assert.Equal(t, "c-1", uc.got.ClassID)

	var body WeekScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-03-02", body.WeekStart)
	assert.Equal(t, "Mon, 2 Mar 2026 - Sun, 8 Mar 2026", body.Label)
	require.Len(t, body.Days, 7)
	assert.Equal(t, "Monday", body.Days[0].DayName)
	assert.Equal(t, "Mon", body.Days[0].DayShort)
	assert.Equal(t, "Sunday", body.Days[6].DayName)
	require.Len(t, body.Days[0].Entries, 1)
	assert.Equal(t, "Hot Pilates", body.Days[0].Entries[0].ClassName)
	assert.Equal(t, 12, body.Days[0].Entries[0].Capacity)
	assert.Equal(t, []ClassOption{{ID: "c-1", Name: "Hot Pilates"}}, body.Classes)
}

func TestHandle_DefaultsToCurrentWeek(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedule/week", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, uc.got.Start)
	assert.Empty(t, uc.got.ClassID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := map[error]int{
		getWeekSchedule.ErrInvalidDate: http.StatusBadRequest,
		fmt.Errorf("boom"):             http.StatusInternalServerError,
	}
	for err, want := range tests {
		t.Run(err.Error(), func(t *testing.T) {
			uc := &fakeUseCase{err: fmt.Errorf("%w: Execute - step: x", err)}
			rec := httptest.NewRecorder()

			NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/schedule/week?start=04.03.2026", nil))

			assert.Equal(t, want, rec.Code)
		})
	}
}
