package list_classes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/StudioBookingService/internal/service/catalog"
	"github.com/m04kA/StudioBookingService/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCatalog struct {
	err        error
	activeOnly *bool
	gotID      string
}

func (f *fakeCatalog) ListClasses(_ context.Context, activeOnly bool) ([]*models.ClassResponse, error) {
	f.activeOnly = &activeOnly
	if f.err != nil {
		return nil, f.err
	}
	return []*models.ClassResponse{
		{ID: "c-1", Name: "Hot Pilates", Active: true, Prices: map[string]float64{"single": 1500}},
	}, nil
}

func (f *fakeCatalog) GetClass(_ context.Context, id string) (*models.ClassResponse, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.ClassResponse{ID: id, Name: "Hot Pilates", Active: true}, nil
}

func TestHandle_ActiveOnly(t *testing.T) {
	svc := &fakeCatalog{}
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/classes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.activeOnly)
	assert.True(t, *svc.activeOnly)

	var body []models.ClassResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, 1500.0, body[0].Prices["single"])
}

func TestHandle_Failure(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeCatalog{err: catalog.ErrInternal}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/classes", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleGet(t *testing.T) {
	get := func(svc *fakeCatalog) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/classes/c-1", nil), map[string]string{"classId": "c-1"})
		NewHandler(svc, nopLogger{}).HandleGet(rec, req)
		return rec
	}

	svc := &fakeCatalog{}
	rec := get(svc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c-1", svc.gotID)

	assert.Equal(t, http.StatusNotFound, get(&fakeCatalog{err: fmt.Errorf("%w: GetClass - x", catalog.ErrClassNotFound)}).Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeCatalog{err: catalog.ErrInternal}).Code)
}
