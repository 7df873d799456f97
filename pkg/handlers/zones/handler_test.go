package zones

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/de-tools/tzlab/pkg/models/api"
	"github.com/de-tools/tzlab/pkg/models/domain"
	"github.com/de-tools/tzlab/pkg/zones"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) ZoneReport(ctx context.Context) (*domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *mockReportService) AdjustmentReport(ctx context.Context, zoneID string, year, years int) (*domain.Report, error) {
	args := m.Called(ctx, zoneID, year, years)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func setupRouter(t *testing.T, reports *mockReportService) http.Handler {
	t.Helper()
	catalog, err := zones.DefaultCatalog()
	require.NoError(t, err)
	resolver := zones.NewResolver(zones.ResolverConfig{
		Catalog:     catalog,
		ZoneinfoDir: filepath.Join(t.TempDir(), "none"),
		Year:        2024,
	})

	h := NewHandler(reports, resolver)
	logger := zerolog.New(zerolog.NewTestWriter(t))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
		})
	})
	router.Get("/zones", h.ListZones)
	router.Get("/zones/{zone}", h.GetZone)
	router.Get("/zones/{zone}/adjustments", h.GetAdjustments)
	return router
}

func tableReport() *domain.Report {
	return domain.NewReport("t", []string{"id"}, []map[string]string{{"id": "UTC"}})
}

func TestListZones(t *testing.T) {
	reports := new(mockReportService)
	reports.On("ZoneReport", mock.Anything).Return(tableReport(), nil)
	router := setupRouter(t, reports)

	req := httptest.NewRequest("GET", "/zones", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "id \n---\nUTC\n", rec.Body.String())
	reports.AssertExpectations(t)
}

func TestListZones_Failure(t *testing.T) {
	reports := new(mockReportService)
	reports.On("ZoneReport", mock.Anything).Return(nil, errors.New("boom"))
	router := setupRouter(t, reports)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/zones", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body api.Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "boom", body.Message)
}

func TestGetZone(t *testing.T) {
	tests := []struct {
		name           string
		zone           string
		expectedStatus int
		expectedBody   api.Zone
	}{
		{
			name:           "escaped id",
			zone:           url.PathEscape("America/Denver"),
			expectedStatus: http.StatusOK,
			expectedBody: api.Zone{
				ID:           "America/Denver",
				DisplayName:  "(UTC-07:00) Mountain Time (US & Canada)",
				StandardName: "Mountain Standard Time",
				DaylightName: "Mountain Daylight Time",
				StandardAbbr: "MST",
				DaylightAbbr: "MDT",
				BaseOffset:   "-07:00",
				SupportsDST:  true,
				SortKey:      zones.SortKey(-420, "America/Denver"),
			},
		},
		{
			name:           "single segment id",
			zone:           "UTC",
			expectedStatus: http.StatusOK,
			expectedBody: api.Zone{
				ID:           "UTC",
				DisplayName:  "(UTC) Coordinated Universal Time",
				StandardName: "Coordinated Universal Time",
				DaylightName: "Coordinated Universal Time",
				StandardAbbr: "CUT",
				DaylightAbbr: "CUT",
				BaseOffset:   "+00:00",
				SortKey:      zones.SortKey(0, "UTC"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(t, new(mockReportService))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", "/zones/"+tt.zone, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var response api.Zone
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, tt.expectedBody, response)
		})
	}
}

func TestGetZone_NotFound(t *testing.T) {
	router := setupRouter(t, new(mockReportService))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/zones/"+url.PathEscape("Mars/Base"), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body api.Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Message, "Mars/Base")
}

func TestGetAdjustments(t *testing.T) {
	reports := new(mockReportService)
	reports.On("AdjustmentReport", mock.Anything, "Europe/Berlin", 2023, 2).Return(tableReport(), nil)
	router := setupRouter(t, reports)

	rec := httptest.NewRecorder()
	path := "/zones/" + url.PathEscape("Europe/Berlin") + "/adjustments?year=2023&years=2"
	router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "id \n---\nUTC\n", rec.Body.String())
	reports.AssertExpectations(t)
}

func TestGetAdjustments_JSON(t *testing.T) {
	router := setupRouter(t, new(mockReportService))

	rec := httptest.NewRecorder()
	path := "/zones/" + url.PathEscape("America/Denver") + "/adjustments?format=json"
	router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var response api.ZoneAdjustments
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "America/Denver", response.Zone)
	assert.Equal(t, 2024, response.Year)
	assert.Equal(t, 1, response.Years)
	require.Len(t, response.Transitions, 2)
	assert.Equal(t, "+01:00", response.Transitions[0].Delta)
	assert.True(t, response.Transitions[0].Daylight)
	assert.Equal(t, "-01:00", response.Transitions[1].Delta)
}

func TestGetAdjustments_BadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"year not a number", "year=soon"},
		{"negative year", "year=-3"},
		{"zero years", "years=0"},
		{"too many years", "years=101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(t, new(mockReportService))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", "/zones/UTC/adjustments?"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
