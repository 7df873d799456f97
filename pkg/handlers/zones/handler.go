package zones

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/de-tools/tzlab/pkg/models/api"
	"github.com/de-tools/tzlab/pkg/models/domain"
	"github.com/de-tools/tzlab/pkg/runtime/terminal/export"
	"github.com/de-tools/tzlab/pkg/zones"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultYears = 1
	maxYears     = 100
)

// ReportService builds the zone and transition reports.
type ReportService interface {
	ZoneReport(ctx context.Context) (*domain.Report, error)
	AdjustmentReport(ctx context.Context, zoneID string, year, years int) (*domain.Report, error)
}

// Resolver loads zones by id.
type Resolver interface {
	Resolve(ctx context.Context, id string) (*zones.Zone, error)
	Year() int
}

type Handler struct {
	reports  ReportService
	resolver Resolver
}

func NewHandler(reports ReportService, resolver Resolver) *Handler {
	return &Handler{
		reports:  reports,
		resolver: resolver,
	}
}

// ListZones writes the fixed-width zone report as plain text.
func (h *Handler) ListZones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.reports.ZoneReport(ctx)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, err)
		return
	}
	writeReport(ctx, w, report)
}

// GetZone writes the properties of the zone named in the path. Ids holding
// a slash are sent escaped, e.g. America%2FDenver.
func (h *Handler) GetZone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	z, ok := h.resolveZone(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(api.Zone{
		ID:           z.ID,
		DisplayName:  z.DisplayName,
		StandardName: z.StandardName,
		DaylightName: z.DaylightName,
		StandardAbbr: z.StandardAbbr,
		DaylightAbbr: z.DaylightAbbr,
		BaseOffset:   zones.FormatOffset(z.BaseOffset),
		SupportsDST:  z.SupportsDST,
		SortKey:      z.SortKey(),
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("zone", z.ID).
			Msg("failed to encode zone")
	}
}

// GetAdjustments writes the transitions of a zone, as a fixed-width report
// or, with format=json, as JSON. Query: year (default: reference year),
// years (default 1).
func (h *Handler) GetAdjustments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	query := r.URL.Query()

	year, err := intParam(query, "year", h.resolver.Year())
	if err != nil || year < 1 {
		writeError(ctx, w, http.StatusBadRequest, errors.New("invalid 'year', expected a positive integer"))
		return
	}
	years, err := intParam(query, "years", defaultYears)
	if err != nil || years < 1 || years > maxYears {
		writeError(ctx, w, http.StatusBadRequest, errors.New("invalid 'years', expected an integer from 1 to 100"))
		return
	}

	z, ok := h.resolveZone(w, r)
	if !ok {
		return
	}

	if query.Get("format") != "json" {
		report, err := h.reports.AdjustmentReport(ctx, z.ID, year, years)
		if err != nil {
			writeError(ctx, w, http.StatusInternalServerError, err)
			return
		}
		writeReport(ctx, w, report)
		return
	}

	response := api.ZoneAdjustments{
		Zone:        z.ID,
		Year:        year,
		Years:       years,
		Transitions: []api.Transition{},
	}
	for _, t := range zones.YearTransitions(z.Location, year, years) {
		response.Transitions = append(response.Transitions, api.Transition{
			At:           t.At,
			OffsetBefore: zones.FormatOffset(t.OffsetBefore),
			OffsetAfter:  zones.FormatOffset(t.OffsetAfter),
			NameBefore:   t.NameBefore,
			NameAfter:    t.NameAfter,
			Delta:        zones.FormatOffset(t.Delta()),
			Daylight:     t.Daylight,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Str("zone", z.ID).
			Msg("failed to encode zone adjustments")
	}
}

func (h *Handler) resolveZone(w http.ResponseWriter, r *http.Request) (*zones.Zone, bool) {
	ctx := r.Context()

	id, err := url.PathUnescape(chi.URLParam(r, "zone"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, errors.New("invalid zone id"))
		return nil, false
	}

	z, err := h.resolver.Resolve(ctx, id)
	switch {
	case errors.Is(err, zones.ErrZoneNotFound):
		writeError(ctx, w, http.StatusNotFound, err)
		return nil, false
	case err != nil:
		writeError(ctx, w, http.StatusInternalServerError, err)
		return nil, false
	}
	return z, true
}

func intParam(query url.Values, name string, fallback int) (int, error) {
	value := query.Get(name)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func writeReport(ctx context.Context, w http.ResponseWriter, report *domain.Report) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	reporter := export.NewReporter(w, export.TableConfig{})
	if err := reporter.Handle(ctx, report); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("report", report.Title).
			Msg("failed to write report")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Message: err.Error()})
}
