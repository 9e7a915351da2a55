package dashboard

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rev-tools/revenue-atlas/pkg/calendar"
	"github.com/rev-tools/revenue-atlas/pkg/models/api"
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
	"github.com/rev-tools/revenue-atlas/pkg/services/dashboard"
	"github.com/rs/zerolog"
)

type Handler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	query, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := h.service.Snapshot(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute dashboard snapshot")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, logger, api.FromSnapshot(snap))
}

func (h *Handler) GetGoalMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	query, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := h.service.Snapshot(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute goal metrics")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, logger, api.FromSnapshot(snap).GoalMetrics)
}

func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	query, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	projection, err := h.service.Forecast(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute forecast")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, logger, api.FromProjection(projection))
}

func (h *Handler) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var payload api.RevenueRecord
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	date, err := time.ParseInLocation(calendar.DayKeyLayout, payload.Date, time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	record, err := h.service.UpsertRecord(ctx, domain.RevenueRecord{
		ID:      payload.ID,
		Date:    date,
		Line:    payload.Line,
		Group:   payload.Group,
		Segment: payload.Segment,
		Amount:  payload.Amount,
	})
	if err != nil {
		logger.Error().Err(err).Str("line", payload.Line).Msg("failed to upsert record")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, logger, api.RevenueRecord{
		ID:      record.ID,
		Date:    calendar.DayKey(record.Date),
		Line:    record.Line,
		Group:   record.Group,
		Segment: record.Segment,
		Amount:  record.Amount,
	})
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteRecord(ctx, id); err != nil {
		logger.Error().Err(err).Str("id", id).Msg("failed to delete record")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReplaceGoals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var payload []api.LineGoal
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	goals := make([]domain.LineGoal, 0, len(payload))
	for _, g := range payload {
		goals = append(goals, domain.LineGoal{
			Line:           g.Line,
			Group:          g.Group,
			MonthlyTargets: g.MonthlyTargets,
		})
	}

	if err := h.service.ReplaceGoals(ctx, goals); err != nil {
		logger.Error().Err(err).Msg("failed to replace goals")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseQuery(r *http.Request) (dashboard.Query, error) {
	q := dashboard.Query{
		Filters: domain.Filters{
			Lines:    splitParam(r.URL.Query().Get("lines")),
			Groups:   splitParam(r.URL.Query().Get("groups")),
			Segments: splitParam(r.URL.Query().Get("segments")),
		},
		Preset: domain.PresetMTD,
	}

	if preset := r.URL.Query().Get("preset"); preset != "" {
		q.Preset = domain.DatePreset(preset)
	}

	var err error
	if q.Filters.DateStart, err = parseDateParam(r, "start"); err != nil {
		return q, err
	}
	if q.Filters.DateEnd, err = parseDateParam(r, "end"); err != nil {
		return q, err
	}

	q.Comparison.Enabled = r.URL.Query().Get("compare") == "true"
	if q.Comparison.CustomStart, err = parseDateParam(r, "compare_start"); err != nil {
		return q, err
	}
	if q.Comparison.CustomEnd, err = parseDateParam(r, "compare_end"); err != nil {
		return q, err
	}

	// Test/replay hook: pin "today" instead of using the wall clock.
	if today, err := parseDateParam(r, "today"); err != nil {
		return q, err
	} else if today != nil {
		q.Today = *today
	}

	return q, nil
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(calendar.DayKeyLayout, value, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
}
