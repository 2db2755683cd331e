package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/jars/internal/budget"
	"github.com/theirongolddev/jars/internal/model"
)

const maxBodyBytes = 1 << 16

func (w *WebAPI) handleHealth(rw http.ResponseWriter, _ *http.Request) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = rw.Write([]byte("ok\n"))
}

// ListJars serves the jar catalogue for a mode.
func (w *WebAPI) ListJars(rw http.ResponseWriter, r *http.Request) {
	mode, err := model.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		badRequest(rw, r, err)
		return
	}

	calc := budget.NewCalculator(mode)
	writeJSON(rw, r, http.StatusOK, NewJarsResponse(mode, calc.Jars()))
}

// GetAllocation computes a split from query parameters:
// ?mode=editable&income=4666&percents=50,15,12,12,10,1
func (w *WebAPI) GetAllocation(rw http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode, err := model.ParseMode(q.Get("mode"))
	if err != nil {
		badRequest(rw, r, err)
		return
	}

	income := model.DefaultIncome(mode)
	if s := q.Get("income"); s != "" {
		if income, err = budget.ParseIncome(s); err != nil {
			badRequest(rw, r, err)
			return
		}
	}

	percents, err := budget.ParsePercents(q.Get("percents"))
	if err != nil {
		badRequest(rw, r, err)
		return
	}

	w.compute(rw, r, mode, income, percents)
}

// PostAllocation computes a split from a JSON AllocationRequest.
func (w *WebAPI) PostAllocation(rw http.ResponseWriter, r *http.Request) {
	var req AllocationRequest
	dec := json.NewDecoder(http.MaxBytesReader(rw, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(rw, r, fmt.Errorf("decoding request: %w", err))
		return
	}

	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		badRequest(rw, r, err)
		return
	}

	income := model.DefaultIncome(mode)
	if req.Income != nil {
		income = budget.ClampIncome(*req.Income)
	}

	w.compute(rw, r, mode, income, budget.ClampPercents(req.Percents))
}

// Stats reports request counters since start.
func (w *WebAPI) Stats(rw http.ResponseWriter, r *http.Request) {
	writeJSON(rw, r, http.StatusOK, StatsResponse{
		StartedAt:    w.startedAt.UTC().Format(time.RFC3339),
		Requests:     w.requests.Load(),
		Computations: w.computations.Load(),
		OverLimit:    w.overLimit.Load(),
	})
}

func (w *WebAPI) compute(rw http.ResponseWriter, r *http.Request, mode model.Mode, income float64, percents []int) {
	logger := zerolog.Ctx(r.Context())

	if percents == nil && mode.Editable() {
		percents = model.DefaultPercentSlice()
	}

	res, err := budget.NewCalculator(mode).Compute(budget.Input{Income: income, Percents: percents})
	if err != nil {
		badRequest(rw, r, err)
		return
	}
	w.computations.Add(1)

	if res.Blocked() {
		w.overLimit.Add(1)
		logger.Debug().
			Int("total", res.Validation.Total).
			Msg("split over the limit")
	}

	writeJSON(rw, r, http.StatusOK, NewAllocationResponse(res, percents))
}

func writeJSON(rw http.ResponseWriter, r *http.Request, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func badRequest(rw http.ResponseWriter, r *http.Request, err error) {
	level := zerolog.InfoLevel
	if errors.Is(err, budget.ErrPercentCount) || errors.Is(err, model.ErrInvalidMode) {
		level = zerolog.DebugLevel
	}
	zerolog.Ctx(r.Context()).WithLevel(level).Err(err).Msg("bad request")
	http.Error(rw, err.Error(), http.StatusBadRequest)
}
