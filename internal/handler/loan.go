package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cloud-ru/estate-loan-calculator/internal/buildinfo"
	"github.com/cloud-ru/estate-loan-calculator/internal/calculations"
	"github.com/cloud-ru/estate-loan-calculator/internal/export"
	"github.com/cloud-ru/estate-loan-calculator/internal/metrics"
	"github.com/cloud-ru/estate-loan-calculator/internal/store"
	"github.com/cloud-ru/estate-loan-calculator/internal/tools"
)

const readyTimeout = 2 * time.Second

type scheduleResponse struct {
	ID     string                           `json:"id,omitempty"`
	Input  calculations.LoanInput           `json:"input"`
	Result *calculations.AmortizationResult `json:"result"`
}

// pinger реализуют хранилища с внешней зависимостью
type pinger interface {
	Ping(ctx context.Context) error
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
	}
}

func readyzHandler(st store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p, ok := st.(pinger); ok {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				logger.Warn("readiness check failed", zap.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// scheduleHandler строит график и сохраняет его. Если хранилище недоступно,
// график все равно возвращается, но без идентификатора.
func scheduleHandler(reg tools.Registry, st store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := decodeParams(w, r)
		if err != nil {
			handleError(w, err, logger)
			return
		}

		out, err := reg.Call(r.Context(), tools.ToolLoanSchedule, params)
		if err != nil {
			handleError(w, err, logger)
			return
		}
		output := out.(*tools.ScheduleOutput)

		resp := scheduleResponse{Input: output.Input, Result: output.Result}
		rec := store.NewRecord(output.Input, output.Result)
		if err := st.Save(r.Context(), rec); err != nil {
			logger.Warn("failed to store calculation", zap.String("id", rec.ID), zap.Error(err))
		} else {
			resp.ID = rec.ID
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func compareHandler(reg tools.Registry, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := decodeParams(w, r)
		if err != nil {
			handleError(w, err, logger)
			return
		}
		// сравниваются обе схемы, метод из запроса не нужен
		delete(params, "method")

		out, err := reg.Call(r.Context(), tools.ToolCompareLoanSchedules, params)
		if err != nil {
			handleError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func loadRecord(r *http.Request, st store.Store) (*store.Record, error) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		return nil, err
	}
	return st.Get(r.Context(), id)
}

func getScheduleHandler(st store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := loadRecord(r, st)
		if err != nil {
			handleError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func scheduleCSVHandler(st store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := loadRecord(r, st)
		if err != nil {
			handleError(w, err, logger)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, rec.Result); err != nil {
			handleError(w, fmt.Errorf("export %s: %w", rec.ID, err), logger)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule-%s.csv"`, rec.ID))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func listToolsHandler(reg tools.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"tools": reg.Names()})
	}
}

func callToolHandler(reg tools.Registry, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := decodeParams(w, r)
		if err != nil {
			handleError(w, err, logger)
			return
		}

		out, err := reg.Call(r.Context(), chi.URLParam(r, "name"), params)
		if err != nil {
			handleError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type statsResponse struct {
	Version string                       `json:"version"`
	Tools   map[string]metrics.ToolStats `json:"tools"`
}

func statsHandler(reg tools.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, statsResponse{
			Version: buildinfo.Version,
			Tools:   metrics.Snapshot(reg.Names()...),
		})
	}
}
