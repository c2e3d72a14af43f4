package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spboyer/gridlens/internal/analysis"
	"github.com/spboyer/gridlens/internal/export"
	"github.com/spboyer/gridlens/internal/models"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store BatchStore
	// onAnalyze is called each time a request analyzes a batch.
	onAnalyze func()
}

// Option configures Handlers.
type Option func(*Handlers)

// WithAnalyzeHook registers fn to be called whenever a batch is analyzed.
func WithAnalyzeHook(fn func()) Option {
	return func(h *Handlers) { h.onAnalyze = fn }
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store BatchStore, opts ...Option) *Handlers {
	h := &Handlers{store: store}
	for _, o := range opts {
		o(h)
	}
	return h
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleExperiments returns a list of all experiments, with optional sort/order query params.
func (h *Handlers) HandleExperiments(w http.ResponseWriter, r *http.Request) {
	sortField := r.URL.Query().Get("sort")
	order := r.URL.Query().Get("order")

	list, err := h.store.ListExperiments(sortField, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// batch loads and analyzes the experiment named in the request path. On
// failure it writes the error response and returns ok=false.
func (h *Handlers) batch(w http.ResponseWriter, r *http.Request) (*models.BatchFile, *analysis.Batch, bool) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "experiment id is required")
		return nil, nil, false
	}

	bf, err := h.store.GetBatch(id)
	if err != nil {
		if errors.Is(err, ErrBatchNotFound) {
			writeError(w, http.StatusNotFound, "experiment not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, nil, false
	}

	b, err := analysis.NewBatch(bf.Responses, bf.Metrics)
	if err != nil {
		slog.Warn("invalid batch", "experiment", id, "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, nil, false
	}
	if h.onAnalyze != nil {
		h.onAnalyze()
	}
	return bf, b, true
}

// HandleExperiment returns the batch-level analysis of one experiment.
func (h *Handlers) HandleExperiment(w http.ResponseWriter, r *http.Request) {
	bf, b, ok := h.batch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ExperimentDetail{
		Experiment: bf.Experiment,
		Overview:   b.Overview(),
	})
}

// HandleBest returns the best pick of one experiment.
func (h *Handlers) HandleBest(w http.ResponseWriter, r *http.Request) {
	bf, b, ok := h.batch(w, r)
	if !ok {
		return
	}

	resp := BestPickResponse{ExperimentID: bf.Experiment.ID}
	if id, found := b.BestPickID(); found {
		m, _ := b.Metric(id)
		rsp, _ := b.Response(id)
		resp.Found = true
		resp.ResponseID = id
		resp.OverallQuality = m.OverallQuality
		resp.Response = &rsp
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleTendencies returns the parameter tendencies of one experiment.
func (h *Handlers) HandleTendencies(w http.ResponseWriter, r *http.Request) {
	bf, b, ok := h.batch(w, r)
	if !ok {
		return
	}
	o := b.Overview()
	writeJSON(w, http.StatusOK, TendenciesResponse{
		ExperimentID: bf.Experiment.ID,
		Tendencies:   o.Tendencies,
		Notes:        o.ParameterNotes,
	})
}

// HandleResponse returns the full inspection of one response.
func (h *Handlers) HandleResponse(w http.ResponseWriter, r *http.Request) {
	_, b, ok := h.batch(w, r)
	if !ok {
		return
	}

	in, err := b.Inspect(r.PathValue("rid"))
	switch {
	case errors.Is(err, analysis.ErrUnknownResponse):
		writeError(w, http.StatusNotFound, "response not found")
	case errors.Is(err, analysis.ErrNoMetrics):
		writeError(w, http.StatusUnprocessableEntity, analysis.ErrNoMetrics.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, in)
	}
}

// HandleExport returns the per-response export of one experiment as CSV
// (default) or JSON, selected by the format query param.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
		return
	}

	bf, b, ok := h.batch(w, r)
	if !ok {
		return
	}

	rows := export.Rows(bf.Experiment, b)
	var buf bytes.Buffer
	var err error
	contentType := "text/csv; charset=utf-8"
	if format == "json" {
		contentType = "application/json"
		err = export.WriteJSON(&buf, export.NewDocument(bf.Experiment, rows))
	} else {
		err = export.WriteCSV(&buf, rows)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "experiment-"+bf.Experiment.ID+"."+format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store BatchStore, opts ...Option) {
	h := NewHandlers(store, opts...)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/experiments", h.HandleExperiments)
	mux.HandleFunc("GET /api/experiments/{id}", h.HandleExperiment)
	mux.HandleFunc("GET /api/experiments/{id}/best", h.HandleBest)
	mux.HandleFunc("GET /api/experiments/{id}/tendencies", h.HandleTendencies)
	mux.HandleFunc("GET /api/experiments/{id}/responses/{rid}", h.HandleResponse)
	mux.HandleFunc("GET /api/experiments/{id}/export", h.HandleExport)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
