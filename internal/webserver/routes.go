package webserver

import (
	"net/http"

	"github.com/spboyer/gridlens/internal/webapi"
)

// registerRoutes sets up the API and metrics routes on the given mux.
func registerRoutes(mux *http.ServeMux, store webapi.BatchStore, tel *Telemetry) {
	webapi.RegisterRoutes(mux, store, webapi.WithAnalyzeHook(tel.BatchAnalyzed))
	mux.Handle("GET /metrics", tel.Handler())
}
