package handler

import (
	"net/http"

	"github.com/burnlink/relay-server-go/internal/metrics"
	"github.com/burnlink/relay-server-go/internal/store"
)

type StatsHandler struct {
	store     *store.Store
	collector *metrics.Collector
}

func NewStatsHandler(store *store.Store, collector *metrics.Collector) *StatsHandler {
	return &StatsHandler{store: store, collector: collector}
}

// GET /v1/stats
//
// The active-session count trusts the lazy expiry model: expired sessions
// nothing has touched still report as active.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.collector.Snapshot(h.store.ActiveSessionCount()))
}
