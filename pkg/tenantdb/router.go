package tenantdb

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router exposes pool diagnostics for operators.
//
//	r := chi.NewRouter()
//	r.Mount("/debug/tenantdb", tenantdb.Router(manager))
//
// GET /pools lists the open pool keys. GET /pools/stats adds per-pool
// connection statistics. Pool keys reveal database hosts, so mount this
// behind operator-only authentication.
func Router(m *Manager) chi.Router {
	r := chi.NewRouter()

	r.Get("/pools", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, m.Snapshot())
	})
	r.Get("/pools/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, m.Stats())
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
