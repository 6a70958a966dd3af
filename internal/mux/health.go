package mux

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	// Uptime is in seconds
	Uptime int64 `json:"uptime"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	started := time.Now()

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "OK",
			Version: m.version,
			Uptime:  int64(time.Since(started) / time.Second),
		})
	}
}
