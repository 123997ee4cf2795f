package app

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"FogRover/internal/model"
)

const (
	defaultEventLimit = 20
	maxEventLimit     = 500
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[app] warning: failed to write response: %v", err)
	}
}

// handleStatus returns the last rendered status.
func (a *App) handleStatus(w http.ResponseWriter, r *http.Request) {
	if a.opts.Status == nil {
		http.Error(w, "no status yet", http.StatusServiceUnavailable)
		return
	}
	st, ok := a.opts.Status.Latest()
	if !ok {
		http.Error(w, "no status yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, st)
}

// handleEvents lists recent visibility transitions from the journal.
func (a *App) handleEvents(w http.ResponseWriter, r *http.Request) {
	if a.opts.Events == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}
	limit := defaultEventLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxEventLimit)
	}
	events, err := a.opts.Events.Recent(limit)
	if err != nil {
		log.Printf("[app] read journal: %v", err)
		http.Error(w, "failed to read journal", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []model.Status{}
	}
	writeJSON(w, events)
}
