package app

import (
	"net/http"

	"FogRover/internal/command"
)

// registerRoutes sets up all HTTP handlers for the application.
func (a *App) registerRoutes() {
	r := a.Router

	// Drive routes: one per code, unknown paths fall through to 404.
	for code, intent := range command.Table {
		r.Handle("/"+code, a.driveHandler(intent)).Methods(http.MethodGet, http.MethodPost)
	}
	r.HandleFunc("/", a.handleControlPage).Methods(http.MethodGet)

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", a.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/events", a.handleEvents).Methods(http.MethodGet)

	if a.opts.Hub != nil {
		r.Handle("/ws", a.opts.Hub)
	}
}
