// Package app implements the rover's HTTP command interface: drive routes,
// the control page, the status API and the websocket status feed.
package app

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"FogRover/internal/command"
	"FogRover/internal/model"
)

// StatusSource exposes the last rendered status.
type StatusSource interface {
	Latest() (model.Status, bool)
}

// EventSource exposes recorded visibility transitions, newest first.
type EventSource interface {
	Recent(n int) ([]model.Status, error)
}

// Options wires the app to the rest of the rover.
type Options struct {
	RobotID  string
	Commands command.Submitter
	Status   StatusSource
	Events   EventSource // nil disables /api/events
	Hub      *Hub        // nil disables /ws
}

// App is the HTTP front of the rover. Handlers only submit intents or read
// published snapshots; they never touch control state.
type App struct {
	opts   Options
	Tmpl   *template.Template
	Router *mux.Router
	Server *http.Server

	listener net.Listener
}

// NewApp parses the embedded templates and registers routes.
func NewApp(opts Options) (*App, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"year": func() int { return time.Now().Year() },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("[app] failed to load templates: %w", err)
	}
	a := &App{opts: opts, Tmpl: tmpl, Router: mux.NewRouter()}
	a.registerRoutes()
	return a, nil
}

// Handler returns the routed handler with access logging and panic recovery.
func (a *App) Handler() http.Handler {
	return withMiddleware(a.Router)
}

// Listen binds addr and prepares the server. It returns before any request
// is served, so a Stop that follows always sees the server. An empty addr
// disables the HTTP interface.
func (a *App) Listen(addr string) error {
	if addr == "" {
		log.Println("[app] app server not started (empty address)")
		return nil
	}
	addr = strings.TrimPrefix(addr, "http://")
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("[app] listen %s: %w", addr, err)
	}
	a.listener = ln
	a.Server = &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("[app] command interface listening at http://%s", ln.Addr())
	return nil
}

// Addr is the bound listen address, empty before Listen.
func (a *App) Addr() string {
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Serve handles requests on the bound listener until Stop.
func (a *App) Serve() error {
	if a.Server == nil {
		return nil
	}
	if err := a.Server.Serve(a.listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("[app] HTTP server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the web server and the websocket hub.
func (a *App) Stop() {
	if a == nil {
		return
	}
	if a.opts.Hub != nil {
		a.opts.Hub.Close()
	}
	if a.Server != nil {
		log.Println("[app] Shutting down web server...")
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.Server.Shutdown(ctx); err != nil {
			log.Printf("[app] HTTP server shutdown error: %v", err)
		} else {
			log.Println("[app] Web server stopped cleanly")
		}
		// Serve may not have run yet; the listener must not outlive Stop.
		_ = a.listener.Close()
	}
}
