package app

import (
	"io"
	"net/http"

	"FogRover/internal/model"
)

// driveHandler sets the drive intent and echoes its code.
func (a *App) driveHandler(intent model.DriveIntent) http.HandlerFunc {
	code := intent.Code()
	return func(w http.ResponseWriter, r *http.Request) {
		a.opts.Commands.Submit(intent)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, code)
	}
}
