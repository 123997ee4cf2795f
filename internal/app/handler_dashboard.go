package app

import (
	"embed"
	"net/http"
	"sort"

	"FogRover/internal/command"
)

//go:embed templates/*.html
var templateFS embed.FS

type controlButton struct {
	Code  string
	Label string
}

// controlButtons lists the drive buttons in keypad order.
func controlButtons() []controlButton {
	order := map[string]int{"F": 0, "L": 1, "S": 2, "R": 3, "B": 4}
	var out []controlButton
	for code, intent := range command.Table {
		out = append(out, controlButton{Code: code, Label: intent.String()})
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i].Code] < order[out[j].Code] })
	return out
}

// handleControlPage renders the operator control page. It never changes state.
func (a *App) handleControlPage(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":   "FogRover " + a.opts.RobotID,
		"RobotID": a.opts.RobotID,
		"Buttons": controlButtons(),
		"Live":    a.opts.Hub != nil,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.Tmpl.ExecuteTemplate(w, "control.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
