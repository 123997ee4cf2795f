// Package report renders the fused rover state to the status display, the
// diagnostic stream and any configured status sinks.
package report

import (
	"fmt"
	"log"
	"sync/atomic"

	"FogRover/internal/model"
)

// Display is a two-line fixed-width text surface. Every render clears it
// before writing.
type Display interface {
	Clear() error
	WriteAt(row, col int, text string) error
}

// Sink receives every rendered Status. Publish is called on the scheduler
// goroutine and must return quickly.
type Sink interface {
	Publish(st model.Status) error
}

// Reporter renders status snapshots. It is driven from the scheduler tick and
// exposes the last rendered snapshot to other goroutines.
type Reporter struct {
	display Display
	width   int
	stop    model.SpeedCap
	diag    *log.Logger
	sinks   []Sink
	latest  atomic.Pointer[model.Status]
}

// NewReporter creates a Reporter. stop is the duty assigned to the STOP cap,
// width the display width in characters.
func NewReporter(d Display, width int, stop model.SpeedCap, diag *log.Logger, sinks ...Sink) *Reporter {
	return &Reporter{display: d, width: width, stop: stop, diag: diag, sinks: sinks}
}

// AddSink registers another status sink.
func (r *Reporter) AddSink(s Sink) {
	if s != nil {
		r.sinks = append(r.sinks, s)
	}
}

// Headline is the first display line for st.
func Headline(st model.Status, stop model.SpeedCap) string {
	switch {
	case st.Visibility == model.SystemOff:
		return "SYSTEM OFF/LOW"
	case st.SpeedCap == stop && st.Alert:
		return "DANGER: FOG!"
	case st.Alert:
		return "CAUTION: FOG"
	default:
		return "PATH CLEAR"
	}
}

// DetailLine is the second display line: held distance and visibility reading.
func DetailLine(st model.Status) string {
	return fmt.Sprintf("D:%.0fcm V:%d", st.DistanceCM, st.Reading)
}

// DiagnosticLine formats one sampling-tick record:
// visibility | distance(cm) | speedCap | driveIntent.
func DiagnosticLine(st model.Status) string {
	return fmt.Sprintf("%d | %.1f | %d | %s", st.Reading, st.DistanceCM, st.SpeedCap, st.Intent)
}

// Diagnose writes the sampling-tick record.
func (r *Reporter) Diagnose(st model.Status) {
	if r.diag != nil {
		r.diag.Print(DiagnosticLine(st))
	}
}

// Render writes st to the display, mirrors it to the diagnostic stream and
// hands it to every sink. Display failures are ignored; the display is not
// needed to drive safely.
func (r *Reporter) Render(st model.Status) {
	line1 := r.fit(Headline(st, r.stop))
	line2 := r.fit(DetailLine(st))
	if r.display != nil {
		_ = r.display.Clear()
		_ = r.display.WriteAt(0, 0, line1)
		_ = r.display.WriteAt(1, 0, line2)
	}
	if r.diag != nil {
		r.diag.Printf("%s | %s | alert=%t", line1, line2, st.Alert)
	}

	snapshot := st
	r.latest.Store(&snapshot)

	for _, s := range r.sinks {
		if err := s.Publish(st); err != nil {
			log.Printf("[report] sink %T: %v", s, err)
		}
	}
}

// Latest returns the last rendered status; ok is false before the first render.
func (r *Reporter) Latest() (model.Status, bool) {
	p := r.latest.Load()
	if p == nil {
		return model.Status{}, false
	}
	return *p, true
}

func (r *Reporter) fit(s string) string {
	if r.width > 0 && len(s) > r.width {
		return s[:r.width]
	}
	return s
}
