package device

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"FogRover/internal/model"
)

// Phase is one step of a simulated visibility profile.
type Phase struct {
	Level    int
	Duration time.Duration
}

// DefaultProfile cycles clear, light fog, dense fog and sensor-off.
var DefaultProfile = []Phase{
	{Level: 3000, Duration: 8 * time.Second},
	{Level: 1200, Duration: 6 * time.Second},
	{Level: 500, Duration: 6 * time.Second},
	{Level: 100, Duration: 4 * time.Second},
}

// Profile returns the level of the phase active at elapsed, cycling forever.
func Profile(phases []Phase, elapsed time.Duration) int {
	var total time.Duration
	for _, p := range phases {
		total += p.Duration
	}
	if total <= 0 {
		return 0
	}
	at := elapsed % total
	for _, p := range phases {
		if at < p.Duration {
			return p.Level
		}
		at -= p.Duration
	}
	return phases[len(phases)-1].Level
}

// SimAnalog produces a visibility reading from a profile plus uniform noise.
type SimAnalog struct {
	phases []Phase
	noise  int
	start  time.Time
	now    func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSimAnalog creates a simulated analog channel. noise is the half-width of
// the uniform jitter added to each read.
func NewSimAnalog(phases []Phase, noise int) *SimAnalog {
	return &SimAnalog{
		phases: phases,
		noise:  noise,
		start:  time.Now(),
		now:    time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ReadAnalog returns the current profile level with jitter, clamped to the ADC range.
func (s *SimAnalog) ReadAnalog() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := Profile(s.phases, s.now().Sub(s.start))
	if s.noise > 0 {
		v += s.rnd.Intn(2*s.noise+1) - s.noise
	}
	return clampAnalog(v), nil
}

// SimRanger returns a slowly drifting echo, occasionally dropping out like a
// real module does.
type SimRanger struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	cm       float64
	dropRate float64
}

// NewSimRanger starts at cm centimetres; dropRate is the probability of no echo.
func NewSimRanger(cm, dropRate float64) *SimRanger {
	return &SimRanger{cm: cm, dropRate: dropRate, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Pulse returns the echo width for the simulated distance.
func (r *SimRanger) Pulse(time.Duration) (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rnd.Float64() < r.dropRate {
		return 0, nil
	}
	r.cm += (r.rnd.Float64() - 0.5) * 4
	if r.cm < 5 {
		r.cm = 5
	}
	if r.cm > 350 {
		r.cm = 350
	}
	us := r.cm * 2 / 0.034
	return time.Duration(us * float64(time.Microsecond)), nil
}

// SimMotors records the applied output and logs when it changes.
type SimMotors struct {
	mu   sync.Mutex
	last model.MotorOutput
	n    int
}

// NewSimMotors creates a simulated motor driver.
func NewSimMotors() *SimMotors { return &SimMotors{} }

// Apply records out.
func (m *SimMotors) Apply(out model.MotorOutput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if out != m.last || m.n == 0 {
		log.Printf("[motors] IN1=%d IN2=%d IN3=%d IN4=%d", out.LeftForward, out.LeftReverse, out.RightForward, out.RightReverse)
	}
	m.last = out
	m.n++
	return nil
}

// Last returns the most recent output and how many times Apply ran.
func (m *SimMotors) Last() (model.MotorOutput, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.n
}
