package device

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	serial "go.bug.st/serial"
)

type lineResult struct {
	line string
	err  error
}

// SerialDevice implements Device over go.bug.st/serial. A single reader
// goroutine owns the port's read side so a timed-out ReadLine never loses the
// line that arrives after it.
type SerialDevice struct {
	dev  string
	baud int

	mu     sync.Mutex
	port   io.ReadWriteCloser
	lines  chan lineResult
	closed chan struct{}
}

// NewSerialDevice opens dev at the given baud rate.
func NewSerialDevice(dev string, baud int) (*SerialDevice, error) {
	p, err := serial.Open(dev, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", dev, err)
	}
	s := newLineDevice(p)
	s.dev, s.baud = dev, baud
	return s, nil
}

// newLineDevice wraps any byte stream as a line device.
func newLineDevice(rwc io.ReadWriteCloser) *SerialDevice {
	s := &SerialDevice{
		port:   rwc,
		lines:  make(chan lineResult, 16),
		closed: make(chan struct{}),
	}
	go s.readLoop(bufio.NewReader(rwc))
	return s
}

func (s *SerialDevice) readLoop(r *bufio.Reader) {
	for {
		line, err := r.ReadString('\n')
		res := lineResult{line: strings.TrimRight(line, "\r\n"), err: err}
		select {
		case s.lines <- res:
		case <-s.closed:
			return
		}
		if err != nil {
			return
		}
	}
}

// String names the device for logs.
func (s *SerialDevice) String() string {
	return fmt.Sprintf("%s@%d", s.dev, s.baud)
}

// ReadLine returns the next line, blocking until one arrives or timeout.
func (s *SerialDevice) ReadLine(timeout time.Duration) (string, error) {
	select {
	case <-s.closed:
		return "", ErrNotOpen
	default:
	}
	var after <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		after = t.C
	}
	select {
	case res, ok := <-s.lines:
		if !ok {
			return "", ErrNotOpen
		}
		if res.err != nil && res.line == "" {
			return "", res.err
		}
		return res.line, nil
	case <-s.closed:
		return "", ErrNotOpen
	case <-after:
		return "", ErrTimeout
	}
}

// Drain discards lines received but not yet read. A pending read error is
// kept for the next ReadLine.
func (s *SerialDevice) Drain() int {
	n := 0
	for {
		select {
		case res := <-s.lines:
			if res.err != nil {
				// the reader has exited, so there is room to put it back
				select {
				case s.lines <- res:
				default:
				}
				return n
			}
			n++
		default:
			return n
		}
	}
}

// WriteLine writes line followed by '\n'.
func (s *SerialDevice) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return ErrNotOpen
	}
	_, err := s.port.Write(append([]byte(line), '\n'))
	return err
}

// Write writes raw bytes, for peers that are not line oriented.
func (s *SerialDevice) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return 0, ErrNotOpen
	}
	return s.port.Write(b)
}

// Close closes the port and stops the reader.
func (s *SerialDevice) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	close(s.closed)
	err := s.port.Close()
	s.port = nil
	return err
}
