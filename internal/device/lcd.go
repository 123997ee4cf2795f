package device

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// HD44780 command-mode prefix understood by serial LCD backpacks.
const (
	lcdCommand   = 0xFE
	lcdClear     = 0x01
	lcdSetDDRAM  = 0x80
	lcdRowOffset = 0x40
)

// SerialLCD drives a two-row character LCD behind a serial backpack.
type SerialLCD struct {
	w     io.Writer
	width int
	mu    sync.Mutex
}

// NewSerialLCD wraps w, normally a serial port opened at the backpack baud.
func NewSerialLCD(w io.Writer, width int) *SerialLCD {
	return &SerialLCD{w: w, width: width}
}

// Clear blanks the display and homes the cursor.
func (l *SerialLCD) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.w.Write([]byte{lcdCommand, lcdClear})
	return err
}

// WriteAt moves the cursor to row/col and writes text truncated to the row.
func (l *SerialLCD) WriteAt(row, col int, text string) error {
	if row < 0 || row > 1 || col < 0 || col >= l.width {
		return fmt.Errorf("lcd position %d,%d out of range", row, col)
	}
	addr := byte(col)
	if row == 1 {
		addr += lcdRowOffset
	}
	if n := l.width - col; len(text) > n {
		text = text[:n]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	buf := append([]byte{lcdCommand, lcdSetDDRAM | addr}, text...)
	_, err := l.w.Write(buf)
	return err
}

// ConsoleDisplay renders the two display rows as a framed block on a writer,
// standing in for the LCD in simulation.
type ConsoleDisplay struct {
	w     io.Writer
	width int
	rows  [2][]byte
	mu    sync.Mutex
}

// NewConsoleDisplay creates a console display of the given width.
func NewConsoleDisplay(w io.Writer, width int) *ConsoleDisplay {
	d := &ConsoleDisplay{w: w, width: width}
	d.blank()
	return d
}

func (d *ConsoleDisplay) blank() {
	for i := range d.rows {
		d.rows[i] = []byte(strings.Repeat(" ", d.width))
	}
}

// Clear blanks both rows.
func (d *ConsoleDisplay) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blank()
	return nil
}

// WriteAt writes text into a row and prints the frame.
func (d *ConsoleDisplay) WriteAt(row, col int, text string) error {
	if row < 0 || row > 1 || col < 0 || col >= d.width {
		return fmt.Errorf("display position %d,%d out of range", row, col)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	copy(d.rows[row][col:], text)
	if row == 1 {
		_, err := fmt.Fprintf(d.w, "+%s+\n|%s|\n|%s|\n+%s+\n",
			strings.Repeat("-", d.width), d.rows[0], d.rows[1], strings.Repeat("-", d.width))
		return err
	}
	return nil
}

// Rows returns the current contents of both rows.
func (d *ConsoleDisplay) Rows() [2]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return [2]string{string(d.rows[0]), string(d.rows[1])}
}
