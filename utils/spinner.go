package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Terminal color codes.
const (
	DefaultColor = "\x1b[39m"
	SuccessColor = "\x1b[92m"
	ErrorColor   = "\x1b[31m"
)

// Spinner shows a progress indicator with a message that can be updated
// while the indicator is running. On anything but a terminal it stays silent.
type Spinner struct {
	out     io.Writer
	enabled bool

	mu      sync.Mutex
	message string
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner writing to stderr.
func NewSpinner() *Spinner {
	return &Spinner{
		out:     os.Stderr,
		enabled: IsTerminal(os.Stderr),
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Colorize wraps s in the given color when stderr is a terminal.
func Colorize(color, s string) string {
	if !IsTerminal(os.Stderr) {
		return s
	}
	return color + s + DefaultColor
}

// Start starts the indicator.
func (s *Spinner) Start(message string) {
	s.Update(message)
	if !s.enabled || s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stop:
					fmt.Fprint(s.out, "\r\x1b[K")
					return
				default:
					s.mu.Lock()
					msg := s.message
					s.mu.Unlock()
					fmt.Fprintf(s.out, "\r%s %s%c%s", msg, SuccessColor, r, DefaultColor)
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Update replaces the displayed message.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop stops the indicator and clears its line.
func (s *Spinner) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}
