package utils

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner initializes the process indicator.
type Spinner struct {
	mu       sync.Mutex
	out      io.Writer
	message  string
	colored  bool
	stopChan chan struct{}
	done     chan struct{}
}

// NewSpinner instantiates a new Spinner writing to out.
// Colors are used only when colored is true.
func NewSpinner(out io.Writer, colored bool) *Spinner {
	return &Spinner{out: out, colored: colored}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.Update(message)
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					return
				default:
					s.mu.Lock()
					if s.colored {
						fmt.Fprintf(s.out, "\r%s%s %c%s", s.message, SuccessColor, r, DefaultColor)
					} else {
						fmt.Fprintf(s.out, "\r%s %c", s.message, r)
					}
					s.mu.Unlock()
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Update replaces the message shown next to the indicator.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop stops the process indicator and waits until it stopped writing.
func (s *Spinner) Stop() {
	if s.stopChan == nil {
		return
	}
	close(s.stopChan)
	<-s.done
	s.stopChan = nil
	fmt.Fprintln(s.out)
}
