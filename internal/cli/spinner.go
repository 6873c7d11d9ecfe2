package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames cycle on stderr while a long-running step is in flight.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// spinner animates a progress indicator on stderr until stopped or until
// its context is cancelled. Stop is safe to call more than once.
type spinner struct {
	message string
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	halted  chan struct{}
	once    sync.Once
	outMu   sync.Mutex
}

// newSpinnerWithContext creates a spinner tied to ctx. Cancelling ctx halts
// the animation as if Stop had been called.
func newSpinnerWithContext(ctx context.Context, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		message: message,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		halted:  make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *spinner) Start() {
	go func() {
		defer close(s.halted)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.eraseLine()
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				s.outMu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", styleSpin.Render(frame), StyleDim.Render(s.message))
				s.outMu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and clears the spinner line.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.halted
		s.eraseLine()
	})
}

// StopWithError halts the animation and prints a failure line.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the surrounding context was cancelled, as
// opposed to an ordinary Stop. Callers use it to suppress error output on
// interrupt.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *spinner) eraseLine() {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
