package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status message on w until Stop is called or the
// command's context ends, whichever comes first.
type spinner struct {
	w       io.Writer
	message string
	parent  context.Context
	ctx     context.Context
	halt    context.CancelFunc
	stopped chan struct{}
	mu      sync.Mutex
}

// startSpinner starts animating message on w.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	s := &spinner{w: w, message: message, parent: ctx, stopped: make(chan struct{})}
	s.ctx, s.halt = context.WithCancel(ctx)
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", utf8.RuneCountInString(s.message)+2))
}

// Stop ends the animation and clears the line. It may be called repeatedly.
func (s *spinner) Stop() {
	s.halt()
	<-s.stopped
}

// Fail stops the spinner and prints message as an error.
func (s *spinner) Fail(message string) {
	s.Stop()
	printError("%s", message)
}

// Interrupted reports whether the command's context ended, as opposed to the
// spinner being stopped.
func (s *spinner) Interrupted() bool {
	return s.parent.Err() != nil
}
