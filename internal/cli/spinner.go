package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// Spinner animates a status line such as "⠙ Rendering oct.yaml... 1.2s"
// while a render runs. It ends on Stop or when the parent context is
// cancelled, and always leaves the line blank.
type Spinner struct {
	w      io.Writer
	msg    string
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
	width   int // printable width of the last frame
	once    sync.Once
}

func newSpinner(ctx context.Context, w io.Writer, msg string) *Spinner {
	inner, cancel := context.WithCancel(ctx)
	return &Spinner{w: w, msg: msg, parent: ctx, ctx: inner, cancel: cancel, exited: make(chan struct{})}
}

// Start draws the first frame and animates until the spinner ends.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.exited)
		start := time.Now()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			s.draw(spinnerFrames[i%len(spinnerFrames)], time.Since(start))
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
			}
		}
	}()
}

func (s *Spinner) draw(frame string, elapsed time.Duration) {
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.msg) + " " +
		StyleDim.Render(elapsed.Truncate(100*time.Millisecond).String())
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, "\r"+line)
	s.width = lipgloss.Width(line)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width)+"\r")
}

// Stop ends the animation and waits for the line to be cleared. Further
// calls do nothing.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = true
		started := s.started
		s.mu.Unlock()

		s.cancel()
		if started {
			<-s.exited
		}
	})
}

// StopWithError stops the spinner and prints msg as a failure line.
func (s *Spinner) StopWithError(msg string) {
	s.Stop()
	printError(s.w, "%s", msg)
}

// Cancelled reports whether the parent context ended the spinner before
// Stop was called.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped && s.parent.Err() != nil
}
