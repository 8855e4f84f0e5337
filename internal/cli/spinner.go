package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// progressSpinner animates a one-line status while a blocking call runs.
// It redraws in place with carriage returns and stops on Stop or when its
// parent context is cancelled, whichever comes first.
type progressSpinner struct {
	w       io.Writer
	message string
	frames  spinner.Spinner

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	stopped chan struct{}
}

func newSpinner(ctx context.Context, w io.Writer, message string) *progressSpinner {
	if w == nil {
		w = io.Discard
	}
	sctx, cancel := context.WithCancel(ctx)
	return &progressSpinner{
		w:       w,
		message: message,
		frames:  spinner.MiniDot,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Calling it again, or after Stop, has no effect.
func (s *progressSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.ctx.Err() != nil {
		return
	}
	s.started = true
	go s.run()
}

func (s *progressSpinner) run() {
	defer close(s.stopped)

	interval := s.frames.FPS
	if interval <= 0 {
		interval = 80 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s.draw(s.frames.Frames[i%len(s.frames.Frames)])
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
		}
	}
}

func (s *progressSpinner) draw(frame string) {
	fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *progressSpinner) clear() {
	width := lipgloss.Width(s.message) + 4
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
}

// Stop ends the animation and waits until the status line is erased. It is
// safe to call more than once.
func (s *progressSpinner) Stop() {
	s.cancel()
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.stopped
	}
}

// Cancelled reports whether the parent context has ended.
func (s *progressSpinner) Cancelled() bool {
	return s.parent.Err() != nil
}
