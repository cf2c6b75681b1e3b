package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

const barWidth = 28

// progressBar draws " 3/10 [======>---------------------]  30%" on one
// line and redraws it while the build runs. It advances once per candidate
// considered; when that overtakes the target the target grows with it.
type progressBar struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	style   lipgloss.Style

	mu      sync.Mutex
	current int
	max     int
	started bool
}

// newProgressBar creates a bar with the given target that stops drawing
// when ctx is cancelled.
func newProgressBar(ctx context.Context, w io.Writer, target int) *progressBar {
	barCtx, cancel := context.WithCancel(ctx)
	return &progressBar{
		w:       w,
		ctx:     barCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		style:   lipgloss.NewRenderer(w).NewStyle().Foreground(colorCyan),
		max:     max(target, 1),
	}
}

// Start draws the empty bar and begins redrawing it.
func (p *progressBar) Start() {
	p.mu.Lock()
	p.started = true
	p.mu.Unlock()
	p.draw()

	go func() {
		defer close(p.stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-p.ctx.Done():
				return
			case <-p.done:
				return
			case <-ticker.C:
				p.draw()
			}
		}
	}()
}

// Observe advances the bar to the event's considered count.
func (p *progressBar) Observe(e plugins.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = e.Considered
	if p.current > p.max {
		p.max = p.current
	}
}

// Finish stops redrawing, draws the final state and ends the line.
// It is safe to call more than once.
func (p *progressBar) Finish() {
	p.mu.Lock()
	started := p.started
	p.started = false
	p.mu.Unlock()
	if !started {
		return
	}

	p.cancel()
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	<-p.stopped

	p.draw()
	fmt.Fprintln(p.w)
}

func (p *progressBar) draw() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "\r%s", p.line())
}

// line renders the bar. Callers hold p.mu.
func (p *progressBar) line() string {
	filled := barWidth * p.current / p.max
	bar := strings.Repeat("=", filled)
	if filled < barWidth {
		head := "-"
		if p.current > 0 {
			head = ">"
		}
		bar += head + strings.Repeat("-", barWidth-filled-1)
	}

	digits := len(fmt.Sprint(p.max))
	percent := 100 * p.current / p.max
	return fmt.Sprintf(" %*d/%d [%s] %3d%%", digits, p.current, p.max, p.style.Render(bar), percent)
}
