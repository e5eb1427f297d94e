package embedding

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports embed progress as a single rewritten terminal
// line ("\r"-prefixed), every reportInterval cards. A zero tracker before
// Start ignores updates, so error paths can bail without bookkeeping.
type ProgressTracker struct {
	mu       sync.Mutex
	w        io.Writer
	total    int
	done     int
	interval int
	nextAt   int
	begun    time.Time
}

// NewProgressTracker creates a tracker writing to w, typically os.Stderr.
func NewProgressTracker(w io.Writer, total, reportInterval int) *ProgressTracker {
	return &ProgressTracker{
		w:        w,
		total:    total,
		interval: reportInterval,
	}
}

// Start begins the clock and arms the first report.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.begun = time.Now()
	p.done = 0
	p.nextAt = p.interval
}

// Update records that n cards have been embedded so far.
func (p *ProgressTracker) Update(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.begun.IsZero() {
		return
	}
	if n > p.total {
		n = p.total
	}
	p.done = n

	if p.done >= p.nextAt {
		p.report()
		p.nextAt = p.done + p.interval
	}
}

// Finish prints the final line and terminates it with a newline.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.begun.IsZero() {
		return
	}
	p.done = p.total
	p.report()
	fmt.Fprintln(p.w)
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.begun.IsZero() {
		return 0
	}
	return time.Since(p.begun)
}

// report writes one progress line. Callers hold the lock.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.begun).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.done) / elapsed
	}

	pct := 0.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total) * 100
	}

	fmt.Fprintf(p.w, "\rEmbedded %d/%d cards (%.0f%%) %.1f cards/s",
		p.done, p.total, pct, rate)
}
