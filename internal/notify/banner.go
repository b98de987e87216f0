package notify

import (
	"sync"
	"time"
)

// DefaultDuration is how long a message stays visible.
const DefaultDuration = 2200 * time.Millisecond

// Banner is a single transient message area. A new message replaces the
// current one and restarts the hide timer.
type Banner struct {
	mu         sync.Mutex
	duration   time.Duration
	message    string
	visible    bool
	generation uint64
	timer      *time.Timer
}

// NewBanner returns a banner that hides messages after d (DefaultDuration when d <= 0).
func NewBanner(d time.Duration) *Banner {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Banner{duration: d}
}

// Show displays message and resets the hide timer.
func (b *Banner) Show(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.generation++
	gen := b.generation
	b.message = message
	b.visible = true
	b.timer = time.AfterFunc(b.duration, func() { b.hide(gen) })
}

// Current returns the latest message and whether it is still visible.
func (b *Banner) Current() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message, b.visible
}

// Stop cancels a pending hide.
func (b *Banner) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
}

// hide runs from the timer; a timer that fired for an older message is ignored.
func (b *Banner) hide(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		return
	}
	b.visible = false
}
