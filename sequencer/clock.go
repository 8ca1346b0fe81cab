package sequencer

import (
	"sync"
	"time"

	"stepdrum/debug"
)

// Tempo bounds in BPM.
const (
	MinTempo     = 30
	MaxTempo     = 300
	DefaultTempo = 120
)

// ClockState is the transport state of the playback clock.
type ClockState int

const (
	StateStopped ClockState = iota
	StatePlaying
	StatePaused
)

func (s ClockState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// StepInterval returns the wall-clock duration of one step (a sixteenth
// note) at the given tempo.
func StepInterval(bpm int) time.Duration {
	return time.Duration(60_000/(bpm*4)) * time.Millisecond
}

func clampTempo(bpm int) int {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}

// Clock drives the playback cursor over a pattern, emitting a trigger
// for every active voice at the cursor on each tick. One goroutine runs
// per Playing period; Pause and Stop tear it down through stopChan, and
// tick checks the state under the mutex so no tick fires after Stop
// returns.
type Clock struct {
	mu      sync.Mutex
	table   *VoiceTable
	pattern *Pattern
	emitter *Emitter

	state    ClockState
	cursor   int
	bpm      int
	interval time.Duration
	stopChan chan struct{}

	notify func() // playhead moved; may be nil
}

func NewClock(table *VoiceTable, pattern *Pattern, emitter *Emitter) *Clock {
	return &Clock{
		table:   table,
		pattern: pattern,
		emitter: emitter,
		bpm:     DefaultTempo,
	}
}

// SetNotify installs a non-blocking callback invoked after each tick.
func (c *Clock) SetNotify(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

// Start begins (or resumes) ticking at the interval derived from bpm.
// Starting an empty pattern is a no-op: there is nothing to play and no
// cursor to wrap. Starting while already playing only updates the
// tempo, which takes effect on the next scheduled tick.
func (c *Clock) Start(bpm int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bpm = clampTempo(bpm)
	c.interval = StepInterval(c.bpm)
	if c.state == StatePlaying {
		return
	}
	if c.pattern.TotalSteps() == 0 {
		return
	}
	c.state = StatePlaying
	c.stopChan = make(chan struct{})
	debug.Log("clock", "start bpm=%d interval=%s", c.bpm, c.interval)
	go c.run(c.stopChan)
}

// Pause stops ticking and keeps the cursor where it is.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlaying {
		return
	}
	if c.stopChan != nil {
		close(c.stopChan)
		c.stopChan = nil
	}
	c.state = StatePaused
	debug.Log("clock", "pause at step=%d", c.cursor)
}

// Stop stops ticking and resets the cursor to 0.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopChan != nil {
		close(c.stopChan)
		c.stopChan = nil
	}
	c.state = StateStopped
	c.cursor = 0
}

// SetTempo clamps bpm into [MinTempo, MaxTempo]. While playing, the new
// interval applies from the next scheduled tick; an in-flight wait is
// never rescaled.
func (c *Clock) SetTempo(bpm int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bpm = clampTempo(bpm)
	c.interval = StepInterval(c.bpm)
}

func (c *Clock) Tempo() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bpm
}

func (c *Clock) State() ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cursor returns the step the next tick will play.
func (c *Clock) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// run waits one interval, ticks, and repeats. The interval is re-read
// each pass so tempo changes pick up between ticks.
func (c *Clock) run(stop chan struct{}) {
	for {
		c.mu.Lock()
		d := c.interval
		c.mu.Unlock()

		select {
		case <-stop:
			return
		case <-time.After(d):
			c.tick()
		}
	}
}

// tick plays the cursor column and advances, wrapping at the pattern
// length. It never reports failure to its driver: a pause/stop race, an
// empty pattern, or a missing sink all just produce silence.
func (c *Clock) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlaying {
		return
	}
	total := c.pattern.TotalSteps()
	if total == 0 {
		return
	}
	if c.cursor >= total {
		c.cursor = 0
	}
	for _, v := range c.pattern.ActiveVoices(c.table, c.cursor) {
		c.emitter.Trigger(c.table.Note(v))
	}
	c.cursor = (c.cursor + 1) % total
	if c.notify != nil {
		c.notify()
	}
}
