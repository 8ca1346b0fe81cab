package sequencer

import (
	"errors"
	"fmt"
	"sync"
)

// GroupSize is the number of steps appended per group (one bar of
// sixteenth notes).
const GroupSize = 16

// ErrStepOutOfRange means a cell address is beyond the current pattern
// length. Callers are expected to stay inside TotalSteps.
var ErrStepOutOfRange = errors.New("step out of range")

// Pattern is a growable boolean grid: one step sequence per voice.
// Every sequence has the same length at all times; AddGroup is the only
// operation that changes it, and it extends all voices at once.
//
// The grid is read by the playback clock's goroutine and mutated from
// the UI, so all access goes through the mutex.
type Pattern struct {
	mu    sync.RWMutex
	steps map[Voice][]bool
	total int
}

// NewPattern creates an empty pattern (zero groups) for the table's
// voices.
func NewPattern(table *VoiceTable) *Pattern {
	p := &Pattern{steps: make(map[Voice][]bool, table.Len())}
	for _, v := range table.Voices() {
		p.steps[v] = nil
	}
	return p
}

// AddGroup appends GroupSize default-off steps to every voice.
func (p *Pattern) AddGroup() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for v := range p.steps {
		p.steps[v] = append(p.steps[v], make([]bool, GroupSize)...)
	}
	p.total += GroupSize
}

// Toggle sets the flag at (voice, step). The pattern is left unchanged
// when the step is out of range.
func (p *Pattern) Toggle(v Voice, step int, on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if step < 0 || step >= p.total {
		return fmt.Errorf("toggle %s step %d of %d: %w", v, step, p.total, ErrStepOutOfRange)
	}
	p.steps[v][step] = on
	return nil
}

// IsActive reports whether the cell at (voice, step) is on.
func (p *Pattern) IsActive(v Voice, step int) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if step < 0 || step >= p.total {
		return false, fmt.Errorf("read %s step %d of %d: %w", v, step, p.total, ErrStepOutOfRange)
	}
	return p.steps[v][step], nil
}

// ActiveVoices returns the voices set at a step, in table order. An
// out-of-range step yields nothing; the tick path treats it as silence.
func (p *Pattern) ActiveVoices(table *VoiceTable, step int) []Voice {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if step < 0 || step >= p.total {
		return nil
	}
	var active []Voice
	for _, v := range table.Voices() {
		if p.steps[v][step] {
			active = append(active, v)
		}
	}
	return active
}

// TotalSteps returns the current length of every voice's sequence.
func (p *Pattern) TotalSteps() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total
}

// Groups returns how many groups have been appended.
func (p *Pattern) Groups() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total / GroupSize
}
