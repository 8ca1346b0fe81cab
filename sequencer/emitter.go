package sequencer

import (
	"sync"
	"time"

	"stepdrum/debug"
	"stepdrum/midi"
)

// LiveGap is the nominal spacing between a trigger's note-on and
// note-off when playing live.
const LiveGap = 100 * time.Millisecond

// Emitter turns "voice active" into note-on/note-off pairs on the live
// sink. Both the clock's tick path and preview-on-toggle go through
// here. The sink may be absent; triggers are then no-ops, and sink
// errors are dropped rather than propagated - playback must not depend
// on output availability.
type Emitter struct {
	mu   sync.Mutex
	sink midi.LiveSink
	gap  time.Duration
}

func NewEmitter(sink midi.LiveSink, gap time.Duration) *Emitter {
	return &Emitter{sink: sink, gap: gap}
}

// SetSink attaches or detaches (nil) the live output.
func (e *Emitter) SetSink(s midi.LiveSink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sink = s
}

// Trigger sends one note-on/note-off pair at full velocity on the
// percussion channel. With a positive gap the note-off trails
// asynchronously; a zero gap sends it in line.
func (e *Emitter) Trigger(note uint8) {
	e.mu.Lock()
	sink, gap := e.sink, e.gap
	e.mu.Unlock()

	if sink == nil {
		return
	}
	if err := sink.SendNoteOn(midi.PercussionChannel, note, midi.FullVelocity); err != nil {
		debug.Log("emit", "note-on %d dropped: %v", note, err)
		return
	}
	off := func() {
		if err := sink.SendNoteOff(midi.PercussionChannel, note, midi.FullVelocity); err != nil {
			debug.Log("emit", "note-off %d dropped: %v", note, err)
		}
	}
	if gap > 0 {
		time.AfterFunc(gap, off)
	} else {
		off()
	}
}
