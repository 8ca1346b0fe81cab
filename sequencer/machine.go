package sequencer

import (
	"stepdrum/midi"
)

// Machine is the drum machine facade: one kit, one pattern, the
// playback clock, the live emitter and the file encoder behind the API
// the UI talks to.
type Machine struct {
	table   *VoiceTable
	pattern *Pattern
	clock   *Clock
	emitter *Emitter
	encoder *Encoder

	// UpdateChan wakes the TUI when the playhead moves.
	UpdateChan chan struct{}
}

func NewMachine(table *VoiceTable) *Machine {
	m := &Machine{
		table:      table,
		UpdateChan: make(chan struct{}, 1),
	}
	m.pattern = NewPattern(table)
	m.emitter = NewEmitter(nil, LiveGap)
	m.clock = NewClock(table, m.pattern, m.emitter)
	m.encoder = NewEncoder(table)
	m.clock.SetNotify(m.notifyUpdate)
	return m
}

func (m *Machine) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}

// SetSink attaches (or detaches, with nil) the live MIDI output.
func (m *Machine) SetSink(s midi.LiveSink) {
	m.emitter.SetSink(s)
}

func (m *Machine) Table() *VoiceTable { return m.table }

func (m *Machine) Pattern() *Pattern { return m.pattern }

// Toggle flips a cell and previews the voice when it turns on. Preview
// works in any transport state; toggling off previews nothing.
func (m *Machine) Toggle(v Voice, step int, on bool) error {
	if err := m.pattern.Toggle(v, step, on); err != nil {
		return err
	}
	if on {
		m.emitter.Trigger(m.table.Note(v))
	}
	return nil
}

// AddGroup extends the pattern by one group of steps.
func (m *Machine) AddGroup() {
	m.pattern.AddGroup()
	m.notifyUpdate()
}

// Play starts or resumes the clock at the current tempo.
func (m *Machine) Play() { m.clock.Start(m.clock.Tempo()) }

func (m *Machine) Pause() { m.clock.Pause() }

func (m *Machine) Stop() {
	m.clock.Stop()
	m.notifyUpdate()
}

func (m *Machine) SetTempo(bpm int) { m.clock.SetTempo(bpm) }

func (m *Machine) Tempo() int { return m.clock.Tempo() }

func (m *Machine) State() ClockState { return m.clock.State() }

// Cursor returns the step the next tick will play.
func (m *Machine) Cursor() int { return m.clock.Cursor() }

// Export writes the whole pattern as a format-0 MIDI file at the
// current tempo.
func (m *Machine) Export(filename string) error {
	return m.encoder.Export(m.pattern, m.Tempo(), filename)
}
