package sequencer

import (
	"errors"
	"fmt"
	"io"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"stepdrum/midi"
)

// DefaultResolution is the exported file's resolution in ticks per
// quarter note.
const DefaultResolution = 480

// ErrEmptyFilename means no export destination was given.
var ErrEmptyFilename = errors.New("empty export filename")

// Encoder serializes the full pattern into a format-0 MIDI file with a
// single track: one tempo meta-event, then a note-on/note-off pair per
// active cell. Each step occupies resolution/4 ticks (a sixteenth
// note); all of a step's triggers land on the same instant.
type Encoder struct {
	table      *VoiceTable
	resolution smf.MetricTicks
}

func NewEncoder(table *VoiceTable) *Encoder {
	return &Encoder{table: table, resolution: smf.MetricTicks(DefaultResolution)}
}

// SetResolution overrides the default ticks-per-beat resolution.
func (e *Encoder) SetResolution(ticksPerBeat uint16) {
	e.resolution = smf.MetricTicks(ticksPerBeat)
}

// Encode builds the in-memory file. Steps are walked in increasing
// order, voices in table order within a step. The first event written
// for a step carries the step's full tick width as its delta; every
// later event in the same step carries delta 0. A step with no active
// voices writes a zero-velocity note-off on note 0 carrying the full
// width - the format has no rest event, and without the placeholder the
// next active step would land early.
func (e *Encoder) Encode(p *Pattern, bpm int) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = e.resolution
	ticksPerStep := e.resolution.Ticks16th()

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(float64(bpm)))

	total := p.TotalSteps()
	for step := 0; step < total; step++ {
		wrote := false
		for _, v := range e.table.Voices() {
			on, err := p.IsActive(v, step)
			if err != nil {
				return nil, err
			}
			if !on {
				continue
			}
			delta := uint32(0)
			if !wrote {
				delta = ticksPerStep
			}
			note := e.table.Note(v)
			tr.Add(delta, gomidi.NoteOn(midi.PercussionChannel, note, midi.FullVelocity))
			tr.Add(0, gomidi.NoteOffVelocity(midi.PercussionChannel, note, midi.FullVelocity))
			wrote = true
		}
		if !wrote {
			tr.Add(ticksPerStep, gomidi.NoteOff(midi.PercussionChannel, 0))
		}
	}

	tr.Close(0)
	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("add track: %w", err)
	}
	return s, nil
}

// WriteTo encodes the pattern and streams the file bytes to w.
func (e *Encoder) WriteTo(w io.Writer, p *Pattern, bpm int) error {
	s, err := e.Encode(p, bpm)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write midi stream: %w", err)
	}
	return nil
}

// Export encodes the pattern and writes it to filename. Write failures
// are surfaced with their cause; the caller may retry.
func (e *Encoder) Export(p *Pattern, bpm int, filename string) error {
	if filename == "" {
		return ErrEmptyFilename
	}
	s, err := e.Encode(p, bpm)
	if err != nil {
		return err
	}
	if err := s.WriteFile(filename); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
