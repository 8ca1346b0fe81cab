package midi

// PercussionChannel is MIDI channel 10, zero-indexed.
const PercussionChannel uint8 = 9

// FullVelocity is the fixed velocity for all drum hits.
const FullVelocity uint8 = 127

// LiveSink is the live MIDI output contract. An absent sink is a valid,
// non-fatal state: the sequencer runs silently and export still works.
type LiveSink interface {
	SendNoteOn(channel, note, velocity uint8) error
	SendNoteOff(channel, note, velocity uint8) error
}
