package sequencer

// Voice identifies one percussion slot in a kit.
type Voice string

const (
	Kick      Voice = "kick"
	Snare     Voice = "snare"
	ClosedHat Voice = "closed_hat"
	OpenHat   Voice = "open_hat"
	LowTom    Voice = "low_tom"
	MidTom    Voice = "mid_tom"
	HighTom   Voice = "high_tom"
	Crash     Voice = "crash"
	Ride      Voice = "ride"
)

// VoiceTable maps voices to MIDI notes. The voice order is fixed at
// construction and decides both UI row order and the order triggers are
// emitted within a step. Immutable for the process lifetime.
type VoiceTable struct {
	Name   string
	voices []Voice
	notes  map[Voice]uint8
}

// NewVoiceTable builds a table from parallel voice/note slices.
func NewVoiceTable(name string, voices []Voice, notes []uint8) *VoiceTable {
	if len(voices) != len(notes) {
		panic("voice table: voices and notes length mismatch")
	}
	t := &VoiceTable{
		Name:   name,
		voices: make([]Voice, len(voices)),
		notes:  make(map[Voice]uint8, len(voices)),
	}
	copy(t.voices, voices)
	for i, v := range voices {
		t.notes[v] = notes[i]
	}
	return t
}

// Note returns the MIDI note for a voice. The voice set is closed, so
// lookup is total.
func (t *VoiceTable) Note(v Voice) uint8 {
	return t.notes[v]
}

// Voices returns the voices in their fixed order.
func (t *VoiceTable) Voices() []Voice {
	return t.voices
}

func (t *VoiceTable) Len() int {
	return len(t.voices)
}

// standardVoices is the nine-voice reference layout shared by all kits.
var standardVoices = []Voice{
	Kick, Snare, ClosedHat, OpenHat,
	LowTom, MidTom, HighTom, Crash, Ride,
}

// Kits contains the built-in drum kit mappings.
var Kits = map[string]*VoiceTable{
	"gm": NewVoiceTable("General MIDI", standardVoices, []uint8{
		36, // Kick
		38, // Snare
		42, // Closed HH
		46, // Open HH
		45, // Low Tom
		47, // Mid Tom
		50, // High Tom
		49, // Crash
		51, // Ride
	}),
	"rd8": NewVoiceTable("Behringer RD-8", standardVoices, []uint8{
		36, // Kick (BD)
		40, // Snare (SD) - note: RD-8 uses 40, not 38!
		42, // Closed HH (CH)
		46, // Open HH (OH)
		45, // Low Tom (LT)
		48, // Mid Tom (MT)
		50, // High Tom (HT)
		49, // Crash (CY)
		51, // Ride (RC)
	}),
	"tr8s": NewVoiceTable("Roland TR-8S", standardVoices, []uint8{
		36, // Kick
		38, // Snare
		42, // Closed HH
		46, // Open HH
		41, // Low Tom
		43, // Mid Tom
		45, // High Tom
		49, // Crash
		51, // Ride
	}),
}

// DefaultKit is the default kit name.
const DefaultKit = "gm"

// GetKit returns a kit by name, defaulting to GM if not found.
func GetKit(name string) *VoiceTable {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}

// KitNames returns the list of available kit names.
func KitNames() []string {
	return []string{"gm", "rd8", "tr8s"}
}
