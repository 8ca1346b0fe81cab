package midi

import (
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// scanTimeout bounds port enumeration (CoreMIDI can hang).
const scanTimeout = 3 * time.Second

// Out is a LiveSink over a gomidi output port. Sends are serialized
// with a mutex: the clock goroutine and the preview path share one
// port, and their note-off timers may otherwise interleave.
type Out struct {
	mu   sync.Mutex
	port string
	send func(gomidi.Message) error
}

// OutPorts lists output port names, or nil if the scan times out.
func OutPorts() []string {
	outs, err := scanOutPorts()
	if err != nil {
		return nil
	}
	names := make([]string, len(outs))
	for i, o := range outs {
		names[i] = o.String()
	}
	return names
}

func scanOutPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()
	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(scanTimeout):
		return nil, fmt.Errorf("midi port scan timed out")
	}
}

// OpenOut opens the named output port. An empty name opens the first
// available port, mirroring the default device behavior.
func OpenOut(name string) (*Out, error) {
	outs, err := scanOutPorts()
	if err != nil {
		return nil, err
	}
	if len(outs) == 0 {
		return nil, fmt.Errorf("no midi output ports")
	}
	port := outs[0]
	if name != "" {
		found := false
		for _, o := range outs {
			if o.String() == name {
				port = o
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("midi output %q not found", name)
		}
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open midi output %q: %w", port.String(), err)
	}
	return &Out{port: port.String(), send: send}, nil
}

// OpenFirstOut opens the first available output port.
func OpenFirstOut() (*Out, error) {
	return OpenOut("")
}

// Port returns the opened port's name.
func (o *Out) Port() string {
	return o.port
}

func (o *Out) SendNoteOn(channel, note, velocity uint8) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.send(gomidi.NoteOn(channel, note, velocity))
}

func (o *Out) SendNoteOff(channel, note, velocity uint8) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.send(gomidi.NoteOffVelocity(channel, note, velocity))
}

// Close releases the MIDI driver.
func (o *Out) Close() {
	gomidi.CloseDriver()
}
