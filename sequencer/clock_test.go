package sequencer

import (
	"testing"
	"time"
)

func newTestClock(voices []Voice, notes []uint8) (*Clock, *Pattern, *captureSink) {
	table := NewVoiceTable("test", voices, notes)
	p := NewPattern(table)
	sink := &captureSink{}
	c := NewClock(table, p, NewEmitter(sink, 0))
	return c, p, sink
}

func TestCursorWrapsAfterFullCycle(t *testing.T) {
	c, p, _ := newTestClock([]Voice{Kick}, []uint8{36})
	p.AddGroup()

	// Drive ticks directly instead of waiting on the timer goroutine.
	c.state = StatePlaying

	for i := 0; i < GroupSize; i++ {
		if got := c.Cursor(); got != i {
			t.Fatalf("before tick %d: cursor = %d, want %d", i, got, i)
		}
		c.tick()
	}
	if got := c.Cursor(); got != 0 {
		t.Fatalf("after %d ticks: cursor = %d, want 0", GroupSize, got)
	}
}

func TestTickEmitsVoicesInTableOrder(t *testing.T) {
	c, p, sink := newTestClock([]Voice{Kick, Snare}, []uint8{36, 38})
	p.AddGroup()
	if err := p.Toggle(Snare, 0, true); err != nil {
		t.Fatal(err)
	}
	if err := p.Toggle(Kick, 0, true); err != nil {
		t.Fatal(err)
	}

	c.state = StatePlaying
	c.tick()

	got := sink.snapshot()
	want := []noteEvent{
		{"on", 9, 36, 127},
		{"off", 9, 36, 127},
		{"on", 9, 38, 127},
		{"off", 9, 38, 127},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStartEmptyPatternIsNoOp(t *testing.T) {
	c, _, sink := newTestClock([]Voice{Kick}, []uint8{36})

	c.Start(120)

	if got := c.State(); got != StateStopped {
		t.Fatalf("state after Start on empty pattern = %v, want stopped", got)
	}
	if got := c.Cursor(); got != 0 {
		t.Fatalf("cursor = %d, want 0", got)
	}
	if got := sink.snapshot(); len(got) != 0 {
		t.Fatalf("events emitted on empty pattern: %v", got)
	}

	// A stray tick against zero steps must not divide by zero.
	c.state = StatePlaying
	c.tick()
	c.state = StateStopped
}

func TestPauseRetainsCursorStopResets(t *testing.T) {
	c, p, _ := newTestClock([]Voice{Kick}, []uint8{36})
	p.AddGroup()

	c.state = StatePlaying
	for i := 0; i < 3; i++ {
		c.tick()
	}

	c.Pause()
	if got := c.State(); got != StatePaused {
		t.Fatalf("state after Pause = %v, want paused", got)
	}
	if got := c.Cursor(); got != 3 {
		t.Fatalf("cursor after Pause = %d, want 3", got)
	}

	c.Stop()
	if got := c.State(); got != StateStopped {
		t.Fatalf("state after Stop = %v, want stopped", got)
	}
	if got := c.Cursor(); got != 0 {
		t.Fatalf("cursor after Stop = %d, want 0", got)
	}
}

func TestTempoClamped(t *testing.T) {
	c, p, _ := newTestClock([]Voice{Kick}, []uint8{36})
	p.AddGroup()

	c.SetTempo(1000)
	if got := c.Tempo(); got != MaxTempo {
		t.Errorf("Tempo after SetTempo(1000) = %d, want %d", got, MaxTempo)
	}
	c.SetTempo(1)
	if got := c.Tempo(); got != MinTempo {
		t.Errorf("Tempo after SetTempo(1) = %d, want %d", got, MinTempo)
	}
}

func TestStepInterval(t *testing.T) {
	cases := []struct {
		bpm  int
		want time.Duration
	}{
		{30, 500 * time.Millisecond},
		{120, 125 * time.Millisecond},
		{300, 50 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := StepInterval(tc.bpm); got != tc.want {
			t.Errorf("StepInterval(%d) = %s, want %s", tc.bpm, got, tc.want)
		}
	}
}

func TestNoTickAfterStop(t *testing.T) {
	c, p, sink := newTestClock([]Voice{Kick}, []uint8{36})
	p.AddGroup()
	for s := 0; s < GroupSize; s++ {
		if err := p.Toggle(Kick, s, true); err != nil {
			t.Fatal(err)
		}
	}

	c.Start(300) // 50ms per step
	time.Sleep(180 * time.Millisecond)
	c.Stop()

	n := len(sink.snapshot())
	if n == 0 {
		t.Fatal("clock never ticked while playing")
	}

	time.Sleep(120 * time.Millisecond)
	if m := len(sink.snapshot()); m != n {
		t.Fatalf("events kept arriving after Stop: %d -> %d", n, m)
	}
}
