package sequencer

import (
	"errors"
	"testing"
)

func TestAddGroupExtendsAllVoices(t *testing.T) {
	table := GetKit("gm")
	p := NewPattern(table)

	if got := p.TotalSteps(); got != 0 {
		t.Fatalf("new pattern has %d steps, want 0", got)
	}

	for i := 1; i <= 3; i++ {
		p.AddGroup()
		if got := p.TotalSteps(); got != i*GroupSize {
			t.Fatalf("after %d groups TotalSteps = %d, want %d", i, got, i*GroupSize)
		}
	}
	if got := p.Groups(); got != 3 {
		t.Errorf("Groups = %d, want 3", got)
	}

	// Every voice sees the same length.
	for _, v := range table.Voices() {
		if _, err := p.IsActive(v, 3*GroupSize-1); err != nil {
			t.Errorf("voice %s: last step unreadable: %v", v, err)
		}
		if _, err := p.IsActive(v, 3*GroupSize); !errors.Is(err, ErrStepOutOfRange) {
			t.Errorf("voice %s: step beyond length gave %v, want ErrStepOutOfRange", v, err)
		}
	}
}

func TestToggleRoundTrip(t *testing.T) {
	p := NewPattern(GetKit("gm"))
	p.AddGroup()

	if err := p.Toggle(Snare, 7, true); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	on, err := p.IsActive(Snare, 7)
	if err != nil || !on {
		t.Fatalf("IsActive after toggle on = %v, %v; want true, nil", on, err)
	}

	if err := p.Toggle(Snare, 7, false); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	on, err = p.IsActive(Snare, 7)
	if err != nil || on {
		t.Fatalf("IsActive after toggle off = %v, %v; want false, nil", on, err)
	}
}

func TestToggleOutOfRangeLeavesPatternUnchanged(t *testing.T) {
	table := GetKit("gm")
	p := NewPattern(table)
	p.AddGroup()

	if err := p.Toggle(Kick, GroupSize, true); !errors.Is(err, ErrStepOutOfRange) {
		t.Fatalf("toggle beyond length gave %v, want ErrStepOutOfRange", err)
	}
	if err := p.Toggle(Kick, -1, true); !errors.Is(err, ErrStepOutOfRange) {
		t.Fatalf("toggle negative step gave %v, want ErrStepOutOfRange", err)
	}

	for _, v := range table.Voices() {
		for s := 0; s < p.TotalSteps(); s++ {
			if on, _ := p.IsActive(v, s); on {
				t.Fatalf("cell (%s, %d) active after failed toggles", v, s)
			}
		}
	}
}

func TestToggleEmptyPattern(t *testing.T) {
	p := NewPattern(GetKit("gm"))
	if err := p.Toggle(Kick, 0, true); !errors.Is(err, ErrStepOutOfRange) {
		t.Fatalf("toggle on empty pattern gave %v, want ErrStepOutOfRange", err)
	}
}

func TestActiveVoicesTableOrder(t *testing.T) {
	table := NewVoiceTable("test", []Voice{Kick, Snare, ClosedHat}, []uint8{36, 38, 42})
	p := NewPattern(table)
	p.AddGroup()

	// Set in reverse order; results must come back in table order.
	for _, v := range []Voice{ClosedHat, Kick} {
		if err := p.Toggle(v, 3, true); err != nil {
			t.Fatal(err)
		}
	}

	got := p.ActiveVoices(table, 3)
	want := []Voice{Kick, ClosedHat}
	if len(got) != len(want) {
		t.Fatalf("ActiveVoices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ActiveVoices = %v, want %v", got, want)
		}
	}

	if got := p.ActiveVoices(table, GroupSize); got != nil {
		t.Errorf("ActiveVoices beyond length = %v, want nil", got)
	}
}
