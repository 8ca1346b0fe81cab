package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Tempo != 120 {
		t.Errorf("default tempo = %d, want 120", cfg.Tempo)
	}
	if cfg.ExportFile != "drum_output.mid" {
		t.Errorf("default export file = %q", cfg.ExportFile)
	}
	if cfg.Kit != "gm" {
		t.Errorf("default kit = %q, want gm", cfg.Kit)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "tempo too low",
			in:   Config{Tempo: 10, ExportFile: "a.mid", Kit: "rd8"},
			want: Config{Tempo: 120, ExportFile: "a.mid", Kit: "rd8"},
		},
		{
			name: "tempo too high",
			in:   Config{Tempo: 999, ExportFile: "a.mid", Kit: "gm"},
			want: Config{Tempo: 120, ExportFile: "a.mid", Kit: "gm"},
		},
		{
			name: "missing fields",
			in:   Config{},
			want: Config{Tempo: 120, ExportFile: "drum_output.mid", Kit: "gm"},
		},
		{
			name: "valid untouched",
			in:   Config{Tempo: 90, ExportFile: "take3.mid", Kit: "tr8s", PortName: "Synth Out"},
			want: Config{Tempo: 90, ExportFile: "take3.mid", Kit: "tr8s", PortName: "Synth Out"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in
			got.Normalize()
			if got != tc.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}
