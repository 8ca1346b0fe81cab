package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stepdrum/config"
	"stepdrum/debug"
	"stepdrum/midi"
	"stepdrum/sequencer"
	"stepdrum/theme"
	"stepdrum/tui"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "stepdrum",
	Short: "Terminal step-sequencer drum machine",
	Long: `A step-sequencer drum machine: toggle cells in a voice-by-step grid,
play the pattern against a live MIDI output, and export it as a
standard MIDI file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log to ~/.config/stepdrum/debug.log")
}

func runTUI() error {
	if debugFlag {
		if err := debug.Enable(); err != nil {
			fmt.Printf("debug log unavailable: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	machine := sequencer.NewMachine(sequencer.GetKit(cfg.Kit))
	machine.SetTempo(cfg.Tempo)
	machine.AddGroup() // start with one 16-step bar

	// A missing output port is fine - editing and export still work.
	if out, err := midi.OpenOut(cfg.PortName); err == nil {
		machine.SetSink(out)
		defer out.Close()
	} else {
		debug.Log("midi", "no live output: %v", err)
	}

	th := theme.New(theme.DefaultPalette())
	m := tui.NewModel(machine, th, cfg.ExportFile)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err = p.Run()
	machine.Stop()
	return err
}
