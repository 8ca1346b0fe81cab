package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stepdrum/sequencer"
	"stepdrum/theme"
	"stepdrum/widgets"
)

type Model struct {
	Machine *sequencer.Machine
	Theme   *theme.Theme

	exportFile string
	voiceIdx   int // cursor row (voice)
	stepIdx    int // cursor column (step)
	message    string
	quitting   bool
}

// UpdateMsg wakes the view when the playhead moves.
type UpdateMsg struct{}

func NewModel(machine *sequencer.Machine, th *theme.Theme, exportFile string) Model {
	return Model{
		Machine:    machine,
		Theme:      th,
		exportFile: exportFile,
	}
}

func ListenForUpdates(machine *sequencer.Machine) tea.Cmd {
	return func() tea.Msg {
		<-machine.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Machine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg.String())
		if m.quitting {
			return m, tea.Quit
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Machine)
	}

	return m, nil
}

func (m *Model) handleKey(key string) {
	total := m.Machine.Pattern().TotalSteps()
	voices := m.Machine.Table().Voices()

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		m.Machine.Stop()

	case "h", "left":
		if m.stepIdx > 0 {
			m.stepIdx--
		}
	case "l", "right":
		if m.stepIdx < total-1 {
			m.stepIdx++
		}
	case "k", "up":
		if m.voiceIdx > 0 {
			m.voiceIdx--
		}
	case "j", "down":
		if m.voiceIdx < len(voices)-1 {
			m.voiceIdx++
		}

	case " ":
		if total == 0 {
			m.message = "empty pattern - press g to add steps"
			return
		}
		v := voices[m.voiceIdx]
		on, err := m.Machine.Pattern().IsActive(v, m.stepIdx)
		if err == nil {
			err = m.Machine.Toggle(v, m.stepIdx, !on)
		}
		if err != nil {
			m.message = err.Error()
		} else {
			m.message = ""
		}

	case "g":
		m.Machine.AddGroup()
		m.message = fmt.Sprintf("%d steps", m.Machine.Pattern().TotalSteps())

	case "p":
		if m.Machine.State() == sequencer.StatePlaying {
			m.Machine.Pause()
		} else if total == 0 {
			m.message = "empty pattern - press g to add steps"
		} else {
			m.Machine.Play()
		}

	case "s":
		m.Machine.Stop()

	case "+", "=":
		m.Machine.SetTempo(m.Machine.Tempo() + 5)
	case "-", "_":
		m.Machine.SetTempo(m.Machine.Tempo() - 5)

	case "e":
		if err := m.Machine.Export(m.exportFile); err != nil {
			m.message = fmt.Sprintf("export failed: %v", err)
		} else {
			m.message = fmt.Sprintf("exported %s", m.exportFile)
		}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	msgStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	state := "STOP"
	switch m.Machine.State() {
	case sequencer.StatePlaying:
		state = "PLAY"
	case sequencer.StatePaused:
		state = "PAUSE"
	}

	total := m.Machine.Pattern().TotalSteps()
	header := headerStyle.Render(fmt.Sprintf("stepdrum  %-5s %3dbpm  step %02d/%02d",
		state, m.Machine.Tempo(), m.Machine.Cursor()+1, total))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(m.viewGrid())
	out.WriteString("\n")

	if m.message != "" {
		out.WriteString(msgStyle.Render(m.message))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeyBinding{
		{Key: "h/j/k/l", Desc: "move cursor"},
		{Key: "space", Desc: "toggle step (previews the voice)"},
		{Key: "g", Desc: "append 16 steps"},
		{Key: "p", Desc: "play/pause"},
		{Key: "s", Desc: "stop"},
		{Key: "+ / -", Desc: "tempo"},
		{Key: "e", Desc: "export MIDI file"},
		{Key: "q", Desc: "quit"},
	})))

	return out.String()
}

func (m Model) viewGrid() string {
	pattern := m.Machine.Pattern()
	total := pattern.TotalSteps()
	playhead := m.Machine.Cursor()
	playing := m.Machine.State() != sequencer.StateStopped
	sym := m.Theme.Symbols

	var out strings.Builder
	for vi, v := range m.Machine.Table().Voices() {
		out.WriteString(fmt.Sprintf("%-11s", v))

		for s := 0; s < total; s++ {
			if s > 0 && s%4 == 0 {
				out.WriteString(" ")
			}

			active, _ := pattern.IsActive(v, s)
			isCursor := vi == m.voiceIdx && s == m.stepIdx
			isPlayhead := playing && s == playhead

			var char rune
			switch {
			case isPlayhead && isCursor:
				char = sym.CursorPlayhead
			case isPlayhead:
				char = sym.StepPlayhead
			case active && isCursor:
				char = sym.CursorActive
			case active:
				char = sym.StepActive
			case isCursor:
				char = sym.CursorEmpty
			default:
				char = sym.StepEmpty
			}
			out.WriteRune(char)
		}
		out.WriteString("\n")
	}

	if total == 0 {
		out.WriteString(lipgloss.NewStyle().Foreground(m.Theme.Muted()).Render("  (empty pattern)"))
		out.WriteString("\n")
	}

	return out.String()
}
