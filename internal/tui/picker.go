// Package tui contains the interactive slot picker. It is a single-screen
// bubbletea program: a list of suggested slots, cursor keys to move, enter to
// commit, esc to leave without choosing.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/planner"
	"github.com/MolchanovArt/exocortex/internal/profile"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Faint(true)

	energyStyles = map[profile.EnergyLevel]lipgloss.Style{
		profile.EnergyHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		profile.EnergyMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		profile.EnergyLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

type pickerModel struct {
	title   string
	slots   []planner.SuggestedSlot
	cursor  int
	choice  *planner.SuggestedSlot
	aborted bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.slots)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Select):
			slot := m.slots[m.cursor]
			m.choice = &slot
			return m, tea.Quit
		case key.Matches(msg, keys.Quit):
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, slot := range m.slots {
		line := renderSlot(slot)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ move · enter select · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func renderSlot(slot planner.SuggestedSlot) string {
	window := fmt.Sprintf("%s %s–%s",
		slot.Start.Format("Mon Jan 2"),
		slot.Start.Format(constants.TimeFormat),
		slot.End.Format(constants.TimeFormat))

	reason := slot.Reason
	if style, ok := energyStyles[slot.Energy]; ok {
		reason = style.Render(reason)
	}
	return fmt.Sprintf("%s  %s", window, reason)
}

// PickSlot runs the interactive picker and returns the chosen slot, or nil if
// the user cancelled.
func PickSlot(title string, slots []planner.SuggestedSlot) (*planner.SuggestedSlot, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("no slots to pick from")
	}

	model := pickerModel{title: title, slots: slots}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("slot picker failed: %w", err)
	}

	result := final.(pickerModel)
	if result.aborted {
		return nil, nil
	}
	return result.choice, nil
}
