package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/MolchanovArt/exocortex/internal/config"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/planner"
	"github.com/MolchanovArt/exocortex/internal/profile"
	"github.com/MolchanovArt/exocortex/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Config config.Config
}

// LoadProfile reads the configured user profile. A missing file is fine; the
// planner falls back to defaults for everything.
func (c *Context) LoadProfile() (profile.UserProfile, error) {
	return profile.LoadUserProfile(c.Config.ProfilePath)
}

// Planner builds a suggestion engine from the configured profile and the
// active store.
func (c *Context) Planner() (*planner.Engine, error) {
	userProfile, err := c.LoadProfile()
	if err != nil {
		return nil, err
	}
	prefs, energy, err := userProfile.Planning()
	if err != nil {
		return nil, err
	}
	return planner.New(prefs, energy, c.Store), nil
}

var (
	slotTimeStyle   = lipgloss.NewStyle().Bold(true)
	slotReasonStyle = lipgloss.NewStyle().Faint(true)

	energyStyles = map[profile.EnergyLevel]lipgloss.Style{
		profile.EnergyHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		profile.EnergyMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		profile.EnergyLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// FormatSlot renders one suggested slot for terminal output.
func FormatSlot(index int, slot planner.SuggestedSlot) string {
	window := fmt.Sprintf("%s %s–%s",
		slot.Start.Format(constants.DateFormat),
		slot.Start.Format(constants.TimeFormat),
		slot.End.Format(constants.TimeFormat))

	label := slot.Reason
	if style, ok := energyStyles[slot.Energy]; ok {
		label = style.Render(label)
	}

	return fmt.Sprintf("%2d. %s  %s (%s)",
		index, slotTimeStyle.Render(window), label,
		slotReasonStyle.Render(slot.Start.Weekday().String()))
}

// SlotChoiceLabel is the plain-text form of a slot used in interactive pickers.
func SlotChoiceLabel(slot planner.SuggestedSlot) string {
	label := fmt.Sprintf("%s %s–%s",
		slot.Start.Format("Mon Jan 2"),
		slot.Start.Format(constants.TimeFormat),
		slot.End.Format(constants.TimeFormat))
	if slot.Reason != "" {
		label += " · " + slot.Reason
	}
	return label
}
