package items

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
)

type ItemListCmd struct {
	Type   string `short:"t" help:"Filter by type (task|idea|note)." enum:"task,idea,note,"`
	Status string `short:"s" help:"Filter by status (new|planned|in_progress|done|dropped)." enum:"new,planned,in_progress,done,dropped,"`
	JSON   bool   `help:"Output as JSON."`
}

var (
	idStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle = map[models.ItemStatus]lipgloss.Style{
		models.ItemStatusNew:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		models.ItemStatusPlanned:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.ItemStatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		models.ItemStatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		models.ItemStatusDropped:    lipgloss.NewStyle().Faint(true),
	}
)

func (c *ItemListCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.GetAllItems()
	if err != nil {
		return err
	}

	var filtered []models.Item
	for _, item := range items {
		if c.Type != "" && item.Type != models.ItemType(c.Type) {
			continue
		}
		if c.Status != "" && item.Status != models.ItemStatus(c.Status) {
			continue
		}
		filtered = append(filtered, item)
	}

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(filtered)
	}

	if len(filtered) == 0 {
		fmt.Println("No items.")
		return nil
	}

	for _, item := range filtered {
		status := string(item.Status)
		if style, ok := statusStyle[item.Status]; ok {
			status = style.Render(status)
		}
		line := fmt.Sprintf("[%s] %-4s %s", status, item.Type, item.Summary)
		if item.PlannedStart != nil {
			line += fmt.Sprintf(" @ %s", item.PlannedStart.Format(constants.DateTimeFormat))
		}
		fmt.Printf("%s  %s\n", line, idStyle.Render(item.ID))
	}
	return nil
}
