package plans

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/models"
)

// ReviewCmd walks through every new item and triages it: keep as task, file
// as idea or note, mark done, or drop.
type ReviewCmd struct{}

func (c *ReviewCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.GetAllItems()
	if err != nil {
		return err
	}

	var pending []models.Item
	for _, item := range items {
		if item.Status == models.ItemStatusNew {
			pending = append(pending, item)
		}
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to review.")
		return nil
	}

	reviewed := 0
	for i, item := range pending {
		fmt.Printf("\n[%d/%d] %s (%s, from %s)\n", i+1, len(pending), item.Summary, item.Type, item.Source)

		var choice string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What is this?").
					Options(
						huh.NewOption("Task — needs a slot", "task"),
						huh.NewOption("Idea — keep for later", "idea"),
						huh.NewOption("Note — just reference", "note"),
						huh.NewOption("Done — already handled", "done"),
						huh.NewOption("Drop it", "drop"),
						huh.NewOption("Skip", "skip"),
						huh.NewOption("Stop reviewing", "stop"),
					).
					Value(&choice),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("review form failed: %w", err)
		}

		switch choice {
		case "task", "idea", "note":
			item.Type = models.ItemType(choice)
			if err := ctx.Store.UpdateItem(item); err != nil {
				return err
			}
			reviewed++
		case "done":
			item.Status = models.ItemStatusDone
			if err := ctx.Store.UpdateItem(item); err != nil {
				return err
			}
			reviewed++
		case "drop":
			item.Status = models.ItemStatusDropped
			if err := ctx.Store.UpdateItem(item); err != nil {
				return err
			}
			reviewed++
		case "skip":
			continue
		case "stop":
			fmt.Printf("Reviewed %d of %d item(s).\n", reviewed, len(pending))
			return nil
		}
	}

	fmt.Printf("\nReviewed %d item(s).\n", reviewed)
	return nil
}
