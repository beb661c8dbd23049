package plans

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/planner"
	"github.com/MolchanovArt/exocortex/internal/tui"
)

// PlanCmd assigns an unplanned task to one of the suggested slots.
type PlanCmd struct {
	ID       string `arg:"" optional:"" help:"Task ID to plan. Omit to choose interactively."`
	Days     int    `short:"d" help:"Lookahead window in days." default:"7"`
	Duration int    `short:"m" help:"Slot duration in minutes. Defaults to the profile's task duration."`
	Max      int    `short:"n" help:"Maximum number of slots to offer." default:"5"`
	TUI      bool   `help:"Use the full-screen slot picker."`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	task, err := c.pickTask(ctx)
	if err != nil || task == nil {
		return err
	}

	engine, err := ctx.Planner()
	if err != nil {
		return err
	}

	slots, err := engine.Suggest(planner.Request{
		DaysAhead:      c.Days,
		DurationMin:    c.Duration,
		MaxSuggestions: c.Max,
	})
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return fmt.Errorf("no free slots in the next %d day(s)", c.Days)
	}

	slot, err := c.pickSlot(task, slots)
	if err != nil || slot == nil {
		return err
	}

	task.Status = models.ItemStatusPlanned
	task.PlannedStart = &slot.Start
	task.PlannedEnd = &slot.End
	if err := ctx.Store.UpdateItem(*task); err != nil {
		return err
	}

	fmt.Printf("Planned %q for %s\n", task.Summary, cli.SlotChoiceLabel(*slot))
	return nil
}

func (c *PlanCmd) pickTask(ctx *cli.Context) (*models.Item, error) {
	if c.ID != "" {
		task, err := ctx.Store.GetItem(c.ID)
		if err != nil {
			return nil, err
		}
		if task.Type != models.ItemTypeTask {
			return nil, fmt.Errorf("item %s is a %s, only tasks can be planned", c.ID, task.Type)
		}
		return &task, nil
	}

	tasks, err := ctx.Store.GetUnplannedTasks()
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		fmt.Println("No unplanned tasks.")
		return nil, nil
	}

	options := make([]huh.Option[string], 0, len(tasks))
	for _, task := range tasks {
		options = append(options, huh.NewOption(task.Summary, task.ID))
	}

	var chosen string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which task do you want to plan?").
				Options(options...).
				Value(&chosen),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("task selection failed: %w", err)
	}

	for i := range tasks {
		if tasks[i].ID == chosen {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %s not found", chosen)
}

func (c *PlanCmd) pickSlot(task *models.Item, slots []planner.SuggestedSlot) (*planner.SuggestedSlot, error) {
	if c.TUI {
		slot, err := tui.PickSlot(fmt.Sprintf("Pick a slot for %q", task.Summary), slots)
		if err != nil {
			return nil, err
		}
		if slot == nil {
			fmt.Println("Cancelled.")
		}
		return slot, nil
	}

	options := make([]huh.Option[int], 0, len(slots))
	for i, slot := range slots {
		options = append(options, huh.NewOption(cli.SlotChoiceLabel(slot), i))
	}

	chosen := -1
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("Pick a slot for %q", task.Summary)).
				Options(options...).
				Value(&chosen),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("slot selection failed: %w", err)
	}
	if chosen < 0 || chosen >= len(slots) {
		return nil, nil
	}
	return &slots[chosen], nil
}
