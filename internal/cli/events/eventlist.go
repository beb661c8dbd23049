package events

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
)

type EventListCmd struct {
	Days int  `short:"d" help:"Lookahead window in days." default:"7"`
	JSON bool `help:"Output as JSON."`
}

var titleStyle = lipgloss.NewStyle().Bold(true)

func (c *EventListCmd) Run(ctx *cli.Context) error {
	loc, err := profileLocation(ctx)
	if err != nil {
		return err
	}

	now := time.Now().In(loc)
	end := time.Date(now.Year(), now.Month(), now.Day()+c.Days, 0, 0, 0, 0, loc)

	events, err := ctx.Store.GetEventsInRange(now, end)
	if err != nil {
		return err
	}

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(events)
	}

	if len(events) == 0 {
		fmt.Printf("No events in the next %d day(s).\n", c.Days)
		return nil
	}

	for _, event := range events {
		window := event.StartTime.In(loc).Format(constants.DateTimeFormat)
		if event.EndTime != nil {
			window += "–" + event.EndTime.In(loc).Format(constants.TimeFormat)
		}
		fmt.Printf("%s  %s [%s]\n", window, titleStyle.Render(event.Title), event.CalendarID)
	}
	return nil
}

type EventDeleteCmd struct {
	ID string `arg:"" help:"Event ID to delete."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteEvent(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted event %s\n", c.ID)
	return nil
}
