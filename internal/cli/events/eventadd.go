package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
)

type EventAddCmd struct {
	Title    string `arg:"" help:"Event title."`
	Start    string `short:"s" help:"Start time (YYYY-MM-DD HH:MM), in the profile timezone." required:""`
	End      string `short:"e" help:"End time (YYYY-MM-DD HH:MM). Defaults to one hour after start."`
	Calendar string `short:"c" help:"Calendar identifier." default:"manual"`
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	loc, err := profileLocation(ctx)
	if err != nil {
		return err
	}

	start, err := time.ParseInLocation(constants.DateTimeFormat, c.Start, loc)
	if err != nil {
		return fmt.Errorf("invalid start time %q, expected YYYY-MM-DD HH:MM: %w", c.Start, err)
	}

	event := models.CalendarEvent{
		ID:         uuid.New().String(),
		CalendarID: c.Calendar,
		Title:      c.Title,
		StartTime:  start,
	}

	if c.End != "" {
		end, err := time.ParseInLocation(constants.DateTimeFormat, c.End, loc)
		if err != nil {
			return fmt.Errorf("invalid end time %q, expected YYYY-MM-DD HH:MM: %w", c.End, err)
		}
		if !end.After(start) {
			return fmt.Errorf("end time must be after start time")
		}
		event.EndTime = &end
	}

	if err := ctx.Store.AddEvent(event); err != nil {
		return err
	}

	fmt.Printf("Added event: %s at %s (ID: %s)\n", c.Title, start.Format(constants.DateTimeFormat), event.ID)
	return nil
}

// profileLocation resolves the timezone configured in the user profile.
func profileLocation(ctx *cli.Context) (*time.Location, error) {
	userProfile, err := ctx.LoadProfile()
	if err != nil {
		return nil, err
	}
	prefs, _, err := userProfile.Planning()
	if err != nil {
		return nil, err
	}
	return prefs.Location, nil
}
