package events

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/logger"
	"github.com/MolchanovArt/exocortex/internal/models"
)

// EventImportCmd loads calendar events from a JSON export. Events that carry
// a source event_id are upserted under a stable ID derived from it, so
// re-importing the same export is idempotent.
type EventImportCmd struct {
	File     string `arg:"" help:"Path to a JSON file containing an array of events." type:"existingfile"`
	Calendar string `short:"c" help:"Calendar identifier to tag imported events with." default:"import"`
}

func (c *EventImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	var events []models.CalendarEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}

	imported := 0
	for _, event := range events {
		if event.StartTime.IsZero() {
			logger.Warn("Skipping event without a start time", "title", event.Title)
			continue
		}
		if event.CalendarID == "" {
			event.CalendarID = c.Calendar
		}
		if event.ID == "" {
			if event.EventID != "" {
				event.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(event.CalendarID+"/"+event.EventID)).String()
			} else {
				event.ID = uuid.New().String()
			}
		}

		if err := ctx.Store.AddEvent(event); err != nil {
			return fmt.Errorf("failed to store event %q: %w", event.Title, err)
		}
		imported++
	}

	fmt.Printf("Imported %d event(s) from %s\n", imported, c.File)
	return nil
}
