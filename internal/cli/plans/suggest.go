package plans

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/planner"
)

type SuggestCmd struct {
	Days     int  `short:"d" help:"Lookahead window in days." default:"7"`
	Duration int  `short:"m" help:"Slot duration in minutes. Defaults to the profile's task duration."`
	Max      int  `short:"n" help:"Maximum number of suggestions." default:"3"`
	Tile     bool `help:"Emit every slot a free interval can hold instead of one per interval."`
	JSON     bool `help:"Output as JSON."`
}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Planner()
	if err != nil {
		return err
	}

	slots, err := engine.Suggest(planner.Request{
		DaysAhead:      c.Days,
		DurationMin:    c.Duration,
		MaxSuggestions: c.Max,
		Tile:           c.Tile,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		if slots == nil {
			slots = []planner.SuggestedSlot{}
		}
		return json.NewEncoder(os.Stdout).Encode(slots)
	}

	if len(slots) == 0 {
		fmt.Println("No free slots in the lookahead window.")
		return nil
	}

	for i, slot := range slots {
		fmt.Println(cli.FormatSlot(i+1, slot))
	}
	return nil
}
