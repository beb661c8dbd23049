package items

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MolchanovArt/exocortex/internal/cli"
	"github.com/MolchanovArt/exocortex/internal/models"
)

type ItemAddCmd struct {
	Summary string `arg:"" help:"Item summary."`
	Type    string `short:"t" help:"Item type (task|idea|note)." default:"task" enum:"task,idea,note"`
	Source  string `short:"s" help:"Origin of the item (e.g. telegram, email)." default:"manual"`
}

func (c *ItemAddCmd) Validate() error {
	if c.Summary == "" {
		return fmt.Errorf("summary cannot be empty")
	}
	return nil
}

func (c *ItemAddCmd) Run(ctx *cli.Context) error {
	item := models.Item{
		ID:        uuid.New().String(),
		Type:      models.ItemType(c.Type),
		Summary:   c.Summary,
		Status:    models.ItemStatusNew,
		Source:    c.Source,
		CreatedAt: time.Now().UTC(),
	}

	if err := ctx.Store.AddItem(item); err != nil {
		return err
	}

	fmt.Printf("Added %s: %s (ID: %s)\n", c.Type, c.Summary, item.ID)
	return nil
}
